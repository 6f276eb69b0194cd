package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/piwatt/piwatt/internal/config"
	"github.com/piwatt/piwatt/internal/pmic"
)

// snapshotRow is the per-rail record in snapshot output.
type snapshotRow struct {
	Rail  string  `json:"rail"`
	Amps  float64 `json:"amps"`
	Volts float64 `json:"volts"`
	Watts float64 `json:"watts"`
}

// snapshotReport is the data payload for snapshot --json.
type snapshotReport struct {
	Time  time.Time     `json:"time"`
	Rails []snapshotRow `json:"rails"`
	Total float64       `json:"total_watts"`
}

// snapshotCommand reads the telemetry once and prints it.
func snapshotCommand(asJSON bool, rails []string) error {
	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return err
	}
	if len(rails) == 0 {
		rails = cfg.Rails
	}

	source := pmic.NewCommandSource(cfg.Command, cfg.ReadTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.ReadTimeout)
	defer cancel()

	readings, err := source.Read(ctx)
	if err != nil {
		if asJSON {
			WriteJSONFromError(os.Stdout, err)
		}
		return err
	}
	readings = pmic.Filter(readings, rails)

	report := buildSnapshotReport(readings)

	if asJSON {
		return WriteJSONSuccess(os.Stdout, report)
	}

	printSnapshotTable(report, cfg.Color)
	return nil
}

// buildSnapshotReport converts readings into the output payload.
func buildSnapshotReport(readings []pmic.Reading) snapshotReport {
	report := snapshotReport{Time: time.Now()}
	for _, r := range readings {
		report.Rails = append(report.Rails, snapshotRow{
			Rail:  r.Rail,
			Amps:  r.Amps,
			Volts: r.Volts,
			Watts: r.Watts,
		})
		report.Total += r.Watts
	}
	return report
}

// printSnapshotTable renders the human-readable table. In auto mode color
// degrades on dumb terminals and pipes via termenv profile detection.
func printSnapshotTable(report snapshotReport, colorMode string) {
	output := termenv.NewOutput(os.Stdout)
	profile := output.ColorProfile()
	switch colorMode {
	case "never":
		profile = termenv.Ascii
	case "always":
		if profile == termenv.Ascii {
			profile = termenv.ANSI
		}
		output = termenv.NewOutput(os.Stdout, termenv.WithProfile(profile))
	}

	bold := func(s string) string {
		if profile == termenv.Ascii {
			return s
		}
		return output.String(s).Bold().String()
	}
	dim := func(s string) string {
		if profile == termenv.Ascii {
			return s
		}
		return output.String(s).Faint().String()
	}

	railWidth := len("RAIL")
	for _, row := range report.Rails {
		if len(row.Rail) > railWidth {
			railWidth = len(row.Rail)
		}
	}

	fmt.Println(bold(fmt.Sprintf("%-*s  %9s  %9s  %9s", railWidth, "RAIL", "CURRENT", "VOLTAGE", "POWER")))
	for _, row := range report.Rails {
		fmt.Printf("%-*s  %8.4fA  %8.4fV  %8.4fW\n", railWidth, row.Rail, row.Amps, row.Volts, row.Watts)
	}
	fmt.Println(dim(strings.Repeat("-", railWidth+35)))
	fmt.Printf("%-*s  %9s  %9s  %8.4fW\n", railWidth, bold("TOTAL"), "", "", report.Total)
}
