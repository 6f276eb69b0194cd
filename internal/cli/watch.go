package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/piwatt/piwatt/internal/chart"
	"github.com/piwatt/piwatt/internal/config"
	"github.com/piwatt/piwatt/internal/dashboard"
	pwerrors "github.com/piwatt/piwatt/internal/errors"
	"github.com/piwatt/piwatt/internal/pmic"
	"github.com/piwatt/piwatt/internal/stats"
)

// watchOptions carries the flag overrides for the watch command. Empty
// values fall through to the config file.
type watchOptions struct {
	Interval string
	Duration string
	Output   string
	Rails    []string
	Command  string
}

// watchCommand runs the live dashboard and writes the chart when it ends.
func watchCommand(opts watchOptions) error {
	cfg, err := loadWatchConfig(opts)
	if err != nil {
		return err
	}

	// The dashboard needs a real terminal; snapshot covers headless use.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return pwerrors.New(pwerrors.ErrRender,
			"Standard output is not a terminal",
			"Run 'piwatt watch' from an interactive terminal, or use 'piwatt snapshot' in scripts.")
	}

	source := pmic.NewCommandSource(cfg.Command, cfg.ReadTimeout)

	// Probe once up front so a missing vcgencmd fails with a clear message
	// instead of an empty dashboard.
	probeCtx, cancel := context.WithTimeout(context.Background(), 2*cfg.ReadTimeout)
	defer cancel()
	if err := source.Probe(probeCtx); err != nil {
		return err
	}

	agg := stats.NewAggregator(cfg.Interval)
	model := dashboard.NewModel(source, agg, dashboard.Options{
		Interval: cfg.Interval,
		Duration: cfg.Duration,
		Rails:    cfg.Rails,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := p.Run()
	runErr = dashboardRunError(runErr)

	// The chart is written exactly once, after the TUI has released the
	// terminal. The export is attempted even when the TUI failed, so
	// samples that were already recorded still reach disk.
	exportErr := exportRun(agg, cfg.Output)

	if runErr != nil {
		return runErr
	}
	return exportErr
}

// dashboardRunError folds a Program.Run result into a command error. A
// signal-driven stop (SIGINT/SIGTERM) surfaces from bubbletea as
// tea.ErrInterrupted and is a clean stop, not a failure.
func dashboardRunError(err error) error {
	if err == nil || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return pwerrors.WrapWithCode(err, pwerrors.ErrRender,
		"Dashboard terminated unexpectedly",
		"Check terminal compatibility; 'piwatt snapshot' works without a TUI.")
}

// exportRun writes the run's chart and prints the summary. A run with no
// recorded samples is reported and treated as a clean stop.
func exportRun(agg *stats.Aggregator, output string) error {
	history := agg.History()
	snap := agg.Snapshot()

	if err := chart.Export(history, snap, output); err != nil {
		if pwerrors.IsCode(err, pwerrors.ErrHistory) {
			fmt.Println("No samples were recorded; nothing to chart.")
			return nil
		}
		return err
	}

	fmt.Printf("Recorded %d samples over %s\n", snap.Samples, history.Duration().Truncate(time.Second))
	fmt.Printf("Average %.3f W, total %.1f J\n", snap.Avg, snap.Energy)
	fmt.Printf("Chart written to %s\n", output)
	return nil
}

// loadWatchConfig loads the config file and applies flag overrides.
func loadWatchConfig(opts watchOptions) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return nil, err
	}

	if opts.Interval != "" {
		interval, err := parseDurationFlag("interval", opts.Interval)
		if err != nil {
			return nil, err
		}
		cfg.Interval = interval
	}
	if opts.Duration != "" {
		duration, err := parseDurationFlag("duration", opts.Duration)
		if err != nil {
			return nil, err
		}
		cfg.Duration = duration
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	if len(opts.Rails) > 0 {
		cfg.Rails = opts.Rails
	}
	if opts.Command != "" {
		cfg.Command = opts.Command
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseDurationFlag parses a duration flag value into a duration.
func parseDurationFlag(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, pwerrors.WrapWithCode(err, pwerrors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid %s", value, name),
			"Try something like 1s, 500ms, or 5m.")
	}
	return d, nil
}
