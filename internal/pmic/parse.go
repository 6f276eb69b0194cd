package pmic

import (
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/piwatt/piwatt/internal/errors"
)

// The firmware reports each rail twice: once as a current line and once as
// a voltage line. Example output from `vcgencmd pmic_read_adc`:
//
//	 3V7_WL_SW_A current(0)=0.00781250A
//	 3V7_WL_SW_V volt(8)=3.70337500V
//	 VDD_CORE_A current(7)=4.32318000A
//	 VDD_CORE_V volt(15)=0.85563000V
var (
	currentPattern = regexp.MustCompile(`([A-Za-z0-9_]+)_A current\(\d+\)=([\d.]+)A`)
	voltPattern    = regexp.MustCompile(`([A-Za-z0-9_]+)_V volt\(\d+\)=([\d.]+)V`)
	spacePattern   = regexp.MustCompile(`\s+`)
)

// ParseADC parses the textual output of the PMIC ADC command into per-rail
// power readings. A rail produces a Reading only when both its current and
// voltage lines are present; unpaired lines are skipped. Returns a PARSE
// error when the output contains no parsable rail at all.
func ParseADC(output string, at time.Time) ([]Reading, error) {
	// Firmware output occasionally wraps lines oddly over serial consoles;
	// collapse whitespace before matching.
	flat := spacePattern.ReplaceAllString(output, " ")

	currents := make(map[string]float64)
	for _, m := range currentPattern.FindAllStringSubmatch(flat, -1) {
		value, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		currents[m[1]] = value
	}

	volts := make(map[string]float64)
	for _, m := range voltPattern.FindAllStringSubmatch(flat, -1) {
		value, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		volts[m[1]] = value
	}

	rails := make([]string, 0, len(currents))
	for rail := range currents {
		if _, ok := volts[rail]; ok {
			rails = append(rails, rail)
		}
	}
	sort.Strings(rails)

	if len(rails) == 0 {
		return nil, errors.New(errors.ErrParse,
			"PMIC output did not contain any current/voltage pairs",
			"Run 'vcgencmd pmic_read_adc' manually to inspect the output format.")
	}

	readings := make([]Reading, 0, len(rails))
	for _, rail := range rails {
		amps := currents[rail]
		v := volts[rail]
		readings = append(readings, Reading{
			Rail:  rail,
			Amps:  amps,
			Volts: v,
			Watts: amps * v,
			Time:  at,
		})
	}

	return readings, nil
}
