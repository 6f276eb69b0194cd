package pmic

import "time"

// Reading is a single per-rail power measurement taken at one instant.
// Immutable once produced.
type Reading struct {
	// Rail is the PMIC rail name, e.g. "VDD_CORE" or "EXT5V".
	Rail string

	// Amps and Volts are the raw values reported by the firmware.
	Amps  float64
	Volts float64

	// Watts is the derived power (Amps * Volts).
	Watts float64

	// Time is when the reading was taken.
	Time time.Time
}

// Rails extracts the rail names from a set of readings, preserving order.
func Rails(readings []Reading) []string {
	if len(readings) == 0 {
		return nil
	}
	names := make([]string, 0, len(readings))
	for _, r := range readings {
		names = append(names, r.Rail)
	}
	return names
}

// Filter returns only the readings whose rail name is in the allow list.
// An empty allow list keeps everything.
func Filter(readings []Reading, allow []string) []Reading {
	if len(allow) == 0 {
		return readings
	}

	allowed := make(map[string]bool, len(allow))
	for _, name := range allow {
		allowed[name] = true
	}

	var filtered []Reading
	for _, r := range readings {
		if allowed[r.Rail] {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
