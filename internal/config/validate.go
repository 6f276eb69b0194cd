package config

import (
	"fmt"
	"time"

	"github.com/piwatt/piwatt/internal/errors"
)

// MinInterval is the shortest supported sampling interval. The firmware
// command itself takes tens of milliseconds, so anything faster just
// measures the measurement.
const MinInterval = 100 * time.Millisecond

// Validate checks a config for values that cannot drive a run.
func Validate(cfg *Config) error {
	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", cfg.Interval),
			fmt.Sprintf("Use at least %s between samples.", MinInterval))
	}

	if cfg.Duration < 0 {
		return errors.New(errors.ErrConfig,
			"Duration cannot be negative",
			"Use a positive duration, or 0 to run until interrupted.")
	}

	if cfg.ReadTimeout <= 0 {
		return errors.New(errors.ErrConfig,
			"Read timeout must be positive",
			"Something like 500ms works for the firmware command.")
	}

	if cfg.ReadTimeout >= cfg.Interval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Read timeout %s does not fit inside the %s interval", cfg.ReadTimeout, cfg.Interval),
			"Shorten read_timeout or lengthen interval so each tick can finish before the next.")
	}

	if cfg.Command == "" {
		return errors.New(errors.ErrConfig,
			"Telemetry command is empty",
			"Set command to the PMIC reader, e.g. 'vcgencmd pmic_read_adc'.")
	}

	switch cfg.Color {
	case "", "auto", "always", "never":
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown color mode %q", cfg.Color),
			"Use auto, always, or never.")
	}

	return nil
}
