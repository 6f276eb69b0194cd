package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .piwatt.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interval is the sampling cadence of the monitor loop.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Duration bounds the run; zero means run until interrupted.
	Duration time.Duration `yaml:"duration" mapstructure:"duration"`

	// ReadTimeout bounds a single telemetry read so a hung firmware
	// command cannot stall a tick.
	ReadTimeout time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`

	// Command is the telemetry command line to run each tick.
	Command string `yaml:"command" mapstructure:"command"`

	// Rails filters which PMIC rails are monitored; empty means all
	// rails the firmware reports.
	Rails []string `yaml:"rails" mapstructure:"rails"`

	// Output is where the chart PNG is written on shutdown.
	Output string `yaml:"output" mapstructure:"output"`

	// Color controls colored output outside the dashboard: auto, always,
	// or never.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:     CurrentConfigVersion,
		Interval:    time.Second,
		Duration:    0,
		ReadTimeout: 500 * time.Millisecond,
		Command:     "vcgencmd pmic_read_adc",
		Rails:       nil,
		Output:      "power_consumption.png",
		Color:       "auto",
	}
}
