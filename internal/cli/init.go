package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/piwatt/piwatt/internal/config"
	"github.com/piwatt/piwatt/internal/errors"
	"github.com/piwatt/piwatt/internal/pmic"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Overwrite      bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, use defaults
}

// Init creates a new .piwatt.yaml configuration file.
func Init(opts InitOptions) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		var overwrite bool

		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	if !opts.NonInteractive {
		intervalStr := cfg.Interval.String()
		outputPath := cfg.Output
		command := cfg.Command

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Sampling interval").
					Description("How often to read the PMIC telemetry").
					Placeholder("1s").
					Value(&intervalStr).
					Validate(func(s string) error {
						d, err := time.ParseDuration(strings.TrimSpace(s))
						if err != nil {
							return fmt.Errorf("use a duration like 1s or 500ms")
						}
						if d < config.MinInterval {
							return fmt.Errorf("interval must be at least %s", config.MinInterval)
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Chart output path").
					Description("Where the PNG chart is written when a run ends").
					Placeholder("power_consumption.png").
					Value(&outputPath).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("output path is required")
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Telemetry command").
					Description("Command that prints the PMIC ADC readings").
					Placeholder("vcgencmd pmic_read_adc").
					Value(&command).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("telemetry command is required")
						}
						return nil
					}),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive")
		}

		interval, _ := time.ParseDuration(strings.TrimSpace(intervalStr))
		cfg.Interval = interval
		cfg.Output = strings.TrimSpace(outputPath)
		cfg.Command = strings.TrimSpace(command)
	}

	// Test the telemetry command before saving
	source := pmic.NewCommandSource(cfg.Command, cfg.ReadTimeout)
	probeCtx, cancel := context.WithTimeout(context.Background(), 2*cfg.ReadTimeout)
	defer cancel()

	if probeErr := source.Probe(probeCtx); probeErr != nil {
		// Probe failed, but still offer to save the config: piwatt configs
		// are often written on a workstation and copied to the Pi.
		var saveAnyway bool
		if !opts.NonInteractive {
			fmt.Printf("\nTelemetry check failed: %v\n\n", probeErr)

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title("Save config anyway? (You can fix the command later)").
						Value(&saveAnyway),
				),
			)

			if formErr := form.Run(); formErr != nil {
				return probeErr
			}

			if !saveAnyway {
				return probeErr
			}
		} else {
			fmt.Printf("Warning: telemetry check failed: %v\n", probeErr)
		}
	}

	// Marshal to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	// Add a header comment
	header := `# piwatt configuration
# Run 'piwatt watch' to start the live power dashboard
# See: https://github.com/piwatt/piwatt for documentation

`
	content := header + string(data)

	// Write config file
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("Created %s\n\n", configPath)
	fmt.Println("Next steps:")
	fmt.Println("  piwatt watch     - Start the live dashboard")
	fmt.Println("  piwatt snapshot  - One-shot reading")

	return nil
}

// initCommand is the implementation called by the cobra command.
func initCommand(force, nonInteractive bool) error {
	return Init(InitOptions{
		Overwrite:      force,
		NonInteractive: nonInteractive,
	})
}
