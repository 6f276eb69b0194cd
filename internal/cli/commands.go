package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/piwatt/piwatt/internal/errors"
)

// Command-specific flags
var (
	watchIntervalFlag  string
	watchDurationFlag  string
	watchOutputFlag    string
	watchRailsFlag     []string
	watchCommandFlag   string
	snapshotJSONFlag   bool
	snapshotRailsFlag  []string
	initForce          bool
	initNonInteractive bool
)

// watchCmd starts the live power dashboard
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live power dashboard, PNG chart on exit",
	Long: `Sample PMIC power telemetry at a fixed interval and show a live
terminal dashboard of per-rail and total power draw.

When the run ends (q, Ctrl+C, or --duration elapsing) piwatt writes a PNG
line chart of the whole run, annotated with min/max/average power, total
energy, and the top-consuming rail.

Keyboard shortcuts:
  q / Ctrl+C  Quit and write the chart

Examples:
  piwatt watch
  piwatt watch --interval 2s
  piwatt watch --duration 10m --output bench.png
  piwatt watch --rails VDD_CORE,3V3_SYS`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(watchOptions{
			Interval: watchIntervalFlag,
			Duration: watchDurationFlag,
			Output:   watchOutputFlag,
			Rails:    watchRailsFlag,
			Command:  watchCommandFlag,
		})
	},
}

// snapshotCmd reads the telemetry once and prints it
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "One-shot telemetry read",
	Long: `Read the PMIC telemetry once and print a table of per-rail current,
voltage and power, plus the total draw.

Works without a terminal, so it suits scripts and cron jobs; use --json
for machine-readable output.

Examples:
  piwatt snapshot
  piwatt snapshot --json
  piwatt snapshot --rails VDD_CORE`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(snapshotJSONFlag, snapshotRailsFlag)
	},
}

// initCmd creates a new .piwatt.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .piwatt.yaml configuration",
	Long: `Initialize a new piwatt configuration file.

Creates a .piwatt.yaml file in the current directory with sensible
defaults, guided by interactive prompts.

Examples:
  piwatt init
  piwatt init --force
  piwatt init --non-interactive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce, initNonInteractive)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for piwatt.

Examples:
  # Bash
  piwatt completion bash > /etc/bash_completion.d/piwatt

  # Zsh
  piwatt completion zsh > "${fpath[1]}/_piwatt"

  # Fish
  piwatt completion fish > ~/.config/fish/completions/piwatt.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// watch command flags
	watchCmd.Flags().StringVar(&watchIntervalFlag, "interval", "", "sampling interval (e.g., 1s, 500ms)")
	watchCmd.Flags().StringVar(&watchDurationFlag, "duration", "", "stop after this long (e.g., 5m; default runs until interrupted)")
	watchCmd.Flags().StringVarP(&watchOutputFlag, "output", "o", "", "chart output path (default power_consumption.png)")
	watchCmd.Flags().StringSliceVar(&watchRailsFlag, "rails", nil, "monitor only these rails (comma-separated)")
	watchCmd.Flags().StringVar(&watchCommandFlag, "command", "", "telemetry command to run each tick")

	// snapshot command flags
	snapshotCmd.Flags().BoolVar(&snapshotJSONFlag, "json", false, "machine-readable output")
	snapshotCmd.Flags().StringSliceVar(&snapshotRailsFlag, "rails", nil, "show only these rails (comma-separated)")

	// init command flags
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts, use defaults")

	// Register all commands
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
