// Package cli implements the piwatt command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a workflow function for the actual work:
//
//	piwatt watch       - Live power dashboard, PNG chart on exit
//	piwatt snapshot    - One-shot telemetry read, table or JSON
//	piwatt init        - Create .piwatt.yaml config
//	piwatt version     - Version information
//	piwatt completion  - Shell completion scripts
//
// # Flag Handling
//
// The global --config flag is defined on the root command and available to
// all subcommands. Command-specific flags like --interval and --output are
// defined on individual commands and override values from the config file.
//
// # Exit Codes
//
// Commands return structured errors from internal/errors; Execute prints
// them and maps them to process exit codes. A run that is interrupted
// before any sample was collected still exits 0 with a note that there was
// nothing to chart.
package cli
