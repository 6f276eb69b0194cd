package pmic

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/piwatt/piwatt/internal/errors"
	"github.com/piwatt/piwatt/internal/logger"
)

// DefaultCommand is the firmware telemetry command on Raspberry Pi boards.
const DefaultCommand = "vcgencmd pmic_read_adc"

// DefaultReadTimeout bounds a single telemetry read so a hung firmware
// command cannot stall the dashboard tick.
const DefaultReadTimeout = 500 * time.Millisecond

// Source produces one set of per-rail readings per call.
type Source interface {
	// Read invokes the telemetry capability once. A SOURCE error means the
	// capability was unavailable (missing command, exec failure, timeout);
	// a PARSE error means it responded with unusable output. Either way the
	// caller treats the tick's readings as missing and keeps going.
	Read(ctx context.Context) ([]Reading, error)
}

// CommandSource reads PMIC telemetry by running an external command.
type CommandSource struct {
	path    string
	args    []string
	timeout time.Duration
	log     logger.Logger
}

// NewCommandSource builds a source from a command line string such as
// "vcgencmd pmic_read_adc". The timeout applies per read; zero means
// DefaultReadTimeout.
func NewCommandSource(command string, timeout time.Duration) *CommandSource {
	if command == "" {
		command = DefaultCommand
	}
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}

	fields := strings.Fields(command)
	return &CommandSource{
		path:    fields[0],
		args:    fields[1:],
		timeout: timeout,
		log:     logger.NewEnvLogger("[pmic]"),
	}
}

// Read runs the telemetry command and parses its output.
func (s *CommandSource) Read(ctx context.Context) ([]Reading, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	at := time.Now()
	out, err := exec.CommandContext(ctx, s.path, s.args...).Output()
	if err != nil {
		if ctx.Err() != nil {
			s.log.Debug("read timed out after %s", s.timeout)
			return nil, errors.WrapWithCode(ctx.Err(), errors.ErrSource,
				"PMIC telemetry read timed out",
				"Raise read_timeout in .piwatt.yaml if the board is under heavy load.")
		}
		s.log.Debug("read failed: %v", err)
		return nil, errors.WrapWithCode(err, errors.ErrSource,
			"Couldn't run the PMIC telemetry command",
			"Make sure '"+s.path+"' exists and the user may query the firmware.")
	}

	readings, err := ParseADC(string(out), at)
	if err != nil {
		return nil, err
	}
	s.log.Debug("read %d rails in %s", len(readings), time.Since(at))
	return readings, nil
}

// Probe checks that the telemetry command exists and produces parsable
// output. Used once at startup so a missing capability fails fast instead
// of rendering an empty dashboard forever.
func (s *CommandSource) Probe(ctx context.Context) error {
	if _, err := exec.LookPath(s.path); err != nil {
		return errors.WrapWithCode(err, errors.ErrSource,
			"Telemetry command '"+s.path+"' not found",
			"On Raspberry Pi OS it ships with raspi-utils; on other boards point --command at your PMIC reader.")
	}

	_, err := s.Read(ctx)
	return err
}
