// Package config loads the settings of the remap command from the environment.
package config

import (
	"github.com/pkg/errors"

	"github.com/Gate88/adventofcode2023/internal/log"
)

// Mode selects which walks the solve command runs.
type Mode string

const (
	ModeScalar Mode = "scalar"
	ModeRange  Mode = "range"
	ModeBoth   Mode = "both"
)

// Defaults, kept in sync with the struct tags of EnvConfig.
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = log.FormatConsole
	DefaultConcurrency = 1
	DefaultMode        = ModeBoth
)

var (
	ErrInvalidMode        = errors.New("invalid mode")
	ErrInvalidLogFormat   = errors.New("invalid log format")
	ErrInvalidConcurrency = errors.New("concurrency must be at least 1")
)

// Config is the validated configuration of a run.
type Config struct {
	LogLevel    string
	LogFormat   log.Format
	Concurrency int
	BufferSize  int
	StartStage  string
	Mode        Mode
	Stream      bool
	DrawFile    string
}

// Scalar reports whether the single-value walk runs.
func (c Config) Scalar() bool {
	return c.Mode == ModeScalar || c.Mode == ModeBoth
}

// Range reports whether the interval walk runs.
func (c Config) Range() bool {
	return c.Mode == ModeRange || c.Mode == ModeBoth
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeScalar, ModeRange, ModeBoth:
	default:
		return errors.Wrapf(ErrInvalidMode, "%q", c.Mode)
	}

	switch c.LogFormat {
	case log.FormatConsole, log.FormatJSON:
	default:
		return errors.Wrapf(ErrInvalidLogFormat, "%q", c.LogFormat)
	}

	if c.Concurrency < 1 {
		return errors.Wrapf(ErrInvalidConcurrency, "got %d", c.Concurrency)
	}

	return nil
}
