package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"github.com/Gate88/adventofcode2023/internal/log"
)

// Prefix is prepended to every variable, e.g. REMAP_LOG_LEVEL.
const Prefix = "REMAP"

// EnvConfig holds the environment-based configuration.
type EnvConfig struct {
	// Env: REMAP_LOG_LEVEL (default: info)
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogFormat is console or json.
	// Env: REMAP_LOG_FORMAT (default: console)
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	// Concurrency is the number of goroutines per stage in stream mode.
	// Env: REMAP_CONCURRENCY (default: 1)
	Concurrency int `envconfig:"CONCURRENCY" default:"1"`

	// Env: REMAP_BUFFER_SIZE (default: 0)
	BufferSize int `envconfig:"BUFFER_SIZE" default:"0"`

	// StartStage overrides the start stage of the almanac.
	// Env: REMAP_START_STAGE
	StartStage string `envconfig:"START_STAGE"`

	// Mode is scalar, range or both.
	// Env: REMAP_MODE (default: both)
	Mode string `envconfig:"MODE" default:"both"`

	// Stream walks the chain with the concurrent stream pipeline.
	// Env: REMAP_STREAM (default: false)
	Stream bool `envconfig:"STREAM" default:"false"`

	// DrawFile is where the stream pipeline is drawn as DOT. Empty disables drawing.
	// Env: REMAP_DRAW_FILE
	DrawFile string `envconfig:"DRAW_FILE"`
}

// LoadFromEnv loads configuration from REMAP_ variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return EnvConfig{}, errors.Wrap(err, "unable to process environment")
	}

	return cfg, nil
}

// ToConfig normalises the raw values.
func (e EnvConfig) ToConfig() Config {
	return Config{
		LogLevel:    strings.ToLower(e.LogLevel),
		LogFormat:   log.Format(strings.ToLower(e.LogFormat)),
		Concurrency: e.Concurrency,
		BufferSize:  e.BufferSize,
		StartStage:  e.StartStage,
		Mode:        Mode(strings.ToLower(e.Mode)),
		Stream:      e.Stream,
		DrawFile:    e.DrawFile,
	}
}

// LoadConfig loads envPath when it exists, then the environment.
// Variables already set in the environment win over the file. The result is not validated, so callers can
// apply their own overrides before calling Validate.
func LoadConfig(envPath string) (Config, error) {
	if err := LoadDotEnv(envPath); err != nil {
		return Config{}, err
	}

	envCfg, err := LoadFromEnv()
	if err != nil {
		return Config{}, err
	}

	return envCfg.ToConfig(), nil
}
