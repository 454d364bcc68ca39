package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jar0582/schedsim/internal/policy"
	"github.com/jar0582/schedsim/pkg/model"
)

// RunConfig holds configuration for a simulation run.
type RunConfig struct {
	Policy    string            `yaml:"policy"`     // Policy name, see `schedsim policies`
	Quantum   int               `yaml:"quantum"`    // Quantum for rr and mlfq; non-positive values become 1
	LogLevel  string            `yaml:"log_level"`  // Log level: debug, info, warn, error
	LogFormat string            `yaml:"log_format"` // Log format: text, json
	MLFQ      policy.MLFQConfig `yaml:"mlfq"`
	Server    ServerConfig      `yaml:"server"`
}

// DefaultMaxTicks caps HTTP simulations when no limit is configured.
const DefaultMaxTicks = 100000

// ServerConfig holds configuration for the HTTP front-end.
type ServerConfig struct {
	Addr     string `yaml:"addr"`      // Listen address (default ":8080")
	MaxTicks int    `yaml:"max_ticks"` // Simulations still running after this many ticks are aborted
}

// DefaultRunConfig returns sensible defaults.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Policy:    "fifo",
		Quantum:   2,
		LogLevel:  "warn",
		LogFormat: "text",
		MLFQ:      policy.DefaultMLFQConfig(),
		Server:    ServerConfig{Addr: ":8080", MaxTicks: DefaultMaxTicks},
	}
}

// Load reads a YAML config file on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %v", model.ErrConfig, path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot be coerced into something usable.
func (c RunConfig) Validate() error {
	if c.Policy == "" {
		return fmt.Errorf("%w: policy is required", model.ErrConfig)
	}
	if c.MLFQ.Levels < 0 || c.MLFQ.AgingThreshold < 0 || c.MLFQ.AllotmentRatio < 0 {
		return fmt.Errorf("%w: mlfq settings cannot be negative", model.ErrConfig)
	}
	if c.Server.MaxTicks <= 0 {
		return fmt.Errorf("%w: server.max_ticks must be positive", model.ErrConfig)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", model.ErrConfig, c.LogFormat)
	}
	return nil
}
