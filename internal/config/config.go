package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/moneytrail/internal/graph"
)

// FileName is the default configuration file name.
const FileName = "moneytrail.yaml"

// Config represents the top-level moneytrail.yaml configuration.
type Config struct {
	Graph       GraphConfig       `yaml:"graph"`
	Logging     LoggingConfig     `yaml:"logging"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Evidence    EvidenceConfig    `yaml:"evidence"`
}

// GraphConfig is the default build window.
type GraphConfig struct {
	MaxLayer  int             `yaml:"max_layer"`
	MinAmount decimal.Decimal `yaml:"min_amount"`
}

// LoggingConfig controls the stderr logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DiagnosticsConfig controls the diagnostics CSV log.
type DiagnosticsConfig struct {
	LogFile string `yaml:"log_file"`
}

// EvidenceConfig is the identity used when committing exports to the
// investigation's git repository.
type EvidenceConfig struct {
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a moneytrail.yaml file from disk. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new investigation.
func Default() *Config {
	return &Config{
		Graph: GraphConfig{
			MaxLayer:  graph.DefaultMaxLayer,
			MinAmount: decimal.Zero,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Diagnostics: DiagnosticsConfig{
			LogFile: "logs/diagnostics.csv",
		},
		Evidence: EvidenceConfig{
			AuthorName:  "moneytrail",
			AuthorEmail: "moneytrail@localhost",
		},
	}
}

// Validate checks the graph window and log level.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid config: logging level %q: %w", c.Logging.Level, err)
	}
	return nil
}

// Params returns the graph build parameters.
func (c *Config) Params() graph.Params {
	return graph.Params{MaxLayer: c.Graph.MaxLayer, MinAmount: c.Graph.MinAmount}
}
