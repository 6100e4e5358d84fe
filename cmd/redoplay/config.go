package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v2"

	"github.com/solvertree/redo/pkg/redo"
)

// Config holds the session parameters for a redoplay run, loaded from a
// YAML file and overridable by command-line flags.
type Config struct {
	PuzzleSize  int    `yaml:"puzzle_size"`
	GraftPolicy string `yaml:"graft_policy"`
	PruneLimit  int    `yaml:"prune_limit"`
	Bloom       bool   `yaml:"bloom"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		PuzzleSize:  3,
		GraftPolicy: "graft",
		PruneLimit:  4,
		Bloom:       true,
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.PuzzleSize < 2 {
		return errors.Newf("config: puzzle_size must be at least 2, got %d", c.PuzzleSize)
	}
	if c.PruneLimit < 0 {
		return errors.Newf("config: prune_limit must not be negative, got %d", c.PruneLimit)
	}
	if _, err := c.graftPolicy(); err != nil {
		return err
	}
	return nil
}

// graftPolicy resolves the configured policy name to a redo.GraftPolicy.
func (c *Config) graftPolicy() (redo.GraftPolicy, error) {
	switch c.GraftPolicy {
	case "nograft":
		return redo.NoGraft, nil
	case "graft":
		return redo.Graft, nil
	case "copypath":
		return redo.CopyPath, nil
	case "graftandcopy":
		return redo.GraftAndCopy, nil
	default:
		return 0, errors.Newf("config: unknown graft_policy %q", c.GraftPolicy)
	}
}

// LoadConfig reads and validates a YAML config file. A missing file is not
// an error: DefaultConfig is returned instead, matching redoplay's
// stand-alone-friendly posture.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "redoplay: reading config %q", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "redoplay: parsing config %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
