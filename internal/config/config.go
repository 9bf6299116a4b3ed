package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHorizon      = 10.0
	DefaultGridPoints   = 50
	DefaultTrajectories = 5000
)

// Config holds everything a run needs besides the chain itself: either a
// path to a chain description file or inline DSL text, plus simulation
// parameters. CLI flags override file values.
type Config struct {
	ChainFile    string    `yaml:"chain_file"`
	Chain        string    `yaml:"chain"`
	Horizon      float64   `yaml:"horizon"`
	GridPoints   int       `yaml:"grid_points"`
	Trajectories int       `yaml:"trajectories"`
	Seed         int64     `yaml:"seed"`
	Times        []float64 `yaml:"times"`
}

func DefaultConfig() *Config {
	return &Config{
		Horizon:      DefaultHorizon,
		GridPoints:   DefaultGridPoints,
		Trajectories: DefaultTrajectories,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ChainText returns the chain description: inline text wins, otherwise
// the chain file is read.
func (c *Config) ChainText() (string, error) {
	if c.Chain != "" {
		return c.Chain, nil
	}
	data, err := os.ReadFile(c.ChainFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
