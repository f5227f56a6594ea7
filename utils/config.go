package utils

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/go-life/model"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("utils: invalid config")

// Config holds the configuration for the game. Board geometry is fixed once
// a board is built from it.
type Config struct {
	CellSize            int     `yaml:"cell_size"`
	Width               int     `yaml:"width"`
	Height              int     `yaml:"height"`
	IntervalMs          int     `yaml:"interval_ms"`
	RandomDensity       float64 `yaml:"random_density"`
	Seed                uint64  `yaml:"seed"`
	UseMemoryPool       bool    `yaml:"use_memory_pool"`
	StagnationThreshold int     `yaml:"stagnation_threshold"`
	MaxGenerations      int     `yaml:"max_generations"`
}

// DefaultConfig returns the stock 800x600 board of 5 px cells
func DefaultConfig() Config {
	return Config{
		CellSize:            5,
		Width:               800,
		Height:              600,
		IntervalMs:          100,
		RandomDensity:       model.DefaultDensity,
		UseMemoryPool:       true,
		StagnationThreshold: 5,
		MaxGenerations:      1000,
	}
}

// LoadConfig loads configuration from a YAML file over the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] %+v", filename)
	}

	return config, nil
}

// SaveConfig writes config as YAML
func SaveConfig(filename string, config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "[SaveConfig] failed to marshal config")
	}
	if err = os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrapf(err, "[SaveConfig] failed to write file: %+v", filename)
	}
	return nil
}

// Validate rejects settings no board or run loop can use
func (c Config) Validate() error {
	switch {
	case c.CellSize <= 0:
		return errors.Wrapf(ErrInvalidConfig, "cell_size must be positive, got %d", c.CellSize)
	case c.Width < c.CellSize || c.Height < c.CellSize:
		return errors.Wrapf(ErrInvalidConfig, "board %dx%d is smaller than one %d px cell", c.Width, c.Height, c.CellSize)
	case c.IntervalMs <= 0:
		return errors.Wrapf(ErrInvalidConfig, "interval_ms must be positive, got %d", c.IntervalMs)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "random_density must be within [0, 1], got %v", c.RandomDensity)
	case c.StagnationThreshold < 0 || c.MaxGenerations < 0:
		return errors.Wrap(ErrInvalidConfig, "stagnation_threshold and max_generations must not be negative")
	}
	return nil
}

// Interval is the tick interval as a duration
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// BoardConfig derives the board settings. A zero seed picks one from the
// clock.
func (c Config) BoardConfig() model.BoardConfig {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return model.BoardConfig{
		Width:    c.Width,
		Height:   c.Height,
		CellSize: c.CellSize,
		Density:  c.RandomDensity,
		Seed:     seed,
		UsePool:  c.UseMemoryPool,
	}
}
