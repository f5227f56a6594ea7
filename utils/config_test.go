package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bc := cfg.BoardConfig()
	if bc.Width/bc.CellSize != 160 || bc.Height/bc.CellSize != 120 {
		t.Errorf("default board = %dx%d cells", bc.Width/bc.CellSize, bc.Height/bc.CellSize)
	}
	if cfg.Interval() != 100*time.Millisecond {
		t.Errorf("default interval = %v", cfg.Interval())
	}
	if bc.Seed == 0 {
		t.Error("zero seed was not replaced")
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.yaml")
	content := "cell_size: 10\ninterval_ms: 250\nseed: 42\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CellSize != 10 || cfg.IntervalMs != 250 || cfg.Seed != 42 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Width != 800 || cfg.RandomDensity != 0.15 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.BoardConfig().Seed != 42 {
		t.Errorf("explicit seed replaced")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("cell_size: [1, 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("malformed yaml accepted")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("interval_ms: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero interval error = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cell size", func(c *Config) { c.CellSize = 0 }},
		{"board below one cell", func(c *Config) { c.Width = 4 }},
		{"negative interval", func(c *Config) { c.IntervalMs = -10 }},
		{"density above one", func(c *Config) { c.RandomDensity = 1.2 }},
		{"negative density", func(c *Config) { c.RandomDensity = -0.1 }},
		{"negative generations", func(c *Config) { c.MaxGenerations = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.CellSize = 8
	cfg.Seed = 7

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}
