package engine

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window     WindowConfig     `toml:"window"`
	Simulation SimulationConfig `toml:"simulation"`
	Logging    LoggingConfig    `toml:"logging"`
	Debug      DebugConfig      `toml:"debug"`
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
}

type SimulationConfig struct {
	TicksPerSecond int    `toml:"ticks_per_second"`
	MaxTicks       int    `toml:"max_ticks"` // per displayed frame
	Capacity       int    `toml:"capacity"`  // entity universe
	Scene          string `toml:"scene"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Overlay bool `toml:"overlay"`
}

// LoadConfig reads the TOML file at path over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "korp",
			Width:     800,
			Height:    800,
			Resizable: true,
		},
		Simulation: SimulationConfig{
			TicksPerSecond: 12,
			MaxTicks:       DefaultMaxTicks,
			Capacity:       65535,
			Scene:          "scenes/cosmos.yaml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Simulation.TicksPerSecond <= 0:
		return fmt.Errorf("ticks_per_second %d must be positive", c.Simulation.TicksPerSecond)
	case c.Simulation.Capacity <= 0:
		return fmt.Errorf("capacity %d must be positive", c.Simulation.Capacity)
	}
	return nil
}
