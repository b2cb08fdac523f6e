// Package config provides configuration loading and access for the
// simulation server. Embedded defaults are overridden by an optional
// YAML file, which is in turn overridden by command-line flags.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all server configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Simulation SimulationConfig `yaml:"simulation"`
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// WorldConfig holds grid dimensions.
type WorldConfig struct {
	Width int `yaml:"width"`
}

// SimulationConfig holds the loop and reset parameters.
type SimulationConfig struct {
	IntervalMS              int     `yaml:"interval_ms"`
	InitialPlantProbability float64 `yaml:"initial_plant_probability"`
	StartStrength           int     `yaml:"start_strength"`
	CreaturesPerSpecies     int     `yaml:"creatures_per_species"`
	// Autostart resets with every registered species and starts ticking
	// immediately, without waiting for a display command.
	Autostart bool `yaml:"autostart"`
}

// ServerConfig holds the WebSocket listen address.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// StorageConfig holds the SQLite database path. Empty disables recording.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// TelemetryConfig holds the CSV output directory. Empty disables it.
type TelemetryConfig struct {
	Dir string `yaml:"dir"`
}

// Load returns the embedded defaults, overlaid with the YAML file at path
// when path is non-empty.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.World.Width <= 0 {
		return fmt.Errorf("world.width must be positive, got %d", c.World.Width)
	}
	if c.Simulation.IntervalMS < 0 {
		return fmt.Errorf("simulation.interval_ms must not be negative, got %d", c.Simulation.IntervalMS)
	}
	if p := c.Simulation.InitialPlantProbability; p < 0 || p > 1 {
		return fmt.Errorf("simulation.initial_plant_probability must be in [0,1], got %g", p)
	}
	if c.Simulation.CreaturesPerSpecies <= 0 {
		return fmt.Errorf("simulation.creatures_per_species must be positive, got %d", c.Simulation.CreaturesPerSpecies)
	}
	return nil
}
