// Package config provides configuration loading and management for chanvese.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"chanvese/pkg/chanvese"
)

// Initialization modes for the starting level set
const (
	InitDefault = "default"
	InitRect    = "rect"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Solver parameters
	Solver struct {
		// Mu is the length penalty
		Mu float64 `yaml:"mu"`

		// Nu is the area penalty (positive penalizes area inside the curve)
		Nu float64 `yaml:"nu"`

		// Lambda1 and Lambda2 are the fit penalties inside and outside the curve
		Lambda1 float64 `yaml:"lambda1"`
		Lambda2 float64 `yaml:"lambda2"`

		// Dt is the pseudo-time step of the semi-implicit scheme
		Dt float64 `yaml:"dt"`

		// Tol is the RMS convergence tolerance; 0 runs MaxIter iterations
		Tol float64 `yaml:"tol"`

		// MaxIter caps the number of iterations
		MaxIter int `yaml:"maxIter"`
	} `yaml:"solver"`

	// Initial level set
	Init struct {
		// Mode is either "default" (sinusoidal pattern) or "rect"
		Mode string `yaml:"mode"`

		// Rect is the inclusive seed rectangle [x0, y0, x1, y1] used by "rect"
		Rect []int `yaml:"rect,omitempty"`
	} `yaml:"init"`

	// Output parameters
	Output struct {
		// Verbose enables per-iteration debug logging
		Verbose bool `yaml:"verbose"`

		// PrintMask prints the final segmentation as ASCII art
		PrintMask bool `yaml:"printMask"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	p := chanvese.DefaultParams()
	cfg.Solver.Mu = p.Mu
	cfg.Solver.Nu = p.Nu
	cfg.Solver.Lambda1 = p.Lambda1
	cfg.Solver.Lambda2 = p.Lambda2
	cfg.Solver.Dt = p.Dt
	cfg.Solver.Tol = p.Tol
	cfg.Solver.MaxIter = p.MaxIter

	cfg.Init.Mode = InitDefault

	cfg.Output.Verbose = false
	cfg.Output.PrintMask = true

	return cfg
}

// Params converts the solver section into chanvese parameters
func (c *Config) Params() chanvese.Params {
	return chanvese.Params{
		Mu:      c.Solver.Mu,
		Nu:      c.Solver.Nu,
		Lambda1: c.Solver.Lambda1,
		Lambda2: c.Solver.Lambda2,
		Dt:      c.Solver.Dt,
		Tol:     c.Solver.Tol,
		MaxIter: c.Solver.MaxIter,
	}
}

// Validate checks the solver parameters and the initialization mode.
// The rect length is left to chanvese.InitPhiRect, which degrades softly.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("invalid solver section: %w", err)
	}
	switch c.Init.Mode {
	case InitDefault, InitRect:
	default:
		return fmt.Errorf("invalid init mode %q (must be %q or %q)", c.Init.Mode, InitDefault, InitRect)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Fields absent from the file keep their defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
