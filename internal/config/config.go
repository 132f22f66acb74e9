package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/eos/internal/eos"
)

const (
	DefaultModel    = "perfect_gas"
	DefaultPoints   = 50
	DefaultWorkers  = 1
	DefaultMinChunk = 256
	DefaultDataDir  = ".eos"
	DefaultFailOn   = "bad"
	DefaultLogLevel = "info"
)

// ErrInvalid is wrapped by Validate errors.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Fluid    FluidConfig    `yaml:"fluid"`
	Numerics NumericsConfig `yaml:"numerics"`
	Sweep    SweepConfig    `yaml:"sweep"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
}

// FluidConfig selects a model and its "key=value" arguments.
type FluidConfig struct {
	Model string   `yaml:"model"`
	Args  []string `yaml:"args,omitempty"`
}

type NumericsConfig struct {
	Epsilon       float64 `yaml:"epsilon"`
	NewtonMaxIter int     `yaml:"newton_max_iter"`
	NewtonTol     float64 `yaml:"newton_tol"`
	NewtonGuess   float64 `yaml:"newton_guess"`
}

type SweepConfig struct {
	Points   int `yaml:"points"`
	Workers  int `yaml:"workers"`
	MinChunk int `yaml:"min_chunk"`
}

type OutputConfig struct {
	DataDir string `yaml:"data_dir"`
	// FailOn is the lowest severity the CLI reports as a failure.
	FailOn string `yaml:"fail_on"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	num := eos.DefaultNumerics()
	return &Config{
		Fluid: FluidConfig{Model: DefaultModel},
		Numerics: NumericsConfig{
			Epsilon:       num.Epsilon,
			NewtonMaxIter: num.NewtonMaxIter,
			NewtonTol:     num.NewtonTol,
			NewtonGuess:   num.NewtonGuess,
		},
		Sweep: SweepConfig{
			Points:   DefaultPoints,
			Workers:  DefaultWorkers,
			MinChunk: DefaultMinChunk,
		},
		Output: OutputConfig{
			DataDir: DefaultDataDir,
			FailOn:  DefaultFailOn,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

func (c *Config) Validate() error {
	switch {
	case c.Fluid.Model == "":
		return fmt.Errorf("%w: fluid.model is empty", ErrInvalid)
	case c.Numerics.Epsilon <= 0 || c.Numerics.Epsilon >= 1:
		return fmt.Errorf("%w: numerics.epsilon must be in (0, 1), got %g", ErrInvalid, c.Numerics.Epsilon)
	case c.Numerics.NewtonMaxIter < 1:
		return fmt.Errorf("%w: numerics.newton_max_iter must be at least 1", ErrInvalid)
	case c.Numerics.NewtonTol <= 0:
		return fmt.Errorf("%w: numerics.newton_tol must be positive", ErrInvalid)
	case c.Sweep.Points < 2:
		return fmt.Errorf("%w: sweep.points must be at least 2", ErrInvalid)
	}
	if _, err := c.FailOn(); err != nil {
		return fmt.Errorf("%w: output.fail_on: %v", ErrInvalid, err)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

func (c *Config) EngineNumerics() eos.Numerics {
	return eos.Numerics{
		Epsilon:       c.Numerics.Epsilon,
		NewtonMaxIter: c.Numerics.NewtonMaxIter,
		NewtonTol:     c.Numerics.NewtonTol,
		NewtonGuess:   c.Numerics.NewtonGuess,
	}
}

func (c *Config) FailOn() (eos.Severity, error) {
	return eos.ParseSeverity(c.Output.FailOn)
}

func (c *Config) LogLevel() (logrus.Level, error) {
	return logrus.ParseLevel(c.Log.Level)
}
