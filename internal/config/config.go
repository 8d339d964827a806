// Package config holds the command-line and file configuration shared by the
// front-ends.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"rps-ca/internal/sim"
	"rps-ca/internal/terrain"
)

// Shape selects how the GUI paints a cell.
type Shape string

const (
	ShapeDots   Shape = "dots"
	ShapePixels Shape = "pixels"
)

// Config represents the parameters for a run.
type Config struct {
	Size         int   `yaml:"size"`
	Seed         int64 `yaml:"seed"`
	Speed        int   `yaml:"speed"`
	Mixing       int   `yaml:"mixing"`
	BatchSteps   int   `yaml:"batch_steps"`
	MixPairs     int   `yaml:"mix_pairs"`
	MixThreshold int   `yaml:"mix_threshold"`
	Scale        int   `yaml:"scale"`
	TPS          int   `yaml:"tps"`
	Fit          bool  `yaml:"fit"`
	Shape        Shape `yaml:"shape"`

	explicit map[string]bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Size:         terrain.DefaultSize,
		Speed:        5,
		Mixing:       0,
		BatchSteps:   sim.DefaultBatchSteps,
		MixPairs:     sim.DefaultMixPairs,
		MixThreshold: sim.DefaultMixThreshold,
		Scale:        6,
		TPS:          60,
		Shape:        ShapeDots,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Size, "size", c.Size, "grid side length")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 picks one from the clock)")
	fs.IntVar(&c.Speed, "speed", c.Speed, "simulation speed 1..10")
	fs.IntVar(&c.Mixing, "mixing", c.Mixing, "mixing level 0..10")
	fs.IntVar(&c.BatchSteps, "batch-steps", c.BatchSteps, "combats per batch")
	fs.IntVar(&c.MixPairs, "mix-pairs", c.MixPairs, "pairs swapped per mix")
	fs.IntVar(&c.MixThreshold, "mix-threshold", c.MixThreshold, "mixing accumulator threshold")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.BoolVar(&c.Fit, "fit", c.Fit, "scale the terrain to fill the window")
	fs.Func("shape", "cell shape: dots or pixels", func(v string) error {
		c.Shape = Shape(v)
		return nil
	})
}

// Load overlays the YAML file at path onto c. Unknown keys are rejected.
func (c *Config) Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Size <= 0:
		return fmt.Errorf("size must be positive, got %d", c.Size)
	case c.Speed < sim.MinSpeed || c.Speed > sim.MaxSpeed:
		return fmt.Errorf("speed must be in [%d,%d], got %d", sim.MinSpeed, sim.MaxSpeed, c.Speed)
	case c.Mixing < sim.MinMixing || c.Mixing > sim.MaxMixing:
		return fmt.Errorf("mixing must be in [%d,%d], got %d", sim.MinMixing, sim.MaxMixing, c.Mixing)
	case c.BatchSteps <= 0:
		return fmt.Errorf("batch_steps must be positive, got %d", c.BatchSteps)
	case c.MixPairs <= 0:
		return fmt.Errorf("mix_pairs must be positive, got %d", c.MixPairs)
	case c.MixThreshold <= 0:
		return fmt.Errorf("mix_threshold must be positive, got %d", c.MixThreshold)
	case c.Scale <= 0:
		return fmt.Errorf("scale must be positive, got %d", c.Scale)
	case c.TPS <= 0:
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	case c.Shape != ShapeDots && c.Shape != ShapePixels:
		return fmt.Errorf("shape must be %q or %q, got %q", ShapeDots, ShapePixels, c.Shape)
	}
	return nil
}

// DriverOptions converts the run settings into sim.Options.
func (c *Config) DriverOptions() sim.Options {
	return sim.Options{
		BatchSteps:   c.BatchSteps,
		MixPairs:     c.MixPairs,
		MixThreshold: c.MixThreshold,
		Speed:        c.Speed,
		Mixing:       c.Mixing,
	}
}

// Explicit reports whether the named flag was given on the command line.
func (c *Config) Explicit(name string) bool { return c.explicit[name] }

// Parse builds a Config from defaults, the YAML file named by -config (if
// any) and the command-line flags, in increasing order of precedence. extra,
// when non-nil, binds command-specific flags.
func Parse(name string, args []string, extra func(fs *flag.FlagSet)) (*Config, error) {
	c := NewConfig()
	var path string
	pre := flag.NewFlagSet(name, flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	pre.StringVar(&path, "config", "", "")
	c.Bind(pre)
	if extra != nil {
		extra(pre)
	}
	_ = pre.Parse(args)
	if path != "" {
		if err := c.Load(path); err != nil {
			return nil, err
		}
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&path, "config", path, "YAML configuration file")
	c.Bind(fs)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	c.explicit = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.explicit[f.Name] = true })
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
