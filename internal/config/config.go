// Package config holds the run parameters shared by the command-line tools.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"life-engine/internal/growth"
	"life-engine/internal/sim"
)

// Config represents the parameters of one simulation run.
type Config struct {
	File       string  `yaml:"-"`
	Input      string  `yaml:"input"`
	Iterations int     `yaml:"iterations"`
	Engines    string  `yaml:"engines"`
	Workers    int     `yaml:"workers"`
	Growth     bool    `yaml:"growth"`
	Margin     int     `yaml:"margin"`
	Pad        int     `yaml:"pad"`
	MaxSize    int     `yaml:"max_size"`
	Random     int     `yaml:"random"`
	Density    float64 `yaml:"density"`
	Seed       int64   `yaml:"seed"`
	Print      bool    `yaml:"print"`
	Animate    bool    `yaml:"animate"`
	TickMillis int     `yaml:"tick_ms"`
	Scale      int     `yaml:"scale"`
	TPS        int     `yaml:"tps"`
	LogLevel   string  `yaml:"log_level"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Iterations: 100,
		Engines:    "padded",
		Margin:     growth.DefaultMargin,
		Pad:        growth.DefaultPad,
		Density:    0.3,
		Seed:       42,
		TickMillis: 100,
		Scale:      3,
		TPS:        30,
		LogLevel:   "info",
	}
}

// EngineList splits the comma-separated engine names.
func (c Config) EngineList() []string {
	var names []string
	for _, name := range strings.Split(c.Engines, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Sim returns the driver configuration for the named engine.
func (c Config) Sim(engine string) sim.Config {
	return sim.Config{
		Engine:  engine,
		Workers: c.Workers,
		Growth:  c.Growth,
		Policy:  growth.Policy{Margin: c.Margin, Pad: c.Pad, MaxSize: c.MaxSize},
	}
}

// Validate checks values that have no sensible fallback.
func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("config: iterations must not be negative, got %d", c.Iterations)
	}
	if c.Input == "" && c.Random <= 0 {
		return fmt.Errorf("config: need an input file or a random grid size")
	}
	if len(c.EngineList()) == 0 {
		return fmt.Errorf("config: no engines selected")
	}
	if c.Animate && c.Growth {
		return fmt.Errorf("config: animation runs on a fixed-size grid, disable growth")
	}
	if c.Density < 0 || c.Density > 1 {
		return fmt.Errorf("config: density must be within [0,1], got %g", c.Density)
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.File, "config", c.File, "YAML file with run parameters; flags override it")
	fs.StringVar(&c.Input, "input", c.Input, "grid file of 'X' (alive) and '.' (dead)")
	fs.IntVar(&c.Iterations, "iterations", c.Iterations, "generations to simulate")
	fs.StringVar(&c.Engines, "engines", c.Engines, "comma-separated engines to run")
	fs.IntVar(&c.Workers, "workers", c.Workers, "worker goroutines for parallel engines (0 = all CPUs)")
	fs.BoolVar(&c.Growth, "growth", c.Growth, "grow the grid when live cells approach the edge")
	fs.IntVar(&c.Margin, "margin", c.Margin, "edge band width that triggers growth")
	fs.IntVar(&c.Pad, "pad", c.Pad, "minimum cells added per side on growth")
	fs.IntVar(&c.MaxSize, "max-size", c.MaxSize, "largest side length growth may reach (0 = unbounded)")
	fs.IntVar(&c.Random, "random", c.Random, "side of a random starting grid, used when -input is empty")
	fs.Float64Var(&c.Density, "density", c.Density, "live cell probability for random grids")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random grids")
	fs.BoolVar(&c.Print, "print", c.Print, "print the final grid")
	fs.BoolVar(&c.Animate, "animate", c.Animate, "animate the run in the terminal")
	fs.IntVar(&c.TickMillis, "tick", c.TickMillis, "milliseconds per animation frame")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier for the viewer")
	fs.IntVar(&c.TPS, "tps", c.TPS, "viewer generations per second")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// Load reads a YAML file over the current values.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// Parse binds c to fs and parses args. When -config names a file it is
// loaded and args are parsed again so explicit flags win over the file.
func (c *Config) Parse(fs *flag.FlagSet, args []string) error {
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.File == "" {
		return nil
	}
	if err := c.Load(c.File); err != nil {
		return err
	}
	return fs.Parse(args)
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["input"]; ok {
		c.Input = v
	}
	if v, ok := cfg["iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Iterations = parsed
		}
	}
	if v, ok := cfg["engines"]; ok && strings.TrimSpace(v) != "" {
		c.Engines = v
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["growth"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Growth = parsed
		}
	}
	if v, ok := cfg["margin"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Margin = parsed
		}
	}
	if v, ok := cfg["pad"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Pad = parsed
		}
	}
	if v, ok := cfg["max_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.MaxSize = parsed
		}
	}
	if v, ok := cfg["random"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Random = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["log_level"]; ok && v != "" {
		c.LogLevel = v
	}
	return c
}
