package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/milk9111/actionkit/action"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid")

// Vec is a 2D vector in world units.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Config holds the runtime settings shared by the CLI and the demo.
type Config struct {
	TicksPerSecond int     `yaml:"ticks_per_second"`
	SoftCategories string  `yaml:"soft_categories"`
	LogLevel       int     `yaml:"log_level"`
	RecipeDir      string  `yaml:"recipe_dir"`
	Watch          bool    `yaml:"watch"`
	Gravity        Vec     `yaml:"gravity"`
	GroundY        float64 `yaml:"ground_y"`
}

func Default() Config {
	return Config{
		TicksPerSecond: 60,
		SoftCategories: "Animation",
		Gravity:        Vec{X: 0, Y: 900},
		GroundY:        400,
	}
}

// Load reads path over the defaults. An empty or missing path yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.TicksPerSecond <= 0 {
		return fmt.Errorf("%w: ticks_per_second must be positive, got %d", ErrInvalid, c.TicksPerSecond)
	}
	if c.LogLevel < 0 {
		return fmt.Errorf("%w: log_level must not be negative", ErrInvalid)
	}
	if _, err := c.SoftMask(); err != nil {
		return fmt.Errorf("%w: soft_categories: %v", ErrInvalid, err)
	}
	return nil
}

// SoftMask parses SoftCategories.
func (c Config) SoftMask() (action.Category, error) {
	return action.ParseCategory(c.SoftCategories)
}

// DeltaTime is the fixed step length in seconds.
func (c Config) DeltaTime() float64 {
	if c.TicksPerSecond <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TicksPerSecond)
}
