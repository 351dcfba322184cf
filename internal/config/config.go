// Package config loads the picklist configuration from YAML.
package config

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taigrr/picklist/internal/ui/layout"
	"github.com/taigrr/picklist/internal/ui/picklist"
	"gopkg.in/yaml.v3"
)

const (
	appName = "picklist"

	defaultTemplatePath   = "row"
	defaultTemplateWidth  = 48
	defaultTemplateHeight = 1
	defaultConstraint     = 1
	defaultDatasetSize    = 1000
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

type Spacing struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Padding struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

// Template describes the cell template registered with the terminal host.
type Template struct {
	Path   string `yaml:"path"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Pick holds the selection policy. SingleUnpickable defaults to true.
type Pick struct {
	SingleUnpickable *bool `yaml:"single_unpickable,omitempty"`
	MultiPickable    bool  `yaml:"multi_pickable"`
	DisablePick      bool  `yaml:"disable_pick"`
}

// Dataset controls the generated demo entries.
type Dataset struct {
	Size   int    `yaml:"size"`
	Seed   int64  `yaml:"seed"`
	Filter string `yaml:"filter,omitempty"`
}

type Config struct {
	Axis       string   `yaml:"axis"`
	Constraint int      `yaml:"constraint"`
	Spacing    Spacing  `yaml:"spacing"`
	Padding    Padding  `yaml:"padding"`
	Template   Template `yaml:"template"`
	Pick       Pick     `yaml:"pick"`
	Dataset    Dataset  `yaml:"dataset"`

	LogFile string `yaml:"log_file"`
	Debug   bool   `yaml:"debug"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads the YAML file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, fills in defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	c.Axis = cmp.Or(c.Axis, layout.Vertical.String())
	c.Constraint = cmp.Or(c.Constraint, defaultConstraint)
	c.Template.Path = cmp.Or(c.Template.Path, defaultTemplatePath)
	c.Template.Width = cmp.Or(c.Template.Width, defaultTemplateWidth)
	c.Template.Height = cmp.Or(c.Template.Height, defaultTemplateHeight)
	c.Dataset.Size = cmp.Or(c.Dataset.Size, defaultDatasetSize)
	c.LogFile = cmp.Or(c.LogFile, defaultLogFile())
	if c.Pick.SingleUnpickable == nil {
		v := true
		c.Pick.SingleUnpickable = &v
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := parseAxis(c.Axis); err != nil {
		return err
	}
	if c.Constraint < 1 {
		return fmt.Errorf("%w: constraint must be at least 1, got %d", ErrInvalid, c.Constraint)
	}
	if c.Template.Width < 1 || c.Template.Height < 1 {
		return fmt.Errorf("%w: template size must be positive, got %dx%d", ErrInvalid, c.Template.Width, c.Template.Height)
	}
	if c.Dataset.Size < 0 {
		return fmt.Errorf("%w: dataset size must not be negative, got %d", ErrInvalid, c.Dataset.Size)
	}
	if c.Spacing.X < 0 || c.Spacing.Y < 0 {
		return fmt.Errorf("%w: spacing must not be negative", ErrInvalid)
	}
	return nil
}

// LayoutAxis returns the configured scroll axis.
func (c *Config) LayoutAxis() layout.Axis {
	axis, _ := parseAxis(c.Axis)
	return axis
}

// PickOptions returns the configured selection policy.
func (c *Config) PickOptions() picklist.Options {
	opts := picklist.DefaultOptions()
	if c.Pick.SingleUnpickable != nil {
		opts.SingleUnpickable = *c.Pick.SingleUnpickable
	}
	opts.MultiPickable = c.Pick.MultiPickable
	opts.DisablePick = c.Pick.DisablePick
	return opts
}

func parseAxis(s string) (layout.Axis, error) {
	switch s {
	case layout.Vertical.String():
		return layout.Vertical, nil
	case layout.Horizontal.String():
		return layout.Horizontal, nil
	default:
		return layout.Vertical, fmt.Errorf("%w: unknown axis %q", ErrInvalid, s)
	}
}

func defaultLogFile() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, appName, "picklist.log")
	}
	return filepath.Join(os.TempDir(), appName+".log")
}
