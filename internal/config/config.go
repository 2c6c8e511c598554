// File: internal/config/config.go

// Package config carries the runtime configuration for the platen CLI:
// logging, default page geometry, and the render pipeline. Values come from
// built-in defaults, an optional YAML file, and PLATEN_* environment
// variables, in ascending order of precedence.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/formeset/platen/layout"
)

// Config holds the entire application configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Page   PageConfig   `mapstructure:"page" yaml:"page"`
	Render RenderConfig `mapstructure:"render" yaml:"render"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// PageConfig holds the page defaults applied where a document does not
// specify its own geometry: the starter size written by `platen new`, the
// density for pages without a dpi attribute, and the default body margin.
type PageConfig struct {
	Width  string  `mapstructure:"width" yaml:"width"`
	Height string  `mapstructure:"height" yaml:"height"`
	DPI    float64 `mapstructure:"dpi" yaml:"dpi"`
	Margin string  `mapstructure:"margin" yaml:"margin"`
}

// RenderConfig controls the output pipeline.
type RenderConfig struct {
	Format  string `mapstructure:"format" yaml:"format"`
	FontDir string `mapstructure:"font_dir" yaml:"font_dir"`
	Workers int    `mapstructure:"workers" yaml:"workers"`
	Creator string `mapstructure:"creator" yaml:"creator"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "platen")
	v.SetDefault("logger.log_file", "platen.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Page defaults (US Letter at screen density) --
	v.SetDefault("page.width", "612px")
	v.SetDefault("page.height", "792px")
	v.SetDefault("page.dpi", 96.0)
	v.SetDefault("page.margin", "0px")

	// -- Render pipeline --
	v.SetDefault("render.format", "pdf")
	v.SetDefault("render.font_dir", "")
	v.SetDefault("render.workers", 4)
	v.SetDefault("render.creator", "platen")
}

// NewConfigFromViper builds a validated Config from a fully loaded viper
// instance.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// The font directory is machine specific and usually set per host.
	v.BindEnv("render.font_dir", "PLATEN_FONT_DIR")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate rejects values that would otherwise fail deep inside the render
// pipeline, so a bad config surfaces before any document is parsed.
func (c *Config) Validate() error {
	if err := c.Page.Validate(); err != nil {
		return fmt.Errorf("page configuration invalid: %w", err)
	}
	if err := c.Render.Validate(); err != nil {
		return fmt.Errorf("render configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the page defaults.
func (p *PageConfig) Validate() error {
	if p.DPI <= 0 {
		return fmt.Errorf("page.dpi must be a positive number")
	}
	if err := validatePageLength("page.width", p.Width); err != nil {
		return err
	}
	if err := validatePageLength("page.height", p.Height); err != nil {
		return err
	}
	if p.Margin != "" {
		if _, err := layout.ParseLength(p.Margin); err != nil {
			return fmt.Errorf("page.margin: %w", err)
		}
	}
	return nil
}

// validatePageLength parses a configured page dimension. Percentages are
// rejected here for the same reason the document language rejects them: a
// page has no parent to take a percentage of.
func validatePageLength(key, value string) error {
	length, err := layout.ParseLength(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if length.Unit == layout.UnitPercent {
		return fmt.Errorf("%s cannot be a percentage", key)
	}
	return nil
}

// Validate checks the render pipeline settings.
func (r *RenderConfig) Validate() error {
	if r.Workers <= 0 {
		return fmt.Errorf("render.workers must be a positive integer")
	}
	switch r.Format {
	case "pdf", "png":
	default:
		return fmt.Errorf("render.format must be \"pdf\" or \"png\", got %q", r.Format)
	}
	return nil
}

// Size returns the configured default page dimensions as lengths.
func (p *PageConfig) Size() (width, height layout.Length, err error) {
	width, err = layout.ParseLength(p.Width)
	if err != nil {
		return layout.Length{}, layout.Length{}, fmt.Errorf("page.width: %w", err)
	}
	height, err = layout.ParseLength(p.Height)
	if err != nil {
		return layout.Length{}, layout.Length{}, fmt.Errorf("page.height: %w", err)
	}
	return width, height, nil
}

// MarginInset returns the configured default margin as a uniform inset.
func (p *PageConfig) MarginInset() (layout.Inset, error) {
	if p.Margin == "" {
		return layout.Inset{}, nil
	}
	l, err := layout.ParseLength(p.Margin)
	if err != nil {
		return layout.Inset{}, fmt.Errorf("page.margin: %w", err)
	}
	return layout.UniformInset(l), nil
}
