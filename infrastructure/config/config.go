// Package config loads application settings from YAML.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"channel-mixer-go/domain/mixer"
	"channel-mixer-go/infrastructure/logging"
)

// Config is the full application configuration.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Preview PreviewConfig `yaml:"preview"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig sets the initial main window size.
type WindowConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// PreviewConfig controls on-screen thumbnails.
type PreviewConfig struct {
	SlotSize   int    `yaml:"slot_size"`
	ResultSize int    `yaml:"result_size"`
	Background string `yaml:"background"`
}

// ExportConfig controls the offered export sizes and PNG encoding.
type ExportConfig struct {
	Sizes       []int  `yaml:"sizes"`
	DefaultSize int    `yaml:"default_size"`
	Compression string `yaml:"compression"`
}

// LoggingConfig is the subset of logging.Config exposed to users.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	AddSource bool   `yaml:"add_source"`
}

// DefaultOverridePath returns the location of the optional user override file.
func DefaultOverridePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, logging.AppName, "config.yaml")
}

// Load parses the embedded defaults and then applies the override file at
// overridePath if it exists. An empty overridePath skips the override.
func Load(defaults fs.FS, defaultsPath, overridePath string) (*Config, error) {
	data, err := fs.ReadFile(defaults, defaultsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read default config %s: %w", defaultsPath, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse default config %s: %w", defaultsPath, err)
	}

	if overridePath != "" {
		if err := cfg.mergeFile(overridePath); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile overlays keys present in path onto cfg. A missing file is not an error.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	slog.Debug("Config override applied", "path", path)
	return nil
}

// Validate checks value ranges and cross-field constraints.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %vx%v", c.Window.Width, c.Window.Height)
	}
	if c.Preview.SlotSize <= 0 || c.Preview.ResultSize <= 0 {
		return fmt.Errorf("preview sizes must be positive")
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if len(c.Export.Sizes) == 0 {
		return fmt.Errorf("export.sizes must not be empty")
	}
	for _, s := range c.Export.Sizes {
		if s <= 0 {
			return fmt.Errorf("export size must be positive, got %d", s)
		}
	}
	if !slices.Contains(c.Export.Sizes, c.Export.DefaultSize) {
		return fmt.Errorf("export.default_size %d is not one of %v", c.Export.DefaultSize, c.Export.Sizes)
	}
	if _, err := mixer.ParseCompression(c.Export.Compression); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// BackgroundColor parses Preview.Background as a hex color.
func (c *Config) BackgroundColor() (color.Color, error) {
	col, err := colorful.Hex(c.Preview.Background)
	if err != nil {
		return nil, fmt.Errorf("invalid preview.background %q: %w", c.Preview.Background, err)
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// MixerOptions converts the relevant settings for the mixer.
// Call Validate first; invalid values fall back to defaults.
func (c *Config) MixerOptions() *mixer.Options {
	opts := mixer.DefaultOptions()
	if bg, err := c.BackgroundColor(); err == nil {
		opts.Background = bg
	}
	if comp, err := mixer.ParseCompression(c.Export.Compression); err == nil {
		opts.Compression = comp
	}
	return opts
}

// LogConfig builds the logging setup from these settings.
func (c *Config) LogConfig() *logging.Config {
	cfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(c.Logging.Level); err == nil {
		cfg.Level = level
	}
	cfg.AddSource = c.Logging.AddSource
	return cfg
}
