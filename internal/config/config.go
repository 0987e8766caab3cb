// Package config loads vgraph demo settings from defaults, a YAML file and
// VGRAPH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kungfusheep/vgraph"
	"github.com/spf13/viper"
)

// Config is the complete configuration.
type Config struct {
	Display DisplayConfig `mapstructure:"display"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DisplayConfig controls the output surface.
type DisplayConfig struct {
	// Width and Height size the buffer when the terminal size is unknown.
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	// Backend is "ansi" or "tcell".
	Backend string `mapstructure:"backend"`
	// Frames is how many frames the demo renders; 0 runs until interrupted.
	Frames int `mapstructure:"frames"`
	// CellDiff adds cell-level patches to every incremental frame.
	CellDiff bool `mapstructure:"cell_diff"`
}

// ThemeConfig holds the colours handed to views through the environment.
// Values are colour names ("red", "bright-cyan") or hex ("#1e1e2e").
type ThemeConfig struct {
	Foreground string `mapstructure:"foreground"`
	Background string `mapstructure:"background"`
	Accent     string `mapstructure:"accent"`
	Focus      string `mapstructure:"focus"`
	// Border is "none", "single", "rounded", "double" or "thick".
	Border string `mapstructure:"border"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
	// File receives log output; empty means stderr.
	File string `mapstructure:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:   80,
			Height:  24,
			Backend: "ansi",
			Frames:  0,
		},
		Theme: ThemeConfig{
			Foreground: "default",
			Background: "default",
			Accent:     "cyan",
			Focus:      "yellow",
			Border:     "rounded",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// SetDefaults registers the default values with v.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("display.width", d.Display.Width)
	v.SetDefault("display.height", d.Display.Height)
	v.SetDefault("display.backend", d.Display.Backend)
	v.SetDefault("display.frames", d.Display.Frames)
	v.SetDefault("display.cell_diff", d.Display.CellDiff)

	v.SetDefault("theme.foreground", d.Theme.Foreground)
	v.SetDefault("theme.background", d.Theme.Background)
	v.SetDefault("theme.accent", d.Theme.Accent)
	v.SetDefault("theme.focus", d.Theme.Focus)
	v.SetDefault("theme.border", d.Theme.Border)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.json", d.Logging.JSON)
	v.SetDefault("logging.file", d.Logging.File)
}

// NewViper returns a viper instance with defaults, environment binding and
// the config file read in. An empty cfgFile searches the config directory
// and the working directory for config.yaml; a missing file is not an
// error in that case.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("VGRAPH")
	// VGRAPH_DISPLAY_WIDTH for display.width
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

// Dir returns the user's vgraph config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vgraph")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vgraph"
	}
	return filepath.Join(home, ".config", "vgraph")
}

// Environment converts the theme into the values the built-in views read.
func (c *Config) Environment() (vgraph.Environment, error) {
	values := map[string]any{
		vgraph.EnvBorderStyle: c.Theme.Border,
	}
	colors := []struct {
		key, field, value string
	}{
		{vgraph.EnvForeground, "theme.foreground", c.Theme.Foreground},
		{vgraph.EnvBackground, "theme.background", c.Theme.Background},
		{vgraph.EnvAccent, "theme.accent", c.Theme.Accent},
		{vgraph.EnvFocusColor, "theme.focus", c.Theme.Focus},
	}
	for _, col := range colors {
		parsed, err := vgraph.ParseColor(col.value)
		if err != nil {
			return vgraph.Environment{}, fmt.Errorf("%s: %w", col.field, err)
		}
		if parsed.IsSet() {
			values[col.key] = parsed
		}
	}
	return vgraph.NewEnvironment(values), nil
}
