package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kungfusheep/vgraph"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Display.Width != 80 || cfg.Display.Height != 24 {
		t.Errorf("unexpected default size %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Display.Backend != "ansi" {
		t.Errorf("Display.Backend = %q, want ansi", cfg.Display.Backend)
	}
	if errs := cfg.Validate(); errs != nil {
		t.Errorf("defaults should validate, got %v", errs)
	}
}

func TestLoad(t *testing.T) {
	t.Run("DefaultsWithoutFile", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Chdir(t.TempDir())
		v, err := NewViper("")
		if err != nil {
			t.Fatalf("NewViper: %v", err)
		}
		cfg, err := Load(v)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.Theme.Border != "rounded" {
			t.Errorf("Theme.Border = %q, want rounded", cfg.Theme.Border)
		}
	})

	t.Run("File", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "display:\n  width: 120\n  cell_diff: true\ntheme:\n  accent: \"#ff8800\"\n")
		v, err := NewViper(path)
		if err != nil {
			t.Fatalf("NewViper: %v", err)
		}
		cfg, err := Load(v)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.Display.Width != 120 || cfg.Display.Height != 24 || !cfg.Display.CellDiff {
			t.Errorf("unexpected display config %+v", cfg.Display)
		}
		if cfg.Theme.Accent != "#ff8800" {
			t.Errorf("Theme.Accent = %q", cfg.Theme.Accent)
		}
	})

	t.Run("EnvOverride", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "display:\n  width: 120\n")
		t.Setenv("VGRAPH_DISPLAY_WIDTH", "90")
		t.Setenv("VGRAPH_LOGGING_LEVEL", "debug")
		v, err := NewViper(path)
		if err != nil {
			t.Fatalf("NewViper: %v", err)
		}
		cfg, err := Load(v)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.Display.Width != 90 || cfg.Logging.Level != "debug" {
			t.Errorf("environment should win over the file, got %+v %+v", cfg.Display, cfg.Logging)
		}
	})

	t.Run("MissingExplicitFile", func(t *testing.T) {
		if _, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected an error for a missing explicit config file")
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "display:\n  width: 0\n  backend: curses\n")
		v, err := NewViper(path)
		if err != nil {
			t.Fatalf("NewViper: %v", err)
		}
		_, err = Load(v)
		var errs ValidationErrors
		if !errors.As(err, &errs) || len(errs) != 2 {
			t.Fatalf("expected two validation errors, got %v", err)
		}
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("expected ErrInvalidSize in %v", err)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"Height", func(c *Config) { c.Display.Height = 5000 }, "display.height"},
		{"Frames", func(c *Config) { c.Display.Frames = -1 }, "display.frames"},
		{"Color", func(c *Config) { c.Theme.Foreground = "mauve" }, "theme.foreground"},
		{"Border", func(c *Config) { c.Theme.Border = "heavy" }, "theme.border"},
		{"LogLevel", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.edit(cfg)
			errs := cfg.Validate()
			if len(errs) != 1 || errs[0].Field != tt.field {
				t.Errorf("expected one error on %s, got %v", tt.field, errs)
			}
		})
	}
}

func TestEnvironment(t *testing.T) {
	cfg := Default()
	cfg.Theme.Background = "#000080"
	env, err := cfg.Environment()
	if err != nil {
		t.Fatalf("Environment: %v", err)
	}
	if got := env.Color(vgraph.EnvAccent, vgraph.Color{}); got != vgraph.Cyan {
		t.Errorf("accent = %v, want cyan", got)
	}
	if got := env.Color(vgraph.EnvBackground, vgraph.Color{}); got != vgraph.RGB(0, 0, 0x80) {
		t.Errorf("background = %v", got)
	}
	if _, ok := env.Value(vgraph.EnvForeground); ok {
		t.Errorf("default foreground should leave the key unset")
	}
	if got := env.String(vgraph.EnvBorderStyle, ""); got != "rounded" {
		t.Errorf("border = %q", got)
	}

	cfg.Theme.Focus = "#zz"
	if _, err := cfg.Environment(); err == nil {
		t.Error("expected an error for a bad colour")
	}
}

func TestWatcher(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "display:\n  width: 100\n")
	v, err := NewViper(path)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	changes := make(chan *Config, 4)
	w, err := NewWatcher(v, func(cfg *Config, err error) {
		if err == nil {
			changes <- cfg
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.Start()
	defer w.Stop()

	writeConfig(t, filepath.Dir(path), "display:\n  width: 110\n")

	select {
	case cfg := <-changes:
		if cfg.Display.Width != 110 {
			t.Errorf("expected reloaded width 110, got %d", cfg.Display.Width)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestNewWatcherWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	v, err := NewViper("")
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	if _, err := NewWatcher(v, func(*Config, error) {}); err == nil {
		t.Error("expected an error when no config file is in use")
	}
}
