package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/kungfusheep/vgraph"
	"github.com/kungfusheep/vgraph/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is what every subcommand needs once flags and config are resolved.
type app struct {
	v        *viper.Viper
	cfg      *config.Config
	logger   *slog.Logger
	logClose func() error
	interval time.Duration
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "vgraph",
		Short: "Retained scene graph renderer for terminals",
		Long: `vgraph builds a render tree from declarative views, lays it out and
paints only what changed between frames.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logClose != nil {
				return a.logClose()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/vgraph/config.yaml)")
	flags.Int("width", 0, "buffer width when the terminal size is unknown")
	flags.Int("height", 0, "buffer height when the terminal size is unknown")
	flags.Int("frames", 0, "frames to render (0 runs until interrupted)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.Bool("cell-diff", false, "add cell-level patches to incremental frames")
	flags.DurationVar(&a.interval, "interval", 200*time.Millisecond, "time between animation frames")

	root.AddCommand(newDemoCmd(a), newTeaCmd(a), newDumpCmd(a))
	return root
}

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"width":     "display.width",
	"height":    "display.height",
	"frames":    "display.frames",
	"log-level": "logging.level",
	"cell-diff": "display.cell_diff",
}

func (a *app) init(cmd *cobra.Command) error {
	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return err
	}
	// Only flags given on the command line override file and environment.
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.v, a.cfg = v, cfg

	var out io.Writer = cmd.ErrOrStderr()
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out, a.logClose = f, f.Close
	}
	a.logger = vgraph.NewLogger(out, cfg.Logging.Level, cfg.Logging.JSON)
	return nil
}

// graph creates a ViewGraph configured from a.cfg with the dashboard as its
// root view.
func (a *app) graph() (*vgraph.ViewGraph, error) {
	env, err := a.cfg.Environment()
	if err != nil {
		return nil, err
	}
	g := vgraph.New(
		vgraph.WithLogger(a.logger),
		vgraph.WithEnvironment(env),
		vgraph.WithCellDiff(a.cfg.Display.CellDiff),
	)
	g.SetRootView(liveDashboard())
	return g, nil
}

// watchConfig sends the theme environment to updates whenever the config
// file changes. The caller applies it on the goroutine that owns the graph.
func (a *app) watchConfig(updates chan<- vgraph.Environment) (stop func(), err error) {
	if a.v.ConfigFileUsed() == "" {
		return func() {}, nil
	}
	w, err := config.NewWatcher(a.v, func(cfg *config.Config, err error) {
		if err != nil {
			a.logger.Warn("config reload failed", "error", err)
			return
		}
		env, err := cfg.Environment()
		if err != nil {
			a.logger.Warn("config reload failed", "error", err)
			return
		}
		a.logger.Info("config reloaded", "file", a.v.ConfigFileUsed())
		select {
		case updates <- env:
		default:
		}
	})
	if err != nil {
		return nil, err
	}
	w.Start()
	return w.Stop, nil
}
