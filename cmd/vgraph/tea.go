package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kungfusheep/vgraph"
	"github.com/kungfusheep/vgraph/teaview"
	"github.com/spf13/cobra"
)

func newTeaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tea",
		Short: "Run the dashboard inside a bubbletea program",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.graph()
			if err != nil {
				return err
			}
			size := a.fallbackSize()
			model := teaview.New(g, size.Width, size.Height)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go animate(ctx, g.RedrawSignal(), a.interval)

			themes := make(chan vgraph.Environment, 1)
			stopWatch, err := a.watchConfig(themes)
			if err != nil {
				return err
			}
			defer stopWatch()
			go func() {
				for {
					select {
					case env := <-themes:
						p.Send(themeMsg(env))
					case <-ctx.Done():
						return
					}
				}
			}()
			model.OnMsg(func(g *vgraph.ViewGraph, msg tea.Msg) tea.Cmd {
				if env, ok := msg.(themeMsg); ok {
					g.UpdateEnvironment(vgraph.Environment(env))
				}
				return nil
			})

			_, err = p.Run()
			a.logger.Info("tea finished", "stats", g.Stats())
			return err
		},
	}
}

type themeMsg vgraph.Environment

// animate requests a redraw on every tick. RedrawSignal is safe to use from
// any goroutine, so the program's event loop stays the only one touching
// the graph.
func animate(ctx context.Context, redraw *vgraph.RedrawSignal, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			redraw.Request()
		}
	}
}
