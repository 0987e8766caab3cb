package main

import (
	"context"
	"time"

	"github.com/kungfusheep/vgraph"
)

// input is one event from a terminal backend.
type input struct {
	quit   bool
	next   bool
	prev   bool
	resize *vgraph.Size
}

// frameLoop renders g into buf and hands every frame to draw, advancing the
// animation on each tick until ctx ends, a quit input arrives or frames
// frames have been drawn (frames <= 0 means no limit).
func frameLoop(ctx context.Context, g *vgraph.ViewGraph, buf *vgraph.CellBuffer, draw func(*vgraph.CellBuffer) error,
	inputs <-chan input, themes <-chan vgraph.Environment, frames int, interval time.Duration) error {

	tick := time.NewTicker(interval)
	defer tick.Stop()

	for drawn := 0; frames <= 0 || drawn < frames; {
		if g.NeedsRender() {
			g.Render(buf)
			if err := draw(buf); err != nil {
				return err
			}
			drawn++
		}

		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			g.Refresh()
		case <-g.Redraws():
			g.Refresh()
		case env := <-themes:
			g.UpdateEnvironment(env)
		case in, ok := <-inputs:
			switch {
			case !ok || in.quit:
				return nil
			case in.next:
				g.FocusNext()
			case in.prev:
				g.FocusPrevious()
			case in.resize != nil:
				buf.Resize(in.resize.Width, in.resize.Height)
				g.Refresh()
			}
		}
	}
	return nil
}
