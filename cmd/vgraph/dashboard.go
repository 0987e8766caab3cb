package main

import (
	"fmt"

	"github.com/kungfusheep/vgraph"
)

var services = []string{"api", "auth", "billing", "search", "worker"}

// dashboard is the demo screen for one animation frame.
type dashboard struct {
	frame int
}

func (d dashboard) Body() any {
	// rotate every few frames so keyed rows move
	shift := (d.frame / 5) % len(services)
	rows := make([]any, 0, len(services))
	bars := make([]any, 0, len(services))
	for i := range services {
		name := services[(i+shift)%len(services)]
		rows = append(rows, vgraph.Text(name).Key(name).Focusable())
		bars = append(bars, vgraph.HStack(
			vgraph.Text(fmt.Sprintf("%-8s", name)),
			vgraph.Progress(load(name, d.frame), 100).Grow(1).Themed(),
		).Key(name))
	}

	return vgraph.VStack(
		vgraph.HStack(
			vgraph.Text("vgraph").Bold(),
			vgraph.Spacer(),
			vgraph.Text(fmt.Sprintf("frame %d", d.frame)),
		).FillWidth(),
		vgraph.HStack(
			vgraph.VStack(rows...).Themed().Width(14).FillHeight(),
			vgraph.VStack(bars...).Themed().Grow(1).FillHeight(),
		).Gap(1).Grow(1).FillWidth(),
		vgraph.Text("tab: focus  q: quit").FG(vgraph.BrightBlack),
	).Themed()
}

// load is a deterministic pseudo-measurement in [0, 100].
func load(name string, frame int) int {
	seed := 0
	for _, r := range name {
		seed = seed*31 + int(r)
	}
	v := (seed + frame*7) % 200
	if v > 100 {
		v = 200 - v
	}
	return v
}

// liveDashboard advances one frame per construction pass, keeping the
// frame counter in node storage.
func liveDashboard() vgraph.ViewFunc {
	return func(ctx vgraph.RenderContext) *vgraph.RenderNode {
		frame := vgraph.Value(ctx, "frame", 0)
		ctx.SetValue("frame", frame+1)
		return vgraph.Build(ctx, dashboard{frame: frame})
	}
}
