package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/kungfusheep/vgraph"
	"github.com/kungfusheep/vgraph/ansi"
	"github.com/kungfusheep/vgraph/tcellout"
	"github.com/spf13/cobra"
)

func newDemoCmd(a *app) *cobra.Command {
	var backend string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the animated dashboard on this terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if backend == "" {
				backend = a.cfg.Display.Backend
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			g, err := a.graph()
			if err != nil {
				return err
			}
			themes := make(chan vgraph.Environment, 1)
			stopWatch, err := a.watchConfig(themes)
			if err != nil {
				return err
			}
			defer stopWatch()

			switch backend {
			case "ansi":
				return a.runANSI(ctx, g, themes)
			case "tcell":
				return a.runTcell(ctx, g, themes)
			}
			return fmt.Errorf("unknown backend %q", backend)
		},
	}
	cmd.Flags().StringVarP(&backend, "backend", "b", "", "output backend: ansi or tcell (default from config)")
	return cmd
}

func (a *app) fallbackSize() vgraph.Size {
	return vgraph.Size{Width: a.cfg.Display.Width, Height: a.cfg.Display.Height}
}

func (a *app) runANSI(ctx context.Context, g *vgraph.ViewGraph, themes <-chan vgraph.Environment) error {
	fd := int(os.Stdin.Fd())
	term := ansi.NewTerminal(fd, os.Stdout)
	if err := term.Enter(); err != nil {
		if errors.Is(err, ansi.ErrNotTerminal) {
			return fmt.Errorf("demo needs a terminal, try 'vgraph dump': %w", err)
		}
		return err
	}
	defer term.Exit()

	size := ansi.SizeOr(fd, a.fallbackSize())
	buf := vgraph.NewCellBuffer(size.Width, size.Height)
	out := ansi.NewWriter(os.Stdout, size.Width, size.Height)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	inputs := make(chan input, 8)
	go readKeys(ctx, os.Stdin, inputs)
	go func() {
		for s := range ansi.WatchResize(ctx, fd) {
			select {
			case inputs <- input{resize: &s}:
			case <-ctx.Done():
				return
			}
		}
	}()

	err := frameLoop(ctx, g, buf, out.Flush, inputs, themes, a.cfg.Display.Frames, a.interval)
	st := out.Stats()
	a.logger.Info("demo finished", "backend", "ansi", "bytes", st.Bytes, "cells", st.ChangedCells, "stats", g.Stats())
	return err
}

// readKeys decodes the handful of keys the demo understands from raw-mode
// input. The read blocks until the next key, so the goroutine lingers after
// ctx ends until stdin delivers something or the process exits.
func readKeys(ctx context.Context, r io.Reader, inputs chan<- input) {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			close(inputs)
			return
		}
		var in input
		switch b {
		case 'q', 3: // ctrl+c in raw mode
			in.quit = true
		case '\t':
			in.next = true
		case 0x1b:
			// shift+tab arrives as ESC [ Z
			if seq, err := br.Peek(2); err == nil && string(seq) == "[Z" {
				br.Discard(2)
				in.prev = true
			} else {
				in.quit = true
			}
		default:
			continue
		}
		select {
		case inputs <- in:
		case <-ctx.Done():
			return
		}
	}
}

func (a *app) runTcell(ctx context.Context, g *vgraph.ViewGraph, themes <-chan vgraph.Environment) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	sink := tcellout.NewSink(screen)
	size := sink.Size()
	buf := vgraph.NewCellBuffer(size.Width, size.Height)

	inputs := make(chan input, 8)
	go pollTcell(screen, inputs)

	draw := func(buf *vgraph.CellBuffer) error {
		sink.Draw(buf)
		return nil
	}
	err = frameLoop(ctx, g, buf, draw, inputs, themes, a.cfg.Display.Frames, a.interval)
	a.logger.Info("demo finished", "backend", "tcell", "stats", g.Stats())
	return err
}

// pollTcell forwards screen events until the screen is finalised.
func pollTcell(screen tcell.Screen, inputs chan<- input) {
	defer close(inputs)
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			w, h := ev.Size()
			inputs <- input{resize: &vgraph.Size{Width: w, Height: h}}
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
				inputs <- input{quit: true}
			case ev.Key() == tcell.KeyTab:
				inputs <- input{next: true}
			case ev.Key() == tcell.KeyBacktab:
				inputs <- input{prev: true}
			}
		}
	}
}
