package ansi

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/kungfusheep/vgraph"
)

func TestWriterFlush(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, 5, 2)
	back := vgraph.NewCellBuffer(5, 2)

	t.Run("NothingChanged", func(t *testing.T) {
		if err := w.Flush(back); err != nil {
			t.Fatal(err)
		}
		if out.Len() != 0 {
			t.Errorf("expected no output for a blank frame, got %q", out.String())
		}
	})

	t.Run("SingleCell", func(t *testing.T) {
		out.Reset()
		back.SetCell(3, 1, vgraph.NewCell('x', vgraph.Style{}))
		if err := w.Flush(back); err != nil {
			t.Fatal(err)
		}
		want := "\x1b[2;4Hx\x1b[0m"
		if got := out.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
		if s := w.Stats(); s.ChangedCells != 1 || s.ChangedRows != 1 || s.Moves != 1 {
			t.Errorf("unexpected stats %+v", s)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		out.Reset()
		w.Flush(back)
		if out.Len() != 0 {
			t.Errorf("flushing the same frame twice should write nothing, got %q", out.String())
		}
	})

	t.Run("RunsShareOneMove", func(t *testing.T) {
		out.Reset()
		back.WriteString(0, 0, "abc", vgraph.Style{}, 0)
		w.Flush(back)
		if s := w.Stats(); s.Moves != 1 || s.ChangedCells != 3 {
			t.Errorf("a contiguous run should need one cursor move, got %+v", s)
		}
		if !strings.HasPrefix(out.String(), "\x1b[1;1Habc") {
			t.Errorf("unexpected output %q", out.String())
		}
	})

	t.Run("Style", func(t *testing.T) {
		out.Reset()
		style := vgraph.Style{FG: vgraph.BrightRed, BG: vgraph.RGB(1, 2, 3), Attr: vgraph.AttrBold}
		back.SetCell(0, 1, vgraph.NewCell('s', style))
		w.Flush(back)
		want := "\x1b[2;1H\x1b[0;1;91;48;2;1;2;3ms\x1b[0m"
		if got := out.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("WideRune", func(t *testing.T) {
		out.Reset()
		back.WriteString(0, 0, "日x", vgraph.Style{}, 0)
		w.Flush(back)
		if s := w.Stats(); s.Moves != 1 {
			t.Errorf("the cursor should advance two columns after a wide rune, got %+v", s)
		}
		if strings.Contains(out.String(), "\x00") {
			t.Errorf("continuation cells must not be written")
		}
	})
}

func TestWriterResizeAndFull(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, 2, 1)
	back := vgraph.NewCellBuffer(3, 2)
	back.WriteString(0, 0, "ab", vgraph.Style{}, 0)
	back.WriteString(0, 1, "c", vgraph.Style{}, 0)

	if err := w.Flush(back); err != nil {
		t.Fatal(err)
	}
	if w.Size() != (vgraph.Size{Width: 3, Height: 2}) {
		t.Errorf("front buffer should follow the new size, got %v", w.Size())
	}
	got := out.String()
	if !strings.HasPrefix(got, "\x1b[2J\x1b[H") || !strings.Contains(got, "ab \r\nc  ") {
		t.Errorf("expected a full redraw, got %q", got)
	}

	out.Reset()
	w.Forget()
	w.Flush(back)
	if s := w.Stats(); s.ChangedCells != 3 {
		t.Errorf("after Forget every non-blank cell should be rewritten, got %+v", s)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriterError(t *testing.T) {
	w := NewWriter(failingWriter{}, 1, 1)
	back := vgraph.NewCellBuffer(1, 1)
	back.SetCell(0, 0, vgraph.NewCell('x', vgraph.Style{}))
	if err := w.Flush(back); err == nil || !strings.Contains(err.Error(), "closed") {
		t.Errorf("expected the write error to be wrapped, got %v", err)
	}
}

func TestTerminalSizeNotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := TerminalSize(int(f.Fd())); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("expected ErrNotTerminal, got %v", err)
	}
	fallback := vgraph.Size{Width: 80, Height: 24}
	if got := SizeOr(int(f.Fd()), fallback); got != fallback {
		t.Errorf("expected fallback size, got %v", got)
	}
	if err := NewTerminal(int(f.Fd()), &bytes.Buffer{}).Enter(); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("Enter on a file should fail with ErrNotTerminal, got %v", err)
	}
	if err := NewTerminal(int(f.Fd()), &bytes.Buffer{}).Exit(); err != nil {
		t.Errorf("Exit without Enter should be a no-op, got %v", err)
	}
}
