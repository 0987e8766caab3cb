package ansi

import (
	"errors"
	"fmt"
	"io"

	"github.com/kungfusheep/vgraph"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when a file descriptor is not a terminal.
var ErrNotTerminal = errors.New("ansi: not a terminal")

// Terminal owns the terminal mode: raw input, alternate screen, hidden
// cursor. Exit restores whatever Enter changed.
type Terminal struct {
	fd    int
	out   io.Writer
	state *term.State
}

// NewTerminal wraps fd, writing control sequences to out.
func NewTerminal(fd int, out io.Writer) *Terminal {
	return &Terminal{fd: fd, out: out}
}

// Enter switches to raw mode and the alternate screen.
func (t *Terminal) Enter() error {
	if t.state != nil {
		return nil
	}
	if !term.IsTerminal(t.fd) {
		return ErrNotTerminal
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	t.state = state
	// alternate screen, clear, home, hide cursor
	if _, err := io.WriteString(t.out, "\x1b[?1049h\x1b[2J\x1b[H\x1b[?25l"); err != nil {
		return fmt.Errorf("enter alternate screen: %w", err)
	}
	return nil
}

// Exit leaves the alternate screen and restores the original mode.
func (t *Terminal) Exit() error {
	if t.state == nil {
		return nil
	}
	io.WriteString(t.out, "\x1b[0m\x1b[?25h\x1b[?1049l")
	state := t.state
	t.state = nil
	if err := term.Restore(t.fd, state); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

// Size returns the terminal size.
func (t *Terminal) Size() (vgraph.Size, error) {
	return TerminalSize(t.fd)
}

// TerminalSize returns the size of the terminal on fd.
func TerminalSize(fd int) (vgraph.Size, error) {
	if !term.IsTerminal(fd) {
		return vgraph.Size{}, ErrNotTerminal
	}
	if s, err := winsize(fd); err == nil {
		return s, nil
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return vgraph.Size{}, fmt.Errorf("terminal size: %w", err)
	}
	return vgraph.Size{Width: w, Height: h}, nil
}

// SizeOr returns the terminal size, or fallback when fd is not a terminal.
func SizeOr(fd int, fallback vgraph.Size) vgraph.Size {
	s, err := TerminalSize(fd)
	if err != nil || s.Width <= 0 || s.Height <= 0 {
		return fallback
	}
	return s
}
