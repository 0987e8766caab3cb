// Package tcellout draws vgraph cell buffers onto a tcell screen.
package tcellout

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kungfusheep/vgraph"
)

// Screen is the part of tcell.Screen needed to draw cells.
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// Color maps a vgraph colour to tcell.
func Color(c vgraph.Color) tcell.Color {
	switch c.Mode {
	case vgraph.Color16, vgraph.Color256:
		return tcell.PaletteColor(int(c.Index))
	case vgraph.ColorRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.ColorDefault
}

// Style maps a vgraph style to tcell.
func Style(s vgraph.Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(Color(s.FG)).
		Background(Color(s.BG)).
		Bold(s.Attr.Has(vgraph.AttrBold)).
		Dim(s.Attr.Has(vgraph.AttrDim)).
		Italic(s.Attr.Has(vgraph.AttrItalic)).
		Underline(s.Attr.Has(vgraph.AttrUnderline)).
		Reverse(s.Attr.Has(vgraph.AttrInverse)).
		StrikeThrough(s.Attr.Has(vgraph.AttrStrikethrough))
}

// Blit copies every cell of buf that fits on screen and returns the number
// of cells written. Continuation cells of wide runes are skipped; tcell
// draws the whole rune from its first cell.
func Blit(screen Screen, buf *vgraph.CellBuffer) int {
	sw, sh := screen.Size()
	w, h := min(sw, buf.Width()), min(sh, buf.Height())
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := buf.Cell(x, y)
			if c.IsContinuation() {
				continue
			}
			screen.SetContent(x, y, c.Rune, nil, Style(c.Style))
			n++
		}
	}
	return n
}

// Sink draws frames onto a tcell screen, sending only the cells that
// changed since the previous frame.
type Sink struct {
	screen tcell.Screen
	front  *vgraph.CellBuffer
}

// NewSink wraps an initialised screen.
func NewSink(screen tcell.Screen) *Sink {
	return &Sink{screen: screen}
}

// Size returns the screen size.
func (s *Sink) Size() vgraph.Size {
	w, h := s.screen.Size()
	return vgraph.Size{Width: w, Height: h}
}

// Draw puts buf on screen and shows it. It returns the number of cells
// sent to the screen.
func (s *Sink) Draw(buf *vgraph.CellBuffer) int {
	n := 0
	if s.front == nil || s.front.Size() != buf.Size() {
		s.screen.Clear()
		n = Blit(s.screen, buf)
		s.front = buf.Copy()
		s.screen.Show()
		return n
	}
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			c := buf.Cell(x, y)
			if c == s.front.Cell(x, y) {
				continue
			}
			s.front.SetCell(x, y, c)
			if c.IsContinuation() {
				continue
			}
			s.screen.SetContent(x, y, c.Rune, nil, Style(c.Style))
			n++
		}
	}
	if n > 0 {
		s.screen.Show()
	}
	return n
}

// Sync forgets what is on screen so the next Draw repaints everything, for
// use after a resize event.
func (s *Sink) Sync() {
	s.front = nil
	s.screen.Sync()
}
