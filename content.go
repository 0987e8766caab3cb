package vgraph

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// EmptyContent paints nothing and measures zero.
type EmptyContent struct{}

func (EmptyContent) Kind() string                   { return "empty" }
func (EmptyContent) Measure(LayoutConstraints) Size { return Size{} }
func (EmptyContent) Paint(*CellBuffer, PaintArea)   {}

func (EmptyContent) Equal(other Content) bool {
	_, ok := other.(EmptyContent)
	return ok
}

// StackContent marks a container. The arrangement itself is carried on the
// node (SetStack); it is repeated here so a direction change shows up as a
// content change when diffing.
type StackContent struct {
	Direction Direction
	Gap       int
}

func (StackContent) Kind() string                   { return "stack" }
func (StackContent) Measure(LayoutConstraints) Size { return Size{} }
func (StackContent) Paint(*CellBuffer, PaintArea)   {}

func (s StackContent) Equal(other Content) bool {
	o, ok := other.(StackContent)
	return ok && o == s
}

// SpacerContent is flexible empty space.
type SpacerContent struct{}

func (SpacerContent) Kind() string                   { return "spacer" }
func (SpacerContent) Measure(LayoutConstraints) Size { return Size{} }
func (SpacerContent) Paint(*CellBuffer, PaintArea)   {}

func (SpacerContent) Equal(other Content) bool {
	_, ok := other.(SpacerContent)
	return ok
}

// TextContent is one or more lines of text. Lines longer than the frame are
// clipped, never wrapped.
type TextContent struct {
	Text string
}

func (TextContent) Kind() string { return "text" }

func (t TextContent) lines() []string {
	return strings.Split(t.Text, "\n")
}

// Measure returns the widest line's display width by the number of lines.
func (t TextContent) Measure(c LayoutConstraints) Size {
	if t.Text == "" {
		return Size{}
	}
	lines := t.lines()
	w := 0
	for _, l := range lines {
		w = max(w, runewidth.StringWidth(l))
	}
	return Size{Width: w, Height: len(lines)}
}

func (t TextContent) Paint(buf *CellBuffer, area PaintArea) {
	if area.Frame.IsEmpty() {
		return
	}
	for i, l := range t.lines() {
		if i >= area.Frame.Height {
			return
		}
		buf.WriteString(area.Frame.X, area.Frame.Y+i, l, area.Style, area.Frame.Width)
	}
}

func (t TextContent) Equal(other Content) bool {
	o, ok := other.(TextContent)
	return ok && o == t
}

// FillContent repeats one rune over the whole content area.
type FillContent struct {
	Rune rune
}

func (FillContent) Kind() string                   { return "fill" }
func (FillContent) Measure(LayoutConstraints) Size { return Size{} }

func (f FillContent) Paint(buf *CellBuffer, area PaintArea) {
	buf.Clear(area.Frame, NewCell(f.Rune, area.Style))
}

func (f FillContent) Equal(other Content) bool {
	o, ok := other.(FillContent)
	return ok && o == f
}

// ProgressContent is a horizontal bar, Value out of Total, across the full
// content width.
type ProgressContent struct {
	Value, Total int
	Filled       rune
	Empty        rune
}

func (ProgressContent) Kind() string { return "progress" }

func (p ProgressContent) Measure(c LayoutConstraints) Size {
	return Size{Width: 10, Height: 1}
}

func (p ProgressContent) Paint(buf *CellBuffer, area PaintArea) {
	w := area.Frame.Width
	if w <= 0 || area.Frame.Height <= 0 {
		return
	}
	filled := 0
	if p.Total > 0 {
		filled = clamp(p.Value, 0, p.Total) * w / p.Total
	}
	on, off := p.Filled, p.Empty
	if on == 0 {
		on = '█'
	}
	if off == 0 {
		off = '░'
	}
	buf.HLine(area.Frame.X, area.Frame.Y, filled, on, area.Style)
	buf.HLine(area.Frame.X+filled, area.Frame.Y, w-filled, off, area.Style)
}

func (p ProgressContent) Equal(other Content) bool {
	o, ok := other.(ProgressContent)
	return ok && o == p
}
