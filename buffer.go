package vgraph

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// CellBuffer is a fixed-size grid of cells, row-major and 0-indexed.
// Reads outside the grid return a blank cell and writes outside it are
// dropped; partially laid-out trees routinely paint past the viewport.
type CellBuffer struct {
	cells  []Cell
	width  int
	height int

	clip    Frame // writes outside clip are dropped while clipped is set
	clipped bool
}

// NewCellBuffer creates a blank buffer. Negative sizes are treated as zero.
func NewCellBuffer(width, height int) *CellBuffer {
	width, height = max(0, width), max(0, height)
	b := &CellBuffer{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
	b.Reset()
	return b
}

// Width returns the number of columns.
func (b *CellBuffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *CellBuffer) Height() int { return b.height }

// Size returns the buffer dimensions.
func (b *CellBuffer) Size() Size {
	return Size{Width: b.width, Height: b.height}
}

// Bounds returns the frame covering the whole buffer.
func (b *CellBuffer) Bounds() Frame {
	return Rect(0, 0, b.width, b.height)
}

// InBounds reports whether (x, y) is a valid cell.
func (b *CellBuffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *CellBuffer) index(x, y int) int {
	return y*b.width + x
}

// Cell returns the cell at (x, y), or a blank cell when out of range.
func (b *CellBuffer) Cell(x, y int) Cell {
	if !b.InBounds(x, y) {
		return BlankCell()
	}
	return b.cells[b.index(x, y)]
}

// SetCell writes c at (x, y). Out of range writes are ignored.
func (b *CellBuffer) SetCell(x, y int, c Cell) {
	if !b.writable(x, y) {
		return
	}
	b.cells[b.index(x, y)] = c
}

// writable reports whether a paint may touch (x, y).
func (b *CellBuffer) writable(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return !b.clipped || b.clip.Contains(Point{X: x, Y: y})
}

// paintable is the part of the buffer paints may touch.
func (b *CellBuffer) paintable() Frame {
	if b.clipped {
		return b.clip.Intersect(b.Bounds())
	}
	return b.Bounds()
}

// withClip runs paint with every write outside area dropped.
func (b *CellBuffer) withClip(area Frame, paint func()) {
	prev, was := b.clip, b.clipped
	b.clip, b.clipped = area, true
	defer func() { b.clip, b.clipped = prev, was }()
	paint()
}

// Reset blanks every cell.
func (b *CellBuffer) Reset() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = BlankCell()
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Clear overwrites every cell of frame (clipped to the buffer) with fill.
func (b *CellBuffer) Clear(frame Frame, fill Cell) {
	r := frame.Intersect(b.paintable())
	if r.IsEmpty() {
		return
	}
	for y := r.Y; y < r.MaxY(); y++ {
		row := b.cells[b.index(r.X, y):b.index(r.MaxX(), y)]
		for i := range row {
			row[i] = fill
		}
	}
}

// Fill sets the background of every cell in frame, keeping runes and the
// rest of the style.
func (b *CellBuffer) Fill(frame Frame, color Color) {
	r := frame.Intersect(b.paintable())
	if r.IsEmpty() {
		return
	}
	for y := r.Y; y < r.MaxY(); y++ {
		for x := r.X; x < r.MaxX(); x++ {
			b.cells[b.index(x, y)].Style.BG = color
		}
	}
}

// Merge copies every cell of other into b with other's origin placed at
// offset. Cells landing outside b are dropped.
func (b *CellBuffer) Merge(other *CellBuffer, offset Point) {
	if other == nil {
		return
	}
	dst := other.Bounds().Offset(offset).Intersect(b.Bounds())
	if dst.IsEmpty() {
		return
	}
	for y := dst.Y; y < dst.MaxY(); y++ {
		src := other.cells[other.index(dst.X-offset.X, y-offset.Y):other.index(dst.MaxX()-offset.X, y-offset.Y)]
		copy(b.cells[b.index(dst.X, y):b.index(dst.MaxX(), y)], src)
	}
}

// Copy returns a deep copy.
func (b *CellBuffer) Copy() *CellBuffer {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &CellBuffer{cells: cells, width: b.width, height: b.height}
}

// CopyFrom overwrites b with src when both have the same size and reports
// whether it did. Used to refresh a retained snapshot without allocating.
func (b *CellBuffer) CopyFrom(src *CellBuffer) bool {
	if src == nil || src.width != b.width || src.height != b.height {
		return false
	}
	copy(b.cells, src.cells)
	return true
}

// Equal reports whether both buffers have the same size and cells.
func (b *CellBuffer) Equal(other *CellBuffer) bool {
	if other == nil || b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Resize changes the dimensions, keeping whatever content still fits.
func (b *CellBuffer) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	if width == b.width && height == b.height {
		return
	}
	next := NewCellBuffer(width, height)
	next.Merge(b, Point{})
	b.cells, b.width, b.height = next.cells, next.width, next.height
}

// WriteString writes s starting at (x, y) and returns the number of columns
// used. Wide runes take two columns; the second holds a continuation cell.
// Writing stops at maxWidth columns (maxWidth <= 0 means no limit) or at
// the buffer edge.
func (b *CellBuffer) WriteString(x, y int, s string, style Style, maxWidth int) int {
	if y < 0 || y >= b.height {
		return 0
	}
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if maxWidth > 0 && used+w > maxWidth {
			break
		}
		if x+used+w > b.width {
			break
		}
		b.SetCell(x+used, y, NewCell(r, style))
		if w == 2 {
			b.SetCell(x+used+1, y, NewCell(0, style))
		}
		used += w
	}
	return used
}

// HLine draws length copies of r from (x, y) to the right.
func (b *CellBuffer) HLine(x, y, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		b.SetCell(x+i, y, NewCell(r, style))
	}
}

// VLine draws length copies of r from (x, y) downwards.
func (b *CellBuffer) VLine(x, y, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		b.SetCell(x, y+i, NewCell(r, style))
	}
}

// DrawBorder outlines frame with the glyphs of set. The fill colour of the
// cells underneath is preserved so a border sits on its node's background.
func (b *CellBuffer) DrawBorder(frame Frame, set BorderGlyphs, fg Color) {
	if frame.Width < 2 || frame.Height < 2 {
		return
	}
	put := func(x, y int, r rune) {
		if !b.writable(x, y) {
			return
		}
		c := &b.cells[b.index(x, y)]
		c.Rune = r
		c.Style.FG = fg
	}
	x0, y0 := frame.X, frame.Y
	x1, y1 := frame.MaxX()-1, frame.MaxY()-1

	put(x0, y0, set.TopLeft)
	put(x1, y0, set.TopRight)
	put(x0, y1, set.BottomLeft)
	put(x1, y1, set.BottomRight)
	for x := x0 + 1; x < x1; x++ {
		put(x, y0, set.Horizontal)
		put(x, y1, set.Horizontal)
	}
	for y := y0 + 1; y < y1; y++ {
		put(x0, y, set.Vertical)
		put(x1, y, set.Vertical)
	}
}

// Line returns row y as text with trailing blanks trimmed.
func (b *CellBuffer) Line(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < b.width; x++ {
		r := b.cells[b.index(x, y)].Rune
		if r == 0 {
			continue
		}
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

// String renders the grid as text, one line per row, keeping trailing
// blanks. Intended for tests and debugging.
func (b *CellBuffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			r := b.cells[b.index(x, y)].Rune
			if r == 0 {
				continue
			}
			sb.WriteRune(r)
		}
		if y < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// StringTrimmed is String with trailing blanks and empty trailing rows
// removed.
func (b *CellBuffer) StringTrimmed() string {
	lines := make([]string, b.height)
	for y := range lines {
		lines[y] = b.Line(y)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
