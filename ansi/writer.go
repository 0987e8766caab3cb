// Package ansi serialises vgraph cell buffers to a terminal as ANSI escape
// sequences.
package ansi

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/kungfusheep/vgraph"
	"github.com/mattn/go-runewidth"
)

// FlushStats describes the last flush.
type FlushStats struct {
	ChangedRows  int
	ChangedCells int
	Moves        int
	Bytes        int
}

// Writer keeps a front buffer mirroring what the terminal shows and writes
// only the cells that differ from it.
type Writer struct {
	out   io.Writer
	front *vgraph.CellBuffer

	lastStyle vgraph.Style
	buf       bytes.Buffer
	stats     FlushStats

	mu sync.Mutex
}

// NewWriter creates a writer for a terminal of the given size. The terminal
// is assumed blank.
func NewWriter(out io.Writer, width, height int) *Writer {
	return &Writer{
		out:   out,
		front: vgraph.NewCellBuffer(width, height),
	}
}

// Size returns the size of the front buffer.
func (w *Writer) Size() vgraph.Size {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.front.Size()
}

// Stats returns statistics from the last flush.
func (w *Writer) Stats() FlushStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Flush writes the cells of back that differ from what was last written,
// positioning the cursor only where a run of changes starts. A back buffer
// of a different size triggers a full redraw.
func (w *Writer) Flush(back *vgraph.CellBuffer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if back.Size() != w.front.Size() {
		return w.flushFull(back)
	}

	w.buf.Reset()
	stats := FlushStats{}
	cursorX, cursorY := -1, -1

	for y := 0; y < back.Height(); y++ {
		rowChanged := false
		for x := 0; x < back.Width(); x++ {
			cell := back.Cell(x, y)
			if cell == w.front.Cell(x, y) {
				continue
			}
			w.front.SetCell(x, y, cell)
			// second half of a wide rune, drawn by the rune itself
			if cell.IsContinuation() {
				continue
			}

			if !rowChanged {
				rowChanged = true
				stats.ChangedRows++
			}
			stats.ChangedCells++

			if cursorX != x || cursorY != y {
				stats.Moves++
				w.moveTo(x, y)
			}
			w.writeCell(cell)
			cursorX, cursorY = x+cellWidth(cell.Rune), y
		}
	}

	if stats.ChangedCells > 0 {
		w.buf.WriteString("\x1b[0m")
		w.lastStyle = vgraph.Style{}
	}
	stats.Bytes = w.buf.Len()
	w.stats = stats
	return w.write()
}

// FlushFull clears the terminal and writes every cell of back.
func (w *Writer) FlushFull(back *vgraph.CellBuffer) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushFull(back)
}

func (w *Writer) flushFull(back *vgraph.CellBuffer) error {
	if back.Size() != w.front.Size() {
		w.front = vgraph.NewCellBuffer(back.Width(), back.Height())
	}
	w.buf.Reset()
	w.buf.WriteString("\x1b[2J\x1b[H")
	w.lastStyle = vgraph.Style{}
	w.writeStyle(w.lastStyle)

	for y := 0; y < back.Height(); y++ {
		for x := 0; x < back.Width(); x++ {
			cell := back.Cell(x, y)
			w.front.SetCell(x, y, cell)
			if cell.IsContinuation() {
				continue
			}
			w.writeCell(cell)
		}
		if y < back.Height()-1 {
			w.buf.WriteString("\r\n")
		}
	}

	w.buf.WriteString("\x1b[0m")
	w.lastStyle = vgraph.Style{}
	w.stats = FlushStats{
		ChangedRows:  back.Height(),
		ChangedCells: back.Width() * back.Height(),
		Moves:        1,
		Bytes:        w.buf.Len(),
	}
	return w.write()
}

// Forget marks the front buffer as blank, so the next Flush rewrites every
// non-blank cell. Use it after something else has cleared the terminal.
func (w *Writer) Forget() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.front.Reset()
}

func (w *Writer) write() error {
	if w.buf.Len() == 0 {
		return nil
	}
	if _, err := w.out.Write(w.buf.Bytes()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func cellWidth(r rune) int {
	if rw := runewidth.RuneWidth(r); rw > 0 {
		return rw
	}
	// zero-width runes still advance the cursor in most terminals
	return 1
}

func (w *Writer) moveTo(x, y int) {
	w.buf.WriteString("\x1b[")
	w.writeInt(y + 1)
	w.buf.WriteByte(';')
	w.writeInt(x + 1)
	w.buf.WriteByte('H')
}

func (w *Writer) writeCell(cell vgraph.Cell) {
	if cell.Style != w.lastStyle {
		w.writeStyle(cell.Style)
		w.lastStyle = cell.Style
	}
	w.buf.WriteRune(cell.Rune)
}

// writeStyle emits a full SGR sequence, starting with a reset so attributes
// from the previous style never leak.
func (w *Writer) writeStyle(style vgraph.Style) {
	w.buf.WriteString("\x1b[0")
	if style.Attr.Has(vgraph.AttrBold) {
		w.buf.WriteString(";1")
	}
	if style.Attr.Has(vgraph.AttrDim) {
		w.buf.WriteString(";2")
	}
	if style.Attr.Has(vgraph.AttrItalic) {
		w.buf.WriteString(";3")
	}
	if style.Attr.Has(vgraph.AttrUnderline) {
		w.buf.WriteString(";4")
	}
	if style.Attr.Has(vgraph.AttrInverse) {
		w.buf.WriteString(";7")
	}
	if style.Attr.Has(vgraph.AttrStrikethrough) {
		w.buf.WriteString(";9")
	}
	w.writeColor(style.FG, true)
	w.writeColor(style.BG, false)
	w.buf.WriteByte('m')
}

func (w *Writer) writeColor(c vgraph.Color, fg bool) {
	switch c.Mode {
	case vgraph.ColorDefault:
		if fg {
			w.buf.WriteString(";39")
		} else {
			w.buf.WriteString(";49")
		}
	case vgraph.Color16:
		base := 30
		if !fg {
			base = 40
		}
		idx := int(c.Index)
		if idx >= 8 {
			base += 60
			idx -= 8
		}
		w.buf.WriteByte(';')
		w.writeInt(base + idx)
	case vgraph.Color256:
		if fg {
			w.buf.WriteString(";38;5;")
		} else {
			w.buf.WriteString(";48;5;")
		}
		w.writeInt(int(c.Index))
	case vgraph.ColorRGB:
		if fg {
			w.buf.WriteString(";38;2;")
		} else {
			w.buf.WriteString(";48;2;")
		}
		w.writeInt(int(c.R))
		w.buf.WriteByte(';')
		w.writeInt(int(c.G))
		w.buf.WriteByte(';')
		w.writeInt(int(c.B))
	}
}

// writeInt writes a non-negative integer without allocating.
func (w *Writer) writeInt(n int) {
	var scratch [20]byte
	w.buf.Write(appendInt(scratch[:0], n))
}

func appendInt(b []byte, n int) []byte {
	if n == 0 {
		return append(b, '0')
	}
	if n < 0 {
		b = append(b, '-')
		n = -n
	}
	var scratch [20]byte
	i := len(scratch)
	for n > 0 {
		i--
		scratch[i] = byte('0' + n%10)
		n /= 10
	}
	return append(b, scratch[i:]...)
}
