package vgraph

// Cell is the visual state of one grid position.
type Cell struct {
	Rune  rune
	Style Style
}

// BlankCell returns a space with no colours and no emphasis.
func BlankCell() Cell {
	return Cell{Rune: ' '}
}

// NewCell creates a cell with the given rune and style.
func NewCell(r rune, style Style) Cell {
	return Cell{Rune: r, Style: style}
}

// Equal reports structural equality.
func (c Cell) Equal(other Cell) bool {
	return c == other
}

// IsContinuation reports whether c is the trailing half of a wide rune.
func (c Cell) IsContinuation() bool {
	return c.Rune == 0
}
