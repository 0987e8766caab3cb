package vgraph

// BorderStyle selects one of the fixed border glyph sets.
type BorderStyle uint8

const (
	BorderNone BorderStyle = iota
	BorderSingle
	BorderDouble
	BorderRounded
	BorderThick
)

// BorderGlyphs holds the six runes needed to outline a rectangle.
type BorderGlyphs struct {
	TopLeft, Horizontal, TopRight rune
	Vertical                      rune
	BottomLeft, BottomRight       rune
}

var borderGlyphs = [...]BorderGlyphs{
	BorderSingle:  {TopLeft: '┌', Horizontal: '─', TopRight: '┐', Vertical: '│', BottomLeft: '└', BottomRight: '┘'},
	BorderDouble:  {TopLeft: '╔', Horizontal: '═', TopRight: '╗', Vertical: '║', BottomLeft: '╚', BottomRight: '╝'},
	BorderRounded: {TopLeft: '╭', Horizontal: '─', TopRight: '╮', Vertical: '│', BottomLeft: '╰', BottomRight: '╯'},
	BorderThick:   {TopLeft: '┏', Horizontal: '━', TopRight: '┓', Vertical: '┃', BottomLeft: '┗', BottomRight: '┛'},
}

// Glyphs returns the glyph set for s. BorderNone and unknown values return
// the zero set.
func (s BorderStyle) Glyphs() BorderGlyphs {
	if s == BorderNone || int(s) >= len(borderGlyphs) {
		return BorderGlyphs{}
	}
	return borderGlyphs[s]
}

func (s BorderStyle) String() string {
	switch s {
	case BorderSingle:
		return "single"
	case BorderDouble:
		return "double"
	case BorderRounded:
		return "rounded"
	case BorderThick:
		return "thick"
	}
	return "none"
}

// ParseBorderStyle is the inverse of BorderStyle.String. Unknown names map to
// BorderNone.
func ParseBorderStyle(name string) BorderStyle {
	for s := BorderSingle; s <= BorderThick; s++ {
		if s.String() == name {
			return s
		}
	}
	return BorderNone
}

// RenderAttributes is the visual property bag of a node. It is a comparable
// value; change it through the With* methods, which return a copy.
type RenderAttributes struct {
	FG        Color
	BG        Color
	Bold      bool
	Underline bool
	Padding   EdgeInsets
	Border    BorderStyle
}

// WithForeground returns a copy with the foreground colour replaced.
func (a RenderAttributes) WithForeground(c Color) RenderAttributes {
	a.FG = c
	return a
}

// WithBackground returns a copy with the background colour replaced.
func (a RenderAttributes) WithBackground(c Color) RenderAttributes {
	a.BG = c
	return a
}

// WithBold returns a copy with bold set to on.
func (a RenderAttributes) WithBold(on bool) RenderAttributes {
	a.Bold = on
	return a
}

// WithUnderline returns a copy with underline set to on.
func (a RenderAttributes) WithUnderline(on bool) RenderAttributes {
	a.Underline = on
	return a
}

// WithPadding returns a copy with the padding replaced.
func (a RenderAttributes) WithPadding(p EdgeInsets) RenderAttributes {
	a.Padding = p
	return a
}

// WithBorder returns a copy with the border style replaced.
func (a RenderAttributes) WithBorder(b BorderStyle) RenderAttributes {
	a.Border = b
	return a
}

// Insets is the total content inset: padding plus one cell per side when a
// border is drawn.
func (a RenderAttributes) Insets() EdgeInsets {
	in := a.Padding
	if a.Border != BorderNone {
		in = in.Add(Uniform(1))
	}
	return in
}

// TextStyle is the cell style content should use for its glyphs.
func (a RenderAttributes) TextStyle() Style {
	s := Style{FG: a.FG, BG: a.BG}
	if a.Bold {
		s = s.Bold()
	}
	if a.Underline {
		s = s.Underline()
	}
	return s
}
