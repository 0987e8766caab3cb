// Package vgraph is a retained scene graph for terminal interfaces.
//
// A declarative View is expanded into a tree of RenderNodes, laid out through
// a pluggable LayoutSolver and painted into a CellBuffer. After the first
// frame the ViewGraph reconciles the new tree against the previous one and
// applies the resulting patches instead of repainting everything.
package vgraph

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Attribute is a bit set of emphasis flags for a cell.
type Attribute uint8

// AttrNone is the empty set.
const AttrNone Attribute = 0

const (
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrInverse
	AttrStrikethrough
)

// Has reports whether every flag in attr is set.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr == attr
}

// With returns a with attr added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a with attr cleared.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// ColorMode says how a Color value is interpreted.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota // unset, terminal default
	Color16                       // basic palette 0-15
	Color256                      // extended palette 0-255
	ColorRGB                      // 24-bit
)

// Color is a terminal colour. The zero value is ColorDefault, which doubles
// as "no colour set".
type Color struct {
	Mode    ColorMode
	R, G, B uint8
	Index   uint8
}

// DefaultColor returns the unset colour.
func DefaultColor() Color { return Color{} }

// BasicColor returns one of the 16 basic terminal colours.
func BasicColor(index uint8) Color {
	return Color{Mode: Color16, Index: index & 0x0F}
}

// PaletteColor returns one of the 256 palette colours.
func PaletteColor(index uint8) Color {
	return Color{Mode: Color256, Index: index}
}

// RGB returns a 24-bit colour.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, R: r, G: g, B: b}
}

// Hex returns a 24-bit colour from 0xRRGGBB.
func Hex(hex uint32) Color {
	return RGB(uint8(hex>>16), uint8(hex>>8), uint8(hex))
}

var (
	Black   = BasicColor(0)
	Red     = BasicColor(1)
	Green   = BasicColor(2)
	Yellow  = BasicColor(3)
	Blue    = BasicColor(4)
	Magenta = BasicColor(5)
	Cyan    = BasicColor(6)
	White   = BasicColor(7)

	BrightBlack   = BasicColor(8)
	BrightRed     = BasicColor(9)
	BrightGreen   = BasicColor(10)
	BrightYellow  = BasicColor(11)
	BrightBlue    = BasicColor(12)
	BrightMagenta = BasicColor(13)
	BrightCyan    = BasicColor(14)
	BrightWhite   = BasicColor(15)
)

var namedColors = map[string]Color{
	"black":          Black,
	"red":            Red,
	"green":          Green,
	"yellow":         Yellow,
	"blue":           Blue,
	"magenta":        Magenta,
	"cyan":           Cyan,
	"white":          White,
	"bright-black":   BrightBlack,
	"gray":           BrightBlack,
	"bright-red":     BrightRed,
	"bright-green":   BrightGreen,
	"bright-yellow":  BrightYellow,
	"bright-blue":    BrightBlue,
	"bright-magenta": BrightMagenta,
	"bright-cyan":    BrightCyan,
	"bright-white":   BrightWhite,
}

// ParseColor accepts "", "default", a basic colour name ("red",
// "bright-cyan"), or a "#rrggbb" / "#rgb" hex string.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "default" || s == "none" {
		return DefaultColor(), nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("unknown color %q", s)
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return RGB(r, g, b), nil
}

// IsSet reports whether c is anything other than the default colour.
func (c Color) IsSet() bool {
	return c.Mode != ColorDefault
}

// Blend mixes two RGB colours in Lab space; t=0 gives c, t=1 gives other.
// Non-RGB colours are returned unchanged (palette entries have no fixed RGB).
func (c Color) Blend(other Color, t float64) Color {
	if c.Mode != ColorRGB || other.Mode != ColorRGB {
		return c
	}
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	r, g, bl := a.BlendLab(b, t).Clamped().RGB255()
	return RGB(r, g, bl)
}

// String formats c the way ParseColor reads it back.
func (c Color) String() string {
	switch c.Mode {
	case Color16:
		for name, nc := range namedColors {
			if nc == c && name != "gray" {
				return name
			}
		}
		return fmt.Sprintf("ansi(%d)", c.Index)
	case Color256:
		return fmt.Sprintf("palette(%d)", c.Index)
	case ColorRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return "default"
}

// Style combines foreground, background and emphasis.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// DefaultStyle returns a style with no colours and no emphasis.
func DefaultStyle() Style { return Style{} }

// Foreground returns s with the foreground colour replaced.
func (s Style) Foreground(c Color) Style {
	s.FG = c
	return s
}

// Background returns s with the background colour replaced.
func (s Style) Background(c Color) Style {
	s.BG = c
	return s
}

// Bold returns s with bold set.
func (s Style) Bold() Style {
	s.Attr = s.Attr.With(AttrBold)
	return s
}

// Underline returns s with underline set.
func (s Style) Underline() Style {
	s.Attr = s.Attr.With(AttrUnderline)
	return s
}

// Dim returns s with dim set.
func (s Style) Dim() Style {
	s.Attr = s.Attr.With(AttrDim)
	return s
}
