package vgraph

import (
	"fmt"
	"math"
)

// Unbounded is the maximum extent used for an unconstrained axis.
const Unbounded = math.MaxInt32

// LayoutConstraints bound the size a node may take. They are passed
// top-down during layout.
type LayoutConstraints struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

// Unconstrained allows any size.
func Unconstrained() LayoutConstraints {
	return LayoutConstraints{MaxWidth: Unbounded, MaxHeight: Unbounded}
}

// Fixed allows exactly one size.
func Fixed(width, height int) LayoutConstraints {
	return LayoutConstraints{MinWidth: width, MaxWidth: width, MinHeight: height, MaxHeight: height}
}

// Loose allows anything from zero up to the given size.
func Loose(width, height int) LayoutConstraints {
	return LayoutConstraints{MaxWidth: width, MaxHeight: height}
}

// IsTight reports whether only one size satisfies c.
func (c LayoutConstraints) IsTight() bool {
	return c.MinWidth == c.MaxWidth && c.MinHeight == c.MaxHeight
}

// BoundedWidth reports whether MaxWidth is finite.
func (c LayoutConstraints) BoundedWidth() bool { return c.MaxWidth < Unbounded }

// BoundedHeight reports whether MaxHeight is finite.
func (c LayoutConstraints) BoundedHeight() bool { return c.MaxHeight < Unbounded }

// Constrain clamps s into c.
func (c LayoutConstraints) Constrain(s Size) Size {
	return Size{
		Width:  clamp(s.Width, c.MinWidth, c.MaxWidth),
		Height: clamp(s.Height, c.MinHeight, c.MaxHeight),
	}
}

// Deflate shrinks c by the insets, as seen by content inside them. Minimums
// and maximums never go below zero; unbounded axes stay unbounded.
func (c LayoutConstraints) Deflate(in EdgeInsets) LayoutConstraints {
	h, v := in.Horizontal(), in.Vertical()
	out := LayoutConstraints{
		MinWidth:  max(0, c.MinWidth-h),
		MinHeight: max(0, c.MinHeight-v),
		MaxWidth:  c.MaxWidth,
		MaxHeight: c.MaxHeight,
	}
	if c.BoundedWidth() {
		out.MaxWidth = max(0, c.MaxWidth-h)
	}
	if c.BoundedHeight() {
		out.MaxHeight = max(0, c.MaxHeight-v)
	}
	return out
}

// Tighten returns constraints that only allow s, clamped into c first.
func (c LayoutConstraints) Tighten(s Size) LayoutConstraints {
	s = c.Constrain(s)
	return Fixed(s.Width, s.Height)
}

// Loosen drops the minimums.
func (c LayoutConstraints) Loosen() LayoutConstraints {
	c.MinWidth, c.MinHeight = 0, 0
	return c
}

func (c LayoutConstraints) String() string {
	return fmt.Sprintf("w[%s] h[%s]", span(c.MinWidth, c.MaxWidth), span(c.MinHeight, c.MaxHeight))
}

func span(lo, hi int) string {
	if hi >= Unbounded {
		return fmt.Sprintf("%d..inf", lo)
	}
	return fmt.Sprintf("%d..%d", lo, hi)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
