package vgraph

import "fmt"

// Point is a cell coordinate; x grows right, y grows down.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a width/height pair in cells.
type Size struct {
	Width  int
	Height int
}

// Area returns Width*Height.
func (s Size) Area() int {
	return s.Width * s.Height
}

// Frame is an origin plus a size.
type Frame struct {
	Point
	Size
}

// Rect builds a Frame from its four scalars.
func Rect(x, y, width, height int) Frame {
	return Frame{Point: Point{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

// MaxX is the first column past the frame.
func (f Frame) MaxX() int { return f.X + f.Width }

// MaxY is the first row past the frame.
func (f Frame) MaxY() int { return f.Y + f.Height }

// IsEmpty reports whether the frame covers no cells.
func (f Frame) IsEmpty() bool {
	return f.Width <= 0 || f.Height <= 0
}

// Contains reports whether p lies inside the frame.
func (f Frame) Contains(p Point) bool {
	return p.X >= f.X && p.X < f.MaxX() && p.Y >= f.Y && p.Y < f.MaxY()
}

// Offset returns the frame moved by p.
func (f Frame) Offset(p Point) Frame {
	f.Point = f.Point.Add(p)
	return f
}

// Intersect returns the overlap of f and g; empty frames come back with a
// zero size.
func (f Frame) Intersect(g Frame) Frame {
	x0, y0 := max(f.X, g.X), max(f.Y, g.Y)
	x1, y1 := min(f.MaxX(), g.MaxX()), min(f.MaxY(), g.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Frame{Point: Point{X: x0, Y: y0}}
	}
	return Rect(x0, y0, x1-x0, y1-y0)
}

// Union returns the smallest frame covering both f and g. Empty frames are
// ignored.
func (f Frame) Union(g Frame) Frame {
	if f.IsEmpty() {
		return g
	}
	if g.IsEmpty() {
		return f
	}
	x0, y0 := min(f.X, g.X), min(f.Y, g.Y)
	x1, y1 := max(f.MaxX(), g.MaxX()), max(f.MaxY(), g.MaxY())
	return Rect(x0, y0, x1-x0, y1-y0)
}

// Inset shrinks the frame by the given insets, never below zero size.
func (f Frame) Inset(in EdgeInsets) Frame {
	f.X += in.Left
	f.Y += in.Top
	f.Width = max(0, f.Width-in.Horizontal())
	f.Height = max(0, f.Height-in.Vertical())
	return f
}

func (f Frame) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", f.X, f.Y, f.Width, f.Height)
}

// EdgeInsets are per-side distances.
type EdgeInsets struct {
	Top, Right, Bottom, Left int
}

// Uniform returns insets of n on every side.
func Uniform(n int) EdgeInsets {
	return EdgeInsets{Top: n, Right: n, Bottom: n, Left: n}
}

// Symmetric returns insets with h on left/right and v on top/bottom.
func Symmetric(h, v int) EdgeInsets {
	return EdgeInsets{Top: v, Right: h, Bottom: v, Left: h}
}

// Horizontal is Left+Right.
func (e EdgeInsets) Horizontal() int { return e.Left + e.Right }

// Vertical is Top+Bottom.
func (e EdgeInsets) Vertical() int { return e.Top + e.Bottom }

// Add sums two insets side by side.
func (e EdgeInsets) Add(o EdgeInsets) EdgeInsets {
	return EdgeInsets{
		Top:    e.Top + o.Top,
		Right:  e.Right + o.Right,
		Bottom: e.Bottom + o.Bottom,
		Left:   e.Left + o.Left,
	}
}

// IsZero reports whether every side is zero.
func (e EdgeInsets) IsZero() bool {
	return e == EdgeInsets{}
}
