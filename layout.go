package vgraph

// Direction is the main axis a container stacks its children along.
type Direction uint8

const (
	Column  Direction = iota // top to bottom
	Row                      // left to right
	Overlay                  // all children share the content area
)

// SizeMode is a node's sizing policy on one axis.
type SizeMode uint8

const (
	SizeFit   SizeMode = iota // content size
	SizeFill                  // as much as the constraints allow
	SizeFixed                 // an explicit number of cells
	SizeZero                  // collapse to nothing
)

// Sizing is the per-axis sizing policy plus the main-axis grow factor used
// when a parent has space left over.
type Sizing struct {
	Width       SizeMode
	Height      SizeMode
	FixedWidth  int
	FixedHeight int
	Grow        float64
}

// LayoutStyle is everything a solver node needs to know about its render
// node. Insets carry all four edges separately.
type LayoutStyle struct {
	Direction Direction
	Gap       int
	Insets    EdgeInsets
	Sizing    Sizing
}

// MeasureFunc reports the natural content size of a leaf given the space
// inside its insets.
type MeasureFunc func(c LayoutConstraints) Size

// LayoutNode is one node of a solver tree that mirrors the render tree.
type LayoutNode interface {
	SetStyle(style LayoutStyle)
	SetMeasure(fn MeasureFunc)

	// Attach appends child; Detach removes it. A node has at most one parent.
	Attach(child LayoutNode)
	Detach(child LayoutNode)

	// Solve returns the node's frame in buffer coordinates for the given
	// constraints, laying out its subtree as needed.
	Solve(c LayoutConstraints) Frame

	// ChildConstraints returns the constraints the last Solve derived for
	// child.
	ChildConstraints(child LayoutNode) LayoutConstraints
}

// LayoutSolver creates solver nodes.
type LayoutSolver interface {
	NewNode() LayoutNode
}

var defaultSolver LayoutSolver = FlexSolver{}

// DefaultSolver returns the solver used when none is configured.
func DefaultSolver() LayoutSolver {
	return defaultSolver
}
