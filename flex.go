package vgraph

// Two-phase flex layout: measure (bottom-up natural sizes) then arrange
// (top-down placement in buffer coordinates).
//
// Main axis: children are stacked with Gap between them; space left over is
// shared by children with a Grow factor (SizeFill on the main axis counts as
// Grow 1). Children that do not fit overflow the parent and get clipped at
// paint time.
// Cross axis: children keep their natural size unless they are SizeFill, in
// which case they stretch to the content area.

// FlexSolver is the built-in LayoutSolver.
type FlexSolver struct{}

// NewNode implements LayoutSolver.
func (FlexSolver) NewNode() LayoutNode {
	return &FlexNode{}
}

// FlexNode is a FlexSolver tree node.
type FlexNode struct {
	parent   *FlexNode
	children []*FlexNode

	style   LayoutStyle
	measure MeasureFunc

	measured Size
	frame    Frame
	placed   bool // frame was assigned by the parent's last arrange
}

// SetStyle implements LayoutNode.
func (n *FlexNode) SetStyle(style LayoutStyle) {
	if n.style != style {
		n.style = style
		n.placed = false
	}
}

// SetMeasure implements LayoutNode.
func (n *FlexNode) SetMeasure(fn MeasureFunc) {
	n.measure = fn
	n.placed = false
}

// Attach implements LayoutNode. Non-flex nodes are ignored.
func (n *FlexNode) Attach(child LayoutNode) {
	c, ok := child.(*FlexNode)
	if !ok || c == n {
		return
	}
	if c.parent != nil {
		c.parent.Detach(c)
	}
	c.parent = n
	n.children = append(n.children, c)
	n.placed = false
}

// Detach implements LayoutNode.
func (n *FlexNode) Detach(child LayoutNode) {
	c, ok := child.(*FlexNode)
	if !ok {
		return
	}
	for i, ch := range n.children {
		if ch == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			c.placed = false
			n.placed = false
			return
		}
	}
}

// Children returns the attached child nodes.
func (n *FlexNode) Children() []*FlexNode {
	return n.children
}

// Frame returns the last computed frame.
func (n *FlexNode) Frame() Frame {
	return n.frame
}

// Solve implements LayoutNode. A node that its parent has just placed with
// matching constraints returns the placed frame; anything else is laid out
// as the root of its own subtree at the origin.
func (n *FlexNode) Solve(c LayoutConstraints) Frame {
	if n.placed && n.parent != nil && c == Fixed(n.frame.Width, n.frame.Height) {
		return n.frame
	}
	size := n.measureNode(c)
	n.arrange(Frame{Size: size})
	return n.frame
}

// ChildConstraints implements LayoutNode.
func (n *FlexNode) ChildConstraints(child LayoutNode) LayoutConstraints {
	c, ok := child.(*FlexNode)
	if !ok || c.parent != n {
		return Unconstrained()
	}
	return Fixed(c.frame.Width, c.frame.Height)
}

func (n *FlexNode) measureNode(c LayoutConstraints) Size {
	s := n.style.Sizing
	in := n.style.Insets
	inner := c.Deflate(in).Loosen()

	var content Size
	if len(n.children) == 0 {
		if n.measure != nil {
			content = n.measure(inner)
		}
	} else {
		content = n.measureChildren(inner)
	}

	size := Size{
		Width:  axisSize(s.Width, s.FixedWidth, content.Width+in.Horizontal(), c.MaxWidth),
		Height: axisSize(s.Height, s.FixedHeight, content.Height+in.Vertical(), c.MaxHeight),
	}
	n.measured = c.Constrain(size)
	return n.measured
}

func axisSize(mode SizeMode, fixed, content, limit int) int {
	switch mode {
	case SizeZero:
		return 0
	case SizeFixed:
		return fixed
	case SizeFill:
		if limit < Unbounded {
			return limit
		}
	}
	return content
}

// measureChildren measures children with the main axis unbounded so fill
// children report their content size; leftover space is handed out later.
func (n *FlexNode) measureChildren(inner LayoutConstraints) Size {
	gap := n.style.Gap
	var total Size
	for i, ch := range n.children {
		switch n.style.Direction {
		case Column:
			cs := ch.measureNode(LayoutConstraints{MaxWidth: inner.MaxWidth, MaxHeight: Unbounded})
			total.Width = max(total.Width, cs.Width)
			total.Height += cs.Height
			if i > 0 {
				total.Height += gap
			}
		case Row:
			cs := ch.measureNode(LayoutConstraints{MaxWidth: Unbounded, MaxHeight: inner.MaxHeight})
			total.Height = max(total.Height, cs.Height)
			total.Width += cs.Width
			if i > 0 {
				total.Width += gap
			}
		default:
			cs := ch.measureNode(inner)
			total.Width = max(total.Width, cs.Width)
			total.Height = max(total.Height, cs.Height)
		}
	}
	return total
}

func (n *FlexNode) arrange(frame Frame) {
	n.frame = frame
	if len(n.children) == 0 {
		return
	}
	inner := frame.Inset(n.style.Insets)
	switch n.style.Direction {
	case Column:
		n.arrangeStack(inner, true)
	case Row:
		n.arrangeStack(inner, false)
	default:
		for _, ch := range n.children {
			cs := ch.measureNode(Loose(inner.Width, inner.Height))
			if ch.style.Sizing.Width == SizeFill {
				cs.Width = inner.Width
			}
			if ch.style.Sizing.Height == SizeFill {
				cs.Height = inner.Height
			}
			ch.place(Frame{Point: inner.Point, Size: cs})
		}
	}
}

func (n *FlexNode) arrangeStack(inner Frame, vertical bool) {
	gap := n.style.Gap
	sizes := make([]Size, len(n.children))
	weights := make([]float64, len(n.children))
	var used int
	var totalWeight float64
	for i, ch := range n.children {
		var cs Size
		if vertical {
			cs = ch.measureNode(LayoutConstraints{MaxWidth: inner.Width, MaxHeight: Unbounded})
			used += cs.Height
			weights[i] = growWeight(ch.style.Sizing, ch.style.Sizing.Height)
		} else {
			cs = ch.measureNode(LayoutConstraints{MaxWidth: Unbounded, MaxHeight: inner.Height})
			used += cs.Width
			weights[i] = growWeight(ch.style.Sizing, ch.style.Sizing.Width)
		}
		if i > 0 {
			used += gap
		}
		sizes[i] = cs
		totalWeight += weights[i]
	}

	avail := inner.Width
	if vertical {
		avail = inner.Height
	}
	extra := distribute(avail-used, weights, totalWeight)

	pos := inner.Point
	for i, ch := range n.children {
		cs := sizes[i]
		if vertical {
			cs.Height += extra[i]
			if ch.style.Sizing.Width == SizeFill {
				cs.Width = inner.Width
			}
		} else {
			cs.Width += extra[i]
			if ch.style.Sizing.Height == SizeFill {
				cs.Height = inner.Height
			}
		}
		ch.place(Frame{Point: pos, Size: cs})
		if vertical {
			pos.Y += cs.Height + gap
		} else {
			pos.X += cs.Width + gap
		}
	}
}

func (n *FlexNode) place(f Frame) {
	n.arrange(f)
	n.placed = true
}

func growWeight(s Sizing, mainMode SizeMode) float64 {
	if s.Grow > 0 {
		return s.Grow
	}
	if mainMode == SizeFill {
		return 1
	}
	return 0
}

// distribute splits space by weight; rounding leftovers go to the last
// weighted entry so the total is exact.
func distribute(space int, weights []float64, total float64) []int {
	out := make([]int, len(weights))
	if space <= 0 || total <= 0 {
		return out
	}
	given, last := 0, -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		out[i] = int(float64(space) * w / total)
		given += out[i]
		last = i
	}
	if last >= 0 {
		out[last] += space - given
	}
	return out
}
