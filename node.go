package vgraph

// Content is the kind-specific part of a render node: how big its own
// content is and how to paint it. Everything else (frame, children,
// attributes, dirty flags) lives on RenderNode.
type Content interface {
	// Kind names the node kind; it feeds NodeID derivation and debugging.
	Kind() string
	// Measure returns the natural size of the content inside the node's
	// insets.
	Measure(c LayoutConstraints) Size
	// Paint draws the content into area.
	Paint(buf *CellBuffer, area PaintArea)
	// Equal reports whether other would paint identically.
	Equal(other Content) bool
}

// PaintArea is what a Content gets to paint with.
type PaintArea struct {
	Frame Frame // content rectangle, inside padding and border
	Style Style // attribute style with the effective background resolved
}

// RenderNode is one node of the retained scene graph. A node owns its
// children; the tree never shares a node between parents.
type RenderNode struct {
	id       NodeID
	frame    Frame
	parent   *RenderNode
	children []*RenderNode

	attrs     RenderAttributes
	content   Content
	sizing    Sizing
	direction Direction
	gap       int

	needsLayout bool
	needsRender bool

	lnode     LayoutNode
	backdrop  Color
	focusable bool
}

// NewRenderNode creates a node with the default solver.
func NewRenderNode(id NodeID, content Content) *RenderNode {
	return NewRenderNodeWithSolver(id, content, nil)
}

// NewRenderNodeWithSolver creates a node attached to a solver node from
// solver (nil means DefaultSolver).
func NewRenderNodeWithSolver(id NodeID, content Content, solver LayoutSolver) *RenderNode {
	if solver == nil {
		solver = DefaultSolver()
	}
	if content == nil {
		content = EmptyContent{}
	}
	n := &RenderNode{
		id:          id,
		content:     content,
		needsLayout: true,
		needsRender: true,
		lnode:       solver.NewNode(),
	}
	n.lnode.SetMeasure(n.measure)
	n.syncStyle()
	return n
}

// NewNode creates a node for the view currently being constructed in ctx.
func (c RenderContext) NewNode(content Content) *RenderNode {
	return NewRenderNodeWithSolver(c.id, content, c.solver)
}

// ID returns the stable identity.
func (n *RenderNode) ID() NodeID { return n.id }

// Frame returns the frame cached by the last layout pass.
func (n *RenderNode) Frame() Frame { return n.frame }

// Attributes returns the visual attributes.
func (n *RenderNode) Attributes() RenderAttributes { return n.attrs }

// Content returns the kind-specific content.
func (n *RenderNode) Content() Content { return n.content }

// Kind is shorthand for Content().Kind().
func (n *RenderNode) Kind() string { return n.content.Kind() }

// Children returns the owned children. The slice must not be modified.
func (n *RenderNode) Children() []*RenderNode { return n.children }

// Parent returns the owning node, or nil for a root.
func (n *RenderNode) Parent() *RenderNode { return n.parent }

// Sizing returns the sizing policy.
func (n *RenderNode) Sizing() Sizing { return n.sizing }

// NeedsLayout reports the layout dirty flag.
func (n *RenderNode) NeedsLayout() bool { return n.needsLayout }

// NeedsRender reports the paint dirty flag.
func (n *RenderNode) NeedsRender() bool { return n.needsRender }

// Focusable reports whether n takes part in focus navigation.
func (n *RenderNode) Focusable() bool { return n.focusable }

// SetFocusable adds n to (or drops it from) the focus order collected after
// each construction pass.
func (n *RenderNode) SetFocusable(on bool) { n.focusable = on }

// LayoutNode exposes the solver node mirroring n.
func (n *RenderNode) LayoutNode() LayoutNode { return n.lnode }

// SetAttributes replaces the attributes wholesale.
func (n *RenderNode) SetAttributes(a RenderAttributes) {
	if a == n.attrs {
		return
	}
	insetsChanged := a.Insets() != n.attrs.Insets()
	n.attrs = a
	n.InvalidateRender()
	if insetsChanged {
		n.syncStyle()
		n.InvalidateLayout()
	}
}

// SetContent replaces the content.
func (n *RenderNode) SetContent(c Content) {
	if c == nil {
		c = EmptyContent{}
	}
	n.content = c
	n.InvalidateRender()
	n.InvalidateLayout()
}

// SetSizing replaces the sizing policy.
func (n *RenderNode) SetSizing(s Sizing) {
	n.sizing = s
	n.syncStyle()
	n.InvalidateLayout()
}

// SetStack sets how children are arranged.
func (n *RenderNode) SetStack(d Direction, gap int) {
	n.direction, n.gap = d, max(0, gap)
	n.syncStyle()
	n.InvalidateLayout()
}

func (n *RenderNode) syncStyle() {
	n.lnode.SetStyle(LayoutStyle{
		Direction: n.direction,
		Gap:       n.gap,
		Insets:    n.attrs.Insets(),
		Sizing:    n.sizing,
	})
}

func (n *RenderNode) measure(c LayoutConstraints) Size {
	return n.content.Measure(c)
}

// InvalidateLayout marks this node, and only this node, for layout.
func (n *RenderNode) InvalidateLayout() { n.needsLayout = true }

// InvalidateRender marks this node, and only this node, for painting.
func (n *RenderNode) InvalidateRender() { n.needsRender = true }

// InvalidateTree marks n and every descendant for layout and painting.
func (n *RenderNode) InvalidateTree() {
	n.Walk(func(node *RenderNode) bool {
		node.needsLayout = true
		node.needsRender = true
		return true
	})
}

// AddChild appends child, taking it from its previous parent if any.
func (n *RenderNode) AddChild(child *RenderNode) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	n.lnode.Attach(child.lnode)
	n.InvalidateLayout()
}

// RemoveChild detaches child. Unknown children are ignored.
func (n *RenderNode) RemoveChild(child *RenderNode) {
	for i, ch := range n.children {
		if ch != child {
			continue
		}
		n.children = append(n.children[:i], n.children[i+1:]...)
		n.lnode.Detach(child.lnode)
		child.parent = nil
		n.InvalidateLayout()
		return
	}
}

// RemoveAllChildren detaches every child.
func (n *RenderNode) RemoveAllChildren() {
	for _, ch := range n.children {
		n.lnode.Detach(ch.lnode)
		ch.parent = nil
	}
	n.children = nil
	n.InvalidateLayout()
}

// Layout computes and caches the frame for n and its subtree. It does
// nothing when n is not marked for layout, so repeated calls within a frame
// are free. When n does lay out, its children are laid out again too since
// the solver may have moved them.
func (n *RenderNode) Layout(c LayoutConstraints) {
	if !n.needsLayout {
		return
	}
	n.frame = n.lnode.Solve(c)
	for _, ch := range n.children {
		ch.needsLayout = true
		ch.Layout(n.lnode.ChildConstraints(ch.lnode))
	}
	n.needsLayout = false
}

// Render paints n and its subtree into buf: background, border, content,
// then children on top.
func (n *RenderNode) Render(buf *CellBuffer) {
	n.render(buf, n.backdrop)
}

func (n *RenderNode) render(buf *CellBuffer, backdrop Color) {
	n.backdrop = backdrop
	bg := n.background()
	if n.attrs.BG.IsSet() {
		buf.Clear(n.frame, Cell{Rune: ' ', Style: Style{BG: bg}})
	}
	if n.attrs.Border != BorderNone {
		buf.DrawBorder(n.frame, n.attrs.Border.Glyphs(), n.attrs.FG)
	}
	style := n.attrs.TextStyle()
	style.BG = bg
	n.content.Paint(buf, PaintArea{Frame: n.frame.Inset(n.attrs.Insets()), Style: style})
	for _, ch := range n.children {
		ch.render(buf, bg)
	}
	n.needsRender = false
}

// background is the colour visible behind n's content.
func (n *RenderNode) background() Color {
	if n.attrs.BG.IsSet() {
		return n.attrs.BG
	}
	return n.backdrop
}

// Repaint paints n in isolation: its frame is reset to the backdrop it was
// painted on, then the subtree is rendered again.
func (n *RenderNode) Repaint(buf *CellBuffer) {
	buf.Clear(n.frame, Cell{Rune: ' ', Style: Style{BG: n.backdrop}})
	n.render(buf, n.backdrop)
}

// PaintBounds returns the area the subtree paints into: the union of every
// frame under n, since children may overflow their parent.
func (n *RenderNode) PaintBounds() Frame {
	var area Frame
	n.Walk(func(node *RenderNode) bool {
		area = area.Union(node.frame)
		return true
	})
	return area
}

// RepaintArea makes area of buf match a full paint of the tree n belongs
// to: the area is reset to the root's backdrop and the whole tree is
// rendered with writes outside the area dropped. Unlike Repaint it is exact
// when nodes overlap.
func (n *RenderNode) RepaintArea(buf *CellBuffer, area Frame) {
	root := n.Root()
	area = area.Intersect(buf.Bounds())
	if area.IsEmpty() {
		return
	}
	buf.withClip(area, func() {
		buf.Clear(area, Cell{Rune: ' ', Style: Style{BG: root.backdrop}})
		root.render(buf, root.backdrop)
	})
}

// Root returns the top of the tree n belongs to.
func (n *RenderNode) Root() *RenderNode {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// ResolveBackdrop records, for every node of the subtree, the background
// colour it sits on, without painting. Isolated repaints rely on it.
func (n *RenderNode) ResolveBackdrop(backdrop Color) {
	n.backdrop = backdrop
	bg := n.background()
	for _, ch := range n.children {
		ch.ResolveBackdrop(bg)
	}
}

func (n *RenderNode) markRendered() {
	n.Walk(func(node *RenderNode) bool {
		node.needsRender = false
		return true
	})
}

// Walk visits n and its descendants depth-first, parents first. Returning
// false from fn skips the node's children.
func (n *RenderNode) Walk(fn func(*RenderNode) bool) {
	if !fn(n) {
		return
	}
	for _, ch := range n.children {
		ch.Walk(fn)
	}
}

// Find returns the descendant (or n itself) with the given id.
func (n *RenderNode) Find(id NodeID) *RenderNode {
	var found *RenderNode
	n.Walk(func(node *RenderNode) bool {
		if found != nil {
			return false
		}
		if node.id == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// Count returns the number of nodes in the subtree.
func (n *RenderNode) Count() int {
	count := 0
	n.Walk(func(*RenderNode) bool {
		count++
		return true
	})
	return count
}
