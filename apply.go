package vgraph

// NodeLookup resolves patch ids to nodes of the current tree.
type NodeLookup interface {
	Lookup(id NodeID) *RenderNode
}

// NodeIndex is a flat index of one tree: nodes in pre-order in a slice, and
// an id to slot map. It is rebuilt every frame and reuses its storage.
type NodeIndex struct {
	nodes []*RenderNode
	slots map[NodeID]int32
}

// NewNodeIndex indexes the tree under root.
func NewNodeIndex(root *RenderNode) *NodeIndex {
	x := &NodeIndex{}
	x.Reset(root)
	return x
}

// Reset re-indexes for a new tree. A nil root empties the index. When two
// nodes share an id the first in pre-order wins.
func (x *NodeIndex) Reset(root *RenderNode) {
	for i := range x.nodes {
		x.nodes[i] = nil
	}
	x.nodes = x.nodes[:0]
	if x.slots == nil {
		x.slots = make(map[NodeID]int32)
	}
	clear(x.slots)
	if root == nil {
		return
	}
	root.Walk(func(n *RenderNode) bool {
		if _, dup := x.slots[n.id]; !dup {
			x.slots[n.id] = int32(len(x.nodes))
		}
		x.nodes = append(x.nodes, n)
		return true
	})
}

// Lookup implements NodeLookup. Unknown ids return nil.
func (x *NodeIndex) Lookup(id NodeID) *RenderNode {
	if x == nil {
		return nil
	}
	i, ok := x.slots[id]
	if !ok {
		return nil
	}
	return x.nodes[i]
}

// Len returns the number of indexed nodes.
func (x *NodeIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.nodes)
}

// Nodes returns the indexed nodes in pre-order. The slice is reused by the
// next Reset.
func (x *NodeIndex) Nodes() []*RenderNode {
	if x == nil {
		return nil
	}
	return x.nodes
}

// Root returns the first indexed node, the root of the tree, or nil.
func (x *NodeIndex) Root() *RenderNode {
	if x == nil || len(x.nodes) == 0 {
		return nil
	}
	return x.nodes[0]
}

// Apply paints patches into buf, in order. Patches are expected to be
// filtered and optimized already (see Prepare).
//
//   - FrameChanged repaints the old and the new rectangle together with the
//     node's subtree and the parent's frame.
//   - AttributesChanged, ContentChanged and NodeAdded repaint the area the
//     node's subtree paints into.
//   - ChildrenChanged repaints the node's subtree and the area the previous
//     children painted.
//   - NodeRemoved repaints the area the removed subtree painted.
//   - CellChanged writes its To cell.
//
// Areas are repainted with RepaintArea, so each one ends up exactly as a
// full paint of the current tree leaves it, overlapping nodes included.
// NodeRemoved needs the current tree: it is taken from nodes when that has
// a Root method, else from the node of any other patch. With no tree at
// all the area is cleared to the removed node's backdrop. Ids that nodes
// cannot resolve are skipped. Apply returns the number of patches that
// touched the buffer.
func Apply(patches []Patch, buf *CellBuffer, nodes NodeLookup) int {
	if buf == nil {
		return 0
	}
	a := applier{buf: buf, nodes: nodes, root: treeRoot(patches, nodes)}
	applied := 0
	for _, p := range patches {
		if a.apply(p) {
			applied++
		}
	}
	return applied
}

type applier struct {
	buf   *CellBuffer
	nodes NodeLookup
	root  *RenderNode
	done  []Frame
}

func (a *applier) apply(p Patch) bool {
	switch p := p.(type) {
	case FrameChanged:
		n := lookup(a.nodes, p.ID)
		if n == nil {
			return false
		}
		area := p.From.Union(p.To).Union(n.PaintBounds())
		if n.parent != nil {
			area = area.Union(n.parent.frame)
		}
		a.repaint(n, area)
	case AttributesChanged:
		return a.repaintNode(p.ID, Frame{})
	case ChildrenChanged:
		return a.repaintNode(p.ID, p.Area)
	case ContentChanged:
		return a.repaintNode(p.ID, Frame{})
	case CellChanged:
		a.buf.SetCell(p.X, p.Y, p.To)
	case NodeAdded:
		if p.Node == nil {
			return false
		}
		a.repaint(p.Node, p.Node.PaintBounds())
	case NodeRemoved:
		if a.root == nil {
			a.buf.Clear(p.Frame, Cell{Rune: ' ', Style: Style{BG: p.Backdrop}})
			return true
		}
		a.repaint(a.root, p.Frame)
	default:
		return false
	}
	return true
}

func (a *applier) repaintNode(id NodeID, extra Frame) bool {
	n := lookup(a.nodes, id)
	if n == nil {
		return false
	}
	a.repaint(n, n.PaintBounds().Union(extra))
	return true
}

// repaint skips areas already covered by an earlier repaint of this pass;
// those cells are final.
func (a *applier) repaint(n *RenderNode, area Frame) {
	area = area.Intersect(a.buf.Bounds())
	if area.IsEmpty() {
		return
	}
	for _, d := range a.done {
		if d.Union(area) == d {
			return
		}
	}
	n.RepaintArea(a.buf, area)
	a.done = append(a.done, area)
}

func lookup(nodes NodeLookup, id NodeID) *RenderNode {
	if nodes == nil {
		return nil
	}
	return nodes.Lookup(id)
}

func treeRoot(patches []Patch, nodes NodeLookup) *RenderNode {
	if r, ok := nodes.(interface{ Root() *RenderNode }); ok {
		if root := r.Root(); root != nil {
			return root
		}
	}
	for _, p := range patches {
		if add, ok := p.(NodeAdded); ok && add.Node != nil {
			return add.Node.Root()
		}
		if id, ok := PatchID(p); ok {
			if n := lookup(nodes, id); n != nil {
				return n.Root()
			}
		}
	}
	return nil
}
