package vgraph

// Snapshot is a pair of buffers to compare cell by cell: Before is what is
// on screen, After is the new tree painted from scratch.
type Snapshot struct {
	Before, After *CellBuffer
}

// Diff compares n, the freshly built and laid out tree, against prev and
// returns the patches that turn a buffer showing prev into one showing n.
//
// Nodes are matched by id. A matched pair yields FrameChanged,
// AttributesChanged and ContentChanged as their properties differ, then
// their children are reconciled: unmatched old children yield NodeRemoved,
// unmatched new ones NodeAdded, matched ones recurse, and any insertion,
// removal or reordering adds a ChildrenChanged for the parent. When both
// child lists are non-empty but share no id the parent only reports
// ChildrenChanged.
//
// With a non-nil snap, a CellChanged is added for every cell inside n's
// frame where Before and After differ.
//
// The result is unfiltered; pass it through Prepare before Apply.
func (n *RenderNode) Diff(prev *RenderNode, snap *Snapshot) []Patch {
	var d differ
	switch {
	case prev == nil:
		d.emit(NodeAdded{ID: n.id, Node: n})
	case prev.id != n.id:
		d.emit(removal(prev))
		d.emit(NodeAdded{ID: n.id, Node: n})
	default:
		d.node(prev, n)
	}
	if snap != nil {
		d.cells(snap, n.frame)
	}
	return d.out
}

type differ struct {
	out []Patch
}

func (d *differ) emit(p Patch) {
	d.out = append(d.out, p)
}

func (d *differ) node(old, cur *RenderNode) {
	if old.frame != cur.frame {
		d.emit(FrameChanged{ID: cur.id, From: old.frame, To: cur.frame})
	}
	if old.attrs != cur.attrs {
		d.emit(AttributesChanged{ID: cur.id, From: old.attrs, To: cur.attrs})
	}
	if !cur.content.Equal(old.content) {
		d.emit(ContentChanged{ID: cur.id})
	}
	d.children(old, cur)
}

func (d *differ) children(old, cur *RenderNode) {
	if len(old.children) == 0 && len(cur.children) == 0 {
		return
	}

	prev := make(map[NodeID]*RenderNode, len(old.children))
	for _, ch := range old.children {
		if _, dup := prev[ch.id]; !dup {
			prev[ch.id] = ch
		}
	}

	shared := 0
	for _, ch := range cur.children {
		if _, ok := prev[ch.id]; ok {
			shared++
		}
	}
	if shared == 0 && len(old.children) > 0 && len(cur.children) > 0 {
		d.emit(ChildrenChanged{ID: cur.id, Area: old.PaintBounds()})
		return
	}

	present := make(map[NodeID]bool, len(cur.children))
	for _, ch := range cur.children {
		present[ch.id] = true
	}

	changed := len(old.children) != len(cur.children)
	for _, ch := range old.children {
		if !present[ch.id] {
			d.emit(removal(ch))
			changed = true
		}
	}

	// matched children must appear in the same relative order
	order := make([]NodeID, 0, len(old.children))
	for _, ch := range old.children {
		if present[ch.id] {
			order = append(order, ch.id)
		}
	}

	next := 0
	for _, ch := range cur.children {
		match, ok := prev[ch.id]
		if !ok {
			d.emit(NodeAdded{ID: ch.id, Node: ch})
			changed = true
			continue
		}
		delete(prev, ch.id)
		if next >= len(order) || order[next] != ch.id {
			changed = true
		}
		next++
		d.node(match, ch)
	}

	if changed {
		d.emit(ChildrenChanged{ID: cur.id, Area: old.PaintBounds()})
	}
}

func removal(n *RenderNode) NodeRemoved {
	return NodeRemoved{ID: n.id, Frame: n.PaintBounds(), Backdrop: n.backdrop}
}

func (d *differ) cells(snap *Snapshot, frame Frame) {
	if snap.Before == nil || snap.After == nil {
		return
	}
	r := frame.Intersect(snap.After.Bounds())
	for y := r.Y; y < r.MaxY(); y++ {
		for x := r.X; x < r.MaxX(); x++ {
			from, to := snap.Before.Cell(x, y), snap.After.Cell(x, y)
			if from != to {
				d.emit(CellChanged{X: x, Y: y, From: from, To: to})
			}
		}
	}
}
