package vgraph

import "fmt"

// PatchKind tags the Patch variants.
type PatchKind uint8

const (
	PatchFrame PatchKind = iota
	PatchAttributes
	PatchChildren
	PatchCell
	PatchNodeAdded
	PatchNodeRemoved
	PatchContent
)

var patchKindNames = [...]string{
	PatchFrame:       "frame",
	PatchAttributes:  "attributes",
	PatchChildren:    "children",
	PatchCell:        "cell",
	PatchNodeAdded:   "added",
	PatchNodeRemoved: "removed",
	PatchContent:     "content",
}

func (k PatchKind) String() string {
	if int(k) < len(patchKindNames) {
		return patchKindNames[k]
	}
	return fmt.Sprintf("PatchKind(%d)", k)
}

// Patch is one change between two render passes. The set of variants is
// closed: FrameChanged, AttributesChanged, ChildrenChanged, CellChanged,
// NodeAdded, NodeRemoved and ContentChanged.
type Patch interface {
	Kind() PatchKind
	patch()
}

// FrameChanged: the node moved or resized.
type FrameChanged struct {
	ID       NodeID
	From, To Frame
}

// AttributesChanged: the node's visual attributes differ.
type AttributesChanged struct {
	ID       NodeID
	From, To RenderAttributes
}

// ChildrenChanged: the node's child list was added to, removed from or
// reordered; the whole subtree is repainted. Area is where the previous
// subtree painted.
type ChildrenChanged struct {
	ID   NodeID
	Area Frame
}

// CellChanged: one buffer cell differs.
type CellChanged struct {
	X, Y     int
	From, To Cell
}

// NodeAdded: a node exists that had no counterpart before.
type NodeAdded struct {
	ID   NodeID
	Node *RenderNode
}

// NodeRemoved: a node is gone. Frame is where its subtree was painted and
// Backdrop the colour it sat on.
type NodeRemoved struct {
	ID       NodeID
	Frame    Frame
	Backdrop Color
}

// ContentChanged: the node's own content paints differently.
type ContentChanged struct {
	ID NodeID
}

func (FrameChanged) Kind() PatchKind      { return PatchFrame }
func (AttributesChanged) Kind() PatchKind { return PatchAttributes }
func (ChildrenChanged) Kind() PatchKind   { return PatchChildren }
func (CellChanged) Kind() PatchKind       { return PatchCell }
func (NodeAdded) Kind() PatchKind         { return PatchNodeAdded }
func (NodeRemoved) Kind() PatchKind       { return PatchNodeRemoved }
func (ContentChanged) Kind() PatchKind    { return PatchContent }

func (FrameChanged) patch()      {}
func (AttributesChanged) patch() {}
func (ChildrenChanged) patch()   {}
func (CellChanged) patch()       {}
func (NodeAdded) patch()         {}
func (NodeRemoved) patch()       {}
func (ContentChanged) patch()    {}

// PatchID returns the node a patch refers to; CellChanged has none.
func PatchID(p Patch) (NodeID, bool) {
	switch p := p.(type) {
	case FrameChanged:
		return p.ID, true
	case AttributesChanged:
		return p.ID, true
	case ChildrenChanged:
		return p.ID, true
	case NodeAdded:
		return p.ID, true
	case NodeRemoved:
		return p.ID, true
	case ContentChanged:
		return p.ID, true
	}
	return 0, false
}

// IsValid reports whether applying p would change anything. Frame,
// attribute and cell patches whose From equals To are no-ops; every other
// kind is always valid.
func IsValid(p Patch) bool {
	switch p := p.(type) {
	case FrameChanged:
		return p.From != p.To
	case AttributesChanged:
		return p.From != p.To
	case CellChanged:
		return p.From != p.To
	case nil:
		return false
	}
	return true
}

// FilterValid returns the valid patches, in order.
func FilterValid(patches []Patch) []Patch {
	out := patches[:0:0]
	for _, p := range patches {
		if IsValid(p) {
			out = append(out, p)
		}
	}
	return out
}

// Optimize collapses redundant patches and orders the rest coarse to fine:
// removals, frame patches, attribute patches, everything else (in original
// order), then cell patches. Removals go first so that nothing they clear
// is left over once the surviving nodes are repainted.
//
// Per node id at most one FrameChanged and one AttributesChanged survive,
// spanning the first From to the last To. An AttributesChanged is dropped
// when the same node has a FrameChanged, since the frame change repaints
// the node anyway. Cell patches are merged per (x, y) the same way, so the
// original prior cell value is kept.
func Optimize(patches []Patch) []Patch {
	var (
		removed []Patch
		frames  []FrameChanged
		attrs   []AttributesChanged
		rest    []Patch
		cells   []CellChanged
	)
	frameAt := map[NodeID]int{}
	attrAt := map[NodeID]int{}
	cellAt := map[Point]int{}
	for _, p := range patches {
		switch p := p.(type) {
		case FrameChanged:
			if i, ok := frameAt[p.ID]; ok {
				frames[i].To = p.To
				continue
			}
			frameAt[p.ID] = len(frames)
			frames = append(frames, p)
		case AttributesChanged:
			if i, ok := attrAt[p.ID]; ok {
				attrs[i].To = p.To
				continue
			}
			attrAt[p.ID] = len(attrs)
			attrs = append(attrs, p)
		case CellChanged:
			at := Point{X: p.X, Y: p.Y}
			if i, ok := cellAt[at]; ok {
				cells[i].To = p.To
				continue
			}
			cellAt[at] = len(cells)
			cells = append(cells, p)
		case NodeRemoved:
			removed = append(removed, p)
		case nil:
		default:
			rest = append(rest, p)
		}
	}

	out := make([]Patch, 0, len(removed)+len(frames)+len(attrs)+len(rest)+len(cells))
	out = append(out, removed...)
	for _, f := range frames {
		out = append(out, f)
	}
	for _, a := range attrs {
		if _, moved := frameAt[a.ID]; moved {
			continue
		}
		out = append(out, a)
	}
	out = append(out, rest...)
	for _, c := range cells {
		out = append(out, c)
	}
	return out
}

// Prepare runs validity filtering then optimization, the order Apply
// expects its input in.
func Prepare(patches []Patch) []Patch {
	return FilterValid(Optimize(FilterValid(patches)))
}

// CountKinds tallies patches by kind.
func CountKinds(patches []Patch) map[PatchKind]int {
	counts := make(map[PatchKind]int)
	for _, p := range patches {
		if p != nil {
			counts[p.Kind()]++
		}
	}
	return counts
}
