package vgraph

import "testing"

func TestIsValid(t *testing.T) {
	a := RenderAttributes{FG: Red}
	tests := []struct {
		name  string
		patch Patch
		want  bool
	}{
		{"FrameSame", FrameChanged{ID: 1, From: Rect(0, 0, 1, 1), To: Rect(0, 0, 1, 1)}, false},
		{"FrameMoved", FrameChanged{ID: 1, From: Rect(0, 0, 1, 1), To: Rect(1, 0, 1, 1)}, true},
		{"AttributesSame", AttributesChanged{ID: 1, From: a, To: a}, false},
		{"AttributesDiffer", AttributesChanged{ID: 1, From: a, To: a.WithBold(true)}, true},
		{"CellSame", CellChanged{From: BlankCell(), To: BlankCell()}, false},
		{"CellDiffer", CellChanged{From: BlankCell(), To: NewCell('x', Style{})}, true},
		{"Children", ChildrenChanged{ID: 1}, true},
		{"Content", ContentChanged{ID: 1}, true},
		{"Added", NodeAdded{ID: 1}, true},
		{"Removed", NodeRemoved{ID: 1}, true},
		{"Nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.patch); got != tt.want {
				t.Errorf("IsValid(%#v) = %v, want %v", tt.patch, got, tt.want)
			}
		})
	}

	t.Run("FilterValid", func(t *testing.T) {
		in := make([]Patch, len(tests))
		want := 0
		for i, tt := range tests {
			in[i] = tt.patch
			if tt.want {
				want++
			}
		}
		out := FilterValid(in)
		if len(out) != want {
			t.Errorf("expected %d valid patches, got %d", want, len(out))
		}
		for _, p := range out {
			if !IsValid(p) {
				t.Errorf("FilterValid kept %#v", p)
			}
		}
		if in[0] == nil {
			t.Errorf("FilterValid must not modify its input")
		}
	})
}

func TestOptimize(t *testing.T) {
	t.Run("Order", func(t *testing.T) {
		in := []Patch{
			CellChanged{X: 1, From: BlankCell(), To: NewCell('a', Style{})},
			ContentChanged{ID: 3},
			AttributesChanged{ID: 2, To: RenderAttributes{Bold: true}},
			NodeRemoved{ID: 4},
			FrameChanged{ID: 1, To: Rect(0, 0, 1, 1)},
			ChildrenChanged{ID: 5},
		}
		out := Optimize(in)
		want := []PatchKind{PatchNodeRemoved, PatchFrame, PatchAttributes, PatchContent, PatchChildren, PatchCell}
		if len(out) != len(want) {
			t.Fatalf("expected %d patches, got %v", len(want), out)
		}
		for i, k := range want {
			if out[i].Kind() != k {
				t.Errorf("position %d: expected %s, got %s", i, k, out[i].Kind())
			}
		}
	})

	t.Run("OneFramePerNode", func(t *testing.T) {
		out := Optimize([]Patch{
			FrameChanged{ID: 1, From: Rect(0, 0, 1, 1), To: Rect(1, 0, 1, 1)},
			FrameChanged{ID: 2, From: Rect(0, 1, 1, 1), To: Rect(0, 2, 1, 1)},
			FrameChanged{ID: 1, From: Rect(1, 0, 1, 1), To: Rect(2, 0, 1, 1)},
		})
		if len(out) != 2 {
			t.Fatalf("expected 2 patches, got %v", out)
		}
		f := out[0].(FrameChanged)
		if f.ID != 1 || f.From != Rect(0, 0, 1, 1) || f.To != Rect(2, 0, 1, 1) {
			t.Errorf("expected merged move from the first From to the last To, got %+v", f)
		}
	})

	t.Run("AttributesDroppedWhenMoved", func(t *testing.T) {
		out := Optimize([]Patch{
			AttributesChanged{ID: 1, To: RenderAttributes{Bold: true}},
			AttributesChanged{ID: 2, To: RenderAttributes{Bold: true}},
			FrameChanged{ID: 1, To: Rect(0, 0, 1, 1)},
		})
		got := CountKinds(out)
		if got[PatchFrame] != 1 || got[PatchAttributes] != 1 {
			t.Fatalf("unexpected %v", out)
		}
		if a := out[1].(AttributesChanged); a.ID != 2 {
			t.Errorf("kept the wrong attribute patch: %+v", a)
		}
	})

	t.Run("CellKeepsFirstFrom", func(t *testing.T) {
		orig := NewCell('o', Style{FG: Green})
		mid := NewCell('m', Style{})
		last := NewCell('l', Style{})
		out := Optimize([]Patch{
			CellChanged{X: 2, Y: 3, From: orig, To: mid},
			CellChanged{X: 0, Y: 0, From: BlankCell(), To: mid},
			CellChanged{X: 2, Y: 3, From: mid, To: last},
		})
		if len(out) != 2 {
			t.Fatalf("expected 2 cell patches, got %v", out)
		}
		c := out[0].(CellChanged)
		if c.From != orig || c.To != last {
			t.Errorf("expected %v -> %v, got %v -> %v", orig, last, c.From, c.To)
		}
	})

	t.Run("Prepare", func(t *testing.T) {
		// a cell changed and changed back is a no-op once merged
		out := Prepare([]Patch{
			CellChanged{X: 0, Y: 0, From: BlankCell(), To: NewCell('x', Style{})},
			CellChanged{X: 0, Y: 0, From: NewCell('x', Style{}), To: BlankCell()},
			nil,
		})
		if len(out) != 0 {
			t.Errorf("expected nothing left, got %v", out)
		}
	})
}

func TestApply(t *testing.T) {
	t.Run("FrameChangedClearsOldRect", func(t *testing.T) {
		old := layoutTree(VStack(Text("a").Key("a"), Text("b").Key("b")).BG(Blue), 3, 2)
		buf := NewCellBuffer(3, 2)
		old.Render(buf)

		cur := layoutTree(VStack(Text("b").Key("b")).BG(Blue), 3, 2)
		cur.ResolveBackdrop(Color{})
		patches := Prepare(cur.Diff(old, nil))
		n := Apply(patches, buf, NewNodeIndex(cur))
		if n != len(patches) {
			t.Errorf("expected every patch to apply, got %d of %d", n, len(patches))
		}

		fresh := NewCellBuffer(3, 2)
		cur.Render(fresh)
		if !buf.Equal(fresh) {
			t.Errorf("patched buffer differs from a full paint:\n%s\nwant\n%s", buf, fresh)
		}
		if c := buf.Cell(0, 1); c.Style.BG != Blue || c.Rune != ' ' {
			t.Errorf("vacated cell should show the parent background, got %+v", c)
		}
	})

	t.Run("CellChanged", func(t *testing.T) {
		buf := NewCellBuffer(2, 1)
		Apply([]Patch{CellChanged{X: 1, Y: 0, To: NewCell('z', Style{})}}, buf, nil)
		if buf.Cell(1, 0).Rune != 'z' {
			t.Errorf("cell not written")
		}
	})

	t.Run("MissingIDsSkipped", func(t *testing.T) {
		buf := NewCellBuffer(2, 1)
		n := Apply([]Patch{
			AttributesChanged{ID: 77},
			ChildrenChanged{ID: 77},
			ContentChanged{ID: 77},
			FrameChanged{ID: 77, To: Rect(0, 0, 1, 1)},
			NodeAdded{ID: 77},
		}, buf, NewNodeIndex(nil))
		if n != 0 || buf.StringTrimmed() != "" {
			t.Errorf("unknown ids should be no-ops, applied %d", n)
		}
	})

	t.Run("NodeRemoved", func(t *testing.T) {
		buf := NewCellBuffer(3, 1)
		buf.WriteString(0, 0, "abc", Style{}, 0)
		Apply([]Patch{NodeRemoved{ID: 5, Frame: Rect(1, 0, 1, 1), Backdrop: Green}}, buf, nil)
		if got := buf.Line(0); got != "a c" {
			t.Errorf("expected %q, got %q", "a c", got)
		}
		if c := buf.Cell(1, 0); c.Style.BG != Green {
			t.Errorf("without a tree the area should take the removed node's backdrop, got %+v", c)
		}
	})

	t.Run("NodeRemovedUnderShrunkParent", func(t *testing.T) {
		old := layoutTree(VStack(VStack(Text("a"), Text("b"))).BG(Blue), 4, 3)
		old.ResolveBackdrop(Color{})
		buf := NewCellBuffer(4, 3)
		old.Render(buf)

		cur := layoutTree(VStack(VStack(Text("a"))).BG(Blue), 4, 3)
		cur.ResolveBackdrop(Color{})
		Apply(Prepare(cur.Diff(old, nil)), buf, NewNodeIndex(cur))

		fresh := NewCellBuffer(4, 3)
		cur.Render(fresh)
		if !buf.Equal(fresh) {
			t.Errorf("patched buffer differs from a full paint:\n%s\nwant\n%s", buf, fresh)
		}
		if c := buf.Cell(0, 1); c.Style.BG != Blue {
			t.Errorf("vacated cell should keep the ancestor background, got %+v", c)
		}
	})

	t.Run("NodeRemovedUnderOverlay", func(t *testing.T) {
		old := layoutTree(ZStack(Fill('.'), Text("ab")).Border(BorderSingle), 4, 3)
		old.ResolveBackdrop(Color{})
		buf := NewCellBuffer(4, 3)
		old.Render(buf)

		cur := layoutTree(ZStack(Fill('.')).Border(BorderSingle), 4, 3)
		cur.ResolveBackdrop(Color{})
		Apply(Prepare(cur.Diff(old, nil)), buf, NewNodeIndex(cur))

		fresh := NewCellBuffer(4, 3)
		cur.Render(fresh)
		if !buf.Equal(fresh) {
			t.Errorf("removal should restore what lies underneath:\n%s\nwant\n%s", buf, fresh)
		}
	})
}

func TestNodeIndex(t *testing.T) {
	root := buildTree(VStack(Text("a"), HStack(Text("b"))))
	x := NewNodeIndex(root)
	if x.Len() != 4 {
		t.Errorf("expected 4 nodes, got %d", x.Len())
	}
	for _, n := range x.Nodes() {
		if x.Lookup(n.ID()) != n {
			t.Errorf("lookup failed for %v", n.ID())
		}
	}
	if x.Root() != root {
		t.Errorf("Root should be the first indexed node")
	}
	x.Reset(nil)
	if x.Root() != nil {
		t.Errorf("an empty index has no root")
	}
	if x.Len() != 0 || x.Lookup(root.ID()) != nil {
		t.Errorf("Reset(nil) should empty the index")
	}
	var none *NodeIndex
	if none.Lookup(root.ID()) != nil || none.Len() != 0 {
		t.Errorf("nil index should be empty")
	}
}
