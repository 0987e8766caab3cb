package vgraph

import "testing"

func paint(v any, w, h int) (*RenderNode, *CellBuffer) {
	root := layoutTree(v, w, h)
	buf := NewCellBuffer(w, h)
	root.Render(buf)
	return root, buf
}

func TestRenderNodeRender(t *testing.T) {
	t.Run("Background", func(t *testing.T) {
		root, buf := paint(Text("hi").BG(Blue), 5, 1)
		if got := buf.Line(0); got != "hi" {
			t.Errorf("expected %q, got %q", "hi", got)
		}
		if c := buf.Cell(4, 0); c.Style.BG != Blue || c.Rune != ' ' {
			t.Errorf("background should fill the frame, got %+v", c)
		}
		if c := buf.Cell(0, 0); c.Style.BG != Blue {
			t.Errorf("text should sit on the background, got %+v", c)
		}
		if root.NeedsRender() {
			t.Errorf("render should clear needsRender")
		}
	})

	t.Run("Border", func(t *testing.T) {
		_, buf := paint(VStack(Text("x")).Border(BorderSingle).FG(Red), 3, 3)
		want := "┌─┐\n│x│\n└─┘"
		if got := buf.String(); got != want {
			t.Errorf("expected\n%s\ngot\n%s", want, got)
		}
		if buf.Cell(0, 0).Style.FG != Red {
			t.Errorf("border should use the foreground colour")
		}
	})

	t.Run("ChildrenOnTop", func(t *testing.T) {
		_, buf := paint(ZStack(Fill('.'), Text("hi")), 4, 2)
		if got := buf.String(); got != "hi..\n...." {
			t.Errorf("unexpected paint order:\n%s", got)
		}
	})

	t.Run("InheritedBackground", func(t *testing.T) {
		_, buf := paint(VStack(Text("a")).BG(Green), 3, 1)
		if c := buf.Cell(0, 0); c.Rune != 'a' || c.Style.BG != Green {
			t.Errorf("child text should use the parent's background, got %+v", c)
		}
	})

	t.Run("Progress", func(t *testing.T) {
		_, buf := paint(Progress(5, 10).Width(4), 4, 1)
		if got := buf.Line(0); got != "██░░" {
			t.Errorf("expected half a bar, got %q", got)
		}
	})

	t.Run("MultilineClipped", func(t *testing.T) {
		_, buf := paint(VStack(Text("abc\ndef\nghi").Width(2).Height(2)), 4, 3)
		if got := buf.StringTrimmed(); got != "ab\nde" {
			t.Errorf("expected clipped text, got %q", got)
		}
	})
}

func TestRenderNodeRepaint(t *testing.T) {
	root, buf := paint(VStack(Text("a")).BG(Blue), 3, 1)
	child := root.Children()[0]

	buf.Clear(buf.Bounds(), NewCell('#', Style{BG: Red}))
	child.Repaint(buf)

	if c := buf.Cell(0, 0); c.Rune != 'a' || c.Style.BG != Blue {
		t.Errorf("repaint should restore the backdrop under the node, got %+v", c)
	}
	if c := buf.Cell(2, 0); c.Rune != '#' {
		t.Errorf("repaint touched cells outside the node's frame: %+v", c)
	}
}

func TestRenderNodeTree(t *testing.T) {
	t.Run("AddRemove", func(t *testing.T) {
		a := NewRenderNode(1, nil)
		b := NewRenderNode(2, nil)
		c := NewRenderNode(3, TextContent{Text: "c"})

		a.Layout(Fixed(1, 1))
		a.AddChild(c)
		if !a.NeedsLayout() || c.Parent() != a {
			t.Errorf("AddChild should link and invalidate layout")
		}

		b.AddChild(c)
		if len(a.Children()) != 0 || c.Parent() != b {
			t.Errorf("adding to a new parent should detach from the old one")
		}

		b.Layout(Fixed(1, 1))
		b.RemoveChild(c)
		if !b.NeedsLayout() || c.Parent() != nil || len(b.Children()) != 0 {
			t.Errorf("RemoveChild should unlink and invalidate layout")
		}

		b.AddChild(NewRenderNode(4, nil))
		b.AddChild(NewRenderNode(5, nil))
		b.RemoveAllChildren()
		if len(b.Children()) != 0 {
			t.Errorf("RemoveAllChildren left %d children", len(b.Children()))
		}
		b.AddChild(b)
		if len(b.Children()) != 0 {
			t.Errorf("a node must not become its own child")
		}
	})

	t.Run("InvalidateOwnFlagOnly", func(t *testing.T) {
		root := layoutTree(VStack(Text("a")), 3, 1)
		child := root.Children()[0]
		child.InvalidateLayout()
		if root.NeedsLayout() {
			t.Errorf("invalidating a child must not mark the parent")
		}
		root.InvalidateTree()
		if !root.NeedsLayout() || !root.NeedsRender() || !child.NeedsRender() {
			t.Errorf("InvalidateTree should mark the whole subtree")
		}
	})

	t.Run("SetAttributes", func(t *testing.T) {
		root := layoutTree(Text("a"), 3, 3)
		root.SetAttributes(root.Attributes().WithForeground(Red))
		if root.NeedsLayout() || !root.NeedsRender() {
			t.Errorf("a colour change should only need a repaint")
		}
		root.SetAttributes(root.Attributes().WithBorder(BorderDouble))
		if !root.NeedsLayout() {
			t.Errorf("a border change moves content and needs layout")
		}
	})

	t.Run("FindCount", func(t *testing.T) {
		root := buildTree(VStack(Text("a"), HStack(Text("b"), Text("c"))))
		if root.Count() != 5 {
			t.Errorf("expected 5 nodes, got %d", root.Count())
		}
		leaf := root.Children()[1].Children()[1]
		if root.Find(leaf.ID()) != leaf {
			t.Errorf("Find did not return the leaf")
		}
		if root.Find(NodeID(42)) != nil {
			t.Errorf("Find returned a node for an unknown id")
		}
	})
}
