package vgraph

import "fmt"

// View is anything that can produce a render node. Implementations build
// their node with ctx.NewNode so it gets the id ctx carries, and build
// children through Build with ctx.Child.
type View interface {
	RenderNode(ctx RenderContext) *RenderNode
}

// ViewFunc adapts a plain function to View.
type ViewFunc func(ctx RenderContext) *RenderNode

// RenderNode implements View.
func (f ViewFunc) RenderNode(ctx RenderContext) *RenderNode {
	return f(ctx)
}

// Composite is a view described in terms of other views. It has no node of
// its own: its body, which may be any value AdaptView accepts (including
// another Composite), is built in its place.
type Composite interface {
	Body() any
}

// maxCompositeDepth stops a Composite whose body (transitively) returns
// itself.
const maxCompositeDepth = 64

// Build constructs the node tree for v. It is the single entry point used
// for roots and children alike.
func Build(ctx RenderContext, v any) *RenderNode {
	return AdaptView(ctx, v)
}

// AdaptView converts any value into a render node. Views build themselves;
// Composites are expanded through their body; strings and Stringers become
// text; anything else is printed with %v. A nil value (or a View returning
// nil) becomes an empty node. The returned node always carries ctx's id.
func AdaptView(ctx RenderContext, v any) *RenderNode {
	return adapt(ctx, v, 0)
}

func adapt(ctx RenderContext, v any, depth int) *RenderNode {
	var n *RenderNode
	switch v := v.(type) {
	case nil:
	case View:
		n = v.RenderNode(ctx)
	case Composite:
		if depth < maxCompositeDepth {
			return adapt(ctx, v.Body(), depth+1)
		}
	case string:
		n = Text(v).RenderNode(ctx)
	case fmt.Stringer:
		n = Text(v.String()).RenderNode(ctx)
	default:
		n = Text(fmt.Sprint(v)).RenderNode(ctx)
	}
	if n == nil {
		return ctx.NewNode(EmptyContent{})
	}
	n.id = ctx.ID()
	return n
}

// keyer is implemented by views that carry an explicit identity key.
type keyer interface {
	ViewKey() string
}

// kinder is implemented by views that name their kind for id derivation.
type kinder interface {
	ViewKind() string
}

// viewIdentity returns the kind and key a parent uses to derive a child's
// id.
func viewIdentity(v any) (kind, key string) {
	if k, ok := v.(keyer); ok {
		key = k.ViewKey()
	}
	if k, ok := v.(kinder); ok {
		return k.ViewKind(), key
	}
	return fmt.Sprintf("%T", v), key
}

// BuildChild builds the index-th child of the node being constructed in
// ctx.
func BuildChild(ctx RenderContext, index int, v any) *RenderNode {
	kind, key := viewIdentity(v)
	return Build(ctx.Child(kind, index, key), v)
}

// KeyedView gives a view an explicit identity among its siblings, so it
// keeps its id (and its stored state) when siblings are inserted, removed or
// reordered.
type KeyedView struct {
	Key  string
	View any
}

// Keyed wraps v with key.
func Keyed(key string, v any) KeyedView {
	return KeyedView{Key: key, View: v}
}

// ViewKey implements keyer.
func (k KeyedView) ViewKey() string { return k.Key }

// ViewKind reports the wrapped view's kind so that keying a view does not
// change its kind.
func (k KeyedView) ViewKind() string {
	kind, _ := viewIdentity(k.View)
	return kind
}

// RenderNode implements View.
func (k KeyedView) RenderNode(ctx RenderContext) *RenderNode {
	return Build(ctx, k.View)
}

// FocusableView marks the wrapped view's node as a focus target. While it
// has focus it is drawn bold in the environment's focus colour.
type FocusableView struct {
	View any
}

// Focusable wraps v.
func Focusable(v any) FocusableView {
	return FocusableView{View: v}
}

// ViewKey forwards the wrapped view's key.
func (f FocusableView) ViewKey() string {
	_, key := viewIdentity(f.View)
	return key
}

// ViewKind forwards the wrapped view's kind.
func (f FocusableView) ViewKind() string {
	kind, _ := viewIdentity(f.View)
	return kind
}

// RenderNode implements View.
func (f FocusableView) RenderNode(ctx RenderContext) *RenderNode {
	n := Build(ctx, f.View)
	applyFocus(ctx, n)
	return n
}

func applyFocus(ctx RenderContext, n *RenderNode) {
	n.SetFocusable(true)
	if !ctx.IsFocused() {
		return
	}
	fg := ctx.Environment().Color(EnvFocusColor, Yellow)
	n.SetAttributes(n.Attributes().WithForeground(fg).WithBold(true))
}
