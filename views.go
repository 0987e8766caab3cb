package vgraph

// Element is the built-in view: one node kind plus chained modifiers, in
// the style of
//
//	VStack(
//		Text("title").Bold(),
//		HStack(Text("a"), Spacer(), Text("b")),
//	).Border(BorderRounded).Padding(1)
//
// Modifiers mutate and return the receiver.
type Element struct {
	kind     string
	key      string
	content  Content
	children []any

	direction Direction
	gap       int
	attrs     RenderAttributes
	sizing    Sizing

	focusable bool
	themed    bool
}

func newElement(kind string, content Content) *Element {
	return &Element{kind: kind, content: content}
}

// Text displays a string. Newlines start new lines.
func Text(s string) *Element {
	return newElement("text", TextContent{Text: s})
}

// VStack stacks children top to bottom.
func VStack(children ...any) *Element {
	return stack("vstack", Column, children)
}

// HStack stacks children left to right.
func HStack(children ...any) *Element {
	return stack("hstack", Row, children)
}

// ZStack layers children on top of each other, later children above.
func ZStack(children ...any) *Element {
	return stack("zstack", Overlay, children)
}

func stack(kind string, d Direction, children []any) *Element {
	e := newElement(kind, StackContent{Direction: d})
	e.direction = d
	e.children = children
	return e
}

// Spacer takes up the leftover space along its parent's main axis.
func Spacer() *Element {
	e := newElement("spacer", SpacerContent{})
	e.sizing.Grow = 1
	return e
}

// Empty renders nothing and takes no space.
func Empty() *Element {
	return newElement("empty", EmptyContent{})
}

// Fill covers all the space it is given with r.
func Fill(r rune) *Element {
	e := newElement("fill", FillContent{Rune: r})
	e.sizing.Width, e.sizing.Height = SizeFill, SizeFill
	return e
}

// Progress is a bar showing value out of total.
func Progress(value, total int) *Element {
	return newElement("progress", ProgressContent{Value: value, Total: total})
}

// ViewKind implements kinder.
func (e *Element) ViewKind() string { return e.kind }

// ViewKey implements keyer.
func (e *Element) ViewKey() string { return e.key }

// Key sets the identity key among siblings.
func (e *Element) Key(key string) *Element {
	e.key = key
	return e
}

// Children appends children to a stack.
func (e *Element) Children(children ...any) *Element {
	e.children = append(e.children, children...)
	return e
}

// Gap sets the space between stacked children.
func (e *Element) Gap(n int) *Element {
	e.gap = max(0, n)
	if sc, ok := e.content.(StackContent); ok {
		sc.Gap = e.gap
		e.content = sc
	}
	return e
}

// FG sets the foreground colour.
func (e *Element) FG(c Color) *Element {
	e.attrs = e.attrs.WithForeground(c)
	return e
}

// BG sets the background colour.
func (e *Element) BG(c Color) *Element {
	e.attrs = e.attrs.WithBackground(c)
	return e
}

// Bold draws text bold.
func (e *Element) Bold() *Element {
	e.attrs = e.attrs.WithBold(true)
	return e
}

// Underline draws text underlined.
func (e *Element) Underline() *Element {
	e.attrs = e.attrs.WithUnderline(true)
	return e
}

// Padding sets the same padding on every side.
func (e *Element) Padding(n int) *Element {
	e.attrs = e.attrs.WithPadding(Uniform(n))
	return e
}

// PaddingInsets sets padding per side.
func (e *Element) PaddingInsets(in EdgeInsets) *Element {
	e.attrs = e.attrs.WithPadding(in)
	return e
}

// Border draws a border around the element.
func (e *Element) Border(b BorderStyle) *Element {
	e.attrs = e.attrs.WithBorder(b)
	return e
}

// Attributes replaces all visual attributes at once.
func (e *Element) Attributes(a RenderAttributes) *Element {
	e.attrs = a
	return e
}

// Width fixes the width in cells.
func (e *Element) Width(n int) *Element {
	e.sizing.Width, e.sizing.FixedWidth = SizeFixed, max(0, n)
	return e
}

// Height fixes the height in cells.
func (e *Element) Height(n int) *Element {
	e.sizing.Height, e.sizing.FixedHeight = SizeFixed, max(0, n)
	return e
}

// FillWidth stretches the element to the available width.
func (e *Element) FillWidth() *Element {
	e.sizing.Width = SizeFill
	return e
}

// FillHeight stretches the element to the available height.
func (e *Element) FillHeight() *Element {
	e.sizing.Height = SizeFill
	return e
}

// Grow sets the share of leftover main-axis space the element takes.
func (e *Element) Grow(f float64) *Element {
	e.sizing.Grow = max(0, f)
	return e
}

// Hidden collapses the element to zero size.
func (e *Element) Hidden() *Element {
	e.sizing.Width, e.sizing.Height = SizeZero, SizeZero
	return e
}

// Focusable makes the element a focus target.
func (e *Element) Focusable() *Element {
	e.focusable = true
	return e
}

// Themed fills unset colours from the environment (EnvForeground,
// EnvBackground, EnvAccent for progress bars). Themed stacks also take
// their border from EnvBorderStyle.
func (e *Element) Themed() *Element {
	e.themed = true
	return e
}

// RenderNode implements View.
func (e *Element) RenderNode(ctx RenderContext) *RenderNode {
	n := ctx.NewNode(e.content)
	n.SetAttributes(e.resolveAttributes(ctx.Environment()))
	n.SetSizing(e.sizing)
	if _, ok := e.content.(StackContent); ok {
		n.SetStack(e.direction, e.gap)
	}
	for i, ch := range e.children {
		n.AddChild(BuildChild(ctx, i, ch))
	}
	if e.focusable {
		applyFocus(ctx, n)
	}
	return n
}

func (e *Element) resolveAttributes(env Environment) RenderAttributes {
	a := e.attrs
	if !e.themed {
		return a
	}
	if !a.FG.IsSet() {
		key := EnvForeground
		if e.kind == "progress" {
			key = EnvAccent
		}
		a.FG = env.Color(key, Color{})
	}
	if !a.BG.IsSet() {
		a.BG = env.Color(EnvBackground, Color{})
	}
	if _, ok := e.content.(StackContent); ok && a.Border == BorderNone {
		if name := env.String(EnvBorderStyle, ""); name != "" {
			a.Border = ParseBorderStyle(name)
		}
	}
	return a
}
