package vgraph

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"time"
)

// NodeID identifies a render node. It is derived from the node's position
// in the view tree (parent id, view kind, index or explicit key), so a node
// rebuilt in the same place gets the same id. Ids key patches, the node
// index and NodeStorage.
type NodeID uint64

func (id NodeID) String() string {
	return fmt.Sprintf("#%016x", uint64(id))
}

// RootID is the id of the root node of every tree.
var RootID = deriveID(0, "root", 0, "")

// ChildID derives a child id. A non-empty key takes precedence over the
// index so keyed children keep their id when siblings move.
func ChildID(parent NodeID, kind string, index int, key string) NodeID {
	return deriveID(parent, kind, index, key)
}

func deriveID(parent NodeID, kind string, index int, key string) NodeID {
	h := fnv.New64a()
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(parent))
	h.Write(b[:])
	h.Write([]byte(kind))
	if key != "" {
		h.Write([]byte{0})
		h.Write([]byte(key))
	} else {
		binary.LittleEndian.PutUint64(b[:], uint64(index))
		h.Write([]byte{1})
		h.Write(b[:])
	}
	return NodeID(h.Sum64())
}

// Environment keys read by the built-in node kinds.
const (
	EnvForeground  = "foreground"
	EnvBackground  = "background"
	EnvAccent      = "accent"
	EnvBorderStyle = "border"
	EnvFocusColor  = "focus"
)

// Environment is an immutable bag of ambient values read during
// construction. With returns a modified copy.
type Environment struct {
	values map[string]any
}

// NewEnvironment creates an environment from key/value pairs.
func NewEnvironment(values map[string]any) Environment {
	env := Environment{values: make(map[string]any, len(values))}
	for k, v := range values {
		env.values[k] = v
	}
	return env
}

// With returns a copy with key set to v.
func (e Environment) With(key string, v any) Environment {
	next := make(map[string]any, len(e.values)+1)
	for k, old := range e.values {
		next[k] = old
	}
	next[key] = v
	return Environment{values: next}
}

// Value returns the raw value under key.
func (e Environment) Value(key string) (any, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Len returns the number of keys.
func (e Environment) Len() int {
	return len(e.values)
}

// Color returns the Color under key, or def when missing or not a Color.
func (e Environment) Color(key string, def Color) Color {
	return envValue(e, key, def)
}

// Bool returns the bool under key, or def.
func (e Environment) Bool(key string, def bool) bool {
	return envValue(e, key, def)
}

// Int returns the int under key, or def.
func (e Environment) Int(key string, def int) int {
	return envValue(e, key, def)
}

// String returns the string under key, or def.
func (e Environment) String(key string, def string) string {
	return envValue(e, key, def)
}

func envValue[T any](e Environment, key string, def T) T {
	if v, ok := e.values[key].(T); ok {
		return v
	}
	return def
}

// Animation describes an animation in flight. The core only carries it;
// nodes read Progress to decide what to paint and request redraws while it
// is running.
type Animation struct {
	Start    time.Time
	Duration time.Duration
}

// Progress returns how far the animation is at now, in [0, 1].
func (a Animation) Progress(now time.Time) float64 {
	if a.Duration <= 0 {
		return 1
	}
	if !now.After(a.Start) {
		return 0
	}
	p := float64(now.Sub(a.Start)) / float64(a.Duration)
	return min(p, 1)
}

// Done reports whether the animation has finished at now.
func (a Animation) Done(now time.Time) bool {
	return a.Progress(now) >= 1
}

// RenderContext is the per-construction-pass bundle threaded through tree
// building. It is a value: the With* methods return a new context that
// shares the same NodeStorage and RedrawSignal.
type RenderContext struct {
	env       Environment
	focus     FocusState
	animation *Animation
	redraw    *RedrawSignal
	now       time.Time
	storage   *NodeStorage
	solver    LayoutSolver
	id        NodeID
}

// NewRenderContext creates a root context. Nil storage, redraw signal or
// solver are replaced with fresh defaults.
func NewRenderContext(storage *NodeStorage, redraw *RedrawSignal, solver LayoutSolver) RenderContext {
	if storage == nil {
		storage = NewNodeStorage()
	}
	if redraw == nil {
		redraw = NewRedrawSignal()
	}
	if solver == nil {
		solver = DefaultSolver()
	}
	return RenderContext{
		storage: storage,
		redraw:  redraw,
		solver:  solver,
		now:     time.Now(),
		id:      RootID,
	}
}

// Environment returns the ambient values.
func (c RenderContext) Environment() Environment { return c.env }

// Focus returns the focus state.
func (c RenderContext) Focus() FocusState { return c.focus }

// Animation returns the animation in flight, if any.
func (c RenderContext) Animation() (Animation, bool) {
	if c.animation == nil {
		return Animation{}, false
	}
	return *c.animation, true
}

// Now is the time stamp of this construction pass.
func (c RenderContext) Now() time.Time { return c.now }

// Storage returns the shared node storage.
func (c RenderContext) Storage() *NodeStorage { return c.storage }

// Solver returns the layout solver nodes built in this pass attach to.
func (c RenderContext) Solver() LayoutSolver { return c.solver }

// ID is the id the node currently being constructed will get.
func (c RenderContext) ID() NodeID { return c.id }

// RequestRedraw asks the event loop for another frame.
func (c RenderContext) RequestRedraw() { c.redraw.Request() }

// Redraw returns the shared redraw signal.
func (c RenderContext) Redraw() *RedrawSignal { return c.redraw }

// IsFocused reports whether the node being constructed has focus.
func (c RenderContext) IsFocused() bool { return c.focus.IsFocused(c.id) }

// WithEnvironment returns a context with env replaced.
func (c RenderContext) WithEnvironment(env Environment) RenderContext {
	c.env = env
	return c
}

// WithEnvValue returns a context with one environment value replaced.
func (c RenderContext) WithEnvValue(key string, v any) RenderContext {
	c.env = c.env.With(key, v)
	return c
}

// WithFocus returns a context with the focus state replaced.
func (c RenderContext) WithFocus(f FocusState) RenderContext {
	c.focus = f
	return c
}

// WithAnimation returns a context carrying a; nil clears it.
func (c RenderContext) WithAnimation(a *Animation) RenderContext {
	c.animation = a
	return c
}

// WithTime returns a context with a different time stamp.
func (c RenderContext) WithTime(t time.Time) RenderContext {
	c.now = t
	return c
}

// Child returns the context for a child view at index (or key) under the
// current node.
func (c RenderContext) Child(kind string, index int, key string) RenderContext {
	c.id = ChildID(c.id, kind, index, key)
	return c
}

// WithID returns a context that will construct a node with the given id.
func (c RenderContext) WithID(id NodeID) RenderContext {
	c.id = id
	return c
}

// Value is shorthand for GetValue on this node's storage slot.
func Value[T any](c RenderContext, name string, def T) T {
	return GetValue(c.storage, StorageKey{Node: c.id, Name: name}, def)
}

// SetValue stores v in this node's storage slot.
func (c RenderContext) SetValue(name string, v any) {
	c.storage.SetValue(StorageKey{Node: c.id, Name: name}, v)
}
