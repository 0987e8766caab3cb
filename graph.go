package vgraph

import (
	"log/slog"
	"time"
)

// State is where a ViewGraph is in its frame cycle.
type State uint8

const (
	StateEmpty    State = iota // no root view
	StateDirty                 // root view set, tree not built
	StateBuilt                 // tree built, not yet painted
	StateRendered              // tree painted, snapshot taken
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateDirty:
		return "dirty"
	case StateBuilt:
		return "built"
	case StateRendered:
		return "rendered"
	}
	return "unknown"
}

// Stats counts what the controller has done since it was created.
type Stats struct {
	Frames         int // Render calls that painted or checked a tree
	FullPaints     int
	Incremental    int
	Rebuilds       int
	PatchesApplied int
}

// Option configures a ViewGraph.
type Option func(*ViewGraph)

// WithLogger sets the logger for frame diagnostics. Records are emitted at
// debug level.
func WithLogger(l *slog.Logger) Option {
	return func(g *ViewGraph) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithSolver sets the layout solver.
func WithSolver(s LayoutSolver) Option {
	return func(g *ViewGraph) {
		if s != nil {
			g.solver = s
		}
	}
}

// WithStorage shares an existing node storage.
func WithStorage(s *NodeStorage) Option {
	return func(g *ViewGraph) {
		if s != nil {
			g.storage = s
		}
	}
}

// WithEnvironment sets the initial environment.
func WithEnvironment(env Environment) Option {
	return func(g *ViewGraph) { g.env = env }
}

// WithClock replaces time.Now as the source of RenderContext.Now.
func WithClock(now func() time.Time) Option {
	return func(g *ViewGraph) {
		if now != nil {
			g.now = now
		}
	}
}

// WithCellDiff adds a cell-level comparison to incremental frames: the new
// tree is also painted into a scratch buffer and every differing cell is
// patched. It costs a full paint per frame and makes the output exact even
// when nodes overlap.
func WithCellDiff(on bool) Option {
	return func(g *ViewGraph) { g.cellDiff = on }
}

// ViewGraph drives one frame at a time: construct the node tree from the
// root view, lay it out against the buffer size, then either paint it whole
// or diff it against the previous tree and apply the patches.
//
// A ViewGraph is not safe for concurrent use and Render must not be called
// from inside a view's construction. Only the redraw signal (Redraws,
// RenderContext.RequestRedraw) may be used from other goroutines.
type ViewGraph struct {
	rootView any
	tree     *RenderNode
	baseline *RenderNode // previous tree kept for diffing after SetRootView
	snapshot *CellBuffer
	scratch  *CellBuffer
	backdrop Color // background the snapshot was painted on

	env       Environment
	focus     FocusState
	animation *Animation
	stale     bool

	storage *NodeStorage
	redraw  *RedrawSignal
	solver  LayoutSolver
	logger  *slog.Logger
	now     func() time.Time

	cellDiff bool
	state    State
	index    NodeIndex
	last     []Patch
	stats    Stats
}

// New creates an empty ViewGraph.
func New(opts ...Option) *ViewGraph {
	g := &ViewGraph{
		storage: NewNodeStorage(),
		redraw:  NewRedrawSignal(),
		solver:  DefaultSolver(),
		logger:  discardLogger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetRootView replaces the root view. The current tree is dropped but kept
// as the baseline the next frame is diffed against.
func (g *ViewGraph) SetRootView(v any) {
	g.rootView = v
	if g.tree != nil {
		g.baseline = g.tree
	}
	g.tree = nil
	if v == nil {
		g.state = StateEmpty
		return
	}
	g.state = StateDirty
}

// UpdateEnvironment replaces the environment. The next Render constructs
// the tree again from the same root view and diffs it against the current
// one.
func (g *ViewGraph) UpdateEnvironment(env Environment) {
	g.env = env
	g.markStale()
}

// UpdateFocusState replaces the focus state; see UpdateEnvironment.
func (g *ViewGraph) UpdateFocusState(f FocusState) {
	g.focus = f
	g.markStale()
}

// SetAnimation sets (or with nil clears) the animation handed to views.
func (g *ViewGraph) SetAnimation(a *Animation) {
	g.animation = a
	g.markStale()
}

// FocusNext moves focus forward through the focus order.
func (g *ViewGraph) FocusNext() {
	g.UpdateFocusState(g.focus.FocusNext())
}

// FocusPrevious moves focus backward through the focus order.
func (g *ViewGraph) FocusPrevious() {
	g.UpdateFocusState(g.focus.FocusPrevious())
}

// Refresh asks for the tree to be constructed again on the next Render,
// typically after a redraw request from stateful nodes.
func (g *ViewGraph) Refresh() {
	g.markStale()
}

func (g *ViewGraph) markStale() {
	if g.rootView != nil {
		g.stale = true
	}
}

// Invalidate drops the tree and the snapshot, so the next frame is built
// and painted from scratch.
func (g *ViewGraph) Invalidate() {
	g.tree, g.baseline, g.snapshot = nil, nil, nil
	g.stale = false
	if g.rootView == nil {
		g.state = StateEmpty
		return
	}
	g.state = StateDirty
}

// NeedsRender reports whether the next Render has work to do beyond
// checking the buffer.
func (g *ViewGraph) NeedsRender() bool {
	return g.state == StateDirty || g.state == StateBuilt || g.stale
}

// State returns the current lifecycle state.
func (g *ViewGraph) State() State { return g.state }

// Root returns the current tree, or nil before the first build.
func (g *ViewGraph) Root() *RenderNode { return g.tree }

// Environment returns the current environment.
func (g *ViewGraph) Environment() Environment { return g.env }

// Focus returns the current focus state.
func (g *ViewGraph) Focus() FocusState { return g.focus }

// Storage returns the node storage shared by every construction pass.
func (g *ViewGraph) Storage() *NodeStorage { return g.storage }

// RedrawSignal returns the signal handed to views through RenderContext.
func (g *ViewGraph) RedrawSignal() *RedrawSignal { return g.redraw }

// Redraws returns the channel that receives a value when a view requests
// another frame.
func (g *ViewGraph) Redraws() <-chan struct{} { return g.redraw.C() }

// LastPatches returns the patches applied by the last incremental frame.
func (g *ViewGraph) LastPatches() []Patch { return g.last }

// Stats returns the counters.
func (g *ViewGraph) Stats() Stats { return g.stats }

// Render runs one frame into buf. buf is expected to hold what the previous
// Render left in it; if it does not, the previous frame is restored first.
func (g *ViewGraph) Render(buf *CellBuffer) {
	if buf == nil || g.rootView == nil {
		return
	}
	g.stats.Frames++
	g.last = nil

	rebuilt := false
	baseline := g.tree
	if g.tree == nil || g.state == StateDirty || g.stale {
		if baseline == nil {
			baseline = g.baseline
		}
		g.build()
		rebuilt = true
	}

	size := buf.Size()
	resized := g.snapshot == nil || g.snapshot.Size() != size
	if resized && !rebuilt {
		g.tree.InvalidateTree()
	}
	g.tree.Layout(Fixed(size.Width, size.Height))
	backdrop := g.env.Color(EnvBackground, Color{})
	g.tree.ResolveBackdrop(backdrop)

	switch {
	case resized || baseline == nil || backdrop != g.backdrop:
		g.fullPaint(buf, backdrop, resized)
	case rebuilt:
		if !buf.Equal(g.snapshot) {
			buf.CopyFrom(g.snapshot)
		}
		g.incremental(buf, baseline)
	default:
		if !buf.Equal(g.snapshot) {
			buf.CopyFrom(g.snapshot)
		}
	}

	g.takeSnapshot(buf)
	g.backdrop = backdrop
	g.baseline = nil
	g.stale = false
	g.state = StateRendered
}

func (g *ViewGraph) build() {
	ctx := NewRenderContext(g.storage, g.redraw, g.solver).
		WithEnvironment(g.env).
		WithFocus(g.focus).
		WithAnimation(g.animation).
		WithTime(g.now())
	g.tree = Build(ctx, g.rootView)
	g.state = StateBuilt
	g.stats.Rebuilds++

	var focusables []NodeID
	g.tree.Walk(func(n *RenderNode) bool {
		if n.focusable {
			focusables = append(focusables, n.id)
		}
		return true
	})
	if len(focusables) > 0 {
		g.focus = g.focus.WithFocusables(focusables...)
	}
	g.logger.Debug("vgraph: built tree", "nodes", g.tree.Count(), "focusables", len(focusables))
}

func (g *ViewGraph) fullPaint(buf *CellBuffer, backdrop Color, resized bool) {
	buf.Clear(buf.Bounds(), Cell{Rune: ' ', Style: Style{BG: backdrop}})
	g.tree.Render(buf)
	g.stats.FullPaints++
	g.logger.Debug("vgraph: full paint", "size", buf.Size(), "resized", resized, "backdrop", backdrop)
}

func (g *ViewGraph) incremental(buf *CellBuffer, baseline *RenderNode) {
	var snap *Snapshot
	if g.cellDiff {
		if g.scratch == nil || g.scratch.Size() != buf.Size() {
			g.scratch = NewCellBuffer(buf.Width(), buf.Height())
		}
		g.scratch.Clear(g.scratch.Bounds(), Cell{Rune: ' ', Style: Style{BG: g.tree.backdrop}})
		g.tree.Render(g.scratch)
		snap = &Snapshot{Before: g.snapshot, After: g.scratch}
	}

	raw := g.tree.Diff(baseline, snap)
	patches := Prepare(raw)
	g.index.Reset(g.tree)
	applied := Apply(patches, buf, &g.index)
	g.tree.markRendered()

	g.last = patches
	g.stats.Incremental++
	g.stats.PatchesApplied += applied
	g.logger.Debug("vgraph: incremental paint", "raw", len(raw), "patches", len(patches), "applied", applied)
}

func (g *ViewGraph) takeSnapshot(buf *CellBuffer) {
	if g.snapshot == nil || !g.snapshot.CopyFrom(buf) {
		g.snapshot = buf.Copy()
	}
}
