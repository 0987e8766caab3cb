package vgraph

// RedrawSignal carries "please render again" requests from stateful nodes to
// whatever loop drives ViewGraph.Render. Requests coalesce: any number of
// calls before the loop drains the channel produce one pending signal.
//
// Request is safe to call from any goroutine and never touches the tree or
// the buffer.
type RedrawSignal struct {
	ch chan struct{}
}

// NewRedrawSignal creates a signal with nothing pending.
func NewRedrawSignal() *RedrawSignal {
	return &RedrawSignal{ch: make(chan struct{}, 1)}
}

// Request marks a redraw as pending.
func (r *RedrawSignal) Request() {
	if r == nil {
		return
	}
	select {
	case r.ch <- struct{}{}:
	default:
		// already pending
	}
}

// C returns the channel an event loop selects on.
func (r *RedrawSignal) C() <-chan struct{} {
	return r.ch
}

// Consume clears a pending request and reports whether there was one.
func (r *RedrawSignal) Consume() bool {
	select {
	case <-r.ch:
		return true
	default:
		return false
	}
}
