package vgraph

import "slices"

// FocusState records which node receives input and the order focus moves
// in. It is a value: every modifier returns a new state.
//
// Disabling focus hides the focused id from IsFocused without forgetting
// it, so enabling again restores the previous focus.
type FocusState struct {
	focused    NodeID
	hasFocus   bool
	focusables []NodeID
	disabled   bool
}

// NewFocusState creates an enabled state with the given focus order.
// Duplicate ids keep their first position. Nothing is focused yet.
func NewFocusState(ids ...NodeID) FocusState {
	return FocusState{}.WithFocusables(ids...)
}

// WithFocusables replaces the focus order.
func (f FocusState) WithFocusables(ids ...NodeID) FocusState {
	out := make([]NodeID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	f.focusables = out
	return f
}

// Focusables returns the focus order.
func (f FocusState) Focusables() []NodeID {
	return slices.Clone(f.focusables)
}

// Focus returns a state with id focused.
func (f FocusState) Focus(id NodeID) FocusState {
	f.focused, f.hasFocus = id, true
	return f
}

// Blur returns a state with nothing focused.
func (f FocusState) Blur() FocusState {
	f.focused, f.hasFocus = 0, false
	return f
}

// Focused returns the stored focus id, even while disabled.
func (f FocusState) Focused() (NodeID, bool) {
	return f.focused, f.hasFocus
}

// IsEnabled reports whether focus is active.
func (f FocusState) IsEnabled() bool {
	return !f.disabled
}

// SetEnabled returns a state with focus enabled or disabled.
func (f FocusState) SetEnabled(on bool) FocusState {
	f.disabled = !on
	return f
}

// IsFocused reports whether id has focus. Always false while disabled.
func (f FocusState) IsFocused(id NodeID) bool {
	return !f.disabled && f.hasFocus && f.focused == id
}

// NextFocusable returns the id after the focused one, wrapping around.
// With nothing focused (or a focused id outside the order) it returns the
// first id. ok is false when there are no focusables.
func (f FocusState) NextFocusable() (NodeID, bool) {
	return f.step(1)
}

// PreviousFocusable is NextFocusable in the other direction.
func (f FocusState) PreviousFocusable() (NodeID, bool) {
	return f.step(-1)
}

func (f FocusState) step(delta int) (NodeID, bool) {
	n := len(f.focusables)
	if n == 0 {
		return 0, false
	}
	i := -1
	if f.hasFocus {
		i = slices.Index(f.focusables, f.focused)
	}
	if i < 0 {
		if delta > 0 {
			return f.focusables[0], true
		}
		return f.focusables[n-1], true
	}
	return f.focusables[(i+delta+n)%n], true
}

// FocusNext returns a state with focus moved forward.
func (f FocusState) FocusNext() FocusState {
	if id, ok := f.NextFocusable(); ok {
		return f.Focus(id)
	}
	return f
}

// FocusPrevious returns a state with focus moved backward.
func (f FocusState) FocusPrevious() FocusState {
	if id, ok := f.PreviousFocusable(); ok {
		return f.Focus(id)
	}
	return f
}
