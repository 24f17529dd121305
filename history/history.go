// Package history implements shallow history entirely outside the
// engine, leaving the engine itself with no history pseudostate at
// all. It is grounded on dragomit-hsm's History field and
// HistoryShallow transitions, reimplemented as an external helper
// driven by the OnTransition hook rather than as an engine-internal
// pseudostate.
package history

import (
	"fmt"

	"github.com/mbrostami/hsm"
)

// Tracker remembers, for each superstate, which of its direct
// children was the last leaf active under it. Wire Observe in as an
// OnTransition hook; a handler that wants to resume a branch where it
// left off calls Resume before returning Transition(...).
type Tracker[C any] struct {
	last map[string]hsm.State[C]
}

// NewTracker creates an empty Tracker.
func NewTracker[C any]() *Tracker[C] {
	return &Tracker[C]{last: make(map[string]hsm.State[C])}
}

// Option returns the hsm.Option that wires Observe into a Machine's
// OnTransition hook.
func (t *Tracker[C]) Option() hsm.Option[C] {
	return hsm.OnTransition(t.Observe)
}

// Observe records target as the last-active child of its own
// immediate superstate. This is shallow history by construction: only
// the direct parent's record is updated, never any ancestor above it.
func (t *Tracker[C]) Observe(source, target hsm.State[C]) {
	parent := hsm.Handler[C](target).Superstate()
	if parent == nil {
		return
	}
	t.last[superstateName(parent)] = target
}

// Resume returns the last leaf recorded as active under superstate,
// or ok=false if none has been recorded yet (no transition has targeted
// a direct child of superstate since the Tracker started observing; the
// initial state that Machine.Init enters is not recorded).
func (t *Tracker[C]) Resume(superstate hsm.Superstate[C]) (leaf hsm.State[C], ok bool) {
	leaf, ok = t.last[superstateName(superstate)]
	return
}

func superstateName[C any](h hsm.Handler[C]) string {
	return fmt.Sprintf("%T", h)
}
