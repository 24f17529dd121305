// Package trace instruments a Machine through its introspection hooks,
// recording a deterministic, insertion-ordered ledger of dispatches and
// transitions. It is a pure observer: nothing here can influence
// engine behavior, only watch it.
package trace

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/mbrostami/hsm"
)

// NodeCount is one entry of a Recorder's dispatch ledger.
type NodeCount struct {
	Node  string
	Count int
}

// Transition is one recorded state change.
type Transition struct {
	Source string
	Target string
}

// Recorder counts how many times each node was dispatched to, in
// first-seen order, and keeps an ordered log of every transition. Wire
// it into a Machine at construction time with Options.
type Recorder[C any] struct {
	dispatches  *orderedmap.OrderedMap[string, int]
	transitions []Transition
}

// NewRecorder creates an empty Recorder.
func NewRecorder[C any]() *Recorder[C] {
	return &Recorder[C]{dispatches: orderedmap.New[string, int]()}
}

// Options returns the hsm.Option values that attach this Recorder to a
// Machine's OnDispatch and OnTransition hooks.
func (r *Recorder[C]) Options() []hsm.Option[C] {
	return []hsm.Option[C]{
		hsm.OnDispatch(r.recordDispatch),
		hsm.OnTransition(r.recordTransition),
	}
}

func (r *Recorder[C]) recordDispatch(node hsm.Handler[C], event hsm.Event) {
	name := nodeName(node)
	count, _ := r.dispatches.Get(name)
	r.dispatches.Set(name, count+1)
}

func (r *Recorder[C]) recordTransition(source, target hsm.Handler[C]) {
	r.transitions = append(r.transitions, Transition{
		Source: nodeName(source),
		Target: nodeName(target),
	})
}

// DispatchCounts reports, for every node that has ever been dispatched
// to, how many times, in the order each node was first seen.
func (r *Recorder[C]) DispatchCounts() []NodeCount {
	counts := make([]NodeCount, 0, r.dispatches.Len())
	for pair := r.dispatches.Oldest(); pair != nil; pair = pair.Next() {
		counts = append(counts, NodeCount{Node: pair.Key, Count: pair.Value})
	}
	return counts
}

// Transitions returns every transition recorded so far, oldest first.
func (r *Recorder[C]) Transitions() []Transition {
	return append([]Transition(nil), r.transitions...)
}

func nodeName[C any](h hsm.Handler[C]) string {
	if h == nil {
		return "<top>"
	}
	return fmt.Sprintf("%T", h)
}
