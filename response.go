package hsm

type responseKind uint8

const (
	kindHandled responseKind = iota
	kindSuper
	kindTransition
)

// Response is returned by a Handler's Dispatch method: the event was
// Handled, it should bubble to the Super(state), or it should trigger a
// Transition to a target leaf.
type Response[C any] struct {
	kind   responseKind
	target Handler[C]
}

// Handled reports that the event was consumed: no further dispatch up
// the chain, and no transition.
func Handled[C any]() Response[C] {
	return Response[C]{kind: kindHandled}
}

// Super bubbles the event to the parent node. Returned by the node
// directly under Top, Super is treated as Handled: Top has no handler
// of its own and answers every event by doing nothing.
func Super[C any]() Response[C] {
	return Response[C]{kind: kindSuper}
}

// Transition stops the dispatch walk and runs the transition engine
// from the current leaf to target, even when target equals the current
// leaf (an external self-transition: exit then re-entry). target
// should be a leaf State[C] -- see the Superstate doc comment for why
// the engine cannot enforce that structurally.
//
// Internal transitions -- the UML flavor that runs neither exit nor
// entry actions -- are not a distinct Response variant; a handler that
// wants that semantics returns Handled after running its own side
// effects directly.
func Transition[C any](target Handler[C]) Response[C] {
	return Response[C]{kind: kindTransition, target: target}
}
