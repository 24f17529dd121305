// Package hsm is the runtime core of a hierarchical state machine
// library. States and superstates are modeled as tagged variants: Go
// values implementing a small capability contract (Handler[C]), not as
// a pointer-linked tree. Given a current leaf state and an incoming
// event, the engine walks the superstate chain until the event is
// handled or a transition is requested, computes the exit/entry
// sequence between source and target by least-common-ancestor, and
// runs entry/exit actions in the correct order.
//
// The engine itself performs no dynamic allocation: the superstate
// chain is walked through the Handler.Superstate accessor, and the
// least-common-ancestor computation and the entry/exit sequencing use
// only O(depth) call-stack space.
package hsm
