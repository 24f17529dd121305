//go:build debug

package hsm

// debugAssertions is compiled in only when building with -tags debug.
// It guards an expensive-in-aggregate sanity check best left out of
// release builds: detecting a Superstate() chain that never converges
// with its counterpart (a malformed graph, e.g. a Depth() that lies
// about the chain's real length, or a Superstate() that returns a node
// outside the path reachable from the current leaf).
const debugAssertions = true
