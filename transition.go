package hsm

import "reflect"

// transition runs the full exit/entry sequence from source to target
// and returns target, the new current state.
func transition[C any](ctx *C, source, target Handler[C]) Handler[C] {
	lca := lowestCommonAncestor(source, target)
	runExits(ctx, source, lca)
	runEntries(ctx, lca, target)
	return target
}

// sameNode reports whether a and b occupy the same position in the
// hierarchy graph. Position is determined by dynamic type, not by
// value equality: a superstate re-materializes a fresh borrow every
// time it is produced, so two instances of the same graph node reached
// from different leaves can differ in their borrowed field while still
// being the same ancestor. Comparing types instead of values makes the
// LCA walk immune to that, at the cost of requiring each distinct
// position in the hierarchy to be implemented by its own concrete Go
// type -- see DESIGN.md.
func sameNode[C any](a, b Handler[C]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}

// lowestCommonAncestor finds the deepest node that is an ancestor of
// both source and target, or nil (meaning Top) if they share none.
//
// Depths are taken from each side's immediate parent, not from source
// and target themselves, so a self-transition (source and target of
// the same type) naturally makes sp and tp the same node before the
// alignment loops ever run, and the result is source's own immediate
// parent. That gives self-transitions their usual external semantics --
// exit source, then enter target -- with no separate code path: the
// exit and entry phases below run from source/target up to (but not
// including) that shared parent, which for a self-transition is just
// source.Exit(ctx) and target.Entry(ctx).
func lowestCommonAncestor[C any](source, target Handler[C]) Handler[C] {
	sp, tp := source.Superstate(), target.Superstate()
	ds, dt := depthOf(sp), depthOf(tp)
	for ds > dt {
		sp = sp.Superstate()
		ds--
	}
	for dt > ds {
		tp = tp.Superstate()
		dt--
	}
	for !sameNode(sp, tp) {
		if debugAssertions && ds == 0 {
			panic("hsm: superstate chains never converge -- malformed graph")
		}
		sp = sp.Superstate()
		tp = tp.Superstate()
		ds--
	}
	return sp
}

func depthOf[C any](h Handler[C]) int {
	if h == nil {
		return 0
	}
	return h.Depth()
}

// runExits runs source.Exit, then Exit for every ancestor strictly
// between source and lca, deepest first. Each ancestor is
// re-materialized by walking up from source, so its borrowed data (if
// any) points into source's own local state.
func runExits[C any](ctx *C, source, lca Handler[C]) {
	source.Exit(ctx)
	for h := source.Superstate(); !sameNode(h, lca); h = h.Superstate() {
		h.Exit(ctx)
	}
}

// runEntries runs Entry for every ancestor strictly between lca and
// node, shallowest first, then node.Entry. Each ancestor is
// re-materialized by walking up from node, so its borrowed data (if
// any) points into node's own local state. Recursion ascends to lca
// before running any action, so actions run in the reverse order of
// the ascent -- outermost first -- using only call-stack space
// proportional to the declared maximum depth, and no heap allocation.
func runEntries[C any](ctx *C, lca, node Handler[C]) {
	if sameNode(node, lca) {
		return
	}
	runEntries(ctx, lca, node.Superstate())
	node.Entry(ctx)
}
