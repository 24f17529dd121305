package hsm_test

import (
	"fmt"
	"testing"
	"testing/quick"

	"github.com/mbrostami/hsm"
)

// This file property-tests the exit/entry set formula by
// cross-checking the engine's actual trace, for randomly chosen
// source/target pairs, against an independent reimplementation of the
// ancestor-set formula -- built only from the public Superstate()
// method, never from the engine's own transition.go.

type propCtx struct{ trace []string }

// propA and propB are two unrelated branches under Top, each with two
// leaves; propG sits directly under Top with no superstate at all.
// Together they cover same-parent, cross-branch and Top-as-LCA cases.
type propA struct{}

func (propA) Dispatch(ctx *propCtx, event hsm.Event) hsm.Response[propCtx] { return hsm.Super[propCtx]() }
func (propA) Entry(ctx *propCtx)               { ctx.trace = append(ctx.trace, "entry:pA") }
func (propA) Exit(ctx *propCtx)                { ctx.trace = append(ctx.trace, "exit:pA") }
func (propA) Superstate() hsm.Handler[propCtx] { return nil }
func (propA) Depth() int                       { return 1 }

type propB struct{}

func (propB) Dispatch(ctx *propCtx, event hsm.Event) hsm.Response[propCtx] { return hsm.Super[propCtx]() }
func (propB) Entry(ctx *propCtx)               { ctx.trace = append(ctx.trace, "entry:pB") }
func (propB) Exit(ctx *propCtx)                { ctx.trace = append(ctx.trace, "exit:pB") }
func (propB) Superstate() hsm.Handler[propCtx] { return nil }
func (propB) Depth() int                       { return 1 }

const evPropJump = 7

type propC struct{}

func (propC) Dispatch(ctx *propCtx, event hsm.Event) hsm.Response[propCtx] {
	if event.ID == evPropJump {
		return hsm.Transition[propCtx](event.Data.(hsm.State[propCtx]))
	}
	return hsm.Handled[propCtx]()
}
func (propC) Entry(ctx *propCtx)               { ctx.trace = append(ctx.trace, "entry:pC") }
func (propC) Exit(ctx *propCtx)                { ctx.trace = append(ctx.trace, "exit:pC") }
func (propC) Superstate() hsm.Handler[propCtx] { return propA{} }
func (propC) Depth() int                       { return 2 }

type propD struct{}

func (propD) Dispatch(ctx *propCtx, event hsm.Event) hsm.Response[propCtx] {
	if event.ID == evPropJump {
		return hsm.Transition[propCtx](event.Data.(hsm.State[propCtx]))
	}
	return hsm.Handled[propCtx]()
}
func (propD) Entry(ctx *propCtx)               { ctx.trace = append(ctx.trace, "entry:pD") }
func (propD) Exit(ctx *propCtx)                { ctx.trace = append(ctx.trace, "exit:pD") }
func (propD) Superstate() hsm.Handler[propCtx] { return propA{} }
func (propD) Depth() int                       { return 2 }

type propE struct{}

func (propE) Dispatch(ctx *propCtx, event hsm.Event) hsm.Response[propCtx] {
	if event.ID == evPropJump {
		return hsm.Transition[propCtx](event.Data.(hsm.State[propCtx]))
	}
	return hsm.Handled[propCtx]()
}
func (propE) Entry(ctx *propCtx)               { ctx.trace = append(ctx.trace, "entry:pE") }
func (propE) Exit(ctx *propCtx)                { ctx.trace = append(ctx.trace, "exit:pE") }
func (propE) Superstate() hsm.Handler[propCtx] { return propB{} }
func (propE) Depth() int                       { return 2 }

type propF struct{}

func (propF) Dispatch(ctx *propCtx, event hsm.Event) hsm.Response[propCtx] {
	if event.ID == evPropJump {
		return hsm.Transition[propCtx](event.Data.(hsm.State[propCtx]))
	}
	return hsm.Handled[propCtx]()
}
func (propF) Entry(ctx *propCtx)               { ctx.trace = append(ctx.trace, "entry:pF") }
func (propF) Exit(ctx *propCtx)                { ctx.trace = append(ctx.trace, "exit:pF") }
func (propF) Superstate() hsm.Handler[propCtx] { return propB{} }
func (propF) Depth() int                       { return 2 }

type propG struct{}

func (propG) Dispatch(ctx *propCtx, event hsm.Event) hsm.Response[propCtx] {
	if event.ID == evPropJump {
		return hsm.Transition[propCtx](event.Data.(hsm.State[propCtx]))
	}
	return hsm.Handled[propCtx]()
}
func (propG) Entry(ctx *propCtx)               { ctx.trace = append(ctx.trace, "entry:pG") }
func (propG) Exit(ctx *propCtx)                { ctx.trace = append(ctx.trace, "exit:pG") }
func (propG) Superstate() hsm.Handler[propCtx] { return nil }
func (propG) Depth() int                       { return 1 }

func propName(h hsm.Handler[propCtx]) string {
	switch h.(type) {
	case propA:
		return "pA"
	case propB:
		return "pB"
	case propC:
		return "pC"
	case propD:
		return "pD"
	case propE:
		return "pE"
	case propF:
		return "pF"
	case propG:
		return "pG"
	default:
		return "<top>"
	}
}

func propSameType(a, b hsm.Handler[propCtx]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return propName(a) == propName(b)
}

// strictAncestors walks h's chain starting at its immediate parent
// (h itself is never included), deepest first.
func strictAncestors(h hsm.Handler[propCtx]) []hsm.Handler[propCtx] {
	var chain []hsm.Handler[propCtx]
	for cur := h.Superstate(); cur != nil; cur = cur.Superstate() {
		chain = append(chain, cur)
	}
	return chain
}

func propLCA(source, target hsm.Handler[propCtx]) hsm.Handler[propCtx] {
	sAnc, tAnc := strictAncestors(source), strictAncestors(target)
	for _, s := range sAnc {
		for _, tt := range tAnc {
			if propSameType(s, tt) {
				return s
			}
		}
	}
	return nil
}

// expectedSets reimplements the exit/entry formula independently of
// the engine: exit set is source plus its strict ancestors up to (not
// including) the LCA; entry set is the LCA's strict descendants down
// to target, shallowest first, plus target itself.
func expectedSets(source, target hsm.Handler[propCtx]) (exit, entry []string) {
	lca := propLCA(source, target)

	exit = append(exit, "exit:"+propName(source))
	for _, h := range strictAncestors(source) {
		if propSameType(h, lca) {
			break
		}
		exit = append(exit, "exit:"+propName(h))
	}

	var ascending []string
	for _, h := range strictAncestors(target) {
		if propSameType(h, lca) {
			break
		}
		ascending = append(ascending, "entry:"+propName(h))
	}
	for i := len(ascending) - 1; i >= 0; i-- {
		entry = append(entry, ascending[i])
	}
	entry = append(entry, "entry:"+propName(target))
	return exit, entry
}

func TestPropertyExitEntrySetsMatchAncestorFormula(t *testing.T) {
	leaves := []hsm.State[propCtx]{propC{}, propD{}, propE{}, propF{}, propG{}}

	check := func(srcIdx, dstIdx uint8) bool {
		source := leaves[int(srcIdx)%len(leaves)]
		target := leaves[int(dstIdx)%len(leaves)]

		m := hsm.New[propCtx](propCtx{}, source)
		if err := m.Init(); err != nil {
			t.Fatal(err)
		}
		m.Context().trace = nil

		if err := m.Handle(hsm.Event{ID: evPropJump, Data: target}); err != nil {
			t.Fatal(err)
		}

		wantExit, wantEntry := expectedSets(source, target)
		gotExit, gotEntry := splitTrace(m.Context().trace)

		if !equalStrings(wantExit, gotExit) {
			t.Logf("exit mismatch %s->%s: want %v got %v", propName(source), propName(target), wantExit, gotExit)
			return false
		}
		if !equalStrings(wantEntry, gotEntry) {
			t.Logf("entry mismatch %s->%s: want %v got %v", propName(source), propName(target), wantEntry, gotEntry)
			return false
		}
		return true
	}

	if err := quick.Check(check, &quick.Config{MaxCount: 300}); err != nil {
		t.Error(err)
	}
}

func splitTrace(trace []string) (exit, entry []string) {
	for _, s := range trace {
		switch {
		case len(s) >= 5 && s[:5] == "exit:":
			exit = append(exit, s)
		case len(s) >= 6 && s[:6] == "entry:":
			entry = append(entry, s)
		default:
			panic(fmt.Sprintf("unexpected trace entry %q", s))
		}
	}
	return exit, entry
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
