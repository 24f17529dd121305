// Package diagram renders a statechart's hierarchy as a PlantUML state
// diagram, in the framing dragomit-hsm's DiagramBuilder uses
// (@startuml/@enduml, nested "state X { ... }" blocks per ancestor).
//
// The engine keeps no declared child list to read from -- the
// hierarchy graph is an implicit pure function reached by calling
// Superstate(), not a registry -- so Build discovers the tree by
// walking up from caller-supplied representative leaves and
// de-duplicating ancestors by dynamic type, the same node identity the
// transition engine itself uses.
package diagram

import (
	"fmt"
	"strings"

	"github.com/mbrostami/hsm"
)

type node struct {
	name     string
	children []string
}

// Build renders the hierarchy reachable from leaves as PlantUML. Pass
// one representative leaf per branch of the tree worth drawing; Build
// walks each leaf's Superstate() chain to Top, merging shared
// ancestors across leaves.
func Build[C any](leaves ...hsm.State[C]) string {
	nodes := map[string]*node{}
	var roots []string
	seenRoot := map[string]bool{}

	ensure := func(name string) *node {
		n, ok := nodes[name]
		if !ok {
			n = &node{name: name}
			nodes[name] = n
		}
		return n
	}

	for _, leaf := range leaves {
		cur := hsm.Handler[C](leaf)
		curName := typeName(cur)
		ensure(curName)
		for {
			parent := cur.Superstate()
			if parent == nil {
				if !seenRoot[curName] {
					seenRoot[curName] = true
					roots = append(roots, curName)
				}
				break
			}
			parentName := typeName(parent)
			pn := ensure(parentName)
			if !containsString(pn.children, curName) {
				pn.children = append(pn.children, curName)
			}
			cur, curName = parent, parentName
		}
	}

	var b strings.Builder
	b.WriteString("@startuml\n\n")
	for _, r := range roots {
		dump(&b, nodes, r, 0)
	}
	b.WriteString("\n@enduml\n")
	return b.String()
}

func dump(b *strings.Builder, nodes map[string]*node, name string, indent int) {
	prefix := strings.Repeat("  ", indent)
	n := nodes[name]
	if len(n.children) == 0 {
		fmt.Fprintf(b, "%sstate %s\n", prefix, shortName(name))
		return
	}
	fmt.Fprintf(b, "%sstate %s {\n", prefix, shortName(name))
	for _, c := range n.children {
		dump(b, nodes, c, indent+1)
	}
	fmt.Fprintf(b, "%s}\n", prefix)
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func typeName[C any](h hsm.Handler[C]) string {
	return fmt.Sprintf("%T", h)
}

// shortName drops the package qualifier %T includes, since a diagram
// reads better as "blinking" than "mypkg.blinking".
func shortName(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}
