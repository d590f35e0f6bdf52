package engine

import "github.com/polisai/automata/pkg/automaton"

// EpsilonClosure returns the set of states reachable from q through one or
// more epsilon transitions.
//
// q itself is a member only when some epsilon cycle leads back to it; a
// state without an epsilon path returning to itself never appears in its
// own closure, and a state with no epsilon edges at all has an empty
// closure.
func EpsilonClosure(a *automaton.Automaton, q automaton.State) Set {
	closure := make(Set)
	// Expanded tracks states whose epsilon edges were already followed, so
	// cyclic epsilon graphs terminate: each state is expanded at most once.
	expanded := make(Set)

	stack := a.EpsilonTransitions(q)
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		closure.Add(r)
		if expanded.Contains(r) {
			continue
		}
		expanded.Add(r)
		stack = append(stack, a.EpsilonTransitions(r)...)
	}
	return closure
}
