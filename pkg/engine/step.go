package engine

import "github.com/polisai/automata/pkg/automaton"

// Step returns the states reachable from q by consuming exactly one sym.
//
// The consuming edge may be taken directly from q or from any state along
// an epsilon path out of q: free epsilon moves first, then one symbol.
// Absent edges contribute nothing, so a symbol outside the alphabet yields
// the empty set rather than an error.
func Step(a *automaton.Automaton, sym automaton.Symbol, q automaton.State) Set {
	out := NewSet(a.Transitions(q, sym)...)
	for branch := range EpsilonClosure(a, q) {
		for _, to := range a.Transitions(branch, sym) {
			out.Add(to)
		}
	}
	return out
}
