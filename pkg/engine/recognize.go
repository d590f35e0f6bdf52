package engine

import "github.com/polisai/automata/pkg/automaton"

// Word is an ordered sequence of input symbols.
type Word []automaton.Symbol

// ReachableAfter returns every state the automaton could occupy after
// consuming word in full, starting from q.
//
// The empty word still accounts for trailing epsilon moves: the result is
// q's epsilon closure plus q itself. Otherwise each state produced by
// stepping on the first symbol is explored independently on the remainder
// and the results are unioned — non-deterministic fan-out without
// backtracking.
func ReachableAfter(a *automaton.Automaton, word Word, q automaton.State) Set {
	if len(word) == 0 {
		out := EpsilonClosure(a, q)
		out.Add(q)
		return out
	}

	out := make(Set)
	for branch := range Step(a, word[0], q) {
		out.Merge(ReachableAfter(a, word[1:], branch))
	}
	return out
}

// Accepts reports whether the automaton recognizes word: at least one state
// reachable from the start state after consuming the whole word is
// accepting. Unknown symbols kill their branches silently, so a word with
// out-of-alphabet symbols is simply rejected.
func Accepts(a *automaton.Automaton, word Word) bool {
	for q := range ReachableAfter(a, word, a.Start()) {
		if a.IsAccepting(q) {
			return true
		}
	}
	return false
}
