package engine

import (
	"sort"

	"github.com/polisai/automata/pkg/automaton"
)

// Set is an unordered collection of states. Recognition tracks the states
// the automaton could currently be in as a true set: merging branches is
// union, so duplicates never accumulate and branch order never matters.
type Set map[automaton.State]struct{}

// NewSet builds a Set from the given states.
func NewSet(states ...automaton.State) Set {
	s := make(Set, len(states))
	for _, q := range states {
		s[q] = struct{}{}
	}
	return s
}

// Add inserts q into the set.
func (s Set) Add(q automaton.State) {
	s[q] = struct{}{}
}

// Contains reports whether q is in the set.
func (s Set) Contains(q automaton.State) bool {
	_, ok := s[q]
	return ok
}

// Merge adds every state of other into s.
func (s Set) Merge(other Set) {
	for q := range other {
		s[q] = struct{}{}
	}
}

// Equal reports whether both sets hold exactly the same states.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for q := range s {
		if _, ok := other[q]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the states in lexicographic order for stable display.
func (s Set) Sorted() []automaton.State {
	out := make([]automaton.State, 0, len(s))
	for q := range s {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
