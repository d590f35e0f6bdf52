package automaton

import "errors"

// Construction errors. All are detected eagerly by New; a failed
// construction never returns a partially-built Automaton.
var (
	// ErrInvalidStartState indicates the start state is not in the declared state set.
	ErrInvalidStartState = errors.New("start state not in state set")
	// ErrInvalidFinalStates indicates an accepting state is not in the declared state set.
	ErrInvalidFinalStates = errors.New("accepting state not in state set")
	// ErrMalformedTable indicates a transition rule references an undeclared state or symbol.
	ErrMalformedTable = errors.New("transition table references undeclared state or symbol")
)
