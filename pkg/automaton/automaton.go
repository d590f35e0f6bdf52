package automaton

import (
	"fmt"
	"sort"
)

// State identifies a single automaton state. Opaque and comparable; no
// ordering semantics are attached to the underlying string.
type State string

// Symbol identifies one alphabet token.
type Symbol string

// Sym returns a pointer to s, for building Rules with a non-epsilon label.
func Sym(s Symbol) *Symbol {
	return &s
}

// Rule is one row of a transition table. A nil On labels the rule as an
// epsilon transition.
type Rule struct {
	From State
	On   *Symbol
	To   []State
}

// Table is an ordered list of transition rules. Order carries no meaning:
// rules sharing the same (From, On) key have their destination sets unioned
// by New, so a table can never shadow or overwrite an earlier rule. This is
// a deliberate policy choice; rejecting duplicates would force callers to
// pre-merge rows that NFA semantics say should simply accumulate.
type Table []Rule

type edge struct {
	from State
	on   Symbol
}

// Automaton is an immutable non-deterministic finite automaton with epsilon
// transitions. Build one with New; all accessors are read-only and safe for
// concurrent use.
type Automaton struct {
	states    map[State]struct{}
	alphabet  map[Symbol]struct{}
	moves     map[edge]map[State]struct{}
	epsilons  map[State]map[State]struct{}
	start     State
	accepting map[State]struct{}
}

// New validates and builds an Automaton from its five components.
//
// It fails with ErrInvalidStartState when start is not a declared state,
// ErrInvalidFinalStates when an accepting state is undeclared, and
// ErrMalformedTable when a rule mentions a state or symbol outside the
// declared sets. On failure no Automaton is returned.
func New(states []State, alphabet []Symbol, table Table, start State, accepting []State) (*Automaton, error) {
	a := &Automaton{
		states:    make(map[State]struct{}, len(states)),
		alphabet:  make(map[Symbol]struct{}, len(alphabet)),
		moves:     make(map[edge]map[State]struct{}),
		epsilons:  make(map[State]map[State]struct{}),
		start:     start,
		accepting: make(map[State]struct{}, len(accepting)),
	}
	for _, q := range states {
		a.states[q] = struct{}{}
	}
	for _, s := range alphabet {
		a.alphabet[s] = struct{}{}
	}

	if _, ok := a.states[start]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStartState, start)
	}
	for _, q := range accepting {
		if _, ok := a.states[q]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFinalStates, q)
		}
		a.accepting[q] = struct{}{}
	}

	for _, r := range table {
		if err := a.addRule(r); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Automaton) addRule(r Rule) error {
	if _, ok := a.states[r.From]; !ok {
		return fmt.Errorf("%w: source state %q", ErrMalformedTable, r.From)
	}
	if r.On != nil {
		if _, ok := a.alphabet[*r.On]; !ok {
			return fmt.Errorf("%w: symbol %q", ErrMalformedTable, *r.On)
		}
	}
	for _, to := range r.To {
		if _, ok := a.states[to]; !ok {
			return fmt.Errorf("%w: destination state %q", ErrMalformedTable, to)
		}
	}

	if r.On == nil {
		dst := a.epsilons[r.From]
		if dst == nil {
			dst = make(map[State]struct{}, len(r.To))
			a.epsilons[r.From] = dst
		}
		for _, to := range r.To {
			dst[to] = struct{}{}
		}
		return nil
	}

	key := edge{from: r.From, on: *r.On}
	dst := a.moves[key]
	if dst == nil {
		dst = make(map[State]struct{}, len(r.To))
		a.moves[key] = dst
	}
	for _, to := range r.To {
		dst[to] = struct{}{}
	}
	return nil
}

// Start returns the distinguished start state.
func (a *Automaton) Start() State {
	return a.start
}

// IsAccepting reports whether q is an accepting (final) state.
func (a *Automaton) IsAccepting(q State) bool {
	_, ok := a.accepting[q]
	return ok
}

// HasState reports whether q is a declared state.
func (a *Automaton) HasState(q State) bool {
	_, ok := a.states[q]
	return ok
}

// HasSymbol reports whether s belongs to the declared alphabet.
func (a *Automaton) HasSymbol(s Symbol) bool {
	_, ok := a.alphabet[s]
	return ok
}

// States returns the declared state set, sorted for stable output.
func (a *Automaton) States() []State {
	out := make([]State, 0, len(a.states))
	for q := range a.states {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Alphabet returns the declared symbol set, sorted for stable output.
func (a *Automaton) Alphabet() []Symbol {
	out := make([]Symbol, 0, len(a.alphabet))
	for s := range a.alphabet {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Transitions returns the destinations of the symbol-labeled edges leaving
// from on sym. Absent edges yield an empty result; the returned slice is a
// fresh copy the caller may modify.
func (a *Automaton) Transitions(from State, sym Symbol) []State {
	return copyStates(a.moves[edge{from: from, on: sym}])
}

// EpsilonTransitions returns the immediate epsilon successors of from.
func (a *Automaton) EpsilonTransitions(from State) []State {
	return copyStates(a.epsilons[from])
}

func copyStates(set map[State]struct{}) []State {
	if len(set) == 0 {
		return nil
	}
	out := make([]State, 0, len(set))
	for q := range set {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
