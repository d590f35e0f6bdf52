package engine

import (
	"testing"

	"github.com/polisai/automata/pkg/automaton"
)

// loopAutomaton: q0 loops on u, forks to {q0,q1} on c, q1 reaches the
// accepting q2 on u. No epsilon edges.
func loopAutomaton(t *testing.T) *automaton.Automaton {
	t.Helper()
	a, err := automaton.New(
		[]automaton.State{"q0", "q1", "q2"},
		[]automaton.Symbol{"c", "u"},
		automaton.Table{
			{From: "q0", On: automaton.Sym("u"), To: []automaton.State{"q0"}},
			{From: "q0", On: automaton.Sym("c"), To: []automaton.State{"q0", "q1"}},
			{From: "q1", On: automaton.Sym("u"), To: []automaton.State{"q2"}},
		},
		"q0",
		[]automaton.State{"q2"},
	)
	if err != nil {
		t.Fatalf("building automaton: %v", err)
	}
	return a
}

// epsilonAutomaton: epsilon edge q0->q1, q0 reaches q2 on a, q1 loops on a
// and forks to {q0,q2} on b. Accepting state is q1.
func epsilonAutomaton(t *testing.T) *automaton.Automaton {
	t.Helper()
	a, err := automaton.New(
		[]automaton.State{"q0", "q1", "q2"},
		[]automaton.Symbol{"a", "b"},
		automaton.Table{
			{From: "q0", To: []automaton.State{"q1"}},
			{From: "q0", On: automaton.Sym("a"), To: []automaton.State{"q2"}},
			{From: "q1", On: automaton.Sym("a"), To: []automaton.State{"q1"}},
			{From: "q1", On: automaton.Sym("b"), To: []automaton.State{"q0", "q2"}},
		},
		"q0",
		[]automaton.State{"q1"},
	)
	if err != nil {
		t.Fatalf("building automaton: %v", err)
	}
	return a
}

func word(symbols string) Word {
	w := make(Word, 0, len(symbols))
	for _, r := range symbols {
		w = append(w, automaton.Symbol(r))
	}
	return w
}

func TestEpsilonClosure(t *testing.T) {
	a, err := automaton.New(
		[]automaton.State{"q0", "q1", "q2", "q3", "q4"},
		[]automaton.Symbol{"a"},
		automaton.Table{
			{From: "q0", To: []automaton.State{"q1"}},
			{From: "q1", To: []automaton.State{"q2"}},
			{From: "q2", To: []automaton.State{"q0"}}, // cycle back to q0
			{From: "q3", To: []automaton.State{"q3"}}, // epsilon self-loop
		},
		"q0",
		nil,
	)
	if err != nil {
		t.Fatalf("building automaton: %v", err)
	}

	tests := []struct {
		name  string
		state automaton.State
		want  Set
	}{
		{
			name:  "cycle reinstates origin",
			state: "q0",
			want:  NewSet("q0", "q1", "q2"),
		},
		{
			name:  "self loop includes origin",
			state: "q3",
			want:  NewSet("q3"),
		},
		{
			name:  "no epsilon edges means empty closure",
			state: "q4",
			want:  NewSet(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EpsilonClosure(a, tt.state)
			if !got.Equal(tt.want) {
				t.Fatalf("EpsilonClosure(%s) = %v, want %v", tt.state, got.Sorted(), tt.want.Sorted())
			}
		})
	}
}

func TestEpsilonClosure_OriginExcludedWithoutCycle(t *testing.T) {
	a, err := automaton.New(
		[]automaton.State{"q0", "q1", "q2"},
		[]automaton.Symbol{"a"},
		automaton.Table{
			{From: "q0", To: []automaton.State{"q1", "q2"}},
		},
		"q0",
		nil,
	)
	if err != nil {
		t.Fatalf("building automaton: %v", err)
	}

	got := EpsilonClosure(a, "q0")
	if got.Contains("q0") {
		t.Fatalf("closure of q0 contains q0 without a cycle: %v", got.Sorted())
	}
	if want := NewSet("q1", "q2"); !got.Equal(want) {
		t.Fatalf("EpsilonClosure(q0) = %v, want %v", got.Sorted(), want.Sorted())
	}
}

func TestStep(t *testing.T) {
	a := epsilonAutomaton(t)

	tests := []struct {
		name  string
		sym   automaton.Symbol
		state automaton.State
		want  Set
	}{
		{
			name:  "direct and epsilon-first edges union",
			sym:   "a",
			state: "q0",
			want:  NewSet("q1", "q2"),
		},
		{
			name:  "epsilon-first only",
			sym:   "b",
			state: "q0",
			want:  NewSet("q0", "q2"),
		},
		{
			name:  "no matching edges",
			sym:   "b",
			state: "q2",
			want:  NewSet(),
		},
		{
			name:  "symbol outside alphabet",
			sym:   "z",
			state: "q0",
			want:  NewSet(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Step(a, tt.sym, tt.state)
			if !got.Equal(tt.want) {
				t.Fatalf("Step(%s, %s) = %v, want %v", tt.sym, tt.state, got.Sorted(), tt.want.Sorted())
			}
		})
	}
}

func TestReachableAfter(t *testing.T) {
	loop := loopAutomaton(t)
	eps := epsilonAutomaton(t)

	tests := []struct {
		name  string
		auto  *automaton.Automaton
		word  Word
		state automaton.State
		want  Set
	}{
		{
			name:  "loop automaton long word",
			auto:  loop,
			word:  word("ccucu"),
			state: "q0",
			want:  NewSet("q0", "q2"),
		},
		{
			name:  "epsilon automaton from start",
			auto:  eps,
			word:  word("aba"),
			state: "q0",
			want:  NewSet("q1", "q2"),
		},
		{
			name:  "epsilon automaton from interior state",
			auto:  eps,
			word:  word("aabb"),
			state: "q1",
			want:  NewSet("q0", "q1", "q2"),
		},
		{
			name:  "empty word includes closure and self",
			auto:  eps,
			word:  nil,
			state: "q0",
			want:  NewSet("q0", "q1"),
		},
		{
			name:  "dead branch yields empty set",
			auto:  eps,
			word:  word("ba"),
			state: "q2",
			want:  NewSet(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReachableAfter(tt.auto, tt.word, tt.state)
			if !got.Equal(tt.want) {
				t.Fatalf("ReachableAfter(%v, %s) = %v, want %v", tt.word, tt.state, got.Sorted(), tt.want.Sorted())
			}
		})
	}
}

func TestAccepts(t *testing.T) {
	loop := loopAutomaton(t)
	eps := epsilonAutomaton(t)

	tests := []struct {
		name string
		auto *automaton.Automaton
		word Word
		want bool
	}{
		{name: "loop automaton accepts", auto: loop, word: word("ccucu"), want: true},
		{name: "loop automaton rejects unfinished word", auto: loop, word: word("cc"), want: false},
		{name: "empty word accepted via epsilon closure", auto: eps, word: nil, want: true},
		{name: "empty word rejected without accepting closure", auto: loop, word: nil, want: false},
		{name: "out-of-alphabet symbol rejects without error", auto: eps, word: word("axb"), want: false},
		{name: "epsilon automaton accepts", auto: eps, word: word("aba"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Accepts(tt.auto, tt.word); got != tt.want {
				t.Fatalf("Accepts(%v) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}
