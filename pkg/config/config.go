// Package config loads automaton definitions from YAML files and converts
// them into validated automata.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/polisai/automata/pkg/automaton"
)

// Definition is the YAML representation of an automaton.
//
// A transition row without an "on" key is an epsilon transition. Rows may
// repeat a (from, on) pair; destinations accumulate.
type Definition struct {
	Name        string       `yaml:"name"`
	States      []string     `yaml:"states"`
	Alphabet    []string     `yaml:"alphabet"`
	Start       string       `yaml:"start"`
	Accepting   []string     `yaml:"accepting"`
	Transitions []Transition `yaml:"transitions"`
}

// Transition is one row of the definition's transition table.
type Transition struct {
	From string   `yaml:"from"`
	On   *string  `yaml:"on,omitempty"`
	To   []string `yaml:"to"`
}

// Load reads and parses a definition file, then validates its shape.
func Load(path string) (*Definition, error) {
	//nolint:gosec // Definition file path is provided by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %s: %w", path, err)
	}

	def := &Definition{}
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("failed to parse definition file %s: %w", path, err)
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid definition file %s: %w", path, err)
	}
	return def, nil
}

// Validate performs structural checks on the definition. Membership checks
// (start in states, table references declared states and symbols) are the
// automaton constructor's job and intentionally not duplicated here.
func (d *Definition) Validate() error {
	if len(d.States) == 0 {
		return fmt.Errorf("at least one state is required")
	}
	if d.Start == "" {
		return fmt.Errorf("start state is required")
	}
	seen := make(map[string]struct{}, len(d.States))
	for _, q := range d.States {
		if q == "" {
			return fmt.Errorf("empty state name")
		}
		if _, dup := seen[q]; dup {
			return fmt.Errorf("duplicate state %q", q)
		}
		seen[q] = struct{}{}
	}
	for _, s := range d.Alphabet {
		if s == "" {
			return fmt.Errorf("empty alphabet symbol")
		}
	}
	for i, tr := range d.Transitions {
		if tr.From == "" {
			return fmt.Errorf("transition %d: missing from", i)
		}
		if tr.On != nil && *tr.On == "" {
			return fmt.Errorf("transition %d: empty symbol (omit the on key for epsilon)", i)
		}
		if len(tr.To) == 0 {
			return fmt.Errorf("transition %d: missing to", i)
		}
	}
	return nil
}

// Build converts the definition into a validated Automaton. Construction
// failures carry the automaton package's sentinel errors, so callers can
// distinguish an out-of-range start or accepting state from a malformed
// transition table.
func (d *Definition) Build() (*automaton.Automaton, error) {
	states := make([]automaton.State, len(d.States))
	for i, q := range d.States {
		states[i] = automaton.State(q)
	}
	alphabet := make([]automaton.Symbol, len(d.Alphabet))
	for i, s := range d.Alphabet {
		alphabet[i] = automaton.Symbol(s)
	}
	accepting := make([]automaton.State, len(d.Accepting))
	for i, q := range d.Accepting {
		accepting[i] = automaton.State(q)
	}

	table := make(automaton.Table, len(d.Transitions))
	for i, tr := range d.Transitions {
		rule := automaton.Rule{From: automaton.State(tr.From)}
		if tr.On != nil {
			rule.On = automaton.Sym(automaton.Symbol(*tr.On))
		}
		rule.To = make([]automaton.State, len(tr.To))
		for j, to := range tr.To {
			rule.To[j] = automaton.State(to)
		}
		table[i] = rule
	}

	return automaton.New(states, alphabet, table, automaton.State(d.Start), accepting)
}
