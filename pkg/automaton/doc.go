// Package automaton defines the immutable NFA value type and its
// construction-time validation.
//
// This package contains pure domain types with no dependencies outside the
// Go standard library. An Automaton is built once from caller-supplied
// states, alphabet, and a transition table, validated eagerly, and never
// mutated afterwards. The recognition algorithms live in pkg/engine and
// treat the Automaton as read-only; definition file loading lives in
// pkg/config.
package automaton
