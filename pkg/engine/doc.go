// Package engine implements word recognition for NFAs with epsilon
// transitions.
//
// Architecture:
//
// set.go       - state set type shared by the algorithms
// closure.go   - epsilon closure (cycle-safe reachability over epsilon edges)
// step.go      - single-symbol step, epsilon moves first then one consuming edge
// recognize.go - recursive word recognition and acceptance
// metrics.go   - optional Prometheus instrumentation via Recognizer
//
// All algorithms are pure functions over an immutable automaton.Automaton:
// no I/O, no hidden state, safe for concurrent callers. Recognition is
// total — a symbol outside the declared alphabet simply has no edges and
// contributes no reachable states; it never produces an error.
package engine
