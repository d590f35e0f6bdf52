package engine

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polisai/automata/pkg/automaton"
)

// Metrics holds Prometheus collectors for recognition activity.
type Metrics struct {
	wordsTotal      *prometheus.CounterVec
	wordLength      prometheus.Histogram
	closureComputes prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates a metrics instance backed by its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		wordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nfa_words_total",
				Help: "Words evaluated, labeled by recognition result",
			},
			[]string{"result"},
		),
		wordLength: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "nfa_word_length_symbols",
				Help:    "Length of evaluated words in symbols",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		closureComputes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "nfa_epsilon_closures_total",
				Help: "Epsilon closure computations requested through the recognizer",
			},
		),
		registry: registry,
	}

	registry.MustRegister(m.wordsTotal, m.wordLength, m.closureComputes)
	return m
}

// RecordWord counts one evaluated word and its outcome.
func (m *Metrics) RecordWord(length int, accepted bool) {
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	m.wordsTotal.WithLabelValues(result).Inc()
	m.wordLength.Observe(float64(length))
}

// RecordClosure counts one epsilon closure computation.
func (m *Metrics) RecordClosure() {
	m.closureComputes.Inc()
}

// Handler returns an HTTP handler exposing the metrics in Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Recognizer bundles an automaton with optional metrics. The underlying
// functions stay pure; the wrapper only counts around them. A nil *Metrics
// disables instrumentation.
type Recognizer struct {
	auto    *automaton.Automaton
	metrics *Metrics
}

// NewRecognizer wraps a for instrumented recognition. metrics may be nil.
func NewRecognizer(a *automaton.Automaton, metrics *Metrics) *Recognizer {
	return &Recognizer{auto: a, metrics: metrics}
}

// Automaton returns the wrapped automaton.
func (r *Recognizer) Automaton() *automaton.Automaton {
	return r.auto
}

// Accepts reports whether the automaton recognizes word, recording the
// outcome when metrics are attached.
func (r *Recognizer) Accepts(word Word) bool {
	accepted := Accepts(r.auto, word)
	if r.metrics != nil {
		r.metrics.RecordWord(len(word), accepted)
	}
	return accepted
}

// EpsilonClosure computes q's epsilon closure, counting the computation
// when metrics are attached.
func (r *Recognizer) EpsilonClosure(q automaton.State) Set {
	if r.metrics != nil {
		r.metrics.RecordClosure()
	}
	return EpsilonClosure(r.auto, q)
}
