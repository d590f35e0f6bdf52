// Package main is the entry point for the nfa binary, a CLI for checking
// words against NFA definitions.
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/polisai/automata/pkg/automaton"
	"github.com/polisai/automata/pkg/config"
	"github.com/polisai/automata/pkg/engine"
	"github.com/polisai/automata/pkg/logging"
)

const defaultLogLevel = "info"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command for nfa.
func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "nfa",
		Short: "Check words against NFA definitions",
		Long: `nfa loads a non-deterministic finite automaton from a YAML definition
file and decides whether input words are accepted.

Example:
  nfa check -f machine.yaml abba baab
  nfa closure -f machine.yaml q0
  nfa watch -f machine.yaml abba`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.SetupLogger(logging.Config{Level: logLevel, Pretty: true})
		},
	}

	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", defaultLogLevel, "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newClosureCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newWatchCmd())
	return rootCmd
}

func newCheckCmd() *cobra.Command {
	var file string
	var sep string

	cmd := &cobra.Command{
		Use:   "check WORD...",
		Short: "Check whether words are accepted",
		Long: `Check builds the automaton and tests each word. Words come from the
arguments, or from stdin (one per line) when no arguments are given.
The command fails when at least one word is rejected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildAutomaton(file)
			if err != nil {
				return err
			}

			words, err := collectWords(cmd, args)
			if err != nil {
				return err
			}

			rejected := 0
			for _, raw := range words {
				w := splitWord(raw, sep)
				for _, s := range w {
					if !a.HasSymbol(s) {
						log.Debug().Str("word", raw).Str("symbol", string(s)).Msg("symbol outside alphabet")
					}
				}
				if engine.Accepts(a, w) {
					cmd.Printf("accept\t%s\n", raw)
				} else {
					cmd.Printf("reject\t%s\n", raw)
					rejected++
				}
			}
			if rejected > 0 {
				return fmt.Errorf("%d of %d words rejected", rejected, len(words))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the automaton definition (YAML)")
	cmd.Flags().StringVar(&sep, "sep", "", "Symbol separator within words (default: one symbol per character)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newClosureCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "closure STATE",
		Short: "Print the epsilon closure of a state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildAutomaton(file)
			if err != nil {
				return err
			}

			state := automaton.State(args[0])
			if !a.HasState(state) {
				return fmt.Errorf("unknown state %q", args[0])
			}

			for _, q := range engine.EpsilonClosure(a, state).Sorted() {
				cmd.Println(string(q))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the automaton definition (YAML)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a definition file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildAutomaton(file)
			if err != nil {
				return err
			}
			cmd.Printf("ok: %d states, %d symbols\n", len(a.States()), len(a.Alphabet()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the automaton definition (YAML)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newWatchCmd() *cobra.Command {
	var file string
	var sep string
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "watch WORD...",
		Short: "Re-check words whenever the definition file changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics := engine.NewMetrics()

			reload := func(path string) error {
				a, err := buildAutomaton(path)
				if err != nil {
					return err
				}
				checkAll(cmd, engine.NewRecognizer(a, metrics), args, sep)
				return nil
			}

			if err := reload(file); err != nil {
				return err
			}

			watcher, err := config.NewWatcher(file, reload)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if err := watcher.Start(ctx); err != nil {
				return err
			}
			defer watcher.Stop() //nolint:errcheck

			if metricsAddr != "" {
				go serveMetrics(metricsAddr, metrics)
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-sigCh:
			case <-ctx.Done():
			}
			log.Info().Msg("shutting down")
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the automaton definition (YAML)")
	cmd.Flags().StringVar(&sep, "sep", "", "Symbol separator within words (default: one symbol per character)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9180)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func buildAutomaton(path string) (*automaton.Automaton, error) {
	def, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	a, err := def.Build()
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("name", def.Name).
		Int("states", len(a.States())).
		Int("symbols", len(a.Alphabet())).
		Msg("automaton built")
	return a, nil
}

// collectWords returns the word arguments, falling back to stdin lines when
// none are given.
func collectWords(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var words []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			words = append(words, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading words from stdin: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no words to check")
	}
	return words, nil
}

// splitWord turns a raw word into symbols: one per character by default, or
// split on sep for multi-character symbols.
func splitWord(raw string, sep string) engine.Word {
	if raw == "" {
		return nil
	}
	if sep != "" {
		parts := strings.Split(raw, sep)
		w := make(engine.Word, len(parts))
		for i, p := range parts {
			w[i] = automaton.Symbol(p)
		}
		return w
	}
	w := make(engine.Word, 0, len(raw))
	for _, r := range raw {
		w = append(w, automaton.Symbol(r))
	}
	return w
}

func checkAll(cmd *cobra.Command, r *engine.Recognizer, words []string, sep string) {
	for _, raw := range words {
		if r.Accepts(splitWord(raw, sep)) {
			cmd.Printf("accept\t%s\n", raw)
		} else {
			cmd.Printf("reject\t%s\n", raw)
		}
	}
}

func serveMetrics(addr string, metrics *engine.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info().Str("addr", addr).Msg("serving metrics")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("metrics server failed")
	}
}
