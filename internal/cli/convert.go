package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/geange/powerset"
	"github.com/geange/powerset/render"
	"github.com/geange/powerset/textfmt"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output    string // DFA output path, stdout if empty
	dot       string // optional DOT output path for the DFA
	noPrune   bool   // skip dead-state elimination
	workLimit int    // maximum number of DFA states, 0 for no limit
	regexp    string // build the NFA from this expression instead of reading one
	maxNFA    int    // maximum number of NFA states --regexp may build, 0 for no limit
	fold      bool   // match ASCII letters in regexp case-insensitively
}

func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert [nfa-file]",
		Short: "Convert an NFA into an equivalent total DFA",
		Long: `Convert reads an NFA in text form from a file, or from stdin when no file is given,
and writes the equivalent DFA in the same format.

The DFA's initial state is 0. If some state lacks a transition on a symbol of the
NFA's alphabet, a non-accepting sink state is appended as the last state.

With --regexp the NFA is built from a regular expression over single-character
symbols instead, for example: nfa2dfa convert --regexp 'a(b|c)*'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("work-limit") {
				opts.workLimit = c.Config.WorkLimit
			}
			if !cmd.Flags().Changed("max-nfa-states") {
				opts.maxNFA = c.Config.MaxNFAStates
			}
			if !cmd.Flags().Changed("no-prune") {
				opts.noPrune = !c.Config.Prune
			}
			var path string
			if len(args) == 1 {
				if opts.regexp != "" {
					return fmt.Errorf("give either an NFA file or --regexp, not both")
				}
				path = args[0]
			}
			return c.runConvert(cmd, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.dot, "dot", "", "also write the DFA as Graphviz DOT to this file")
	cmd.Flags().BoolVar(&opts.noPrune, "no-prune", false, "skip dead-state elimination")
	cmd.Flags().IntVar(&opts.workLimit, "work-limit", powerset.DefaultDeterminizeWorkLimit, "maximum number of DFA states (0 for no limit)")
	cmd.Flags().StringVarP(&opts.regexp, "regexp", "e", "", "build the NFA from a regular expression")
	cmd.Flags().IntVar(&opts.maxNFA, "max-nfa-states", powerset.DefaultDeterminizeWorkLimit, "with --regexp, maximum number of NFA states (0 for no limit)")
	cmd.Flags().BoolVarP(&opts.fold, "ignore-case", "i", false, "with --regexp, match ASCII letters in either case")

	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, path string, opts convertOpts) error {
	a, err := c.loadNFA(cmd, path, opts)
	if err != nil {
		return err
	}
	c.Logger.Debug("read NFA", "states", a.GetNumStates(), "transitions", a.GetNumTransitions())

	nfaStates := a.GetNumStates()
	alphabet := a.Alphabet()

	dopts := []powerset.Option{
		powerset.WithWorkLimit(opts.workLimit),
		powerset.WithObserver(observerFor(c.Logger)),
	}
	if opts.noPrune {
		dopts = append(dopts, powerset.WithoutPruning())
	}

	prog := newProgress(c.Logger)
	d, err := powerset.Determinize(a, dopts...)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Converted %d NFA states into %d DFA states", nfaStates, d.GetNumStates()))

	err = writeOutput(cmd, opts.output, func(w io.Writer) error {
		return textfmt.WriteDFA(w, d, textfmt.WithEpsilon(c.Config.Epsilon))
	})
	if err != nil {
		return fmt.Errorf("write DFA: %w", err)
	}

	if opts.dot != "" {
		dot := render.DFAToDOT(d, render.Options{RankDir: c.Config.Render.RankDir})
		if err := os.WriteFile(opts.dot, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write DOT: %w", err)
		}
	}

	out := cmd.ErrOrStderr()
	printSuccess(out, "Converted NFA to DFA")
	printStats(out, nfaStates, d.GetNumStates(), len(alphabet), d.Sink() != -1)
	if opts.output != "" {
		printFile(out, opts.output)
	}
	if opts.dot != "" {
		printFile(out, opts.dot)
	}
	return nil
}

// loadNFA reads the NFA at path, or builds it from opts.regexp when set.
func (c *CLI) loadNFA(cmd *cobra.Command, path string, opts convertOpts) (*powerset.NFA, error) {
	if opts.regexp == "" {
		return c.readNFA(cmd, path)
	}
	var ropts []powerset.RegExpOption
	if opts.fold {
		ropts = append(ropts, powerset.WithCaseInsensitive())
	}
	r, err := powerset.ParseRegExp(opts.regexp, ropts...)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("parsed regexp", "expr", r.String())
	return r.ToNFA(opts.maxNFA)
}
