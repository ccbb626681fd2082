package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/geange/powerset/render"
)

const (
	kindNFA = "nfa"
	kindDFA = "dfa"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	kind    string // automaton kind: "nfa" or "dfa"
	format  string // output format: "dot", "svg" or "png"
	output  string // output file path, stdout if empty
	rankdir string // Graphviz rankdir
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{kind: kindNFA, format: string(render.FormatDOT)}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Draw an automaton as DOT, SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("rankdir") {
				opts.rankdir = c.Config.Render.RankDir
			}
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.kind, "kind", opts.kind, "automaton kind: nfa or dfa")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg or png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.rankdir, "rankdir", "", "Graphviz rankdir (default from config, LR)")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	ropts := render.Options{RankDir: opts.rankdir}
	var dot string
	switch opts.kind {
	case kindNFA:
		a, err := c.readNFA(cmd, path)
		if err != nil {
			return err
		}
		dot = render.NFAToDOT(a, ropts)
	case kindDFA:
		d, err := c.readDFA(cmd, path)
		if err != nil {
			return err
		}
		dot = render.DFAToDOT(d, ropts)
	default:
		return fmt.Errorf("unknown kind %q (want nfa or dfa)", opts.kind)
	}

	prog := newProgress(c.Logger)
	data, err := render.Render(cmd.Context(), dot, format)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s as %s", opts.kind, format))

	err = writeOutput(cmd, opts.output, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	if opts.output != "" {
		printFile(cmd.ErrOrStderr(), opts.output)
	}
	return nil
}
