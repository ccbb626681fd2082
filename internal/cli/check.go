package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geange/powerset"
)

func (c *CLI) checkCommand() *cobra.Command {
	var maxLen int

	cmd := &cobra.Command{
		Use:   "check <nfa-file> <dfa-file>",
		Short: "Check that a DFA accepts the same inputs as an NFA",
		Long: `Check runs both automata on every input up to --max-len symbols over the union of
their alphabets, shortest inputs first, and reports the first input on which they disagree.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("max-len") {
				maxLen = c.Config.MaxCheckLength
			}
			if maxLen < 0 {
				return fmt.Errorf("--max-len must not be negative, got %d", maxLen)
			}
			return c.runCheck(cmd, args[0], args[1], maxLen)
		},
	}

	cmd.Flags().IntVar(&maxLen, "max-len", DefaultConfig().MaxCheckLength, "longest input to try")

	return cmd
}

func (c *CLI) runCheck(cmd *cobra.Command, nfaPath, dfaPath string, maxLen int) error {
	a, err := c.readNFA(cmd, nfaPath)
	if err != nil {
		return err
	}
	d, err := c.readDFA(cmd, dfaPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !d.IsTotal(a.Alphabet()) {
		printWarning(out, "DFA is not total over the NFA alphabet")
	}

	prog := newProgress(c.Logger)
	input, ok := powerset.Equivalent(a, d, maxLen)
	prog.done(fmt.Sprintf("Checked inputs up to length %d", maxLen))
	if !ok {
		printError(out, "Automata disagree on %s", formatInput(input))
		return fmt.Errorf("automata disagree on %s", formatInput(input))
	}
	printSuccess(out, "Automata agree on every input up to length %d", maxLen)
	return nil
}

func formatInput(symbols []powerset.Symbol) string {
	if len(symbols) == 0 {
		return "the empty input"
	}
	return "input " + strings.Join(symbols, " ")
}
