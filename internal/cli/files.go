package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/geange/powerset"
	"github.com/geange/powerset/textfmt"
)

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openInput returns the file at path, or the command's stdin when path is empty or "-".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(path)
}

// openOutput returns a WriteCloser for path, or the command's stdout when path is empty.
// An existing file is overwritten.
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	return os.Create(path)
}

func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	w, err := openOutput(cmd, path)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (c *CLI) readNFA(cmd *cobra.Command, path string) (*powerset.NFA, error) {
	r, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	a, err := textfmt.ReadNFA(r, textfmt.WithEpsilon(c.Config.Epsilon))
	if err != nil {
		return nil, fmt.Errorf("read NFA %s: %w", displayName(path), err)
	}
	return a, nil
}

func (c *CLI) readDFA(cmd *cobra.Command, path string) (*powerset.DFA, error) {
	r, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	d, err := textfmt.ReadDFA(r, textfmt.WithEpsilon(c.Config.Epsilon))
	if err != nil {
		return nil, fmt.Errorf("read DFA %s: %w", displayName(path), err)
	}
	return d, nil
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "<stdin>"
	}
	return path
}
