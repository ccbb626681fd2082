// Package cli implements the nfa2dfa command-line interface.
//
// # Commands
//
//   - convert: Read an NFA in text form, or build one from a regular expression, and write the
//     equivalent DFA
//   - check: Compare an NFA and a DFA on every input up to a bounded length
//   - render: Draw an NFA or DFA as DOT, SVG or PNG
//
// # Configuration
//
// Defaults can be stored in a TOML file passed with --config; command-line flags override the
// file. See [Config] for the recognized keys.
//
// # Logging
//
// All commands log to stderr through charmbracelet/log. With --verbose (-v) every stage of the
// subset construction is traced at debug level.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/geange/powerset/internal/buildinfo"
)

const appName = "nfa2dfa"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger and default configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "nfa2dfa converts nondeterministic automata into deterministic ones",
		Long:         `nfa2dfa reads a nondeterministic finite automaton, possibly with epsilon transitions, and produces an equivalent total deterministic automaton by subset construction.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.configPath == "" {
				return nil
			}
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			c.Logger.Debug("loaded config", "path", c.configPath)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a TOML config file")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.renderCommand())

	return root
}
