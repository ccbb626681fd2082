package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/geange/powerset"
)

// Config holds defaults for every command. A config file only needs the keys it changes:
//
//	epsilon = "eps"
//	work_limit = 10000
//	max_nfa_states = 10000
//	prune = true
//	max_check_length = 8
//
//	[render]
//	rankdir = "LR"
type Config struct {
	// Epsilon is the token that marks epsilon transitions in automaton files.
	Epsilon string `toml:"epsilon"`

	// WorkLimit caps the number of DFA states convert may create. Zero disables the cap.
	WorkLimit int `toml:"work_limit"`

	// MaxNFAStates caps the size of an NFA built by convert --regexp. Zero disables the cap.
	MaxNFAStates int `toml:"max_nfa_states"`

	// Prune runs dead-state elimination before conversion.
	Prune bool `toml:"prune"`

	// MaxCheckLength is the longest input check enumerates.
	MaxCheckLength int `toml:"max_check_length"`

	Render RenderConfig `toml:"render"`
}

type RenderConfig struct {
	RankDir string `toml:"rankdir"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Epsilon:        powerset.Epsilon,
		WorkLimit:      powerset.DefaultDeterminizeWorkLimit,
		MaxNFAStates:   powerset.DefaultDeterminizeWorkLimit,
		Prune:          true,
		MaxCheckLength: 8,
		Render:         RenderConfig{RankDir: "LR"},
	}
}

// LoadConfig reads path over DefaultConfig. Unknown keys are an error so that typos do not go
// unnoticed.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Epsilon) == "" || strings.ContainsAny(c.Epsilon, " \t") {
		return fmt.Errorf("epsilon must be a single non-empty token, got %q", c.Epsilon)
	}
	if c.WorkLimit < 0 {
		return fmt.Errorf("work_limit must not be negative, got %d", c.WorkLimit)
	}
	if c.MaxNFAStates < 0 {
		return fmt.Errorf("max_nfa_states must not be negative, got %d", c.MaxNFAStates)
	}
	if c.MaxCheckLength < 0 {
		return fmt.Errorf("max_check_length must not be negative, got %d", c.MaxCheckLength)
	}
	return nil
}
