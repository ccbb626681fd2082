// Package textfmt reads and writes automata in the line-oriented text format:
//
//	<state count>
//	<accept states, space separated, possibly empty>
//	<state> <symbol> <target> [<target>...]
//	...
//
// The initial state is always 0 and is never written. NFA lines carry one or more targets,
// DFA lines exactly one. Epsilon transitions use a reserved symbol token, "eps" by default.
package textfmt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/geange/powerset"
)

// ErrSyntax is wrapped by every ParseError caused by malformed text, as opposed to an
// automaton that is well formed but names a state out of range.
var ErrSyntax = errors.New("syntax error")

// ErrReservedSymbol is returned by the writers when a transition symbol is spelled like the
// configured epsilon token and could not be read back as itself.
var ErrReservedSymbol = errors.New("symbol is the epsilon token")

// ParseError reports the line on which reading stopped.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func syntaxError(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Err: fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))}
}

type options struct {
	epsilon string
}

type Option func(*options)

// WithEpsilon sets the token that stands for an epsilon transition.
func WithEpsilon(token string) Option {
	return func(o *options) {
		if token != "" {
			o.epsilon = token
		}
	}
}

func newOptions(opts ...Option) *options {
	o := &options{epsilon: powerset.Epsilon}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// symbol maps a file token to a model symbol.
func (o *options) symbol(line int, token string) (powerset.Symbol, error) {
	if token == o.epsilon {
		return powerset.Epsilon, nil
	}
	if token == powerset.Epsilon {
		return "", syntaxError(line, "symbol %q is reserved", token)
	}
	return token, nil
}

// token maps a model symbol to a file token.
func (o *options) token(symbol powerset.Symbol) string {
	if symbol == powerset.Epsilon {
		return o.epsilon
	}
	return symbol
}

// checkSymbols fails if a non-epsilon symbol would be written as the epsilon token.
func (o *options) checkSymbols(keys []powerset.Key) error {
	for _, k := range keys {
		if k.Symbol != powerset.Epsilon && k.Symbol == o.epsilon {
			return fmt.Errorf("transition %v: %w %q", k, ErrReservedSymbol, o.epsilon)
		}
	}
	return nil
}

type lineReader struct {
	s    *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &lineReader{s: s}
}

func (lr *lineReader) next() (string, bool, error) {
	if !lr.s.Scan() {
		return "", false, lr.s.Err()
	}
	lr.line++
	return strings.TrimSpace(lr.s.Text()), true, nil
}

// header reads the state count and the accept states.
func (lr *lineReader) header() (int, []int, error) {
	text, ok, err := lr.next()
	if err != nil {
		return 0, nil, err
	}
	if !ok {
		return 0, nil, syntaxError(1, "missing state count")
	}
	numStates, err := strconv.Atoi(text)
	if err != nil {
		return 0, nil, syntaxError(lr.line, "state count %q is not an integer", text)
	}
	if numStates <= 0 {
		return 0, nil, &ParseError{Line: lr.line, Err: powerset.ErrNoStates}
	}

	text, ok, err = lr.next()
	if err != nil || !ok {
		return numStates, nil, err
	}
	accept := make([]int, 0)
	for _, field := range strings.Fields(text) {
		s, err := lr.state(field, numStates)
		if err != nil {
			return 0, nil, err
		}
		accept = append(accept, s)
	}
	return numStates, accept, nil
}

func (lr *lineReader) state(field string, numStates int) (int, error) {
	s, err := strconv.Atoi(field)
	if err != nil {
		return 0, syntaxError(lr.line, "state %q is not an integer", field)
	}
	if s < 0 || s >= numStates {
		return 0, &ParseError{Line: lr.line, Err: fmt.Errorf("state %d: %w", s, powerset.ErrStateOutOfRange)}
	}
	return s, nil
}

// transitions calls fn with the source, symbol and targets of every remaining non-blank line.
func (lr *lineReader) transitions(numStates int, o *options, fn func(source int, symbol powerset.Symbol, dests []int) error) error {
	for {
		text, ok, err := lr.next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 3 {
			return syntaxError(lr.line, "want <state> <symbol> <target...>, got %d fields", len(fields))
		}
		source, err := lr.state(fields[0], numStates)
		if err != nil {
			return err
		}
		symbol, err := o.symbol(lr.line, fields[1])
		if err != nil {
			return err
		}
		dests := make([]int, 0, len(fields)-2)
		for _, field := range fields[2:] {
			dest, err := lr.state(field, numStates)
			if err != nil {
				return err
			}
			dests = append(dests, dest)
		}
		if err := fn(source, symbol, dests); err != nil {
			return &ParseError{Line: lr.line, Err: err}
		}
	}
}

// ReadNFA Parses an NFA. Repeated lines for the same state and symbol merge their targets.
func ReadNFA(r io.Reader, opts ...Option) (*powerset.NFA, error) {
	o := newOptions(opts...)
	lr := newLineReader(r)
	numStates, accept, err := lr.header()
	if err != nil {
		return nil, err
	}

	a := powerset.NewNFA(numStates)
	for _, s := range accept {
		a.SetAccept(s, true)
	}
	err = lr.transitions(numStates, o, func(source int, symbol powerset.Symbol, dests []int) error {
		return a.AddTransition(source, symbol, dests...)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ReadDFA Parses a DFA. Every line must have exactly one target and no state and symbol pair
// may repeat.
func ReadDFA(r io.Reader, opts ...Option) (*powerset.DFA, error) {
	o := newOptions(opts...)
	lr := newLineReader(r)
	numStates, accept, err := lr.header()
	if err != nil {
		return nil, err
	}

	d := powerset.NewDFA(numStates)
	for _, s := range accept {
		d.SetAccept(s, true)
	}
	err = lr.transitions(numStates, o, func(source int, symbol powerset.Symbol, dests []int) error {
		if len(dests) != 1 {
			return fmt.Errorf("%w: want exactly one target, got %d", ErrSyntax, len(dests))
		}
		if d.Step(source, symbol) != -1 {
			return fmt.Errorf("%w: duplicate transition (%d, %s)", ErrSyntax, source, symbol)
		}
		return d.SetTransition(source, symbol, dests[0])
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func writeHeader(bw *bufio.Writer, numStates int, accept []int) {
	bw.WriteString(strconv.Itoa(numStates))
	bw.WriteByte('\n')
	for i, s := range accept {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(strconv.Itoa(s))
	}
	bw.WriteByte('\n')
}

// WriteNFA Writes a in text form, transitions ordered by state then symbol. Entries with an
// empty target set carry no information and are omitted. Returns ErrReservedSymbol, before
// writing anything, if a symbol equals the epsilon token.
func WriteNFA(w io.Writer, a *powerset.NFA, opts ...Option) error {
	o := newOptions(opts...)
	keys := a.Keys()
	if err := o.checkSymbols(keys); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	writeHeader(bw, a.GetNumStates(), a.AcceptStates())
	for _, k := range keys {
		dests := a.Targets(k.State, k.Symbol)
		if len(dests) == 0 {
			continue
		}
		fmt.Fprintf(bw, "%d %s", k.State, o.token(k.Symbol))
		for _, dest := range dests {
			fmt.Fprintf(bw, " %d", dest)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteDFA Writes d in text form, transitions ordered by state then symbol. Returns
// ErrReservedSymbol, before writing anything, if a symbol equals the epsilon token.
func WriteDFA(w io.Writer, d *powerset.DFA, opts ...Option) error {
	o := newOptions(opts...)
	keys := d.Keys()
	if err := o.checkSymbols(keys); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	writeHeader(bw, d.GetNumStates(), d.AcceptStates())
	for _, k := range keys {
		fmt.Fprintf(bw, "%d %s %d\n", k.State, o.token(k.Symbol), d.Step(k.State, k.Symbol))
	}
	return bw.Flush()
}
