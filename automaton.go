package powerset

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Symbol labels a transition. Symbols are opaque tokens taken verbatim from the input.
type Symbol = string

// Epsilon is the pseudo-symbol of an empty-string transition. It never belongs to an alphabet.
const Epsilon Symbol = "eps"

// Key addresses one entry of a transition relation.
type Key struct {
	State  int
	Symbol Symbol
}

func (k Key) String() string {
	return fmt.Sprintf("(%d, %s)", k.State, k.Symbol)
}

func compareKeys(a, b Key) int {
	if c := cmp.Compare(a.State, b.State); c != 0 {
		return c
	}
	return strings.Compare(a.Symbol, b.Symbol)
}

func sortedKeys[V any](m map[Key]V) []Key {
	return slices.SortedFunc(maps.Keys(m), compareKeys)
}

func alphabetOf[V any](m map[Key]V) []Symbol {
	seen := make(map[Symbol]struct{})
	for k := range m {
		if k.Symbol != Epsilon {
			seen[k.Symbol] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

func acceptStates(isAccept *bitset.BitSet, numStates int) []int {
	states := make([]int, 0, isAccept.Count())
	for s, ok := isAccept.NextSet(0); ok && s < uint(numStates); s, ok = isAccept.NextSet(s + 1) {
		states = append(states, int(s))
	}
	return states
}

// NFA Represents a nondeterministic automaton. States are the integers 0..GetNumStates()-1 and
// state 0 is always the initial state. A transition maps (state, symbol) to a set of states,
// and the symbol may be Epsilon.
//
// The model performs structural access only; indices handed to SetAccept are not checked until
// Validate is called.
type NFA struct {
	numStates   int
	isAccept    *bitset.BitSet
	transitions map[Key]*bitset.BitSet
}

func NewNFA(numStates int) *NFA {
	return &NFA{
		numStates:   numStates,
		isAccept:    bitset.New(uint(numStates)),
		transitions: make(map[Key]*bitset.BitSet),
	}
}

// CreateState Create a new state and return its index.
func (a *NFA) CreateState() int {
	state := a.numStates
	a.numStates++
	return state
}

// SetAccept Set or clear this state as an accept state.
func (a *NFA) SetAccept(state int, accept bool) {
	a.isAccept.SetTo(uint(state), accept)
}

// IsAccept Returns true if this state is an accept state.
func (a *NFA) IsAccept(state int) bool {
	return a.isAccept.Test(uint(state))
}

// AcceptStates Returns the accept states in ascending order.
func (a *NFA) AcceptStates() []int {
	return acceptStates(a.isAccept, a.numStates)
}

// AddTransition Add the dests to the target set of (source, symbol). Calling it with no dests
// records an empty target set.
func (a *NFA) AddTransition(source int, symbol Symbol, dests ...int) error {
	if source < 0 || source >= a.numStates {
		return fmt.Errorf("source %d: %w", source, ErrStateOutOfRange)
	}
	key := Key{State: source, Symbol: symbol}
	set, ok := a.transitions[key]
	if !ok {
		set = bitset.New(uint(a.numStates))
		a.transitions[key] = set
	}
	for _, dest := range dests {
		if dest < 0 || dest >= a.numStates {
			return fmt.Errorf("transition %v -> %d: %w", key, dest, ErrStateOutOfRange)
		}
		set.Set(uint(dest))
	}
	return nil
}

// AddEpsilon Add an epsilon transition between source and dest.
func (a *NFA) AddEpsilon(source, dest int) error {
	return a.AddTransition(source, Epsilon, dest)
}

// Targets Returns the targets of (state, symbol) in ascending order, or nil if the pair has no
// entry.
func (a *NFA) Targets(state int, symbol Symbol) []int {
	set, ok := a.transitions[Key{State: state, Symbol: symbol}]
	if !ok {
		return nil
	}
	return newStateSetFrom(set).GetArray()
}

func (a *NFA) targets(state int, symbol Symbol) *bitset.BitSet {
	return a.transitions[Key{State: state, Symbol: symbol}]
}

// Keys Returns every (state, symbol) pair that has an entry, ordered by state then symbol.
func (a *NFA) Keys() []Key {
	return sortedKeys(a.transitions)
}

// Alphabet Returns the sorted non-epsilon symbols used by the transitions.
func (a *NFA) Alphabet() []Symbol {
	return alphabetOf(a.transitions)
}

// GetNumStates How many states this automaton has.
func (a *NFA) GetNumStates() int {
	return a.numStates
}

// GetNumTransitions How many (state, symbol) entries this automaton has.
func (a *NFA) GetNumTransitions() int {
	return len(a.transitions)
}

// Clone Returns a deep copy.
func (a *NFA) Clone() *NFA {
	c := &NFA{
		numStates:   a.numStates,
		isAccept:    a.isAccept.Clone(),
		transitions: make(map[Key]*bitset.BitSet, len(a.transitions)),
	}
	for k, v := range a.transitions {
		c.transitions[k] = v.Clone()
	}
	return c
}

// Validate Checks that every index in the transitions and the accept set is below GetNumStates.
func (a *NFA) Validate() error {
	if a.numStates <= 0 {
		return ErrNoStates
	}
	if last, ok := lastSet(a.isAccept); ok && last >= a.numStates {
		return fmt.Errorf("accept state %d: %w", last, ErrStateOutOfRange)
	}
	for _, k := range a.Keys() {
		if k.State < 0 || k.State >= a.numStates {
			return fmt.Errorf("source of %v: %w", k, ErrStateOutOfRange)
		}
		if last, ok := lastSet(a.transitions[k]); ok && last >= a.numStates {
			return fmt.Errorf("transition %v -> %d: %w", k, last, ErrStateOutOfRange)
		}
	}
	return nil
}

func lastSet(b *bitset.BitSet) (int, bool) {
	last, found := -1, false
	for s, ok := b.NextSet(0); ok; s, ok = b.NextSet(s + 1) {
		last, found = int(s), true
	}
	return last, found
}

// DFA Represents a deterministic automaton: each (state, symbol) pair has at most one target.
// State 0 is always the initial state.
type DFA struct {
	numStates   int
	isAccept    *bitset.BitSet
	transitions map[Key]int
}

func NewDFA(numStates int) *DFA {
	return &DFA{
		numStates:   numStates,
		isAccept:    bitset.New(uint(numStates)),
		transitions: make(map[Key]int),
	}
}

// CreateState Create a new state and return its index.
func (d *DFA) CreateState() int {
	state := d.numStates
	d.numStates++
	return state
}

// SetAccept Set or clear this state as an accept state.
func (d *DFA) SetAccept(state int, accept bool) {
	d.isAccept.SetTo(uint(state), accept)
}

// IsAccept Returns true if this state is an accept state.
func (d *DFA) IsAccept(state int) bool {
	return d.isAccept.Test(uint(state))
}

// AcceptStates Returns the accept states in ascending order.
func (d *DFA) AcceptStates() []int {
	return acceptStates(d.isAccept, d.numStates)
}

// SetTransition Define (source, symbol) -> dest, replacing any previous target.
func (d *DFA) SetTransition(source int, symbol Symbol, dest int) error {
	if symbol == Epsilon {
		return fmt.Errorf("state %d: %w", source, ErrEpsilonInDFA)
	}
	if source < 0 || source >= d.numStates {
		return fmt.Errorf("source %d: %w", source, ErrStateOutOfRange)
	}
	if dest < 0 || dest >= d.numStates {
		return fmt.Errorf("transition (%d, %s) -> %d: %w", source, symbol, dest, ErrStateOutOfRange)
	}
	d.transitions[Key{State: source, Symbol: symbol}] = dest
	return nil
}

// Step Performs lookup in transitions.
// Returns: destination state, -1 if no matching outgoing transition
func (d *DFA) Step(state int, symbol Symbol) int {
	dest, ok := d.transitions[Key{State: state, Symbol: symbol}]
	if !ok {
		return -1
	}
	return dest
}

// Keys Returns every defined (state, symbol) pair, ordered by state then symbol.
func (d *DFA) Keys() []Key {
	return sortedKeys(d.transitions)
}

// Alphabet Returns the sorted symbols used by the transitions.
func (d *DFA) Alphabet() []Symbol {
	return alphabetOf(d.transitions)
}

// GetNumStates How many states this automaton has.
func (d *DFA) GetNumStates() int {
	return d.numStates
}

// GetNumTransitions How many transitions this automaton has.
func (d *DFA) GetNumTransitions() int {
	return len(d.transitions)
}

// IsTotal Returns true if every state has a transition on every symbol of alphabet.
func (d *DFA) IsTotal(alphabet []Symbol) bool {
	for s := 0; s < d.numStates; s++ {
		for _, ch := range alphabet {
			if _, ok := d.transitions[Key{State: s, Symbol: ch}]; !ok {
				return false
			}
		}
	}
	return true
}

// Sink Returns a non-accepting state whose every transition loops back to itself, or -1.
// States without any outgoing transition are not reported.
func (d *DFA) Sink() int {
	out := make([]int, d.numStates)
	loops := make([]int, d.numStates)
	for k, dest := range d.transitions {
		out[k.State]++
		if dest == k.State {
			loops[k.State]++
		}
	}
	for s := d.numStates - 1; s >= 0; s-- {
		if !d.IsAccept(s) && out[s] > 0 && out[s] == loops[s] {
			return s
		}
	}
	return -1
}

// Clone Returns a deep copy.
func (d *DFA) Clone() *DFA {
	return &DFA{
		numStates:   d.numStates,
		isAccept:    d.isAccept.Clone(),
		transitions: maps.Clone(d.transitions),
	}
}

// Validate Checks that every index in the transitions and the accept set is below GetNumStates.
func (d *DFA) Validate() error {
	if d.numStates <= 0 {
		return ErrNoStates
	}
	if last, ok := lastSet(d.isAccept); ok && last >= d.numStates {
		return fmt.Errorf("accept state %d: %w", last, ErrStateOutOfRange)
	}
	for _, k := range d.Keys() {
		if k.Symbol == Epsilon {
			return fmt.Errorf("state %d: %w", k.State, ErrEpsilonInDFA)
		}
		dest := d.transitions[k]
		if k.State < 0 || k.State >= d.numStates || dest < 0 || dest >= d.numStates {
			return fmt.Errorf("transition %v -> %d: %w", k, dest, ErrStateOutOfRange)
		}
	}
	return nil
}
