package powerset

// RunAutomaton Finite-state automaton with fast run operation. The transition table is a dense
// array indexed by state and symbol position, so every step is a constant-time lookup.
type RunAutomaton struct {
	numStates   int
	alphabet    []Symbol
	index       map[Symbol]int
	transitions []int
	accept      []bool
}

// NewRunAutomaton Compiles d over its own alphabet. Undefined transitions are stored as -1.
func NewRunAutomaton(d *DFA) *RunAutomaton {
	alphabet := d.Alphabet()
	r := &RunAutomaton{
		numStates:   d.GetNumStates(),
		alphabet:    alphabet,
		index:       make(map[Symbol]int, len(alphabet)),
		transitions: make([]int, d.GetNumStates()*len(alphabet)),
		accept:      make([]bool, d.GetNumStates()),
	}
	for i, ch := range alphabet {
		r.index[ch] = i
	}
	for i := range r.transitions {
		r.transitions[i] = -1
	}
	for k, dest := range d.transitions {
		r.transitions[k.State*len(alphabet)+r.index[k.Symbol]] = dest
	}
	for s := range r.accept {
		r.accept[s] = d.IsAccept(s)
	}
	return r
}

// GetSize Returns number of states in automaton.
func (r *RunAutomaton) GetSize() int {
	return r.numStates
}

// Alphabet Returns the symbols in table order.
func (r *RunAutomaton) Alphabet() []Symbol {
	return r.alphabet
}

// IsAccept Returns acceptance status for given state.
func (r *RunAutomaton) IsAccept(state int) bool {
	return r.accept[state]
}

// Step Returns the state obtained by reading the given symbol from the given state, or -1 if
// the symbol is outside the alphabet or the transition is undefined.
func (r *RunAutomaton) Step(state int, symbol Symbol) int {
	i, ok := r.index[symbol]
	if !ok {
		return -1
	}
	return r.StepIndex(state, i)
}

// StepIndex is Step with the symbol given by its position in Alphabet.
func (r *RunAutomaton) StepIndex(state, symbolIndex int) int {
	return r.transitions[state*len(r.alphabet)+symbolIndex]
}

// Run Returns true if the given sequence of symbols is accepted by this automaton.
func (r *RunAutomaton) Run(symbols []Symbol) bool {
	p := 0
	for _, ch := range symbols {
		p = r.Step(p, ch)
		if p == -1 {
			return false
		}
	}
	return r.accept[p]
}
