package powerset

// MakeEmpty
// Returns a new automaton with the empty language.
func MakeEmpty() *NFA {
	return NewNFA(1)
}

// MakeEmptyString
// Returns a new automaton that accepts only the empty string.
func MakeEmptyString() *NFA {
	a := NewNFA(1)
	a.SetAccept(0, true)
	return a
}

// MakeString
// Returns a new automaton that accepts exactly the given sequence of symbols.
func MakeString(symbols ...Symbol) *NFA {
	a := NewNFA(len(symbols) + 1)
	for i, ch := range symbols {
		_ = a.AddTransition(i, ch, i+1)
	}
	a.SetAccept(len(symbols), true)
	return a
}

// MakeAnyOf
// Returns a new automaton that accepts any one of the given symbols.
func MakeAnyOf(symbols ...Symbol) *NFA {
	a := NewNFA(2)
	for _, ch := range symbols {
		_ = a.AddTransition(0, ch, 1)
	}
	a.SetAccept(1, true)
	return a
}
