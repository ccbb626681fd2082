package powerset

import "errors"

var (
	// ErrStateOutOfRange is returned when a transition or accept state names an index outside
	// 0..GetNumStates()-1.
	ErrStateOutOfRange = errors.New("state index out of range")

	// ErrNoStates is returned for an automaton without any state; state 0 must exist.
	ErrNoStates = errors.New("automaton has no states")

	// ErrEpsilonInDFA is returned when an epsilon transition is added to a DFA.
	ErrEpsilonInDFA = errors.New("epsilon transition in deterministic automaton")

	// ErrTooComplex is returned when the subset construction discovers more DFA states than the
	// configured work limit allows.
	ErrTooComplex = errors.New("automaton too complex to determinize")
)
