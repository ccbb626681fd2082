package powerset

import (
	"github.com/bits-and-blooms/bitset"
)

// RemoveDeadStates Prunes structural dead ends from a in place and returns the removed state
// indices (as numbered before pruning).
//
// A state is useful if some transition leaving it, epsilon included, reaches a state other than
// itself. A state that is neither useful nor accepting is dead: it is removed from every target
// set and its own entries are dropped. This is a single local pass, not a reachability analysis.
//
// Surviving states are renumbered densely in ascending order, so GetNumStates matches the number
// of survivors afterwards. The initial state 0 is never removed.
func RemoveDeadStates(a *NFA) []int {
	numStates := a.GetNumStates()
	useful := bitset.New(uint(numStates))
	for k, dests := range a.transitions {
		n := dests.Count()
		if n > 1 || (n == 1 && !dests.Test(uint(k.State))) {
			useful.Set(uint(k.State))
		}
	}

	dead := make([]int, 0)
	mp := make([]int, numStates)
	upto := 0
	for s := 0; s < numStates; s++ {
		if s != 0 && !useful.Test(uint(s)) && !a.IsAccept(s) {
			dead = append(dead, s)
			mp[s] = -1
			continue
		}
		mp[s] = upto
		upto++
	}
	if len(dead) == 0 {
		return dead
	}

	transitions := make(map[Key]*bitset.BitSet, len(a.transitions))
	for k, dests := range a.transitions {
		if mp[k.State] == -1 {
			continue
		}
		remapped := bitset.New(uint(upto))
		for t, ok := dests.NextSet(0); ok; t, ok = dests.NextSet(t + 1) {
			if mp[t] != -1 {
				remapped.Set(uint(mp[t]))
			}
		}
		transitions[Key{State: mp[k.State], Symbol: k.Symbol}] = remapped
	}

	isAccept := bitset.New(uint(upto))
	for _, s := range a.AcceptStates() {
		isAccept.Set(uint(mp[s]))
	}

	a.numStates = upto
	a.isAccept = isAccept
	a.transitions = transitions
	return dead
}

// Complete Makes the transition relation of d total over alphabet. Every missing
// (state, symbol) pair is sent to a new non-accepting sink state that loops to itself on every
// symbol. No sink is added when nothing was missing. Returns the sink, or -1.
func Complete(d *DFA, alphabet []Symbol) int {
	numStates := d.GetNumStates()
	sink := numStates
	incomplete := false
	for s := 0; s < numStates; s++ {
		for _, ch := range alphabet {
			key := Key{State: s, Symbol: ch}
			if _, ok := d.transitions[key]; !ok {
				d.transitions[key] = sink
				incomplete = true
			}
		}
	}
	if !incomplete {
		return -1
	}

	d.CreateState()
	for _, ch := range alphabet {
		d.transitions[Key{State: sink, Symbol: ch}] = sink
	}
	return sink
}

// IsEmpty Returns true if d accepts no strings.
func IsEmpty(d *DFA) bool {
	if d.GetNumStates() == 0 {
		return true
	}
	if d.IsAccept(0) {
		return false
	}

	byState := make([][]int, d.GetNumStates())
	for k, dest := range d.transitions {
		byState[k.State] = append(byState[k.State], dest)
	}

	workList := []int{0}
	seen := bitset.New(uint(d.GetNumStates()))
	seen.Set(0)
	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]

		if d.IsAccept(state) {
			return false
		}
		for _, dest := range byState[state] {
			if !seen.Test(uint(dest)) {
				workList = append(workList, dest)
				seen.Set(uint(dest))
			}
		}
	}
	return true
}

// Copy Copies over all states/transitions from other. The state numbers are appended, so
// other's state s becomes the returned offset plus s.
func (a *NFA) Copy(other *NFA) int {
	offset := a.GetNumStates()
	a.numStates += other.GetNumStates()

	for _, s := range other.AcceptStates() {
		a.SetAccept(offset+s, true)
	}
	for k, dests := range other.transitions {
		shifted := bitset.New(uint(a.numStates))
		for t, ok := dests.NextSet(0); ok; t, ok = dests.NextSet(t + 1) {
			shifted.Set(uint(offset) + t)
		}
		a.transitions[Key{State: offset + k.State, Symbol: k.Symbol}] = shifted
	}
	return offset
}

// Union Returns an NFA accepting every string accepted by one of automatons.
func Union(automatons ...*NFA) *NFA {
	result := NewNFA(1)
	for _, a := range automatons {
		start := result.Copy(a)
		_ = result.AddEpsilon(0, start)
	}
	return result
}

// Concatenate Returns an NFA accepting the concatenation of the languages of automatons.
func Concatenate(automatons ...*NFA) *NFA {
	if len(automatons) == 0 {
		return MakeEmptyString()
	}

	result := NewNFA(0)
	prevAccept := []int(nil)
	for _, a := range automatons {
		start := result.Copy(a)
		for _, s := range prevAccept {
			result.SetAccept(s, false)
			_ = result.AddEpsilon(s, start)
		}
		prevAccept = prevAccept[:0]
		for _, s := range a.AcceptStates() {
			prevAccept = append(prevAccept, start+s)
		}
	}
	return result
}

// Repeat Returns an NFA accepting zero or more repetitions of the language of a.
func Repeat(a *NFA) *NFA {
	result := NewNFA(1)
	result.SetAccept(0, true)
	start := result.Copy(a)
	_ = result.AddEpsilon(0, start)
	for _, s := range a.AcceptStates() {
		_ = result.AddEpsilon(start+s, 0)
	}
	return result
}

// Optional Returns an NFA accepting the empty string or any string accepted by a.
func Optional(a *NFA) *NFA {
	return Union(a, MakeEmptyString())
}
