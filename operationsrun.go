package powerset

import (
	"maps"
	"slices"
)

// Run Returns true if d accepts the given sequence of symbols.
func Run(d *DFA, symbols []Symbol) bool {
	state := 0
	for _, ch := range symbols {
		state = d.Step(state, ch)
		if state == -1 {
			return false
		}
	}
	return d.IsAccept(state)
}

// Accepts Returns true if a accepts the given sequence of symbols, simulating every path at
// once.
func (a *NFA) Accepts(symbols []Symbol) bool {
	closures := Closures(a)
	current := closures[0]
	for _, ch := range symbols {
		current = move(a, closures, current, ch)
		if current.IsEmpty() {
			return false
		}
	}
	return current.Intersects(a.isAccept)
}

// pairKey is a joint state of the NFA simulation and the DFA. A state of -1 means the DFA has
// no transition left to take.
type pairKey struct {
	set   *StateSet
	state int
}

func (k pairKey) Hash() uint64 {
	return k.set.Hash()*31 + mix(k.state+1)
}

func (k pairKey) Equals(other Hashable) bool {
	o, ok := other.(pairKey)
	return ok && k.state == o.state && k.set.Equals(o.set)
}

// Equivalent Compares the languages of a and d on every string of at most maxLen symbols over
// the union of both alphabets. It returns the first string (in length-then-lexicographic order)
// accepted by exactly one of them, and false; or nil and true.
//
// The search is breadth-first over (NFA subset, DFA state) pairs. Each pair is expanded once,
// from the smallest string that reaches it.
func Equivalent(a *NFA, d *DFA, maxLen int) ([]Symbol, bool) {
	seen := make(map[Symbol]struct{})
	for _, ch := range a.Alphabet() {
		seen[ch] = struct{}{}
	}
	for _, ch := range d.Alphabet() {
		seen[ch] = struct{}{}
	}
	alphabet := slices.Sorted(maps.Keys(seen))

	type node struct {
		key    pairKey
		parent int
		symbol Symbol
	}
	closures := Closures(a)
	nodes := []node{{key: pairKey{set: closures[0], state: 0}, parent: -1}}
	visited := NewHashMap[int](WithCapacity(16))
	visited.Set(nodes[0].key, 0)

	inputOf := func(i, length int) []Symbol {
		input := make([]Symbol, length)
		for ; nodes[i].parent != -1; i = nodes[i].parent {
			length--
			input[length] = nodes[i].symbol
		}
		return input
	}

	start := 0
	for length := 0; length <= maxLen && start < len(nodes); length++ {
		end := len(nodes)
		for i := start; i < end; i++ {
			k := nodes[i].key
			dfaAccepts := k.state != -1 && d.IsAccept(k.state)
			if k.set.Intersects(a.isAccept) != dfaAccepts {
				return inputOf(i, length), false
			}
		}
		if length == maxLen {
			break
		}

		for i := start; i < end; i++ {
			k := nodes[i].key
			for _, ch := range alphabet {
				state := -1
				if k.state != -1 {
					state = d.Step(k.state, ch)
				}
				next := pairKey{set: move(a, closures, k.set, ch), state: state}
				if _, ok := visited.Get(next); ok {
					continue
				}
				visited.Set(next, len(nodes))
				nodes = append(nodes, node{key: next, parent: i, symbol: ch})
			}
		}
		start = end
	}
	return nil, true
}
