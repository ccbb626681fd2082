package powerset

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Determinize Converts a to an equivalent DFA by subset construction.
// Worst case complexity: exponential in number of states.
//
// The pipeline is: RemoveDeadStates (in place on a, unless WithoutPruning), epsilon closures,
// breadth-first subset discovery, encoding of subsets as dense ids with the closure of state 0
// as id 0, and Complete over the alphabet of a as it was before pruning.
//
// Returns ErrTooComplex if the construction discovers more states than WithWorkLimit allows.
func Determinize(a *NFA, options ...Option) (*DFA, error) {
	opts := newDeterminizeOptions(options...)
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("determinize: %w", err)
	}

	alphabet := a.Alphabet()
	if opts.prune {
		removed := RemoveDeadStates(a)
		opts.observer.OnPrune(removed, a.GetNumStates())
	}

	closures := Closures(a)
	opts.observer.OnClosures(closures)

	c, err := construct(a, closures, alphabet, opts)
	if err != nil {
		return nil, err
	}

	d := encode(c, a.isAccept, opts.observer)
	if sink := Complete(d, alphabet); sink != -1 {
		opts.observer.OnSink(sink)
	}
	return d, nil
}

// edge is a DFA transition expressed in subsets.
type edge struct {
	from   *StateSet
	symbol Symbol
	to     *StateSet
}

type construction struct {
	seed  *StateSet
	edges []edge
	size  int
}

// construct discovers every subset reachable from the closure of state 0, one BFS round at a
// time, and records the edges between them in discovery order. Subsets are deduplicated by set
// equality through a HashMap, so each one is expanded exactly once.
func construct(a *NFA, closures []*StateSet, alphabet []Symbol, opts *determinizeOptions) (*construction, error) {
	seed := closures[0]
	discovered := NewHashMap[*StateSet](WithCapacity(16))
	discovered.Set(seed, seed)
	opts.observer.OnDiscover(0, seed)

	c := &construction{seed: seed}
	frontier := []*StateSet{seed}
	for round := 1; len(frontier) > 0; round++ {
		next := make([]*StateSet, 0)
		for _, set := range frontier {
			for _, ch := range alphabet {
				target := move(a, closures, set, ch)
				if target.IsEmpty() {
					continue
				}
				if known, ok := discovered.Get(target); ok {
					target = known
				} else {
					if opts.workLimit > 0 && discovered.Size() >= opts.workLimit {
						return nil, fmt.Errorf("determinize: more than %d states: %w", opts.workLimit, ErrTooComplex)
					}
					discovered.Set(target, target)
					next = append(next, target)
					opts.observer.OnDiscover(round, target)
				}
				c.edges = append(c.edges, edge{from: set, symbol: ch, to: target})
				opts.observer.OnEdge(set, ch, target)
			}
		}
		frontier = next
	}
	c.size = discovered.Size()
	return c, nil
}

// move Returns the union of the closures of every state reachable from set on symbol.
func move(a *NFA, closures []*StateSet, set *StateSet, symbol Symbol) *StateSet {
	result := NewStateSet()
	for st, ok := set.bits.NextSet(0); ok; st, ok = set.bits.NextSet(st + 1) {
		dests := a.targets(int(st), symbol)
		if dests == nil {
			continue
		}
		for t, ok := dests.NextSet(0); ok; t, ok = dests.NextSet(t + 1) {
			result.AddAll(closures[t])
		}
	}
	return result
}

// encode numbers the subsets of c: the seed is 0, then the first time a subset shows up as the
// source or the target of an edge it gets the next unused id. A state accepts iff its subset
// meets isAccept.
func encode(c *construction, isAccept *bitset.BitSet, observer Observer) *DFA {
	ids := NewHashMap[int](WithCapacity(c.size))
	subsets := make([]*StateSet, 0, c.size)
	idOf := func(set *StateSet) int {
		if id, ok := ids.Get(set); ok {
			return id
		}
		id := len(subsets)
		ids.Set(set, id)
		subsets = append(subsets, set)
		observer.OnEncode(id, set)
		return id
	}

	idOf(c.seed)
	for _, e := range c.edges {
		idOf(e.from)
		idOf(e.to)
	}

	d := NewDFA(len(subsets))
	for _, e := range c.edges {
		d.transitions[Key{State: idOf(e.from), Symbol: e.symbol}] = idOf(e.to)
	}
	for id, set := range subsets {
		if set.Intersects(isAccept) {
			d.SetAccept(id, true)
		}
	}
	return d
}
