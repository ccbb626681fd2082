package powerset

// Closure Returns the set of states reachable from state using only epsilon transitions,
// including state itself.
func Closure(a *NFA, state int) *StateSet {
	closure := NewStateSet(state)
	expandClosure(a, state, closure)
	return closure
}

// Closures Returns the epsilon closure of every state, indexed by state.
func Closures(a *NFA) []*StateSet {
	closures := make([]*StateSet, a.GetNumStates())
	for s := range closures {
		closures[s] = Closure(a, s)
	}
	return closures
}

// expandClosure adds to closure every state epsilon-reachable from start. A state already in
// closure is never pushed again, which bounds the work on cyclic epsilon graphs.
func expandClosure(a *NFA, start int, closure *StateSet) {
	workList := []int{start}
	for len(workList) > 0 {
		state := workList[len(workList)-1]
		workList = workList[:len(workList)-1]

		next := a.targets(state, Epsilon)
		if next == nil {
			continue
		}
		for t, ok := next.NextSet(0); ok; t, ok = next.NextSet(t + 1) {
			if closure.Add(int(t)) {
				workList = append(workList, int(t))
			}
		}
	}
}

// closureOf Returns the union of the closures of every member of set.
func closureOf(closures []*StateSet, set *StateSet) *StateSet {
	result := NewStateSet()
	for _, s := range set.GetArray() {
		result.AddAll(closures[s])
	}
	return result
}
