package powerset

// Observer receives progress events from Determinize. Events are delivered synchronously, in
// pipeline order, on the calling goroutine. Implementations must not modify the sets they are
// given.
type Observer interface {
	// OnPrune reports the states removed by RemoveDeadStates and the state count afterwards.
	OnPrune(removed []int, numStates int)

	// OnClosures reports the epsilon closure of every NFA state.
	OnClosures(closures []*StateSet)

	// OnDiscover reports a subset seen for the first time and the BFS round that found it.
	OnDiscover(round int, subset *StateSet)

	// OnEdge reports one subset-level transition.
	OnEdge(from *StateSet, symbol Symbol, to *StateSet)

	// OnEncode reports the DFA state id given to a subset.
	OnEncode(id int, subset *StateSet)

	// OnSink reports the sink state added by Complete.
	OnSink(sink int)
}

// NoopObserver is a no-op implementation of Observer.
type NoopObserver struct{}

func (NoopObserver) OnPrune([]int, int)                  {}
func (NoopObserver) OnClosures([]*StateSet)              {}
func (NoopObserver) OnDiscover(int, *StateSet)           {}
func (NoopObserver) OnEdge(*StateSet, Symbol, *StateSet) {}
func (NoopObserver) OnEncode(int, *StateSet)             {}
func (NoopObserver) OnSink(int)                          {}
