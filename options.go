package powerset

// DefaultDeterminizeWorkLimit is a decent default for WithWorkLimit if you don't otherwise know
// what to specify.
const DefaultDeterminizeWorkLimit = 10000

type determinizeOptions struct {
	workLimit int
	observer  Observer
	prune     bool
}

type Option func(*determinizeOptions)

// WithWorkLimit caps the number of DFA states the subset construction may discover before it
// gives up with ErrTooComplex. Zero or a negative limit means no cap, which is the default.
func WithWorkLimit(limit int) Option {
	return func(o *determinizeOptions) {
		o.workLimit = limit
	}
}

// WithObserver installs an Observer that is told about every stage of the conversion.
func WithObserver(observer Observer) Option {
	return func(o *determinizeOptions) {
		if observer != nil {
			o.observer = observer
		}
	}
}

// WithoutPruning skips RemoveDeadStates. The resulting DFA accepts the same language.
func WithoutPruning() Option {
	return func(o *determinizeOptions) {
		o.prune = false
	}
}

func newDeterminizeOptions(options ...Option) *determinizeOptions {
	opts := &determinizeOptions{
		observer: NoopObserver{},
		prune:    true,
	}
	for _, fn := range options {
		fn(opts)
	}
	return opts
}
