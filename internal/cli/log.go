package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/geange/powerset"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Converted 3 NFA states into 4 DFA states (2ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

var _ powerset.Observer = (*logObserver)(nil)

// logObserver traces the subset construction at debug level.
type logObserver struct {
	logger *log.Logger
}

// observerFor returns a tracing observer when debug logging is enabled, nil otherwise.
func observerFor(l *log.Logger) powerset.Observer {
	if l.GetLevel() > log.DebugLevel {
		return nil
	}
	return &logObserver{logger: l}
}

func (o *logObserver) OnPrune(removed []int, numStates int) {
	o.logger.Debug("pruned dead states", "removed", removed, "states", numStates)
}

func (o *logObserver) OnClosures(closures []*powerset.StateSet) {
	for s, c := range closures {
		o.logger.Debug("closure", "state", s, "set", c.String())
	}
}

func (o *logObserver) OnDiscover(round int, subset *powerset.StateSet) {
	o.logger.Debug("discovered subset", "round", round, "subset", subset.String())
}

func (o *logObserver) OnEdge(from *powerset.StateSet, symbol powerset.Symbol, to *powerset.StateSet) {
	o.logger.Debug("edge", "from", from.String(), "symbol", symbol, "to", to.String())
}

func (o *logObserver) OnEncode(id int, subset *powerset.StateSet) {
	o.logger.Debug("encoded", "id", id, "subset", subset.String())
}

func (o *logObserver) OnSink(sink int) {
	o.logger.Debug("added sink state", "state", sink)
}
