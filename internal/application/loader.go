package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// LoadFunc produces one catalog acquisition
type LoadFunc func(ctx context.Context) (*Acquisition, error)

// LoadResult is the single value a load run hands back
type LoadResult struct {
	Acquisition *Acquisition
	Err         error
}

// Loader runs LoadFunc off the interactive goroutine. Each Start gets its
// own one-slot channel; starting again abandons the previous channel so a
// stale run can finish without ever being observed.
type Loader struct {
	load    LoadFunc
	pending chan LoadResult
	log     *logrus.Entry
}

// NewLoader creates an idle loader
func NewLoader(load LoadFunc, log *logrus.Entry) *Loader {
	return &Loader{load: load, log: orDiscard(log)}
}

// Start launches a run, replacing any run still in flight
func (l *Loader) Start(ctx context.Context) {
	if l.pending != nil {
		l.log.Debug("abandoning in-flight load")
	}
	ch := make(chan LoadResult, 1)
	l.pending = ch
	go l.run(ctx, ch)
}

func (l *Loader) run(ctx context.Context, ch chan<- LoadResult) {
	var res LoadResult
	defer func() {
		if r := recover(); r != nil {
			l.log.WithField("panic", r).Error("load panicked")
			res = LoadResult{Err: fmt.Errorf("loader panic: %v", r)}
		}
		ch <- res
	}()
	acq, err := l.load(ctx)
	res = LoadResult{Acquisition: acq, Err: err}
}

// Loading reports whether a started run has not been consumed yet
func (l *Loader) Loading() bool {
	return l.pending != nil
}

// Poll returns the current run's result if it is ready. It never blocks.
func (l *Loader) Poll() (LoadResult, bool) {
	if l.pending == nil {
		return LoadResult{}, false
	}
	select {
	case res := <-l.pending:
		l.pending = nil
		return res, true
	default:
		return LoadResult{}, false
	}
}
