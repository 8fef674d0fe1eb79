package metrics

import (
	"sync/atomic"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Sink receives per-operation timing observations from the data access
// layer. Implementations must be safe for concurrent use.
type Sink interface {
	ObserveDBTime(store, action string, elapsed time.Duration)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(store, action string, elapsed time.Duration)

func (f SinkFunc) ObserveDBTime(store, action string, elapsed time.Duration) {
	f(store, action, elapsed)
}

// sinkHolder keeps atomic.Value happy: stored values must share one
// concrete type even when the wrapped Sink implementations differ.
type sinkHolder struct{ s Sink }

var sink atomic.Value

func init() {
	SetSink(SinkFunc(logObservation))
}

// SetSink replaces the process-wide timing sink. Passing nil restores the
// default hlog sink.
func SetSink(s Sink) {
	if s == nil {
		s = SinkFunc(logObservation)
	}
	sink.Store(sinkHolder{s: s})
}

// Time records the duration of a store action from the call until the
// returned function runs:
//
//	defer metrics.Time("environment", "create")()
func Time(store, action string) func() {
	start := time.Now()
	return func() {
		sink.Load().(sinkHolder).s.ObserveDBTime(store, action, time.Since(start))
	}
}

func logObservation(store, action string, elapsed time.Duration) {
	hlog.Debugf("db-time store=%s action=%s elapsed=%v", store, action, elapsed)
}
