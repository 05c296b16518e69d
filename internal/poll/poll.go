// Package poll runs a function on a fixed interval until cancelled.
package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Func is invoked once per tick. Its context is detached from the poller's
// cancellation so a call that is already running is never aborted by Stop.
type Func func(ctx context.Context)

// DefaultInterval replaces a non-positive interval passed to Start.
const DefaultInterval = 10 * time.Second

// TickSource produces ticks for an interval and a function that releases it.
type TickSource func(interval time.Duration) (<-chan time.Time, func())

func tickerSource(interval time.Duration) (<-chan time.Time, func()) {
	ticker := time.NewTicker(interval)
	return ticker.C, ticker.Stop
}

type Option func(*options)

type options struct {
	ticks     TickSource
	immediate bool
}

// WithTickSource replaces the wall-clock ticker.
func WithTickSource(source TickSource) Option {
	return func(o *options) {
		if source != nil {
			o.ticks = source
		}
	}
}

// WithoutImmediate delays the first call until the first tick.
func WithoutImmediate() Option {
	return func(o *options) {
		o.immediate = false
	}
}

// Handle controls a running poller.
type Handle struct {
	cancel   context.CancelFunc
	loopDone chan struct{}
	calls    sync.WaitGroup
	inFlight atomic.Bool
	runs     atomic.Int64
	skipped  atomic.Int64
}

// Start calls fn immediately and then on every tick. A tick that arrives while
// the previous call is still running is skipped, never queued.
func Start(ctx context.Context, interval time.Duration, fn Func, opts ...Option) *Handle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	cfg := options{ticks: tickerSource, immediate: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	loopCtx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, loopDone: make(chan struct{})}
	callCtx := context.WithoutCancel(ctx)

	ticks, release := cfg.ticks(interval)
	go func() {
		defer close(h.loopDone)
		defer release()
		if cfg.immediate {
			h.trigger(callCtx, fn)
		}
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticks:
				if loopCtx.Err() != nil {
					return
				}
				h.trigger(callCtx, fn)
			}
		}
	}()
	return h
}

func (h *Handle) trigger(ctx context.Context, fn Func) {
	if !h.inFlight.CompareAndSwap(false, true) {
		h.skipped.Add(1)
		return
	}
	h.runs.Add(1)
	h.calls.Add(1)
	go func() {
		defer h.calls.Done()
		defer h.inFlight.Store(false)
		fn(ctx)
	}()
}

// Stop cancels future ticks. It does not wait for a running call.
func (h *Handle) Stop() {
	if h == nil {
		return
	}
	h.cancel()
}

// Wait blocks until the loop has exited and any running call has returned.
func (h *Handle) Wait() {
	if h == nil {
		return
	}
	<-h.loopDone
	h.calls.Wait()
}

// Done is closed once the loop has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.loopDone
}

// Runs reports how many calls were started.
func (h *Handle) Runs() int64 {
	return h.runs.Load()
}

// Skipped reports how many ticks were dropped because a call was in flight.
func (h *Handle) Skipped() int64 {
	return h.skipped.Load()
}
