package reportlist

import (
	"context"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// DefaultRefreshInterval is the reports polling period.
const DefaultRefreshInterval = 30 * time.Second

// Refresher calls a refresh function once on Start and then on every interval
// until Stop. At most one loop runs at a time.
type Refresher struct {
	interval time.Duration
	refresh  func()
	clock    clock.WithTicker

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// RefresherOption configures a Refresher.
type RefresherOption func(*Refresher)

// WithClock replaces the wall clock, for tests.
func WithClock(c clock.WithTicker) RefresherOption {
	return func(r *Refresher) { r.clock = c }
}

// NewRefresher creates a stopped refresher. A non-positive interval selects
// DefaultRefreshInterval.
func NewRefresher(interval time.Duration, refresh func(), opts ...RefresherOption) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	r := &Refresher{interval: interval, refresh: refresh, clock: clock.RealClock{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches the loop. It returns false, and does nothing, if the loop is
// already running. The loop also ends when ctx is cancelled, after which Start
// may launch a new one.
func (r *Refresher) Start(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return false
	}
	ctx, cancel := context.WithCancel(ctx)
	ticker := r.clock.NewTicker(r.interval)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	go func() {
		defer close(done)
		defer r.release(done)
		defer ticker.Stop()
		r.refresh()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				r.refresh()
			}
		}
	}()
	return true
}

// release forgets the loop that owns done, so a loop ended by its parent
// context no longer counts as running.
func (r *Refresher) release(done chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done == done {
		r.cancel()
		r.cancel, r.done = nil, nil
	}
}

// Stop ends the loop and waits for it to exit. Stopping a stopped refresher is a no-op.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the loop is active.
func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}
