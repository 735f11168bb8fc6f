// Package mainloop provides the single-threaded event loop all theme logic runs on.
package mainloop

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/bnema/themesync/internal/application/port"
)

type deferredTask struct {
	fn       func()
	canceled atomic.Bool
}

// Loop is a cooperative task queue. Work is posted from any goroutine and
// executed one tick at a time by whoever drives the loop.
type Loop struct {
	mu       sync.Mutex
	tasks    []func()
	deferred []*deferredTask
	wake     chan struct{}
	ticks    uint64
}

// New creates an idle loop.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post implements port.Scheduler.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	l.signal()
}

// Defer implements port.Scheduler. fn runs on the tick after the current one.
func (l *Loop) Defer(fn func()) port.Cancel {
	if fn == nil {
		return func() {}
	}
	task := &deferredTask{fn: fn}
	l.mu.Lock()
	l.deferred = append(l.deferred, task)
	l.mu.Unlock()
	l.signal()

	return func() { task.canceled.Store(true) }
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// RunPending executes one tick: the deferred callbacks and tasks queued
// before the tick began. Work queued while the tick runs waits for the next
// one. Returns the number of callbacks executed.
func (l *Loop) RunPending() int {
	l.mu.Lock()
	deferred := l.deferred
	tasks := l.tasks
	l.deferred = nil
	l.tasks = nil
	l.ticks++
	l.mu.Unlock()

	ran := 0
	for _, fn := range tasks {
		fn()
		ran++
	}
	for _, task := range deferred {
		if task.canceled.Swap(true) {
			continue
		}
		task.fn()
		ran++
	}
	return ran
}

// Drain runs ticks until nothing is pending or max ticks have run.
func (l *Loop) Drain(maxTicks int) {
	for i := 0; i < maxTicks && l.Pending() > 0; i++ {
		l.RunPending()
	}
}

// Pending returns the number of queued callbacks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks) + len(l.deferred)
}

// Ticks returns how many ticks have run.
func (l *Loop) Ticks() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ticks
}

// Run drives the loop until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if l.Pending() > 0 {
			l.RunPending()
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

var _ port.Scheduler = (*Loop)(nil)
