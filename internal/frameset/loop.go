package frameset

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

var ErrLoopStopped = errors.New("frameset: loop stopped")

// Loop serializes every frameset, site and API call onto one goroutine. Transports and
// HTTP handlers Post callbacks instead of touching session state directly.
type Loop struct {
	tasks chan func()
	done  chan struct{}
}

func NewLoop(buffer int) *Loop {
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run executes tasks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Post queues fn. It returns false when the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	case l.tasks <- fn:
		return true
	}
}

const (
	callQueued int32 = iota
	callRunning
	callAbandoned
)

// Call runs fn on the loop and waits for it to finish. When ctx ends before fn starts,
// fn is abandoned and never runs; once fn has started, Call waits for it and returns nil.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	var state atomic.Int32
	finished := make(chan struct{})
	task := func() {
		if !state.CompareAndSwap(callQueued, callRunning) {
			return
		}
		defer close(finished)
		fn()
	}
	select {
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	case l.tasks <- task:
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		if state.CompareAndSwap(callQueued, callAbandoned) {
			return ErrLoopStopped
		}
		<-finished
		return nil
	case <-ctx.Done():
		if state.CompareAndSwap(callQueued, callAbandoned) {
			return ctx.Err()
		}
		<-finished
		return nil
	}
}

// AfterFunc posts fn to the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.Post(fn) })
}
