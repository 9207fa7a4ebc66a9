// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package chain

import (
	"context"
	"sync"

	"github.com/xmidt-org/pacer/latch"
)

// Signal represents the eventual completion of asynchronous work.  OnComplete registers a
// continuation that receives the work's result, nil for success.  A Signal may invoke the
// continuation synchronously if the work is already complete.
type Signal interface {
	OnComplete(func(error))
}

// SignalFunc is a function type that implements Signal
type SignalFunc func(func(error))

func (sf SignalFunc) OnComplete(fn func(error)) {
	sf(fn)
}

// Future is a Signal completed explicitly through Complete.  Continuations run exactly once,
// in registration order, on the goroutine that completes the Future.  Continuations registered
// after completion run immediately on the registering goroutine.
type Future struct {
	done *latch.Latch

	lock          sync.Mutex
	continuations []func(error)
}

var _ Signal = (*Future)(nil)

// NewFuture creates an incomplete Future.
func NewFuture() *Future {
	return &Future{
		done: latch.New(),
	}
}

// Completed returns a Future that has already completed with err.
func Completed(err error) *Future {
	f := NewFuture()
	f.Complete(err)
	return f
}

// Go runs fn on its own goroutine and returns a Future that completes with fn's result.
func Go(fn func() error) *Future {
	f := NewFuture()
	go func() {
		f.Complete(fn())
	}()

	return f
}

// Complete transitions this Future with the given result and runs any registered continuations.
// Only the first call has any effect.  This method returns true if this call completed the Future.
func (f *Future) Complete(err error) bool {
	f.lock.Lock()
	if !f.done.Release(err) {
		f.lock.Unlock()
		return false
	}

	continuations := f.continuations
	f.continuations = nil
	f.lock.Unlock()

	for _, fn := range continuations {
		fn(err)
	}

	return true
}

// OnComplete registers a continuation.  A nil fn is ignored.
func (f *Future) OnComplete(fn func(error)) {
	if fn == nil {
		return
	}

	f.lock.Lock()
	if !f.done.Released() {
		f.continuations = append(f.continuations, fn)
		f.lock.Unlock()
		return
	}

	f.lock.Unlock()
	fn(f.done.Err())
}

// Done returns a channel that is closed when this Future completes.
func (f *Future) Done() <-chan struct{} {
	return f.done.Done()
}

// Err returns this Future's result.  It is nil before completion and after a successful completion.
func (f *Future) Err() error {
	return f.done.Err()
}

// Wait blocks until this Future completes or ctx is done, returning the Future's result or
// the context's error, respectively.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done.Done():
		return f.done.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
