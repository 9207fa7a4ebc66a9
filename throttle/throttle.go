// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package throttle

import (
	"sync"
	"time"

	"github.com/xmidt-org/pacer/clock"
	"github.com/xmidt-org/pacer/xerrors"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// Func is the type of function that can be throttled.  Anything the function needs, including
// what would be its receiver, travels in the single argument.
type Func[A, R any] func(A) R

// Throttled wraps a Func so that it is invoked at most once per window, plus at most one
// trailing invocation carrying the arguments of the most recent call made during the window.
//
// A Throttled is safe for concurrent use.  Invocations of the wrapped function never overlap,
// so the wrapped function must not synchronously call Flush on its own Throttled.
type Throttled[A, R any] struct {
	fn       Func[A, R]
	wait     time.Duration
	clock    clock.Interface
	logger   *zap.Logger
	measures *Measures

	// invoke serializes calls to fn
	invoke sync.Mutex

	lock       sync.Mutex
	previous   time.Time
	pending    clock.Timer
	generation uint64
	args       A
	result     R
}

// New throttles fn with the given window.  A zero wait disables throttling entirely, since every
// window has already elapsed.  Negative waits and a nil fn are rejected with an error matching
// xerrors.ErrInvalidArgument.
func New[A, R any](fn Func[A, R], wait time.Duration, options ...Option) (*Throttled[A, R], error) {
	if err := xerrors.First(xerrors.NotNil("fn", fn), xerrors.NonNegative("wait", wait)); err != nil {
		return nil, err
	}

	cfg := config{
		clock:    clock.System(),
		logger:   sallust.Default(),
		measures: discardMeasures(),
	}

	for _, o := range options {
		o(&cfg)
	}

	return &Throttled[A, R]{
		fn:       fn,
		wait:     wait,
		clock:    cfg.clock,
		logger:   cfg.logger,
		measures: cfg.measures,
	}, nil
}

// Wait returns the window length of this throttled function.
func (t *Throttled[A, R]) Wait() time.Duration {
	return t.wait
}

// Call is the throttled version of the wrapped function.
//
// If no invocation has happened within the current window, the wrapped function runs immediately
// with a and its result is returned.  Otherwise a is stored, replacing any arguments stored by earlier
// calls in this window, a trailing invocation is scheduled for the end of the window if one is not
// already pending, and the result of the most recent actual invocation is returned.
func (t *Throttled[A, R]) Call(a A) R {
	t.lock.Lock()
	now := t.clock.Now()
	remaining := t.wait - now.Sub(t.previous)

	// a remaining time greater than the window means the clock went backwards
	if remaining <= 0 || remaining > t.wait {
		t.stopPending()
		t.previous = now
		t.lock.Unlock()

		t.measures.Leading.Add(1.0)
		return t.call(a)
	}

	t.args = a
	if t.pending == nil {
		t.generation++
		generation := t.generation
		t.pending = t.clock.AfterFunc(remaining, func() {
			t.trailing(generation)
		})

		t.logger.Debug("scheduled trailing call", zap.Duration("remaining", remaining))
	} else {
		t.measures.Coalesced.Add(1.0)
	}

	result := t.result
	t.lock.Unlock()
	return result
}

// Pending tests if a trailing invocation is scheduled.
func (t *Throttled[A, R]) Pending() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.pending != nil
}

// Cancel drops any pending trailing invocation, returning true if one was pending.  The window
// itself is not reset, so a call made right after Cancel is still throttled.
func (t *Throttled[A, R]) Cancel() bool {
	t.lock.Lock()
	canceled := t.stopPending()
	t.takeArgs()
	t.lock.Unlock()

	if canceled {
		t.measures.Canceled.Add(1.0)
		t.logger.Debug("canceled trailing call")
	}

	return canceled
}

// Flush runs any pending trailing invocation immediately, starting a new window.  It returns the
// invocation's result and true, or the most recent result and false if nothing was pending.
func (t *Throttled[A, R]) Flush() (R, bool) {
	t.lock.Lock()
	if !t.stopPending() {
		result := t.result
		t.lock.Unlock()
		return result, false
	}

	a := t.takeArgs()
	t.previous = t.clock.Now()
	t.lock.Unlock()

	t.measures.Trailing.Add(1.0)
	return t.call(a), true
}

func (t *Throttled[A, R]) trailing(generation uint64) {
	t.lock.Lock()
	if t.pending == nil || t.generation != generation {
		// superseded by a leading call, a flush, or a cancel
		t.lock.Unlock()
		return
	}

	t.pending = nil
	a := t.takeArgs()
	t.previous = t.clock.Now()
	t.lock.Unlock()

	t.measures.Trailing.Add(1.0)
	t.call(a)
}

func (t *Throttled[A, R]) call(a A) R {
	t.invoke.Lock()
	defer t.invoke.Unlock()

	result := t.fn(a)
	t.lock.Lock()
	t.result = result
	t.lock.Unlock()

	return result
}

// stopPending must be called with the lock held
func (t *Throttled[A, R]) stopPending() bool {
	if t.pending == nil {
		return false
	}

	t.pending.Stop()
	t.pending = nil
	return true
}

// takeArgs must be called with the lock held.  The stored arguments are cleared so that
// they are not retained past the invocation that consumes them.
func (t *Throttled[A, R]) takeArgs() A {
	var zero A
	a := t.args
	t.args = zero
	return a
}
