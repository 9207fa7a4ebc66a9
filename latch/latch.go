// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package latch

import (
	"sync"
)

// Latch is a one-shot terminal state.  The first call to Release wins: it records the
// terminal error (nil for success) and closes the Done channel.  Every later call is a no-op.
//
// The zero value is not usable.  Use New.
type Latch struct {
	once sync.Once
	done chan struct{}
	err  error
}

// New creates an unreleased Latch.
func New() *Latch {
	return &Latch{
		done: make(chan struct{}),
	}
}

// Release transitions this latch to its terminal state with the given error.  This method
// returns true if and only if this call performed the transition.
func (l *Latch) Release(err error) (released bool) {
	l.once.Do(func() {
		l.err = err
		close(l.done)
		released = true
	})

	return
}

// Done returns a channel that is closed once this latch is released.
// Semantics are equivalent to context.Context.Done().
func (l *Latch) Done() <-chan struct{} {
	return l.done
}

// Released tests if this latch has been released, without blocking.
func (l *Latch) Released() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Err returns the terminal error.  It returns nil both before release and after a successful release.
func (l *Latch) Err() error {
	select {
	case <-l.done:
		return l.err
	default:
		return nil
	}
}
