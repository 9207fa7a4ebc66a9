// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package frame

import (
	"time"

	"github.com/xmidt-org/pacer/clock"
)

// DefaultInterval is the frame interval used when no frame scheduler is available,
// roughly one frame of a 60Hz display.
const DefaultInterval = 16 * time.Millisecond

// Callback is invoked once per requested frame with the frame's timestamp.
type Callback func(time.Time)

// Handle cancels a requested frame.
type Handle interface {
	// Cancel prevents the callback from running.  It returns false if the callback
	// already ran or was already canceled.
	Cancel() bool
}

// Scheduler invokes callbacks in step with a display's refresh.  Each RequestFrame
// call runs its callback at most once.
type Scheduler interface {
	RequestFrame(Callback) Handle
}

// SchedulerFunc is a function type that implements Scheduler
type SchedulerFunc func(Callback) Handle

func (sf SchedulerFunc) RequestFrame(cb Callback) Handle {
	return sf(cb)
}

// Resolve returns s if it is non-nil.  Otherwise, it returns a fallback scheduler that
// runs each callback after DefaultInterval on the given clock.
func Resolve(s Scheduler, c clock.Interface) Scheduler {
	if s != nil {
		return s
	}

	return NewFallback(c, DefaultInterval)
}

type timerHandle struct {
	t clock.Timer
}

func (th timerHandle) Cancel() bool {
	return th.t.Stop()
}

type fallback struct {
	c        clock.Interface
	interval time.Duration
}

func (f fallback) RequestFrame(cb Callback) Handle {
	return timerHandle{
		t: f.c.AfterFunc(f.interval, func() {
			cb(f.c.Now())
		}),
	}
}

// NewFallback returns a Scheduler that runs each callback on its own timer, interval after it was
// requested.  A nil clock uses clock.System(), and a nonpositive interval uses DefaultInterval.
func NewFallback(c clock.Interface, interval time.Duration) Scheduler {
	if c == nil {
		c = clock.System()
	}

	if interval <= 0 {
		interval = DefaultInterval
	}

	return fallback{c: c, interval: interval}
}
