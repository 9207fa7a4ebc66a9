// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Interface represents a clock with the same core functionality available as in the stdlib time package.
// Every timing primitive in this module schedules its work through an Interface, so that tests can
// substitute a deterministic clock.
type Interface interface {
	Now() time.Time
	Sleep(time.Duration)
	NewTicker(time.Duration) Ticker
	NewTimer(time.Duration) Timer

	// AfterFunc schedules f to run on its own goroutine once d has elapsed.  The returned Timer's
	// Stop method cancels the call.  Its C channel is nil.
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (sc systemClock) Now() time.Time {
	return time.Now()
}

func (sc systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (sc systemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

func (sc systemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{time.NewTimer(d)}
}

func (sc systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return systemTimer{time.AfterFunc(d, f)}
}

// System returns a clock backed by the time package
func System() Interface {
	return systemClock{}
}

// Since returns the time elapsed since t according to the given clock.
func Since(c Interface, t time.Time) time.Duration {
	return c.Now().Sub(t)
}
