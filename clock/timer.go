// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Timer represents an event source triggered at a particular time.  It is the analog of time.Timer,
// and it is also the cancellation handle for callbacks scheduled with Interface.AfterFunc.
type Timer interface {
	// C is the channel on which the firing time is delivered.  Timers created by AfterFunc
	// return a nil channel.
	C() <-chan time.Time

	// Reset reschedules this timer to fire after the given duration, returning true if
	// the timer was active.
	Reset(time.Duration) bool

	// Stop prevents this timer from firing.  It returns false if the timer had already
	// fired or been stopped.
	Stop() bool
}

type systemTimer struct {
	*time.Timer
}

func (st systemTimer) C() <-chan time.Time {
	return st.Timer.C
}

// Ticker delivers the current time on C at a fixed period.  It is the analog of time.Ticker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type systemTicker struct {
	*time.Ticker
}

func (st systemTicker) C() <-chan time.Time {
	return st.Ticker.C
}
