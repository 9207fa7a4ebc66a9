// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clocktest

import (
	"sort"
	"sync"
	"time"

	"github.com/xmidt-org/pacer/clock"
)

// Epoch is the default starting time for a Manual clock.
var Epoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Manual is a deterministic clock.Interface.  Time only moves when Advance, Set, or Sleep is called,
// and any timers, tickers, or AfterFunc callbacks that come due are fired synchronously on the
// goroutine that moved time, in order of their deadlines.  Waiters with equal deadlines fire in
// the order they were scheduled.
//
// Callbacks are invoked without any internal lock held, so they may freely schedule or stop
// other waiters, including scheduling new work that comes due within the same Advance.
type Manual struct {
	lock    sync.Mutex
	now     time.Time
	waiters []*waiter
}

var _ clock.Interface = (*Manual)(nil)

// NewManual creates a Manual clock positioned at start.  A zero start uses Epoch.
func NewManual(start time.Time) *Manual {
	if start.IsZero() {
		start = Epoch
	}

	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.now
}

// Sleep advances this clock by d.  It never blocks.
func (m *Manual) Sleep(d time.Duration) {
	m.Advance(d)
}

func (m *Manual) NewTimer(d time.Duration) clock.Timer {
	w := &waiter{m: m, c: make(chan time.Time, 1)}
	m.schedule(w, d)
	return w
}

func (m *Manual) NewTicker(d time.Duration) clock.Ticker {
	if d <= 0 {
		panic("clocktest: non-positive interval for NewTicker")
	}

	w := &waiter{m: m, c: make(chan time.Time, 1), period: d}
	m.schedule(w, d)
	return manualTicker{w}
}

func (m *Manual) AfterFunc(d time.Duration, f func()) clock.Timer {
	w := &waiter{m: m, f: f}
	m.schedule(w, d)
	return w
}

// Pending returns the number of timers, tickers, and callbacks waiting to fire.
func (m *Manual) Pending() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.waiters)
}

// Next returns the deadline of the earliest pending waiter, or false if nothing is scheduled.
func (m *Manual) Next() (time.Time, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if len(m.waiters) == 0 {
		return time.Time{}, false
	}

	return m.waiters[0].when, true
}

// Advance moves this clock forward by d, firing everything that comes due.  Negative
// durations are ignored.
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}

	m.lock.Lock()
	target := m.now.Add(d)
	m.lock.Unlock()
	m.advanceTo(target)
}

// Set moves this clock to t, firing everything that comes due.  Setting a time earlier than
// the current time moves the clock backwards without firing anything.
func (m *Manual) Set(t time.Time) {
	m.lock.Lock()
	if t.Before(m.now) {
		m.now = t
		m.lock.Unlock()
		return
	}

	m.lock.Unlock()
	m.advanceTo(t)
}

// Run repeatedly advances to the next deadline until nothing remains scheduled or limit
// deadlines have been reached, returning the number of deadlines reached.  It drives
// self-rescheduling state machines to completion.
func (m *Manual) Run(limit int) int {
	steps := 0
	for steps < limit {
		next, ok := m.Next()
		if !ok {
			break
		}

		m.advanceTo(next)
		steps++
	}

	return steps
}

func (m *Manual) advanceTo(target time.Time) {
	for {
		m.lock.Lock()
		if len(m.waiters) == 0 || m.waiters[0].when.After(target) {
			if target.After(m.now) {
				m.now = target
			}

			m.lock.Unlock()
			return
		}

		w := m.waiters[0]
		m.waiters = m.waiters[1:]
		if w.when.After(m.now) {
			m.now = w.when
		}

		now := m.now
		if w.period > 0 {
			w.when = w.when.Add(w.period)
			m.insert(w)
		} else {
			w.active = false
		}

		m.lock.Unlock()
		w.fire(now)
	}
}

// schedule must be called without the lock held
func (m *Manual) schedule(w *waiter, d time.Duration) {
	m.lock.Lock()
	defer m.lock.Unlock()
	w.when = m.now.Add(d)
	m.insert(w)
}

// insert must be called with the lock held
func (m *Manual) insert(w *waiter) {
	w.active = true
	i := sort.Search(len(m.waiters), func(i int) bool {
		return m.waiters[i].when.After(w.when)
	})

	m.waiters = append(m.waiters, nil)
	copy(m.waiters[i+1:], m.waiters[i:])
	m.waiters[i] = w
}

// remove must be called with the lock held
func (m *Manual) remove(w *waiter) bool {
	if !w.active {
		return false
	}

	for i, candidate := range m.waiters {
		if candidate == w {
			m.waiters = append(m.waiters[:i], m.waiters[i+1:]...)
			break
		}
	}

	w.active = false
	return true
}

// waiter is the Manual implementation of clock.Timer.  manualTicker adapts it to clock.Ticker.
type waiter struct {
	m      *Manual
	when   time.Time
	period time.Duration
	active bool
	f      func()
	c      chan time.Time
}

func (w *waiter) fire(now time.Time) {
	if w.f != nil {
		w.f()
		return
	}

	select {
	case w.c <- now:
	default:
	}
}

func (w *waiter) C() <-chan time.Time {
	return w.c
}

func (w *waiter) Reset(d time.Duration) bool {
	w.m.lock.Lock()
	defer w.m.lock.Unlock()
	wasActive := w.m.remove(w)
	w.when = w.m.now.Add(d)
	w.m.insert(w)
	return wasActive
}

func (w *waiter) Stop() bool {
	w.m.lock.Lock()
	defer w.m.lock.Unlock()
	return w.m.remove(w)
}

type manualTicker struct {
	w *waiter
}

func (mt manualTicker) C() <-chan time.Time {
	return mt.w.c
}

func (mt manualTicker) Stop() {
	mt.w.Stop()
}
