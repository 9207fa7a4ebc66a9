// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package frame

import (
	"sync"
	"time"

	"github.com/xmidt-org/pacer/clock"
)

// Paced is a Scheduler with a fixed frame cadence.  Frames begin at whole multiples of the
// interval measured from the time the Paced was created.  Every callback requested before a
// frame begins runs in that frame, in request order, and all of them observe the same timestamp.
// Callbacks requested while a frame is running are deferred to the next frame.
//
// A single clock timer is armed only while callbacks are waiting.
type Paced struct {
	c        clock.Interface
	interval time.Duration
	origin   time.Time

	lock  sync.Mutex
	queue []*pacedRequest
	timer clock.Timer
}

var _ Scheduler = (*Paced)(nil)

// NewPaced creates a Paced scheduler.  A nil clock uses clock.System().  This function panics
// if interval is not positive.
func NewPaced(c clock.Interface, interval time.Duration) *Paced {
	if interval <= 0 {
		panic("frame: the interval must be positive")
	}

	if c == nil {
		c = clock.System()
	}

	return &Paced{
		c:        c,
		interval: interval,
		origin:   c.Now(),
	}
}

type pacedRequest struct {
	p        *Paced
	cb       Callback
	canceled bool
}

func (pr *pacedRequest) Cancel() bool {
	pr.p.lock.Lock()
	defer pr.p.lock.Unlock()
	if pr.canceled || pr.cb == nil {
		return false
	}

	pr.canceled = true
	return true
}

func (p *Paced) RequestFrame(cb Callback) Handle {
	p.lock.Lock()
	defer p.lock.Unlock()

	r := &pacedRequest{p: p, cb: cb}
	p.queue = append(p.queue, r)
	if p.timer == nil {
		p.timer = p.c.AfterFunc(p.untilNextFrame(), p.frame)
	}

	return r
}

// Pending returns the number of callbacks waiting for the next frame, including canceled ones
// that have not yet been discarded.
func (p *Paced) Pending() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.queue)
}

// untilNextFrame must be called with the lock held
func (p *Paced) untilNextFrame() time.Duration {
	elapsed := p.c.Now().Sub(p.origin)
	if elapsed < 0 {
		return p.interval
	}

	return p.interval - elapsed%p.interval
}

func (p *Paced) frame() {
	p.lock.Lock()
	batch := p.queue
	p.queue = nil
	p.timer = nil

	callbacks := make([]Callback, 0, len(batch))
	for _, r := range batch {
		if !r.canceled {
			callbacks = append(callbacks, r.cb)
		}

		// a nil callback marks the request as spent, so Cancel reports false
		r.cb = nil
	}

	p.lock.Unlock()

	timestamp := p.c.Now()
	for _, cb := range callbacks {
		cb(timestamp)
	}
}
