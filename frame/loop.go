// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package frame

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/xmidt-org/pacer/clock"
	"github.com/xmidt-org/pacer/latch"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// ErrStopped is the result of a Loop ended through Stop
var ErrStopped = errors.New("frame loop stopped")

// Step is run once per frame with the frame's timestamp.  It returns true when the loop is complete.
type Step func(time.Time) bool

// LoopConfig describes a Loop to start.
type LoopConfig struct {
	// Scheduler supplies the frames.  It must not run callbacks synchronously from RequestFrame.
	// If unset, a fallback scheduler on Clock is used.
	Scheduler Scheduler

	// Clock supplies the timestamp of an immediate first step.  If unset, clock.System() is used.
	Clock clock.Interface

	// Step is the per-frame work.  It is required.
	Step Step

	// Immediate runs the first step synchronously within StartLoop, rather than on the first frame.
	Immediate bool

	// Logger receives lifecycle events.  If unset, the logger in the loop's context is used.
	Logger *zap.Logger
}

// Loop runs a Step on successive frames until the step reports completion, the loop is stopped, or its
// context is canceled.  A Loop ends exactly once.
//
// Steps run one at a time, and Stop does not return while a step is running, so no step runs after
// Stop returns.  A step must not call Stop on its own Loop.
type Loop struct {
	scheduler Scheduler
	step      Step
	logger    *zap.Logger
	done      *latch.Latch

	lock       sync.Mutex
	handle     Handle
	stopCancel func() bool
	frames     int
}

// StartLoop starts a Loop.  This function panics if lc.Step is nil.
func StartLoop(ctx context.Context, lc LoopConfig) *Loop {
	if lc.Step == nil {
		panic("frame: a loop requires a step")
	}

	if lc.Clock == nil {
		lc.Clock = clock.System()
	}

	if lc.Logger == nil {
		lc.Logger = sallust.Get(ctx)
	}

	l := &Loop{
		scheduler: Resolve(lc.Scheduler, lc.Clock),
		step:      lc.Step,
		logger:    lc.Logger,
		done:      latch.New(),
	}

	if err := ctx.Err(); err != nil {
		l.end(err)
		return l
	}

	l.lock.Lock()
	ended := false
	if lc.Immediate {
		ended = l.runLocked(lc.Clock.Now())
	} else {
		l.handle = l.scheduler.RequestFrame(l.onFrame)
	}

	l.lock.Unlock()
	if ended {
		l.cleanup(nil)
		return l
	}

	stop := context.AfterFunc(ctx, func() {
		l.end(ctx.Err())
	})

	l.lock.Lock()
	if l.done.Released() {
		l.lock.Unlock()
		stop()
	} else {
		l.stopCancel = stop
		l.lock.Unlock()
	}

	return l
}

// Done returns a channel that is closed when the loop ends.
func (l *Loop) Done() <-chan struct{} {
	return l.done.Done()
}

// Err returns nil while the loop is running or after it completed, ErrStopped if it was stopped, or
// the context's error if it was canceled.
func (l *Loop) Err() error {
	return l.done.Err()
}

// Frames returns the number of steps run so far.
func (l *Loop) Frames() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.frames
}

// Stop ends the loop, returning true if this call ended it.
func (l *Loop) Stop() bool {
	return l.end(ErrStopped)
}

func (l *Loop) onFrame(ts time.Time) {
	l.lock.Lock()
	if l.done.Released() {
		l.lock.Unlock()
		return
	}

	l.handle = nil
	ended := l.runLocked(ts)
	l.lock.Unlock()

	if ended {
		l.cleanup(nil)
	}
}

// runLocked runs one step and either requests the next frame or ends the loop.  It returns true if
// the loop ended.  The lock must be held.
func (l *Loop) runLocked(ts time.Time) bool {
	l.frames++
	if !l.step(ts) {
		l.handle = l.scheduler.RequestFrame(l.onFrame)
		return false
	}

	return l.endLocked(nil)
}

func (l *Loop) end(err error) bool {
	l.lock.Lock()
	ended := l.endLocked(err)
	l.lock.Unlock()

	if ended {
		l.cleanup(err)
	}

	return ended
}

// endLocked must be called with the lock held
func (l *Loop) endLocked(err error) bool {
	if !l.done.Release(err) {
		return false
	}

	if l.handle != nil {
		l.handle.Cancel()
		l.handle = nil
	}

	return true
}

// cleanup runs once, after the loop ends, without the lock held
func (l *Loop) cleanup(err error) {
	l.lock.Lock()
	stop := l.stopCancel
	l.stopCancel = nil
	frames := l.frames
	l.lock.Unlock()

	if stop != nil {
		stop()
	}

	if err != nil {
		l.logger.Info("loop ended early", zap.Int("frames", frames), zap.Error(err))
	} else {
		l.logger.Debug("loop complete", zap.Int("frames", frames))
	}
}
