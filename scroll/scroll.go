// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package scroll

import (
	"context"
	"math"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/xmidt-org/pacer/clock"
	"github.com/xmidt-org/pacer/frame"
	"github.com/xmidt-org/pacer/xerrors"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

// Scroller is the element accessor used by ScrollTo.  Its methods are invoked from the
// clock's goroutines, one tick at a time, and must not stop the animation they belong to.
type Scroller interface {
	ScrollOffset() float64
	SetScrollOffset(float64)
}

// ScrollerFuncs adapts a getter and setter pair to Scroller
type ScrollerFuncs struct {
	Get func() float64
	Set func(float64)
}

func (sf ScrollerFuncs) ScrollOffset() float64 {
	return sf.Get()
}

func (sf ScrollerFuncs) SetScrollOffset(v float64) {
	sf.Set(v)
}

// between limits v to the closed interval spanned by a and b, in either order
func between[T constraints.Float](v, a, b T) T {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}

	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// ScrollTo moves el's scroll offset to target over roughly duration, one tick per granularity.
//
// Each tick covers an equal share of the remaining distance over the remaining duration, and the
// remaining duration shrinks by the granularity every tick.  The tick on which the remaining duration
// no longer exceeds the granularity writes target exactly.  A tick that lands within the tolerance of
// target snaps to it and ends the animation early.  The first tick runs one granularity after this call.
//
// Invalid arguments are rejected with an error matching xerrors.ErrInvalidArgument before anything
// is scheduled.
func ScrollTo(ctx context.Context, el Scroller, target float64, duration time.Duration, options ...Option) (*Animation, error) {
	cfg := config{
		granularity: DefaultGranularity,
		tolerance:   DefaultTolerance,
		clock:       clock.System(),
	}

	for _, o := range options {
		o(&cfg)
	}

	err := xerrors.First(
		xerrors.NotNil("el", el),
		xerrors.Finite("target", target),
		xerrors.NonNegative("duration", duration),
		xerrors.NonNegative("granularity", cfg.granularity),
		xerrors.NonNegativeFloat("tolerance", cfg.tolerance),
	)

	if err != nil {
		return nil, err
	}

	s := &scroller{
		el:          el,
		target:      target,
		remaining:   duration,
		granularity: cfg.granularity,
		tolerance:   cfg.tolerance,
	}

	logger := cfg.logger
	if logger == nil {
		logger = sallust.Get(ctx)
	}

	logger = logger.With(
		zap.String("animationID", ksuid.New().String()),
		zap.Float64("target", target),
	)

	logger.Debug("scroll animation started", zap.Duration("duration", duration))
	return &Animation{
		Loop: frame.StartLoop(ctx, frame.LoopConfig{
			Scheduler: frame.NewFallback(cfg.clock, cfg.granularity),
			Clock:     cfg.clock,
			Step:      s.step,
			Logger:    logger,
		}),
	}, nil
}

// Animation is a handle to a running scroll.  It ends exactly once: with a nil error when the
// target is reached, with frame.ErrStopped when stopped, or with the context's error when canceled.
// Frames reports the number of ticks run so far.
type Animation struct {
	*frame.Loop
}

// scroller is the tick state of one animation
type scroller struct {
	el          Scroller
	target      float64
	remaining   time.Duration
	granularity time.Duration
	tolerance   float64
}

// step moves the element one tick closer and reports whether it has arrived
func (s *scroller) step(time.Time) bool {
	if s.remaining <= s.granularity {
		s.el.SetScrollOffset(s.target)
		return true
	}

	current := s.el.ScrollOffset()
	next := between(
		current+(s.target-current)*float64(s.granularity)/float64(s.remaining),
		current,
		s.target,
	)

	s.remaining -= s.granularity
	if math.Abs(s.target-next) <= s.tolerance {
		s.el.SetScrollOffset(s.target)
		return true
	}

	s.el.SetScrollOffset(next)
	return false
}
