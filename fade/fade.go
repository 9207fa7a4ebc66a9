// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package fade

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/xmidt-org/pacer/clock"
	"github.com/xmidt-org/pacer/frame"
	"github.com/xmidt-org/pacer/xerrors"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

// Fader is the element accessor used by FadeIn.
type Fader interface {
	SetOpacity(float64)
}

// Filterer is optionally implemented by a Fader that also carries a legacy alpha filter.
// FadeIn clears the filter when it starts and sets it to "alpha(opacity=N)" on each tick,
// where N is the opacity as a whole percentage.
type Filterer interface {
	SetFilter(string)
}

// FaderFunc is a function type that implements Fader
type FaderFunc func(float64)

func (ff FaderFunc) SetOpacity(v float64) {
	ff(v)
}

func clamp[T constraints.Float](v, lo, hi T) T {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// Animation is a handle to a running fade.  It ends exactly once: with a nil error when the element
// is fully opaque, with frame.ErrStopped when stopped, or with the context's error when canceled.
type Animation struct {
	*frame.Loop
}

// FadeIn ramps el's opacity from 0 to 1.
//
// The element is made transparent and the first tick runs synchronously within this call.  Every later
// tick runs on a frame from the configured scheduler.  Each tick adds the time since the previous tick,
// as measured by the clock, to the elapsed total, and sets the opacity to that total over the ramp.
// A clock that moves backwards contributes nothing, so opacity never decreases.  The fade ends on the
// tick that reaches full opacity.
func FadeIn(ctx context.Context, el Fader, options ...Option) (*Animation, error) {
	cfg := config{
		ramp:  DefaultRamp,
		clock: clock.System(),
	}

	for _, o := range options {
		o(&cfg)
	}

	err := xerrors.First(
		xerrors.NotNil("el", el),
		xerrors.NonNegative("ramp", cfg.ramp),
	)

	if err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		logger = sallust.Get(ctx)
	}

	f := &fader{
		el:    el,
		ramp:  cfg.ramp,
		clock: cfg.clock,
	}

	f.filterer, _ = el.(Filterer)
	f.el.SetOpacity(0)
	if f.filterer != nil {
		f.filterer.SetFilter("")
	}

	f.last = f.clock.Now()
	logger = logger.With(zap.String("animationID", ksuid.New().String()))
	logger.Debug("fade started", zap.Duration("ramp", cfg.ramp))

	return &Animation{
		Loop: frame.StartLoop(ctx, frame.LoopConfig{
			Scheduler: cfg.scheduler,
			Clock:     cfg.clock,
			Step:      f.step,
			Immediate: true,
			Logger:    logger,
		}),
	}, nil
}

// fader is the tick state of one fade
type fader struct {
	el       Fader
	filterer Filterer
	ramp     time.Duration
	clock    clock.Interface

	last    time.Time
	elapsed time.Duration
}

func (f *fader) step(time.Time) bool {
	now := f.clock.Now()
	if delta := now.Sub(f.last); delta > 0 {
		f.elapsed += delta
	}

	f.last = now
	opacity := 1.0
	if f.ramp > 0 {
		opacity = clamp(float64(f.elapsed)/float64(f.ramp), 0, 1)
	}

	f.el.SetOpacity(opacity)
	if f.filterer != nil {
		f.filterer.SetFilter(fmt.Sprintf("alpha(opacity=%d)", int(100*opacity)))
	}

	return opacity >= 1
}
