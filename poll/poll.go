// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package poll

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/xmidt-org/pacer/clock"
	"github.com/xmidt-org/pacer/latch"
	"github.com/xmidt-org/pacer/xerrors"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// Predicate is the condition being polled for
type Predicate func() bool

// poller holds the state of a single poll from its start until its one terminal callback
type poller struct {
	predicate Predicate
	onSuccess func()
	onFailure func(error)

	clock    clock.Interface
	timeout  time.Duration
	interval time.Duration
	logger   *zap.Logger
	measures *Measures

	start    time.Time
	deadline time.Time
	done     *latch.Latch

	lock       sync.Mutex
	attempts   int
	timer      clock.Timer
	stopCancel func() bool
}

// Poll evaluates predicate until it returns true, the timeout elapses, or ctx is canceled.
//
// The first check happens synchronously within this call.  If the predicate does not hold and
// the deadline has not been reached, another check is scheduled after the interval.  Exactly one
// of onSuccess or onFailure is eventually invoked, exactly once:
//
//   - onSuccess when the predicate returns true
//   - onFailure with an error matching ErrTimeout when a check at or after the deadline fails
//   - onFailure with an error matching both ErrCanceled and ctx.Err() when ctx is done first
//   - onFailure with an error matching ErrPredicatePanic when the predicate panics
//
// The returned error is non-nil only when the arguments are invalid, in which case no callback is
// ever invoked.
func Poll(ctx context.Context, predicate Predicate, onSuccess func(), onFailure func(error), options ...Option) error {
	cfg := config{
		timeout:  DefaultTimeout,
		interval: DefaultInterval,
		clock:    clock.System(),
		measures: discardMeasures(),
	}

	for _, o := range options {
		o(&cfg)
	}

	err := xerrors.First(
		xerrors.NotNil("predicate", predicate),
		xerrors.NotNil("onSuccess", onSuccess),
		xerrors.NotNil("onFailure", onFailure),
		xerrors.NonNegative("timeout", cfg.timeout),
		xerrors.NonNegative("interval", cfg.interval),
	)

	if err != nil {
		return err
	}

	if cfg.logger == nil {
		cfg.logger = sallust.Get(ctx)
	}

	p := &poller{
		predicate: predicate,
		onSuccess: onSuccess,
		onFailure: onFailure,
		clock:     cfg.clock,
		timeout:   cfg.timeout,
		interval:  cfg.interval,
		logger:    cfg.logger.With(zap.String("pollID", ksuid.New().String())),
		measures:  cfg.measures,
		done:      latch.New(),
	}

	p.start = p.clock.Now()
	p.deadline = p.start.Add(p.timeout)
	p.logger.Debug(
		"polling started",
		zap.Duration("timeout", p.timeout),
		zap.Duration("interval", p.interval),
	)

	if ctxErr := ctx.Err(); ctxErr != nil {
		p.finish(canceledError{cause: ctxErr})
		return nil
	}

	stop := context.AfterFunc(ctx, func() {
		p.finish(canceledError{cause: ctx.Err()})
	})

	p.lock.Lock()
	p.stopCancel = stop
	p.lock.Unlock()

	p.check()
	return nil
}

// Wait is a blocking version of Poll.  It returns nil when the predicate held, or the error
// that would have been passed to the failure callback.
func Wait(ctx context.Context, predicate Predicate, options ...Option) error {
	result := make(chan error, 1)
	err := Poll(
		ctx,
		predicate,
		func() { result <- nil },
		func(err error) { result <- err },
		options...,
	)

	if err != nil {
		return err
	}

	return <-result
}

func (p *poller) check() {
	if p.done.Released() {
		return
	}

	p.lock.Lock()
	p.timer = nil
	p.attempts++
	attempts := p.attempts
	p.lock.Unlock()

	p.measures.Attempts.Add(1.0)
	ok, err := p.evaluate(attempts)
	switch {
	case err != nil:
		p.finish(err)

	case ok:
		p.finish(nil)

	default:
		now := p.clock.Now()
		if !now.Before(p.deadline) {
			p.finish(&TimeoutError{
				Timeout:  p.timeout,
				Elapsed:  now.Sub(p.start),
				Attempts: attempts,
			})

			return
		}

		p.lock.Lock()
		if !p.done.Released() {
			p.timer = p.clock.AfterFunc(p.interval, p.check)
		}

		p.lock.Unlock()
	}
}

func (p *poller) evaluate(attempts int) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Attempts: attempts}
		}
	}()

	ok = p.predicate()
	return
}

// finish performs the terminal transition.  Only the first caller has any effect.
func (p *poller) finish(err error) {
	if !p.done.Release(err) {
		return
	}

	p.lock.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}

	stop := p.stopCancel
	p.stopCancel = nil
	attempts := p.attempts
	p.lock.Unlock()

	if stop != nil {
		stop()
	}

	elapsed := clock.Since(p.clock, p.start)
	p.measures.Duration.Observe(elapsed.Seconds())
	fields := []zap.Field{
		zap.Int("attempts", attempts),
		zap.Duration("elapsed", elapsed),
	}

	if err == nil {
		p.measures.Success.Add(1.0)
		p.logger.Debug("polling succeeded", fields...)
		p.onSuccess()
		return
	}

	p.measures.Failure.Add(1.0)
	if _, ok := err.(*PanicError); ok {
		p.logger.Error("polling predicate panicked", append(fields, zap.Error(err))...)
	} else {
		p.logger.Info("polling failed", append(fields, zap.Error(err))...)
	}

	p.onFailure(err)
}
