// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/segmentio/ksuid"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// ErrNilSignal is the cause of a StepError for a step that returned no Signal
var ErrNilSignal = errors.New("step returned a nil signal")

// Step starts a unit of asynchronous work and returns the Signal for its completion.
type Step func() Signal

// StepError is the result of a chain aborted by a failed step.
type StepError struct {
	// Index is the zero-based position of the failed step
	Index int

	// Err is the failure reported by the step's signal
	Err error
}

func (se *StepError) Error() string {
	return fmt.Sprintf("chain step %d failed: %s", se.Index, se.Err)
}

func (se *StepError) Unwrap() error {
	return se.Err
}

// Runner runs chains of steps.  A Runner is safe for concurrent use, and each chain it runs is independent.
type Runner struct {
	logger   *zap.Logger
	measures *Measures
}

// NewRunner creates a Runner with the given options.
func NewRunner(options ...Option) *Runner {
	r := &Runner{
		measures: discardMeasures(),
	}

	for _, o := range options {
		o(r)
	}

	return r
}

var defaultRunner = NewRunner()

// Chain runs steps with an uninstrumented Runner that logs to ctx's logger.
func Chain(ctx context.Context, steps ...Step) *Future {
	return defaultRunner.Run(ctx, steps...)
}

// Run invokes each step in order.  The first step is invoked within this call, and each later step
// is invoked only after the previous step's signal reports success, on whichever goroutine
// delivered that report.  A nil step is skipped.
//
// The returned Future completes with nil after the last step succeeds, with a *StepError for the first
// step that fails or returns a nil Signal, or with ctx.Err() if ctx is done first.  No step is invoked
// after the chain completes, and any later reports from signals are ignored.
func (r *Runner) Run(ctx context.Context, steps ...Step) *Future {
	logger := r.logger
	if logger == nil {
		logger = sallust.Get(ctx)
	}

	ru := &run{
		steps:    steps,
		result:   NewFuture(),
		logger:   logger.With(zap.String("chainID", ksuid.New().String())),
		measures: r.measures,
	}

	ru.logger.Debug("chain started", zap.Int("steps", len(steps)))
	if err := ctx.Err(); err != nil {
		ru.finish(err)
		return ru.result
	}

	stop := context.AfterFunc(ctx, func() {
		ru.finish(ctx.Err())
	})

	ru.lock.Lock()
	ru.stopCancel = stop
	ru.lock.Unlock()

	ru.drive()
	return ru.result
}

// run is the state of a single chain
type run struct {
	steps    []Step
	result   *Future
	logger   *zap.Logger
	measures *Measures

	lock sync.Mutex

	// next is the index of the next step to invoke, and settled is the number of steps
	// whose signals have reported success
	next    int
	settled int

	// driving is set while drive is invoking a step, and ready records a success reported
	// synchronously during that time.  This keeps synchronous signals from growing the stack.
	driving bool
	ready   bool

	stopCancel func() bool
}

func (ru *run) drive() {
	for {
		ru.lock.Lock()
		if ru.result.done.Released() {
			ru.lock.Unlock()
			return
		}

		for ru.next < len(ru.steps) && ru.steps[ru.next] == nil {
			ru.next++
			ru.settled++
		}

		if ru.next >= len(ru.steps) {
			ru.lock.Unlock()
			ru.finish(nil)
			return
		}

		index := ru.next
		ru.next++
		ru.driving = true
		ru.ready = false
		ru.lock.Unlock()

		ru.measures.Steps.Add(1.0)
		ru.logger.Debug("chain step started", zap.Int("step", index))
		signal := ru.steps[index]()
		if signal == nil {
			ru.finish(&StepError{Index: index, Err: ErrNilSignal})
			return
		}

		signal.OnComplete(func(err error) {
			ru.settle(index, err)
		})

		ru.lock.Lock()
		ru.driving = false
		if !ru.ready {
			// the signal is still outstanding, and settle will resume the chain
			ru.lock.Unlock()
			return
		}

		ru.ready = false
		ru.lock.Unlock()
	}
}

// settle handles a signal's report for the step at index
func (ru *run) settle(index int, err error) {
	ru.lock.Lock()
	if ru.result.done.Released() || index != ru.settled {
		// late, or a repeated report
		ru.lock.Unlock()
		return
	}

	ru.settled++
	if err != nil {
		ru.lock.Unlock()
		ru.finish(&StepError{Index: index, Err: err})
		return
	}

	ru.logger.Debug("chain step completed", zap.Int("step", index))
	if ru.driving {
		ru.ready = true
		ru.lock.Unlock()
		return
	}

	ru.lock.Unlock()
	ru.drive()
}

// finish completes the chain.  Only the first call has any effect.
func (ru *run) finish(err error) {
	ru.lock.Lock()
	stop := ru.stopCancel
	ru.stopCancel = nil
	ru.lock.Unlock()

	if stop != nil {
		stop()
	}

	if !ru.result.Complete(err) {
		return
	}

	if err == nil {
		ru.measures.Completed.Add(1.0)
		ru.logger.Debug("chain completed")
	} else {
		ru.measures.Aborted.Add(1.0)
		ru.logger.Info("chain aborted", zap.Error(err))
	}
}
