// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/xmidt-org/pacer/chain"
	"github.com/xmidt-org/pacer/poll"
	"github.com/xmidt-org/sallust"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Waiter waits for a sequence of URLs, one after the other, each with its own poll.
type Waiter struct {
	prober       *Prober
	runner       *chain.Runner
	pollOptions  []poll.Option
	pollMeasures *poll.Measures
}

// WaiterIn is the set of dependencies for a Waiter
type WaiterIn struct {
	fx.In
	Config        Config
	Prober        *Prober
	PollMeasures  *poll.Measures
	ChainMeasures *chain.Measures
}

func newWaiter(in WaiterIn) *Waiter {
	return &Waiter{
		prober:       in.Prober,
		runner:       chain.NewRunner(chain.WithMeasures(in.ChainMeasures)),
		pollOptions:  in.Config.PollOptions(),
		pollMeasures: in.PollMeasures,
	}
}

// Wait returns nil once every URL has answered, or the error for the first URL that did not.
// Logging goes to the logger in ctx.
func (w *Waiter) Wait(ctx context.Context, urls []string) error {
	steps := make([]chain.Step, 0, len(urls))
	for _, u := range urls {
		steps = append(steps, w.step(ctx, u))
	}

	return w.runner.Run(ctx, steps...).Wait(ctx)
}

func (w *Waiter) step(ctx context.Context, u string) chain.Step {
	return func() chain.Signal {
		var (
			f      = chain.NewFuture()
			logger = sallust.Get(ctx).With(zap.String("url", u))
		)

		options := make([]poll.Option, 0, len(w.pollOptions)+2)
		options = append(options, w.pollOptions...)
		options = append(options, poll.WithLogger(logger), poll.WithMeasures(w.pollMeasures))

		w.prober.Reset()
		err := poll.Poll(
			ctx,
			func() bool { return w.prober.Ready(ctx, u) },
			func() {
				w.prober.Reset()
				logger.Info("endpoint ready")
				f.Complete(nil)
			},
			func(err error) {
				w.prober.Reset()
				f.Complete(err)
			},
			options...,
		)

		if err != nil {
			f.Complete(err)
		}

		return f
	}
}
