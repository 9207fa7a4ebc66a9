// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/ksuid"
	"github.com/spf13/pflag"
	"github.com/xmidt-org/sallust"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	exitReady    = 0
	exitNotReady = 1
)

// newApp builds the application graph for the given configuration
func newApp(cfg Config, options ...fx.Option) *fx.App {
	return fx.New(
		append(
			[]fx.Option{
				fx.NopLogger,
				fx.Supply(cfg),
				fx.Provide(
					newLogger,
					newProber,
					newWaiter,
					newMetricsServer,
				),
				provideMetrics(),
				fx.Invoke(func(*MetricsServer) {}),
			},
			options...,
		)...,
	)
}

func run(ctx context.Context, arguments []string, stderr io.Writer) int {
	cfg, err := loadConfig(arguments)
	if errors.Is(err, pflag.ErrHelp) {
		return exitReady
	} else if err != nil {
		fmt.Fprintln(stderr, err)
		return exitNotReady
	}

	var (
		logger *zap.Logger
		waiter *Waiter
	)

	app := newApp(cfg, fx.Populate(&logger, &waiter))
	if err := app.Err(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitNotReady
	}

	if err := app.Start(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return exitNotReady
	}

	defer app.Stop(context.Background())
	defer logger.Sync()

	logger = logger.With(zap.String("runID", ksuid.New().String()))
	logger.Info("waiting for endpoints", zap.Strings("urls", cfg.URLs))
	if err := waiter.Wait(sallust.With(ctx, logger), cfg.URLs); err != nil {
		logger.Error("endpoints not ready", zap.Error(err))
		return exitNotReady
	}

	logger.Info("all endpoints ready")
	return exitReady
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	cancel()
	os.Exit(code)
}
