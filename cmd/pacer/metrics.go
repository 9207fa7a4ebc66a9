// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-kit/kit/metrics/provider"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xmidt-org/pacer/chain"
	"github.com/xmidt-org/pacer/poll"
	"github.com/xmidt-org/pacer/throttle"
	"github.com/xmidt-org/pacer/xmetrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newRegistry(cfg Config) (xmetrics.Registry, error) {
	return xmetrics.NewRegistry(&cfg.Prometheus, poll.Metrics, chain.Metrics, throttle.Metrics)
}

// provideMetrics supplies the registry and the measures of every instrumented package
func provideMetrics() fx.Option {
	return fx.Provide(
		newRegistry,
		func(r xmetrics.Registry) provider.Provider { return r },
		poll.NewMeasures,
		chain.NewMeasures,
		throttle.NewMeasures,
	)
}

// MetricsServer serves the registry at /metrics while the application runs.
type MetricsServer struct {
	server *http.Server
	logger *zap.Logger

	lock sync.Mutex
	addr net.Addr
}

// MetricsServerIn is the set of dependencies for a MetricsServer
type MetricsServerIn struct {
	fx.In
	Lifecycle fx.Lifecycle
	Config    Config
	Registry  xmetrics.Registry
	Logger    *zap.Logger
}

func newMetricsServer(in MetricsServerIn) *MetricsServer {
	if len(in.Config.MetricsAddress) == 0 {
		return nil
	}

	router := mux.NewRouter()
	router.Handle(
		"/metrics",
		promhttp.HandlerFor(in.Registry, promhttp.HandlerOpts{ErrorLog: zap.NewStdLog(in.Logger)}),
	).Methods(http.MethodGet)

	ms := &MetricsServer{
		server: &http.Server{
			Addr:              in.Config.MetricsAddress,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: in.Logger,
	}

	in.Lifecycle.Append(fx.Hook{
		OnStart: ms.start,
		OnStop:  ms.server.Shutdown,
	})

	return ms
}

func (ms *MetricsServer) start(context.Context) error {
	l, err := net.Listen("tcp", ms.server.Addr)
	if err != nil {
		return err
	}

	ms.lock.Lock()
	ms.addr = l.Addr()
	ms.lock.Unlock()

	ms.logger.Info("serving metrics", zap.Stringer("address", l.Addr()))
	go func() {
		if err := ms.server.Serve(l); !errors.Is(err, http.ErrServerClosed) {
			ms.logger.Error("metrics server exited", zap.Error(err))
		}
	}()

	return nil
}

// Addr returns the address the server is listening on, or nil if it has not started.
func (ms *MetricsServer) Addr() net.Addr {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	return ms.addr
}
