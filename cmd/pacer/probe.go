// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/xmidt-org/pacer/throttle"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// attempt describes a failed probe
type attempt struct {
	url    string
	count  int64
	status int
	err    error
}

// Prober checks whether URLs are ready.  Failed probes are logged at most once per log window.
type Prober struct {
	client   *http.Client
	logger   *zap.Logger
	progress *throttle.Throttled[attempt, struct{}]
	attempts atomic.Int64
}

// ProberIn is the set of dependencies for a Prober
type ProberIn struct {
	fx.In
	Config   Config
	Logger   *zap.Logger
	Measures *throttle.Measures
}

func newProber(in ProberIn) (*Prober, error) {
	p := &Prober{
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   in.Config.RequestTimeout,
		},
		logger: in.Logger,
	}

	var err error
	p.progress, err = throttle.New(
		p.logProgress,
		in.Config.LogWindow,
		throttle.WithLogger(in.Logger),
		throttle.WithMeasures(in.Measures),
	)

	if err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Prober) logProgress(a attempt) struct{} {
	fields := []zap.Field{
		zap.String("url", a.url),
		zap.Int64("attempts", a.count),
	}

	if a.err != nil {
		fields = append(fields, zap.Error(a.err))
	} else {
		fields = append(fields, zap.Int("status", a.status))
	}

	p.logger.Info("waiting for endpoint", fields...)
	return struct{}{}
}

// Ready issues a GET to u and reports whether it answered with a 2xx status.
func (p *Prober) Ready(ctx context.Context, u string) bool {
	count := p.attempts.Add(1)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		p.progress.Call(attempt{url: u, count: count, err: err})
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.progress.Call(attempt{url: u, count: count, err: err})
		return false
	}

	defer resp.Body.Close()
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		p.logger.Debug("unable to drain response body", zap.String("url", u), zap.Error(err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return true
	}

	p.progress.Call(attempt{url: u, count: count, status: resp.StatusCode})
	return false
}

// Reset drops any pending progress log and restarts the attempt count, ready for the next URL.
func (p *Prober) Reset() {
	p.progress.Cancel()
	p.attempts.Store(0)
}
