// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package poll

import (
	"time"

	"github.com/xmidt-org/pacer/clock"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout is the time allowed for the predicate to succeed when no timeout is configured
	DefaultTimeout = 2 * time.Second

	// DefaultInterval is the time between predicate checks when no interval is configured
	DefaultInterval = 100 * time.Millisecond
)

// Option represents a configuration option for a poll
type Option func(*config)

type config struct {
	timeout  time.Duration
	interval time.Duration
	clock    clock.Interface
	logger   *zap.Logger
	measures *Measures
}

// WithTimeout sets the time allowed for the predicate to succeed.  Zero selects DefaultTimeout.
// Negative values cause the poll to be rejected.
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) {
		if d == 0 {
			cfg.timeout = DefaultTimeout
		} else {
			cfg.timeout = d
		}
	}
}

// WithInterval sets the time between predicate checks.  Zero selects DefaultInterval.
// Negative values cause the poll to be rejected.
func WithInterval(d time.Duration) Option {
	return func(cfg *config) {
		if d == 0 {
			cfg.interval = DefaultInterval
		} else {
			cfg.interval = d
		}
	}
}

// WithClock sets the clock used for the deadline and for scheduling checks.  If nil, clock.System() is used.
func WithClock(c clock.Interface) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.clock = c
		} else {
			cfg.clock = clock.System()
		}
	}
}

// WithLogger sets the zap logger for the poll.  If nil, or if this option is not supplied, the logger
// in the poll's context is used.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithMeasures instruments the poll.  If nil, metrics are discarded.
func WithMeasures(m *Measures) Option {
	return func(cfg *config) {
		if m != nil {
			cfg.measures = m
		} else {
			cfg.measures = discardMeasures()
		}
	}
}

// Config is the externally unmarshalable configuration for polls.
type Config struct {
	// Timeout is the time allowed for the predicate to succeed.  Zero selects DefaultTimeout.
	Timeout time.Duration `mapstructure:"timeout"`

	// Interval is the time between predicate checks.  Zero selects DefaultInterval.
	Interval time.Duration `mapstructure:"interval"`
}

// Options converts this configuration into poll options.
func (c Config) Options() []Option {
	return []Option{
		WithTimeout(c.Timeout),
		WithInterval(c.Interval),
	}
}
