// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package throttle

import (
	"time"

	"github.com/xmidt-org/pacer/clock"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// Option represents a configuration option for a throttled function
type Option func(*config)

type config struct {
	clock    clock.Interface
	logger   *zap.Logger
	measures *Measures
}

// WithClock sets the clock used to measure windows and schedule trailing calls.
// If nil, clock.System() is used.
func WithClock(c clock.Interface) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.clock = c
		} else {
			cfg.clock = clock.System()
		}
	}
}

// WithLogger sets the zap logger for the throttled function.  If nil, sallust.Default() is used.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		} else {
			cfg.logger = sallust.Default()
		}
	}
}

// WithMeasures instruments the throttled function.  If nil, metrics are discarded.
func WithMeasures(m *Measures) Option {
	return func(cfg *config) {
		if m != nil {
			cfg.measures = m
		} else {
			cfg.measures = discardMeasures()
		}
	}
}

// Config is the externally unmarshalable configuration for a throttled function.
type Config struct {
	// Wait is the length of the throttle window
	Wait time.Duration `mapstructure:"wait"`
}
