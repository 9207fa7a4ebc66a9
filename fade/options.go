// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package fade

import (
	"time"

	"github.com/xmidt-org/pacer/clock"
	"github.com/xmidt-org/pacer/frame"
	"go.uber.org/zap"
)

// DefaultRamp is the time taken to go from transparent to opaque
const DefaultRamp = 400 * time.Millisecond

// Option represents a configuration option for a fade
type Option func(*config)

type config struct {
	ramp      time.Duration
	scheduler frame.Scheduler
	clock     clock.Interface
	logger    *zap.Logger
}

// WithRamp sets the time taken to reach full opacity.  Zero selects DefaultRamp.
func WithRamp(d time.Duration) Option {
	return func(cfg *config) {
		if d == 0 {
			cfg.ramp = DefaultRamp
		} else {
			cfg.ramp = d
		}
	}
}

// WithFrameScheduler sets the source of animation frames.  If nil, or if this option is not supplied,
// frames come from a fallback timer running every frame.DefaultInterval.
func WithFrameScheduler(s frame.Scheduler) Option {
	return func(cfg *config) {
		cfg.scheduler = s
	}
}

// WithClock sets the clock used to measure elapsed time between ticks.  If nil, clock.System() is used.
func WithClock(c clock.Interface) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.clock = c
		} else {
			cfg.clock = clock.System()
		}
	}
}

// WithLogger sets the zap logger for the fade.  If nil, or if this option is not supplied,
// the logger in the fade's context is used.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// Config is the externally unmarshalable configuration for fades.
type Config struct {
	// Ramp is the time taken to reach full opacity.  Zero selects DefaultRamp.
	Ramp time.Duration `mapstructure:"ramp"`
}

// Options converts this configuration into fade options.
func (c Config) Options() []Option {
	return []Option{WithRamp(c.Ramp)}
}
