// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package scroll

import (
	"time"

	"github.com/xmidt-org/pacer/clock"
	"go.uber.org/zap"
)

const (
	// DefaultGranularity is the time between animation ticks
	DefaultGranularity = 10 * time.Millisecond

	// DefaultTolerance is the distance from the target at which an animation snaps to the target and stops
	DefaultTolerance = 0.5
)

// Option represents a configuration option for a scroll animation
type Option func(*config)

type config struct {
	granularity time.Duration
	tolerance   float64
	clock       clock.Interface
	logger      *zap.Logger
}

// WithGranularity sets the time between ticks.  Zero selects DefaultGranularity.
func WithGranularity(d time.Duration) Option {
	return func(cfg *config) {
		if d == 0 {
			cfg.granularity = DefaultGranularity
		} else {
			cfg.granularity = d
		}
	}
}

// WithTolerance sets the distance from the target that counts as arrival.  A zero tolerance
// means only the final tick, which always writes the target exactly, ends the animation early.
func WithTolerance(t float64) Option {
	return func(cfg *config) {
		cfg.tolerance = t
	}
}

// WithClock sets the clock that drives ticks.  If nil, clock.System() is used.
func WithClock(c clock.Interface) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.clock = c
		} else {
			cfg.clock = clock.System()
		}
	}
}

// WithLogger sets the zap logger for the animation.  If nil, or if this option is not supplied,
// the logger in the animation's context is used.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// Config is the externally unmarshalable configuration for scroll animations.
type Config struct {
	// Granularity is the time between ticks.  Zero selects DefaultGranularity.
	Granularity time.Duration `mapstructure:"granularity"`

	// Tolerance is the distance from the target that counts as arrival.  A nil Tolerance
	// selects DefaultTolerance.
	Tolerance *float64 `mapstructure:"tolerance"`
}

// Options converts this configuration into scroll options.
func (c Config) Options() []Option {
	options := []Option{WithGranularity(c.Granularity)}
	if c.Tolerance != nil {
		options = append(options, WithTolerance(*c.Tolerance))
	}

	return options
}
