// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package chain

import "go.uber.org/zap"

// Option represents a configuration option for a Runner
type Option func(*Runner)

// WithLogger sets the zap logger for chains.  If nil, or if this option is not supplied,
// each chain uses the logger in its context.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithMeasures instruments chains.  If nil, metrics are discarded.
func WithMeasures(m *Measures) Option {
	return func(r *Runner) {
		if m != nil {
			r.measures = m
		} else {
			r.measures = discardMeasures()
		}
	}
}
