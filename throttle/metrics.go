// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package throttle

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/pacer/xmetrics"
)

// Names for our metrics
const (
	LeadingCounter   = "throttle_leading_total"
	TrailingCounter  = "throttle_trailing_total"
	CoalescedCounter = "throttle_coalesced_total"
	CanceledCounter  = "throttle_canceled_total"
)

// Metrics returns the Metrics relevant to this package
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: LeadingCounter,
			Type: xmetrics.CounterType,
			Help: "The number of throttled functions invoked immediately, at the leading edge of a window",
		},
		{
			Name: TrailingCounter,
			Type: xmetrics.CounterType,
			Help: "The number of throttled functions invoked at the trailing edge of a window, including flushes",
		},
		{
			Name: CoalescedCounter,
			Type: xmetrics.CounterType,
			Help: "The number of calls whose arguments were superseded by a later call within the same window",
		},
		{
			Name: CanceledCounter,
			Type: xmetrics.CounterType,
			Help: "The number of pending trailing calls that were canceled",
		},
	}
}

// Measures describes the defined metrics that will be used by clients
type Measures struct {
	Leading   metrics.Counter
	Trailing  metrics.Counter
	Coalesced metrics.Counter
	Canceled  metrics.Counter
}

// NewMeasures realizes desired metrics
func NewMeasures(p provider.Provider) *Measures {
	return &Measures{
		Leading:   p.NewCounter(LeadingCounter),
		Trailing:  p.NewCounter(TrailingCounter),
		Coalesced: p.NewCounter(CoalescedCounter),
		Canceled:  p.NewCounter(CanceledCounter),
	}
}

func discardMeasures() *Measures {
	return &Measures{
		Leading:   discard.NewCounter(),
		Trailing:  discard.NewCounter(),
		Coalesced: discard.NewCounter(),
		Canceled:  discard.NewCounter(),
	}
}
