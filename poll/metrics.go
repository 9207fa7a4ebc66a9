// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package poll

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/pacer/xmetrics"
)

// Names for our metrics
const (
	AttemptCounter    = "poll_attempts_total"
	SuccessCounter    = "poll_success_total"
	FailureCounter    = "poll_failure_total"
	DurationHistogram = "poll_duration_seconds"
)

// Metrics returns the Metrics relevant to this package
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: AttemptCounter,
			Type: xmetrics.CounterType,
			Help: "The number of times a poll predicate was evaluated",
		},
		{
			Name: SuccessCounter,
			Type: xmetrics.CounterType,
			Help: "The number of polls whose predicate succeeded",
		},
		{
			Name: FailureCounter,
			Type: xmetrics.CounterType,
			Help: "The number of polls that timed out, were canceled, or whose predicate panicked",
		},
		{
			Name:    DurationHistogram,
			Type:    xmetrics.HistogramType,
			Help:    "The time from the start of a poll to its terminal state",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
	}
}

// Measures describes the defined metrics that will be used by clients
type Measures struct {
	Attempts metrics.Counter
	Success  metrics.Counter
	Failure  metrics.Counter
	Duration metrics.Histogram
}

// NewMeasures realizes desired metrics
func NewMeasures(p provider.Provider) *Measures {
	return &Measures{
		Attempts: p.NewCounter(AttemptCounter),
		Success:  p.NewCounter(SuccessCounter),
		Failure:  p.NewCounter(FailureCounter),
		Duration: p.NewHistogram(DurationHistogram, 10),
	}
}

func discardMeasures() *Measures {
	return &Measures{
		Attempts: discard.NewCounter(),
		Success:  discard.NewCounter(),
		Failure:  discard.NewCounter(),
		Duration: discard.NewHistogram(),
	}
}
