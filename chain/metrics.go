// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package chain

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/pacer/xmetrics"
)

// Names for our metrics
const (
	StepCounter      = "chain_steps_total"
	CompletedCounter = "chain_completed_total"
	AbortedCounter   = "chain_aborted_total"
)

// Metrics returns the Metrics relevant to this package
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: StepCounter,
			Type: xmetrics.CounterType,
			Help: "The number of chain steps started",
		},
		{
			Name: CompletedCounter,
			Type: xmetrics.CounterType,
			Help: "The number of chains in which every step succeeded",
		},
		{
			Name: AbortedCounter,
			Type: xmetrics.CounterType,
			Help: "The number of chains ended by a failed step or a canceled context",
		},
	}
}

// Measures describes the defined metrics that will be used by clients
type Measures struct {
	Steps     metrics.Counter
	Completed metrics.Counter
	Aborted   metrics.Counter
}

// NewMeasures realizes desired metrics
func NewMeasures(p provider.Provider) *Measures {
	return &Measures{
		Steps:     p.NewCounter(StepCounter),
		Completed: p.NewCounter(CompletedCounter),
		Aborted:   p.NewCounter(AbortedCounter),
	}
}

func discardMeasures() *Measures {
	return &Measures{
		Steps:     discard.NewCounter(),
		Completed: discard.NewCounter(),
		Aborted:   discard.NewCounter(),
	}
}
