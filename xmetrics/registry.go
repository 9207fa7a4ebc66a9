// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"fmt"
	"sync"

	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the core abstraction for this package.  It is a Prometheus registry and a go-kit metrics.Provider all in one.
//
// For any metric that was preregistered through a Module, the provider methods return a go-kit wrapper
// for that metric.  Ad hoc metrics are created on first use and cached for subsequent calls.
type Registry interface {
	provider.Provider
	prometheus.Gatherer
	prometheus.Registerer
}

// registry is the internal Registry implementation
type registry struct {
	*prometheus.Registry

	namespace string
	subsystem string

	lock  sync.Mutex
	cache map[string]prometheus.Collector
}

// collector returns the cached collector with the given name, creating and registering
// an ad hoc metric of type t if necessary.
func (r *registry) collector(name, t string) prometheus.Collector {
	r.lock.Lock()
	defer r.lock.Unlock()

	if existing, ok := r.cache[name]; ok {
		return existing
	}

	c, err := NewCollector(Metric{Name: name, Type: t}, r.namespace, r.subsystem)
	if err != nil {
		panic(err)
	}

	if err := r.Registry.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			c = already.ExistingCollector
		} else {
			panic(err)
		}
	}

	r.cache[name] = c
	return c
}

func (r *registry) NewCounter(name string) metrics.Counter {
	vec, ok := r.collector(name, CounterType).(*prometheus.CounterVec)
	if !ok {
		panic(fmt.Errorf("The metric %s is not a counter", name))
	}

	return gokitprometheus.NewCounter(vec)
}

func (r *registry) NewGauge(name string) metrics.Gauge {
	vec, ok := r.collector(name, GaugeType).(*prometheus.GaugeVec)
	if !ok {
		panic(fmt.Errorf("The metric %s is not a gauge", name))
	}

	return gokitprometheus.NewGauge(vec)
}

// NewHistogram ignores the bucket count.  Buckets come from the preregistered Metric, or
// prometheus.DefBuckets for ad hoc histograms.
func (r *registry) NewHistogram(name string, _ int) metrics.Histogram {
	vec, ok := r.collector(name, HistogramType).(*prometheus.HistogramVec)
	if !ok {
		panic(fmt.Errorf("The metric %s is not a histogram", name))
	}

	return gokitprometheus.NewHistogram(vec)
}

func (r *registry) Stop() {
}

// NewRegistry creates a Registry and preregisters the metrics from each module.  Duplicate
// metric names are an error.
func NewRegistry(o *Options, modules ...Module) (Registry, error) {
	r := &registry{
		Registry:  o.registry(),
		namespace: o.namespace(),
		subsystem: o.subsystem(),
		cache:     make(map[string]prometheus.Collector),
	}

	for _, module := range modules {
		for _, m := range module() {
			if _, ok := r.cache[m.Name]; ok {
				return nil, fmt.Errorf("Duplicate metric: %s", m.Name)
			}

			c, err := NewCollector(m, r.namespace, r.subsystem)
			if err != nil {
				return nil, err
			}

			if err := r.Registry.Register(c); err != nil {
				return nil, fmt.Errorf("Error while preregistering metric %s: %s", m.Name, err)
			}

			r.cache[m.Name] = c
		}
	}

	return r, nil
}
