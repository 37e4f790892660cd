// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package telemetry exposes the discovery activity as prometheus metrics
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/multierr"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
)

const namespace = "appserver"

// Instance states used as label values
const (
	StateRunning = "running"
	StateStopped = "stopped"
)

// Metrics holds the discovery metrics and the registry they belong to
type Metrics struct {
	registry *prometheus.Registry

	instances     *prometheus.GaugeVec
	polls         prometheus.Counter
	pollErrors    prometheus.Counter
	refreshes     prometheus.Counter
	refreshErrors prometheus.Counter
	pollDuration  prometheus.Histogram
}

// Stats is a point in time copy of the counters
type Stats struct {
	Polls         float64 `json:"polls"`
	PollErrors    float64 `json:"poll_errors"`
	Refreshes     float64 `json:"refreshes"`
	RefreshErrors float64 `json:"refresh_errors"`
}

// New returns metrics registered on a new registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		instances: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "instances",
			Help:      "Known application server instances by product and state",
		}, []string{"type", "state"}),
		polls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Process table scans",
		}),
		pollErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_errors_total",
			Help:      "Process table scans that failed",
		}),
		refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deep_refreshes_total",
			Help:      "Deep refreshes of the known instances",
		}),
		refreshErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deep_refresh_errors_total",
			Help:      "Instances whose deep refresh failed",
		}),
		pollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Duration of a process table scan",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
	}
	m.registry.MustRegister(m.instances, m.polls, m.pollErrors, m.refreshes, m.refreshErrors, m.pollDuration)
	return m
}

// Registry returns the registry holding the metrics
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObservePoll records one scan
func (m *Metrics) ObservePoll(d time.Duration, err error) {
	m.polls.Inc()
	m.pollDuration.Observe(d.Seconds())
	if err != nil {
		m.pollErrors.Inc()
	}
}

// ObserveRefresh records one deep refresh. err may combine the failures of
// several instances.
func (m *Metrics) ObserveRefresh(err error) {
	m.refreshes.Inc()
	m.refreshErrors.Add(float64(len(multierr.Errors(err))))
}

// SetInstances replaces the instance gauges
func (m *Metrics) SetInstances(instances []*instance.Instance) {
	m.instances.Reset()
	for _, t := range instance.Types() {
		m.instances.WithLabelValues(t.String(), StateRunning).Set(0)
		m.instances.WithLabelValues(t.String(), StateStopped).Set(0)
	}
	for _, inst := range instances {
		state := StateStopped
		if inst.IsRunning {
			state = StateRunning
		}
		m.instances.WithLabelValues(inst.TypeName(), state).Inc()
	}
}

// Stats returns the current counter values
func (m *Metrics) Stats() Stats {
	return Stats{
		Polls:         counterValue(m.polls),
		PollErrors:    counterValue(m.pollErrors),
		Refreshes:     counterValue(m.refreshes),
		RefreshErrors: counterValue(m.refreshErrors),
	}
}

func counterValue(c prometheus.Counter) float64 {
	metric := &dto.Metric{}
	_ = c.Write(metric)
	return metric.GetCounter().GetValue()
}
