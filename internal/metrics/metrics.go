// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics holds the prometheus collectors of the interactive
// widget server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the collectors of one server. Each server registers its
// own so tests can run servers side by side.
type Metrics struct {
	reg *prometheus.Registry

	Sessions prometheus.Gauge
	Renders  *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
	Events   *prometheus.CounterVec
	Marks    prometheus.Gauge
}

// New returns a Metrics with all collectors registered.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "klustr",
			Name:      "sessions",
			Help:      "Open widget sessions.",
		}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "klustr",
			Name:      "renders_total",
			Help:      "Render passes by view and outcome.",
		}, []string{"view", "outcome"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "klustr",
			Name:      "render_seconds",
			Help:      "Time to handle one session message, including drawing and SVG encoding.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"kind"}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "klustr",
			Name:      "events_total",
			Help:      "Pointer events by kind.",
		}, []string{"kind"}),
		Marks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "klustr",
			Name:      "last_frame_marks",
			Help:      "Number of marks in the most recently sent frame.",
		}),
	}
	m.reg.MustRegister(m.Sessions, m.Renders, m.Latency, m.Events, m.Marks)
	return m
}

// Observe records one handled message of the given kind that left
// the session in view, and how long it took.
func (m *Metrics) Observe(kind, view string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Renders.WithLabelValues(view, outcome).Inc()
	m.Latency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// Handler returns the /metrics handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Registry returns the registry of m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}
