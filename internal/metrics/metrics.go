// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics exposes the site's Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aptms"

// IncrementalCounter is a labelled counter.
type IncrementalCounter interface {
	Increment(labels ...string)
}

// Counter wraps a CounterVec so callers pass label values only.
type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

// Increment adds one to the series selected by labels.
func (c *Counter) Increment(labels ...string) {
	c.vec.WithLabelValues(labels...).Inc()
}

// NewCounter registers a counter vector on reg.
func NewCounter(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
	reg.MustRegister(vec)

	return &Counter{Name: name, Help: help, vec: vec}
}

// Metrics holds the counters recorded by the navigation endpoints and pages.
type Metrics struct {
	registry *prometheus.Registry

	// NavToggles is labelled by the resulting state: open or closed.
	NavToggles *Counter
	// NavSelections is labelled by target kind: path or anchor.
	NavSelections *Counter
	// NavRejected counts select events for targets that are not configured.
	NavRejected *Counter
	// PageViews is labelled by page name.
	PageViews *Counter
}

// New returns a Metrics backed by a private registry that also carries the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:      reg,
		NavToggles:    NewCounter(reg, "nav_toggles_total", "Mobile menu toggles by resulting state.", "state"),
		NavSelections: NewCounter(reg, "nav_selections_total", "Navigation entry selections by target kind.", "kind"),
		NavRejected:   NewCounter(reg, "nav_rejected_total", "Navigation events rejected by the bar.", "event"),
		PageViews:     NewCounter(reg, "page_views_total", "Rendered pages by name.", "page"),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
