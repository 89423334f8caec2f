// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the modeler
// service.
//
// # Description
//
// Metrics cover extraction and diagram operations:
//   - Request counters by endpoint and status
//   - Extraction outcomes by candidate source (words, template, domain, fallback)
//   - Diagram sizes (entities per extraction)
//   - Request latency histograms
//   - Saved history size gauge
//
// Exposed via the /metrics endpoint for Prometheus scraping.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Metric Definitions
// =============================================================================

const metricsNamespace = "uml"

const modelerSubsystem = "modeler"

// ModelerMetrics holds all Prometheus metrics for the modeler service.
// Initialize once at startup via InitMetrics().
type ModelerMetrics struct {
	// RequestsTotal counts handled requests by endpoint and status.
	// Labels: endpoint (process_specs, generate_uml, save_uml, ...),
	// status (success, error)
	RequestsTotal *prometheus.CounterVec

	// ExtractionsTotal counts extractions by the source that produced
	// the entity candidates.
	// Labels: source (words, fallback_words, template, domain, fallback)
	ExtractionsTotal *prometheus.CounterVec

	// EntitiesPerExtraction measures how many entities each extraction
	// produced.
	EntitiesPerExtraction prometheus.Histogram

	// RequestDurationSeconds measures request latency by endpoint.
	RequestDurationSeconds *prometheus.HistogramVec

	// SavedDiagrams tracks the current history size.
	SavedDiagrams prometheus.Gauge

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal prometheus.Counter
}

// DefaultMetrics is the singleton instance, set by InitMetrics().
var DefaultMetrics *ModelerMetrics

// InitMetrics creates and registers all metrics on the default registry.
// Call once at startup; a second call panics on duplicate registration.
func InitMetrics() *ModelerMetrics {
	DefaultMetrics = &ModelerMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: modelerSubsystem,
				Name:      "requests_total",
				Help:      "Total handled requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),

		ExtractionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: modelerSubsystem,
				Name:      "extractions_total",
				Help:      "Total extractions by entity candidate source",
			},
			[]string{"source"},
		),

		EntitiesPerExtraction: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: modelerSubsystem,
				Name:      "entities_per_extraction",
				Help:      "Entities produced per extraction",
				Buckets:   []float64{2, 3, 4, 5, 6, 8, 10},
			},
		),

		RequestDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: modelerSubsystem,
				Name:      "request_duration_seconds",
				Help:      "Request latency by endpoint",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"endpoint"},
		),

		SavedDiagrams: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: modelerSubsystem,
				Name:      "saved_diagrams",
				Help:      "Number of diagrams currently in the history",
			},
		),

		RateLimitedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: modelerSubsystem,
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the per-client rate limiter",
			},
		),
	}

	return DefaultMetrics
}

// =============================================================================
// Endpoint Names
// =============================================================================

// Endpoint labels a handled route for metrics.
type Endpoint string

const (
	EndpointProcessSpecs Endpoint = "process_specs"
	EndpointGenerateUML  Endpoint = "generate_uml"
	EndpointSaveUML      Endpoint = "save_uml"
	EndpointHistory      Endpoint = "uml_history"
	EndpointPreview      Endpoint = "ws_preview"
	EndpointBackup       Endpoint = "admin_backup"
)

// =============================================================================
// Helper Methods
// =============================================================================

// RecordRequest records a completed request. Nil-safe so handlers work
// in tests without InitMetrics.
func (m *ModelerMetrics) RecordRequest(endpoint Endpoint, success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	m.RequestsTotal.WithLabelValues(string(endpoint), status).Inc()
}

// RecordExtraction records one extraction outcome.
func (m *ModelerMetrics) RecordExtraction(source string, entities int) {
	if m == nil {
		return
	}
	m.ExtractionsTotal.WithLabelValues(source).Inc()
	m.EntitiesPerExtraction.Observe(float64(entities))
}

// RecordDuration records request latency for an endpoint.
func (m *ModelerMetrics) RecordDuration(endpoint Endpoint, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDurationSeconds.WithLabelValues(string(endpoint)).Observe(seconds)
}

// SetSavedDiagrams updates the history size gauge.
func (m *ModelerMetrics) SetSavedDiagrams(n int) {
	if m == nil {
		return
	}
	m.SavedDiagrams.Set(float64(n))
}

// RecordRateLimited counts one rejected request.
func (m *ModelerMetrics) RecordRateLimited() {
	if m == nil {
		return
	}
	m.RateLimitedTotal.Inc()
}
