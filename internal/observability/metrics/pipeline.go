// Package metrics provides Prometheus collectors for the capture pipeline and
// the HTTP surface.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics counts capture and correction outcomes.
type PipelineMetrics struct {
	capturesTotal          *prometheus.CounterVec
	correctionsTotal       *prometheus.CounterVec
	classifierDuration     *prometheus.HistogramVec
	notificationErrorTotal *prometheus.CounterVec
}

// NewPipelineMetrics creates and registers pipeline metrics.
func NewPipelineMetrics(registry prometheus.Registerer) (*PipelineMetrics, error) {
	m := &PipelineMetrics{
		capturesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "secondbrain_captures_total",
				Help: "Inbound captures by outcome",
			},
			[]string{"outcome"}, // filed, needs_review, duplicate, failed
		),
		correctionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "secondbrain_corrections_total",
				Help: "Correction commands by outcome",
			},
			[]string{"outcome"}, // corrected, deleted, not_found, invalid_target, refused, duplicate, failed
		),
		classifierDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "secondbrain_classifier_duration_seconds",
				Help:    "Latency of classifier calls",
				Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
			},
			[]string{"status"}, // success, error
		),
		notificationErrorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "secondbrain_notification_errors_total",
				Help: "Failed chat notifications",
			},
			[]string{"operation"}, // post_message, add_reaction
		),
	}

	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordCapture counts one capture outcome.
func (m *PipelineMetrics) RecordCapture(outcome string) {
	m.capturesTotal.WithLabelValues(outcome).Inc()
}

// RecordCorrection counts one correction outcome.
func (m *PipelineMetrics) RecordCorrection(outcome string) {
	m.correctionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveClassification records a classifier call.
func (m *PipelineMetrics) ObserveClassification(d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.classifierDuration.WithLabelValues(status).Observe(d.Seconds())
}

// RecordNotificationError counts a failed reply or reaction.
func (m *PipelineMetrics) RecordNotificationError(operation string) {
	m.notificationErrorTotal.WithLabelValues(operation).Inc()
}

// Describe implements prometheus.Collector.
func (m *PipelineMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.capturesTotal.Describe(ch)
	m.correctionsTotal.Describe(ch)
	m.classifierDuration.Describe(ch)
	m.notificationErrorTotal.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *PipelineMetrics) Collect(ch chan<- prometheus.Metric) {
	m.capturesTotal.Collect(ch)
	m.correctionsTotal.Collect(ch)
	m.classifierDuration.Collect(ch)
	m.notificationErrorTotal.Collect(ch)
}
