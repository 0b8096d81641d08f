// Package metrics exposes Prometheus counters for submissions and exports.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "riskassessor"

type Metrics struct {
	// AssessmentsSubmitted counts stored assessments.
	// Labels: band (Low, Medium, High)
	AssessmentsSubmitted *prometheus.CounterVec

	// ValidationFailures counts rejected submissions.
	// Labels: kind (non_integer, out_of_range, missing_field)
	ValidationFailures *prometheus.CounterVec

	// Exports counts generated exports.
	// Labels: format (csv, pdf, chart)
	Exports *prometheus.CounterVec
}

// Default is registered with the global Prometheus registry.
var Default = New(prometheus.DefaultRegisterer)

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AssessmentsSubmitted: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assessments_submitted_total",
				Help:      "Total stored risk assessments by band",
			},
			[]string{"band"},
		),
		ValidationFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Total rejected risk submissions by failure kind",
			},
			[]string{"kind"},
		),
		Exports: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exports_total",
				Help:      "Total generated exports by format",
			},
			[]string{"format"},
		),
	}
}
