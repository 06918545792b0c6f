// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exposes Prometheus instrumentation for the question
// pipeline.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Question outcomes recorded per request.
const (
	OutcomeAnswered   = "answered"
	OutcomeNoDatasets = "no_datasets"
	OutcomeNoResource = "no_resource"
	OutcomeError      = "error"
)

var (
	questionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataqa_questions_total",
			Help: "Total questions processed by pipeline outcome",
		},
		[]string{"outcome"},
	)

	questionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dataqa_question_duration_seconds",
			Help:    "Wall time spent answering one question end to end",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
	)

	initOnce sync.Once
)

// Init registers the collectors. Must be called once at startup; later
// calls are no-ops.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(questionsTotal, questionDuration)
	})
}

// RecordQuestion counts one processed question by outcome.
func RecordQuestion(outcome string) {
	questionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveQuestionDuration records the end-to-end latency of one question.
func ObserveQuestionDuration(d time.Duration) {
	questionDuration.Observe(d.Seconds())
}
