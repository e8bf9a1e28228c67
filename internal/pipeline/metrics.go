package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TranscriptsProcessed counts pipeline runs by final recommendation.
	TranscriptsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "transcriptd",
			Subsystem: "pipeline",
			Name:      "transcripts_processed_total",
			Help:      "Total transcripts processed by final recommendation",
		},
		[]string{"recommendation"},
	)

	// QualityScores tracks the distribution of final quality scores.
	QualityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "transcriptd",
			Subsystem: "pipeline",
			Name:      "quality_score",
			Help:      "Final quality scores of processed transcripts",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		},
	)

	// ProcessingDuration tracks end-to-end pipeline latency.
	ProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "transcriptd",
			Subsystem: "pipeline",
			Name:      "processing_duration_seconds",
			Help:      "End-to-end transcript processing duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// ProcessingErrors counts runs that failed before a row was saved.
	ProcessingErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "transcriptd",
			Subsystem: "pipeline",
			Name:      "errors_total",
			Help:      "Total pipeline runs that failed",
		},
	)
)
