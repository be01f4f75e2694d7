package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docoutline_runs_total",
		Help: "Outline runs by source format and result",
	}, []string{"format", "result"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "docoutline_run_duration_seconds",
		Help:    "Time to convert, read and outline one document",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"format"})

	outlineBlocks = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "docoutline_blocks",
		Help:    "Blocks per outlined document",
		Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000, 10000},
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "docoutline_queue_depth",
		Help: "Jobs waiting for a worker",
	})
)
