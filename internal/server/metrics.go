package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parkfee_runs_total",
		Help: "Completed optimization runs by outcome.",
	}, []string{"outcome"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "parkfee_run_duration_seconds",
		Help:    "Wall-clock duration of optimization runs.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	frontSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "parkfee_front_size",
		Help:    "Number of Pareto-optimal scenarios per run.",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})
)
