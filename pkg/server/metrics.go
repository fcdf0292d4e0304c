package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "issvg_checks_total",
			Help: "Checked uploads by verdict",
		},
		[]string{"verdict"},
	)

	checkDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "issvg_check_duration_seconds",
			Help:    "Time spent classifying one upload",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
	)

	checkBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "issvg_check_bytes",
			Help:    "Size of checked uploads",
			Buckets: prometheus.ExponentialBuckets(256, 4, 10),
		},
	)
)

const (
	verdictSVG      = "svg"
	verdictNotSVG   = "not_svg"
	verdictTooLarge = "too_large"
)
