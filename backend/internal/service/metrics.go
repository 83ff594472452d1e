package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK      = "ok"
	resultInvalid = "invalid"
	resultFailed  = "failed"
)

var (
	reseedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "topics_reseed_total",
			Help: "Reseed attempts by result",
		},
		[]string{"result"},
	)

	reseedDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "topics_reseed_duration_seconds",
			Help:    "Duration of successful reseeds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	seededTopics = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "topics_seeded_topics",
		Help: "Topics written by the last successful reseed",
	})

	seededPosts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "topics_seeded_posts",
		Help: "Posts written by the last successful reseed",
	})
)
