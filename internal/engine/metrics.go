package engine

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration     *prometheus.HistogramVec //nolint:gochecknoglobals
	requestDurationOnce sync.Once                //nolint:gochecknoglobals
)

func observe(endpoint, outcome string, started time.Time) {
	requestDurationOnce.Do(func() {
		requestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "engine_request_duration_seconds",
				Help:    "Duration of authorization engine API calls, by endpoint and outcome.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "outcome"},
		)
	})

	requestDuration.WithLabelValues(endpoint, outcome).Observe(time.Since(started).Seconds())
}
