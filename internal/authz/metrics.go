package authz

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	outcomes     *prometheus.CounterVec //nolint:gochecknoglobals
	outcomesOnce sync.Once              //nolint:gochecknoglobals
)

func countOutcome(step, outcome string) {
	outcomesOnce.Do(func() {
		outcomes = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authorization_flow_total",
				Help: "Authorization requests and decisions, by step and outcome.",
			},
			[]string{"step", "outcome"},
		)
	})

	outcomes.WithLabelValues(step, outcome).Inc()
}
