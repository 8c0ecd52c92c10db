package titan

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	invocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "titan",
			Subsystem: "provider",
			Name:      "invocations_total",
			Help:      "Total number of Bedrock InvokeModel calls",
		},
		[]string{"model", "outcome"},
	)

	invocationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "titan",
			Subsystem: "provider",
			Name:      "invocation_duration_seconds",
			Help:      "Duration of Bedrock InvokeModel calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(invocationsTotal, invocationDuration)
}

func observeInvocation(model string, dur time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	invocationsTotal.WithLabelValues(model, outcome).Inc()
	invocationDuration.WithLabelValues(model).Observe(dur.Seconds())
}
