package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type NetworkMetrics struct {
	SendFailures metrics.Counter
}

func PromNetworkMetrics() *NetworkMetrics {
	return &NetworkMetrics{
		SendFailures: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: NetworkSubsystem,
			Name:      "send_failures_total",
			Help:      "Total number of envelopes which could not be delivered.",
		}, []string{LabelNode}),
	}
}

func NopNetworkMetrics() *NetworkMetrics {
	return &NetworkMetrics{
		SendFailures: discard.NewCounter(),
	}
}
