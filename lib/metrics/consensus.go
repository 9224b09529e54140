package metrics

import (
	"strconv"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type ConsensusMetrics struct {
	Rounds    metrics.Gauge
	Decided   metrics.Gauge
	Received  metrics.Counter
	CoinFlips metrics.Counter
	Broadcast metrics.Counter
}

func (c *ConsensusMetrics) SetRound(node int, round uint64) {
	c.Rounds.With(LabelNode, strconv.Itoa(node)).Set(float64(round))
}

func (c *ConsensusMetrics) SetDecided(node int, decided bool) {
	var v float64
	if decided {
		v = 1
	}
	c.Decided.With(LabelNode, strconv.Itoa(node)).Set(v)
}

func (c *ConsensusMetrics) AddReceived(node int, messageType string) {
	c.Received.With(LabelNode, strconv.Itoa(node), LabelType, messageType).Add(1)
}

func (c *ConsensusMetrics) AddCoinFlip(node int) {
	c.CoinFlips.With(LabelNode, strconv.Itoa(node)).Add(1)
}

func (c *ConsensusMetrics) AddBroadcast(node int, messageType string) {
	c.Broadcast.With(LabelNode, strconv.Itoa(node), LabelType, messageType).Add(1)
}

func PromConsensusMetrics() *ConsensusMetrics {
	return &ConsensusMetrics{
		Rounds: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: ConsensusSubsystem,
			Name:      "round",
			Help:      "Current round of the node.",
		}, []string{LabelNode}),
		Decided: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: ConsensusSubsystem,
			Name:      "decided",
			Help:      "1 if the node has decided.",
		}, []string{LabelNode}),
		Received: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ConsensusSubsystem,
			Name:      "received_total",
			Help:      "Total number of envelopes tallied.",
		}, []string{LabelNode, LabelType}),
		CoinFlips: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ConsensusSubsystem,
			Name:      "coin_flips_total",
			Help:      "Total number of random tie-breaks.",
		}, []string{LabelNode}),
		Broadcast: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: ConsensusSubsystem,
			Name:      "broadcasts_total",
			Help:      "Total number of broadcasts.",
		}, []string{LabelNode, LabelType}),
	}
}

func NopConsensusMetrics() *ConsensusMetrics {
	return &ConsensusMetrics{
		Rounds:    discard.NewGauge(),
		Decided:   discard.NewGauge(),
		Received:  discard.NewCounter(),
		CoinFlips: discard.NewCounter(),
		Broadcast: discard.NewCounter(),
	}
}
