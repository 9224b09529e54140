package metrics

// InitPrometheusMetrics replaces the nop metrics with prometheus ones; it
// registers the collectors, so it must be called only once.
func InitPrometheusMetrics() {
	Consensus = PromConsensusMetrics()
	API = PromAPIMetrics()
	Network = PromNetworkMetrics()
}
