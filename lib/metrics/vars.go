package metrics

var (
	Consensus = NopConsensusMetrics()
	API       = NopAPIMetrics()
	Network   = NopNetworkMetrics()
)
