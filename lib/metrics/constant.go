package metrics

const (
	Namespace          = "benor"
	ConsensusSubsystem = "consensus"
	APISubsystem       = "api"
	NetworkSubsystem   = "network"
)

const (
	LabelNode     = "node"
	LabelType     = "type"
	LabelEndpoint = "endpoint"
	LabelMethod   = "method"
	LabelStatus   = "status"
)
