package resource

const (
	URLNode     = "/"
	URLState    = "/getState"
	URLStatus   = "/status"
	URLTally    = "/tally/{k}"
	URLMetrics  = "/metrics"
	URLJSONRPC  = "/jsonrpc"
	URLMessage  = "/message"
	URLStartCmd = "/start"
	URLStopCmd  = "/stop"
)
