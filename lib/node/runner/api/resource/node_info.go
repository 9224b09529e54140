package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/benor/lib/consensus"
	"boscoin.io/benor/lib/voting"
)

// NodeInfo describes one node and links to its routes.
type NodeInfo struct {
	Index    int
	Endpoint string
	Status   consensus.Status
	Policy   *voting.ThresholdPolicy
	State    consensus.NodeState
}

func NewNodeInfo(bo *consensus.BenOr, endpoint string) *NodeInfo {
	return &NodeInfo{
		Index:    bo.Index(),
		Endpoint: endpoint,
		Status:   bo.Status(),
		Policy:   bo.Policy(),
		State:    bo.State(),
	}
}

func (n NodeInfo) GetMap() hal.Entry {
	return hal.Entry{
		"index":    n.Index,
		"endpoint": n.Endpoint,
		"status":   n.Status,
		"policy":   n.Policy,
		"state":    n.State,
	}
}

func (n NodeInfo) Resource() *hal.Resource {
	r := hal.NewResource(n, n.LinkSelf())
	r.AddNewLink("state", URLState)
	r.AddNewLink("status", URLStatus)
	r.AddLink("tally", hal.NewLink(URLTally, hal.LinkAttr{"templated": true}))
	r.AddNewLink("metrics", URLMetrics)
	r.AddNewLink("jsonrpc", URLJSONRPC)

	return r
}

func (n NodeInfo) LinkSelf() string {
	return URLNode
}
