package consensus

import (
	"encoding/json"

	"boscoin.io/benor/lib/voting"
)

// NodeState is the snapshot of a node. For a faulty node `X`, `Decided`
// and `K` are always nil, which is `null` in JSON.
type NodeState struct {
	Killed  bool          `json:"killed"`
	X       *voting.Value `json:"x"`
	Decided *bool         `json:"decided"`
	K       *uint64       `json:"k"`
}

func (s NodeState) Serialize() ([]byte, error) {
	return json.Marshal(s)
}

func (s NodeState) IsDecided() bool {
	return s.Decided != nil && *s.Decided
}

// state is the mutable record owned by `BenOr`.
type state struct {
	killed  bool
	present bool // false for faulty nodes
	x       voting.Value
	decided bool
	k       uint64
}

func (s state) snapshot() NodeState {
	ns := NodeState{Killed: s.killed}
	if !s.present {
		return ns
	}

	x, decided, k := s.x, s.decided, s.k
	ns.X = &x
	ns.Decided = &decided
	ns.K = &k

	return ns
}
