package envelope

import (
	"encoding/json"
	"fmt"

	"boscoin.io/benor/lib/voting"
)

type MessageType string

const (
	TypeProposal MessageType = "proposal"
	TypeVote     MessageType = "vote"
)

func (t MessageType) IsValid() bool {
	return t == TypeProposal || t == TypeVote
}

// Envelope is the message exchanged between nodes. Its JSON form,
// `{"k": 1, "x": 0, "type": "proposal"}`, is the wire format of the node
// HTTP API.
type Envelope struct {
	K    uint64       `json:"k" msgpack:"k"`
	X    voting.Value `json:"x" msgpack:"x"`
	Type MessageType  `json:"type" msgpack:"type"`
}

func NewProposal(k uint64, x voting.Value) Envelope {
	return Envelope{K: k, X: x, Type: TypeProposal}
}

func NewVote(k uint64, x voting.Value) Envelope {
	return Envelope{K: k, X: x, Type: TypeVote}
}

func NewEnvelopeFromJSON(b []byte) (e Envelope, err error) {
	err = json.Unmarshal(b, &e)
	return
}

func (e Envelope) Serialize() ([]byte, error) {
	return json.Marshal(e)
}

func (e Envelope) String() string {
	return fmt.Sprintf("%s(k=%d, x=%s)", e.Type, e.K, e.X)
}
