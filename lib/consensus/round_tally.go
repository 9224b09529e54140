package consensus

import (
	"sort"

	"boscoin.io/benor/lib/envelope"
	"boscoin.io/benor/lib/voting"
)

type RoundTallyResult map[ /* round */ uint64][]voting.Value

// RoundTally keeps the received values of each round in arrival order,
// one list for proposals and one for votes. Nothing is ever removed and
// the same sender is not deduplicated; envelopes do not carry the sender.
type RoundTally struct {
	proposals RoundTallyResult
	votes     RoundTallyResult
}

func NewRoundTally() *RoundTally {
	return &RoundTally{
		proposals: RoundTallyResult{},
		votes:     RoundTallyResult{},
	}
}

func (rt *RoundTally) getResult(messageType envelope.MessageType) RoundTallyResult {
	switch messageType {
	case envelope.TypeProposal:
		return rt.proposals
	case envelope.TypeVote:
		return rt.votes
	}

	return nil
}

// Append records x for round k and returns the number of values recorded
// for that round so far.
func (rt *RoundTally) Append(messageType envelope.MessageType, k uint64, x voting.Value) int {
	result := rt.getResult(messageType)
	if result == nil {
		return 0
	}

	result[k] = append(result[k], x)

	return len(result[k])
}

func (rt *RoundTally) Len(messageType envelope.MessageType, k uint64) int {
	return len(rt.getResult(messageType)[k])
}

// Get returns a copy of the values recorded for round k.
func (rt *RoundTally) Get(messageType envelope.MessageType, k uint64) []voting.Value {
	xs := rt.getResult(messageType)[k]
	if xs == nil {
		return nil
	}

	return append([]voting.Value(nil), xs...)
}

// Rounds returns the rounds with at least one recorded value, ascending.
func (rt *RoundTally) Rounds(messageType envelope.MessageType) []uint64 {
	result := rt.getResult(messageType)

	rounds := make([]uint64, 0, len(result))
	for k := range result {
		rounds = append(rounds, k)
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i] < rounds[j] })

	return rounds
}
