package consensus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/benor/lib/envelope"
	"boscoin.io/benor/lib/voting"
)

func TestRoundTallyAppend(t *testing.T) {
	rt := NewRoundTally()

	require.Equal(t, 1, rt.Append(envelope.TypeProposal, 1, voting.One))
	require.Equal(t, 2, rt.Append(envelope.TypeProposal, 1, voting.One))
	require.Equal(t, 1, rt.Append(envelope.TypeVote, 1, voting.Zero))
	require.Equal(t, 1, rt.Append(envelope.TypeProposal, 3, voting.Unknown))

	require.Equal(t, []voting.Value{voting.One, voting.One}, rt.Get(envelope.TypeProposal, 1))
	require.Equal(t, []voting.Value{voting.Zero}, rt.Get(envelope.TypeVote, 1))
	require.Nil(t, rt.Get(envelope.TypeVote, 2))
	require.Equal(t, []uint64{1, 3}, rt.Rounds(envelope.TypeProposal))
	require.Equal(t, 2, rt.Len(envelope.TypeProposal, 1))

	require.Equal(t, 0, rt.Append(envelope.MessageType("decide"), 1, voting.One))
}

func TestRoundTallyGetIsCopy(t *testing.T) {
	rt := NewRoundTally()
	rt.Append(envelope.TypeVote, 1, voting.One)

	xs := rt.Get(envelope.TypeVote, 1)
	xs[0] = voting.Zero

	require.Equal(t, []voting.Value{voting.One}, rt.Get(envelope.TypeVote, 1))
}
