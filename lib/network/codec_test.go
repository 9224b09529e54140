package network

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/envelope"
	"boscoin.io/benor/lib/errors"
	"boscoin.io/benor/lib/voting"
)

func TestCodec(t *testing.T) {
	envelopes := []envelope.Envelope{
		envelope.NewProposal(1, voting.Zero),
		envelope.NewVote(1<<40, voting.One),
		envelope.NewVote(3, voting.Unknown),
	}

	for _, name := range []string{common.CodecMsgpack, common.CodecJSON} {
		codec, err := NewCodec(name)
		require.NoError(t, err)
		require.Equal(t, name, codec.Name())

		for _, e := range envelopes {
			b, err := codec.Encode(e)
			require.NoError(t, err)

			decoded, err := codec.Decode(b)
			require.NoError(t, err)
			require.Equal(t, e, decoded, "codec=%s", name)
		}

		_, err = codec.Decode([]byte{0xc1})
		require.Error(t, err)
	}
}

func TestJSONCodecWireFormat(t *testing.T) {
	b, err := JSONCodec{}.Encode(envelope.NewVote(2, voting.Unknown))
	require.NoError(t, err)
	require.JSONEq(t, `{"k": 2, "x": "?", "type": "vote"}`, string(b))
}

func TestNewCodecUnknown(t *testing.T) {
	_, err := NewCodec("protobuf")
	require.True(t, errors.Is(err, errors.InvalidCodec))
}
