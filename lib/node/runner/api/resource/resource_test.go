package resource

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/benor/lib/consensus"
	"boscoin.io/benor/lib/envelope"
	"boscoin.io/benor/lib/voting"
)

type nopBroadcaster struct{}

func (nopBroadcaster) Send(int, envelope.Envelope) {}

func TestResourceNodeInfo(t *testing.T) {
	policy, err := voting.NewThresholdPolicy(4, 1)
	require.NoError(t, err)

	bo, err := consensus.NewBenOr(2, policy, false, voting.One, consensus.CryptoCoin{}, nopBroadcaster{})
	require.NoError(t, err)

	b, err := json.Marshal(NewNodeInfo(bo, "memory://n2").Resource())
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))

	require.Equal(t, float64(2), m["index"])
	require.Equal(t, "memory://n2", m["endpoint"])
	require.Equal(t, "live", m["status"])

	state := m["state"].(map[string]interface{})
	require.Equal(t, false, state["killed"])
	require.Equal(t, float64(1), state["x"])

	links := m["_links"].(map[string]interface{})
	require.Equal(t, URLNode, links["self"].(map[string]interface{})["href"])
	require.Equal(t, URLState, links["state"].(map[string]interface{})["href"])
	require.Equal(t, URLTally, links["tally"].(map[string]interface{})["href"])
	require.Equal(t, true, links["tally"].(map[string]interface{})["templated"])
}

func TestResourceTally(t *testing.T) {
	{
		b, err := json.Marshal(NewTally(1, []voting.Value{voting.Zero, voting.Unknown}, nil).Resource())
		require.NoError(t, err)

		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(b, &m))

		require.Equal(t, float64(1), m["k"])
		require.Equal(t, []interface{}{float64(0), "?"}, m["proposals"])
		require.Equal(t, []interface{}{}, m["votes"])

		links := m["_links"].(map[string]interface{})
		require.Equal(t, "/tally/1", links["self"].(map[string]interface{})["href"])
		require.Equal(t, "/tally/2", links["next"].(map[string]interface{})["href"])
		require.Nil(t, links["prev"])
	}

	{
		b, err := json.Marshal(NewTally(3, nil, nil).Resource())
		require.NoError(t, err)

		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(b, &m))

		links := m["_links"].(map[string]interface{})
		require.Equal(t, "/tally/2", links["prev"].(map[string]interface{})["href"])
	}
}
