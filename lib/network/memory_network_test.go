package network

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/envelope"
	"boscoin.io/benor/lib/errors"
	"boscoin.io/benor/lib/voting"
)

type collectingBroker struct {
	sync.Mutex
	received []envelope.Envelope
}

func (c *collectingBroker) Receive(e envelope.Envelope) {
	c.Lock()
	defer c.Unlock()

	c.received = append(c.received, e)
}

func (c *collectingBroker) Received() []envelope.Envelope {
	c.Lock()
	defer c.Unlock()

	return append([]envelope.Envelope{}, c.received...)
}

func (c *collectingBroker) waitFor(t *testing.T, n int) []envelope.Envelope {
	deadline := time.After(5 * time.Second)
	for {
		if received := c.Received(); len(received) >= n {
			return received
		}

		select {
		case <-deadline:
			require.Fail(t, "envelopes not received", "expected %d, received %d", n, len(c.Received()))
			return nil
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func startMemoryNetwork(t *testing.T, n *MemoryNetwork) *collectingBroker {
	broker := &collectingBroker{}
	n.SetMessageBroker(broker)

	go n.Start()
	<-n.Ready()

	return broker
}

func TestMemoryNetworkCreate(t *testing.T) {
	n0 := CreateMemoryNetwork(nil)
	n1 := CreateMemoryNetwork(n0)
	other := CreateMemoryNetwork(nil)

	require.NotEqual(t, n0.Endpoint(), n1.Endpoint())

	_, found := n0.peers.get(n1.Endpoint())
	require.True(t, found)
	_, found = other.peers.get(n1.Endpoint())
	require.False(t, found)
}

func TestMemoryNetworkSend(t *testing.T) {
	for _, name := range []string{common.CodecMsgpack, common.CodecJSON} {
		codec, _ := NewCodec(name)
		networks := CreateMemoryNetworks(2, codec)
		defer networks[0].Stop()
		defer networks[1].Stop()

		broker := startMemoryNetwork(t, networks[1])

		client := networks[0].GetClient(networks[1].Endpoint())
		require.NoError(t, client.SendEnvelope(envelope.NewProposal(1, voting.One)))
		require.NoError(t, client.SendEnvelope(envelope.NewVote(1, voting.Unknown)))

		received := broker.waitFor(t, 2)
		require.Equal(
			t,
			[]envelope.Envelope{envelope.NewProposal(1, voting.One), envelope.NewVote(1, voting.Unknown)},
			received,
		)
	}
}

func TestMemoryNetworkUnknownEndpoint(t *testing.T) {
	n0 := CreateMemoryNetwork(nil)
	n1 := CreateMemoryNetwork(n0)

	err := n0.GetClient(CreateNewMemoryEndpoint()).SendEnvelope(envelope.NewProposal(1, voting.One))
	require.True(t, errors.Is(err, errors.EndpointNotFound))

	n1.Stop()
	err = n0.GetClient(n1.Endpoint()).SendEnvelope(envelope.NewProposal(1, voting.One))
	require.True(t, errors.Is(err, errors.EndpointNotFound))
}

func TestMemoryNetworkStop(t *testing.T) {
	n := CreateMemoryNetwork(nil)

	stopped := make(chan error)
	go func() {
		stopped <- n.Start()
	}()
	<-n.Ready()

	n.Stop()
	select {
	case err := <-stopped:
		require.NoError(t, err)
	case <-time.After(time.Second):
		require.Fail(t, "network did not stop")
	}
}
