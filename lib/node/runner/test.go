package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/consensus"
	"boscoin.io/benor/lib/network"
	"boscoin.io/benor/lib/voting"
)

type openGate struct{}

var openedGate = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

func (openGate) Ready() <-chan struct{} {
	return openedGate
}

// MakeHTTP2NodeRunner starts node 0 of `n` nodes on a free port; the other
// nodes are not reachable.
func MakeHTTP2NodeRunner(t *testing.T, n, f int, faulty bool, initial voting.Value, gate consensus.ReadinessGate) *NodeRunner {
	return MakeHTTP2NodeRunnerWithConfig(t, common.NewConfig(), n, f, faulty, initial, gate)
}

func MakeHTTP2NodeRunnerWithConfig(t *testing.T, conf common.Config, n, f int, faulty bool, initial voting.Value, gate consensus.ReadinessGate) *NodeRunner {
	policy, err := voting.NewThresholdPolicy(n, f)
	require.NoError(t, err)

	h2n := network.NewHTTP2Network(network.NewHTTP2NetworkConfig("n0", "127.0.0.1", 0))
	require.NoError(t, h2n.Listen())

	clients := []network.NetworkClient{h2n.GetClient(h2n.Endpoint(), 1, time.Second)}
	for i := 1; i < n; i++ {
		clients = append(clients, h2n.GetClient("http://127.0.0.1:1", 1, 100*time.Millisecond))
	}
	cm := network.NewConnectionManager(0, clients)

	bo, err := consensus.NewBenOr(0, policy, faulty, initial, consensus.CryptoCoin{}, cm)
	require.NoError(t, err)

	if gate == nil {
		gate = openGate{}
	}

	nr := NewNodeRunner(h2n, bo, cm, gate, conf)
	go nr.Start()

	select {
	case <-h2n.Ready():
	case <-time.After(5 * time.Second):
		require.Fail(t, "node runner is not ready")
	}

	return nr
}
