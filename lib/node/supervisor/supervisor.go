package supervisor

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	logging "github.com/inconshreveable/log15"
	"golang.org/x/sync/errgroup"

	"boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/common/observer"
	"boscoin.io/benor/lib/consensus"
	"boscoin.io/benor/lib/errors"
	"boscoin.io/benor/lib/network"
	"boscoin.io/benor/lib/node/runner"
	"boscoin.io/benor/lib/voting"
)

// Supervisor launches the nodes of one simulation, starts the consensus on
// all of them and watches their decisions.
type Supervisor struct {
	sync.Mutex

	conf    common.Config
	policy  *voting.ThresholdPolicy
	faulty  map[int]bool
	values  []voting.Value
	runID   string
	barrier *ReadinessBarrier
	runners []*runner.NodeRunner

	adminClients *lru.Cache

	decisions map[int]voting.Value
	changed   chan struct{}
	onDecided func(...interface{})

	started bool
	stopped bool
	closed  bool
	wg      sync.WaitGroup

	log logging.Logger
}

// NewSupervisor creates the nodes. `values` has either one initial value per
// node, the values of faulty nodes being ignored, or one per live node in
// index order; without values every live node draws its initial value from
// its coin.
func NewSupervisor(conf common.Config, faultyNodes []int, values []voting.Value) (*Supervisor, error) {
	policy, err := voting.NewThresholdPolicy(conf.Nodes, conf.Faulty)
	if err != nil {
		return nil, err
	}

	faulty := map[int]bool{}
	for _, i := range faultyNodes {
		if i < 0 || i >= policy.Validators() {
			return nil, errors.InvalidNodeIndex.Clone().SetData("index", i)
		}
		faulty[i] = true
	}
	if len(faulty) > policy.Faulty() {
		return nil, errors.InvalidFaultyNodes.Clone().
			SetData("faulty", len(faulty)).
			SetData("tolerated", policy.Faulty())
	}

	s := &Supervisor{
		conf:      conf,
		policy:    policy,
		faulty:    faulty,
		runID:     common.GetUniqueIDFromDate(),
		barrier:   NewReadinessBarrier(policy.Validators()),
		decisions: map[int]voting.Value{},
		changed:   make(chan struct{}),
	}
	s.log = log.New(logging.Ctx{"run": s.runID})

	s.adminClients, err = lru.NewWithEvict(policy.Validators(), func(_, v interface{}) {
		v.(*network.HTTP2NetworkClient).Close()
	})
	if err != nil {
		return nil, err
	}

	coins := make([]consensus.Coin, policy.Validators())
	for i := range coins {
		if coins[i], err = consensus.NewCoin(conf.Coin, conf.CoinSeed, i); err != nil {
			return nil, err
		}
	}

	if s.values, err = s.initialValues(values, coins); err != nil {
		return nil, err
	}

	var networks []network.Network
	var clients [][]network.NetworkClient
	switch conf.Transport {
	case common.TransportMemory, "":
		networks, clients, err = s.memoryNetworks()
	case common.TransportHTTP:
		networks, clients, err = s.http2Networks()
	default:
		err = errors.InvalidTransport.Clone().SetData("transport", conf.Transport)
	}
	if err != nil {
		return nil, err
	}

	for i := 0; i < policy.Validators(); i++ {
		cm := network.NewConnectionManager(i, clients[i])

		bo, err := consensus.NewBenOr(i, policy, s.faulty[i], s.values[i], coins[i], cm)
		if err != nil {
			return nil, err
		}
		bo.SetDecisionEvent(observer.DecisionEvent(s.runID))

		s.runners = append(s.runners, runner.NewNodeRunner(networks[i], bo, cm, s.barrier, conf))
	}

	s.onDecided = func(args ...interface{}) {
		s.markDecided(args[0].(int), args[1].(voting.Value))
	}
	observer.DecisionObserver.On(observer.DecisionEvent(s.runID), s.onDecided)

	s.log.Debug(
		"supervisor created",
		"policy", policy,
		"faulty", faultyNodes,
		"values", s.values,
		"transport", conf.Transport,
	)

	return s, nil
}

func (s *Supervisor) initialValues(values []voting.Value, coins []consensus.Coin) ([]voting.Value, error) {
	n := s.policy.Validators()
	live := n - len(s.faulty)

	initial := make([]voting.Value, n)
	switch len(values) {
	case 0:
		for i := range initial {
			if !s.faulty[i] {
				initial[i] = coins[i].Flip()
			}
		}
	case n:
		copy(initial, values)
	case live:
		var j int
		for i := range initial {
			if s.faulty[i] {
				continue
			}
			initial[i] = values[j]
			j++
		}
	default:
		return nil, errors.InvalidInitialValue.Clone().
			SetData("values", len(values)).
			SetData("nodes", n)
	}

	for i, x := range initial {
		if s.faulty[i] {
			initial[i] = voting.Unknown
		} else if !x.IsBinary() {
			return nil, errors.InvalidInitialValue.Clone().SetData("index", i)
		}
	}

	return initial, nil
}

func (s *Supervisor) memoryNetworks() ([]network.Network, [][]network.NetworkClient, error) {
	codec, err := network.NewCodec(s.conf.Codec)
	if err != nil {
		return nil, nil, err
	}

	memoryNetworks := network.CreateMemoryNetworks(s.policy.Validators(), codec)

	networks := make([]network.Network, len(memoryNetworks))
	clients := make([][]network.NetworkClient, len(memoryNetworks))
	for i, from := range memoryNetworks {
		networks[i] = from
		for _, to := range memoryNetworks {
			clients[i] = append(clients[i], from.GetClient(to.Endpoint()))
		}
	}

	return networks, clients, nil
}

// http2Networks binds the node `i` to `BaseNodePort + i`; with base port 0
// every node gets a free port.
func (s *Supervisor) http2Networks() ([]network.Network, [][]network.NetworkClient, error) {
	n := s.policy.Validators()

	h2ns := make([]*network.HTTP2Network, n)
	for i := range h2ns {
		port := 0
		if s.conf.BaseNodePort > 0 {
			port = s.conf.BaseNodePort + i
		}

		h2ns[i] = network.NewHTTP2Network(network.NewHTTP2NetworkConfig(fmt.Sprintf("n%d", i), s.conf.Host, port))
		if err := h2ns[i].Listen(); err != nil {
			for _, h2n := range h2ns[:i] {
				h2n.Stop()
			}
			return nil, nil, err
		}
	}

	networks := make([]network.Network, n)
	clients := make([][]network.NetworkClient, n)
	for i, from := range h2ns {
		networks[i] = from
		for _, to := range h2ns {
			clients[i] = append(clients[i], from.GetClient(to.Endpoint(), s.conf.SendAttempts, s.conf.SendTimeout))
		}
	}

	return networks, clients, nil
}

func (s *Supervisor) RunID() string {
	return s.runID
}

func (s *Supervisor) Policy() *voting.ThresholdPolicy {
	return s.policy
}

func (s *Supervisor) Barrier() *ReadinessBarrier {
	return s.barrier
}

func (s *Supervisor) Runners() []*runner.NodeRunner {
	return s.runners
}

func (s *Supervisor) InitialValues() []voting.Value {
	return append([]voting.Value{}, s.values...)
}

func (s *Supervisor) IsFaulty(index int) bool {
	return s.faulty[index]
}

// Start launches the nodes; every node is marked ready once its network is
// up.
func (s *Supervisor) Start() error {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return errors.SupervisorClosed
	}
	if s.started {
		return errors.SupervisorAlreadyStarted
	}
	s.started = true

	for _, nr := range s.runners {
		s.wg.Add(1)
		go func(nr *runner.NodeRunner) {
			defer s.wg.Done()

			if err := nr.Start(); err != nil {
				nr.Log().Error("node runner stopped with error", "error", err)
			}
		}(nr)

		go func(nr *runner.NodeRunner) {
			<-nr.Network().Ready()
			s.barrier.MarkReady(nr.Index())
			nr.Log().Debug("node is ready", "ready", s.barrier.CountReady())
		}(nr)
	}

	return nil
}

// StartAll starts the consensus of every node at once. Over HTTP the nodes
// are started through their `/start` route.
func (s *Supervisor) StartAll(ctx context.Context) error {
	if err := s.Start(); err != nil && err != errors.SupervisorAlreadyStarted {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, nr := range s.runners {
		nr := nr
		g.Go(func() error {
			if s.conf.Transport == common.TransportHTTP {
				_, err := s.adminGet(nr, network.UrlPathStart)
				return err
			}

			return nr.StartConsensus(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.log.Debug("consensus started on every node")

	return nil
}

// adminGet requests the admin route of the node; the clients are kept
// until the supervisor is closed.
func (s *Supervisor) adminGet(nr *runner.NodeRunner, path string) ([]byte, error) {
	endpoint := nr.Network().Endpoint()

	v, found := s.adminClients.Get(endpoint)
	if !found {
		client := network.NewHTTP2NetworkClient(endpoint, nil)
		if exists, _ := s.adminClients.ContainsOrAdd(endpoint, client); exists {
			client.Close()
			v, _ = s.adminClients.Get(endpoint)
		} else {
			v = client
		}
	}

	return v.(*network.HTTP2NetworkClient).Get(path)
}

func (s *Supervisor) markDecided(index int, x voting.Value) {
	s.Lock()
	defer s.Unlock()

	s.decisions[index] = x
	close(s.changed)
	s.changed = make(chan struct{})

	s.log.Debug("node decided", "node", index, "x", x, "decided", len(s.decisions))
}

// AllDecided checks whether every live node decided.
func (s *Supervisor) AllDecided() bool {
	for _, nr := range s.runners {
		if s.faulty[nr.Index()] {
			continue
		}
		if !nr.Consensus().State().IsDecided() {
			return false
		}
	}

	return true
}

// WaitDecided blocks until every live node decided or ctx is done.
func (s *Supervisor) WaitDecided(ctx context.Context) error {
	for {
		s.Lock()
		changed := s.changed
		s.Unlock()

		if s.AllDecided() {
			return nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Decisions returns the decided value of every node which decided so far.
func (s *Supervisor) Decisions() map[int]voting.Value {
	s.Lock()
	defer s.Unlock()

	decisions := map[int]voting.Value{}
	for i, x := range s.decisions {
		decisions[i] = x
	}

	return decisions
}

func (s *Supervisor) States() []consensus.NodeState {
	states := make([]consensus.NodeState, len(s.runners))
	for i, nr := range s.runners {
		states[i] = nr.Consensus().State()
	}

	return states
}

// StopAll kills every node; the networks keep running, so the states can
// still be queried.
func (s *Supervisor) StopAll() {
	s.Lock()
	if s.stopped {
		s.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	s.Unlock()

	for _, nr := range s.runners {
		if started && s.conf.Transport == common.TransportHTTP {
			if _, err := s.adminGet(nr, network.UrlPathStop); err == nil {
				continue
			} else {
				nr.Log().Debug("failed to stop node through http", "error", err)
			}
		}
		nr.Consensus().Stop()
	}

	s.log.Debug("every node killed")
}

// Close kills the nodes and shuts down their networks.
func (s *Supervisor) Close() {
	s.StopAll()

	s.Lock()
	if s.closed {
		s.Unlock()
		return
	}
	s.closed = true
	s.Unlock()

	observer.DecisionObserver.Off(observer.DecisionEvent(s.runID), s.onDecided)

	for _, nr := range s.runners {
		nr.Stop()
	}
	s.wg.Wait()
	s.adminClients.Purge()

	s.log.Debug("supervisor closed")
}
