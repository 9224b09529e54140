package consensus

import (
	"context"
	"sync"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/common/observer"
	"boscoin.io/benor/lib/envelope"
	"boscoin.io/benor/lib/errors"
	"boscoin.io/benor/lib/metrics"
	"boscoin.io/benor/lib/voting"
)

// Broadcaster delivers envelopes to node indexes. `Send` is best-effort
// and must not wait for the target to process the envelope: `BenOr`
// calls it while holding its lock.
type Broadcaster interface {
	Send(target int, e envelope.Envelope)
}

// ReadinessGate is closed once every participant is up.
type ReadinessGate interface {
	Ready() <-chan struct{}
}

type Status string

const (
	StatusLive   Status = "live"
	StatusFaulty Status = "faulty"
)

var DefaultHandleProposalCheckerFuncs = []common.CheckerFunc{
	EnvelopeRecord,
	QuorumReached,
	VoteBroadcast,
}

var DefaultHandleVoteCheckerFuncs = []common.CheckerFunc{
	EnvelopeRecord,
	QuorumReached,
	VoteDecide,
	NextRoundBroadcast,
}

// BenOr is the consensus state machine of one node. A faulty node never
// participates: it ignores `Start` and every envelope.
type BenOr struct {
	sync.Mutex

	index       int
	policy      *voting.ThresholdPolicy
	faulty      bool
	initial     voting.Value
	coin        Coin
	broadcaster Broadcaster
	log         logging.Logger

	state   state
	tally   *RoundTally
	started bool

	decisionEvent string

	handleProposalCheckerFuncs []common.CheckerFunc
	handleVoteCheckerFuncs     []common.CheckerFunc
}

func NewBenOr(index int, policy *voting.ThresholdPolicy, faulty bool, initial voting.Value, coin Coin, b Broadcaster) (*BenOr, error) {
	if index < 0 || index >= policy.Validators() {
		return nil, errors.InvalidNodeIndex.Clone().SetData("index", index)
	}
	if !faulty && !initial.IsBinary() {
		return nil, errors.InvalidInitialValue.Clone().SetData("x", initial.String())
	}

	bo := &BenOr{
		index:       index,
		policy:      policy,
		faulty:      faulty,
		initial:     initial,
		coin:        coin,
		broadcaster: b,
		log:         log.New(common.NodeContext(index)),
		tally:       NewRoundTally(),

		handleProposalCheckerFuncs: DefaultHandleProposalCheckerFuncs,
		handleVoteCheckerFuncs:     DefaultHandleVoteCheckerFuncs,
	}

	if !faulty {
		bo.state = state{present: true, x: initial}
	}

	return bo, nil
}

func (bo *BenOr) Index() int {
	return bo.index
}

func (bo *BenOr) Policy() *voting.ThresholdPolicy {
	return bo.policy
}

func (bo *BenOr) IsFaulty() bool {
	return bo.faulty
}

func (bo *BenOr) Log() logging.Logger {
	return bo.log
}

// SetDecisionEvent makes the node trigger `event` on
// `observer.DecisionObserver` when it decides.
func (bo *BenOr) SetDecisionEvent(event string) {
	bo.Lock()
	defer bo.Unlock()

	bo.decisionEvent = event
}

// Status never changes during the life of the node.
func (bo *BenOr) Status() Status {
	if bo.faulty {
		return StatusFaulty
	}

	return StatusLive
}

// Start waits for the gate and then proposes the initial value for round 1.
// A faulty node does nothing. A node which already decided or moved to a
// later round keeps its state.
func (bo *BenOr) Start(ctx context.Context, gate ReadinessGate) error {
	select {
	case <-gate.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}

	if bo.faulty {
		bo.log.Debug("faulty node does not start")
		return nil
	}

	bo.Lock()
	defer bo.Unlock()

	if bo.state.killed {
		return errors.NodeIsKilled
	}
	if bo.started {
		return errors.AlreadyStarted
	}
	bo.started = true

	// the envelopes of the peers which started earlier may already have
	// moved the node forward; a decision or a later round is kept and the
	// round 1 proposal carries the current value.
	if !bo.state.decided && bo.state.k < 1 {
		bo.state.x = bo.initial
	}
	if bo.state.k < 1 {
		bo.state.k = 1
	}
	metrics.Consensus.SetRound(bo.index, bo.state.k)
	metrics.Consensus.SetDecided(bo.index, bo.state.decided)

	bo.log.Debug("consensus started", "x", bo.state.x, "k", bo.state.k, "decided", bo.state.decided)
	bo.broadcast(envelope.NewProposal(1, bo.state.x))

	return nil
}

// Stop kills the node; every envelope received after is ignored.
func (bo *BenOr) Stop() {
	bo.Lock()
	defer bo.Unlock()

	if !bo.state.killed {
		bo.log.Debug("node killed")
	}
	bo.state.killed = true
}

func (bo *BenOr) State() NodeState {
	bo.Lock()
	defer bo.Unlock()

	return bo.state.snapshot()
}

// Tally returns copies of the proposals and votes recorded for round k.
func (bo *BenOr) Tally(k uint64) (proposals, votes []voting.Value) {
	bo.Lock()
	defer bo.Unlock()

	return bo.tally.Get(envelope.TypeProposal, k), bo.tally.Get(envelope.TypeVote, k)
}

// Receive handles one envelope. Recording the value, checking the quorum
// and broadcasting are done under the node lock, so a quorum is acted on
// exactly once.
func (bo *BenOr) Receive(e envelope.Envelope) {
	if bo.faulty {
		return
	}

	bo.Lock()
	defer bo.Unlock()

	if bo.state.killed {
		return
	}

	var funcs []common.CheckerFunc
	switch e.Type {
	case envelope.TypeProposal:
		funcs = bo.handleProposalCheckerFuncs
	case envelope.TypeVote:
		funcs = bo.handleVoteCheckerFuncs
	default:
		bo.log.Debug("unknown message type; ignored", "envelope", e)
		return
	}

	checker := &MessageChecker{
		DefaultChecker: common.DefaultChecker{Funcs: funcs},
		BenOr:          bo,
		Envelope:       e,
		Log:            bo.log.New(logging.Ctx{"type": e.Type, "k": e.K, "x": e.X}),
	}

	if err := common.RunChecker(checker, common.DefaultDeferFunc); err != nil {
		if common.IsCheckerStop(err) {
			return
		}
		checker.Log.Error("failed to handle envelope", "error", err)
	}
}

// broadcast sends e to every node including itself; must be called with
// the lock held.
func (bo *BenOr) broadcast(e envelope.Envelope) {
	metrics.Consensus.AddBroadcast(bo.index, string(e.Type))

	for i := 0; i < bo.policy.Validators(); i++ {
		bo.broadcaster.Send(i, e)
	}
}

func (bo *BenOr) flip() voting.Value {
	metrics.Consensus.AddCoinFlip(bo.index)
	return bo.coin.Flip()
}

// decide must be called with the lock held.
func (bo *BenOr) decide(x voting.Value) {
	bo.state.x = x
	bo.state.decided = true
	metrics.Consensus.SetDecided(bo.index, true)

	if len(bo.decisionEvent) > 0 {
		go observer.DecisionObserver.Trigger(bo.decisionEvent, bo.index, x)
	}
}
