package consensus

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/envelope"
	"boscoin.io/benor/lib/metrics"
	"boscoin.io/benor/lib/voting"
)

// MessageChecker carries one envelope through the checker funcs of its
// message type. The funcs run with the `BenOr` lock held.
type MessageChecker struct {
	common.DefaultChecker

	BenOr    *BenOr
	Envelope envelope.Envelope
	Count    int
	Values   []voting.Value

	Log logging.Logger
}

// EnvelopeRecord appends the value of the envelope to the tally of its
// round.
func EnvelopeRecord(c common.Checker, args ...interface{}) error {
	checker := c.(*MessageChecker)
	bo := checker.BenOr

	checker.Count = bo.tally.Append(checker.Envelope.Type, checker.Envelope.K, checker.Envelope.X)
	metrics.Consensus.AddReceived(bo.index, string(checker.Envelope.Type))

	return nil
}

// QuorumReached lets the chain go on only for the envelope which makes the
// tally of the round reach `N - F`; the envelopes after it are recorded
// and nothing else.
func QuorumReached(c common.Checker, args ...interface{}) error {
	checker := c.(*MessageChecker)
	bo := checker.BenOr

	if checker.Count != bo.policy.Quorum() {
		return common.NewCheckerStop("quorum not reached")
	}

	checker.Values = bo.tally.Get(checker.Envelope.Type, checker.Envelope.K)
	checker.Log.Debug("quorum reached", "values", checker.Values)

	return nil
}

// VoteBroadcast votes for the most common proposal of the round, or for a
// random value if there is none.
func VoteBroadcast(c common.Checker, args ...interface{}) error {
	checker := c.(*MessageChecker)
	bo := checker.BenOr

	tieBreaker, found := voting.MostCommon(checker.Values)
	if !found {
		tieBreaker = bo.flip()
		checker.Log.Debug("proposals are tied; coin flipped", "tie-breaker", tieBreaker)
	}

	bo.broadcast(envelope.NewVote(checker.Envelope.K, tieBreaker))

	return nil
}

// VoteDecide decides when `F + 1` votes agree, zero first.
func VoteDecide(c common.Checker, args ...interface{}) error {
	checker := c.(*MessageChecker)
	bo := checker.BenOr

	zero, one := voting.Count(checker.Values)

	var x voting.Value
	if zero >= bo.policy.Decision() {
		x = voting.Zero
	} else if one >= bo.policy.Decision() {
		x = voting.One
	} else {
		return nil
	}

	if bo.state.decided {
		if x != bo.state.x {
			checker.Log.Error("votes reached another decision; ignored", "decided", bo.state.x, "votes", x)
		}
		return common.NewCheckerStop("already decided")
	}

	bo.decide(x)
	checker.Log.Info("decided", "decision", x, "zero", zero, "one", one)

	return common.NewCheckerStop("decided")
}

// NextRoundBroadcast proposes for the next round the most common vote, or
// a random value if there is none. A decided node keeps proposing its
// decision, and the round counter never goes backward.
func NextRoundBroadcast(c common.Checker, args ...interface{}) error {
	checker := c.(*MessageChecker)
	bo := checker.BenOr

	next := checker.Envelope.K + 1

	var nextX voting.Value
	if bo.state.decided {
		nextX = bo.state.x
	} else {
		var found bool
		if nextX, found = voting.MostCommon(checker.Values); !found {
			nextX = bo.flip()
			checker.Log.Debug("votes are tied; coin flipped", "next-x", nextX)
		}
	}

	if next > bo.state.k {
		bo.state.k = next
		bo.state.x = nextX
		metrics.Consensus.SetRound(bo.index, next)
	} else {
		checker.Log.Debug("round already passed", "current", bo.state.k)
	}

	checker.Log.Debug("moves to next round", "next", next, "next-x", nextX)
	bo.broadcast(envelope.NewProposal(next, nextX))

	return nil
}
