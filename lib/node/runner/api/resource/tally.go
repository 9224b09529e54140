package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/benor/lib/voting"
)

// Tally is the proposals and votes a node recorded for one round, in
// arrival order.
type Tally struct {
	K         uint64
	Proposals []voting.Value
	Votes     []voting.Value
}

func NewTally(k uint64, proposals, votes []voting.Value) *Tally {
	if proposals == nil {
		proposals = []voting.Value{}
	}
	if votes == nil {
		votes = []voting.Value{}
	}

	return &Tally{K: k, Proposals: proposals, Votes: votes}
}

func (t Tally) GetMap() hal.Entry {
	return hal.Entry{
		"k":         t.K,
		"proposals": t.Proposals,
		"votes":     t.Votes,
	}
}

func (t Tally) Resource() *hal.Resource {
	r := hal.NewResource(t, t.LinkSelf())
	if t.K > 1 {
		r.AddNewLink("prev", tallyURL(t.K-1))
	}
	r.AddNewLink("next", tallyURL(t.K+1))

	return r
}

func (t Tally) LinkSelf() string {
	return tallyURL(t.K)
}

func tallyURL(k uint64) string {
	return strings.Replace(URLTally, "{k}", strconv.FormatUint(k, 10), -1)
}
