package runner

import (
	"net/http"

	"github.com/gorilla/rpc"
	jsonrpc "github.com/gorilla/rpc/json"

	"boscoin.io/benor/lib/consensus"
	"boscoin.io/benor/lib/errors"
	"boscoin.io/benor/lib/voting"
)

type GetStateArgs struct{}

type GetStateResult consensus.NodeState

type GetTallyArgs struct {
	K uint64 `json:"k"`
}

type GetTallyResult struct {
	K         uint64         `json:"k"`
	Proposals []voting.Value `json:"proposals"`
	Votes     []voting.Value `json:"votes"`
}

type jsonrpcNodeApp struct {
	c *consensus.BenOr
}

func (j *jsonrpcNodeApp) GetState(r *http.Request, args *GetStateArgs, result *GetStateResult) error {
	*result = GetStateResult(j.c.State())
	return nil
}

// GetTally returns the proposals and votes received for one round, in
// arrival order.
func (j *jsonrpcNodeApp) GetTally(r *http.Request, args *GetTallyArgs, result *GetTallyResult) error {
	if args.K < 1 {
		return errors.InvalidRound.Clone().SetData("k", args.K)
	}

	proposals, votes := j.c.Tally(args.K)

	*result = GetTallyResult{
		K:         args.K,
		Proposals: proposals,
		Votes:     votes,
	}
	if result.Proposals == nil {
		result.Proposals = []voting.Value{}
	}
	if result.Votes == nil {
		result.Votes = []voting.Value{}
	}

	return nil
}

type JSONRPCServer struct {
	*rpc.Server
}

func NewJSONRPCServer(c *consensus.BenOr) *JSONRPCServer {
	s := &JSONRPCServer{Server: rpc.NewServer()}
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json")
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json;charset=UTF-8")

	s.RegisterService(&jsonrpcNodeApp{c: c}, "Node")

	return s
}
