package runner

import (
	"io/ioutil"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boscoin.io/benor/lib/consensus"
	"boscoin.io/benor/lib/envelope"
	"boscoin.io/benor/lib/errors"
	"boscoin.io/benor/lib/network"
	"boscoin.io/benor/lib/network/httputils"
	"boscoin.io/benor/lib/node/runner/api/resource"
)

const (
	MessageReceivedResponse  = "Message received and processed."
	ConsensusStartedResponse = "Consensus algorithm started."
	KilledResponse           = "killed"
)

type NetworkHandlerNode struct {
	network   network.Network
	consensus *consensus.BenOr
	gate      consensus.ReadinessGate
}

func NewNetworkHandlerNode(n network.Network, c *consensus.BenOr, gate consensus.ReadinessGate) *NetworkHandlerNode {
	return &NetworkHandlerNode{
		network:   n,
		consensus: c,
		gate:      gate,
	}
}

func (api NetworkHandlerNode) StatusHandler(w http.ResponseWriter, r *http.Request) {
	status := api.consensus.Status()

	code := http.StatusOK
	if status == consensus.StatusFaulty {
		code = http.StatusInternalServerError
	}

	httputils.WriteText(w, code, string(status))
}

// MessageHandler hands the envelope to the consensus; the envelope is
// processed before the response is sent.
func (api NetworkHandlerNode) MessageHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Error reading request body", http.StatusInternalServerError)
		return
	}

	e, err := envelope.NewEnvelopeFromJSON(body)
	if err != nil {
		httputils.WriteJSONError(w, errors.InvalidEnvelope.Clone().SetData("error", err.Error()))
		return
	}

	api.network.MessageBroker().Receive(e)

	httputils.WriteText(w, http.StatusOK, MessageReceivedResponse)
}

// StartHandler responds once every participant is ready and the consensus
// is started.
func (api NetworkHandlerNode) StartHandler(w http.ResponseWriter, r *http.Request) {
	if err := api.consensus.Start(r.Context(), api.gate); err != nil {
		if _, ok := err.(*errors.Error); !ok {
			err = errors.NotReady.Clone().SetData("error", err.Error())
		}
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.WriteText(w, http.StatusOK, ConsensusStartedResponse)
}

func (api NetworkHandlerNode) StopHandler(w http.ResponseWriter, r *http.Request) {
	api.consensus.Stop()

	httputils.WriteText(w, http.StatusOK, KilledResponse)
}

func (api NetworkHandlerNode) GetStateHandler(w http.ResponseWriter, r *http.Request) {
	httputils.WriteJSON(w, http.StatusOK, api.consensus.State())
}

func (api NetworkHandlerNode) NodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	httputils.WriteJSON(w, http.StatusOK, resource.NewNodeInfo(api.consensus, api.network.Endpoint()))
}

// TallyHandler writes the proposals and votes recorded for the round `k`.
func (api NetworkHandlerNode) TallyHandler(w http.ResponseWriter, r *http.Request) {
	k, err := strconv.ParseUint(mux.Vars(r)["k"], 10, 64)
	if err != nil || k < 1 {
		httputils.WriteJSONError(w, errors.InvalidRound.Clone().SetData("k", mux.Vars(r)["k"]))
		return
	}

	proposals, votes := api.consensus.Tally(k)
	httputils.WriteJSON(w, http.StatusOK, resource.NewTally(k, proposals, votes))
}
