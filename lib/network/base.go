package network

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/benor/lib/envelope"
)

const (
	UrlPathNode     = "/"
	UrlPathTally    = "/tally/{k}"
	UrlPathStatus   = "/status"
	UrlPathMessage  = "/message"
	UrlPathStart    = "/start"
	UrlPathStop     = "/stop"
	UrlPathGetState = "/getState"
	UrlPathMetrics  = "/metrics"
	UrlPathJSONRPC  = "/jsonrpc"
)

// Network is the receiving side of one node.
type Network interface {
	Endpoint() string
	AddHandler(pattern string, handler http.HandlerFunc) *mux.Route
	AddMiddleware(mws ...mux.MiddlewareFunc)

	// Start blocks until `Stop` is called or the network fails.
	Start() error
	Stop()

	// Ready is closed once the network accepts envelopes.
	Ready() <-chan struct{}

	SetMessageBroker(MessageBroker)
	MessageBroker() MessageBroker
}

// NetworkClient is the sending side toward one endpoint.
type NetworkClient interface {
	Endpoint() string
	SendEnvelope(envelope.Envelope) error
	Close()
}

// MessageBroker consumes the envelopes received by a `Network`.
type MessageBroker interface {
	Receive(envelope.Envelope)
}

type nopMessageBroker struct{}

func (nopMessageBroker) Receive(envelope.Envelope) {}
