//
// NodeRunner bridges together the network, the connection manager and the
// consensus of one node. In this regard, it can be seen as a single node,
// and is used as such by the supervisor and in unit tests.
//
package runner

import (
	"context"

	ghandlers "github.com/gorilla/handlers"
	logging "github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/consensus"
	"boscoin.io/benor/lib/network"
)

type NodeRunner struct {
	network           network.Network
	consensus         *consensus.BenOr
	connectionManager *network.ConnectionManager
	gate              consensus.ReadinessGate

	log logging.Logger

	Conf common.Config
}

func NewNodeRunner(
	n network.Network,
	c *consensus.BenOr,
	cm *network.ConnectionManager,
	gate consensus.ReadinessGate,
	conf common.Config,
) *NodeRunner {
	return &NodeRunner{
		network:           n,
		consensus:         c,
		connectionManager: cm,
		gate:              gate,
		log:               log.New(common.NodeContext(c.Index())),
		Conf:              conf,
	}
}

// Ready registers the middlewares and the handlers of the node.
func (nr *NodeRunner) Ready() {
	nr.network.SetMessageBroker(nr.consensus)

	nr.network.AddMiddleware(
		network.RecoverMiddleware(false),
		network.MetricsMiddleware(),
		network.RateLimitMiddleware(nr.Conf.RateLimitRuleAdmin.Default, network.UrlPathMessage, network.UrlPathStop),
	)

	{ //CORS
		allowedOrigins := ghandlers.AllowedOrigins([]string{"*"})
		allowedMethods := ghandlers.AllowedMethods([]string{"GET", "POST"})
		allowedHeaders := ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"})

		nr.network.AddMiddleware(ghandlers.CORS(allowedOrigins, allowedMethods, allowedHeaders))
	}

	nodeHandler := NewNetworkHandlerNode(nr.network, nr.consensus, nr.gate)

	nr.network.AddHandler(network.UrlPathNode, nodeHandler.NodeInfoHandler).Methods("GET")
	nr.network.AddHandler(network.UrlPathTally, nodeHandler.TallyHandler).Methods("GET")
	nr.network.AddHandler(network.UrlPathStatus, nodeHandler.StatusHandler).Methods("GET")
	nr.network.AddHandler(network.UrlPathMessage, nodeHandler.MessageHandler).Methods("POST")
	nr.network.AddHandler(network.UrlPathStart, nodeHandler.StartHandler).Methods("GET")
	nr.network.AddHandler(network.UrlPathStop, nodeHandler.StopHandler).Methods("GET")
	nr.network.AddHandler(network.UrlPathGetState, nodeHandler.GetStateHandler).Methods("GET")
	nr.network.AddHandler(network.UrlPathMetrics, promhttp.Handler().ServeHTTP).Methods("GET")
	nr.network.AddHandler(network.UrlPathJSONRPC, NewJSONRPCServer(nr.consensus).ServeHTTP).Methods("POST")
}

// Start blocks until the network is stopped.
func (nr *NodeRunner) Start() error {
	nr.log.Debug("NodeRunner started", "endpoint", nr.network.Endpoint())
	nr.Ready()

	nr.connectionManager.Start()

	return nr.network.Start()
}

func (nr *NodeRunner) Stop() {
	nr.network.Stop()
	nr.connectionManager.Stop()
}

// StartConsensus waits for every participant and starts the consensus.
func (nr *NodeRunner) StartConsensus(ctx context.Context) error {
	return nr.consensus.Start(ctx, nr.gate)
}

func (nr *NodeRunner) Index() int {
	return nr.consensus.Index()
}

func (nr *NodeRunner) Network() network.Network {
	return nr.network
}

func (nr *NodeRunner) Consensus() *consensus.BenOr {
	return nr.consensus
}

func (nr *NodeRunner) ConnectionManager() *network.ConnectionManager {
	return nr.connectionManager
}

func (nr *NodeRunner) Log() logging.Logger {
	return nr.log
}
