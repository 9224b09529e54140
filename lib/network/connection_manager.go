package network

import (
	"strconv"
	"sync"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/envelope"
	"boscoin.io/benor/lib/metrics"
)

// ConnectionManager sends the envelopes of one node to the node indexes.
// Every target has its own queue and worker, so `Send` never blocks and the
// envelopes toward one target are delivered in order. Delivery failures are
// logged and dropped.
type ConnectionManager struct {
	sync.Mutex

	index   int
	clients []NetworkClient
	queues  []*Queue
	started bool
	stopped bool

	wg  sync.WaitGroup
	log logging.Logger
}

func NewConnectionManager(index int, clients []NetworkClient) *ConnectionManager {
	c := &ConnectionManager{
		index:   index,
		clients: clients,
		queues:  make([]*Queue, len(clients)),
		log:     log.New(common.NodeContext(index)),
	}
	for i := range clients {
		c.queues[i] = NewQueue()
	}

	return c
}

func (c *ConnectionManager) Start() {
	c.Lock()
	defer c.Unlock()

	if c.started || c.stopped {
		return
	}
	c.started = true

	for i := range c.clients {
		c.wg.Add(1)
		go c.worker(i)
	}
}

func (c *ConnectionManager) worker(target int) {
	defer c.wg.Done()

	client := c.clients[target]
	for {
		v, ok := c.queues[target].Pop()
		if !ok {
			return
		}

		e := v.(envelope.Envelope)
		if err := client.SendEnvelope(e); err != nil {
			c.log.Debug("failed to send envelope", "target", target, "envelope", e, "error", err)
			metrics.Network.SendFailures.With(metrics.LabelNode, strconv.Itoa(c.index)).Add(1)
		}
	}
}

// Send queues the envelope; envelopes to unknown targets are dropped.
func (c *ConnectionManager) Send(target int, e envelope.Envelope) {
	if target < 0 || target >= len(c.queues) {
		c.log.Debug("unknown target; envelope dropped", "target", target, "envelope", e)
		return
	}

	if !c.queues[target].Push(e) {
		c.log.Debug("connection manager stopped; envelope dropped", "target", target, "envelope", e)
	}
}

func (c *ConnectionManager) CountTargets() int {
	return len(c.clients)
}

// Stop drops the queued envelopes and waits for the workers.
func (c *ConnectionManager) Stop() {
	c.Lock()
	if c.stopped {
		c.Unlock()
		return
	}
	c.stopped = true
	c.Unlock()

	for _, q := range c.queues {
		q.Close()
	}
	c.wg.Wait()

	for _, client := range c.clients {
		client.Close()
	}
}
