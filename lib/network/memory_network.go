package network

import (
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"boscoin.io/benor/lib/common"
)

// memoryPeers is shared by every `MemoryNetwork` of one simulation, so they
// can find each other.
type memoryPeers struct {
	sync.RWMutex
	m map[ /* endpoint */ string]*MemoryNetwork
}

func (p *memoryPeers) get(endpoint string) (*MemoryNetwork, bool) {
	p.RLock()
	defer p.RUnlock()

	n, ok := p.m[endpoint]
	return n, ok
}

func (p *memoryPeers) add(n *MemoryNetwork) {
	p.Lock()
	defer p.Unlock()

	p.m[n.endpoint] = n
}

func (p *memoryPeers) remove(endpoint string) {
	p.Lock()
	defer p.Unlock()

	delete(p.m, endpoint)
}

// MemoryNetwork delivers envelopes in-process. Received envelopes are queued
// as encoded bytes and handed to the message broker by a single goroutine,
// in arrival order.
type MemoryNetwork struct {
	sync.Mutex

	endpoint string
	codec    Codec
	inbox    *Queue
	peers    *memoryPeers

	messageBroker MessageBroker
	ready         chan struct{}
	readyOnce     sync.Once
}

func CreateNewMemoryEndpoint() string {
	return "memory://" + common.GenerateUUID()
}

// NewMemoryNetwork creates a new endpoint. If `prev` is nil the endpoint
// starts a new, isolated, network; otherwise it can reach every endpoint
// `prev` can reach.
func (prev *MemoryNetwork) NewMemoryNetwork(codec Codec) *MemoryNetwork {
	var peers *memoryPeers
	if prev != nil {
		peers = prev.peers
	} else {
		peers = &memoryPeers{m: map[string]*MemoryNetwork{}}
	}

	if codec == nil {
		codec = MsgpackCodec{}
	}

	n := &MemoryNetwork{
		endpoint:      CreateNewMemoryEndpoint(),
		codec:         codec,
		inbox:         NewQueue(),
		peers:         peers,
		messageBroker: nopMessageBroker{},
		ready:         make(chan struct{}),
	}

	peers.add(n)

	return n
}

func (p *MemoryNetwork) Endpoint() string {
	return p.endpoint
}

func (p *MemoryNetwork) Codec() Codec {
	return p.codec
}

func (p *MemoryNetwork) GetClient(endpoint string) NetworkClient {
	return NewMemoryNetworkClient(endpoint, p)
}

func (p *MemoryNetwork) AddHandler(string, http.HandlerFunc) *mux.Route {
	return &mux.Route{}
}

func (p *MemoryNetwork) AddMiddleware(...mux.MiddlewareFunc) {}

func (p *MemoryNetwork) SetMessageBroker(mb MessageBroker) {
	p.Lock()
	defer p.Unlock()

	p.messageBroker = mb
}

func (p *MemoryNetwork) MessageBroker() MessageBroker {
	p.Lock()
	defer p.Unlock()

	return p.messageBroker
}

func (p *MemoryNetwork) Ready() <-chan struct{} {
	return p.ready
}

func (p *MemoryNetwork) Start() error {
	p.readyOnce.Do(func() { close(p.ready) })

	for {
		v, ok := p.inbox.Pop()
		if !ok {
			return nil
		}

		e, err := p.codec.Decode(v.([]byte))
		if err != nil {
			log.Debug("failed to decode envelope; dropped", "endpoint", p.endpoint, "error", err)
			continue
		}

		p.MessageBroker().Receive(e)
	}
}

// Stop removes the endpoint from the network; the envelopes not yet
// handled are dropped.
func (p *MemoryNetwork) Stop() {
	p.peers.remove(p.endpoint)
	p.inbox.Close()
}

func (p *MemoryNetwork) deliver(b []byte) bool {
	return p.inbox.Push(b)
}

// CreateMemoryNetworks creates `n` endpoints which can reach each other.
func CreateMemoryNetworks(n int, codec Codec) []*MemoryNetwork {
	var prev *MemoryNetwork
	networks := make([]*MemoryNetwork, n)
	for i := 0; i < n; i++ {
		networks[i] = prev.NewMemoryNetwork(codec)
		prev = networks[i]
	}

	return networks
}

// CreateMemoryNetwork creates an endpoint with the default codec in the
// network of `prev`.
func CreateMemoryNetwork(prev *MemoryNetwork) *MemoryNetwork {
	return prev.NewMemoryNetwork(nil)
}
