package network

import (
	"boscoin.io/benor/lib/envelope"
	"boscoin.io/benor/lib/errors"
)

type MemoryNetworkClient struct {
	endpoint string
	from     *MemoryNetwork
}

func NewMemoryNetworkClient(endpoint string, from *MemoryNetwork) *MemoryNetworkClient {
	return &MemoryNetworkClient{endpoint: endpoint, from: from}
}

func (m *MemoryNetworkClient) Endpoint() string {
	return m.endpoint
}

// SendEnvelope encodes the envelope with the codec of the sender and
// queues it to the target endpoint.
func (m *MemoryNetworkClient) SendEnvelope(e envelope.Envelope) error {
	server, found := m.from.peers.get(m.endpoint)
	if !found {
		return errors.EndpointNotFound.Clone().SetData("endpoint", m.endpoint)
	}

	b, err := m.from.codec.Encode(e)
	if err != nil {
		return err
	}

	if !server.deliver(b) {
		return errors.EndpointNotFound.Clone().SetData("endpoint", m.endpoint)
	}

	return nil
}

func (m *MemoryNetworkClient) Close() {}
