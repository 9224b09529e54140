package network

import (
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sethgrid/pester"

	"boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/envelope"
	benorerrors "boscoin.io/benor/lib/errors"
)

type HTTP2NetworkClient struct {
	endpoint       string
	client         *common.HTTP2Client
	defaultHeaders http.Header
}

// NewHTTP2Client returns the client used to post envelopes. With more than
// one attempt, failed posts are retried with exponential backoff.
func NewHTTP2Client(attempts int, timeout time.Duration) *common.HTTP2Client {
	if timeout <= 0 {
		timeout = common.DefaultSendTimeout
	}

	if attempts <= 1 {
		return common.NewHTTP2Client(timeout)
	}

	return common.NewPersistentHTTP2Client(timeout, &common.RetrySetting{
		MaxRetries:  attempts,
		Concurrency: 1,
		Backoff:     pester.ExponentialBackoff,
	})
}

func NewHTTP2NetworkClient(endpoint string, client *common.HTTP2Client) *HTTP2NetworkClient {
	if client == nil {
		client = NewHTTP2Client(common.DefaultSendAttempts, common.DefaultSendTimeout)
	}

	return &HTTP2NetworkClient{endpoint: endpoint, client: client, defaultHeaders: http.Header{}}
}

func (c *HTTP2NetworkClient) Endpoint() string {
	return c.endpoint
}

func (c *HTTP2NetworkClient) SetDefaultHeaders(headers http.Header) {
	for key, values := range headers {
		for _, v := range values {
			c.defaultHeaders.Set(key, v)
		}
	}
}

func (c *HTTP2NetworkClient) DefaultHeaders() http.Header {
	headers := http.Header{}
	for key, values := range c.defaultHeaders {
		for _, v := range values {
			headers.Set(key, v)
		}
	}

	return headers
}

func (c *HTTP2NetworkClient) SendEnvelope(e envelope.Envelope) error {
	body, err := e.Serialize()
	if err != nil {
		return errors.Wrap(err, "failed to serialize envelope")
	}

	headers := c.DefaultHeaders()
	headers.Set("Content-Type", "application/json")

	response, err := c.client.Post(c.endpoint+UrlPathMessage, body, headers)
	if err != nil {
		return errors.Wrapf(err, "failed to post envelope to %s", c.endpoint)
	}
	defer response.Body.Close()
	io.Copy(ioutil.Discard, response.Body)

	if response.StatusCode != http.StatusOK {
		return benorerrors.SendFailed.Clone().
			SetData("endpoint", c.endpoint).
			SetData("status", response.StatusCode)
	}

	return nil
}

// Get requests `path` of the endpoint and returns the body of a 200
// response.
func (c *HTTP2NetworkClient) Get(path string) (body []byte, err error) {
	var response *http.Response
	if response, err = c.client.Get(c.endpoint+path, c.DefaultHeaders()); err != nil {
		return
	}
	defer response.Body.Close()

	if body, err = ioutil.ReadAll(response.Body); err != nil {
		return
	}
	if response.StatusCode != http.StatusOK {
		err = benorerrors.SendFailed.Clone().
			SetData("endpoint", c.endpoint).
			SetData("status", response.StatusCode)
	}

	return
}

func (c *HTTP2NetworkClient) Close() {
	c.client.Close()
}
