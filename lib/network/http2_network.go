package network

import (
	goLog "log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"boscoin.io/benor/lib/version"
)

// HTTP2Network serves the node routes over cleartext HTTP/2 (h2c); HTTP/1.1
// clients are served as well.
type HTTP2Network struct {
	sync.Mutex

	config   *HTTP2NetworkConfig
	server   *http.Server
	router   *mux.Router
	listener net.Listener

	messageBroker MessageBroker
	ready         chan struct{}
	readyOnce     sync.Once

	log logging.Logger
}

func NewHTTP2Network(config *HTTP2NetworkConfig) *HTTP2Network {
	httpLog := log.New(logging.Ctx{"module": "http", "node": config.NodeName})
	errorLog := goLog.New(serverErrorWriter{httpLog}, "", 0)

	router := mux.NewRouter()

	server := &http.Server{
		Addr:              config.Addr,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		ErrorLog:          errorLog,
		Handler: h2c.NewHandler(
			adminLogHandler{log: httpLog, handler: router},
			&http2.Server{IdleTimeout: config.IdleTimeout},
		),
	}
	server.SetKeepAlivesEnabled(true)

	return &HTTP2Network{
		config:        config,
		server:        server,
		router:        router,
		messageBroker: nopMessageBroker{},
		ready:         make(chan struct{}),
		log:           httpLog,
	}
}

// Endpoint is the base URL of the network; once listening, it carries the
// actual port.
func (t *HTTP2Network) Endpoint() string {
	t.Lock()
	defer t.Unlock()

	if t.listener != nil {
		return "http://" + t.listener.Addr().String()
	}

	return "http://" + t.config.Addr
}

// GetClient creates new keep-alive HTTP2 client; envelopes are posted up
// to `attempts` times.
func (t *HTTP2Network) GetClient(endpoint string, attempts int, timeout time.Duration) NetworkClient {
	client := NewHTTP2NetworkClient(endpoint, NewHTTP2Client(attempts, timeout))

	headers := http.Header{}
	headers.Set("User-Agent", version.UserAgent(t.config.NodeName))
	client.SetDefaultHeaders(headers)

	return client
}

func (t *HTTP2Network) AddHandler(pattern string, handler http.HandlerFunc) *mux.Route {
	return t.router.HandleFunc(pattern, handler)
}

func (t *HTTP2Network) AddMiddleware(mws ...mux.MiddlewareFunc) {
	for _, mw := range mws {
		t.router.Use(mw)
	}
}

func (t *HTTP2Network) SetMessageBroker(mb MessageBroker) {
	t.Lock()
	defer t.Unlock()

	t.messageBroker = mb
}

func (t *HTTP2Network) MessageBroker() MessageBroker {
	t.Lock()
	defer t.Unlock()

	return t.messageBroker
}

func (t *HTTP2Network) Ready() <-chan struct{} {
	return t.ready
}

// Listen binds the address of the network, so `Endpoint` knows the actual
// port before `Start`.
func (t *HTTP2Network) Listen() error {
	t.Lock()
	defer t.Unlock()

	if t.listener != nil {
		return nil
	}

	listener, err := net.Listen("tcp", t.config.Addr)
	if err != nil {
		return err
	}
	t.listener = listener

	return nil
}

// Start serves until `Stop` is called.
func (t *HTTP2Network) Start() error {
	if err := t.Listen(); err != nil {
		return err
	}

	t.Lock()
	listener := t.listener
	t.Unlock()

	t.readyOnce.Do(func() { close(t.ready) })
	t.log.Debug("listening", "addr", listener.Addr().String())

	if err := t.server.Serve(listener); err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (t *HTTP2Network) Stop() {
	t.server.Close()

	t.Lock()
	defer t.Unlock()
	if t.listener != nil {
		t.listener.Close()
	}
}
