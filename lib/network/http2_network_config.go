package network

import (
	"fmt"
	"time"
)

type HTTP2NetworkConfig struct {
	NodeName string
	Addr     string

	ReadTimeout,
	ReadHeaderTimeout,
	WriteTimeout,
	IdleTimeout time.Duration
}

// NewHTTP2NetworkConfig listens on `host:port`; port 0 picks a free port.
func NewHTTP2NetworkConfig(nodeName, host string, port int) *HTTP2NetworkConfig {
	return &HTTP2NetworkConfig{
		NodeName:    nodeName,
		Addr:        fmt.Sprintf("%s:%d", host, port),
		IdleTimeout: 5 * time.Second,
	}
}
