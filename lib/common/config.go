package common

import (
	"time"

	"github.com/ulule/limiter"
)

const (
	TransportMemory = "memory"
	TransportHTTP   = "http"

	CodecMsgpack = "msgpack"
	CodecJSON    = "json"

	CoinCrypto = "crypto"
	CoinSeeded = "seeded"
)

const (
	DefaultNodes        int    = 4
	DefaultFaulty       int    = 1
	DefaultHost         string = "localhost"
	DefaultBaseNodePort int    = 3000
	// DefaultSendAttempts keeps delivery at-most-once; anything above 1
	// makes the HTTP client retry, which the protocol does not rely on.
	DefaultSendAttempts int           = 1
	DefaultSendTimeout  time.Duration = 3 * time.Second
)

var (
	RateLimitAdmin = limiter.Rate{
		Period: 1 * time.Second,
		Limit:  200,
	}
)

type RateLimitRule struct {
	Default limiter.Rate
}

func NewRateLimitRule(rate limiter.Rate) RateLimitRule {
	return RateLimitRule{Default: rate}
}

//
// Config has the size of the simulated network and the knobs of the
// transport which carries envelopes between nodes.
//
type Config struct {
	Nodes  int
	Faulty int

	Host         string
	BaseNodePort int

	Transport string
	Codec     string

	SendAttempts int
	SendTimeout  time.Duration

	Coin     string
	CoinSeed int64

	// Those fields are not consensus-related
	RateLimitRuleAdmin RateLimitRule
}

// NewConfig returns the default configuration; every field can be
// overridden by `BENOR_*` environment variables.
func NewConfig() Config {
	p := Config{}

	p.Nodes = GetENVInt("BENOR_NODES", DefaultNodes)
	p.Faulty = GetENVInt("BENOR_FAULTY", DefaultFaulty)

	p.Host = GetENVValue("BENOR_HOST", DefaultHost)
	p.BaseNodePort = GetENVInt("BENOR_BASE_NODE_PORT", DefaultBaseNodePort)

	p.Transport = GetENVValue("BENOR_TRANSPORT", TransportMemory)
	p.Codec = GetENVValue("BENOR_CODEC", CodecMsgpack)

	p.SendAttempts = GetENVInt("BENOR_SEND_ATTEMPTS", DefaultSendAttempts)
	p.SendTimeout = GetENVDuration("BENOR_SEND_TIMEOUT", DefaultSendTimeout)

	p.Coin = GetENVValue("BENOR_COIN", CoinCrypto)
	p.CoinSeed = int64(GetENVInt("BENOR_COIN_SEED", 0))

	p.RateLimitRuleAdmin = NewRateLimitRule(RateLimitAdmin)

	return p
}
