package consensus

import (
	"crypto/rand"
	mathrand "math/rand"
	"sync"

	"boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/errors"
	"boscoin.io/benor/lib/voting"
)

// Coin draws the random bit used to break ties. Every draw must be
// unbiased and independent of the previous ones.
type Coin interface {
	Flip() voting.Value
}

// CryptoCoin reads its bits from crypto/rand.
type CryptoCoin struct{}

func (CryptoCoin) Flip() voting.Value {
	var b [1]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}

	return voting.FromBit(uint(b[0]))
}

// SeededCoin is reproducible for a given seed.
type SeededCoin struct {
	sync.Mutex
	r *mathrand.Rand
}

func NewSeededCoin(seed int64) *SeededCoin {
	return &SeededCoin{r: mathrand.New(mathrand.NewSource(seed))}
}

func (c *SeededCoin) Flip() voting.Value {
	c.Lock()
	defer c.Unlock()

	return voting.FromBit(uint(c.r.Int63()))
}

// NewCoin returns the coin of node `index`; seeded coins of different
// nodes use different seeds.
func NewCoin(kind string, seed int64, index int) (Coin, error) {
	switch kind {
	case common.CoinCrypto, "":
		return CryptoCoin{}, nil
	case common.CoinSeeded:
		return NewSeededCoin(seed + int64(index)), nil
	}

	return nil, errors.InvalidCoin.Clone().SetData("coin", kind)
}
