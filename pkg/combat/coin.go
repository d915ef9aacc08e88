package combat

import (
	"math/rand"
	"time"
)

// CoinSource yields the surface tie-break coin in [0,1). *rand.Rand satisfies it.
type CoinSource interface {
	Float64() float64
}

// FixedCoin always returns the same value. Used to pin outcomes in tests.
type FixedCoin float64

func (c FixedCoin) Float64() float64 { return float64(c) }

// NewRandomCoin returns a seeded source, or a time-seeded one when seed is 0.
// The returned source is not safe for concurrent use.
func NewRandomCoin(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
