// Package dice provides the game's randomness: the two six-sided dice that
// drive the steps phase and the weighted spinner that drives the leaps phase.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	"math/rand/v2"
)

// Source is the randomness provider behind a Roller. *rand.Rand from
// math/rand/v2 satisfies it. Roller serializes calls, so implementations need
// not be safe for concurrent use.
type Source interface {
	// IntN returns a random int in [0, n). Precondition: n > 0.
	IntN(n int) int
	// Float64 returns a random float in [0, 1).
	Float64() float64
}

type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source {
	return cryptoSource{}
}

func (cryptoSource) IntN(n int) int {
	if n <= 0 {
		panic("dice: IntN called with n <= 0")
	}
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(v.Int64())
}

func (cryptoSource) Float64() float64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	// 53 random bits fill a float64 mantissa exactly.
	return float64(binary.LittleEndian.Uint64(b[:])>>11) / (1 << 53)
}

// NewSeededSource returns a deterministic Source. Equal seeds replay equal games.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
