package pointillism

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"
)

// seedMix decorrelates the two PCG state words derived from one seed.
const seedMix = 0x9e3779b97f4a7c15

// NewRand returns the deterministic generator used for a seed. Two
// generators built from the same seed produce the same sequence.
func NewRand(seed int64) *mrand.Rand {
	s := uint64(seed)
	return mrand.New(mrand.NewPCG(s, s^seedMix))
}

// RandomSeed returns a non-negative seed from crypto/rand.
func RandomSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand does not fail on supported platforms; keep the
		// render going with a time-independent fallback.
		return 42
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}
