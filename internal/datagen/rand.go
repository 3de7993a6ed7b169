package datagen

import (
	"math/rand"
	"time"
)

// Rand is the source of randomness used for every draw. *rand.Rand
// satisfies it; tests substitute a fixed sequence.
type Rand interface {
	// Intn returns a value in [0, n). n is always > 0.
	Intn(n int) int
}

// NewRand returns a seeded source. A zero seed is replaced with the
// current time, and the seed actually used is returned so a run can be
// reproduced.
func NewRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

func pickOne[T any](r Rand, values []T) T {
	return values[r.Intn(len(values))]
}
