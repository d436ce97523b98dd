package game

import (
	"math/rand"
	"time"
)

// Rand is the random stream consumed by map generation, role assignment and
// spawn selection. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a seeded stream. Seed 0 picks a time-based seed.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
