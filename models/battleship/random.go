package battleship

import (
	"math/rand"
	"time"
)

// Random is the source of randomness for ship placement and agent
// moves. *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}

func NewRandom(seed int64) Random {
	return rand.New(rand.NewSource(seed))
}

func NewTimeSeededRandom() Random {
	return NewRandom(time.Now().UnixNano())
}
