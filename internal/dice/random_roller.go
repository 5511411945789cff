package dice

import (
	"math/rand"
	"sync"
	"time"

	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a roller seeded from the clock
func NewRandomRoller() Roller {
	return NewSeededRoller(time.Now().UnixNano())
}

// NewSeededRoller creates a roller with a fixed seed for reproducible sessions
func NewSeededRoller(seed int64) Roller {
	return &randomRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *randomRoller) Faces(count int) ([]int, error) {
	if count < 0 {
		return nil, ovaerr.InvalidArgumentf("invalid dice count %d", count)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, count)
	for i := range out {
		out[i] = r.rng.Intn(MaxFace) + 1
	}
	return out, nil
}
