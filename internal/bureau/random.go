package bureau

import (
	"math/rand"
	"sync"
	"time"
)

// prngSource is a RandomSource backed by math/rand. The generator is seeded
// exactly once, at construction; re-seeding per draw on a fast clock can
// produce correlated outcomes.
type prngSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandomSource returns a process-lifetime RandomSource. A zero seed falls
// back to the current time; pass a fixed seed for reproducible runs.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &prngSource{r: rand.New(rand.NewSource(seed))}
}

func (s *prngSource) Bool() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(2) == 0
}
