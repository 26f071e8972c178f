package schedule

import (
	"math/rand"
	"sync"
	"time"
)

// Shuffler produces a uniform random permutation. Selections draw from an
// injectable Shuffler so tests can pin the permutation by fixing the seed
// while production uses a non-deterministic source.
type Shuffler interface {
	// Shuffle pseudo-randomizes the order of n elements using swap,
	// with the same contract as rand.Shuffle.
	Shuffle(n int, swap func(i, j int))
}

// randShuffler implements Shuffler on top of math/rand. The mutex makes the
// shared production instance safe for concurrent requests; rand.Rand itself
// is not.
type randShuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewShuffler returns a Shuffler seeded from the current time.
func NewShuffler() Shuffler {
	return NewSeededShuffler(time.Now().UnixNano())
}

// NewSeededShuffler returns a Shuffler with a fixed seed, producing a
// reproducible permutation sequence. Intended for tests.
func NewSeededShuffler(seed int64) Shuffler {
	return &randShuffler{rng: rand.New(rand.NewSource(seed))}
}

func (s *randShuffler) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(n, swap)
}
