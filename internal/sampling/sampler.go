package sampling

import (
	"math/rand"
	"time"
)

// Config configures a Sampler.
type Config struct {
	// Seed for the RNG. Negative seeds are replaced by a time-based one.
	Seed int64
}

// Sampler draws indices from discrete probability distributions. It is not
// safe for concurrent use.
type Sampler struct {
	rng  *rand.Rand
	seed int64
}

// New returns a sampler seeded from cfg.
func New(cfg Config) *Sampler {
	seed := cfg.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	return &Sampler{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed actually used.
func (s *Sampler) Seed() int64 { return s.seed }

// Draw returns index i with probability probs[i]/sum(probs) by inverting the
// cumulative distribution at a uniform point. Entries with zero weight are
// never returned. It returns -1 when no entry has positive weight.
func (s *Sampler) Draw(probs []float64) int {
	var total float64
	last := -1
	for i, p := range probs {
		if p > 0 {
			total += p
			last = i
		}
	}
	if last < 0 {
		return -1
	}

	r := s.rng.Float64() * total
	var c float64
	for i, p := range probs {
		if p <= 0 {
			continue
		}
		c += p
		if r < c {
			return i
		}
	}
	// Rounding can leave r just above the final cumulative sum.
	return last
}
