package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawMatchesDistribution(t *testing.T) {
	probs := []float64{0.5, 1.0 / 3, 1.0 / 6}
	const draws = 200000

	s := New(Config{Seed: 42})
	counts := make([]int, len(probs))
	for range draws {
		i := s.Draw(probs)
		require.GreaterOrEqual(t, i, 0)
		counts[i]++
	}

	// Two degrees of freedom; 13.82 is the 0.999 quantile.
	var chi2 float64
	for i, p := range probs {
		expected := p * draws
		d := float64(counts[i]) - expected
		chi2 += d * d / expected
	}
	assert.Less(t, chi2, 13.82, "counts %v", counts)
}

func TestDrawIsDeterministicForSeed(t *testing.T) {
	probs := []float64{0.1, 0.2, 0.3, 0.4}
	a := New(Config{Seed: 7})
	b := New(Config{Seed: 7})
	for range 1000 {
		require.Equal(t, a.Draw(probs), b.Draw(probs))
	}
}

func TestDrawSkipsZeroWeights(t *testing.T) {
	s := New(Config{Seed: 1})
	probs := []float64{0, 0.25, 0, 0.75, 0}
	for range 10000 {
		i := s.Draw(probs)
		assert.Contains(t, []int{1, 3}, i)
	}
}

func TestDrawSingleOutcome(t *testing.T) {
	s := New(Config{Seed: 1})
	for range 100 {
		assert.Equal(t, 0, s.Draw([]float64{1}))
	}
}

func TestDrawWithoutPositiveWeight(t *testing.T) {
	s := New(Config{Seed: 1})
	assert.Equal(t, -1, s.Draw(nil))
	assert.Equal(t, -1, s.Draw([]float64{0, 0}))
}

func TestNegativeSeedIsReplaced(t *testing.T) {
	s := New(Config{Seed: -1})
	assert.GreaterOrEqual(t, s.Seed(), int64(0))

	assert.Equal(t, int64(99), New(Config{Seed: 99}).Seed())
}
