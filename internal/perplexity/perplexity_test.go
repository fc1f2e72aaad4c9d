package perplexity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/ngramlab/internal/ngram"
)

var abab = []string{"a", "b", "a", "b", "a", "c"}

func family(t *testing.T, tokens []string, maxOrder int) *ngram.Family {
	t.Helper()
	f, err := ngram.BuildFamily(tokens, maxOrder)
	require.NoError(t, err)
	return f
}

func TestScoreUnigramExact(t *testing.T) {
	res, err := Score(family(t, abab, 1), 1, abab)
	require.NoError(t, err)

	logp := 3*math.Log2(0.5) + 2*math.Log2(1.0/3) + math.Log2(1.0/6)
	want := math.Exp2(-logp / 6)
	assert.InDelta(t, want, res.Perplexity, 1e-9)
	assert.InDelta(t, logp, res.Log2Prob, 1e-9)
	assert.Equal(t, 6, res.Tokens)
	assert.Equal(t, 1, res.Order)
}

func TestScoreBigramUsesPrefixForFirstToken(t *testing.T) {
	res, err := Score(family(t, abab, 2), 2, abab)
	require.NoError(t, err)

	// P(a) * P(b|a) * P(a|b) * P(b|a) * P(a|b) * P(c|a)
	logp := math.Log2(0.5) + 2*math.Log2(2.0/3) + 2*math.Log2(1) + math.Log2(1.0/3)
	assert.InDelta(t, math.Exp2(-logp/6), res.Perplexity, 1e-9)
}

func TestScoreHigherOrderFitsTrainingTextBetter(t *testing.T) {
	tokens := []string{"the", "cat", "sat", "on", "the", "mat", "the", "cat", "ran", "off", "the", "mat"}
	f := family(t, tokens, ngram.MaxOrder)

	prev := math.Inf(1)
	for order := 1; order <= ngram.MaxOrder; order++ {
		res, err := Score(f, order, tokens)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Perplexity, 1.0)
		assert.LessOrEqual(t, res.Perplexity, prev+1e-9, "order %d", order)
		prev = res.Perplexity
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	f := family(t, abab, 3)
	a, err := Score(f, 3, abab)
	require.NoError(t, err)
	b, err := Score(f, 3, abab)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestScoreUnseenOutcome(t *testing.T) {
	_, err := Score(family(t, abab, 1), 1, []string{"a", "z"})
	assert.ErrorIs(t, err, ngram.ErrOutcomeNotFound)

	_, err = Score(family(t, abab, 2), 2, []string{"a", "a"})
	assert.ErrorIs(t, err, ngram.ErrOutcomeNotFound)
}

func TestScoreUnseenContext(t *testing.T) {
	// "c" ends the corpus, so no bigram starts with it.
	_, err := Score(family(t, abab, 2), 2, []string{"c", "a"})
	assert.ErrorIs(t, err, ngram.ErrContextNotFound)
}

func TestScoreInvalidArguments(t *testing.T) {
	f := family(t, abab, 2)

	_, err := Score(f, 0, abab)
	assert.ErrorIs(t, err, ngram.ErrInvalidOrder)
	_, err = Score(f, 3, abab)
	assert.ErrorIs(t, err, ngram.ErrInvalidOrder)
	_, err = Score(f, 1, nil)
	assert.ErrorIs(t, err, ngram.ErrEmptySequence)
}
