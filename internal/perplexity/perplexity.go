package perplexity

import (
	"fmt"
	"math"

	"github.com/samcharles93/ngramlab/internal/ngram"
)

// Result is the fit of an order-n model to a token sequence.
type Result struct {
	Order      int     `json:"order"`
	Perplexity float64 `json:"perplexity"`
	Log2Prob   float64 `json:"log2_prob"`
	Tokens     int     `json:"tokens"`
}

// Score computes 2^(-mean log2 P) of tokens under the order-n model. Position
// i < n-1 lacks a full context and is scored by the order-(i+1) table on its
// actual prefix. Any (context, outcome) pair the model never observed aborts
// scoring with ngram.ErrContextNotFound or ngram.ErrOutcomeNotFound.
func Score(family *ngram.Family, order int, tokens []string) (Result, error) {
	if err := ngram.ValidateOrder(order); err != nil {
		return Result{}, err
	}
	if _, err := family.Table(order); err != nil {
		return Result{}, err
	}
	if len(tokens) == 0 {
		return Result{}, fmt.Errorf("score %s: %w", ngram.OrderName(order), ngram.ErrEmptySequence)
	}

	var total float64
	for i, tok := range tokens {
		n := min(i+1, order)
		table, err := family.Table(n)
		if err != nil {
			return Result{}, err
		}
		p, err := table.Probability(tokens[i-n+1:i], tok)
		if err != nil {
			return Result{}, fmt.Errorf("score token %d: %w", i, err)
		}
		total += math.Log2(p)
	}

	return Result{
		Order:      order,
		Perplexity: math.Exp2(-total / float64(len(tokens))),
		Log2Prob:   total,
		Tokens:     len(tokens),
	}, nil
}
