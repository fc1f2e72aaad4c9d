package generate

import (
	"fmt"

	"github.com/samcharles93/ngramlab/internal/ngram"
	"github.com/samcharles93/ngramlab/internal/sampling"
)

// Generator produces text by sampling from a model family.
type Generator struct {
	family  *ngram.Family
	sampler *sampling.Sampler
}

// New returns a generator drawing from family with sampler.
func New(family *ngram.Family, sampler *sampling.Sampler) *Generator {
	return &Generator{family: family, sampler: sampler}
}

// Generate returns exactly length tokens sampled from the order-n table.
//
// The window holds the most recent n-1 tokens. While it is shorter than n-1,
// the next token is drawn from the table whose order is one more than the
// window length, so an empty seed is bootstrapped through the unigram,
// bigram and trigram tables in turn. Bootstrapped tokens are part of the
// output. A seed of exactly n-1 tokens is used as the starting context and is
// not echoed; a longer seed is trimmed to its trailing n-1 tokens.
func (g *Generator) Generate(order int, seed []string, length int) ([]string, error) {
	if length < 0 {
		return nil, fmt.Errorf("generate: negative length %d", length)
	}
	out := make([]string, 0, length)
	err := g.Stream(order, seed, length, func(tok string) error {
		out = append(out, tok)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Stream is Generate delivering each token to emit as soon as it is drawn.
// An error from emit stops generation and is returned unchanged.
func (g *Generator) Stream(order int, seed []string, length int, emit func(tok string) error) error {
	if length < 0 {
		return fmt.Errorf("generate: negative length %d", length)
	}
	if err := ngram.ValidateOrder(order); err != nil {
		return err
	}
	if _, err := g.family.Table(order); err != nil {
		return err
	}

	width := order - 1
	if len(seed) > width {
		seed = seed[len(seed)-width:]
	}
	window := make([]string, len(seed), width)
	copy(window, seed)

	for range length {
		table, err := g.family.Table(len(window) + 1)
		if err != nil {
			return err
		}
		tok, err := g.next(table, window)
		if err != nil {
			return err
		}
		if err := emit(tok); err != nil {
			return err
		}

		switch {
		case len(window) < width:
			window = append(window, tok)
		case width > 0:
			copy(window, window[1:])
			window[width-1] = tok
		}
	}
	return nil
}

func (g *Generator) next(table *ngram.Table, window []string) (string, error) {
	d, err := table.Lookup(window)
	if err != nil {
		return "", err
	}
	i := g.sampler.Draw(d.Probabilities())
	if i < 0 {
		return "", fmt.Errorf("generate: empty distribution for context %s", ngram.Context(window))
	}
	return d.Outcome(i), nil
}
