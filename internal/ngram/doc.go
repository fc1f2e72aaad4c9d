// Package ngram builds unsmoothed n-gram language models over a token
// sequence.
//
// An order-n Table maps every context of n-1 tokens observed in the corpus to
// the distribution of the token that followed it. Contexts that never occur
// are absent rather than zero-filled, so every lookup of an unseen context or
// outcome is reported as an error (ErrContextNotFound, ErrOutcomeNotFound)
// instead of a zero probability.
//
// A Family groups the tables of orders 1..n built from the same sequence.
// Generation and scoring use the shorter orders to cover the first n-1
// positions where a full context does not exist yet.
package ngram
