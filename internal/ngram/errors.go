package ngram

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOrder    = errors.New("invalid_order")
	ErrContextNotFound = errors.New("context_not_found")
	ErrOutcomeNotFound = errors.New("outcome_not_found")
	ErrEmptySequence   = errors.New("empty_sequence")
)

// OrderError reports a model order outside the supported range.
type OrderError struct {
	Order int
	Max   int
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("invalid model order %d: must be between 1 and %d", e.Order, e.Max)
}

func (e *OrderError) Unwrap() error {
	return ErrInvalidOrder
}

// ContextError reports a context that was never observed by the order-n table.
type ContextError struct {
	Order   int
	Context Context
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("%s model: context %s not found", OrderName(e.Order), e.Context)
}

func (e *ContextError) Unwrap() error {
	return ErrContextNotFound
}

// OutcomeError reports an outcome never observed after an existing context.
type OutcomeError struct {
	Order   int
	Context Context
	Outcome string
}

func (e *OutcomeError) Error() string {
	return fmt.Sprintf("%s model: outcome %q never follows context %s", OrderName(e.Order), e.Outcome, e.Context)
}

func (e *OutcomeError) Unwrap() error {
	return ErrOutcomeNotFound
}

func newContextError(order int, ctx Context) error {
	return &ContextError{Order: order, Context: ctx.Clone()}
}

func newOutcomeError(order int, ctx Context, outcome string) error {
	return &OutcomeError{Order: order, Context: ctx.Clone(), Outcome: outcome}
}
