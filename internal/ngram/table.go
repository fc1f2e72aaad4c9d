package ngram

import (
	"slices"
	"sort"
	"strconv"
)

// MaxOrder is the highest supported model order (quadrigram).
const MaxOrder = 4

// OrderName returns the conventional name of an order-n model.
func OrderName(order int) string {
	switch order {
	case 1:
		return "unigram"
	case 2:
		return "bigram"
	case 3:
		return "trigram"
	case 4:
		return "quadrigram"
	default:
		return "order-" + strconv.Itoa(order)
	}
}

// ValidateOrder reports whether order lies in [1, MaxOrder].
func ValidateOrder(order int) error {
	if order < 1 || order > MaxOrder {
		return &OrderError{Order: order, Max: MaxOrder}
	}
	return nil
}

// Distribution is the next-token distribution observed after one context.
// Outcomes keep the order of their first occurrence in the corpus.
type Distribution struct {
	context  Context
	outcomes []string
	counts   []int
	probs    []float64
	index    map[string]int
	total    int
}

func newDistribution(ctx Context) *Distribution {
	return &Distribution{context: ctx.Clone(), index: make(map[string]int)}
}

// Context returns the context the distribution is conditioned on.
func (d *Distribution) Context() Context { return d.context.Clone() }

// Len returns the number of distinct outcomes.
func (d *Distribution) Len() int { return len(d.outcomes) }

// Total returns the number of windows counted under this context.
func (d *Distribution) Total() int { return d.total }

// Outcome returns the i-th outcome.
func (d *Distribution) Outcome(i int) string { return d.outcomes[i] }

// Outcomes returns a copy of the outcomes.
func (d *Distribution) Outcomes() []string {
	out := make([]string, len(d.outcomes))
	copy(out, d.outcomes)
	return out
}

// Probabilities returns the probabilities aligned with the outcomes. The
// slice is shared with the table and must not be modified.
func (d *Distribution) Probabilities() []float64 { return d.probs }

// Count returns how often outcome followed the context.
func (d *Distribution) Count(outcome string) int {
	i, ok := d.index[outcome]
	if !ok {
		return 0
	}
	return d.counts[i]
}

// Probability returns the probability of outcome and whether it was observed.
func (d *Distribution) Probability(outcome string) (float64, bool) {
	i, ok := d.index[outcome]
	if !ok {
		return 0, false
	}
	return d.probs[i], true
}

func (d *Distribution) add(outcome string, n int) {
	i, ok := d.index[outcome]
	if !ok {
		i = len(d.outcomes)
		d.index[outcome] = i
		d.outcomes = append(d.outcomes, outcome)
		d.counts = append(d.counts, 0)
	}
	d.counts[i] += n
	d.total += n
}

func (d *Distribution) merge(o *Distribution) {
	for i, outcome := range o.outcomes {
		d.add(outcome, o.counts[i])
	}
}

func (d *Distribution) normalize() {
	d.probs = make([]float64, len(d.counts))
	inv := 1.0 / float64(d.total)
	for i, c := range d.counts {
		d.probs[i] = float64(c) * inv
	}
}

// Table is an order-n context-conditioned frequency table. It is read-only
// once built and safe for concurrent readers.
type Table struct {
	order   int
	dists   map[string]*Distribution
	windows int
}

func newTable(order int) *Table {
	return &Table{
		order: order,
		dists: make(map[string]*Distribution),
	}
}

// Order returns the model order n.
func (t *Table) Order() int { return t.order }

// Len returns the number of distinct contexts.
func (t *Table) Len() int { return len(t.dists) }

// Windows returns the number of n-token windows counted.
func (t *Table) Windows() int { return t.windows }

// Entries returns the number of distinct (context, outcome) pairs.
func (t *Table) Entries() int {
	n := 0
	for _, d := range t.dists {
		n += d.Len()
	}
	return n
}

// Lookup returns the distribution for ctx.
func (t *Table) Lookup(ctx Context) (*Distribution, error) {
	if len(ctx) != t.order-1 {
		return nil, newContextError(t.order, ctx)
	}
	d, ok := t.dists[ctx.Key()]
	if !ok {
		return nil, newContextError(t.order, ctx)
	}
	return d, nil
}

// Probability returns P(outcome | ctx). Unseen pairs are errors, never zero.
func (t *Table) Probability(ctx Context, outcome string) (float64, error) {
	d, err := t.Lookup(ctx)
	if err != nil {
		return 0, err
	}
	p, ok := d.Probability(outcome)
	if !ok {
		return 0, newOutcomeError(t.order, ctx, outcome)
	}
	return p, nil
}

// Each calls fn for every context, ordered token by token.
func (t *Table) Each(fn func(ctx Context, d *Distribution)) {
	dists := make([]*Distribution, 0, len(t.dists))
	for _, d := range t.dists {
		dists = append(dists, d)
	}
	sort.Slice(dists, func(i, j int) bool {
		return slices.Compare(dists[i].context, dists[j].context) < 0
	})
	for _, d := range dists {
		fn(d.Context(), d)
	}
}

func (t *Table) distribution(ctx Context) *Distribution {
	key := ctx.Key()
	d, ok := t.dists[key]
	if !ok {
		d = newDistribution(ctx)
		t.dists[key] = d
	}
	return d
}

// countWindows counts the windows starting at positions [from, to).
func (t *Table) countWindows(tokens []string, from, to int) {
	n := t.order
	to = min(to, len(tokens)-n+1)
	for i := from; i < to; i++ {
		t.distribution(tokens[i:i+n-1]).add(tokens[i+n-1], 1)
		t.windows++
	}
}

func (t *Table) merge(o *Table) {
	for _, d := range o.dists {
		t.distribution(d.context).merge(d)
	}
	t.windows += o.windows
}

func (t *Table) normalize() {
	for _, d := range t.dists {
		d.normalize()
	}
}
