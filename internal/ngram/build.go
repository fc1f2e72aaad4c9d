package ngram

import (
	"context"
	"fmt"
	"sync"
)

// Build counts every window of length order over tokens and normalizes the
// counts per context. There is no padding at the sequence boundaries, so
// exactly len(tokens)-order+1 windows are counted; a sequence shorter than
// order yields an empty table.
func Build(tokens []string, order int) (*Table, error) {
	if err := ValidateOrder(order); err != nil {
		return nil, err
	}
	t := newTable(order)
	t.countWindows(tokens, 0, len(tokens))
	t.normalize()
	return t, nil
}

// BuildSharded builds the same table as Build by counting contiguous shards
// of window start positions concurrently and merging the partial counts in
// shard order before normalizing.
func BuildSharded(ctx context.Context, tokens []string, order, shards int) (*Table, error) {
	if err := ValidateOrder(order); err != nil {
		return nil, err
	}
	windows := len(tokens) - order + 1
	if shards <= 1 || windows <= shards {
		return Build(tokens, order)
	}

	size := (windows + shards - 1) / shards
	parts := make([]*Table, shards)
	errs := make([]error, shards)

	var wg sync.WaitGroup
	for i := range shards {
		from := i * size
		to := min(from+size, windows)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			part := newTable(order)
			part.countWindows(tokens, from, to)
			parts[i] = part
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("build %s shard %d: %w", OrderName(order), i, err)
		}
	}

	t := newTable(order)
	for _, part := range parts {
		t.merge(part)
	}
	t.normalize()
	return t, nil
}

// Family holds the tables of orders 1..MaxOrder() built from one sequence.
type Family struct {
	tables []*Table
}

// BuildFamily builds the tables of orders 1 through maxOrder.
func BuildFamily(tokens []string, maxOrder int) (*Family, error) {
	return buildFamily(maxOrder, func(order int) (*Table, error) {
		return Build(tokens, order)
	})
}

// BuildFamilySharded is BuildFamily with every table built by BuildSharded.
func BuildFamilySharded(ctx context.Context, tokens []string, maxOrder, shards int) (*Family, error) {
	return buildFamily(maxOrder, func(order int) (*Table, error) {
		return BuildSharded(ctx, tokens, order, shards)
	})
}

func buildFamily(maxOrder int, build func(order int) (*Table, error)) (*Family, error) {
	if err := ValidateOrder(maxOrder); err != nil {
		return nil, err
	}
	f := &Family{tables: make([]*Table, 0, maxOrder)}
	for order := 1; order <= maxOrder; order++ {
		t, err := build(order)
		if err != nil {
			return nil, err
		}
		f.tables = append(f.tables, t)
	}
	return f, nil
}

// NewFamily assembles a family from tables of orders 1, 2, ... in sequence.
func NewFamily(tables ...*Table) (*Family, error) {
	if len(tables) == 0 {
		return nil, &OrderError{Order: 0, Max: MaxOrder}
	}
	if err := ValidateOrder(len(tables)); err != nil {
		return nil, err
	}
	for i, t := range tables {
		if t == nil || t.order != i+1 {
			return nil, fmt.Errorf("family: table %d has wrong order", i+1)
		}
	}
	return &Family{tables: tables}, nil
}

// MaxOrder returns the highest order held by the family.
func (f *Family) MaxOrder() int { return len(f.tables) }

// Table returns the order-n table.
func (f *Family) Table(order int) (*Table, error) {
	if order < 1 || order > len(f.tables) {
		return nil, &OrderError{Order: order, Max: len(f.tables)}
	}
	return f.tables[order-1], nil
}

// Stats describes the size of one table.
type Stats struct {
	Order    int    `json:"order"`
	Name     string `json:"name"`
	Contexts int    `json:"contexts"`
	Entries  int    `json:"entries"`
	Windows  int    `json:"windows"`
}

// Stats returns the size of t.
func (t *Table) Stats() Stats {
	return Stats{
		Order:    t.order,
		Name:     OrderName(t.order),
		Contexts: t.Len(),
		Entries:  t.Entries(),
		Windows:  t.windows,
	}
}

// Stats returns the size of every table, lowest order first.
func (f *Family) Stats() []Stats {
	out := make([]Stats, len(f.tables))
	for i, t := range f.tables {
		out[i] = t.Stats()
	}
	return out
}
