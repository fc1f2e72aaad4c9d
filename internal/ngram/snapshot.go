package ngram

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

const snapshotVersion = 1

var ErrInvalidSnapshot = errors.New("invalid_snapshot")

type snapshot struct {
	Version int             `json:"version"`
	Tables  []tableSnapshot `json:"tables"`
}

type tableSnapshot struct {
	Order    int               `json:"order"`
	Contexts []contextSnapshot `json:"contexts"`
}

type contextSnapshot struct {
	Context  []string `json:"context"`
	Outcomes []string `json:"outcomes"`
	Counts   []int    `json:"counts"`
}

// WriteSnapshot encodes the raw counts of every table in f as JSON.
// Probabilities are derived again on load.
func WriteSnapshot(w io.Writer, f *Family) error {
	snap := snapshot{
		Version: snapshotVersion,
		Tables:  make([]tableSnapshot, 0, len(f.tables)),
	}
	for _, t := range f.tables {
		ts := tableSnapshot{
			Order:    t.order,
			Contexts: make([]contextSnapshot, 0, t.Len()),
		}
		t.Each(func(ctx Context, d *Distribution) {
			counts := make([]int, len(d.counts))
			copy(counts, d.counts)
			ts.Contexts = append(ts.Contexts, contextSnapshot{
				Context:  ctx,
				Outcomes: d.Outcomes(),
				Counts:   counts,
			})
		})
		snap.Tables = append(snap.Tables, ts)
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a family written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Family, error) {
	var snap snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, snap.Version)
	}

	tables := make([]*Table, 0, len(snap.Tables))
	for _, ts := range snap.Tables {
		t, err := tableFromSnapshot(ts)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return NewFamily(tables...)
}

func tableFromSnapshot(ts tableSnapshot) (*Table, error) {
	if err := ValidateOrder(ts.Order); err != nil {
		return nil, err
	}
	t := newTable(ts.Order)
	for _, cs := range ts.Contexts {
		if len(cs.Context) != ts.Order-1 {
			return nil, fmt.Errorf("%w: %s context %v has length %d", ErrInvalidSnapshot, OrderName(ts.Order), cs.Context, len(cs.Context))
		}
		if len(cs.Outcomes) == 0 || len(cs.Outcomes) != len(cs.Counts) {
			return nil, fmt.Errorf("%w: %s context %v has %d outcomes and %d counts", ErrInvalidSnapshot, OrderName(ts.Order), cs.Context, len(cs.Outcomes), len(cs.Counts))
		}
		if _, dup := t.dists[Context(cs.Context).Key()]; dup {
			return nil, fmt.Errorf("%w: duplicate %s context %v", ErrInvalidSnapshot, OrderName(ts.Order), cs.Context)
		}
		d := t.distribution(cs.Context)
		for i, outcome := range cs.Outcomes {
			if cs.Counts[i] <= 0 {
				return nil, fmt.Errorf("%w: non-positive count for %q", ErrInvalidSnapshot, outcome)
			}
			d.add(outcome, cs.Counts[i])
		}
		t.windows += d.total
	}
	t.normalize()
	return t, nil
}
