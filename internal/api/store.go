package api

import (
	"sort"
	"sync"
	"time"

	"github.com/samcharles93/ngramlab/internal/corpus"
	"github.com/samcharles93/ngramlab/internal/ngram"
)

type modelRecord struct {
	ID        string
	CreatedAt time.Time
	Family    *ngram.Family
	Tokens    int
	Options   corpus.Options
}

func (r *modelRecord) response() ModelResponse {
	return ModelResponse{
		ID:        r.ID,
		Object:    "model",
		CreatedAt: r.CreatedAt.Unix(),
		Tokens:    r.Tokens,
		MaxOrder:  r.Family.MaxOrder(),
		Stats:     r.Family.Stats(),
	}
}

// ModelStore keeps built model families in memory. Families are read-only,
// so records can be used concurrently once returned.
type ModelStore struct {
	mu     sync.Mutex
	models map[string]*modelRecord
}

func NewModelStore() *ModelStore {
	return &ModelStore{
		models: make(map[string]*modelRecord),
	}
}

func (s *ModelStore) Create(family *ngram.Family, tokens int, opts corpus.Options, now time.Time) *modelRecord {
	rec := &modelRecord{
		ID:        newModelID(),
		CreatedAt: now,
		Family:    family,
		Tokens:    tokens,
		Options:   opts,
	}
	s.mu.Lock()
	s.models[rec.ID] = rec
	s.mu.Unlock()
	return rec
}

func (s *ModelStore) Get(id string) (*modelRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.models[id]
	return rec, ok
}

func (s *ModelStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.models[id]; !ok {
		return false
	}
	delete(s.models, id)
	return true
}

// List returns every record, oldest first.
func (s *ModelStore) List() []*modelRecord {
	s.mu.Lock()
	out := make([]*modelRecord, 0, len(s.models))
	for _, rec := range s.models {
		out = append(out, rec)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
