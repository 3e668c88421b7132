package store

import (
	"context"
	"sync"
)

// MemoryStore keeps records in a map. Records are copied on the way in and
// out so callers cannot alias stored state.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, notFound(id)
	}
	return clone(rec), nil
}

func (s *MemoryStore) Put(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp(rec)
	s.records[rec.ID] = *clone(*rec)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return notFound(id)
	}
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) List(context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, clone(rec))
	}
	sortRecords(out)
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

func clone(rec Record) *Record {
	rec.Definition.Generators = append([]string(nil), rec.Definition.Generators...)
	if rec.Definition.Base != nil {
		rec.Definition.Base = append([]int(nil), rec.Definition.Base...)
	}
	return &rec
}

var _ Store = (*MemoryStore)(nil)
