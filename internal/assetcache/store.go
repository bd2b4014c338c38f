package assetcache

import (
	"context"
	"net/http"
	"sync"
)

// Entry is one cached response.
type Entry struct {
	URL    string      `json:"url"`
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// Store holds cached responses grouped by cache generation. A generation is
// replaced wholesale on version bumps, never entry by entry.
type Store interface {
	Get(ctx context.Context, generation, url string) (*Entry, bool, error)
	Put(ctx context.Context, generation, url string, e *Entry) error

	Generations(ctx context.Context) ([]string, error)
	DeleteGeneration(ctx context.Context, generation string) error
}

// --------------------------------------------------
// In-memory store
// --------------------------------------------------

type MemoryStore struct {
	mu   sync.RWMutex
	gens map[string]map[string]*Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{gens: make(map[string]map[string]*Entry)}
}

func (s *MemoryStore) Get(ctx context.Context, generation, url string) (*Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.gens[generation]
	if !ok {
		return nil, false, nil
	}
	e, ok := entries[url]
	if !ok {
		return nil, false, nil
	}
	return e, true, nil
}

func (s *MemoryStore) Put(ctx context.Context, generation, url string, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gens[generation] == nil {
		s.gens[generation] = make(map[string]*Entry)
	}
	s.gens[generation][url] = e
	return nil
}

func (s *MemoryStore) Generations(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.gens))
	for g := range s.gens {
		out = append(out, g)
	}
	return out, nil
}

func (s *MemoryStore) DeleteGeneration(ctx context.Context, generation string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.gens, generation)
	return nil
}

var _ Store = (*MemoryStore)(nil)
