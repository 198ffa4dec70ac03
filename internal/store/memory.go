package store

import (
	"errors"
	"sync"
	"time"

	"nordcast/pkg/locationforecast"
)

var (
	// ErrNotFound is returned when no record is available for a given location.
	ErrNotFound = errors.New("no forecast record for location")
)

type entry struct {
	record    *locationforecast.Response
	fetchedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory cache of the latest forecast
// record per location key. Records are immutable, so a single record per
// key is all the history the cache needs: the record itself carries its
// freshness deadline and revalidation token.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]entry),
	}
}

// Save replaces the record for a location key.
func (s *MemoryStore) Save(key string, record *locationforecast.Response) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = entry{
		record:    record,
		fetchedAt: time.Now().UTC(),
	}
}

// Latest returns the stored record for a location key.
func (s *MemoryStore) Latest(key string) (*locationforecast.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return e.record, nil
}

// FetchedAt returns when the record for a location key was last stored.
func (s *MemoryStore) FetchedAt(key string) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.records[key]
	if !ok {
		return time.Time{}, ErrNotFound
	}
	return e.fetchedAt, nil
}
