// Package cache keeps recently built similarity matrices in memory so later
// requests can rank against them by ID.
package cache

import (
	"sync/atomic"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jonathan/learning-recommender/internal/similarity"
)

// DefaultSize is used when a non-positive size is requested.
const DefaultSize = 32

// EvictFunc is called when a snapshot is pushed out of the cache.
type EvictFunc func(id uuid.UUID, m *similarity.Matrix)

// Snapshots is a bounded LRU of immutable similarity matrices keyed by UUID.
// Matrices are read-only after Build, so callers may share them freely.
type Snapshots struct {
	entries   *lru.Cache[uuid.UUID, *similarity.Matrix]
	onEvict   EvictFunc
	evictions atomic.Int64
}

// NewSnapshots creates a cache holding at most size matrices.
func NewSnapshots(size int, onEvict EvictFunc) *Snapshots {
	if size <= 0 {
		size = DefaultSize
	}
	s := &Snapshots{onEvict: onEvict}
	// lru.NewWithEvict only fails for a non-positive size.
	entries, _ := lru.NewWithEvict[uuid.UUID, *similarity.Matrix](size, s.handleEviction)
	s.entries = entries
	return s
}

func (s *Snapshots) handleEviction(id uuid.UUID, m *similarity.Matrix) {
	s.evictions.Add(1)
	if s.onEvict != nil {
		s.onEvict(id, m)
	}
}

// Put stores m under a fresh ID and returns it.
func (s *Snapshots) Put(m *similarity.Matrix) uuid.UUID {
	id := uuid.New()
	s.entries.Add(id, m)
	return id
}

// Get returns the matrix stored under id, marking it recently used.
func (s *Snapshots) Get(id uuid.UUID) (*similarity.Matrix, bool) {
	return s.entries.Get(id)
}

// Remove drops id from the cache. It reports whether the entry existed.
func (s *Snapshots) Remove(id uuid.UUID) bool {
	return s.entries.Remove(id)
}

// Len returns the number of cached matrices.
func (s *Snapshots) Len() int {
	return s.entries.Len()
}

// Evictions returns how many snapshots have left the cache, including removals.
func (s *Snapshots) Evictions() int64 {
	return s.evictions.Load()
}
