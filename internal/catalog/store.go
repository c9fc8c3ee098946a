package catalog

import (
	"sync"
	"sync/atomic"

	"github.com/Abdus2609/vizor/internal/models"
)

// Store holds the current snapshot. Readers load it without locking; a
// refresh builds a complete new snapshot and swaps it in.
type Store struct {
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex
}

func NewStore() *Store {
	s := &Store{}
	s.current.Store(newSnapshot(0, nil))
	return s
}

// Current never returns nil. Before the first Replace it is an empty snapshot at version 0.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Replace installs tables as the next version.
func (s *Store) Replace(tables []models.TableMetadata) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := newSnapshot(s.current.Load().Version+1, tables)
	s.current.Store(next)
	return next
}

// Reset drops back to an empty catalog, e.g. after switching datasource.
func (s *Store) Reset() *Snapshot {
	return s.Replace(nil)
}
