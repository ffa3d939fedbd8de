package market

import (
	"sort"
	"sync"
	"time"

	"polypaper/internal/domain"
)

// Store keeps the latest known snapshot per market id. The feed ingestor is
// the only writer; any number of readers may call Get concurrently.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]domain.Snapshot
}

// NewStore creates an empty market state store.
func NewStore() *Store {
	return &Store{snapshots: make(map[string]domain.Snapshot)}
}

// ApplyUpdate overwrites (or creates) the snapshot for marketID with the
// provided quote fields and stamps it with the current time. Last writer
// wins, no plausibility checks.
func (s *Store) ApplyUpdate(marketID string, quote domain.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[marketID] = domain.Snapshot{
		MarketID:  marketID,
		Quote:     quote,
		UpdatedAt: time.Now(),
	}
}

// Get returns a copy of the most recently applied snapshot for marketID.
func (s *Store) Get(marketID string) (domain.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[marketID]
	return snap, ok
}

// Len returns the number of markets seen so far.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.snapshots)
}

// Snapshots returns all known snapshots ordered by market id.
func (s *Store) Snapshots() []domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Snapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MarketID < out[j].MarketID })
	return out
}
