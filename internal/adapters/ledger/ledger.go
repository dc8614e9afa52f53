// Package ledger keeps cumulative XP per player in process memory.
package ledger

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
)

// Entry is a player's cumulative standing in the ledger.
type Entry struct {
	PlayerID string `json:"player_id"`
	XP       int64  `json:"xp"`
	Matches  int    `json:"matches"`
}

// Store provides read/write access to cumulative XP.
type Store interface {
	// Add credits delta XP to playerID, creating the player on first use.
	// It returns the XP before and after the change.
	Add(ctx context.Context, playerID string, delta int64) (before, after int64, err error)

	// Get returns the entry for playerID or ErrNotFound.
	Get(ctx context.Context, playerID string) (Entry, error)

	// TopN returns up to n entries ordered by XP desc, then player id.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of players tracked.
	Count(ctx context.Context) int
}

// MemoryStore implements Store with a mutex-guarded map.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Entry)}
}

// Add implements Store.
func (s *MemoryStore) Add(_ context.Context, playerID string, delta int64) (int64, int64, error) {
	if strings.TrimSpace(playerID) == "" {
		return 0, 0, ErrEmptyPlayerID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[playerID]
	if !ok {
		e = &Entry{PlayerID: playerID}
		s.entries[playerID] = e
	}
	before := e.XP
	e.XP += delta
	e.Matches++
	return before, e.XP, nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, playerID string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[playerID]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return *e, nil
}

// TopN implements Store.
func (s *MemoryStore) TopN(_ context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}
	s.mu.RLock()
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, *e)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(b.XP, a.XP); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
