// Package state holds the shared dashboard state: the single
// authoritative latest-signal slot, the connection state of the feed,
// and a bounded in-memory history of published signals. Both the
// polling scheduler and the realtime stream write through it.
package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/pulse/internal/core"
)

// Store is the in-memory dashboard state.
type Store struct {
	mu      sync.RWMutex
	latest  *core.Signal
	conn    core.ConnectionState
	history []core.Signal
	maxSize int
}

// NewStore creates a store keeping at most maxHistory signals.
func NewStore(maxHistory int) *Store {
	if maxHistory <= 0 {
		maxHistory = 500
	}
	return &Store{
		history: make([]core.Signal, 0, maxHistory),
		maxSize: maxHistory,
	}
}

// Publish overwrites the latest slot with the signal, assigns an ID and
// timestamp if absent, and appends it to history. The previous signal
// is superseded whole; readers never observe a partial update.
func (s *Store) Publish(sig core.Signal) core.Signal {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sig.ID == "" {
		sig.ID = uuid.NewString()
	}
	if sig.Timestamp.IsZero() {
		sig.Timestamp = time.Now()
	}

	s.latest = &sig
	s.history = append(s.history, sig)

	// Trim if over capacity (remove oldest)
	if len(s.history) > s.maxSize {
		s.history = s.history[len(s.history)-s.maxSize:]
	}

	return sig
}

// Latest returns the current signal, if any.
func (s *Store) Latest() (core.Signal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return core.Signal{}, false
	}
	return *s.latest, true
}

// SetConnection records the outcome of the most recent fetch.
func (s *Store) SetConnection(c core.ConnectionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn = c
}

// Connection returns the feed connection state.
func (s *Store) Connection() core.ConnectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn
}

// GetByID retrieves a published signal by ID.
func (s *Store) GetByID(id string) (*core.Signal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.history {
		if s.history[i].ID == id {
			sig := s.history[i]
			return &sig, nil
		}
	}
	return nil, core.ErrSignalNotFound
}

// ListFilter defines criteria for listing signals.
type ListFilter struct {
	Asset     string
	Direction core.Direction
	Status    core.Status
	Source    string
	From      time.Time
	To        time.Time
	Limit     int
	Offset    int
}

// List returns history entries matching the filter, oldest first.
func (s *Store) List(filter ListFilter) []core.Signal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []core.Signal
	for _, sig := range s.history {
		if s.matches(sig, filter) {
			result = append(result, sig)
		}
	}

	if filter.Offset > 0 && filter.Offset < len(result) {
		result = result[filter.Offset:]
	} else if filter.Offset >= len(result) && filter.Offset > 0 {
		return []core.Signal{}
	}

	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result
}

// Count returns the count of matching history entries.
func (s *Store) Count(filter ListFilter) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, sig := range s.history {
		if s.matches(sig, filter) {
			count++
		}
	}
	return count
}

func (s *Store) matches(sig core.Signal, filter ListFilter) bool {
	if filter.Asset != "" && sig.Asset != filter.Asset {
		return false
	}
	if filter.Direction != "" && sig.Direction != filter.Direction {
		return false
	}
	if filter.Status != "" && sig.Status != filter.Status {
		return false
	}
	if filter.Source != "" && sig.Source != filter.Source {
		return false
	}
	if !filter.From.IsZero() && sig.Timestamp.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && sig.Timestamp.After(filter.To) {
		return false
	}
	return true
}
