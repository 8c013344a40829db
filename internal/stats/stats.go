// Package stats tracks running counters over published signals. Wins
// and losses are only counted from reported outcome evidence, never
// assumed at dispatch time.
package stats

import (
	"math"
	"sync"

	"github.com/newthinker/pulse/internal/core"
)

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	TotalSignals  int `json:"total_signals"`
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	WinRate       int `json:"win_rate"`
	AvgConfidence int `json:"avg_confidence"`
}

// Tracker accumulates signal and outcome counters.
type Tracker struct {
	mu            sync.RWMutex
	total         int
	wins          int
	losses        int
	confidenceSum int
	resolved      map[string]bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{resolved: make(map[string]bool)}
}

// Record counts a published signal into the totals.
func (t *Tracker) Record(sig core.Signal) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	t.confidenceSum += sig.Confidence
}

// Resolve records outcome evidence for a signal. Each signal resolves
// at most once.
func (t *Tracker) Resolve(signalID string, win bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.resolved[signalID] {
		return core.ErrOutcomeRecorded
	}
	t.resolved[signalID] = true

	if win {
		t.wins++
	} else {
		t.losses++
	}
	return nil
}

// Snapshot returns the current counters. The win rate is computed over
// resolved outcomes only.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Snapshot{
		TotalSignals: t.total,
		Wins:         t.wins,
		Losses:       t.losses,
	}

	if resolved := t.wins + t.losses; resolved > 0 {
		s.WinRate = int(math.Round(float64(t.wins) / float64(resolved) * 100))
	}
	if t.total > 0 {
		s.AvgConfidence = int(math.Round(float64(t.confidenceSum) / float64(t.total)))
	}

	return s
}
