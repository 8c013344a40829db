package stats

import (
	"errors"
	"testing"

	"github.com/newthinker/pulse/internal/core"
)

func TestTracker_Empty(t *testing.T) {
	tr := NewTracker()

	s := tr.Snapshot()
	if s.TotalSignals != 0 || s.Wins != 0 || s.Losses != 0 || s.WinRate != 0 || s.AvgConfidence != 0 {
		t.Errorf("empty tracker should be all zeros: %+v", s)
	}
}

func TestTracker_Record(t *testing.T) {
	tr := NewTracker()

	tr.Record(core.Signal{Confidence: 80})
	tr.Record(core.Signal{Confidence: 90})

	s := tr.Snapshot()
	if s.TotalSignals != 2 {
		t.Errorf("total = %d, want 2", s.TotalSignals)
	}
	if s.AvgConfidence != 85 {
		t.Errorf("avg confidence = %d, want 85", s.AvgConfidence)
	}
	// No outcomes reported yet: nothing is assumed won.
	if s.Wins != 0 || s.WinRate != 0 {
		t.Errorf("unresolved signals must not count as wins: %+v", s)
	}
}

func TestTracker_Resolve(t *testing.T) {
	tr := NewTracker()
	tr.Record(core.Signal{ID: "a", Confidence: 85})
	tr.Record(core.Signal{ID: "b", Confidence: 85})
	tr.Record(core.Signal{ID: "c", Confidence: 85})

	if err := tr.Resolve("a", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tr.Resolve("b", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tr.Resolve("c", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := tr.Snapshot()
	if s.Wins != 2 || s.Losses != 1 {
		t.Errorf("wins/losses = %d/%d, want 2/1", s.Wins, s.Losses)
	}
	if s.WinRate != 67 {
		t.Errorf("win rate = %d, want 67", s.WinRate)
	}
}

func TestTracker_ResolveOnce(t *testing.T) {
	tr := NewTracker()
	tr.Record(core.Signal{ID: "a", Confidence: 85})

	if err := tr.Resolve("a", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tr.Resolve("a", false); !errors.Is(err, core.ErrOutcomeRecorded) {
		t.Errorf("expected ErrOutcomeRecorded on duplicate, got %v", err)
	}

	s := tr.Snapshot()
	if s.Wins != 1 || s.Losses != 0 {
		t.Errorf("duplicate resolve must not change counters: %+v", s)
	}
}
