// internal/api/handler/stats_test.go
package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/newthinker/pulse/internal/core"
	"github.com/newthinker/pulse/internal/state"
	"github.com/newthinker/pulse/internal/stats"
)

func TestStatsHandler_Get(t *testing.T) {
	tracker := stats.NewTracker()
	tracker.Record(activeSignal("EURUSD", core.DirectionCall))

	h := NewStatsHandler(tracker, state.NewStore(10), nil)
	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest("GET", "/api/stats", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data stats.Snapshot `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Data.TotalSignals != 1 {
		t.Errorf("TotalSignals = %d, want 1", resp.Data.TotalSignals)
	}
	if resp.Data.Wins != 0 || resp.Data.Losses != 0 {
		t.Errorf("unresolved signal must not count as outcome: %+v", resp.Data)
	}
}

func TestStatsHandler_RecordOutcome(t *testing.T) {
	tracker := stats.NewTracker()
	store := state.NewStore(10)
	sig := store.Publish(activeSignal("EURUSD", core.DirectionCall))
	tracker.Record(sig)

	h := NewStatsHandler(tracker, store, nil)

	body := `{"signal_id":"` + sig.ID + `","outcome":"win"}`
	w := httptest.NewRecorder()
	h.RecordOutcome(w, httptest.NewRequest("POST", "/api/outcomes", strings.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	snap := tracker.Snapshot()
	if snap.Wins != 1 {
		t.Errorf("Wins = %d, want 1", snap.Wins)
	}
	if snap.WinRate != 100 {
		t.Errorf("WinRate = %d, want 100", snap.WinRate)
	}
}

func TestStatsHandler_RecordOutcome_Duplicate(t *testing.T) {
	tracker := stats.NewTracker()
	store := state.NewStore(10)
	sig := store.Publish(activeSignal("EURUSD", core.DirectionCall))
	tracker.Record(sig)

	h := NewStatsHandler(tracker, store, nil)

	body := `{"signal_id":"` + sig.ID + `","outcome":"loss"}`
	w := httptest.NewRecorder()
	h.RecordOutcome(w, httptest.NewRequest("POST", "/api/outcomes", strings.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("first outcome: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.RecordOutcome(w, httptest.NewRequest("POST", "/api/outcomes", strings.NewReader(body)))
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate outcome: expected 409, got %d", w.Code)
	}

	if snap := tracker.Snapshot(); snap.Losses != 1 {
		t.Errorf("Losses = %d, want 1 after duplicate rejection", snap.Losses)
	}
}

func TestStatsHandler_RecordOutcome_Invalid(t *testing.T) {
	tracker := stats.NewTracker()
	store := state.NewStore(10)
	sig := store.Publish(activeSignal("EURUSD", core.DirectionCall))

	h := NewStatsHandler(tracker, store, nil)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"bad outcome", `{"signal_id":"` + sig.ID + `","outcome":"draw"}`, http.StatusBadRequest},
		{"unknown signal", `{"signal_id":"nope","outcome":"win"}`, http.StatusNotFound},
		{"malformed body", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.RecordOutcome(w, httptest.NewRequest("POST", "/api/outcomes", strings.NewReader(tt.body)))
			if w.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, w.Code)
			}
		})
	}

	if snap := tracker.Snapshot(); snap.Wins != 0 || snap.Losses != 0 {
		t.Errorf("rejected outcomes must not move counters: %+v", snap)
	}
}
