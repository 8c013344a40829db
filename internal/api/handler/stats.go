// internal/api/handler/stats.go
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/newthinker/pulse/internal/api/response"
	"github.com/newthinker/pulse/internal/core"
	"github.com/newthinker/pulse/internal/metrics"
	"github.com/newthinker/pulse/internal/state"
	"github.com/newthinker/pulse/internal/stats"
)

// StatsHandler serves session counters and accepts outcome reports.
type StatsHandler struct {
	tracker *stats.Tracker
	store   *state.Store
	metrics *metrics.Registry
}

// NewStatsHandler creates a new stats handler. The metrics registry may
// be nil.
func NewStatsHandler(tracker *stats.Tracker, store *state.Store, reg *metrics.Registry) *StatsHandler {
	return &StatsHandler{tracker: tracker, store: store, metrics: reg}
}

// Get returns the current counter snapshot.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.tracker.Snapshot())
}

type outcomeRequest struct {
	SignalID string `json:"signal_id"`
	Outcome  string `json:"outcome"`
}

// RecordOutcome resolves a published signal as won or lost. The signal
// must exist in history and resolves at most once.
func (h *StatsHandler) RecordOutcome(w http.ResponseWriter, r *http.Request) {
	var req outcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorStatus(w, core.WrapError(core.ErrOutcomeInvalid,
			fmt.Errorf("decoding request: %w", err)))
		return
	}

	if req.Outcome != "win" && req.Outcome != "loss" {
		response.ErrorStatus(w, core.WrapError(core.ErrOutcomeInvalid,
			fmt.Errorf("got %q", req.Outcome)))
		return
	}

	if _, err := h.store.GetByID(req.SignalID); err != nil {
		response.ErrorStatus(w, err)
		return
	}

	if err := h.tracker.Resolve(req.SignalID, req.Outcome == "win"); err != nil {
		response.ErrorStatus(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordOutcome(req.Outcome)
	}

	response.JSON(w, http.StatusOK, h.tracker.Snapshot())
}
