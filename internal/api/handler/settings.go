// internal/api/handler/settings.go
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/newthinker/pulse/internal/api/response"
	"github.com/newthinker/pulse/internal/core"
	"github.com/newthinker/pulse/internal/scheduler"
)

// SettingsHandler exposes the scheduler's asset selection.
type SettingsHandler struct {
	sched *scheduler.Scheduler
}

// NewSettingsHandler creates a settings handler.
func NewSettingsHandler(sched *scheduler.Scheduler) *SettingsHandler {
	return &SettingsHandler{sched: sched}
}

type settingsPayload struct {
	Asset     string `json:"asset"`
	OTC       bool   `json:"otc"`
	Timeframe string `json:"timeframe"`
}

// Get returns the current refresh settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := h.sched.Config()
	response.JSON(w, http.StatusOK, settingsPayload{
		Asset:     cfg.Asset,
		OTC:       cfg.OTC,
		Timeframe: string(cfg.Timeframe),
	})
}

// Update retargets the refresh cycle at a different asset or session.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorStatus(w, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("decoding request: %w", err)))
		return
	}

	if req.Asset == "" {
		response.ErrorStatus(w, core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("asset is required")))
		return
	}

	if err := h.sched.Reconfigure(req.Asset, req.OTC, core.Expiry(req.Timeframe)); err != nil {
		response.ErrorStatus(w, err)
		return
	}

	h.Get(w, r)
}
