// internal/api/handler/technical.go
package handler

import (
	"net/http"
	"strconv"

	"github.com/newthinker/pulse/internal/api/response"
	"github.com/newthinker/pulse/internal/scheduler"
	"github.com/newthinker/pulse/internal/source"
)

// TechnicalHandler serves the indicator snapshot for an asset.
type TechnicalHandler struct {
	adapter *source.Adapter
	sched   *scheduler.Scheduler
}

// NewTechnicalHandler creates a technical handler. The scheduler
// supplies default asset and session when the query omits them.
func NewTechnicalHandler(adapter *source.Adapter, sched *scheduler.Scheduler) *TechnicalHandler {
	return &TechnicalHandler{adapter: adapter, sched: sched}
}

// Get returns the indicator snapshot, falling back to generated data
// when the live feed is unreachable.
func (h *TechnicalHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	cfg := h.sched.Config()
	asset := cfg.Asset
	otc := cfg.OTC

	if a := q.Get("asset"); a != "" {
		asset = a
	}
	if o := q.Get("otc"); o != "" {
		if b, err := strconv.ParseBool(o); err == nil {
			otc = b
		}
	}

	snap, conn := h.adapter.Technical(r.Context(), asset, otc)
	response.JSON(w, http.StatusOK, map[string]any{
		"asset":      asset,
		"technical":  snap,
		"connection": conn,
	})
}
