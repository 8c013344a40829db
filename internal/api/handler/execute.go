// internal/api/handler/execute.go
package handler

import (
	"errors"
	"net/http"

	"github.com/newthinker/pulse/internal/api/response"
	"github.com/newthinker/pulse/internal/bridge"
	"github.com/newthinker/pulse/internal/core"
	"github.com/newthinker/pulse/internal/metrics"
	"github.com/newthinker/pulse/internal/state"
	"go.uber.org/zap"
)

// ExecuteHandler turns the latest signal into a trade ticket on the
// system clipboard.
type ExecuteHandler struct {
	store   *state.Store
	bridge  *bridge.Bridge
	metrics *metrics.Registry
	logger  *zap.Logger
}

// NewExecuteHandler creates an execute handler. The metrics registry
// may be nil.
func NewExecuteHandler(store *state.Store, b *bridge.Bridge, reg *metrics.Registry, logger *zap.Logger) *ExecuteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecuteHandler{store: store, bridge: b, metrics: reg, logger: logger}
}

// Execute builds a ticket from the latest signal and copies it to the
// clipboard. A missing or inactive signal is rejected without touching
// any counters. When no clipboard is available the ticket is still
// returned so the caller can copy it manually.
func (h *ExecuteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sig, ok := h.store.Latest()
	if !ok {
		h.record("rejected")
		response.ErrorStatus(w, core.ErrNoActiveSignal)
		return
	}

	ticket, err := h.bridge.Execute(sig)
	if err != nil {
		h.record("rejected")
		response.ErrorStatus(w, err)
		return
	}

	copied := true
	if err := bridge.Copy(ticket); err != nil {
		if !errors.Is(err, core.ErrClipboardUnavailable) {
			h.record("failed")
			response.ErrorStatus(w, err)
			return
		}
		h.logger.Warn("clipboard unavailable, returning ticket for manual copy")
		copied = false
	}

	if copied {
		h.record("copied")
	} else {
		h.record("manual")
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"ticket":    ticket.Text,
		"trade_url": ticket.TradeURL,
		"copied":    copied,
	})
}

func (h *ExecuteHandler) record(status string) {
	if h.metrics != nil {
		h.metrics.RecordExecution(status)
	}
}
