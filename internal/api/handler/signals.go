// internal/api/handler/signals.go
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/newthinker/pulse/internal/api/response"
	"github.com/newthinker/pulse/internal/core"
	"github.com/newthinker/pulse/internal/state"
)

// SignalsHandler serves the latest signal slot and the signal history.
type SignalsHandler struct {
	store *state.Store
}

// NewSignalsHandler creates a new signals handler.
func NewSignalsHandler(store *state.Store) *SignalsHandler {
	return &SignalsHandler{store: store}
}

// Latest returns the current signal. Until the first refresh completes
// there is nothing to serve and the endpoint answers 404.
func (h *SignalsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	sig, ok := h.store.Latest()
	if !ok {
		response.ErrorStatus(w, core.ErrSignalNotFound)
		return
	}
	response.JSON(w, http.StatusOK, sig)
}

// List returns history entries matching query parameters.
func (h *SignalsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := state.ListFilter{
		Asset:  q.Get("asset"),
		Source: q.Get("source"),
	}

	if direction := q.Get("direction"); direction != "" {
		filter.Direction = core.Direction(direction)
	}
	if status := q.Get("status"); status != "" {
		filter.Status = core.Status(status)
	}

	if from := q.Get("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = t
		} else if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.From = t
		}
	}

	if to := q.Get("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = t
		} else if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.To = t
		}
	}

	if limit := q.Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			filter.Limit = n
		}
	} else {
		filter.Limit = 50 // Default limit
	}

	if offset := q.Get("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil {
			filter.Offset = n
		}
	}

	signals := h.store.List(filter)
	count := h.store.Count(filter)

	response.JSON(w, http.StatusOK, map[string]any{
		"signals": signals,
		"total":   count,
		"limit":   filter.Limit,
		"offset":  filter.Offset,
	})
}

// GetByID returns a single published signal by ID.
func (h *SignalsHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	sig, err := h.store.GetByID(id)
	if err != nil {
		response.ErrorStatus(w, err)
		return
	}
	response.JSON(w, http.StatusOK, sig)
}
