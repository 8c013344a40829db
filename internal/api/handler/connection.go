// internal/api/handler/connection.go
package handler

import (
	"net/http"

	"github.com/newthinker/pulse/internal/api/response"
	"github.com/newthinker/pulse/internal/state"
)

// ConnectionHandler reports the state of the signal feed.
type ConnectionHandler struct {
	store *state.Store
}

// NewConnectionHandler creates a connection handler.
func NewConnectionHandler(store *state.Store) *ConnectionHandler {
	return &ConnectionHandler{store: store}
}

// Get returns the outcome of the most recent fetch.
func (h *ConnectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.store.Connection())
}
