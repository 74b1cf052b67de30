package api

import (
	"net/http"

	"github.com/okian/hyperreal/internal/domain/model"
)

// StateProvider returns the current match state.
type StateProvider interface {
	State() model.MatchState
}

// StateHandler handles match state requests.
type StateHandler struct {
	deps StateProvider
}

// NewStateHandler creates a new state handler.
func NewStateHandler(deps StateProvider) *StateHandler {
	return &StateHandler{deps: deps}
}

// HandleState handles GET /state requests.
func (h *StateHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.State())
}
