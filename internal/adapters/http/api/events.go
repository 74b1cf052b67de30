package api

import (
	"net/http"
	"strconv"

	"github.com/okian/hyperreal/internal/domain/model"
)

const (
	defaultEventsLimit    = 20
	defaultMaxEventsLimit = 500
)

// EventsProvider returns the latest match events.
type EventsProvider interface {
	RecentEvents(n int) []model.Event
}

// EventsHandler handles event history requests.
type EventsHandler struct {
	deps     EventsProvider
	maxLimit int
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventsProvider, maxLimit int) *EventsHandler {
	if maxLimit < 1 {
		maxLimit = defaultMaxEventsLimit
	}
	return &EventsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetEvents handles GET /events?limit=N. Events are returned oldest
// first; limit defaults to 20.
func (h *EventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_events"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := defaultEventsLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", opError(op, ErrBadRequest, "limit must be a positive integer"))
			return
		}
		n = v
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", opError(op, ErrBadRequest, "limit above "+strconv.Itoa(h.maxLimit)))
		return
	}
	events := h.deps.RecentEvents(n)
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
