// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// EventsHandler handles event list requests.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleGetEvents handles GET /api/events requests. The response is the
// store snapshot in the same wire shape the persistence layer stores, so
// the calendar page can feed it straight into its grid.
func (h *EventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	records := h.deps.Events(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"events": records,
		"count":  len(records),
	})
}
