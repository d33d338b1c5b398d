// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	agenda "github.com/aindrila22/calendar/internal/domain/agenda"
)

// AgendaHandler handles side-list requests.
type AgendaHandler struct {
	deps Dependencies
}

// NewAgendaHandler creates a new agenda handler.
func NewAgendaHandler(deps Dependencies) *AgendaHandler {
	return &AgendaHandler{deps: deps}
}

// agendaResponse carries the day groups plus the placeholder the page
// renders when the calendar is empty.
type agendaResponse struct {
	Days        []agenda.Day `json:"days"`
	Empty       bool         `json:"empty"`
	Placeholder string       `json:"placeholder,omitempty"`
}

// HandleGetAgenda handles GET /api/agenda requests.
func (h *AgendaHandler) HandleGetAgenda(w http.ResponseWriter, r *http.Request) {
	days := h.deps.Agenda(r.Context())
	resp := agendaResponse{Days: days, Empty: len(days) == 0}
	if resp.Empty {
		resp.Days = []agenda.Day{}
		resp.Placeholder = agenda.EmptyText
	}
	writeJSON(w, http.StatusOK, resp)
}
