// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	event "github.com/aindrila22/calendar/internal/domain/event"
)

// SessionsHandler handles surface session lifecycle and gesture requests.
type SessionsHandler struct {
	deps Dependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps Dependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

// selectRequest mirrors the range-selection gesture payload.
type selectRequest struct {
	Start  string `json:"start"`
	End    string `json:"end,omitempty"`
	AllDay bool   `json:"allDay,omitempty"`
}

// draftRequest mirrors the draft-changed gesture payload.
type draftRequest struct {
	Title string `json:"title"`
}

// eventClickRequest mirrors the event-activation gesture payload. The
// browser runs the native confirm dialog itself, so the answer arrives
// with the gesture.
type eventClickRequest struct {
	ID        string `json:"id"`
	Confirmed bool   `json:"confirmed"`
}

// submitResponse reports the outcome of a dialog submission. Created stays
// false on the empty-title no-op, and Unselect tells the page whether to
// clear its visual selection.
type submitResponse struct {
	Created  bool          `json:"created"`
	Event    *event.Record `json:"event,omitempty"`
	Unselect bool          `json:"unselect"`
}

// HandleOpen handles POST /api/sessions requests.
func (h *SessionsHandler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	id := h.deps.OpenSession(r.Context())
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// HandleClose handles DELETE /api/sessions/{id} requests.
func (h *SessionsHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.CloseSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSelect handles POST /api/sessions/{id}/select requests.
func (h *SessionsHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	start, err := event.ParseTime(req.Start)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	sel := event.Range{Start: start, AllDay: req.AllDay}
	if strings.TrimSpace(req.End) != "" {
		end, err := event.ParseTime(req.End)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		sel.End = end
	}

	if err := h.deps.SessionSelect(r.Context(), chi.URLParam(r, "id"), sel); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDraft handles POST /api/sessions/{id}/draft requests.
func (h *SessionsHandler) HandleDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := h.deps.SessionDraft(r.Context(), chi.URLParam(r, "id"), req.Title); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCancel handles POST /api/sessions/{id}/cancel requests.
func (h *SessionsHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.SessionCancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSubmit handles POST /api/sessions/{id}/submit requests.
func (h *SessionsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	rec, created, err := h.deps.SessionSubmit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := submitResponse{Created: created, Unselect: created}
	if created {
		resp.Event = &rec
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleEventClick handles POST /api/sessions/{id}/event-click requests.
func (h *SessionsHandler) HandleEventClick(w http.ResponseWriter, r *http.Request) {
	var req eventClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing event id", ErrBadRequest))
		return
	}

	deleted, err := h.deps.SessionEventClick(r.Context(), chi.URLParam(r, "id"), req.ID, req.Confirmed)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
