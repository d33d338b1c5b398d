// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// ICSHandler handles calendar exchange requests.
type ICSHandler struct {
	deps Dependencies
}

// NewICSHandler creates a new ICS handler.
func NewICSHandler(deps Dependencies) *ICSHandler {
	return &ICSHandler{deps: deps}
}

// HandleImport handles POST /api/ics/import requests. The body is a raw
// iCalendar payload.
func (h *ICSHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	res, err := h.deps.ImportICS(r.Context(), r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_calendar", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleExport handles GET /api/ics/export requests.
func (h *ICSHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	payload := h.deps.ExportICS(r.Context())
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(payload))
}
