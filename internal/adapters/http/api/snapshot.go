// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// SnapshotHandler handles on-demand page capture requests.
type SnapshotHandler struct {
	deps Dependencies
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(deps Dependencies) *SnapshotHandler {
	return &SnapshotHandler{deps: deps}
}

// HandleCapture handles POST /api/snapshot requests. 202 means the capture
// is queued, 503 means the pipeline is disabled or saturated.
func (h *SnapshotHandler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	if !h.deps.EnqueueSnapshot(r.Context()) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
