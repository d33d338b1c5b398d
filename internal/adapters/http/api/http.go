// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	ics "github.com/aindrila22/calendar/internal/adapters/ics"
	surface "github.com/aindrila22/calendar/internal/adapters/surface"
	agenda "github.com/aindrila22/calendar/internal/domain/agenda"
	event "github.com/aindrila22/calendar/internal/domain/event"
	store "github.com/aindrila22/calendar/internal/domain/store"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Events returns the store snapshot in wire shape.
	Events(ctx context.Context) []event.Record

	// Agenda returns the chronological side-list groups.
	Agenda(ctx context.Context) []agenda.Day

	// Session lifecycle for remote calendar surfaces.
	OpenSession(ctx context.Context) string
	CloseSession(ctx context.Context, id string) error

	// Gestures forwarded by the calendar page.
	SessionSelect(ctx context.Context, id string, r event.Range) error
	SessionDraft(ctx context.Context, id, title string) error
	SessionCancel(ctx context.Context, id string) error
	SessionSubmit(ctx context.Context, id string) (event.Record, bool, error)
	SessionEventClick(ctx context.Context, id, eventID string, confirmed bool) (bool, error)

	// Calendar exchange.
	ImportICS(ctx context.Context, r io.Reader) (ics.Result, error)
	ExportICS(ctx context.Context) string

	// EnqueueSnapshot queues a page capture. Returns false on backpressure
	// or when the pipeline is disabled.
	EnqueueSnapshot(ctx context.Context) bool
}

// Server wires HTTP routes for the calendar API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	eventsHandler   *EventsHandler
	agendaHandler   *AgendaHandler
	sessionsHandler *SessionsHandler
	icsHandler      *ICSHandler
	snapshotHandler *SnapshotHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		eventsHandler:   NewEventsHandler(deps),
		agendaHandler:   NewAgendaHandler(deps),
		sessionsHandler: NewSessionsHandler(deps),
		icsHandler:      NewICSHandler(deps),
		snapshotHandler: NewSnapshotHandler(deps),
	}
}

// Register attaches all HTTP routes to the router.
func (s *Server) Register(ctx context.Context, r chi.Router) {
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/readyz", MetricsMiddleware(s.healthHandler.HandleReady, "readyz"))
	r.Get("/metrics", s.healthHandler.HandleMetrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", MetricsMiddleware(s.eventsHandler.HandleGetEvents, "events"))
		r.Get("/agenda", MetricsMiddleware(s.agendaHandler.HandleGetAgenda, "agenda"))
		r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

		r.Post("/sessions", MetricsMiddleware(s.sessionsHandler.HandleOpen, "sessions"))
		r.Delete("/sessions/{id}", MetricsMiddleware(s.sessionsHandler.HandleClose, "sessions"))
		r.Post("/sessions/{id}/select", MetricsMiddleware(s.sessionsHandler.HandleSelect, "session_select"))
		r.Post("/sessions/{id}/draft", MetricsMiddleware(s.sessionsHandler.HandleDraft, "session_draft"))
		r.Post("/sessions/{id}/cancel", MetricsMiddleware(s.sessionsHandler.HandleCancel, "session_cancel"))
		r.Post("/sessions/{id}/submit", MetricsMiddleware(s.sessionsHandler.HandleSubmit, "session_submit"))
		r.Post("/sessions/{id}/event-click", MetricsMiddleware(s.sessionsHandler.HandleEventClick, "session_event_click"))

		r.Post("/ics/import", MetricsMiddleware(s.icsHandler.HandleImport, "ics_import"))
		r.Get("/ics/export", MetricsMiddleware(s.icsHandler.HandleExport, "ics_export"))

		r.Post("/snapshot", MetricsMiddleware(s.snapshotHandler.HandleCapture, "snapshot"))
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps domain sentinel errors onto status codes in one
// place. A failed persistence write reports 502 while the in-memory change
// stands; the client tells the user durability is gone, not the edit.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, surface.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", err)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "event_not_found", err)
	case errors.Is(err, surface.ErrDuplicateEvent), errors.Is(err, store.ErrDuplicateID):
		writeError(w, http.StatusConflict, "duplicate_event", err)
	case errors.Is(err, store.ErrSaveFailed):
		writeError(w, http.StatusBadGateway, "save_failed", err)
	case errors.Is(err, event.ErrInvalidTimestamp), errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal", err)
	}
}
