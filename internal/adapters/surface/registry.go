package surface

import (
	"context"
	"fmt"
	"sync"
	"time"

	dialog "github.com/aindrila22/calendar/internal/domain/dialog"
	"github.com/aindrila22/calendar/pkg/logger"
	"github.com/aindrila22/calendar/pkg/metrics"
	"github.com/google/uuid"
)

// Default registry configuration constants.
const (
	defaultSessionTTL = 30 * time.Minute
)

// Session binds one remote calendar view to its mirror and its dialog
// controller. Every browser tab showing the calendar page holds one.
type Session struct {
	ID         string
	Mirror     *Mirror
	Controller *dialog.Controller

	mu       sync.Mutex
	lastSeen time.Time
}

// Touch marks the session as recently used.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

// idleSince returns the last-used time.
func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Registry tracks attached surface sessions and reaps idle ones.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    Store
	ttl      time.Duration
	log      logger.Logger
}

// NewRegistry creates an empty registry over the given store.
func NewRegistry(store Store, opts ...RegistryOption) *Registry {
	r := &Registry{
		sessions: make(map[string]*Session),
		store:    store,
		ttl:      defaultSessionTTL,
		log:      logger.Get().Named("sessions"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open attaches a new session: a fresh mirror seeded from the store and a
// controller bound to it. Session IDs are random; unlike event IDs they
// never leave the process boundary as data.
func (r *Registry) Open(ctx context.Context) *Session {
	mirror := NewMirror(ctx, r.store)
	s := &Session{
		ID:         uuid.NewString(),
		Mirror:     mirror,
		Controller: dialog.New(mirror, r.store),
		lastSeen:   time.Now(),
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	n := len(r.sessions)
	r.mu.Unlock()

	metrics.RecordSessionOpened()
	metrics.UpdateSessionsActive(n)
	r.log.Info(ctx, "session opened", logger.String("id", s.ID), logger.Int("active", n))
	return s
}

// Get returns a session by ID and marks it used.
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	s.Touch()
	return s, nil
}

// Close detaches a session.
func (r *Registry) Close(ctx context.Context, id string) error {
	r.mu.Lock()
	_, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	metrics.UpdateSessionsActive(n)
	r.log.Info(ctx, "session closed", logger.String("id", id), logger.Int("active", n))
	return nil
}

// RefreshAll reseeds every attached mirror from the store. Called after the
// data changed outside the sessions, such as an iCalendar import.
func (r *Registry) RefreshAll(ctx context.Context) {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		s.Mirror.Refresh(ctx)
	}
}

// Len returns the number of attached sessions.
func (r *Registry) Len(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// StartReaper launches the idle-session reaper. It stops when ctx is done.
func (r *Registry) StartReaper(ctx context.Context) {
	go func() {
		interval := r.ttl / 2
		if interval < time.Second {
			interval = time.Second
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.reap(ctx)
			}
		}
	}()
}

// reap detaches sessions idle longer than the TTL.
func (r *Registry) reap(ctx context.Context) {
	cutoff := time.Now().Add(-r.ttl)

	r.mu.Lock()
	var expired []string
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, id)
			delete(r.sessions, id)
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if len(expired) == 0 {
		return
	}
	for _, id := range expired {
		metrics.RecordSessionExpired()
		r.log.Info(ctx, "session expired", logger.String("id", id))
	}
	metrics.UpdateSessionsActive(n)
}
