// Package store holds the authoritative in-memory event collection.
//
// The store is the single source of truth for event DATA. Rendering state
// belongs to the attached surface; the store never reaches into it. Surfaces
// report their full event set after any change and the store replaces its
// contents wholesale, it never merges. Every mutation writes the complete
// set through the persister before returning.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	event "github.com/aindrila22/calendar/internal/domain/event"
	"github.com/aindrila22/calendar/pkg/logger"
	"github.com/aindrila22/calendar/pkg/metrics"
)

// Persister is the persistence bridge the store writes through.
type Persister interface {
	// Load returns the persisted event set, or nil when nothing usable is
	// stored. Implementations are expected to tolerate absent or malformed
	// payloads and only fail on real I/O trouble.
	Load(ctx context.Context) ([]event.Event, error)

	// Save rewrites the full persisted event set.
	Save(ctx context.Context, events []event.Event) error
}

// Stats reports store-level counters for the stats endpoint.
type Stats struct {
	Events     int       `json:"events"`
	Saves      int64     `json:"saves"`
	SaveErrors int64     `json:"save_errors"`
	LastSave   time.Time `json:"last_save"`
}

// Store is the mutex-guarded event collection. Insertion order is preserved;
// consumers that want chronological order sort their own copy.
type Store struct {
	mu        sync.Mutex
	order     []string
	byID      map[string]event.Event
	persister Persister
	log       logger.Logger

	saves      int64
	saveErrors int64
	lastSave   time.Time
}

// New creates an empty store writing through the given persister.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		byID:      make(map[string]event.Event),
		persister: p,
		log:       logger.Get().Named("store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fills the store from the persister. Called once at startup. Any
// trouble loading leaves the store empty with a warning; a corrupt payload
// must never keep the service from booting.
func (s *Store) Load(ctx context.Context) {
	events, err := s.persister.Load(ctx)
	if err != nil {
		metrics.RecordStorageLoadError()
		s.log.Warn(ctx, "could not load persisted events, starting empty", logger.Error(err))
		return
	}

	s.mu.Lock()
	s.order = s.order[:0]
	s.byID = make(map[string]event.Event, len(events))
	for _, ev := range events {
		if _, exists := s.byID[ev.ID]; exists {
			metrics.RecordDuplicateID()
			s.log.Warn(ctx, "duplicate event id in persisted payload, keeping last",
				logger.String("id", ev.ID))
			s.byID[ev.ID] = ev
			continue
		}
		s.byID[ev.ID] = ev
		s.order = append(s.order, ev.ID)
	}
	n := len(s.order)
	s.mu.Unlock()

	metrics.UpdateEventsTotal(n)
	s.log.Info(ctx, "store loaded", logger.Int("events", n))
}

// Events returns a snapshot copy of all events in insertion order.
func (s *Store) Events(ctx context.Context) []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Get returns a single event by ID.
func (s *Store) Get(ctx context.Context, id string) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.byID[id]
	if !ok {
		return event.Event{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return ev, nil
}

// Len returns the current event count.
func (s *Store) Len(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Add appends an event and writes the set through. Two creations sharing a
// start and title collide on the derived ID; the collision is surfaced
// rather than silently shadowing the earlier event.
func (s *Store) Add(ctx context.Context, ev event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[ev.ID]; exists {
		metrics.RecordDuplicateID()
		return fmt.Errorf("%w: %q", ErrDuplicateID, ev.ID)
	}
	s.byID[ev.ID] = ev
	s.order = append(s.order, ev.ID)

	metrics.RecordEventAdd()
	metrics.UpdateEventsTotal(len(s.order))
	return s.saveLocked(ctx)
}

// Remove deletes an event by ID and writes the set through.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[id]; !exists {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	metrics.RecordEventRemove()
	metrics.UpdateEventsTotal(len(s.order))
	return s.saveLocked(ctx)
}

// Replace swaps the entire collection for the set a surface reported, then
// writes it through. Records are coerced one by one; unusable ones are
// dropped with a warning and duplicated IDs keep the last record. Returns
// the number of events now held.
func (s *Store) Replace(ctx context.Context, records []event.Record) (int, error) {
	order := make([]string, 0, len(records))
	byID := make(map[string]event.Event, len(records))
	for _, rec := range records {
		ev, err := rec.Coerce()
		if err != nil {
			metrics.RecordRejectedRecord()
			s.log.Warn(ctx, "dropping unusable event record", logger.Error(err))
			continue
		}
		if _, exists := byID[ev.ID]; exists {
			metrics.RecordDuplicateID()
			s.log.Warn(ctx, "duplicate event id in surface report, keeping last",
				logger.String("id", ev.ID))
			byID[ev.ID] = ev
			continue
		}
		byID[ev.ID] = ev
		order = append(order, ev.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = order
	s.byID = byID

	metrics.RecordEventReplace()
	metrics.UpdateEventsTotal(len(s.order))
	return len(s.order), s.saveLocked(ctx)
}

// Stats returns store-level counters.
func (s *Store) Stats(ctx context.Context) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Events:     len(s.order),
		Saves:      s.saves,
		SaveErrors: s.saveErrors,
		LastSave:   s.lastSave,
	}
}

// snapshotLocked copies the current set. Callers hold s.mu.
func (s *Store) snapshotLocked() []event.Event {
	out := make([]event.Event, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// saveLocked writes the full set through the persister. The lock stays held
// so storage writes land in mutation order. The in-memory mutation stands
// even when the write fails; the error is surfaced so the caller can tell
// the user instead of silently losing durability.
func (s *Store) saveLocked(ctx context.Context) error {
	err := s.persister.Save(ctx, s.snapshotLocked())
	if err != nil {
		s.saveErrors++
		s.log.Error(ctx, "persisting events failed", logger.Error(err))
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	s.saves++
	s.lastSave = time.Now()
	return nil
}
