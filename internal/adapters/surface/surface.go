// Package surface implements the calendar surface contract for in-process
// renderers.
//
// A surface OWNS rendering state: the event set it currently displays plus
// the visual selection highlight. After any change it reports its full event
// set to the store, which replaces its contents wholesale. The store never
// reaches back into a surface.
package surface

import (
	"context"
	"fmt"
	"sync"

	event "github.com/aindrila22/calendar/internal/domain/event"
	"github.com/aindrila22/calendar/pkg/logger"
)

// Store is the data side a surface reports to.
type Store interface {
	// Events returns the authoritative snapshot used to seed rendering state.
	Events(ctx context.Context) []event.Event

	// Get looks up a single event, for delete prompts.
	Get(ctx context.Context, id string) (event.Event, error)

	// Replace swaps the store contents for a surface's full report.
	Replace(ctx context.Context, records []event.Record) (int, error)
}

// Mirror is a calendar surface held on the Go side. The web page drives one
// per session through the gesture API; the terminal UI embeds one directly.
type Mirror struct {
	mu       sync.Mutex
	events   []event.Record
	selected bool
	sel      event.Range
	store    Store
	log      logger.Logger
}

// NewMirror creates a mirror reporting to the given store, seeded with the
// store's current snapshot.
func NewMirror(ctx context.Context, store Store, opts ...MirrorOption) *Mirror {
	m := &Mirror{
		store: store,
		log:   logger.Get().Named("surface"),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.events = event.Records(store.Events(ctx))
	return m
}

// AddEvent places a new event on the surface and reports the changed set.
// The rendering state is reconciled with the store first, so a report from
// this mirror never drops events created through other sessions or imports.
// An ID collision is surfaced instead of shadowing the earlier event.
func (m *Mirror) AddEvent(ctx context.Context, ev event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reseedLocked(ctx)
	for _, rec := range m.events {
		if rec.ID == ev.ID {
			return fmt.Errorf("%w: %q", ErrDuplicateEvent, ev.ID)
		}
	}
	m.events = append(m.events, ev.Record())
	return m.reportLocked(ctx)
}

// RemoveEvent drops an event from the surface and reports the changed set.
// Like AddEvent, it reconciles with the store before reporting.
func (m *Mirror) RemoveEvent(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reseedLocked(ctx)
	for i, rec := range m.events {
		if rec.ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return m.reportLocked(ctx)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownEvent, id)
}

// Select marks a range as visually highlighted.
func (m *Mirror) Select(ctx context.Context, r event.Range) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = true
	m.sel = r
}

// Unselect clears the visual selection highlight.
func (m *Mirror) Unselect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = false
	m.sel = event.Range{}
	return nil
}

// Selected reports whether a selection highlight is showing.
func (m *Mirror) Selected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

// Events returns a copy of the rendering state.
func (m *Mirror) Events(ctx context.Context) []event.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]event.Record, len(m.events))
	copy(out, m.events)
	return out
}

// Refresh reseeds the rendering state from the store. Used after the data
// changed outside this mirror, so every attached view converges.
func (m *Mirror) Refresh(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reseedLocked(ctx)
}

// reseedLocked replaces the rendering state with the store snapshot.
// Callers hold m.mu.
func (m *Mirror) reseedLocked(ctx context.Context) {
	m.events = event.Records(m.store.Events(ctx))
}

// reportLocked hands the full rendering set to the store. Callers hold m.mu.
func (m *Mirror) reportLocked(ctx context.Context) error {
	records := make([]event.Record, len(m.events))
	copy(records, m.events)
	if _, err := m.store.Replace(ctx, records); err != nil {
		return err
	}
	return nil
}
