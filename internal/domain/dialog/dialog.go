// Package dialog runs the selection and title dialog state machine that
// sits between surface gestures and the event store.
//
// The create path is surface-first: a submitted title becomes an event on
// the SURFACE, whose changed report then lands in the store. The controller
// never writes the store directly.
package dialog

import (
	"context"
	"strings"
	"sync"

	confirm "github.com/aindrila22/calendar/internal/domain/confirm"
	event "github.com/aindrila22/calendar/internal/domain/event"
	"github.com/aindrila22/calendar/pkg/logger"
	"github.com/aindrila22/calendar/pkg/metrics"
)

// State names the two controller states.
type State int

const (
	// StateIdle means no dialog is open.
	StateIdle State = iota
	// StateAwaitingTitle means a range is selected and the title dialog is
	// open.
	StateAwaitingTitle
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingTitle:
		return "awaiting-title"
	default:
		return "unknown"
	}
}

// Surface is the rendering side the controller drives. It owns the event
// set currently displayed and reports changes to the store on its own.
type Surface interface {
	AddEvent(ctx context.Context, ev event.Event) error
	RemoveEvent(ctx context.Context, id string) error
	Unselect(ctx context.Context) error
}

// EventReader is the read access the controller needs for delete prompts.
type EventReader interface {
	Get(ctx context.Context, id string) (event.Event, error)
}

// DeletePrompt renders the confirmation question for deleting an event.
// Surfaces showing their own dialogs must use this exact text.
func DeletePrompt(title string) string {
	return `Are you sure you want to delete the event "` + title + `"?`
}

// Controller mediates between one surface and the store.
type Controller struct {
	mu      sync.Mutex
	state   State
	sel     event.Range
	draft   string
	surface Surface
	events  EventReader
	log     logger.Logger
}

// New creates an idle controller attached to a surface.
func New(surface Surface, events EventReader, opts ...Option) *Controller {
	c := &Controller{
		state:   StateIdle,
		surface: surface,
		events:  events,
		log:     logger.Get().Named("dialog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RangeSelected handles a date click or drag selection: it captures the
// range and opens the title dialog with a cleared draft. A second selection
// while the dialog is open simply replaces the captured range.
func (c *Controller) RangeSelected(ctx context.Context, r event.Range) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sel = r
	c.draft = ""
	c.state = StateAwaitingTitle

	metrics.RecordDialogOpen()
	c.log.Debug(ctx, "dialog opened",
		logger.Time("start", r.Start),
		logger.Bool("allDay", r.AllDay))
}

// DraftChanged tracks the title input. Ignored when no dialog is open.
func (c *Controller) DraftChanged(ctx context.Context, title string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAwaitingTitle {
		return
	}
	c.draft = title
}

// Cancel dismisses the dialog, discards the draft, and clears the surface's
// visual selection. The store is not touched.
func (c *Controller) Cancel(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAwaitingTitle {
		return nil
	}
	c.state = StateIdle
	c.draft = ""

	metrics.RecordDialogCancel()
	return c.surface.Unselect(ctx)
}

// Submit resolves the open dialog. An empty or whitespace-only draft is a
// silent no-op: nothing is created, nothing changes, and the dialog stays
// open. A usable draft becomes an event on the surface, the dialog closes,
// and the selection highlight clears.
func (c *Controller) Submit(ctx context.Context) (event.Event, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAwaitingTitle {
		return event.Event{}, false, nil
	}

	title := strings.TrimSpace(c.draft)
	if title == "" {
		metrics.RecordDialogEmptySubmit()
		return event.Event{}, false, nil
	}

	ev := event.New(c.sel, title)
	if err := c.surface.AddEvent(ctx, ev); err != nil {
		// Keep the dialog open so the user can adjust the title, e.g. after
		// an ID collision.
		return event.Event{}, false, err
	}

	c.state = StateIdle
	c.draft = ""
	metrics.RecordDialogSubmit()

	if err := c.surface.Unselect(ctx); err != nil {
		c.log.Warn(ctx, "unselect after submit failed", logger.Error(err))
	}
	c.log.Info(ctx, "event created", logger.String("id", ev.ID))
	return ev, true, nil
}

// EventClicked handles a click on an existing event: it asks the confirmer
// with the exact delete prompt and removes the event from the surface only
// on approval. Returns whether the deletion happened.
func (c *Controller) EventClicked(ctx context.Context, id string, answer confirm.Confirmer) (bool, error) {
	ev, err := c.events.Get(ctx, id)
	if err != nil {
		return false, err
	}

	ok, err := answer.Confirm(ctx, DeletePrompt(ev.Title))
	if err != nil {
		return false, err
	}
	if !ok {
		metrics.RecordDeleteDeclined()
		c.log.Debug(ctx, "deletion declined", logger.String("id", id))
		return false, nil
	}

	if err := c.surface.RemoveEvent(ctx, id); err != nil {
		return false, err
	}
	metrics.RecordDeleteConfirmed()
	c.log.Info(ctx, "event deleted", logger.String("id", id))
	return true, nil
}

// State returns the current controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns the current title draft.
func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Selection returns the captured range and whether a dialog is open.
func (c *Controller) Selection() (event.Range, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel, c.state == StateAwaitingTitle
}
