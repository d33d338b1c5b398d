// Package event contains the calendar event model passed between layers.
package event

import (
	"fmt"
	"strings"
	"time"
)

// ISOMillis renders a time the way JavaScript's Date.prototype.toISOString
// does: UTC, millisecond precision, literal trailing Z. Event IDs embed this
// rendering, so it must stay byte-stable.
const ISOMillis = "2006-01-02T15:04:05.000Z"

// Event is a single calendar entry. The zero End marks an open-ended,
// single-slot event.
type Event struct {
	ID     string    // derived from Start and Title, see DeriveID
	Title  string    // label shown on the calendar and in the list view
	Start  time.Time // beginning of the occupied range
	End    time.Time // optional end of the occupied range
	AllDay bool      // whole-day selections render without times
}

// Range captures a surface selection gesture: a date click or a drag across
// slots. End may be zero.
type Range struct {
	Start  time.Time
	End    time.Time
	AllDay bool
}

// New builds an event from a selection and a title, deriving its ID.
func New(r Range, title string) Event {
	return Event{
		ID:     DeriveID(r.Start, title),
		Title:  title,
		Start:  r.Start,
		End:    r.End,
		AllDay: r.AllDay,
	}
}

// DeriveID produces the event identifier: the ISO rendering of the start
// joined to the title with a dash. Two events sharing start and title share
// an ID; the store is responsible for surfacing that collision.
func DeriveID(start time.Time, title string) string {
	return FormatTime(start) + "-" + title
}

// FormatTime renders a timestamp in the ISOMillis form.
func FormatTime(t time.Time) string {
	return t.UTC().Format(ISOMillis)
}

// ParseTime accepts the timestamp shapes surfaces and stored payloads carry:
// RFC 3339 with or without fractional seconds, or a bare calendar date
// (taken as midnight UTC).
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidTimestamp)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// Record converts the event to its wire shape.
func (e Event) Record() Record {
	r := Record{
		ID:     e.ID,
		Title:  e.Title,
		Start:  FormatTime(e.Start),
		AllDay: e.AllDay,
	}
	if !e.End.IsZero() {
		r.End = FormatTime(e.End)
	}
	return r
}

// Records converts a slice of events to wire shapes, preserving order.
func Records(events []Event) []Record {
	out := make([]Record, len(events))
	for i, e := range events {
		out[i] = e.Record()
	}
	return out
}
