package event

import (
	"fmt"
	"strings"
)

// Record is the loosely typed JSON shape events travel in: surface reports,
// API bodies, and the persisted payload all use it. Fields mirror the
// rendering side's event objects.
type Record struct {
	ID     string `json:"id,omitempty"`
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end,omitempty"`
	AllDay bool   `json:"allDay,omitempty"`
}

// Coerce validates and normalizes a record into an Event. Missing or
// unparsable start is an error, as is a blank title. An absent ID is
// re-derived from start and title; a present one is kept verbatim so stored
// payloads round-trip.
func (r Record) Coerce() (Event, error) {
	if strings.TrimSpace(r.Title) == "" {
		return Event{}, fmt.Errorf("%w: record %q", ErrBlankTitle, r.ID)
	}
	if strings.TrimSpace(r.Start) == "" {
		return Event{}, fmt.Errorf("%w: record %q", ErrMissingStart, r.ID)
	}

	start, err := ParseTime(r.Start)
	if err != nil {
		return Event{}, fmt.Errorf("start of record %q: %w", r.ID, err)
	}

	e := Event{
		ID:     r.ID,
		Title:  r.Title,
		Start:  start,
		AllDay: r.AllDay,
	}
	if r.End != "" {
		end, err := ParseTime(r.End)
		if err != nil {
			return Event{}, fmt.Errorf("end of record %q: %w", r.ID, err)
		}
		e.End = end
	}
	if e.ID == "" {
		e.ID = DeriveID(e.Start, e.Title)
	}
	return e, nil
}
