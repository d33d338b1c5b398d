// Package ics exchanges the event set with other calendar tools in
// iCalendar form.
package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	ical "github.com/arran4/golang-ical"

	event "github.com/aindrila22/calendar/internal/domain/event"
	store "github.com/aindrila22/calendar/internal/domain/store"
	"github.com/aindrila22/calendar/pkg/logger"
	"github.com/aindrila22/calendar/pkg/metrics"
)

// Adder is the store write access imports need.
type Adder interface {
	Add(ctx context.Context, ev event.Event) error
}

// Result summarizes one import run.
type Result struct {
	Imported   int `json:"imported"`
	Skipped    int `json:"skipped"`
	Duplicates int `json:"duplicates"`
}

// Codec converts between the event set and iCalendar payloads.
type Codec struct {
	store Adder
	log   logger.Logger
}

// NewCodec creates a codec importing into the given store.
func NewCodec(store Adder, opts ...Option) *Codec {
	c := &Codec{
		store: store,
		log:   logger.Get().Named("ics"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Export renders the event set as a VCALENDAR: one VEVENT per event, UID is
// the event ID, all-day events carry date values.
func (c *Codec) Export(ctx context.Context, events []event.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//calendar//event export//EN")

	for _, ev := range events {
		ve := cal.AddEvent(ev.ID)
		ve.SetSummary(ev.Title)
		ve.SetDtStampTime(ev.Start.UTC())
		ve.SetProperty(ical.ComponentPropertySequence, "0")
		if ev.AllDay {
			ve.SetAllDayStartAt(ev.Start.UTC())
			if !ev.End.IsZero() {
				ve.SetAllDayEndAt(ev.End.UTC())
			}
		} else {
			ve.SetStartAt(ev.Start.UTC())
			if !ev.End.IsZero() {
				ve.SetEndAt(ev.End.UTC())
			}
		}
	}

	metrics.RecordICSExport()
	return cal.Serialize()
}

// Import parses an iCalendar payload, maps its VEVENTs to event records,
// and adds each usable one to the store. A component the codec cannot use
// is skipped with a warning, and an event whose ID the store already holds
// counts as a duplicate; neither stops the rest of the import. Recurrence
// rules are not expanded: a VEVENT carrying an RRULE imports as its first
// occurrence only.
func (c *Codec) Import(ctx context.Context, r io.Reader) (Result, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrParse, err)
	}

	var res Result
	for _, ve := range cal.Events() {
		rec, allDay, hasRRule, err := veventRecord(ve)
		if err != nil {
			res.Skipped++
			c.log.Warn(ctx, "skipping unusable calendar component", logger.Error(err))
			continue
		}
		if hasRRule {
			c.log.Warn(ctx, "recurrence rule not expanded, importing first occurrence",
				logger.String("uid", rec.ID))
		}
		rec.AllDay = allDay

		ev, err := rec.Coerce()
		if err != nil {
			res.Skipped++
			c.log.Warn(ctx, "skipping unusable calendar component", logger.Error(err))
			continue
		}

		if err := c.store.Add(ctx, ev); err != nil {
			if errors.Is(err, store.ErrDuplicateID) {
				res.Duplicates++
				c.log.Warn(ctx, "imported event already present", logger.String("id", ev.ID))
				continue
			}
			return res, err
		}
		res.Imported++
	}

	metrics.RecordICSImport()
	metrics.RecordICSImportedEvents(res.Imported)
	metrics.RecordICSSkippedEvents(res.Skipped)
	return res, nil
}

// veventRecord maps a VEVENT to the wire record shape.
func veventRecord(ve *ical.VEvent) (event.Record, bool, bool, error) {
	var rec event.Record

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		rec.ID = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		rec.Title = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return rec, false, false, fmt.Errorf("component %q: no usable start: %w", rec.ID, err)
	}
	rec.Start = event.FormatTime(start)
	if end, err := ve.GetEndAt(); err == nil {
		rec.End = event.FormatTime(end)
	}

	// All-day components carry VALUE=DATE, or a bare date without a time
	// part, on DTSTART.
	allDay := false
	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil {
		if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			allDay = true
		}
		if !strings.Contains(p.Value, "T") {
			allDay = true
		}
	}

	hasRRule := ve.GetProperty(ical.ComponentPropertyRrule) != nil
	return rec, allDay, hasRRule, nil
}
