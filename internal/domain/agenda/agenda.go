// Package agenda builds the chronological list view shown beside the
// calendar grid.
package agenda

import (
	"sort"
	"time"

	event "github.com/aindrila22/calendar/internal/domain/event"
)

// EmptyText is the placeholder both surfaces render when no events exist.
const EmptyText = "No Events Present"

// Rendering layouts. Times are stored UTC and rendered as stored.
const (
	headerLayout = "Jan 2, 2006"
	timeLayout   = "15:04"
)

// Item is one list entry.
type Item struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Label  string `json:"label"`
	AllDay bool   `json:"allDay,omitempty"`
}

// Day groups the items of one calendar day under a date header.
type Day struct {
	Date  string `json:"date"`
	Items []Item `json:"items"`
}

// Build sorts a store snapshot chronologically (start, then title, then ID)
// and groups it into day buckets. An empty snapshot yields no days; callers
// render EmptyText in that case.
func Build(events []event.Event) []Day {
	if len(events) == 0 {
		return nil
	}

	sorted := make([]event.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})

	var days []Day
	var cur *Day
	var curDay time.Time
	for _, ev := range sorted {
		day := ev.Start.UTC().Truncate(24 * time.Hour)
		if cur == nil || !day.Equal(curDay) {
			days = append(days, Day{Date: day.Format(headerLayout)})
			cur = &days[len(days)-1]
			curDay = day
		}
		cur.Items = append(cur.Items, Item{
			ID:     ev.ID,
			Title:  ev.Title,
			Label:  Label(ev),
			AllDay: ev.AllDay,
		})
	}
	return days
}

// Label renders the list text for one event: timed entries get a clock
// prefix, all-day entries are just the title.
func Label(ev event.Event) string {
	if ev.AllDay {
		return ev.Title
	}
	return ev.Start.UTC().Format(timeLayout) + " " + ev.Title
}
