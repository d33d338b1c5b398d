package agenda_test

import (
	"testing"
	"time"

	agenda "github.com/aindrila22/calendar/internal/domain/agenda"
	event "github.com/aindrila22/calendar/internal/domain/event"
	. "github.com/smartystreets/goconvey/convey"
)

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := event.ParseTime(value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return ts
}

func TestBuild(t *testing.T) {
	Convey("Given the agenda builder", t, func() {
		Convey("When building from an empty snapshot", func() {
			days := agenda.Build(nil)

			Convey("Then there are no days and the placeholder applies", func() {
				So(days, ShouldBeEmpty)
				So(agenda.EmptyText, ShouldEqual, "No Events Present")
			})
		})

		Convey("When building from an unordered snapshot", func() {
			events := []event.Event{
				event.New(event.Range{Start: at(t, "2024-01-11T14:00:00Z")}, "Retro"),
				event.New(event.Range{Start: at(t, "2024-01-10"), AllDay: true}, "Standup"),
				event.New(event.Range{Start: at(t, "2024-01-10T09:30:00Z")}, "Planning"),
			}
			days := agenda.Build(events)

			Convey("Then events sort chronologically into day buckets", func() {
				So(days, ShouldHaveLength, 2)
				So(days[0].Date, ShouldEqual, "Jan 10, 2024")
				So(days[0].Items, ShouldHaveLength, 2)
				So(days[0].Items[0].Title, ShouldEqual, "Standup")
				So(days[0].Items[1].Title, ShouldEqual, "Planning")
				So(days[1].Date, ShouldEqual, "Jan 11, 2024")
				So(days[1].Items[0].Title, ShouldEqual, "Retro")
			})

			Convey("And the snapshot passed in is left untouched", func() {
				So(events[0].Title, ShouldEqual, "Retro")
			})
		})

		Convey("When two events share a start", func() {
			start := at(t, "2024-01-10T09:00:00Z")
			events := []event.Event{
				event.New(event.Range{Start: start}, "Zebra"),
				event.New(event.Range{Start: start}, "Apple"),
			}
			days := agenda.Build(events)

			Convey("Then ties break on title", func() {
				So(days[0].Items[0].Title, ShouldEqual, "Apple")
				So(days[0].Items[1].Title, ShouldEqual, "Zebra")
			})
		})
	})
}

func TestLabel(t *testing.T) {
	Convey("Given item labels", t, func() {
		Convey("When the event is all-day", func() {
			ev := event.New(event.Range{Start: at(t, "2024-01-10"), AllDay: true}, "Standup")

			So(agenda.Label(ev), ShouldEqual, "Standup")
		})

		Convey("When the event is timed", func() {
			ev := event.New(event.Range{Start: at(t, "2024-01-10T09:30:00Z")}, "Planning")

			So(agenda.Label(ev), ShouldEqual, "09:30 Planning")
		})
	})
}
