package event_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	event "github.com/aindrila22/calendar/internal/domain/event"
	"github.com/smartystreets/goconvey/convey"
)

func TestDeriveID(t *testing.T) {
	convey.Convey("Given event ID derivation", t, func() {
		convey.Convey("When deriving from a date click and a title", func() {
			start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
			id := event.DeriveID(start, "Standup")

			convey.Convey("Then it matches the ISO-millisecond rendering plus the title", func() {
				convey.So(id, convey.ShouldEqual, "2024-01-10T00:00:00.000Z-Standup")
			})
		})

		convey.Convey("When the start carries sub-millisecond precision", func() {
			start := time.Date(2024, 3, 5, 9, 30, 15, 123456789, time.UTC)
			id := event.DeriveID(start, "Review")

			convey.Convey("Then the rendering truncates to milliseconds", func() {
				convey.So(id, convey.ShouldEqual, "2024-03-05T09:30:15.123Z-Review")
			})
		})

		convey.Convey("When the start is in a non-UTC zone", func() {
			loc := time.FixedZone("CET", 3600)
			start := time.Date(2024, 1, 10, 1, 0, 0, 0, loc)
			id := event.DeriveID(start, "Standup")

			convey.Convey("Then the rendering converts to UTC first", func() {
				convey.So(id, convey.ShouldEqual, "2024-01-10T00:00:00.000Z-Standup")
			})
		})

		convey.Convey("When two events share start and title", func() {
			start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

			convey.Convey("Then their IDs collide", func() {
				convey.So(event.DeriveID(start, "Standup"), convey.ShouldEqual, event.DeriveID(start, "Standup"))
			})
		})

		convey.Convey("When the title contains a dash itself", func() {
			start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
			id := event.DeriveID(start, "1:1 - Alex")

			convey.Convey("Then the title is embedded verbatim", func() {
				convey.So(id, convey.ShouldEqual, "2024-01-10T00:00:00.000Z-1:1 - Alex")
			})
		})
	})
}

func TestNew(t *testing.T) {
	convey.Convey("Given event construction from a selection", t, func() {
		convey.Convey("When building from an all-day single date", func() {
			r := event.Range{
				Start:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
				AllDay: true,
			}
			ev := event.New(r, "Standup")

			convey.Convey("Then the fields should carry over", func() {
				convey.So(ev.ID, convey.ShouldEqual, "2024-01-10T00:00:00.000Z-Standup")
				convey.So(ev.Title, convey.ShouldEqual, "Standup")
				convey.So(ev.Start, convey.ShouldEqual, r.Start)
				convey.So(ev.End.IsZero(), convey.ShouldBeTrue)
				convey.So(ev.AllDay, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When building from a timed drag selection", func() {
			r := event.Range{
				Start: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC),
			}
			ev := event.New(r, "Planning")

			convey.Convey("Then the end should be kept", func() {
				convey.So(ev.End, convey.ShouldEqual, r.End)
				convey.So(ev.AllDay, convey.ShouldBeFalse)
			})
		})
	})
}

func TestParseTime(t *testing.T) {
	convey.Convey("Given timestamp parsing", t, func() {
		convey.Convey("When parsing the ISO-millisecond form", func() {
			ts, err := event.ParseTime("2024-01-10T00:00:00.000Z")

			convey.So(err, convey.ShouldBeNil)
			convey.So(ts, convey.ShouldEqual, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
		})

		convey.Convey("When parsing plain RFC 3339", func() {
			ts, err := event.ParseTime("2024-01-10T09:30:00Z")

			convey.So(err, convey.ShouldBeNil)
			convey.So(ts, convey.ShouldEqual, time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC))
		})

		convey.Convey("When parsing a bare calendar date", func() {
			ts, err := event.ParseTime("2024-01-10")

			convey.So(err, convey.ShouldBeNil)
			convey.So(ts, convey.ShouldEqual, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
		})

		convey.Convey("When parsing an offset timestamp", func() {
			ts, err := event.ParseTime("2024-01-10T01:00:00+01:00")

			convey.So(err, convey.ShouldBeNil)
			convey.So(ts.UTC(), convey.ShouldEqual, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
		})

		convey.Convey("When parsing garbage", func() {
			_, err := event.ParseTime("not-a-time")

			convey.So(errors.Is(err, event.ErrInvalidTimestamp), convey.ShouldBeTrue)
		})

		convey.Convey("When parsing the empty string", func() {
			_, err := event.ParseTime("")

			convey.So(errors.Is(err, event.ErrInvalidTimestamp), convey.ShouldBeTrue)
		})
	})
}

func TestRecordRoundTrip(t *testing.T) {
	convey.Convey("Given the wire record shape", t, func() {
		convey.Convey("When rendering an all-day event", func() {
			ev := event.New(event.Range{
				Start:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
				AllDay: true,
			}, "Standup")
			rec := ev.Record()

			convey.Convey("Then the record matches the stored JSON contract", func() {
				convey.So(rec.ID, convey.ShouldEqual, "2024-01-10T00:00:00.000Z-Standup")
				convey.So(rec.Start, convey.ShouldEqual, "2024-01-10T00:00:00.000Z")
				convey.So(rec.End, convey.ShouldEqual, "")
				convey.So(rec.AllDay, convey.ShouldBeTrue)
			})

			convey.Convey("And the zero end is omitted from JSON", func() {
				raw, err := json.Marshal(rec)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(raw), convey.ShouldNotContainSubstring, `"end"`)
			})

			convey.Convey("And coercing it back yields the same event", func() {
				back, err := rec.Coerce()
				convey.So(err, convey.ShouldBeNil)
				convey.So(back.ID, convey.ShouldEqual, ev.ID)
				convey.So(back.Title, convey.ShouldEqual, ev.Title)
				convey.So(back.Start.Equal(ev.Start), convey.ShouldBeTrue)
				convey.So(back.AllDay, convey.ShouldEqual, ev.AllDay)
			})
		})

		convey.Convey("When rendering a timed event with an end", func() {
			ev := event.New(event.Range{
				Start: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC),
			}, "Planning")
			rec := ev.Record()

			convey.So(rec.End, convey.ShouldEqual, "2024-02-01T10:30:00.000Z")

			back, err := rec.Coerce()
			convey.So(err, convey.ShouldBeNil)
			convey.So(back.End.Equal(ev.End), convey.ShouldBeTrue)
		})
	})
}

func TestCoerce(t *testing.T) {
	convey.Convey("Given loose record coercion", t, func() {
		convey.Convey("When the record has no ID", func() {
			rec := event.Record{Title: "Standup", Start: "2024-01-10", AllDay: true}
			ev, err := rec.Coerce()

			convey.Convey("Then the ID is re-derived", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ev.ID, convey.ShouldEqual, "2024-01-10T00:00:00.000Z-Standup")
			})
		})

		convey.Convey("When the record carries a foreign ID", func() {
			rec := event.Record{ID: "imported-7", Title: "Offsite", Start: "2024-05-02T08:00:00Z"}
			ev, err := rec.Coerce()

			convey.Convey("Then the ID is kept verbatim", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ev.ID, convey.ShouldEqual, "imported-7")
			})
		})

		convey.Convey("When the title is blank", func() {
			rec := event.Record{Title: "   ", Start: "2024-01-10"}
			_, err := rec.Coerce()

			convey.So(errors.Is(err, event.ErrBlankTitle), convey.ShouldBeTrue)
		})

		convey.Convey("When the start is missing", func() {
			rec := event.Record{Title: "Standup"}
			_, err := rec.Coerce()

			convey.So(errors.Is(err, event.ErrMissingStart), convey.ShouldBeTrue)
		})

		convey.Convey("When the start is unparsable", func() {
			rec := event.Record{Title: "Standup", Start: "tomorrow-ish"}
			_, err := rec.Coerce()

			convey.So(errors.Is(err, event.ErrInvalidTimestamp), convey.ShouldBeTrue)
		})

		convey.Convey("When the end is unparsable", func() {
			rec := event.Record{Title: "Standup", Start: "2024-01-10", End: "later"}
			_, err := rec.Coerce()

			convey.So(errors.Is(err, event.ErrInvalidTimestamp), convey.ShouldBeTrue)
		})

		convey.Convey("When the title carries emoji and unicode", func() {
			rec := event.Record{Title: "Déjeuner 🎉", Start: "2024-06-01T12:00:00Z"}
			ev, err := rec.Coerce()

			convey.So(err, convey.ShouldBeNil)
			convey.So(ev.ID, convey.ShouldEqual, "2024-06-01T12:00:00.000Z-Déjeuner 🎉")
		})
	})
}
