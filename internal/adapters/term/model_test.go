package term

import (
	"context"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/smartystreets/goconvey/convey"

	storage "github.com/aindrila22/calendar/internal/adapters/storage"
	store "github.com/aindrila22/calendar/internal/domain/store"
	"github.com/aindrila22/calendar/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func newTestModel(t *testing.T) (*Model, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	st := store.New(storage.NewBridge(backend))
	st.Load(context.Background())
	return NewModel(context.Background(), st), backend
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m *Model, keys ...string) *Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(*Model)
	}
	return m
}

func TestDayRange(t *testing.T) {
	tests := []struct {
		name  string
		day   time.Time
		start string
		end   string
	}{
		{
			name:  "mid month",
			day:   time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC),
			start: "2024-01-10",
			end:   "2024-01-11",
		},
		{
			name:  "month boundary",
			day:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			start: "2024-01-31",
			end:   "2024-02-01",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := dayRange(tt.day)
			if got := r.Start.Format("2006-01-02"); got != tt.start {
				t.Errorf("start = %q, want %q", got, tt.start)
			}
			if got := r.End.Format("2006-01-02"); got != tt.end {
				t.Errorf("end = %q, want %q", got, tt.end)
			}
			if !r.AllDay {
				t.Error("day selections must be all-day")
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten chars!", 18, "exactly ten chars!"},
		{"a very long event title indeed", 10, "a very lo…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestAddFlowThroughKeys(t *testing.T) {
	convey.Convey("Given a terminal surface over an empty store", t, func() {
		ctx := context.Background()
		m, backend := newTestModel(t)
		m.cursor = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

		convey.Convey("When the user opens the dialog and types a title", func() {
			m = press(m, "enter")
			convey.So(m.view, convey.ShouldEqual, viewTitleDialog)

			m = press(m, "S", "t", "a", "n", "d", "u", "p")
			m = press(m, "enter")

			convey.Convey("Then the event lands in the store and storage", func() {
				convey.So(m.view, convey.ShouldEqual, viewCalendar)
				events := m.store.Events(ctx)
				convey.So(events, convey.ShouldHaveLength, 1)
				convey.So(events[0].ID, convey.ShouldEqual, "2024-01-10T00:00:00.000Z-Standup")
				payload, ok := backend.Peek(storage.EventsKey)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(string(payload), convey.ShouldContainSubstring, "Standup")
			})
		})

		convey.Convey("When the user submits an empty title", func() {
			m = press(m, "enter", "enter")

			convey.Convey("Then the dialog stays open and nothing is stored", func() {
				convey.So(m.view, convey.ShouldEqual, viewTitleDialog)
				convey.So(m.store.Events(ctx), convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the user cancels the dialog", func() {
			m = press(m, "enter", "x", "esc")

			convey.Convey("Then the view returns with no event created", func() {
				convey.So(m.view, convey.ShouldEqual, viewCalendar)
				convey.So(m.store.Events(ctx), convey.ShouldBeEmpty)
			})
		})
	})
}

func TestDeleteFlowThroughKeys(t *testing.T) {
	convey.Convey("Given a terminal surface with one event on the cursor day", t, func() {
		ctx := context.Background()
		m, _ := newTestModel(t)
		m.cursor = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
		m = press(m, "enter", "S", "t", "a", "n", "d", "u", "p", "enter")
		convey.So(m.store.Events(ctx), convey.ShouldHaveLength, 1)

		convey.Convey("When the user confirms the delete", func() {
			m = press(m, "x", "enter")

			convey.Convey("Then the event is gone", func() {
				convey.So(m.view, convey.ShouldEqual, viewCalendar)
				convey.So(m.store.Events(ctx), convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the user moves to Cancel and confirms", func() {
			m = press(m, "x", "right", "enter")

			convey.Convey("Then the event survives", func() {
				convey.So(m.store.Events(ctx), convey.ShouldHaveLength, 1)
			})
		})

		convey.Convey("When the user escapes the confirmation", func() {
			m = press(m, "x", "esc")
			convey.So(m.store.Events(ctx), convey.ShouldHaveLength, 1)
		})
	})
}

func TestDeleteConfirmPromptText(t *testing.T) {
	convey.Convey("Given a pending delete confirmation", t, func() {
		m, _ := newTestModel(t)
		m.cursor = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
		m = press(m, "enter", "S", "t", "a", "n", "d", "u", "p", "enter", "x")

		convey.Convey("Then the view shows the exact prompt", func() {
			convey.So(m.view, convey.ShouldEqual, viewDeleteConfirm)
			convey.So(m.View(), convey.ShouldContainSubstring,
				`Are you sure you want to delete the event "Standup"?`)
		})
	})
}
