// Package term renders the calendar as a terminal surface. It drives the
// same mirror and dialog controller as the web page, so every mutation
// follows the surface-first path into the store and through to storage.
package term

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"

	surface "github.com/aindrila22/calendar/internal/adapters/surface"
	agenda "github.com/aindrila22/calendar/internal/domain/agenda"
	confirm "github.com/aindrila22/calendar/internal/domain/confirm"
	dialog "github.com/aindrila22/calendar/internal/domain/dialog"
	event "github.com/aindrila22/calendar/internal/domain/event"
	store "github.com/aindrila22/calendar/internal/domain/store"
)

// View states
type viewState int

const (
	viewCalendar viewState = iota
	viewTitleDialog
	viewDeleteConfirm
)

const maxTitleWidth = 40

// Model is the calendar TUI model.
type Model struct {
	store      *store.Store
	mirror     *surface.Mirror
	controller *dialog.Controller

	cursor      time.Time // highlighted day
	selectedIdx int       // selected event on the highlighted day
	view        viewState
	width       int
	height      int
	err         error

	titleInput textinput.Model

	// Delete confirmation
	deleteID    string
	deleteTitle string
	confirmIdx  int // 0=Delete, 1=Cancel
}

// NewModel builds a terminal surface over the shared store.
func NewModel(ctx context.Context, st *store.Store) *Model {
	mirror := surface.NewMirror(ctx, st)

	input := textinput.New()
	input.Placeholder = "Event title"
	input.CharLimit = 120
	input.Width = 32

	return &Model{
		store:      st,
		mirror:     mirror,
		controller: dialog.New(mirror, st),
		cursor:     today(),
		titleInput: input,
	}
}

// Run starts the terminal surface and blocks until it exits.
func Run(ctx context.Context, st *store.Store) error {
	p := tea.NewProgram(NewModel(ctx, st), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case viewTitleDialog:
			return m.handleDialogKeys(msg)
		case viewDeleteConfirm:
			return m.handleDeleteKeys(msg)
		default:
			return m.handleCalendarKeys(msg)
		}
	}
	return m, nil
}

func (m *Model) handleCalendarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		m.cursor = m.cursor.AddDate(0, 0, -1)
		m.selectedIdx = 0
	case "right", "l":
		m.cursor = m.cursor.AddDate(0, 0, 1)
		m.selectedIdx = 0
	case "up", "k":
		m.cursor = m.cursor.AddDate(0, 0, -7)
		m.selectedIdx = 0
	case "down", "j":
		m.cursor = m.cursor.AddDate(0, 0, 7)
		m.selectedIdx = 0
	case "[":
		m.cursor = m.cursor.AddDate(0, -1, 0)
		m.selectedIdx = 0
	case "]":
		m.cursor = m.cursor.AddDate(0, 1, 0)
		m.selectedIdx = 0
	case "t":
		m.cursor = today()
		m.selectedIdx = 0
	case "tab":
		events := m.eventsForDay(m.cursor)
		if len(events) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(events)
		}
	case "shift+tab":
		events := m.eventsForDay(m.cursor)
		if len(events) > 0 {
			m.selectedIdx = (m.selectedIdx + len(events) - 1) % len(events)
		}
	case "enter", "n":
		sel := dayRange(m.cursor)
		m.mirror.Select(ctx, sel)
		m.controller.RangeSelected(ctx, sel)
		m.titleInput.SetValue("")
		m.titleInput.Focus()
		m.err = nil
		m.view = viewTitleDialog
	case "d", "x", "backspace":
		events := m.eventsForDay(m.cursor)
		if len(events) > 0 && m.selectedIdx < len(events) {
			m.deleteID = events[m.selectedIdx].ID
			m.deleteTitle = events[m.selectedIdx].Title
			m.confirmIdx = 0
			m.view = viewDeleteConfirm
		}
	}
	return m, nil
}

func (m *Model) handleDialogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg.String() {
	case "esc":
		if err := m.controller.Cancel(ctx); err != nil {
			m.err = err
		}
		m.view = viewCalendar
		return m, nil
	case "enter":
		_, created, err := m.controller.Submit(ctx)
		if err != nil {
			m.err = err
			return m, nil
		}
		if created {
			m.view = viewCalendar
		}
		// An empty title keeps the dialog open.
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	m.controller.DraftChanged(ctx, m.titleInput.Value())
	return m, cmd
}

func (m *Model) handleDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg.String() {
	case "left", "h":
		if m.confirmIdx > 0 {
			m.confirmIdx--
		}
	case "right", "l", "tab":
		if m.confirmIdx < 1 {
			m.confirmIdx++
		}
	case "enter":
		confirmed := m.confirmIdx == 0
		if _, err := m.controller.EventClicked(ctx, m.deleteID, confirm.Answered(confirmed)); err != nil {
			m.err = err
		}
		m.selectedIdx = 0
		m.view = viewCalendar
	case "esc", "q":
		m.view = viewCalendar
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) View() string {
	switch m.view {
	case viewTitleDialog:
		return m.renderTitleDialog()
	case viewDeleteConfirm:
		return m.renderDeleteConfirm()
	default:
		return m.renderCalendar()
	}
}

func (m *Model) renderCalendar() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(m.cursor.Format("January 2006")))
	b.WriteString("\n\n")

	for _, day := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		b.WriteString(weekdayStyle.Render(day))
	}
	b.WriteString("\n")
	b.WriteString(m.renderMonthGrid())
	b.WriteString("\n")

	b.WriteString(dateStyle.Render(m.cursor.Format("Mon, Jan 2")))
	b.WriteString("\n\n")

	events := m.eventsForDay(m.cursor)
	if len(events) == 0 {
		b.WriteString(mutedStyle.Italic(true).Render("  No events"))
		b.WriteString("\n")
	} else {
		for i, ev := range events {
			b.WriteString(m.renderEvent(ev, i == m.selectedIdx))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(m.renderAgenda())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(dangerStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelpBar())
	return frameStyle.Render(b.String())
}

func (m *Model) renderMonthGrid() string {
	var b strings.Builder

	year, month, _ := m.cursor.Date()
	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)
	startDay := firstDay.AddDate(0, 0, -int(firstDay.Weekday()))

	todayKey := dayKey(today())
	cursorKey := dayKey(m.cursor)
	busy := m.busyDays()

	for week := 0; week < 6; week++ {
		for dow := 0; dow < 7; dow++ {
			day := startDay.AddDate(0, 0, week*7+dow)
			key := dayKey(day)

			content := fmt.Sprintf("%2d", day.Day())
			if busy[key] {
				content += dotStyle.Render("•")
			} else {
				content += " "
			}

			var style lipgloss.Style
			switch {
			case key == cursorKey:
				style = cursorStyle
			case key == todayKey:
				style = todayStyle
			case day.Month() != month:
				style = outsideStyle
			default:
				style = dayStyle
			}
			b.WriteString(style.Render(content))
		}
		b.WriteString("\n")
		if startDay.AddDate(0, 0, (week+1)*7).After(lastDay) && week >= 3 {
			break
		}
	}
	return b.String()
}

func (m *Model) renderEvent(ev event.Event, selected bool) string {
	var timeStr string
	if ev.AllDay {
		timeStr = "All day"
	} else if !ev.End.IsZero() {
		timeStr = fmt.Sprintf("%s - %s", ev.Start.UTC().Format("15:04"), ev.End.UTC().Format("15:04"))
	} else {
		timeStr = ev.Start.UTC().Format("15:04")
	}

	prefix := "  "
	titleStyle := lipgloss.NewStyle()
	if selected {
		prefix = keyStyle.Render("▸ ")
		titleStyle = selectedEvent
	}
	return prefix + mutedStyle.Width(14).Render(timeStr) + titleStyle.Render(truncate(ev.Title, maxTitleWidth))
}

func (m *Model) renderAgenda() string {
	var b strings.Builder

	b.WriteString(dateStyle.Render("Events"))
	b.WriteString("\n")

	days := agenda.Build(m.store.Events(context.Background()))
	if len(days) == 0 {
		b.WriteString(mutedStyle.Italic(true).Render("  " + agenda.EmptyText))
		b.WriteString("\n")
		return b.String()
	}
	for _, day := range days {
		b.WriteString(mutedStyle.Render("  " + day.Date))
		b.WriteString("\n")
		for _, item := range day.Items {
			b.WriteString("    " + truncate(item.Label, maxTitleWidth))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) renderTitleDialog() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("New Event"))
	b.WriteString("\n\n")
	b.WriteString(dateStyle.Render(m.cursor.Format("Mon, Jan 2, 2006")))
	b.WriteString("\n\n")
	b.WriteString("    " + m.titleInput.View())
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(dangerStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}
	b.WriteString(mutedStyle.Render("enter add • esc cancel"))
	return frameStyle.Render(b.String())
}

func (m *Model) renderDeleteConfirm() string {
	var b strings.Builder

	b.WriteString(dangerStyle.Render("Delete Event?"))
	b.WriteString("\n\n")
	b.WriteString(dialog.DeletePrompt(m.deleteTitle))
	b.WriteString("\n\n")

	var deleteBtn, cancelBtn string
	if m.confirmIdx == 0 {
		deleteBtn = confirmBtnStyle.Render("Delete")
		cancelBtn = unselectedBtn.Render("Cancel")
	} else {
		deleteBtn = unselectedBtn.Render("Delete")
		cancelBtn = cancelBtnSelected.Render("Cancel")
	}
	b.WriteString(deleteBtn + "  " + cancelBtn)
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("←/→ select • enter confirm • esc cancel"))
	return frameStyle.Render(b.String())
}

func (m *Model) renderHelpBar() string {
	row1 := []string{
		keyStyle.Render("←→") + " day",
		keyStyle.Render("↑↓") + " week",
		keyStyle.Render("[ ]") + " month",
		keyStyle.Render("t") + " today",
	}
	row2 := []string{
		keyStyle.Render("enter") + " new event",
		keyStyle.Render("tab") + " event",
		keyStyle.Render("x") + " delete",
		keyStyle.Render("q") + " quit",
	}
	return mutedStyle.Render(strings.Join(row1, "  ")) + "\n" +
		mutedStyle.Render(strings.Join(row2, "  "))
}

func (m *Model) eventsForDay(day time.Time) []event.Event {
	key := dayKey(day)
	var out []event.Event
	for _, ev := range m.store.Events(context.Background()) {
		if dayKey(ev.Start) == key {
			out = append(out, ev)
		}
	}
	return out
}

func (m *Model) busyDays() map[string]bool {
	busy := make(map[string]bool)
	for _, ev := range m.store.Events(context.Background()) {
		busy[dayKey(ev.Start)] = true
	}
	return busy
}

// dayRange turns a highlighted day into the all-day selection the web
// surface would send for the same date click.
func dayRange(day time.Time) event.Range {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return event.Range{Start: start, End: start.AddDate(0, 0, 1), AllDay: true}
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
