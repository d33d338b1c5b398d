package term

import "github.com/charmbracelet/lipgloss"

// Palette shared by the calendar views.
var (
	colorPrimary = lipgloss.Color("#3B66D4")
	colorText    = lipgloss.Color("#FFFFFF")
	colorMuted   = lipgloss.Color("#7A8094")
	colorDanger  = lipgloss.Color("#D0454C")
	colorAccent  = lipgloss.Color("#5AD48F")
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1)
	weekdayStyle  = lipgloss.NewStyle().Foreground(colorMuted).Width(6).Align(lipgloss.Center)
	dayStyle      = lipgloss.NewStyle().Width(6).Align(lipgloss.Center)
	cursorStyle   = dayStyle.Background(colorPrimary).Foreground(colorText)
	todayStyle    = dayStyle.Bold(true).Foreground(colorAccent)
	outsideStyle  = dayStyle.Foreground(colorMuted)
	dotStyle      = lipgloss.NewStyle().Foreground(colorAccent)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	dangerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorDanger)
	dateStyle     = lipgloss.NewStyle().Bold(true)
	selectedEvent = lipgloss.NewStyle().Bold(true)
	keyStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	frameStyle    = lipgloss.NewStyle().Padding(1, 2)

	confirmBtnStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(colorDanger).Padding(0, 2)
	unselectedBtn     = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 2)
	cancelBtnSelected = lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(colorMuted).Padding(0, 2)
)
