package demoevents

import "time"

// Config holds configuration for the demo driver.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumEvents   int           // Number of events to generate
	Workers     int           // Number of concurrent workers
	DeleteRatio float64       // Fraction of created events to delete afterwards
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Output file for generated events
	LogFile     string        // Log file for driver output
	Verbose     bool          // Enable verbose logging
}

// DemoEvent is one event the driver will create through the session API.
type DemoEvent struct {
	Date   string `json:"date"`  // calendar day, e.g. "2026-09-12"
	Title  string `json:"title"` // unique within the run
	AllDay bool   `json:"allDay"`
}

// Record mirrors the service's event wire shape.
type Record struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end,omitempty"`
	AllDay bool   `json:"allDay,omitempty"`
}

// sessionResponse is the POST /api/sessions payload.
type sessionResponse struct {
	ID string `json:"id"`
}

// submitResponse reports a dialog submission outcome.
type submitResponse struct {
	Created  bool   `json:"created"`
	Event    Record `json:"event"`
	Unselect bool   `json:"unselect"`
}

// eventsResponse is the GET /api/events payload.
type eventsResponse struct {
	Events []Record `json:"events"`
	Count  int      `json:"count"`
}

// agendaResponse is the GET /api/agenda payload.
type agendaResponse struct {
	Days []struct {
		Date  string `json:"date"`
		Items []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
			Label string `json:"label"`
		} `json:"items"`
	} `json:"days"`
	Empty       bool   `json:"empty"`
	Placeholder string `json:"placeholder"`
}

// deleteResponse reports an event-click outcome.
type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

// Stats holds driver statistics.
type Stats struct {
	EventsGenerated int
	EventsSubmitted int
	EventsCreated   int
	EventsDuplicate int
	EventsFailed    int
	EventsDeleted   int
	AgendaDays      int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
