package demoevents

import (
	"context"
	"fmt"
	"log"
)

// fetchEvents retrieves the full event set from the service.
func fetchEvents(ctx context.Context, client *HTTPClient, baseURL string) (*eventsResponse, error) {
	resp, err := client.Get(ctx, baseURL+"/api/events")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	if resp.StatusCode != StatusOK {
		_ = readJSON(resp, nil)
		return nil, fmt.Errorf("unexpected events status: %d", resp.StatusCode)
	}
	var out eventsResponse
	if err := readJSON(resp, &out); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return &out, nil
}

// fetchAgenda retrieves the side-list groups from the service.
func fetchAgenda(ctx context.Context, client *HTTPClient, baseURL string) (*agendaResponse, error) {
	resp, err := client.Get(ctx, baseURL+"/api/agenda")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agenda: %w", err)
	}
	if resp.StatusCode != StatusOK {
		_ = readJSON(resp, nil)
		return nil, fmt.Errorf("unexpected agenda status: %d", resp.StatusCode)
	}
	var out agendaResponse
	if err := readJSON(resp, &out); err != nil {
		return nil, fmt.Errorf("failed to decode agenda: %w", err)
	}
	return &out, nil
}

// verifyResults cross-checks the event set against the agenda and the
// driver's own counters.
func verifyResults(ctx context.Context, config *Config, stats *Stats) error {
	log.Println("verifying results...")

	client := newHTTPClient(config.Timeout)

	events, err := fetchEvents(ctx, client, config.BaseURL)
	if err != nil {
		return err
	}
	agenda, err := fetchAgenda(ctx, client, config.BaseURL)
	if err != nil {
		return err
	}

	// The store should hold exactly what the run created minus what it
	// deleted. A non-empty store before the run breaks this check, so the
	// driver expects a fresh service.
	expected := stats.EventsCreated - stats.EventsDeleted
	if events.Count != expected {
		log.Printf("warning: event count %d differs from expected %d (was the store empty before the run?)",
			events.Count, expected)
	}

	if err := verifyAgendaConsistency(events, agenda); err != nil {
		return fmt.Errorf("agenda verification failed: %w", err)
	}

	stats.AgendaDays = len(agenda.Days)
	log.Printf("verification completed: %d events across %d agenda days", events.Count, len(agenda.Days))
	return nil
}

// verifyAgendaConsistency checks every stored event appears in the agenda
// exactly once and that the empty placeholder matches the event count.
func verifyAgendaConsistency(events *eventsResponse, agenda *agendaResponse) error {
	if len(events.Events) == 0 {
		if !agenda.Empty {
			return fmt.Errorf("empty store but agenda reports days")
		}
		if agenda.Placeholder != "No Events Present" {
			return fmt.Errorf("unexpected empty placeholder: %q", agenda.Placeholder)
		}
		return nil
	}

	if agenda.Empty {
		return fmt.Errorf("%d events stored but agenda reports empty", len(events.Events))
	}

	seen := make(map[string]int)
	for _, day := range agenda.Days {
		for _, item := range day.Items {
			seen[item.ID]++
		}
	}
	for _, ev := range events.Events {
		switch seen[ev.ID] {
		case 1:
		case 0:
			return fmt.Errorf("event %q missing from agenda", ev.ID)
		default:
			return fmt.Errorf("event %q appears %d times in agenda", ev.ID, seen[ev.ID])
		}
	}
	return nil
}
