package demoevents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with a timeout.
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with an optional JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readJSON reads, closes, and decodes a response body.
func readJSON(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return json.Unmarshal(data, v)
}

// openSession opens one surface session and returns its ID.
func openSession(ctx context.Context, client *HTTPClient, baseURL string) (string, error) {
	resp, err := client.Post(ctx, baseURL+"/api/sessions", nil)
	if err != nil {
		return "", fmt.Errorf("failed to open session: %w", err)
	}
	if resp.StatusCode != StatusCreated {
		_ = readJSON(resp, nil)
		return "", fmt.Errorf("unexpected session open status: %d", resp.StatusCode)
	}
	var sess sessionResponse
	if err := readJSON(resp, &sess); err != nil {
		return "", fmt.Errorf("failed to decode session: %w", err)
	}
	return sess.ID, nil
}

// selection is the select gesture payload for one demo event.
func selection(ev DemoEvent) map[string]interface{} {
	if ev.AllDay {
		day, _ := time.Parse("2006-01-02", ev.Date)
		return map[string]interface{}{
			"start":  ev.Date,
			"end":    day.AddDate(0, 0, 1).Format("2006-01-02"),
			"allDay": true,
		}
	}
	return map[string]interface{}{
		"start": ev.Date + "T09:00:00Z",
		"end":   ev.Date + "T10:00:00Z",
	}
}

// submitEvents walks the session dialog flow for every event, concurrently.
// Each worker drives its own session, mirroring independent browser tabs.
func submitEvents(ctx context.Context, config *Config, events []DemoEvent, stats *Stats) ([]Record, error) {
	log.Printf("submitting %d events with %d workers...", len(events), config.Workers)

	client := newHTTPClient(config.Timeout)

	var (
		created   int64
		duplicate int64
		failed    int64
		submitted int64
	)

	var mu sync.Mutex
	var records []Record

	eventChan := make(chan DemoEvent, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			sessionID, err := openSession(ctx, client, config.BaseURL)
			if err != nil {
				log.Printf("worker session failed: %v", err)
				for range eventChan {
					atomic.AddInt64(&failed, 1)
					atomic.AddInt64(&submitted, 1)
				}
				return
			}

			for ev := range eventChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				rec, result := submitSingleEvent(ctx, client, config.BaseURL, sessionID, ev)
				atomic.AddInt64(&submitted, 1)
				switch result {
				case "created":
					atomic.AddInt64(&created, 1)
					mu.Lock()
					records = append(records, rec)
					mu.Unlock()
				case "duplicate":
					atomic.AddInt64(&duplicate, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}

				if config.Verbose {
					log.Printf("progress: %d/%d submitted (created: %d, duplicate: %d, failed: %d)",
						atomic.LoadInt64(&submitted), len(events),
						atomic.LoadInt64(&created), atomic.LoadInt64(&duplicate), atomic.LoadInt64(&failed))
				}
			}
		}()
	}

	go func() {
		defer close(eventChan)
		for _, ev := range events {
			select {
			case <-ctx.Done():
				return
			case eventChan <- ev:
			}
		}
	}()

	wg.Wait()

	stats.EventsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.EventsCreated = int(atomic.LoadInt64(&created))
	stats.EventsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.EventsFailed = int(atomic.LoadInt64(&failed))

	log.Printf("event submission completed: created %d, duplicate %d, failed %d",
		stats.EventsCreated, stats.EventsDuplicate, stats.EventsFailed)

	return records, nil
}

// submitSingleEvent drives select -> draft -> submit for one event.
func submitSingleEvent(ctx context.Context, client *HTTPClient, baseURL, sessionID string, ev DemoEvent) (Record, string) {
	base := baseURL + "/api/sessions/" + sessionID

	resp, err := client.Post(ctx, base+"/select", selection(ev))
	if err != nil || resp.StatusCode != StatusNoContent {
		if resp != nil {
			_ = readJSON(resp, nil)
		}
		return Record{}, "failed"
	}

	resp, err = client.Post(ctx, base+"/draft", map[string]string{"title": ev.Title})
	if err != nil || resp.StatusCode != StatusNoContent {
		if resp != nil {
			_ = readJSON(resp, nil)
		}
		return Record{}, "failed"
	}

	resp, err = client.Post(ctx, base+"/submit", nil)
	if err != nil {
		return Record{}, "failed"
	}
	switch resp.StatusCode {
	case StatusOK:
		var sub submitResponse
		if err := readJSON(resp, &sub); err != nil || !sub.Created {
			return Record{}, "failed"
		}
		return sub.Event, "created"
	case http.StatusConflict:
		_ = readJSON(resp, nil)
		return Record{}, "duplicate"
	default:
		_ = readJSON(resp, nil)
		return Record{}, "failed"
	}
}

// deleteEvents removes a slice of the created events through the
// confirm-then-delete flow.
func deleteEvents(ctx context.Context, config *Config, records []Record, stats *Stats) error {
	toDelete := int(float64(len(records)) * config.DeleteRatio)
	if toDelete == 0 {
		return nil
	}
	log.Printf("deleting %d of %d created events...", toDelete, len(records))

	client := newHTTPClient(config.Timeout)
	sessionID, err := openSession(ctx, client, config.BaseURL)
	if err != nil {
		return err
	}
	url := config.BaseURL + "/api/sessions/" + sessionID + "/event-click"

	var deleted int
	for _, rec := range records[:toDelete] {
		resp, err := client.Post(ctx, url, map[string]interface{}{
			"id":        rec.ID,
			"confirmed": true,
		})
		if err != nil {
			continue
		}
		var out deleteResponse
		if err := readJSON(resp, &out); err == nil && out.Deleted {
			deleted++
		}
	}

	stats.EventsDeleted = deleted
	log.Printf("deleted %d events", deleted)
	return nil
}
