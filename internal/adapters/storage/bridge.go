package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	event "github.com/aindrila22/calendar/internal/domain/event"
	"github.com/aindrila22/calendar/pkg/logger"
	"github.com/aindrila22/calendar/pkg/metrics"
)

// Bridge implements the store's Persister over a Backend. Every save is a
// full rewrite of the events key; every load is tolerant, because a corrupt
// payload must degrade to an empty calendar instead of locking the user out.
type Bridge struct {
	backend Backend
	log     logger.Logger
}

// NewBridge creates a bridge over the given backend.
func NewBridge(backend Backend, opts ...Option) *Bridge {
	b := &Bridge{
		backend: backend,
		log:     logger.Get().Named("storage"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Save serializes the full event set and overwrites the events key. An
// empty set writes an empty JSON array, not null, so a reload sees the same
// shape the web widget stored.
func (b *Bridge) Save(ctx context.Context, events []event.Event) error {
	start := time.Now()

	records := event.Records(events)
	if records == nil {
		records = []event.Record{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		metrics.RecordStorageSaveError()
		return fmt.Errorf("encoding events: %w", err)
	}

	if err := b.backend.Write(ctx, EventsKey, payload); err != nil {
		metrics.RecordStorageSaveError()
		return fmt.Errorf("writing %q: %w", EventsKey, err)
	}

	metrics.RecordStorageSave()
	metrics.UpdateStoragePayloadBytes(len(payload))
	metrics.RecordStorageSaveLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

// Load reads the events key and decodes it. An absent key is a cold start
// and yields an empty set. A malformed payload yields an empty set with a
// warning. Individually malformed records inside a well-formed array are
// skipped; the rest load.
func (b *Bridge) Load(ctx context.Context) ([]event.Event, error) {
	metrics.RecordStorageLoad()

	payload, err := b.backend.Read(ctx, EventsKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			b.log.Info(ctx, "no persisted events, starting empty")
			return nil, nil
		}
		return nil, fmt.Errorf("reading %q: %w", EventsKey, err)
	}

	var records []event.Record
	if err := json.Unmarshal(payload, &records); err != nil {
		metrics.RecordStorageLoadError()
		b.log.Warn(ctx, "persisted events are malformed, starting empty", logger.Error(err))
		return nil, nil
	}

	events := make([]event.Event, 0, len(records))
	for _, rec := range records {
		ev, err := rec.Coerce()
		if err != nil {
			metrics.RecordRejectedRecord()
			b.log.Warn(ctx, "skipping malformed persisted record", logger.Error(err))
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}
