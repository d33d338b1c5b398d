// Package service provides the core calendar service that implements the
// dependencies required by the HTTP API and the terminal surface.
package service

import (
	"context"
	"io"
	"sync"
	"time"

	icscodec "github.com/aindrila22/calendar/internal/adapters/ics"
	"github.com/aindrila22/calendar/internal/adapters/snapshot"
	"github.com/aindrila22/calendar/internal/adapters/storage"
	"github.com/aindrila22/calendar/internal/adapters/surface"
	"github.com/aindrila22/calendar/internal/domain/agenda"
	"github.com/aindrila22/calendar/internal/domain/confirm"
	"github.com/aindrila22/calendar/internal/domain/event"
	"github.com/aindrila22/calendar/internal/domain/store"
	"github.com/aindrila22/calendar/pkg/logger"
	"github.com/aindrila22/calendar/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultDataDir    = "data"
	defaultSessionTTL = 30 * time.Minute
	stopTimeout       = 10 * time.Second
)

// SnapshotConfig bundles the page capture pipeline settings.
type SnapshotConfig struct {
	Enabled   bool
	URL       string
	Output    string
	Cron      string
	Width     int
	Height    int
	Timeout   time.Duration
	QueueSize int
}

// Service wires the store, persistence bridge, session registry, calendar
// exchange, and snapshot pipeline together behind the API's dependency
// surface.
type Service struct {
	mu sync.Mutex

	// Core components
	backend  storage.Backend
	store    *store.Store
	registry *surface.Registry
	codec    *icscodec.Codec
	capture  *snapshot.Service

	// Configuration
	dataDir    string
	sessionTTL time.Duration
	snapConf   SnapshotConfig

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataDir sets the directory the file backend writes under.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithBackend substitutes the persistence backend. Tests and the demo
// driver use the in-memory one.
func WithBackend(b storage.Backend) Option {
	return func(s *Service) {
		if b != nil {
			s.backend = b
		}
	}
}

// WithSessionTTL sets how long idle surface sessions survive.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithSnapshot configures the page capture pipeline.
func WithSnapshot(conf SnapshotConfig) Option {
	return func(s *Service) {
		s.snapConf = conf
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:    defaultDataDir,
		sessionTTL: defaultSessionTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components: backend, bridge,
// store (with its one-shot load), session registry, exchange codec, and
// the snapshot pipeline when enabled.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting calendar service...")

	if s.backend == nil {
		backend, err := storage.NewFileBackend(s.dataDir)
		if err != nil {
			return err
		}
		s.backend = backend
	}

	bridge := storage.NewBridge(s.backend)
	s.store = store.New(bridge)
	s.store.Load(ctx)

	s.registry = surface.NewRegistry(s.store, surface.WithSessionTTL(s.sessionTTL))
	s.registry.StartReaper(ctx)

	s.codec = icscodec.NewCodec(s.store)

	if s.snapConf.Enabled {
		s.capture = snapshot.NewService(s.snapConf.URL, s.snapConf.Output,
			snapshot.WithViewport(s.snapConf.Width, s.snapConf.Height),
			snapshot.WithTimeout(s.snapConf.Timeout),
			snapshot.WithQueueSize(s.snapConf.QueueSize),
			snapshot.WithCron(s.snapConf.Cron),
		)
		if err := s.capture.Run(ctx); err != nil {
			return err
		}
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "calendar service started",
		logger.Int("events", s.store.Len(ctx)),
		logger.Bool("snapshot", s.snapConf.Enabled),
	)
	return nil
}

// Stop gracefully shuts down the service. Idempotent.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping calendar service...")

	if s.capture != nil {
		if err := s.capture.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "snapshot shutdown failed", logger.Error(err))
		}
	}

	// Every mutation already wrote through, but one last save makes the
	// shutdown state explicit on disk.
	bridge := storage.NewBridge(s.backend)
	if err := bridge.Save(ctx, s.store.Events(ctx)); err != nil {
		s.logger.Warn(ctx, "final save failed", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "calendar service stopped")
}

// Store exposes the event store for in-process surfaces.
func (s *Service) Store() *store.Store {
	return s.store
}

// Events returns the store snapshot in wire shape.
func (s *Service) Events(ctx context.Context) []event.Record {
	return event.Records(s.store.Events(ctx))
}

// Agenda returns the chronological side-list groups.
func (s *Service) Agenda(ctx context.Context) []agenda.Day {
	return agenda.Build(s.store.Events(ctx))
}

// OpenSession attaches a new surface session and returns its ID.
func (s *Service) OpenSession(ctx context.Context) string {
	return s.registry.Open(ctx).ID
}

// CloseSession detaches a surface session.
func (s *Service) CloseSession(ctx context.Context, id string) error {
	return s.registry.Close(ctx, id)
}

// SessionSelect forwards a range-selection gesture: the mirror highlights
// the range and the dialog opens awaiting a title.
func (s *Service) SessionSelect(ctx context.Context, id string, r event.Range) error {
	sess, err := s.registry.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.Mirror.Select(ctx, r)
	sess.Controller.RangeSelected(ctx, r)
	return nil
}

// SessionDraft forwards a draft-changed gesture.
func (s *Service) SessionDraft(ctx context.Context, id, title string) error {
	sess, err := s.registry.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.Controller.DraftChanged(ctx, title)
	return nil
}

// SessionCancel forwards a dialog-cancelled gesture.
func (s *Service) SessionCancel(ctx context.Context, id string) error {
	sess, err := s.registry.Get(ctx, id)
	if err != nil {
		return err
	}
	return sess.Controller.Cancel(ctx)
}

// SessionSubmit forwards a dialog submission. Created is false on the
// empty-title no-op.
func (s *Service) SessionSubmit(ctx context.Context, id string) (event.Record, bool, error) {
	sess, err := s.registry.Get(ctx, id)
	if err != nil {
		return event.Record{}, false, err
	}
	ev, created, err := sess.Controller.Submit(ctx)
	if err != nil || !created {
		return event.Record{}, false, err
	}
	return ev.Record(), true, nil
}

// SessionEventClick forwards an event activation with the browser's
// already-collected confirmation answer. Returns whether the event was
// deleted.
func (s *Service) SessionEventClick(ctx context.Context, id, eventID string, confirmed bool) (bool, error) {
	sess, err := s.registry.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return sess.Controller.EventClicked(ctx, eventID, confirm.Answered(confirmed))
}

// ImportICS imports an iCalendar payload into the store and converges the
// attached surface sessions on the result.
func (s *Service) ImportICS(ctx context.Context, r io.Reader) (icscodec.Result, error) {
	res, err := s.codec.Import(ctx, r)
	if res.Imported > 0 {
		s.registry.RefreshAll(ctx)
	}
	return res, err
}

// ExportICS exports the store as an iCalendar payload.
func (s *Service) ExportICS(ctx context.Context) string {
	return s.codec.Export(ctx, s.store.Events(ctx))
}

// EnqueueSnapshot queues one page capture. False when the pipeline is
// disabled or saturated.
func (s *Service) EnqueueSnapshot(ctx context.Context) bool {
	if s.capture == nil {
		return false
	}
	return s.capture.Enqueue(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()

	s.mu.Lock()
	started := s.started
	startedAt := s.startedAt
	s.mu.Unlock()

	stats := map[string]interface{}{
		"started": started,
	}
	if !started {
		return stats
	}

	uptime := time.Since(startedAt).Seconds()
	stats["uptime_seconds"] = uptime
	stats["store"] = s.store.Stats(ctx)
	stats["sessions"] = s.registry.Len(ctx)
	if s.capture != nil {
		stats["snapshot"] = s.capture.Stats(ctx)
	}

	metrics.UpdateServiceUptime(uptime)
	return stats
}
