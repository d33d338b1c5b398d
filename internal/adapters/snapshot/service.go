package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aindrila22/calendar/pkg/logger"
	"github.com/aindrila22/calendar/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQueueSize = 4
)

// Service runs the capture pipeline: a bounded job queue feeding one worker
// loop, plus an optional cron schedule for periodic captures. Enqueueing
// never blocks; when the queue is full the job is dropped and counted.
type Service struct {
	capturer  Capturer
	jobs      chan Job
	queueSize int

	url     string
	output  string
	width   int
	height  int
	timeout time.Duration

	cronSpec string
	cron     *cron.Cron

	mu       sync.Mutex
	started  bool
	captures int64
	drops    int64
	failures int64
	lastRun  time.Time

	shutdown chan struct{}
	done     chan struct{}

	log logger.Logger
}

// Stats reports snapshot pipeline counters for the stats endpoint.
type Stats struct {
	Queued   int       `json:"queued"`
	Captures int64     `json:"captures"`
	Dropped  int64     `json:"dropped"`
	Failures int64     `json:"failures"`
	LastRun  time.Time `json:"last_run"`
}

// NewService creates a snapshot service capturing the page at url into the
// output path.
func NewService(url, output string, opts ...ServiceOption) *Service {
	s := &Service{
		capturer:  ChromeCapturer{},
		queueSize: defaultQueueSize,
		url:       url,
		output:    output,
		width:     DefaultWidth,
		height:    DefaultHeight,
		timeout:   DefaultTimeout,
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		log:       logger.Get().Named("snapshot"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.jobs = make(chan Job, s.queueSize)
	return s
}

// Run starts the worker loop and, when a cron expression is configured, the
// schedule. It returns once the loop is running.
func (s *Service) Run(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	if s.cronSpec != "" {
		c := cron.New()
		if _, err := c.AddFunc(s.cronSpec, func() { s.Enqueue(context.Background()) }); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrBadCron, s.cronSpec, err)
		}
		c.Start()
		s.cron = c
		s.log.Info(ctx, "snapshot schedule active", logger.String("cron", s.cronSpec))
	}

	go s.loop(ctx)
	s.started = true
	return nil
}

// Enqueue queues one capture. Returns false when the queue is full or the
// service is shutting down; the caller is not expected to retry.
func (s *Service) Enqueue(ctx context.Context) bool {
	job := Job{
		URL:     s.url,
		Output:  s.output,
		Width:   s.width,
		Height:  s.height,
		Timeout: s.timeout,
	}

	select {
	case <-s.shutdown:
		return false
	default:
	}

	select {
	case s.jobs <- job:
		metrics.UpdateSnapshotQueueDepth(len(s.jobs))
		return true
	default:
		s.mu.Lock()
		s.drops++
		s.mu.Unlock()
		metrics.RecordSnapshotDropped()
		s.log.Warn(ctx, "snapshot queue full, dropping job")
		return false
	}
}

// Shutdown stops the schedule and drains the worker loop.
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
	}
	close(s.shutdown)

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		s.log.Warn(ctx, "snapshot shutdown timed out")
		return fmt.Errorf("%w: %w", ErrStopped, ctx.Err())
	}
}

// Stats returns pipeline counters.
func (s *Service) Stats(ctx context.Context) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Queued:   len(s.jobs),
		Captures: s.captures,
		Dropped:  s.drops,
		Failures: s.failures,
		LastRun:  s.lastRun,
	}
}

// loop consumes jobs until shutdown or context cancellation.
func (s *Service) loop(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.shutdown:
			return
		case job := <-s.jobs:
			metrics.UpdateSnapshotQueueDepth(len(s.jobs))
			s.capture(ctx, job)
		}
	}
}

// capture runs one job and records its outcome.
func (s *Service) capture(ctx context.Context, job Job) {
	start := time.Now()
	err := s.capturer.Capture(ctx, job)
	elapsed := time.Since(start)
	metrics.RecordSnapshotDuration(float64(elapsed.Milliseconds()))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.failures++
		metrics.RecordSnapshotError()
		s.log.Error(ctx, "snapshot capture failed", logger.Error(err))
		return
	}
	s.captures++
	s.lastRun = time.Now()
	metrics.RecordSnapshotCapture()
	s.log.Info(ctx, "snapshot captured",
		logger.String("output", job.Output),
		logger.Duration("elapsed", elapsed))
}
