package snapshot

import (
	"time"

	"github.com/aindrila22/calendar/pkg/logger"
)

// ServiceOption applies a configuration option to the Service.
type ServiceOption func(*Service)

// WithCapturer substitutes the page capturer. Tests use this to avoid
// launching a browser.
func WithCapturer(c Capturer) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.capturer = c
		}
	}
}

// WithQueueSize bounds the pending job queue.
func WithQueueSize(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithViewport sets the emulated browser viewport.
func WithViewport(width, height int) ServiceOption {
	return func(s *Service) {
		if width > 0 && height > 0 {
			s.width = width
			s.height = height
		}
	}
}

// WithTimeout bounds a single capture.
func WithTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithCron schedules periodic captures, standard cron syntax.
func WithCron(spec string) ServiceOption {
	return func(s *Service) {
		s.cronSpec = spec
	}
}

// WithLogger overrides the default named logger.
func WithLogger(l logger.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}
