package storage

import (
	"github.com/aindrila22/calendar/pkg/logger"
)

// Option applies a configuration option to the Bridge.
type Option func(*Bridge)

// WithLogger overrides the default named logger.
func WithLogger(l logger.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.log = l
		}
	}
}
