package store

import (
	"github.com/aindrila22/calendar/pkg/logger"
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithLogger overrides the default named logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}
