package ics

import (
	"github.com/aindrila22/calendar/pkg/logger"
)

// Option applies a configuration option to the Codec.
type Option func(*Codec)

// WithLogger overrides the default named logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Codec) {
		if l != nil {
			c.log = l
		}
	}
}
