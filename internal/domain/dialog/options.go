package dialog

import (
	"github.com/aindrila22/calendar/pkg/logger"
)

// Option applies a configuration option to the Controller.
type Option func(*Controller)

// WithLogger overrides the default named logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}
