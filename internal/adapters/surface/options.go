package surface

import (
	"time"

	"github.com/aindrila22/calendar/pkg/logger"
)

// MirrorOption applies a configuration option to a Mirror.
type MirrorOption func(*Mirror)

// WithMirrorLogger overrides the default named logger.
func WithMirrorLogger(l logger.Logger) MirrorOption {
	return func(m *Mirror) {
		if l != nil {
			m.log = l
		}
	}
}

// RegistryOption applies a configuration option to a Registry.
type RegistryOption func(*Registry)

// WithSessionTTL sets how long an idle session survives before reaping.
func WithSessionTTL(ttl time.Duration) RegistryOption {
	return func(r *Registry) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithRegistryLogger overrides the default named logger.
func WithRegistryLogger(l logger.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}
