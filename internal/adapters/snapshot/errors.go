package snapshot

import "errors"

// Sentinel kinds for snapshot errors.
var (
	ErrBadJob  = errors.New("invalid snapshot job")
	ErrCapture = errors.New("snapshot capture failed")
	ErrStopped = errors.New("snapshot service stopped")
	ErrBadCron = errors.New("invalid snapshot cron expression")
)
