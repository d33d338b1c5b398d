package demoevents

import "time"

// HTTP status code constants.
const (
	StatusOK        = 200
	StatusCreated   = 201
	StatusNoContent = 204
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	SettleDelay          = 500 * time.Millisecond
	PercentageMultiplier = 100
)
