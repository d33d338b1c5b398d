package demoevents

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/aindrila22/calendar/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "demo_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the demo driver.
func ShowHelp() {
	os.Stdout.WriteString(`Calendar Demo Driver
====================

Drives a running calendar service through its session API: creates events
via the dialog flow, deletes a slice of them through the confirm flow, and
verifies the event set against the agenda.

Usage:
  go run cmd/demo-events/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -events int
        Number of events to create (default 100)
  -workers int
        Number of concurrent sessions (default 4)
  -delete float
        Fraction of created events to delete afterwards (default 0.2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated events (default: demo_events_TIMESTAMP.json)
  -log string
        Log file for driver output (default: demo_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Fill a local service with the default event mix
  go run cmd/demo-events/main.go

  # A bigger run against another instance
  go run cmd/demo-events/main.go -events 1000 -workers 8 -url http://localhost:9090

  # Create only, delete nothing
  go run cmd/demo-events/main.go -delete 0
`)
}
