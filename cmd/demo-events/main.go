package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/aindrila22/calendar/internal/demoevents"
)

// Default configuration constants.
const (
	defaultNumEvents   = 100
	defaultWorkers     = 4
	defaultDeleteRatio = 0.2
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:8080", "Base URL of the service")
		numEvents   = flag.Int("events", defaultNumEvents, "Number of events to create")
		workers     = flag.Int("workers", defaultWorkers, "Number of concurrent sessions")
		deleteRatio = flag.Float64("delete", defaultDeleteRatio, "Fraction of created events to delete afterwards")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile  = flag.String("output", "", "Output file for generated events (default: demo_events_TIMESTAMP.json)")
		logFile     = flag.String("log", "", "Log file for driver output (default: demo_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		demoevents.ShowHelp()
		return
	}

	if err := demoevents.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &demoevents.Config{
		BaseURL:     *baseURL,
		NumEvents:   *numEvents,
		Workers:     *workers,
		DeleteRatio: *deleteRatio,
		Timeout:     *timeout,
		OutputFile:  *outputFile,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	if err := demoevents.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Demo failed: " + err.Error() + "\n")
		return
	}
}
