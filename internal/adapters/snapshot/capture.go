// Package snapshot renders the served calendar page to a PNG file, for
// dashboards and e-ink displays that poll an image instead of a browser.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// Default capture parameters. These match the layout of the embedded
// calendar page.
const (
	DefaultWidth   = 1200
	DefaultHeight  = 825
	DefaultTimeout = 30 * time.Second
)

// Job describes one capture: which page, where the PNG goes, and the
// emulated viewport.
type Job struct {
	URL     string
	Output  string
	Width   int
	Height  int
	Timeout time.Duration
}

// Capturer renders one Job. The production implementation drives a headless
// Chrome; tests substitute a fake.
type Capturer interface {
	Capture(ctx context.Context, job Job) error
}

// ChromeCapturer captures pages with chromedp.
type ChromeCapturer struct{}

// Capture navigates a headless Chrome to job.URL, waits until the page
// signals readiness through its data-ready attribute, screenshots the
// viewport, and writes the PNG atomically.
func (ChromeCapturer) Capture(parent context.Context, job Job) error {
	if job.URL == "" {
		return fmt.Errorf("%w: url is required", ErrBadJob)
	}
	if job.Output == "" {
		return fmt.Errorf("%w: output path is required", ErrBadJob)
	}
	if job.Width <= 0 {
		job.Width = DefaultWidth
	}
	if job.Height <= 0 {
		job.Height = DefaultHeight
	}
	if job.Timeout <= 0 {
		job.Timeout = DefaultTimeout
	}

	ctx, cancel := chromedp.NewContext(parent)
	defer cancel()
	ctx, timeoutCancel := context.WithTimeout(ctx, job.Timeout)
	defer timeoutCancel()

	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(job.Width), int64(job.Height)),
		chromedp.Navigate(job.URL),
		// The calendar page flips data-ready to "true" once the event list
		// has rendered.
		chromedp.WaitVisible(`[data-ready="true"]`, chromedp.ByQuery),
		chromedp.Sleep(500 * time.Millisecond),
		chromedp.FullScreenshot(&png, 100),
	}
	if err := chromedp.Run(ctx, tasks); err != nil {
		return fmt.Errorf("%w: %w", ErrCapture, err)
	}

	return writeAtomic(job.Output, png)
}

// writeAtomic lands the PNG under its final name in one rename, so pollers
// never read a half-written image.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCapture, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", ErrCapture, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrCapture, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrCapture, err)
	}
	return nil
}
