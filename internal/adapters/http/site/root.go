// Package site serves the embedded calendar page.
package site

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Error constants
var (
	ErrServe = errors.New("calendar page serve failed")
)

// Register attaches the embedded calendar page routes to the router. The
// page lives at / with its assets beside it; API routes registered on the
// same router take precedence over the catch-all.
func Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	files := http.FileServer(FS())
	r.Handle("/*", files)
}

// RootHandler handles root path requests.
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot serves the embedded calendar page.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	files := http.FileServer(FS())
	files.ServeHTTP(w, r)
}
