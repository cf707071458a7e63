// Package http provides HTTP routing and middleware configuration
// for the badge lock service.
package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rnslabs/badgelock/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the lock
// API. It applies request logging to everything and JSON content-type
// enforcement to the mutating endpoints. There is deliberately no
// authentication: anyone may deposit, nobody may withdraw.
//
// Routes:
//
//	POST /api/lock/admin    → lockHandler.LockAdmin
//	POST /api/lock/upgrade  → lockHandler.LockUpgrade
//	GET  /api/status        → statusHandler.Status
func NewRouter(
	lockHandler *LockHandler,
	statusHandler *StatusHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", statusHandler.Status)

		// Only allow lock requests with Content-Type: application/json
		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))
			r.Post("/lock/admin", lockHandler.LockAdmin)
			r.Post("/lock/upgrade", lockHandler.LockUpgrade)
		})
	})

	return r
}
