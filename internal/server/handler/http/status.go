// Package http provides HTTP handlers for the lock status endpoint.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rnslabs/badgelock/internal/models"
)

// StatusService defines the interface for the read-only status query
// required by the StatusHandler.
type StatusService interface {
	// Status returns the vault's current lock status.
	Status(ctx context.Context) models.LockStatus
}

// StatusHandler handles HTTP requests for the lock status projection.
type StatusHandler struct {
	StatusService StatusService
}

// Status handles GET /api/status requests. It writes the current
// LockStatus as JSON. The query has no side effects.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := h.StatusService.Status(r.Context())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}
