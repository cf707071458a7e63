// Package http provides HTTP handlers for the badge lock endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/rnslabs/badgelock/internal/models"
)

// LockerService defines the interface for lock operations required by
// the LockHandler.
type LockerService interface {
	// LockAdminBadges absorbs an admin badge bundle and returns the
	// emitted event.
	LockAdminBadges(ctx context.Context, b *models.Badge) (models.LockEvent, error)
	// LockUpgradeBadges absorbs an upgrade badge bundle and returns the
	// emitted event.
	LockUpgradeBadges(ctx context.Context, b *models.Badge) (models.LockEvent, error)
}

// LockHandler handles HTTP requests that present badge bundles for
// permanent locking.
type LockHandler struct {
	// LockerService performs the underlying vault operations.
	LockerService LockerService
}

// LockRequest represents the JSON wire form of a presented bundle.
type LockRequest struct {
	// ResourceID is the claimed badge resource of the bundle.
	ResourceID string `json:"resource_id"`
	// Amount is the bundle's amount as a decimal string.
	Amount string `json:"amount"`
}

// LockAdmin handles POST /api/lock/admin requests. It decodes a bundle
// from the JSON body, presents it to the vault's admin slot, and writes
// the emitted event as JSON. A bundle of the wrong resource is rejected
// with 409 Conflict and nothing is absorbed.
func (h *LockHandler) LockAdmin(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.LockerService.LockAdminBadges)
}

// LockUpgrade handles POST /api/lock/upgrade requests, symmetric to
// LockAdmin over the upgrade slot.
func (h *LockHandler) LockUpgrade(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.LockerService.LockUpgradeBadges)
}

func (h *LockHandler) handle(w http.ResponseWriter, r *http.Request, op func(context.Context, *models.Badge) (models.LockEvent, error)) {
	var req LockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}
	badge, err := models.NewBadge(models.ResourceID(req.ResourceID), amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	event, err := op(r.Context(), badge)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrWrongResourceType):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, models.ErrBadgeConsumed):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(event)
}
