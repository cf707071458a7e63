// Package models defines the core data structures for badge bundles,
// lock events, and vault status.
package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across the vault, resource, and service layers.
var (
	// ErrInvalidConfiguration is returned when a vault is created with
	// equal or empty resource identifiers.
	ErrInvalidConfiguration = errors.New("invalid vault configuration")
	// ErrWrongResourceType is returned when a badge bundle's resource
	// identifier does not match the slot it was presented to.
	ErrWrongResourceType = errors.New("wrong badge resource type")
	// ErrBadgeConsumed is returned when an already-absorbed bundle handle
	// is presented again.
	ErrBadgeConsumed = errors.New("badge bundle already consumed")
	// ErrUnknownResource is returned when a resource identifier is not
	// registered with the value system.
	ErrUnknownResource = errors.New("unknown resource")
	// ErrNonPositiveAmount is returned when a bundle is built with a zero
	// or negative amount.
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// ResourceID identifies one class of badge. Two distinct IDs are fixed
// per vault at creation and never change.
type ResourceID string

// BadgeClass names the two accumulator slots of a vault.
type BadgeClass string

const (
	// AdminBadges is the slot holding relinquished admin badges.
	AdminBadges BadgeClass = "admin"
	// UpgradeBadges is the slot holding relinquished upgrade badges.
	UpgradeBadges BadgeClass = "upgrade"
)

// Badge is an owned bundle of fungible badge value. It is a single-use
// handle: Consume yields the amount exactly once, after which the handle
// is permanently invalid. That models the ownership transfer of a deposit
// without relying on a runtime ownership system.
type Badge struct {
	resourceID ResourceID
	amount     decimal.Decimal
	consumed   bool
}

// NewBadge packages a bundle presented by a caller. The amount must be
// strictly positive.
func NewBadge(id ResourceID, amount decimal.Decimal) (*Badge, error) {
	if id == "" {
		return nil, ErrUnknownResource
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	return &Badge{resourceID: id, amount: amount}, nil
}

// ResourceID reports which badge class this bundle claims to be.
func (b *Badge) ResourceID() ResourceID {
	return b.resourceID
}

// Amount reports the bundle's value without consuming it.
func (b *Badge) Amount() decimal.Decimal {
	return b.amount
}

// Consumed reports whether the bundle has already been absorbed.
func (b *Badge) Consumed() bool {
	return b.consumed
}

// Consume invalidates the handle and yields its amount. A second call
// returns ErrBadgeConsumed and a zero amount.
func (b *Badge) Consume() (decimal.Decimal, error) {
	if b.consumed {
		return decimal.Zero, ErrBadgeConsumed
	}
	b.consumed = true
	return b.amount, nil
}

// LockEvent records one successful absorption. Events are immutable facts
// handed to the external append-only log; the vault itself keeps none.
type LockEvent struct {
	// Class is the slot the badges were absorbed into.
	Class BadgeClass `json:"class"`
	// BadgesLocked is the amount absorbed by this call.
	BadgesLocked decimal.Decimal `json:"badges_locked"`
	// TotalLockedNow is the slot's running total immediately after the call.
	TotalLockedNow decimal.Decimal `json:"total_locked_now"`
	// Timestamp is the time of the absorption, truncated to the minute.
	Timestamp time.Time `json:"timestamp"`
}

// LockStatus is a read-only projection of a vault's accumulators and its
// two fixed resource identities.
type LockStatus struct {
	AdminBadgesLocked    decimal.Decimal `json:"admin_badges_locked"`
	UpgradeBadgesLocked  decimal.Decimal `json:"upgrade_badges_locked"`
	AdminBadgeResource   ResourceID      `json:"admin_badge_resource"`
	UpgradeBadgeResource ResourceID      `json:"upgrade_badge_resource"`
}
