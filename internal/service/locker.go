// Package service wires the vault to its surrounding environment: it
// restores totals from the persisted event log at startup, hands each
// emitted event to the log, and reports status.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rnslabs/badgelock/internal/models"
)

// EventLog defines the append-only log operations needed by the
// LockerService.
type EventLog interface {
	// AppendEvent records one emitted lock event.
	AppendEvent(ctx context.Context, event models.LockEvent) error
	// Totals reconstructs both running totals from the log.
	Totals(ctx context.Context) (admin, upgrade decimal.Decimal, err error)
}

// Locker defines the vault operations the service orchestrates.
type Locker interface {
	LockAdminBadges(b *models.Badge) (models.LockEvent, error)
	LockUpgradeBadges(b *models.Badge) (models.LockEvent, error)
	Status() models.LockStatus
	RestoreTotals(admin, upgrade decimal.Decimal) error
}

// LockerService exposes the vault's operations with event persistence
// and logging around them.
type LockerService struct {
	vault Locker
	log   EventLog
	zlog  *zap.Logger
}

// NewLockerService constructs a LockerService and rehydrates the vault's
// accumulators from the event log. Returns an error if the log cannot be
// read or the vault refuses the restored totals.
func NewLockerService(ctx context.Context, v Locker, log EventLog, zlog *zap.Logger) (*LockerService, error) {
	admin, upgrade, err := log.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore totals: %w", err)
	}
	if err := v.RestoreTotals(admin, upgrade); err != nil {
		return nil, fmt.Errorf("restore totals: %w", err)
	}
	return &LockerService{vault: v, log: log, zlog: zlog}, nil
}

// LockAdminBadges absorbs an admin badge bundle and appends the emitted
// event to the external log.
//
// An absorption is never rolled back: if the append fails after the
// vault has absorbed the bundle, the error is returned but the totals
// keep the deposit. The log can be re-derived from the running totals
// carried by later events.
func (s *LockerService) LockAdminBadges(ctx context.Context, b *models.Badge) (models.LockEvent, error) {
	return s.lock(ctx, b, s.vault.LockAdminBadges)
}

// LockUpgradeBadges absorbs an upgrade badge bundle and appends the
// emitted event to the external log. Contract identical to
// LockAdminBadges.
func (s *LockerService) LockUpgradeBadges(ctx context.Context, b *models.Badge) (models.LockEvent, error) {
	return s.lock(ctx, b, s.vault.LockUpgradeBadges)
}

func (s *LockerService) lock(ctx context.Context, b *models.Badge, op func(*models.Badge) (models.LockEvent, error)) (models.LockEvent, error) {
	ev, err := op(b)
	if err != nil {
		return models.LockEvent{}, err
	}

	s.zlog.Info("badges locked",
		zap.String("class", string(ev.Class)),
		zap.String("badges_locked", ev.BadgesLocked.String()),
		zap.String("total_locked_now", ev.TotalLockedNow.String()),
	)

	if err := s.log.AppendEvent(ctx, ev); err != nil {
		s.zlog.Error("failed to append lock event", zap.Error(err))
		return ev, fmt.Errorf("append event: %w", err)
	}
	return ev, nil
}

// Status returns the current lock status of the vault.
func (s *LockerService) Status(ctx context.Context) models.LockStatus {
	return s.vault.Status()
}

// StartStatusReporter periodically logs both running totals until the
// context is cancelled.
func (s *LockerService) StartStatusReporter(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				status := s.vault.Status()
				s.zlog.Info("lock status",
					zap.String("admin_badges_locked", status.AdminBadgesLocked.String()),
					zap.String("upgrade_badges_locked", status.UpgradeBadgesLocked.String()),
				)
			}
		}
	}()
}
