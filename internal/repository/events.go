// Package repository provides the append-only persistence layer for lock
// events using a PostgreSQL database. Events are only ever inserted —
// the package contains no update or delete path, matching the one-way
// nature of the vault.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rnslabs/badgelock/internal/models"
)

// PostgresEventLog implements the external append-only lock-event log
// against a PostgreSQL database.
type PostgresEventLog struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresEventLog creates a new PostgresEventLog using the provided
// *sql.DB. db must be a valid connection to a PostgreSQL instance.
func NewPostgresEventLog(db *sql.DB) *PostgresEventLog {
	return &PostgresEventLog{DB: db}
}

// AppendEvent inserts one lock event. Each row is keyed by a fresh UUID
// so replayed inserts from retried transactions never collide.
//
//	ctx:   context for cancellation and deadlines
//	event: the event emitted by the vault for one absorption
//
// Returns an error if the insert fails.
func (l *PostgresEventLog) AppendEvent(ctx context.Context, event models.LockEvent) error {
	_, err := l.DB.ExecContext(ctx, `
		INSERT INTO lock_events (id, badge_class, badges_locked, total_locked_now, locked_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), string(event.Class), event.BadgesLocked, event.TotalLockedNow, event.Timestamp)
	if err != nil {
		return fmt.Errorf("AppendEvent: %w", err)
	}
	return nil
}

// Totals reconstructs the running totals of both slots from the log.
// The accounting identity guarantees the per-class sum of absorbed
// amounts equals the latest running total.
func (l *PostgresEventLog) Totals(ctx context.Context) (admin, upgrade decimal.Decimal, err error) {
	rows, err := l.DB.QueryContext(ctx, `
		SELECT badge_class, COALESCE(SUM(badges_locked), 0) FROM lock_events GROUP BY badge_class
	`)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("Totals: %w", err)
	}
	defer rows.Close()

	admin, upgrade = decimal.Zero, decimal.Zero
	for rows.Next() {
		var class string
		var total decimal.Decimal
		if err := rows.Scan(&class, &total); err != nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("scan: %w", err)
		}
		switch models.BadgeClass(class) {
		case models.AdminBadges:
			admin = total
		case models.UpgradeBadges:
			upgrade = total
		}
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("Totals rows: %w", err)
	}
	return admin, upgrade, nil
}

// EventsByClass fetches the most recent events of one slot, newest
// first, for external indexers.
//
//	ctx:   context for cancellation and deadlines
//	class: which accumulator slot to read
//	limit: maximum number of events to return
//
// Returns a slice of models.LockEvent or an error if the query or
// scanning fails.
func (l *PostgresEventLog) EventsByClass(ctx context.Context, class models.BadgeClass, limit int) ([]models.LockEvent, error) {
	rows, err := l.DB.QueryContext(ctx, `
		SELECT badge_class, badges_locked, total_locked_now, locked_at FROM lock_events
		WHERE badge_class = $1 ORDER BY locked_at DESC LIMIT $2
	`, string(class), limit)
	if err != nil {
		return nil, fmt.Errorf("EventsByClass: %w", err)
	}
	defer rows.Close()

	var events []models.LockEvent
	for rows.Next() {
		var ev models.LockEvent
		var c string
		if err := rows.Scan(&c, &ev.BadgesLocked, &ev.TotalLockedNow, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		ev.Class = models.BadgeClass(c)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("EventsByClass rows: %w", err)
	}
	return events, nil
}
