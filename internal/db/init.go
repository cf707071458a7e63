package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS lock_events (
    id UUID PRIMARY KEY,
    badge_class TEXT NOT NULL,
    badges_locked NUMERIC NOT NULL CHECK (badges_locked > 0),
    total_locked_now NUMERIC NOT NULL CHECK (total_locked_now > 0),
    locked_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS lock_events_class_time
    ON lock_events (badge_class, locked_at DESC);
`

func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
