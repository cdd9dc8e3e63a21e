package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the snapshot tables. Snapshots are stored as opaque JSON
// documents; the engine owns their shape.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS user_snapshots (
			username TEXT PRIMARY KEY,
			snapshot TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS session_snapshots (
			routine_id TEXT NOT NULL,
			date TEXT NOT NULL,
			snapshot TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (routine_id, date)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_session_snapshots_date ON session_snapshots(date);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
