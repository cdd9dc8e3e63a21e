package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/AndrejKiraly/RoutineGamification/internal/engine"
)

// SessionRepo persists session snapshots keyed by (routine_id, date).
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Load returns the stored snapshot for the pair, or nil when absent.
func (r *SessionRepo) Load(ctx context.Context, routineID, date string) (*engine.SessionSnapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT snapshot FROM session_snapshots WHERE routine_id = ? AND date = ?`, routineID, date)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("session load: %w", err)
	}

	var snap engine.SessionSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &snap, nil
}

// Save upserts the snapshot.
func (r *SessionRepo) Save(ctx context.Context, snap *engine.SessionSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO session_snapshots (routine_id, date, snapshot, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(routine_id, date) DO UPDATE SET snapshot = excluded.snapshot, updated_at = CURRENT_TIMESTAMP
	`, snap.RoutineID, snap.Date, string(raw))
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// ListByDate returns all stored sessions for one calendar day.
func (r *SessionRepo) ListByDate(ctx context.Context, date string) ([]*engine.SessionSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT snapshot FROM session_snapshots WHERE date = ? ORDER BY routine_id ASC`, date)
	if err != nil {
		return nil, fmt.Errorf("session list: %w", err)
	}
	defer rows.Close()

	var out []*engine.SessionSnapshot
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("session scan: %w", err)
		}
		var snap engine.SessionSnapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			return nil, fmt.Errorf("session decode: %w", err)
		}
		out = append(out, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session rows: %w", err)
	}
	return out, nil
}
