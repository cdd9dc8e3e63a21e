package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/AndrejKiraly/RoutineGamification/internal/engine"
)

// UserRepo persists user snapshots keyed by username.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Load returns the stored snapshot for the username, or nil when absent.
func (r *UserRepo) Load(ctx context.Context, username string) (*engine.UserSnapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT snapshot FROM user_snapshots WHERE username = ?`, username)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user load: %w", err)
	}

	var snap engine.UserSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("user decode: %w", err)
	}
	return &snap, nil
}

// Save upserts the snapshot.
func (r *UserRepo) Save(ctx context.Context, snap *engine.UserSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("user encode: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_snapshots (username, snapshot, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(username) DO UPDATE SET snapshot = excluded.snapshot, updated_at = CURRENT_TIMESTAMP
	`, snap.Username, string(raw))
	if err != nil {
		return fmt.Errorf("user save: %w", err)
	}
	return nil
}

func (r *UserRepo) saveTx(ctx context.Context, tx *sql.Tx, snap *engine.UserSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("user encode: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_snapshots (username, snapshot, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(username) DO UPDATE SET snapshot = excluded.snapshot, updated_at = CURRENT_TIMESTAMP
	`, snap.Username, string(raw))
	if err != nil {
		return fmt.Errorf("user save: %w", err)
	}
	return nil
}
