package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/AndrejKiraly/RoutineGamification/internal/engine"
)

// Store implements engine.Storage over the sqlite snapshot tables. It is
// bound to one username: this is a single-user tool.
type Store struct {
	db       *sql.DB
	username string
	users    *UserRepo
	sessions *SessionRepo
}

func NewStore(db *sql.DB, username string) *Store {
	return &Store{
		db:       db,
		username: username,
		users:    NewUserRepo(db),
		sessions: NewSessionRepo(db),
	}
}

func (s *Store) UserRepo() *UserRepo       { return s.users }
func (s *Store) SessionRepo() *SessionRepo { return s.sessions }

func (s *Store) LoadUserSnapshot(ctx context.Context) (*engine.UserSnapshot, error) {
	return s.users.Load(ctx, s.username)
}

func (s *Store) SaveUserSnapshot(ctx context.Context, snap *engine.UserSnapshot) error {
	return s.users.Save(ctx, snap)
}

func (s *Store) LoadSessionSnapshot(ctx context.Context, routineID, date string) (*engine.SessionSnapshot, error) {
	return s.sessions.Load(ctx, routineID, date)
}

func (s *Store) SaveSessionSnapshot(ctx context.Context, snap *engine.SessionSnapshot) error {
	return s.sessions.Save(ctx, snap)
}

// SaveAll writes the user and any sessions in a single transaction, for the
// end-of-operation autosave.
func (s *Store) SaveAll(ctx context.Context, user *engine.UserSnapshot, sessions []*engine.SessionSnapshot) error {
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if user != nil {
			if err := s.users.saveTx(ctx, tx, user); err != nil {
				return err
			}
		}
		for _, snap := range sessions {
			raw, err := json.Marshal(snap)
			if err != nil {
				return fmt.Errorf("session encode: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO session_snapshots (routine_id, date, snapshot, updated_at)
				VALUES (?, ?, ?, CURRENT_TIMESTAMP)
				ON CONFLICT(routine_id, date) DO UPDATE SET snapshot = excluded.snapshot, updated_at = CURRENT_TIMESTAMP
			`, snap.RoutineID, snap.Date, string(raw)); err != nil {
				return fmt.Errorf("session save: %w", err)
			}
		}
		return nil
	})
}
