package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// StateKey is the fixed key the serialized application state lives under.
// It matches the storage key of earlier releases so existing data hydrates.
const StateKey = "glassy_v3_data"

// StateRepo reads and writes the single serialized application-state blob.
// Load treats a missing key as absent, not as an error.
type StateRepo interface {
	Load(ctx context.Context) (raw []byte, ok bool, err error)
	Save(ctx context.Context, raw []byte) error
	Delete(ctx context.Context) error
}

// stateRepo implements StateRepo on the app_state table.
type stateRepo struct {
	db *sql.DB
}

func (r *stateRepo) Load(ctx context.Context) ([]byte, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM app_state WHERE key = ?", StateKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load state: %w", err)
	}
	return []byte(value), true, nil
}

func (r *stateRepo) Save(ctx context.Context, raw []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		StateKey, string(raw), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Delete removes the persisted blob. The next launch starts fresh.
func (r *stateRepo) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM app_state WHERE key = ?", StateKey,
	); err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}
