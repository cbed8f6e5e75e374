package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PreferenceStore persists small UI preferences (active tab, theme) so they
// survive restarts
type PreferenceStore struct {
	db *sql.DB
}

// NewPreferenceStore creates a new preference store from a base store
func NewPreferenceStore(store *Store) *PreferenceStore {
	if store == nil {
		return nil
	}
	return &PreferenceStore{db: store.DB()}
}

// Get returns the stored value for key, and whether it was present
func (ps *PreferenceStore) Get(ctx context.Context, key string) (string, bool, error) {
	if ps == nil || ps.db == nil {
		return "", false, fmt.Errorf("preference store not initialized")
	}
	var out string
	err := ps.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key=?`, key).Scan(&out)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return out, true, nil
}

// Set upserts the value for key
func (ps *PreferenceStore) Set(ctx context.Context, key, value string) error {
	if ps == nil || ps.db == nil {
		return fmt.Errorf("preference store not initialized")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("empty preference key")
	}
	_, err := ps.db.ExecContext(ctx, `INSERT INTO preferences(key, value, updated_at)
VALUES(?,?,?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;
`, key, value, time.Now().Unix())
	return err
}
