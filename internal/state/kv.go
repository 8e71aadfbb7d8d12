package state

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/tunebrew/internal/db"
)

// Get returns the value stored under key.
func (m *Manager) Get(key string) (string, bool, error) {
	return getKV(m.db, key)
}

// Set stores value under key.
func (m *Manager) Set(key, value string) error {
	return setKV(m.db, key, value)
}

// UpdateKV replaces the value under key with fn(old) in one transaction.
// A missing key reads as the empty string.
func (m *Manager) UpdateKV(key string, fn func(old string) string) error {
	return dbutil.WithTx(context.Background(), m.db, func(tx *sql.Tx) error {
		var old string
		err := tx.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&old)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return setKV(tx, key, fn(old))
	})
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func getKV(db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func setKV(db execer, key, value string) error {
	_, err := db.Exec(`
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().Unix())
	return err
}
