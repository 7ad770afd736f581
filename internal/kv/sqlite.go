package kv

import (
	"context"
	"database/sql"

	"github.com/mattn/go-sqlite3"

	ierr "github.com/invoicepad/invoicepad/internal/errors"
)

// SQLiteStore persists key-value pairs in a single-table sqlite database.
// A configurable per-value quota emulates the capacity ceiling of the
// key-value stores this adapter fronts.
type SQLiteStore struct {
	db         *sql.DB
	quotaBytes int64
}

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// NewSQLiteStore opens (creating if needed) the sqlite file at path.
// quotaBytes caps the size of a single stored value; zero disables the cap.
func NewSQLiteStore(path string, quotaBytes int64) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unable to open storage").
			Mark(ierr.ErrStoreUnavailable)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, ierr.WithError(err).
			WithHint("Unable to initialize storage").
			Mark(ierr.ErrStoreUnavailable)
	}

	return &SQLiteStore{db: db, quotaBytes: quotaBytes}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, ierr.WithError(err).
			WithHint("Unable to read from storage").
			Mark(ierr.ErrStoreUnavailable)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value string) error {
	if s.quotaBytes > 0 && int64(len(value)) > s.quotaBytes {
		return ierr.NewError("value exceeds storage quota").
			WithHint("storage full, delete some records").
			Mark(ierr.ErrQuotaExceeded)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		if isSQLiteFull(err) {
			return ierr.WithError(err).
				WithHint("storage full, delete some records").
				Mark(ierr.ErrQuotaExceeded)
		}
		return ierr.WithError(err).
			WithHint("Unable to write to storage").
			Mark(ierr.ErrStoreWrite)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return ierr.WithError(err).
			WithHint("Unable to delete from storage").
			Mark(ierr.ErrStoreWrite)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// isSQLiteFull folds the backend's capacity signals into one condition.
func isSQLiteFull(err error) bool {
	var se sqlite3.Error
	if !ierr.As(err, &se) {
		return false
	}
	return se.Code == sqlite3.ErrFull || se.Code == sqlite3.ErrTooBig
}
