package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"mediadiary/internal/config"
	"mediadiary/internal/logging"
)

// Store is the SQLite cache holding the last persisted snapshot of the
// collection.
type Store struct {
	db      *sql.DB
	path    string
	retries int
	logger  *slog.Logger
}

const (
	busyTimeout    = 5 * time.Second
	initialBackoff = 10 * time.Millisecond
	maxBackoff     = 200 * time.Millisecond
)

// connPragmas run on every new pooled connection.
var connPragmas = []string{
	fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()),
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
	"foreign_keys(1)",
}

func dsn(path string) string {
	q := url.Values{}
	for _, p := range connPragmas {
		q.Add("_pragma", p)
	}
	// Write transactions take the lock up front instead of upgrading mid-way.
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	default:
		return false
	}
}

// retryOnBusy runs op up to s.retries times while it fails with a busy or
// locked error, doubling the wait between attempts.
func (s *Store) retryOnBusy(ctx context.Context, op func() error) error {
	delay := initialBackoff
	var err error
	for attempt := 1; ; attempt++ {
		if err = op(); err == nil || !isSQLiteBusy(err) || attempt >= s.retries {
			return err
		}
		s.logger.Debug("database busy, retrying",
			logging.Int("attempt", attempt),
			logging.Duration("delay", delay),
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay = min(delay*2, maxBackoff)
	}
}

// Open initializes or connects to the entry database.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	path := cfg.Storage.DatabaseFile
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite db %s: %w", path, err)
	}

	store := &Store{
		db:      db,
		path:    path,
		retries: max(cfg.Storage.BusyRetries, 1),
		logger:  logging.NewComponentLogger(logger, "storage"),
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
