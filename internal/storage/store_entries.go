package storage

import (
	"context"
	"fmt"

	"mediadiary/internal/entry"
	"mediadiary/internal/logging"
)

// LoadAll returns every cached entry, newest first. Rows that cannot be
// decoded are skipped and logged rather than failing the load.
func (s *Store) LoadAll(ctx context.Context) ([]entry.Entry, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT "+entryColumns+" FROM entries ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []entry.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			logging.WarnWithContext(s.logger, "skipping unreadable entry row", "entry_row_skipped",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "export to CSV and fix the row by hand"),
				logging.String(logging.FieldImpact, "the entry is hidden until repaired"),
			)
			continue
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// PersistAll replaces the cached collection with entries in one transaction.
func (s *Store) PersistAll(ctx context.Context, entries []entry.Entry) error {
	ctx = ensureContext(ctx)
	return s.retryOnBusy(ctx, func() error {
		return s.replaceAll(ctx, entries)
	})
}

func (s *Store) replaceAll(ctx context.Context, entries []entry.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin persist tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO entries ("+entryColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		args, err := entryArgs(e)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert entry %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit entries: %w", err)
	}
	return nil
}

// Count returns the number of cached entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// Health describes the cache for status reporting.
type Health struct {
	Path          string
	SchemaVersion int
	Entries       int
	IntegrityOK   bool
}

// Health runs a quick integrity check and reports row counts.
func (s *Store) Health(ctx context.Context) (Health, error) {
	ctx = ensureContext(ctx)
	h := Health{Path: s.path}
	version, err := s.userVersion(ctx)
	if err != nil {
		return h, err
	}
	h.SchemaVersion = version
	count, err := s.Count(ctx)
	if err != nil {
		return h, err
	}
	h.Entries = count
	var result string
	if err := s.db.QueryRowContext(ctx, "PRAGMA quick_check").Scan(&result); err != nil {
		return h, fmt.Errorf("integrity check: %w", err)
	}
	h.IntegrityOK = result == "ok"
	return h, nil
}
