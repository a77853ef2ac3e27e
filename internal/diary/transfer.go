package diary

import (
	"context"
	"fmt"

	"mediadiary/internal/csvio"
	"mediadiary/internal/fileutil"
	"mediadiary/internal/logging"
)

// ExportResult describes a completed export.
type ExportResult struct {
	Path       string
	BackupPath string
	Entries    int
}

// Export writes the collection to path as CSV. An existing file is copied to
// path.bak first when backups are enabled.
func (d *Diary) Export(ctx context.Context, path string) (ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return ExportResult{}, err
	}
	result := ExportResult{Path: path}
	if d.cfg.Storage.BackupOnExport {
		backup, err := fileutil.Backup(path)
		if err != nil {
			return result, err
		}
		result.BackupPath = backup
	}

	entries := d.store.All()
	if err := csvio.WriteFile(path, entries); err != nil {
		return result, fmt.Errorf("export %s: %w", path, err)
	}
	result.Entries = len(entries)
	d.logger.Info("entries exported",
		logging.Path(path),
		logging.Int("entries", result.Entries),
		logging.String(logging.FieldEventType, "export_completed"),
	)
	return result, nil
}

// ImportResult describes a completed import.
type ImportResult struct {
	Added   int
	Updated int
	Skipped []csvio.RowError
}

// Import upserts entries from a CSV file. Rows that fail validation are
// skipped and reported; a structurally invalid file imports nothing.
func (d *Diary) Import(ctx context.Context, path string) (ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return ImportResult{}, err
	}
	decoded, err := csvio.ReadFile(path)
	if err != nil {
		return ImportResult{}, err
	}
	for _, rowErr := range decoded.Skipped {
		logging.WarnWithContext(d.logger, "skipping invalid csv row", "import_row_skipped",
			logging.Path(path),
			logging.Int("line", rowErr.Line),
			logging.Error(rowErr.Err),
			logging.String(logging.FieldErrorHint, "fix the row and import again"),
			logging.String(logging.FieldImpact, "row not imported"),
		)
	}

	applied := d.store.Import(decoded.Entries)
	d.logger.Info("entries imported",
		logging.Path(path),
		logging.Int("added", applied.Added),
		logging.Int("updated", applied.Updated),
		logging.Int("skipped", len(decoded.Skipped)),
		logging.String(logging.FieldEventType, "import_completed"),
	)
	return ImportResult{Added: applied.Added, Updated: applied.Updated, Skipped: decoded.Skipped}, nil
}
