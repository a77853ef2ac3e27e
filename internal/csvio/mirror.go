package csvio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"mediadiary/internal/entry"
	"mediadiary/internal/fileutil"
	"mediadiary/internal/logging"
)

// WriteFile atomically replaces path with the CSV form of entries.
func WriteFile(path string, entries []entry.Entry) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Encode(w, entries)
	})
}

// ReadFile decodes the CSV file at path.
func ReadFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Mirror keeps a CSV copy of the collection in sync with every mutation.
type Mirror struct {
	path   string
	logger *slog.Logger
}

// NewMirror returns a persister that rewrites path on every call.
func NewMirror(path string, logger *slog.Logger) *Mirror {
	return &Mirror{path: path, logger: logging.NewComponentLogger(logger, "csv-mirror")}
}

// Path returns the mirrored file location.
func (m *Mirror) Path() string {
	return m.path
}

// PersistAll writes the full collection.
func (m *Mirror) PersistAll(ctx context.Context, entries []entry.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := WriteFile(m.path, entries); err != nil {
		return err
	}
	m.logger.Debug("csv mirror written",
		logging.Path(m.path),
		logging.Int("entries", len(entries)),
	)
	return nil
}
