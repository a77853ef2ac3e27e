package preflight

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"

	"mediadiary/internal/config"
	"mediadiary/internal/csvio"
	"mediadiary/internal/storage"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDatabase opens an existing database and runs its integrity check. A
// database that has not been created yet passes.
func CheckDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) Result {
	const name = "Database"

	path := cfg.Storage.DatabaseFile
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (not created yet)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}

	store, err := storage.Open(cfg, logger)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer store.Close()

	health, err := store.Health(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if !health.IntegrityOK {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: integrity check failed)", path)}
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%s (schema v%d, %s)", path, health.SchemaVersion, pluralEntries(health.Entries)),
	}
}

// CheckCSVMirror verifies the mirror file parses. A missing mirror passes;
// the next save creates it.
func CheckCSVMirror(path string) Result {
	const name = "CSV mirror"

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (not created yet)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	result, err := csvio.ReadFile(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	detail := fmt.Sprintf("%s (%s, %s)", path, pluralEntries(len(result.Entries)), humanize.Bytes(uint64(info.Size())))
	if len(result.Skipped) > 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %d unreadable rows, first at line %d)",
			path, len(result.Skipped), result.Skipped[0].Line)}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckSessionLock reports whether another session holds the diary lock.
func CheckSessionLock(path string) Result {
	const name = "Session lock"

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Result{Name: name, Passed: true, Detail: "free"}
	}
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if !locked {
		return Result{Name: name, Detail: fmt.Sprintf("%s (held by another session)", path)}
	}
	_ = lock.Unlock()
	return Result{Name: name, Passed: true, Detail: "free"}
}

func pluralEntries(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%s entries", humanize.Comma(int64(n)))
}
