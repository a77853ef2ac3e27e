package preflight

import (
	"context"
	"log/slog"

	"mediadiary/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config, logger *slog.Logger) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Data directory (always checked)
	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))

	// Log directory (only when logging to a file)
	if cfg.Logging.File {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	results = append(results, CheckDatabase(ctx, cfg, logger))

	if cfg.Storage.MirrorCSV {
		results = append(results, CheckCSVMirror(cfg.Storage.CSVFile))
	}

	results = append(results, CheckSessionLock(cfg.LockPath()))

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
