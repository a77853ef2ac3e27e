package testsupport

import (
	"path/filepath"
	"testing"

	"mediadiary/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a unique temp directory per test.
// Path fields are already absolute so the result can be used without Load.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Storage.DatabaseFile = filepath.Join(cfgVal.Paths.DataDir, "diary.db")
	cfgVal.Storage.CSVFile = filepath.Join(cfgVal.Paths.DataDir, "entries.csv")
	cfgVal.Storage.BusyRetries = 3

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithoutCSVMirror disables the CSV mirror on the test config.
func WithoutCSVMirror() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.MirrorCSV = false
	}
}

// WithoutExportBackup disables .bak copies before export overwrites.
func WithoutExportBackup() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.BackupOnExport = false
	}
}

// WithFileLogging enables the log file under the temp log directory.
func WithFileLogging() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.File = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
