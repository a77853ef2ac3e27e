package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"mediadiary/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Storage contains configuration for the local cache and the CSV mirror.
type Storage struct {
	DatabaseFile   string `toml:"database_file"`
	CSVFile        string `toml:"csv_file"`
	MirrorCSV      bool   `toml:"mirror_csv"`
	BackupOnExport bool   `toml:"backup_on_export"`
	BusyRetries    int    `toml:"busy_retries"`
}

// View contains the default view state used by the list command.
type View struct {
	DefaultView  string `toml:"default_view"`
	OverviewSort string `toml:"overview_sort"`
	PendingSort  string `toml:"pending_sort"`
}

// Covers contains configuration for generated placeholder covers.
type Covers struct {
	PlaceholderBaseURL string `toml:"placeholder_base_url"`
	Width              int    `toml:"width"`
	Height             int    `toml:"height"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   bool   `toml:"file"`
}

// Config encapsulates all configuration values for mediadiary.
//
// Configuration sections:
//   - Paths: data and log directories
//   - Storage: SQLite cache, CSV mirror, and export backups
//   - View: default view kind and sort keys
//   - Covers: placeholder cover service and dimensions
//   - Logging: log format, level, and file output
type Config struct {
	Paths   Paths   `toml:"paths"`
	Storage Storage `toml:"storage"`
	View    View    `toml:"view"`
	Covers  Covers  `toml:"covers"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Source records where a loaded configuration came from.
type Source struct {
	Path   string
	Exists bool
}

// Load parses and validates the configuration at path, or at the first file
// found in the search order when path is empty: the user config file, then
// ./mediadiary.toml. A missing file yields defaults.
func Load(path string) (*Config, Source, error) {
	cfg := Default()

	src, err := locate(path)
	if err != nil {
		return nil, Source{}, err
	}
	if src.Exists {
		if err := decodeFile(src.Path, &cfg); err != nil {
			return nil, src, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, src, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, src, err
	}
	return &cfg, src, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("parse config %s: %s", path, strings.TrimSpace(strict.String()))
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func locate(path string) (Source, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return Source{}, err
		}
		exists, err := isFile(expanded)
		return Source{Path: expanded, Exists: exists}, err
	}

	userPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return Source{}, err
	}
	projectPath, err := filepath.Abs("mediadiary.toml")
	if err != nil {
		return Source{}, err
	}
	for _, candidate := range []string{userPath, projectPath} {
		exists, err := isFile(candidate)
		if err != nil {
			return Source{}, err
		}
		if exists {
			return Source{Path: candidate, Exists: true}, nil
		}
	}
	return Source{Path: userPath}, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat config: %w", err)
	case info.IsDir():
		return false, fmt.Errorf("config path %s is a directory", path)
	default:
		return true, nil
	}
}

// EnsureDirectories creates the data directory and, when file logging is
// enabled, the log directory.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir, filepath.Dir(c.Storage.DatabaseFile), filepath.Dir(c.Storage.CSVFile)}
	if c.Logging.File {
		dirs = append(dirs, c.Paths.LogDir)
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath returns the session lock file inside the data directory.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "mediadiary.lock")
}

// LogFile returns the log file path used when file logging is enabled.
func (c *Config) LogFile() string {
	return filepath.Join(c.Paths.LogDir, "mediadiary.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// ErrConfigExists is returned by CreateSample when the target exists and
// overwrite was not requested.
var ErrConfigExists = errors.New("config file already exists")

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string, overwrite bool) error {
	if !overwrite {
		exists, err := isFile(path)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w at %s (use --overwrite to replace it)", ErrConfigExists, path)
		}
	}
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode writes the effective configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}
