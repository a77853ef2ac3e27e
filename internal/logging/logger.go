package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mediadiary/internal/config"
)

// Options describes logger construction parameters.
//
// Console output goes to Stderr (os.Stderr when nil) at Level. When FilePath
// is set, records are also appended to that file at FileLevel, which defaults
// to the lower of Level and info so diary events always reach the file.
type Options struct {
	Level     string
	Format    string
	Stderr    io.Writer
	FilePath  string
	FileLevel string
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}
	if format != "console" && format != "json" {
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	level := parseLevel(opts.Level)
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	handlers := []slog.Handler{newHandler(format, stderr, level, true)}

	if path := strings.TrimSpace(opts.FilePath); path != "" {
		file, err := openLogFile(path)
		if err != nil {
			return nil, err
		}
		fileLevel := min(level, slog.LevelInfo)
		if strings.TrimSpace(opts.FileLevel) != "" {
			fileLevel = parseLevel(opts.FileLevel)
		}
		handlers = append(handlers, newHandler(format, file, fileLevel, false))
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), nil
	}
	return slog.New(fanoutHandler(handlers)), nil
}

// NewFromConfig creates a logger using application config defaults. Logs go
// to stderr so command output on stdout stays machine readable.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{})
	}
	opts := Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}
	if cfg.Logging.File && cfg.Paths.LogDir != "" {
		opts.FilePath = cfg.LogFile()
	}
	return New(opts)
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func newHandler(format string, w io.Writer, level slog.Level, terminal bool) slog.Handler {
	addSource := level <= slog.LevelDebug
	if format == "json" {
		return newJSONHandler(w, level, addSource)
	}
	return newConsoleHandler(w, level, addSource, terminal && isTerminal(w))
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}

func newJSONHandler(w io.Writer, level slog.Level, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return attr
			}
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &opts)
}

// fanoutHandler passes each record to every handler that accepts its level.
type fanoutHandler []slog.Handler

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, record.Level) {
			errs = append(errs, h.Handle(ctx, record.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
