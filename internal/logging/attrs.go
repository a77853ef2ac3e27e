package logging

import (
	"context"
	"log/slog"
	"time"
)

// Attribute keys shared by every component.
const (
	FieldComponent = "component"
	FieldSessionID = "session_id"
	FieldEntryID   = "entry_id"
	FieldTitle     = "title"
	FieldStatus    = "status"
	FieldPath      = "path"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldImpact    = "impact"
)

const (
	defaultErrorHint = "run `mediadiary doctor` to check the data directory"
	defaultImpact    = "the diary keeps working from memory"
)

type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

// Error records err under the "error" key. A nil error is rendered as <nil>.
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Entry tags a line with the entry it concerns.
func Entry(id, title string) []Attr {
	return []Attr{String(FieldEntryID, id), String(FieldTitle, title)}
}

// Path tags a line with the file it concerns.
func Path(path string) Attr { return String(FieldPath, path) }

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// WarnWithContext logs a warning that always carries event_type, error_hint
// and impact. Missing fields get defaults; attrs that already carry them win.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	attrs = withDefault(attrs, FieldEventType, eventType)
	attrs = withDefault(attrs, FieldErrorHint, defaultErrorHint)
	attrs = withDefault(attrs, FieldImpact, defaultImpact)
	logger.LogAttrs(context.Background(), slog.LevelWarn, msg, attrs...)
}

func withDefault(attrs []Attr, key, value string) []Attr {
	for _, a := range attrs {
		if a.Key == key {
			return attrs
		}
	}
	return append(attrs, String(key, value))
}
