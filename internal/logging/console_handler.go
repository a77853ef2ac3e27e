package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// consoleHandler writes one human readable line per record:
//
//	2024-06-01T09:00:00Z WARN  [collection] entry persistence failed entries=3 error="disk full"
//
// On a terminal the timestamp is shortened to local wall-clock time and the
// level is coloured.
type consoleHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     slog.Level
	addSource bool
	color     bool

	component string
	// attrs holds WithAttrs output already rendered as " key=value" pairs.
	attrs     string
	group     string
}

func newConsoleHandler(w io.Writer, level slog.Level, addSource, color bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, writer: w, level: level, addSource: addSource, color: color}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var buf bytes.Buffer
	if h.color {
		buf.WriteString(ts.Local().Format(time.TimeOnly))
	} else {
		buf.WriteString(ts.UTC().Format(time.RFC3339))
	}
	buf.WriteByte(' ')
	buf.WriteString(h.levelLabel(record.Level))
	buf.WriteByte(' ')

	component := h.component
	var attrs strings.Builder
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == FieldComponent && h.group == "" && component == "" {
			component = attr.Value.String()
			return true
		}
		writeAttr(&attrs, h.group, attr)
		return true
	})

	if component != "" {
		buf.WriteByte('[')
		buf.WriteString(component)
		buf.WriteString("] ")
	}
	if msg := strings.TrimSpace(record.Message); msg != "" {
		buf.WriteString(msg)
	} else {
		buf.WriteString("(no message)")
	}
	if h.addSource && record.PC != 0 {
		if src := record.Source(); src != nil && src.File != "" {
			fmt.Fprintf(&buf, " (%s:%d)", filepath.Base(src.File), src.Line)
		}
	}
	buf.WriteString(h.attrs)
	buf.WriteString(attrs.String())
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	var rendered strings.Builder
	for _, attr := range attrs {
		if attr.Key == FieldComponent && h.group == "" {
			clone.component = attr.Value.String()
			continue
		}
		writeAttr(&rendered, h.group, attr)
	}
	clone.attrs += rendered.String()
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = joinKey(h.group, name)
	return &clone
}

func (h *consoleHandler) levelLabel(level slog.Level) string {
	var label string
	var color text.Color
	switch {
	case level >= slog.LevelError:
		label, color = "ERROR", text.FgRed
	case level >= slog.LevelWarn:
		label, color = "WARN", text.FgYellow
	case level >= slog.LevelInfo:
		label, color = "INFO", text.FgGreen
	default:
		label, color = "DEBUG", text.FgHiBlack
	}
	label = fmt.Sprintf("%-5s", label)
	if h.color {
		return color.Sprint(label)
	}
	return label
}

func writeAttr(sb *strings.Builder, group string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		next := group
		if attr.Key != "" {
			next = joinKey(group, attr.Key)
		}
		for _, member := range attr.Value.Group() {
			writeAttr(sb, next, member)
		}
		return
	}
	sb.WriteByte(' ')
	sb.WriteString(joinKey(group, attr.Key))
	sb.WriteByte('=')
	sb.WriteString(formatValue(attr.Value))
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		return strconv.Quote(s)
	}
	return s
}
