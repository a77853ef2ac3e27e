package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"mediadiary/internal/entry"
)

func statusColors(status entry.Status) text.Colors {
	switch status {
	case entry.StatusPending:
		return text.Colors{text.FgYellow}
	case entry.StatusInProgress, entry.StatusInProgressNoDates:
		return text.Colors{text.FgBlue}
	case entry.StatusCompleted, entry.StatusCompletedNoDates:
		return text.Colors{text.FgGreen}
	default:
		return nil
	}
}

func renderStatus(status entry.Status, colorize bool) string {
	label := status.Label()
	if !colorize {
		return label
	}
	if colors := statusColors(status); len(colors) > 0 {
		return colors.Sprint(label)
	}
	return label
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusError
)

const (
	statusLabelWidth = 16
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		return statusKindColors(kind).Sprint(base)
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColors(kind statusKind) text.Colors {
	switch kind {
	case statusOK:
		return text.Colors{text.FgGreen}
	case statusError:
		return text.Colors{text.FgRed}
	default:
		return text.Colors{text.FgBlue}
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
