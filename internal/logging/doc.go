// Package logging builds the slog loggers mediadiary components share.
//
// Console output on stderr follows logging.level (warn by default) so
// command output stays readable, while the optional log file records info
// and above for `mediadiary logs`. Components tag lines through
// NewComponentLogger and the Field* keys; warnings that need user action go
// through WarnWithContext.
package logging
