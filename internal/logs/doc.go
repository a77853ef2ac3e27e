// Package logs reads the mediadiary log file for the `mediadiary logs`
// command.
//
// Last returns the final N lines with bounded memory, ReadFrom resumes at a
// byte offset, and Follow polls for appended lines until its context is
// cancelled. A file that shrinks below the saved offset is treated as
// truncated and read again from the start.
package logs
