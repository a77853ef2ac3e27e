// Package preflight provides readiness checks for the paths and files
// mediadiary depends on.
//
// The CLI "mediadiary doctor" command runs RunAll and prints one line per
// check. Checks never modify the collection: the database is only opened
// when it already exists, and the session lock is released immediately
// after probing it.
//
// Each check is gated by its config toggle -- disabled features are skipped.
package preflight
