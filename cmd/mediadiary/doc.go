// Package main hosts the mediadiary CLI entrypoint and command graph.
//
// The Cobra command tree translates terminal invocations into diary
// operations: adding and editing entries, lifecycle transitions, filtered
// listings, statistics, CSV import and export, and configuration scaffolding.
// Configuration resolution, logger construction, and the diary session lock
// are centralized in commandContext so subcommands only describe their flags
// and output.
package main
