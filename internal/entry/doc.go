// Package entry defines the media diary entry model and the rules that govern
// it.
//
// An Entry tracks one book, film, series, video game, or paper through its
// lifecycle. Status is a closed enum and is the single source of truth for
// which optional fields are meaningful: ratings only count once an entry is
// completed, hype ratings only while it is pending, and pending entries never
// carry dates.
//
// Validate checks a Candidate against the rules for a target kind and reports
// every violation at once. DeriveStatus, Start, and Finish implement the status
// state machine; callers in the collection package use them so every mutation
// leaves the entry in a consistent state.
package entry
