// Package storage keeps the local cache of diary entries in SQLite.
//
// Store implements the collection package's Loader and Persister: LoadAll
// reads every entry at startup and PersistAll replaces the table with a full
// snapshot inside one transaction. Busy errors are retried with backoff so a
// second process reading the database never fails a write outright.
//
// Schema changes bump the version in schema.go; an older database must be
// exported to CSV and re-imported to adopt the new schema.
package storage
