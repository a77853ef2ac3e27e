// Package collection owns the authoritative in-memory set of diary entries for
// a session.
//
// Store serialises every mutation behind a single lock so readers never see a
// partially applied create, update, or delete. After each successful mutation
// the full collection is handed to a Persister on a background goroutine;
// writes coalesce so only the newest snapshot is written when several
// mutations land while a write is in flight. Persistence failures never roll
// back the in-memory state. They are logged and returned from Flush as a
// *PersistenceError.
package collection
