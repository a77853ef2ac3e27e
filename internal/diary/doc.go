// Package diary wires the entry collection to its storage for one CLI
// session.
//
// Open takes an exclusive flock on the data directory so two processes never
// write the same cache, loads the SQLite cache into a collection.Store, and
// fans every mutation out to SQLite and the optional CSV mirror. Callers must
// Close the diary to flush pending writes and release the lock.
package diary
