package testsupport

import (
	"fmt"
	"testing"
	"time"

	"mediadiary/internal/config"
	"mediadiary/internal/entry"
	"mediadiary/internal/logging"
	"mediadiary/internal/storage"
)

// MustOpenStorage opens a storage.Store for tests and registers cleanup.
func MustOpenStorage(t testing.TB, cfg *config.Config) *storage.Store {
	t.Helper()

	store, err := storage.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Clock returns a time source that starts at base and advances by one second
// on every call.
func Clock(base time.Time) func() time.Time {
	current := base.Add(-time.Second)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

// NewEntry builds a completed book entry with the given id and title.
func NewEntry(id, title string, createdAt time.Time) entry.Entry {
	return entry.Entry{
		ID:         id,
		Title:      title,
		Type:       entry.TypeBook,
		StartDate:  entry.NewDate(2024, time.January, 1),
		FinishDate: entry.NewDate(2024, time.January, 10),
		Rating:     entry.MustRating(8),
		CreatedAt:  createdAt.UTC(),
		Status:     entry.StatusCompleted,
	}
}

// NewEntries builds one NewEntry per title, created a second apart starting
// at base.
func NewEntries(base time.Time, titles ...string) []entry.Entry {
	entries := make([]entry.Entry, 0, len(titles))
	for i, title := range titles {
		entries = append(entries, NewEntry(fmt.Sprintf("entry-%d", i+1), title, base.Add(time.Duration(i)*time.Second)))
	}
	return entries
}
