package csvio

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mediadiary/internal/entry"
	"mediadiary/internal/logging"
)

func TestMirrorPersistAllWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "entries.csv")
	mirror := NewMirror(path, logging.NewNop())

	entries := []entry.Entry{{
		ID:        "m1",
		Title:     "Severance",
		Type:      entry.TypeSeries,
		StartDate: entry.NewDate(2024, time.April, 1),
		CreatedAt: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		Status:    entry.StatusInProgress,
	}}
	if err := mirror.PersistAll(context.Background(), entries); err != nil {
		t.Fatalf("PersistAll failed: %v", err)
	}

	result, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(result.Entries) != 1 || result.Entries[0].Title != "Severance" {
		t.Fatalf("unexpected mirror content: %#v", result.Entries)
	}

	if err := mirror.PersistAll(context.Background(), nil); err != nil {
		t.Fatalf("PersistAll failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read mirror: %v", err)
	}
	if got := string(data); got != "id,title,type,author,startdate,finishdate,rating,notes,coverurl,metadata,createdat,status,tags,hyperating\n" {
		t.Fatalf("expected header only, got %q", got)
	}
}

func TestMirrorPersistAllHonoursCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.csv")
	mirror := NewMirror(path, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := mirror.PersistAll(ctx, nil); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file, stat err = %v", err)
	}
}
