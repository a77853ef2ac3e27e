package collection_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"mediadiary/internal/collection"
	"mediadiary/internal/entry"
)

type recordingPersister struct {
	mu    sync.Mutex
	calls [][]entry.Entry
	err   error
}

func (p *recordingPersister) PersistAll(_ context.Context, entries []entry.Entry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, entries)
	return p.err
}

func (p *recordingPersister) last() []entry.Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.calls) == 0 {
		return nil
	}
	return p.calls[len(p.calls)-1]
}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestStore(t *testing.T, opts ...collection.Option) (*collection.Store, *recordingPersister) {
	t.Helper()
	persister := &recordingPersister{}
	clock := &fixedClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	seq := 0
	base := []collection.Option{
		collection.WithPersister(persister),
		collection.WithClock(clock.Now),
		collection.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%02d", seq)
		}),
	}
	store := collection.New(nil, append(base, opts...)...)
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})
	return store, persister
}

func TestCreateAssignsIdentityAndStatus(t *testing.T) {
	store, persister := newTestStore(t)

	created, err := store.Create(entry.Candidate{Title: "Dune", Type: "book", HypeRating: "9"}, entry.KindPending)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID != "id-01" || created.CreatedAt.IsZero() {
		t.Fatalf("identity not assigned: %#v", created)
	}
	if created.Status != entry.StatusPending || created.HypeRating != 9 {
		t.Fatalf("unexpected entry: %#v", created)
	}

	all := store.All()
	if len(all) != 1 || all[0].ID != created.ID || all[0].Title != "Dune" {
		t.Fatalf("All() = %#v", all)
	}

	if err := store.Flush(context.Background()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if got := persister.last(); len(got) != 1 || got[0].ID != created.ID {
		t.Fatalf("persisted snapshot = %#v", got)
	}
}

func TestCreateRejectsInvalidCandidate(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Create(entry.Candidate{Title: "", Type: "film"}, entry.KindActive)
	var verr *entry.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !slices.Contains(verr.Errors, entry.MsgTitleRequired) {
		t.Fatalf("errors = %v", verr.Errors)
	}
	if store.Len() != 0 {
		t.Fatalf("invalid candidate was appended")
	}
}

func TestCreateRejectsUpdateKind(t *testing.T) {
	store, _ := newTestStore(t)
	if _, err := store.Create(entry.Candidate{Title: "X", Type: "film"}, entry.KindUpdate); err == nil {
		t.Fatal("expected error for update kind")
	}
}

func TestPendingLifecycleScenario(t *testing.T) {
	store, _ := newTestStore(t)

	dune, err := store.Create(entry.Candidate{Title: "Dune", Type: "book", HypeRating: "9"}, entry.KindPending)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	started, err := store.Start(dune.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if started.Status != entry.StatusInProgress || started.StartDate.String() != "2024-06-01" {
		t.Fatalf("unexpected started entry: %#v", started)
	}

	finished, err := store.Finish(dune.ID, entry.Rating{})
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if finished.Status != entry.StatusCompleted || finished.FinishDate.String() != "2024-06-01" {
		t.Fatalf("unexpected finished entry: %#v", finished)
	}

	if _, err := store.Finish(dune.ID, entry.Rating{}); !errors.Is(err, entry.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	got, err := store.Get(dune.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != entry.StatusCompleted {
		t.Fatalf("rejected transition changed entry: %#v", got)
	}
}

func TestNoDatesEntryCompletesWithRating(t *testing.T) {
	store, _ := newTestStore(t)

	paper, err := store.Create(entry.Candidate{Title: "Paper X", Type: "paper"}, entry.KindActive)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if paper.Status != entry.StatusInProgressNoDates {
		t.Fatalf("status = %s", paper.Status)
	}

	updated, err := store.Update(paper.ID, collection.Patch{Rating: collection.String("7")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != entry.StatusCompletedNoDates {
		t.Fatalf("status = %s", updated.Status)
	}
	if err := entry.CheckInvariants(updated); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
}

func TestClearingRatingReopensNoDatesEntry(t *testing.T) {
	store, _ := newTestStore(t)

	e, err := store.Create(entry.Candidate{Title: "Paper Y", Type: "paper", Rating: "6", Intent: "unknown-dates"}, entry.KindActive)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if e.Status != entry.StatusCompletedNoDates {
		t.Fatalf("status = %s", e.Status)
	}

	cleared, err := store.Update(e.ID, collection.Patch{Rating: collection.String("")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if cleared.Status != entry.StatusInProgressNoDates || cleared.Rating.IsSet() {
		t.Fatalf("unexpected entry after clearing rating: %#v", cleared)
	}
	if err := entry.CheckInvariants(cleared); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
}

func TestActiveCreateDerivesStatus(t *testing.T) {
	store, _ := newTestStore(t)

	cases := []struct {
		c    entry.Candidate
		want entry.Status
	}{
		{entry.Candidate{Title: "A", Type: "film", StartDate: "2024-01-01"}, entry.StatusInProgress},
		{entry.Candidate{Title: "B", Type: "film", FinishDate: "2024-01-01"}, entry.StatusCompleted},
		{entry.Candidate{Title: "C", Type: "film", StartDate: "2024-01-01", FinishDate: "2024-01-05"}, entry.StatusCompleted},
		{entry.Candidate{Title: "D", Type: "film", Rating: "N/A", Intent: "unknown-dates"}, entry.StatusCompletedNoDates},
	}
	for _, tc := range cases {
		e, err := store.Create(tc.c, entry.KindActive)
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", tc.c.Title, err)
		}
		if e.Status != tc.want {
			t.Fatalf("Create(%s) status = %s, want %s", tc.c.Title, e.Status, tc.want)
		}
	}
}

func TestUpdatePendingStaysPendingWithoutDates(t *testing.T) {
	store, _ := newTestStore(t)
	e, err := store.Create(entry.Candidate{Title: "Outer Wilds", Type: "videogame"}, entry.KindPending)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	renamed, err := store.Update(e.ID, collection.Patch{Title: collection.String("Outer Wilds DLC"), Rating: collection.String("8")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if renamed.Status != entry.StatusPending || renamed.Rating.IsSet() {
		t.Fatalf("unexpected entry: %#v", renamed)
	}

	dated, err := store.Update(e.ID, collection.Patch{StartDate: collection.String("2024-05-01")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if dated.Status != entry.StatusInProgress {
		t.Fatalf("status = %s", dated.Status)
	}

	undated, err := store.Update(e.ID, collection.Patch{StartDate: collection.String("")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if undated.Status == entry.StatusPending {
		t.Fatal("entry returned to pending")
	}
}

func TestUpdateIsAllOrNothing(t *testing.T) {
	store, _ := newTestStore(t)
	e, err := store.Create(entry.Candidate{Title: "Severance", Type: "series", StartDate: "2024-02-01"}, entry.KindActive)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = store.Update(e.ID, collection.Patch{
		Title:      collection.String("Severance S2"),
		FinishDate: collection.String("2024-01-01"),
	})
	var verr *entry.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	got, _ := store.Get(e.ID)
	if got.Title != "Severance" || !got.FinishDate.IsZero() {
		t.Fatalf("failed update leaked changes: %#v", got)
	}
}

func TestUpdateMissingIDLeavesCollectionUnchanged(t *testing.T) {
	store, _ := newTestStore(t)
	if _, err := store.Create(entry.Candidate{Title: "Alien", Type: "film"}, entry.KindActive); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	before := store.All()

	_, err := store.Update("missing", collection.Patch{Title: collection.String("x")})
	if !errors.Is(err, collection.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	after := store.All()
	if len(before) != len(after) || before[0].Title != after[0].Title || before[0].Status != after[0].Status {
		t.Fatalf("collection changed: %#v -> %#v", before, after)
	}
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore(t)
	a, _ := store.Create(entry.Candidate{Title: "A", Type: "film"}, entry.KindActive)
	b, _ := store.Create(entry.Candidate{Title: "B", Type: "film"}, entry.KindActive)
	c, _ := store.Create(entry.Candidate{Title: "C", Type: "film"}, entry.KindActive)

	if err := store.Delete(b.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(b.ID); !errors.Is(err, collection.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	for _, id := range []string{a.ID, c.ID} {
		if _, err := store.Get(id); err != nil {
			t.Fatalf("Get(%s) after delete failed: %v", id, err)
		}
	}
	if store.Len() != 2 {
		t.Fatalf("Len = %d", store.Len())
	}
}

func TestAllIsNewestFirstDefensiveCopy(t *testing.T) {
	store, _ := newTestStore(t)
	for _, title := range []string{"first", "second", "third"} {
		if _, err := store.Create(entry.Candidate{Title: title, Type: "book", Tags: "x"}, entry.KindActive); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all := store.All()
	titles := []string{all[0].Title, all[1].Title, all[2].Title}
	if !slices.Equal(titles, []string{"third", "second", "first"}) {
		t.Fatalf("order = %v", titles)
	}

	all[0].Title = "mutated"
	all[0].Tags[0] = "mutated"
	again := store.All()
	if again[0].Title != "third" || again[0].Tags[0] != "x" {
		t.Fatal("All() exposed internal state")
	}
}

func TestResolvePrefix(t *testing.T) {
	store, _ := newTestStore(t)
	e, _ := store.Create(entry.Candidate{Title: "A", Type: "film"}, entry.KindActive)
	if _, err := store.Create(entry.Candidate{Title: "B", Type: "film"}, entry.KindActive); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Resolve("id-01")
	if err != nil || got.ID != e.ID {
		t.Fatalf("Resolve exact = %#v, %v", got, err)
	}
	if _, err := store.Resolve("id-0"); !errors.Is(err, collection.ErrAmbiguousID) {
		t.Fatalf("expected ErrAmbiguousID, got %v", err)
	}
	if _, err := store.Resolve("zzz"); !errors.Is(err, collection.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPersistenceFailureDoesNotRollBack(t *testing.T) {
	var (
		mu       sync.Mutex
		failures int
	)
	store, persister := newTestStore(t, collection.WithPersistFailureHandler(func(*collection.PersistenceError) {
		mu.Lock()
		failures++
		mu.Unlock()
	}))
	persister.err = errors.New("disk full")

	e, err := store.Create(entry.Candidate{Title: "Alien", Type: "film"}, entry.KindActive)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	flushErr := store.Flush(context.Background())
	var perr *collection.PersistenceError
	if !errors.As(flushErr, &perr) {
		t.Fatalf("expected PersistenceError, got %v", flushErr)
	}
	if entry.KindOf(flushErr) != "persistence" {
		t.Fatalf("KindOf = %q", entry.KindOf(flushErr))
	}
	if _, err := store.Get(e.ID); err != nil {
		t.Fatalf("entry rolled back: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if failures == 0 {
		t.Fatal("failure handler not invoked")
	}
}

func TestNewRepairsAndDeduplicates(t *testing.T) {
	initial := []entry.Entry{
		{ID: "a", Title: "A", Type: entry.TypeFilm, Status: "weird", FinishDate: entry.NewDate(2024, 1, 1)},
		{ID: "a", Title: "dup", Type: entry.TypeFilm, Status: entry.StatusPending},
		{ID: "", Title: "no id", Type: entry.TypeFilm, Status: entry.StatusPending},
	}
	store := collection.New(initial)
	if store.Len() != 1 {
		t.Fatalf("Len = %d", store.Len())
	}
	got, _ := store.Get("a")
	if got.Status != entry.StatusCompleted || got.Title != "A" {
		t.Fatalf("unexpected entry: %#v", got)
	}
}

func TestImportUpserts(t *testing.T) {
	store, _ := newTestStore(t)
	existing, _ := store.Create(entry.Candidate{Title: "Old", Type: "film"}, entry.KindActive)

	result := store.Import([]entry.Entry{
		{ID: existing.ID, Title: "Renamed", Type: entry.TypeFilm, Status: entry.StatusInProgressNoDates, CreatedAt: existing.CreatedAt},
		{Title: "New", Type: entry.TypeBook, Status: entry.StatusPending},
	})
	if result.Added != 1 || result.Updated != 1 {
		t.Fatalf("result = %#v", result)
	}
	got, _ := store.Get(existing.ID)
	if got.Title != "Renamed" {
		t.Fatalf("entry not updated: %#v", got)
	}
	if store.Len() != 2 {
		t.Fatalf("Len = %d", store.Len())
	}
}

func TestConcurrentReadersSeeWholeEntries(t *testing.T) {
	store, _ := newTestStore(t)
	e, _ := store.Create(entry.Candidate{Title: "Loop", Type: "videogame"}, entry.KindActive)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 50 {
			rating := fmt.Sprintf("%d", i%10+1)
			if _, err := store.Update(e.ID, collection.Patch{Rating: collection.String(rating)}); err != nil {
				t.Errorf("Update failed: %v", err)
				return
			}
		}
	}()
	for range 50 {
		for _, got := range store.All() {
			if err := entry.CheckInvariants(got); err != nil {
				t.Fatalf("observed inconsistent entry: %v", err)
			}
		}
	}
	wg.Wait()
}

func TestFanoutJoinsErrors(t *testing.T) {
	ok := &recordingPersister{}
	bad := &recordingPersister{err: errors.New("boom")}
	fan := collection.NewFanout().Add("cache", bad).Add("csv", ok).Add("nil", nil)
	if fan.Len() != 2 {
		t.Fatalf("Len = %d", fan.Len())
	}
	err := fan.PersistAll(context.Background(), []entry.Entry{{ID: "a"}})
	if err == nil || err.Error() != "cache: boom" {
		t.Fatalf("PersistAll = %v", err)
	}
	if ok.last() == nil {
		t.Fatal("healthy target skipped after failure")
	}
}

func TestMutationAfterCloseDoesNotBlockFlush(t *testing.T) {
	store, persister := newTestStore(t)
	if _, err := store.Create(entry.Candidate{Title: "Dune", Type: "book"}, entry.KindActive); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Close(context.Background()); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	persister.mu.Lock()
	writes := len(persister.calls)
	persister.mu.Unlock()

	if _, err := store.Create(entry.Candidate{Title: "Arrival", Type: "film"}, entry.KindActive); err != nil {
		t.Fatalf("Create after Close failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := store.Flush(ctx); err != nil {
		t.Fatalf("Flush after Close = %v", err)
	}
	persister.mu.Lock()
	defer persister.mu.Unlock()
	if len(persister.calls) != writes {
		t.Fatalf("writes after Close: got %d, want %d", len(persister.calls), writes)
	}
}
