package collection

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mediadiary/internal/entry"
	"mediadiary/internal/logging"
)

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the time source used for createdAt and lifecycle dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides entry id assignment.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithPersister mirrors every mutation to p asynchronously.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persister = p
	}
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logging.NewComponentLogger(logger, "collection")
	}
}

// Store is the authoritative in-memory entry collection.
type Store struct {
	mu      sync.RWMutex
	entries []entry.Entry
	index   map[string]int

	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
	persister Persister
	onFailure func(*PersistenceError)
	writer    *writer
}

// New builds a store seeded with initial entries. Entries are repaired into a
// consistent status; later duplicates of an id are dropped.
func New(initial []entry.Entry, opts ...Option) *Store {
	s := &Store{
		index:  make(map[string]int, len(initial)),
		now:    time.Now,
		newID:  uuid.NewString,
		logger: logging.NewComponentLogger(nil, "collection"),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, e := range initial {
		if _, dup := s.index[e.ID]; dup || e.ID == "" {
			s.logger.Warn("dropping entry with duplicate or empty id",
				logging.String(logging.FieldEntryID, e.ID),
				logging.String(logging.FieldEventType, "entry_dropped"),
			)
			continue
		}
		s.index[e.ID] = len(s.entries)
		s.entries = append(s.entries, entry.Repair(e.Clone()))
	}
	if s.persister != nil {
		s.writer = newWriter(s.persister, s.logger, s.onFailure)
	}
	return s
}

func (s *Store) today() entry.Date {
	return entry.DateOf(s.now())
}

// Create validates the candidate and appends a new entry. kind must be
// entry.KindActive or entry.KindPending.
func (s *Store) Create(c entry.Candidate, kind entry.Kind) (entry.Entry, error) {
	if kind != entry.KindActive && kind != entry.KindPending {
		return entry.Entry{}, fmt.Errorf("create: unsupported kind %s", kind)
	}
	v := entry.Validate(c, kind)
	if !v.Valid() {
		return entry.Entry{}, v.Err()
	}

	f := v.Fields
	e := entry.Entry{
		Title:      f.Title,
		Type:       f.Type,
		Author:     f.Author,
		StartDate:  f.StartDate,
		FinishDate: f.FinishDate,
		Rating:     f.Rating,
		HypeRating: f.HypeRating,
		Notes:      f.Notes,
		Tags:       f.Tags,
		CoverURL:   f.CoverURL,
		Metadata:   f.Metadata,
		Status:     entry.InitialStatus(kind, f),
	}
	e = entry.Normalize(e)

	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.uniqueIDLocked()
	e.CreatedAt = s.now().UTC()
	s.index[e.ID] = len(s.entries)
	s.entries = append(s.entries, e)
	s.scheduleLocked()
	return e.Clone(), nil
}

func (s *Store) uniqueIDLocked() string {
	for {
		id := s.newID()
		if _, taken := s.index[id]; !taken && id != "" {
			return id
		}
	}
}

// Update merges patch into the entry and re-derives its status. The stored
// entry is replaced only when the merged result validates.
func (s *Store) Update(id string, patch Patch) (entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[id]
	if !ok {
		return entry.Entry{}, &NotFoundError{ID: id}
	}
	current := s.entries[idx]

	candidate := entry.CandidateFrom(current)
	patch.applyTo(&candidate)
	v := entry.Validate(candidate, entry.KindUpdate)
	if !v.Valid() {
		return entry.Entry{}, v.Err()
	}

	f := v.Fields
	next := entry.Entry{
		ID:         current.ID,
		CreatedAt:  current.CreatedAt,
		Title:      f.Title,
		Type:       f.Type,
		Author:     f.Author,
		StartDate:  f.StartDate,
		FinishDate: f.FinishDate,
		Rating:     f.Rating,
		HypeRating: f.HypeRating,
		Notes:      f.Notes,
		Tags:       f.Tags,
		CoverURL:   f.CoverURL,
		Metadata:   f.Metadata,
	}
	next.Status = entry.Reconcile(current.Status, next)
	next = entry.Normalize(next)

	s.entries[idx] = next
	s.scheduleLocked()
	return next.Clone(), nil
}

// Start moves a pending entry to in-progress with today's start date.
func (s *Store) Start(id string) (entry.Entry, error) {
	return s.transition(id, func(e entry.Entry) (entry.Entry, error) {
		return entry.Start(e, s.today())
	})
}

// Finish completes an in-progress entry, optionally recording a rating.
func (s *Store) Finish(id string, rating entry.Rating) (entry.Entry, error) {
	return s.transition(id, func(e entry.Entry) (entry.Entry, error) {
		return entry.Finish(e, s.today(), rating)
	})
}

func (s *Store) transition(id string, apply func(entry.Entry) (entry.Entry, error)) (entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[id]
	if !ok {
		return entry.Entry{}, &NotFoundError{ID: id}
	}
	next, err := apply(s.entries[idx])
	if err != nil {
		return entry.Entry{}, err
	}
	s.entries[idx] = next
	s.scheduleLocked()
	return next.Clone(), nil
}

// Delete removes an entry.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	s.entries = slices.Delete(s.entries, idx, idx+1)
	delete(s.index, id)
	for i := idx; i < len(s.entries); i++ {
		s.index[s.entries[i].ID] = i
	}
	s.scheduleLocked()
	return nil
}

// Get returns a copy of the entry with id.
func (s *Store) Get(id string) (entry.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.index[id]
	if !ok {
		return entry.Entry{}, &NotFoundError{ID: id}
	}
	return s.entries[idx].Clone(), nil
}

// Resolve finds an entry by exact id or unique id prefix.
func (s *Store) Resolve(ref string) (entry.Entry, error) {
	ref = strings.TrimSpace(ref)
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx, ok := s.index[ref]; ok {
		return s.entries[idx].Clone(), nil
	}
	if ref == "" {
		return entry.Entry{}, &NotFoundError{ID: ref}
	}
	match := -1
	for i, e := range s.entries {
		if !strings.HasPrefix(e.ID, ref) {
			continue
		}
		if match >= 0 {
			return entry.Entry{}, fmt.Errorf("%w: %q", ErrAmbiguousID, ref)
		}
		match = i
	}
	if match < 0 {
		return entry.Entry{}, &NotFoundError{ID: ref}
	}
	return s.entries[match].Clone(), nil
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// All returns a deep copy of the collection ordered by createdAt, newest
// first. Entries created at the same instant keep insertion order.
func (s *Store) All() []entry.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []entry.Entry {
	out := make([]entry.Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	slices.SortStableFunc(out, func(a, b entry.Entry) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return out
}

// ImportResult summarises an Import call.
type ImportResult struct {
	Added   int
	Updated int
}

// Import upserts entries by id. Entries without an id get a fresh one and
// entries without createdAt get the current time. Statuses are repaired.
func (s *Store) Import(entries []entry.Entry) ImportResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result ImportResult
	for _, e := range entries {
		e = entry.Repair(e.Clone())
		if e.ID == "" {
			e.ID = s.uniqueIDLocked()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = s.now().UTC()
		}
		if idx, ok := s.index[e.ID]; ok {
			s.entries[idx] = e
			result.Updated++
			continue
		}
		s.index[e.ID] = len(s.entries)
		s.entries = append(s.entries, e)
		result.Added++
	}
	if result.Added+result.Updated > 0 {
		s.scheduleLocked()
	}
	return result
}

// scheduleLocked hands the current snapshot to the background writer. The
// caller must hold s.mu.
func (s *Store) scheduleLocked() {
	if s.writer == nil {
		return
	}
	s.writer.submit(s.snapshotLocked())
}

// Flush waits until every mutation made before the call has been written and
// returns the outcome of the latest write as a *PersistenceError.
func (s *Store) Flush(ctx context.Context) error {
	if s.writer == nil {
		return nil
	}
	return s.writer.flush(ctx)
}

// Close flushes pending writes and stops the background writer. Mutations
// after Close are kept in memory only.
func (s *Store) Close(ctx context.Context) error {
	if s.writer == nil {
		return nil
	}
	err := s.writer.flush(ctx)
	s.writer.stop()
	return err
}
