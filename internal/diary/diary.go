package diary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"mediadiary/internal/collection"
	"mediadiary/internal/config"
	"mediadiary/internal/covers"
	"mediadiary/internal/csvio"
	"mediadiary/internal/logging"
	"mediadiary/internal/storage"
)

// ErrSessionActive reports that another process holds the diary lock.
var ErrSessionActive = errors.New("another mediadiary session is using this data directory")

// Option customises a Diary.
type Option func(*options)

type options struct {
	fetcher covers.Fetcher
	now     func() time.Time
	newID   func() string
}

// WithFetcher replaces the metadata fetcher used when adding entries.
func WithFetcher(f covers.Fetcher) Option {
	return func(o *options) {
		if f != nil {
			o.fetcher = f
		}
	}
}

// WithClock overrides the time source for new entries and lifecycle dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator overrides entry id assignment.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

// Diary is an open session over the user's entry collection.
type Diary struct {
	cfg       *config.Config
	logger    *slog.Logger
	sessionID string

	lockPath string
	lock     *flock.Flock

	storage *storage.Store
	mirror  *csvio.Mirror
	store   *collection.Store
	fetcher covers.Fetcher
	covers  covers.Generator
	now     func() time.Time
}

// Open acquires the session lock, loads cached entries, and starts the
// persistence pipeline.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Diary, error) {
	if cfg == nil {
		return nil, errors.New("diary requires a config")
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fetcher == nil {
		o.fetcher = covers.NoopFetcher{Skeleton: true, Now: o.now}
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	sessionID := uuid.NewString()
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.String(logging.FieldSessionID, sessionID))
	d := &Diary{
		cfg:       cfg,
		sessionID: sessionID,
		logger:    logging.NewComponentLogger(logger, "diary"),
		lockPath:  cfg.LockPath(),
		fetcher:   o.fetcher,
		covers:    covers.NewGenerator(cfg.Covers),
		now:       o.now,
	}

	d.lock = flock.New(d.lockPath)
	ok, err := d.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrSessionActive, d.lockPath)
	}

	st, err := storage.Open(cfg, logger)
	if err != nil {
		d.releaseLock()
		return nil, err
	}
	d.storage = st

	loaded, err := st.LoadAll(ctx)
	if err != nil {
		logging.WarnWithContext(d.logger, "failed to load cached entries; starting empty", "load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "import a CSV export to restore entries"),
			logging.String(logging.FieldImpact, "the next change overwrites the cache"),
		)
		loaded = nil
	}

	fanout := collection.NewFanout().Add("sqlite", st)
	if cfg.Storage.MirrorCSV {
		d.mirror = csvio.NewMirror(cfg.Storage.CSVFile, logger)
		fanout.Add("csv", d.mirror)
	}

	storeOpts := []collection.Option{
		collection.WithLogger(logger),
		collection.WithClock(o.now),
		collection.WithPersister(fanout),
	}
	if o.newID != nil {
		storeOpts = append(storeOpts, collection.WithIDGenerator(o.newID))
	}
	d.store = collection.New(loaded, storeOpts...)

	d.logger.Debug("diary opened",
		logging.String("database", st.Path()),
		logging.Int("entries", d.store.Len()),
		logging.Bool("csv_mirror", d.mirror != nil),
	)
	return d, nil
}

// SessionID returns the identifier attached to this session's log records.
func (d *Diary) SessionID() string {
	return d.sessionID
}

// Config returns the configuration the diary was opened with.
func (d *Diary) Config() *config.Config {
	return d.cfg
}

// Flush waits for pending writes and reports the latest persistence outcome.
func (d *Diary) Flush(ctx context.Context) error {
	return d.store.Flush(ctx)
}

// Close flushes pending writes, closes storage, and releases the lock. A
// persistence failure is returned as *collection.PersistenceError after all
// resources are released.
func (d *Diary) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}
	var errs []error
	if d.store != nil {
		if err := d.store.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if d.storage != nil {
		if err := d.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	d.releaseLock()
	return errors.Join(errs...)
}

func (d *Diary) releaseLock() {
	if d.lock == nil {
		return
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release diary lock",
			logging.String("lock", d.lockPath),
			logging.Error(err),
		)
	}
}
