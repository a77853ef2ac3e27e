package collection

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mediadiary/internal/entry"
	"mediadiary/internal/logging"
)

// WithPersistFailureHandler registers fn to be called from the writer
// goroutine whenever a durable write fails.
func WithPersistFailureHandler(fn func(*PersistenceError)) Option {
	return func(s *Store) {
		s.onFailure = fn
	}
}

// writer persists snapshots on a single goroutine, keeping only the newest
// unwritten snapshot.
type writer struct {
	p         Persister
	logger    *slog.Logger
	onFailure func(*PersistenceError)

	mu         sync.Mutex
	pending    []entry.Entry
	hasPending bool
	submitted  uint64
	written    uint64
	lastErr    error
	progress   chan struct{}
	stopped    bool

	wake     chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func newWriter(p Persister, logger *slog.Logger, onFailure func(*PersistenceError)) *writer {
	w := &writer{
		p:         p,
		logger:    logger,
		onFailure: onFailure,
		progress:  make(chan struct{}),
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *writer) submit(snapshot []entry.Entry) {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.pending = snapshot
	w.hasPending = true
	w.submitted++
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *writer) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case <-w.wake:
			w.drain()
		}
	}
}

func (w *writer) drain() {
	for {
		w.mu.Lock()
		if !w.hasPending {
			w.mu.Unlock()
			return
		}
		snapshot, seq := w.pending, w.submitted
		w.pending, w.hasPending = nil, false
		w.mu.Unlock()

		started := time.Now()
		err := w.p.PersistAll(context.Background(), snapshot)
		if err != nil {
			logging.WarnWithContext(w.logger, "entry persistence failed", "persistence_failed",
				logging.Error(err),
				logging.Int("entries", len(snapshot)),
				logging.String(logging.FieldErrorHint, "check the data directory is writable"),
				logging.String(logging.FieldImpact, "changes are kept in memory and retried on the next mutation"),
			)
			if w.onFailure != nil {
				w.onFailure(&PersistenceError{Err: err})
			}
		} else {
			w.logger.Debug("entries persisted",
				logging.Int("entries", len(snapshot)),
				logging.Duration("elapsed", time.Since(started)),
			)
		}

		w.mu.Lock()
		w.written = seq
		w.lastErr = err
		close(w.progress)
		w.progress = make(chan struct{})
		w.mu.Unlock()
	}
}

func (w *writer) flush(ctx context.Context) error {
	w.mu.Lock()
	target := w.submitted
	for w.written < target {
		ch := w.progress
		w.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
		w.mu.Lock()
	}
	err := w.lastErr
	w.mu.Unlock()

	if err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}

// stop ends the writer goroutine and writes anything still queued. Later
// submissions are dropped.
func (w *writer) stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		w.mu.Unlock()
		close(w.done)
		w.wg.Wait()
		w.drain()
	})
}
