package collection

import (
	"context"
	"errors"
	"fmt"

	"mediadiary/internal/entry"
)

// Persister durably writes the full collection. Implementations receive a
// snapshot they may retain.
type Persister interface {
	PersistAll(ctx context.Context, entries []entry.Entry) error
}

// Loader reads the durable collection at startup.
type Loader interface {
	LoadAll(ctx context.Context) ([]entry.Entry, error)
}

// PersisterFunc adapts a function to the Persister interface.
type PersisterFunc func(ctx context.Context, entries []entry.Entry) error

// PersistAll implements Persister.
func (f PersisterFunc) PersistAll(ctx context.Context, entries []entry.Entry) error {
	return f(ctx, entries)
}

type namedPersister struct {
	name string
	p    Persister
}

// Fanout writes to every persister in order and joins their errors. Each
// target sees the same snapshot; a failing target does not stop the rest.
type Fanout struct {
	targets []namedPersister
}

// NewFanout builds an empty fan-out persister.
func NewFanout() *Fanout {
	return &Fanout{}
}

// Add registers a named target. Nil persisters are ignored.
func (f *Fanout) Add(name string, p Persister) *Fanout {
	if p != nil {
		f.targets = append(f.targets, namedPersister{name: name, p: p})
	}
	return f
}

// Len returns the number of registered targets.
func (f *Fanout) Len() int {
	return len(f.targets)
}

// PersistAll implements Persister.
func (f *Fanout) PersistAll(ctx context.Context, entries []entry.Entry) error {
	var errs []error
	for _, target := range f.targets {
		if err := target.p.PersistAll(ctx, entries); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", target.name, err))
		}
	}
	return errors.Join(errs...)
}
