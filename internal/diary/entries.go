package diary

import (
	"context"
	"log/slog"
	"strings"

	"mediadiary/internal/collection"
	"mediadiary/internal/covers"
	"mediadiary/internal/entry"
	"mediadiary/internal/logging"
	"mediadiary/internal/view"
)

// AddActive creates an entry through the active flow (in-progress or
// completed, with or without dates).
func (d *Diary) AddActive(ctx context.Context, c entry.Candidate) (entry.Entry, error) {
	c = d.enrich(ctx, c)
	e, err := d.store.Create(c, entry.KindActive)
	if err != nil {
		return entry.Entry{}, err
	}
	d.logEvent("entry added", "entry_added", e)
	return e, nil
}

// AddPending creates an entry on the pending list.
func (d *Diary) AddPending(ctx context.Context, c entry.Candidate) (entry.Entry, error) {
	c = d.enrich(ctx, c)
	e, err := d.store.Create(c, entry.KindPending)
	if err != nil {
		return entry.Entry{}, err
	}
	d.logEvent("pending entry added", "entry_added", e)
	return e, nil
}

// enrich fills metadata and cover from the fetcher. Fetch failures are logged
// and never block the create.
func (d *Diary) enrich(ctx context.Context, c entry.Candidate) entry.Candidate {
	if len(c.Metadata) > 0 || strings.TrimSpace(c.Title) == "" {
		return c
	}
	t, ok := entry.ParseMediaType(c.Type)
	if !ok {
		return c
	}
	meta, err := d.fetcher.Fetch(ctx, strings.TrimSpace(c.Title), t)
	if err != nil {
		logging.WarnWithContext(d.logger, "metadata lookup failed", "metadata_fetch_failed",
			logging.String(logging.FieldTitle, c.Title),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "edit the entry to add a cover manually"),
			logging.String(logging.FieldImpact, "entry saved without fetched metadata"),
		)
		return c
	}
	if len(meta) == 0 {
		return c
	}
	meta = entry.CloneMetadata(meta)
	if cover, ok := meta[covers.KeyCoverURL].(string); ok {
		delete(meta, covers.KeyCoverURL)
		if strings.TrimSpace(c.CoverURL) == "" {
			c.CoverURL = cover
		}
	}
	c.Metadata = meta
	return c
}

// Start moves a pending entry to in-progress.
func (d *Diary) Start(ref string) (entry.Entry, error) {
	current, err := d.store.Resolve(ref)
	if err != nil {
		return entry.Entry{}, err
	}
	e, err := d.store.Start(current.ID)
	if err != nil {
		return entry.Entry{}, err
	}
	d.logEvent("entry started", "entry_started", e)
	return e, nil
}

// Finish completes an in-progress entry with an optional rating.
func (d *Diary) Finish(ref string, rating entry.Rating) (entry.Entry, error) {
	current, err := d.store.Resolve(ref)
	if err != nil {
		return entry.Entry{}, err
	}
	e, err := d.store.Finish(current.ID, rating)
	if err != nil {
		return entry.Entry{}, err
	}
	d.logEvent("entry finished", "entry_finished", e)
	return e, nil
}

// Edit applies patch to the referenced entry.
func (d *Diary) Edit(ref string, patch collection.Patch) (entry.Entry, error) {
	current, err := d.store.Resolve(ref)
	if err != nil {
		return entry.Entry{}, err
	}
	if patch.IsEmpty() {
		return current, nil
	}
	e, err := d.store.Update(current.ID, patch)
	if err != nil {
		return entry.Entry{}, err
	}
	if e.Status != current.Status {
		d.logger.Info("entry status changed",
			logging.String(logging.FieldEntryID, e.ID),
			logging.String("from", string(current.Status)),
			logging.String("to", string(e.Status)),
			logging.String(logging.FieldEventType, "status_changed"),
		)
	}
	d.logEvent("entry edited", "entry_edited", e)
	return e, nil
}

// Delete removes the referenced entry and returns what was removed.
func (d *Diary) Delete(ref string) (entry.Entry, error) {
	current, err := d.store.Resolve(ref)
	if err != nil {
		return entry.Entry{}, err
	}
	if err := d.store.Delete(current.ID); err != nil {
		return entry.Entry{}, err
	}
	d.logEvent("entry deleted", "entry_deleted", current)
	return current, nil
}

// Get returns the entry with the exact id.
func (d *Diary) Get(id string) (entry.Entry, error) {
	return d.store.Get(id)
}

// Resolve finds an entry by id or unique id prefix.
func (d *Diary) Resolve(ref string) (entry.Entry, error) {
	return d.store.Resolve(ref)
}

// Entries returns every entry, newest first.
func (d *Diary) Entries() []entry.Entry {
	return d.store.All()
}

// Project computes a view of the collection.
func (d *Diary) Project(state view.State) (view.Result, error) {
	return view.Project(d.store.All(), state)
}

// Stats summarises the whole collection.
func (d *Diary) Stats() view.Stats {
	return view.ComputeStats(d.store.All())
}

// CoverURL returns the entry's cover or its generated placeholder.
func (d *Diary) CoverURL(e entry.Entry) string {
	return d.covers.Resolve(e)
}

func (d *Diary) logEvent(msg, eventType string, e entry.Entry) {
	attrs := append(logging.Entry(e.ID, e.Title),
		logging.String(logging.FieldStatus, string(e.Status)),
		logging.String(logging.FieldEventType, eventType),
	)
	d.logger.LogAttrs(context.Background(), slog.LevelInfo, msg, attrs...)
}
