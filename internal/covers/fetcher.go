package covers

import (
	"context"
	"time"

	"mediadiary/internal/entry"
)

// Metadata keys written by fetchers.
const (
	KeySource         = "source"
	KeyAdditionalInfo = "additionalInfo"
	KeyFetchedAt      = "fetchedAt"
	KeyCoverURL       = "coverUrl"

	SourceManual = "Manual Entry"
)

// Fetcher looks up external metadata for a new entry. A returned coverUrl key
// is used as the entry cover when the user supplied none.
type Fetcher interface {
	Fetch(ctx context.Context, title string, t entry.MediaType) (map[string]any, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, title string, t entry.MediaType) (map[string]any, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, title string, t entry.MediaType) (map[string]any, error) {
	return f(ctx, title, t)
}

// NoopFetcher performs no lookups. With Skeleton set it records the manual
// source marker so entries show where their metadata came from.
type NoopFetcher struct {
	Skeleton bool
	Now      func() time.Time
}

// Fetch returns the skeleton metadata, or nil when Skeleton is false.
func (f NoopFetcher) Fetch(ctx context.Context, _ string, _ entry.MediaType) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !f.Skeleton {
		return nil, nil
	}
	return Skeleton(f.now()), nil
}

func (f NoopFetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// Skeleton returns the default metadata shape for manually entered items.
func Skeleton(at time.Time) map[string]any {
	return map[string]any{
		KeySource:         SourceManual,
		KeyAdditionalInfo: map[string]any{},
		KeyFetchedAt:      at.UTC().Format(time.RFC3339),
	}
}
