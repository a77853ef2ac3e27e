package entry

import (
	"strings"
	"time"
)

const (
	// MaxTags bounds the number of tags on a single entry.
	MaxTags = 20
	// MaxTagLength bounds the length of a single tag in characters.
	MaxTagLength = 50
)

// Entry is one tracked media item.
type Entry struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Type       MediaType      `json:"type"`
	Author     string         `json:"author,omitempty"`
	StartDate  Date           `json:"startDate,omitzero"`
	FinishDate Date           `json:"finishDate,omitzero"`
	Rating     Rating         `json:"rating,omitzero"`
	HypeRating int            `json:"hypeRating,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	Tags       []string       `json:"tags,omitempty"`
	CoverURL   string         `json:"coverUrl,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	Status     Status         `json:"status"`
}

// HasDates reports whether either date is recorded.
func (e Entry) HasDates() bool {
	return !e.StartDate.IsZero() || !e.FinishDate.IsZero()
}

// Clone returns a deep copy so callers cannot mutate shared tags or metadata.
func (e Entry) Clone() Entry {
	out := e
	if e.Tags != nil {
		out.Tags = append([]string(nil), e.Tags...)
	}
	out.Metadata = CloneMetadata(e.Metadata)
	return out
}

// CloneMetadata deep-copies the JSON-shaped metadata map.
func CloneMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return CloneMetadata(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// ParseTags splits a comma separated tag list, trimming whitespace and
// dropping blanks and case-insensitive duplicates while keeping first-seen
// order.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// JoinTags returns the storage form of a tag list.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}
