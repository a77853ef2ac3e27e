package view

import (
	"fmt"
	"slices"
	"strings"

	"mediadiary/internal/entry"
)

// Kind selects which part of the collection a projection covers.
type Kind string

const (
	// KindOverview shows every entry that has left the pending state.
	KindOverview Kind = "overview"
	// KindPending shows entries waiting to be started.
	KindPending Kind = "pending"
)

// StatusFilter narrows the overview by lifecycle group.
type StatusFilter string

const (
	StatusAll        StatusFilter = "all"
	StatusInProgress StatusFilter = "in-progress"
	StatusCompleted  StatusFilter = "completed"
)

// TypeAll disables the type filter.
const TypeAll = "all"

// SortKey names an ordering.
type SortKey string

const (
	SortCreatedDesc    SortKey = "created-desc"
	SortCreatedAsc     SortKey = "created-asc"
	SortTitleAsc       SortKey = "title-asc"
	SortTitleDesc      SortKey = "title-desc"
	SortStartDateDesc  SortKey = "startdate-desc"
	SortStartDateAsc   SortKey = "startdate-asc"
	SortFinishDateDesc SortKey = "finishdate-desc"
	SortFinishDateAsc  SortKey = "finishdate-asc"
	SortRatingDesc     SortKey = "rating-desc"
	SortRatingAsc      SortKey = "rating-asc"
	SortHypeRatingDesc SortKey = "hyperating-desc"
	SortHypeRatingAsc  SortKey = "hyperating-asc"
)

var overviewSorts = []SortKey{
	SortCreatedDesc, SortCreatedAsc,
	SortTitleAsc, SortTitleDesc,
	SortStartDateDesc, SortStartDateAsc,
	SortFinishDateDesc, SortFinishDateAsc,
	SortRatingDesc, SortRatingAsc,
}

var pendingSorts = []SortKey{
	SortCreatedDesc, SortCreatedAsc,
	SortTitleAsc, SortTitleDesc,
	SortHypeRatingDesc, SortHypeRatingAsc,
}

// Kinds returns the known view kinds.
func Kinds() []Kind {
	return []Kind{KindOverview, KindPending}
}

// SortKeysFor returns the sort keys valid for kind.
func SortKeysFor(kind Kind) []SortKey {
	switch kind {
	case KindPending:
		return slices.Clone(pendingSorts)
	default:
		return slices.Clone(overviewSorts)
	}
}

// ParseKind converts a string into a Kind.
func ParseKind(value string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindOverview:
		return KindOverview, true
	case KindPending:
		return KindPending, true
	default:
		return "", false
	}
}

// State is everything that decides what a projection contains.
type State struct {
	Kind   Kind         `json:"kind"`
	Status StatusFilter `json:"status"`
	Type   string       `json:"type"`
	Sort   SortKey      `json:"sort"`
	Search string       `json:"search,omitempty"`
}

// DefaultState returns the initial state for kind: no filters, newest first.
func DefaultState(kind Kind) State {
	return State{
		Kind:   kind,
		Status: StatusAll,
		Type:   TypeAll,
		Sort:   SortCreatedDesc,
	}
}

// Normalize fills blank fields with defaults and rejects unknown values. A
// status filter on the pending view is ignored.
func (s State) Normalize() (State, error) {
	out := s
	if strings.TrimSpace(string(out.Kind)) == "" {
		out.Kind = KindOverview
	}
	kind, ok := ParseKind(string(out.Kind))
	if !ok {
		return State{}, fmt.Errorf("view: unknown kind %q", s.Kind)
	}
	out.Kind = kind

	status := StatusFilter(strings.ToLower(strings.TrimSpace(string(out.Status))))
	switch status {
	case "":
		status = StatusAll
	case StatusAll, StatusInProgress, StatusCompleted:
	default:
		return State{}, fmt.Errorf("view: unknown status filter %q", s.Status)
	}
	if kind == KindPending {
		status = StatusAll
	}
	out.Status = status

	typ := strings.TrimSpace(out.Type)
	if typ == "" || strings.EqualFold(typ, TypeAll) {
		out.Type = TypeAll
	} else if mt, ok := entry.ParseMediaType(typ); ok {
		out.Type = string(mt)
	} else {
		return State{}, fmt.Errorf("view: unknown type filter %q", s.Type)
	}

	sortKey := SortKey(strings.ToLower(strings.TrimSpace(string(out.Sort))))
	if sortKey == "" {
		sortKey = SortCreatedDesc
	}
	if !slices.Contains(SortKeysFor(kind), sortKey) {
		return State{}, fmt.Errorf("view: sort %q is not available for the %s view", s.Sort, kind)
	}
	out.Sort = sortKey
	out.Search = strings.TrimSpace(out.Search)
	return out, nil
}
