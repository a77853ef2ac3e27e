package view

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mediadiary/internal/entry"
)

// Result is the output of Project.
type Result struct {
	State   State         `json:"state"`
	Entries []entry.Entry `json:"entries"`
	Stats   Stats         `json:"stats"`
}

// Project filters, searches, and sorts a snapshot according to state, and
// computes statistics over the whole snapshot. The snapshot is not modified.
func Project(snapshot []entry.Entry, state State) (Result, error) {
	st, err := state.Normalize()
	if err != nil {
		return Result{}, err
	}

	base := make([]entry.Entry, len(snapshot))
	for i, e := range snapshot {
		base[i] = e.Clone()
	}
	slices.SortStableFunc(base, compareCreated(true))

	folder := cases.Fold()
	needle := folder.String(st.Search)

	selected := make([]entry.Entry, 0, len(base))
	for _, e := range base {
		if !matchesKind(e, st.Kind) || !matchesStatus(e, st.Status) || !matchesType(e, st.Type) {
			continue
		}
		if needle != "" && !matchesSearch(folder, e, needle) {
			continue
		}
		selected = append(selected, e)
	}

	slices.SortStableFunc(selected, comparator(st.Sort))

	return Result{
		State:   st,
		Entries: selected,
		Stats:   ComputeStats(snapshot),
	}, nil
}

func matchesKind(e entry.Entry, kind Kind) bool {
	if kind == KindPending {
		return e.Status.IsPending()
	}
	return !e.Status.IsPending()
}

func matchesStatus(e entry.Entry, filter StatusFilter) bool {
	switch filter {
	case StatusInProgress:
		return e.Status.IsInProgress()
	case StatusCompleted:
		return e.Status.IsCompleted()
	default:
		return true
	}
}

func matchesType(e entry.Entry, typ string) bool {
	return typ == TypeAll || string(e.Type) == typ
}

func matchesSearch(folder cases.Caser, e entry.Entry, needle string) bool {
	haystacks := []string{e.Title, e.Author, entry.JoinTags(e.Tags)}
	for _, h := range haystacks {
		if strings.Contains(folder.String(h), needle) {
			return true
		}
	}
	return false
}

type compareFunc func(a, b entry.Entry) int

func comparator(key SortKey) compareFunc {
	switch key {
	case SortCreatedAsc:
		return compareCreated(false)
	case SortTitleAsc:
		return compareTitle(false)
	case SortTitleDesc:
		return compareTitle(true)
	case SortStartDateDesc:
		return compareDate(func(e entry.Entry) entry.Date { return e.StartDate }, true)
	case SortStartDateAsc:
		return compareDate(func(e entry.Entry) entry.Date { return e.StartDate }, false)
	case SortFinishDateDesc:
		return compareDate(func(e entry.Entry) entry.Date { return e.FinishDate }, true)
	case SortFinishDateAsc:
		return compareDate(func(e entry.Entry) entry.Date { return e.FinishDate }, false)
	case SortRatingDesc:
		return compareRating(true)
	case SortRatingAsc:
		return compareRating(false)
	case SortHypeRatingDesc:
		return compareHype(true)
	case SortHypeRatingAsc:
		return compareHype(false)
	default:
		return compareCreated(true)
	}
}

func direction(c int, desc bool) int {
	if desc {
		return -c
	}
	return c
}

// missingLast orders absent values after present ones. ok is false when both
// values are present and the caller must compare them.
func missingLast(aMissing, bMissing bool) (order int, ok bool) {
	switch {
	case aMissing && bMissing:
		return 0, true
	case aMissing:
		return 1, true
	case bMissing:
		return -1, true
	default:
		return 0, false
	}
}

func compareCreated(desc bool) compareFunc {
	return func(a, b entry.Entry) int {
		return direction(a.CreatedAt.Compare(b.CreatedAt), desc)
	}
}

func compareTitle(desc bool) compareFunc {
	collator := collate.New(language.Und)
	return func(a, b entry.Entry) int {
		return direction(collator.CompareString(a.Title, b.Title), desc)
	}
}

func compareDate(field func(entry.Entry) entry.Date, desc bool) compareFunc {
	return func(a, b entry.Entry) int {
		da, db := field(a), field(b)
		if order, ok := missingLast(da.IsZero(), db.IsZero()); ok {
			return order
		}
		return direction(da.Compare(db), desc)
	}
}

func compareRating(desc bool) compareFunc {
	return func(a, b entry.Entry) int {
		ra, aok := a.Rating.Value()
		rb, bok := b.Rating.Value()
		if order, ok := missingLast(!aok, !bok); ok {
			return order
		}
		return direction(cmp.Compare(ra, rb), desc)
	}
}

func compareHype(desc bool) compareFunc {
	return func(a, b entry.Entry) int {
		return direction(cmp.Compare(a.HypeRating, b.HypeRating), desc)
	}
}
