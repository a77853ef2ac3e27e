package entry_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"mediadiary/internal/entry"
)

func TestValidateCollectsAllErrors(t *testing.T) {
	v := entry.Validate(entry.Candidate{
		Title:      "  ",
		Type:       "podcast",
		StartDate:  "2024-05-10",
		FinishDate: "2024-05-01",
		Rating:     "42",
		HypeRating: "0",
	}, entry.KindActive)

	if v.Valid() {
		t.Fatal("expected validation failure")
	}
	want := []string{
		entry.MsgTitleRequired,
		entry.MsgInvalidType,
		entry.MsgFinishBeforeStart,
		entry.MsgRatingRange,
		entry.MsgHypeRatingRange,
	}
	for _, msg := range want {
		if !slices.Contains(v.Errors, msg) {
			t.Fatalf("expected %q in %v", msg, v.Errors)
		}
	}

	var verr *entry.ValidationError
	if !errors.As(v.Err(), &verr) || len(verr.Errors) != len(v.Errors) {
		t.Fatalf("Err() = %v", v.Err())
	}
	if entry.KindOf(v.Err()) != "validation" {
		t.Fatalf("KindOf = %q", entry.KindOf(v.Err()))
	}
}

func TestValidateTypeRequired(t *testing.T) {
	v := entry.Validate(entry.Candidate{Title: "Dune"}, entry.KindPending)
	if !slices.Equal(v.Errors, []string{entry.MsgTypeRequired}) {
		t.Fatalf("errors = %v", v.Errors)
	}
}

func TestValidateTypeIsCaseInsensitive(t *testing.T) {
	v := entry.Validate(entry.Candidate{Title: "Dune", Type: "BOOK"}, entry.KindActive)
	if !v.Valid() {
		t.Fatalf("unexpected errors: %v", v.Errors)
	}
	if v.Fields.Type != entry.TypeBook {
		t.Fatalf("type = %q", v.Fields.Type)
	}
}

func TestValidateActiveIntent(t *testing.T) {
	cases := []struct {
		name string
		c    entry.Candidate
		want string
	}{
		{
			name: "completed without dates",
			c:    entry.Candidate{Title: "X", Type: "film", Intent: "completed"},
			want: entry.MsgCompletedNeedsDate,
		},
		{
			name: "unknown dates with a date",
			c:    entry.Candidate{Title: "X", Type: "film", Intent: "unknown-dates", StartDate: "2024-01-01"},
			want: entry.MsgUnknownDatesHasDates,
		},
		{
			name: "unsupported intent",
			c:    entry.Candidate{Title: "X", Type: "film", Intent: "abandoned"},
			want: entry.MsgInvalidStatus,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := entry.Validate(tc.c, entry.KindActive)
			if !slices.Equal(v.Errors, []string{tc.want}) {
				t.Fatalf("errors = %v, want [%s]", v.Errors, tc.want)
			}
		})
	}

	ok := entry.Validate(entry.Candidate{Title: "X", Type: "film", Intent: "completed", FinishDate: "2024-02-02"}, entry.KindActive)
	if !ok.Valid() {
		t.Fatalf("completed with finish date rejected: %v", ok.Errors)
	}
}

func TestValidatePendingRejectsDatesAndBadRating(t *testing.T) {
	v := entry.Validate(entry.Candidate{Title: "Dune", Type: "book", StartDate: "2024-01-01", Rating: "99"}, entry.KindPending)
	if !slices.Equal(v.Errors, []string{entry.MsgPendingHasDates, entry.MsgRatingRange}) {
		t.Fatalf("errors = %v", v.Errors)
	}
}

func TestValidatePendingDropsValidRating(t *testing.T) {
	v := entry.Validate(entry.Candidate{Title: "Dune", Type: "book", Rating: "8"}, entry.KindPending)
	if !v.Valid() {
		t.Fatalf("errors = %v", v.Errors)
	}
	if v.Fields.Rating.IsSet() {
		t.Fatalf("pending candidate kept rating %v", v.Fields.Rating)
	}
}

func TestValidateInvalidDates(t *testing.T) {
	v := entry.Validate(entry.Candidate{Title: "X", Type: "paper", StartDate: "yesterday", FinishDate: "2024-02-30"}, entry.KindUpdate)
	want := []string{entry.MsgInvalidStartDate, entry.MsgInvalidFinishDate}
	if !slices.Equal(v.Errors, want) {
		t.Fatalf("errors = %v, want %v", v.Errors, want)
	}
}

func TestValidateTags(t *testing.T) {
	many := make([]string, 21)
	for i := range many {
		many[i] = "tag" + strings.Repeat("x", i)
	}
	v := entry.Validate(entry.Candidate{Title: "X", Type: "series", Tags: strings.Join(many, ",")}, entry.KindUpdate)
	if !slices.Equal(v.Errors, []string{entry.MsgTooManyTags}) {
		t.Fatalf("errors = %v", v.Errors)
	}

	long := entry.Validate(entry.Candidate{Title: "X", Type: "series", Tags: "ok," + strings.Repeat("é", 51)}, entry.KindUpdate)
	if !slices.Equal(long.Errors, []string{entry.MsgTagTooLong}) {
		t.Fatalf("errors = %v", long.Errors)
	}

	fifty := entry.Validate(entry.Candidate{Title: "X", Type: "series", Tags: strings.Repeat("é", 50)}, entry.KindUpdate)
	if !fifty.Valid() {
		t.Fatalf("50 character tag rejected: %v", fifty.Errors)
	}
}

func TestValidateCoverURL(t *testing.T) {
	v := entry.Validate(entry.Candidate{Title: "X", Type: "film", CoverURL: "javascript:alert(1)"}, entry.KindActive)
	if !slices.Equal(v.Errors, []string{entry.MsgInvalidCoverURL}) {
		t.Fatalf("errors = %v", v.Errors)
	}
}

func TestValidateParsesFields(t *testing.T) {
	v := entry.Validate(entry.Candidate{
		Title:      " Dune ",
		Type:       "book",
		Author:     "Frank Herbert",
		StartDate:  "2024-01-02",
		FinishDate: "2024-02-03",
		Rating:     "9",
		Tags:       "sci-fi, classic",
		Metadata:   map[string]any{"pages": 412},
	}, entry.KindActive)
	if !v.Valid() {
		t.Fatalf("unexpected errors: %v", v.Errors)
	}
	f := v.Fields
	if f.Title != "Dune" || f.Author != "Frank Herbert" || f.StartDate.String() != "2024-01-02" {
		t.Fatalf("unexpected fields: %#v", f)
	}
	if r, ok := f.Rating.Value(); !ok || r != 9 {
		t.Fatalf("rating = %v", f.Rating)
	}
	if len(f.Tags) != 2 || f.Metadata["pages"] != 412 {
		t.Fatalf("unexpected fields: %#v", f)
	}
}

func TestCandidateFromRoundTrips(t *testing.T) {
	e := entry.Entry{
		Title:      "Dune",
		Type:       entry.TypeBook,
		StartDate:  entry.NewDate(2024, 1, 2),
		Rating:     entry.NotRated(),
		HypeRating: 8,
		Tags:       []string{"a", "b"},
	}
	v := entry.Validate(entry.CandidateFrom(e), entry.KindUpdate)
	if !v.Valid() {
		t.Fatalf("unexpected errors: %v", v.Errors)
	}
	if v.Fields.StartDate != e.StartDate || v.Fields.Rating != e.Rating || v.Fields.HypeRating != 8 {
		t.Fatalf("fields did not round trip: %#v", v.Fields)
	}
}
