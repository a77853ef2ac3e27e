package entry_test

import (
	"errors"
	"testing"

	"mediadiary/internal/entry"
)

func TestParseRating(t *testing.T) {
	cases := []struct {
		raw      string
		set      bool
		notRated bool
		value    int
		wantErr  bool
	}{
		{raw: ""},
		{raw: "0"},
		{raw: "  7 ", set: true, value: 7},
		{raw: "10", set: true, value: 10},
		{raw: "n/a", set: true, notRated: true},
		{raw: "N/A", set: true, notRated: true},
		{raw: "11", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "seven", wantErr: true},
	}
	for _, tc := range cases {
		r, err := entry.ParseRating(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseRating(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRating(%q) failed: %v", tc.raw, err)
		}
		if r.IsSet() != tc.set || r.IsNotRated() != tc.notRated {
			t.Fatalf("ParseRating(%q) = %#v", tc.raw, r)
		}
		if v, ok := r.Value(); ok != (tc.value != 0) || v != tc.value {
			t.Fatalf("ParseRating(%q) value = %d,%v", tc.raw, v, ok)
		}
	}
}

func TestRatingStringRoundTrip(t *testing.T) {
	for _, r := range []entry.Rating{{}, entry.NotRated(), entry.MustRating(4)} {
		parsed, err := entry.ParseRating(r.String())
		if err != nil {
			t.Fatalf("ParseRating(%q) failed: %v", r.String(), err)
		}
		if parsed != r {
			t.Fatalf("round trip mismatch: %#v != %#v", parsed, r)
		}
	}
}

func TestRatingOfRange(t *testing.T) {
	if _, err := entry.RatingOf(12); !errors.Is(err, entry.ErrRatingRange) {
		t.Fatalf("expected ErrRatingRange, got %v", err)
	}
}

func TestParseHypeRatingRejectsZero(t *testing.T) {
	if _, err := entry.ParseHypeRating("0"); err == nil {
		t.Fatal("expected zero hype rating to be rejected")
	}
	if v, err := entry.ParseHypeRating(""); err != nil || v != 0 {
		t.Fatalf("empty hype rating = %d, %v", v, err)
	}
}

func TestParseDate(t *testing.T) {
	d, err := entry.ParseDate("2024-03-05")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.String() != "2024-03-05" {
		t.Fatalf("unexpected date %q", d.String())
	}
	ts, err := entry.ParseDate("2024-03-05T22:10:00Z")
	if err != nil || ts != d {
		t.Fatalf("timestamp parse = %v, %v", ts, err)
	}
	if _, err := entry.ParseDate("2024-13-40"); err == nil {
		t.Fatal("expected invalid date error")
	}
	empty, err := entry.ParseDate(" ")
	if err != nil || !empty.IsZero() {
		t.Fatalf("blank date = %v, %v", empty, err)
	}
}

func TestParseTagsDeduplicates(t *testing.T) {
	tags := entry.ParseTags(" sci-fi, classic ,,Sci-Fi, desert ")
	want := []string{"sci-fi", "classic", "desert"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v", tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("tags = %v, want %v", tags, want)
		}
	}
	if entry.JoinTags(tags) != "sci-fi,classic,desert" {
		t.Fatalf("JoinTags = %q", entry.JoinTags(tags))
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := entry.Entry{
		Tags:     []string{"a"},
		Metadata: map[string]any{"info": map[string]any{"pages": 412}, "list": []any{"x"}},
	}
	clone := original.Clone()
	clone.Tags[0] = "b"
	clone.Metadata["info"].(map[string]any)["pages"] = 1
	clone.Metadata["list"].([]any)[0] = "y"

	if original.Tags[0] != "a" {
		t.Fatal("tags shared between clone and original")
	}
	if original.Metadata["info"].(map[string]any)["pages"] != 412 {
		t.Fatal("nested metadata shared between clone and original")
	}
	if original.Metadata["list"].([]any)[0] != "x" {
		t.Fatal("metadata slice shared between clone and original")
	}
}
