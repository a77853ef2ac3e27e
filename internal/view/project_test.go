package view_test

import (
	"reflect"
	"slices"
	"testing"
	"time"

	"mediadiary/internal/entry"
	"mediadiary/internal/view"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fixture builds entries whose createdAt descends in slice order.
func fixture(entries ...entry.Entry) []entry.Entry {
	out := make([]entry.Entry, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			e.ID = e.Title
		}
		e.CreatedAt = epoch.Add(time.Duration(len(entries)-i) * time.Hour)
		out[i] = e
	}
	return out
}

func ids(entries []entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func mustProject(t *testing.T, snapshot []entry.Entry, state view.State) view.Result {
	t.Helper()
	result, err := view.Project(snapshot, state)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	return result
}

func sampleCollection() []entry.Entry {
	return fixture(
		entry.Entry{Title: "Dune", Type: entry.TypeBook, Author: "Frank Herbert", Status: entry.StatusPending, HypeRating: 9, Tags: []string{"sci-fi"}},
		entry.Entry{Title: "Alien", Type: entry.TypeFilm, Status: entry.StatusCompleted, FinishDate: entry.NewDate(2024, 3, 1), Rating: entry.MustRating(8)},
		entry.Entry{Title: "Severance", Type: entry.TypeSeries, Status: entry.StatusInProgress, StartDate: entry.NewDate(2024, 2, 1), Tags: []string{"Office", "Mystery"}},
		entry.Entry{Title: "Attention Is All You Need", Type: entry.TypePaper, Status: entry.StatusCompletedNoDates, Rating: entry.NotRated()},
		entry.Entry{Title: "Hades", Type: entry.TypeVideoGame, Status: entry.StatusInProgressNoDates},
		entry.Entry{Title: "Neuromancer", Type: entry.TypeBook, Author: "William Gibson", Status: entry.StatusPending, Tags: []string{"cyberpunk"}},
		entry.Entry{Title: "Blade Runner", Type: entry.TypeFilm, Status: entry.StatusCompleted, StartDate: entry.NewDate(2023, 12, 30), FinishDate: entry.NewDate(2024, 1, 2), Rating: entry.MustRating(3)},
	)
}

func TestOverviewExcludesPending(t *testing.T) {
	result := mustProject(t, sampleCollection(), view.DefaultState(view.KindOverview))
	want := []string{"Alien", "Severance", "Attention Is All You Need", "Hades", "Blade Runner"}
	if got := ids(result.Entries); !slices.Equal(got, want) {
		t.Fatalf("overview = %v, want %v", got, want)
	}
}

func TestPendingView(t *testing.T) {
	result := mustProject(t, sampleCollection(), view.DefaultState(view.KindPending))
	if got := ids(result.Entries); !slices.Equal(got, []string{"Dune", "Neuromancer"}) {
		t.Fatalf("pending = %v", got)
	}
}

func TestStatusFilterGroupsVariants(t *testing.T) {
	state := view.DefaultState(view.KindOverview)
	state.Status = view.StatusInProgress
	if got := ids(mustProject(t, sampleCollection(), state).Entries); !slices.Equal(got, []string{"Severance", "Hades"}) {
		t.Fatalf("in-progress = %v", got)
	}
	state.Status = view.StatusCompleted
	if got := ids(mustProject(t, sampleCollection(), state).Entries); !slices.Equal(got, []string{"Alien", "Attention Is All You Need", "Blade Runner"}) {
		t.Fatalf("completed = %v", got)
	}
}

func TestTypeFilter(t *testing.T) {
	state := view.DefaultState(view.KindOverview)
	state.Type = "FILM"
	if got := ids(mustProject(t, sampleCollection(), state).Entries); !slices.Equal(got, []string{"Alien", "Blade Runner"}) {
		t.Fatalf("films = %v", got)
	}
	pending := view.DefaultState(view.KindPending)
	pending.Type = "film"
	if got := mustProject(t, sampleCollection(), pending).Entries; len(got) != 0 {
		t.Fatalf("pending films = %v", ids(got))
	}
}

func TestSearchMatchesTitleTagsAuthor(t *testing.T) {
	cases := []struct {
		kind view.Kind
		term string
		want []string
	}{
		{view.KindOverview, "ALIEN", []string{"Alien"}},
		{view.KindOverview, "mystery", []string{"Severance"}},
		{view.KindPending, "gibson", []string{"Neuromancer"}},
		{view.KindPending, "", []string{"Dune", "Neuromancer"}},
		{view.KindOverview, "nothing-matches", []string{}},
		{view.KindOverview, "office,mystery", []string{"Severance"}},
		{view.KindOverview, "office mystery", []string{}},
	}
	for _, tc := range cases {
		state := view.DefaultState(tc.kind)
		state.Search = tc.term
		if got := ids(mustProject(t, sampleCollection(), state).Entries); !slices.Equal(got, tc.want) {
			t.Fatalf("search %q = %v, want %v", tc.term, got, tc.want)
		}
	}
}

func TestRatingSortPutsUnratedLast(t *testing.T) {
	snapshot := fixture(
		entry.Entry{ID: "none-1", Status: entry.StatusCompleted},
		entry.Entry{ID: "eight", Status: entry.StatusCompleted, Rating: entry.MustRating(8)},
		entry.Entry{ID: "three", Status: entry.StatusCompleted, Rating: entry.MustRating(3)},
		entry.Entry{ID: "none-2", Status: entry.StatusCompleted},
	)
	for _, tc := range []struct {
		sort view.SortKey
		want []string
	}{
		{view.SortRatingDesc, []string{"eight", "three", "none-1", "none-2"}},
		{view.SortRatingAsc, []string{"three", "eight", "none-1", "none-2"}},
	} {
		state := view.DefaultState(view.KindOverview)
		state.Sort = tc.sort
		if got := ids(mustProject(t, snapshot, state).Entries); !slices.Equal(got, tc.want) {
			t.Fatalf("%s = %v, want %v", tc.sort, got, tc.want)
		}
	}
}

func TestDateSortsPutMissingLast(t *testing.T) {
	state := view.DefaultState(view.KindOverview)
	state.Sort = view.SortFinishDateAsc
	got := ids(mustProject(t, sampleCollection(), state).Entries)
	want := []string{"Blade Runner", "Alien", "Severance", "Attention Is All You Need", "Hades"}
	if !slices.Equal(got, want) {
		t.Fatalf("finishdate-asc = %v, want %v", got, want)
	}

	state.Sort = view.SortStartDateDesc
	got = ids(mustProject(t, sampleCollection(), state).Entries)
	want = []string{"Severance", "Blade Runner", "Alien", "Attention Is All You Need", "Hades"}
	if !slices.Equal(got, want) {
		t.Fatalf("startdate-desc = %v, want %v", got, want)
	}
}

func TestTitleSortIsCaseInsensitive(t *testing.T) {
	snapshot := fixture(
		entry.Entry{ID: "b", Title: "banana", Status: entry.StatusInProgress},
		entry.Entry{ID: "A", Title: "Apple", Status: entry.StatusInProgress},
		entry.Entry{ID: "c", Title: "cherry", Status: entry.StatusInProgress},
	)
	state := view.DefaultState(view.KindOverview)
	state.Sort = view.SortTitleAsc
	if got := ids(mustProject(t, snapshot, state).Entries); !slices.Equal(got, []string{"A", "b", "c"}) {
		t.Fatalf("title-asc = %v", got)
	}
	state.Sort = view.SortTitleDesc
	if got := ids(mustProject(t, snapshot, state).Entries); !slices.Equal(got, []string{"c", "b", "A"}) {
		t.Fatalf("title-desc = %v", got)
	}
}

func TestHypeSortTreatsMissingAsZero(t *testing.T) {
	snapshot := fixture(
		entry.Entry{ID: "none", Status: entry.StatusPending},
		entry.Entry{ID: "five", Status: entry.StatusPending, HypeRating: 5},
		entry.Entry{ID: "nine", Status: entry.StatusPending, HypeRating: 9},
	)
	state := view.DefaultState(view.KindPending)
	state.Sort = view.SortHypeRatingAsc
	if got := ids(mustProject(t, snapshot, state).Entries); !slices.Equal(got, []string{"none", "five", "nine"}) {
		t.Fatalf("hyperating-asc = %v", got)
	}
	state.Sort = view.SortHypeRatingDesc
	if got := ids(mustProject(t, snapshot, state).Entries); !slices.Equal(got, []string{"nine", "five", "none"}) {
		t.Fatalf("hyperating-desc = %v", got)
	}
}

func TestCreatedAscAndInputOrderIgnored(t *testing.T) {
	snapshot := sampleCollection()
	reversed := slices.Clone(snapshot)
	slices.Reverse(reversed)

	state := view.DefaultState(view.KindOverview)
	a := mustProject(t, snapshot, state)
	b := mustProject(t, reversed, state)
	if !slices.Equal(ids(a.Entries), ids(b.Entries)) {
		t.Fatalf("input order leaked: %v vs %v", ids(a.Entries), ids(b.Entries))
	}

	state.Sort = view.SortCreatedAsc
	got := ids(mustProject(t, snapshot, state).Entries)
	want := []string{"Blade Runner", "Hades", "Attention Is All You Need", "Severance", "Alien"}
	if !slices.Equal(got, want) {
		t.Fatalf("created-asc = %v, want %v", got, want)
	}
}

func TestProjectIsIdempotentAndPure(t *testing.T) {
	snapshot := sampleCollection()
	before := slices.Clone(snapshot)
	state := view.State{Kind: view.KindOverview, Sort: view.SortRatingDesc, Search: "a"}

	first := mustProject(t, snapshot, state)
	second := mustProject(t, snapshot, state)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("projection is not idempotent")
	}
	if !reflect.DeepEqual(before, snapshot) {
		t.Fatal("projection mutated its input")
	}
}

func TestStateNormalize(t *testing.T) {
	st, err := view.State{}.Normalize()
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if st != view.DefaultState(view.KindOverview) {
		t.Fatalf("normalized = %#v", st)
	}

	pending, err := view.State{Kind: view.KindPending, Status: view.StatusCompleted}.Normalize()
	if err != nil || pending.Status != view.StatusAll {
		t.Fatalf("pending status filter = %#v, %v", pending, err)
	}

	bad := []view.State{
		{Kind: "timeline"},
		{Kind: view.KindPending, Sort: view.SortRatingDesc},
		{Kind: view.KindOverview, Sort: view.SortHypeRatingDesc},
		{Kind: view.KindOverview, Status: "abandoned"},
		{Kind: view.KindOverview, Type: "podcast"},
	}
	for _, s := range bad {
		if _, err := view.Project(nil, s); err == nil {
			t.Fatalf("expected error for %#v", s)
		}
	}
}
