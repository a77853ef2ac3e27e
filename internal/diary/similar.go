package diary

import (
	"cmp"
	"slices"

	"mediadiary/internal/entry"
	"mediadiary/internal/textutil"
)

// similarityThreshold is the minimum title score reported by Similar.
const similarityThreshold = 0.8

// Match is an existing entry whose title resembles another.
type Match struct {
	Entry entry.Entry `json:"entry"`
	Score float64     `json:"score"`
}

// Similar returns entries of the same type whose titles score at or above
// the similarity threshold against e, best match first. e itself is skipped.
func (d *Diary) Similar(e entry.Entry) []Match {
	target := textutil.NewFingerprint(e.Title)
	if target == nil {
		return nil
	}
	var matches []Match
	for _, other := range d.store.All() {
		if other.ID == e.ID || other.Type != e.Type {
			continue
		}
		score := textutil.CosineSimilarity(target, textutil.NewFingerprint(other.Title))
		if score >= similarityThreshold {
			matches = append(matches, Match{Entry: other, Score: score})
		}
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return matches
}
