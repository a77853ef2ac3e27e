package view

import (
	"math"

	"mediadiary/internal/entry"
)

// Stats aggregates a collection snapshot.
type Stats struct {
	Total         int                     `json:"total"`
	ByType        map[entry.MediaType]int `json:"byType"`
	ByStatus      map[entry.Status]int    `json:"byStatus"`
	ActiveByType  map[entry.MediaType]int `json:"activeByType"`
	Pending       int                     `json:"pending"`
	InProgress    int                     `json:"inProgress"`
	Completed     int                     `json:"completed"`
	AverageRating float64                 `json:"averageRating"`
	RatedCount    int                     `json:"ratedCount"`
}

// ComputeStats counts entries by type and status and averages the numeric
// ratings of completed entries, rounded to one decimal. The not-rated
// sentinel is excluded from the average. ActiveByType counts non-pending
// entries per type.
func ComputeStats(entries []entry.Entry) Stats {
	stats := Stats{
		Total:        len(entries),
		ByType:       make(map[entry.MediaType]int),
		ByStatus:     make(map[entry.Status]int),
		ActiveByType: make(map[entry.MediaType]int),
	}
	var sum int
	for _, e := range entries {
		stats.ByType[e.Type]++
		stats.ByStatus[e.Status]++
		switch {
		case e.Status.IsPending():
			stats.Pending++
		case e.Status.IsInProgress():
			stats.InProgress++
		case e.Status.IsCompleted():
			stats.Completed++
			if v, ok := e.Rating.Value(); ok {
				sum += v
				stats.RatedCount++
			}
		}
		if !e.Status.IsPending() {
			stats.ActiveByType[e.Type]++
		}
	}
	if stats.RatedCount > 0 {
		avg := float64(sum) / float64(stats.RatedCount)
		stats.AverageRating = math.Round(avg*10) / 10
	}
	return stats
}
