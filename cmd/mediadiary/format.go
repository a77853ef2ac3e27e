package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"mediadiary/internal/entry"
)

const shortIDLength = 8

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatRating(r entry.Rating) string {
	if v, ok := r.Value(); ok {
		return strconv.Itoa(v) + "/10"
	}
	if r.IsNotRated() {
		return entry.NotRatedToken
	}
	return "-"
}

func formatHype(hype int) string {
	if hype <= 0 {
		return "-"
	}
	return strconv.Itoa(hype) + "/10"
}

func formatAdded(createdAt, now time.Time) string {
	if createdAt.IsZero() {
		return "-"
	}
	return humanize.RelTime(createdAt, now, "ago", "from now")
}
