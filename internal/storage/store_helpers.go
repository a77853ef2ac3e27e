package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"mediadiary/internal/entry"
)

const entryColumns = "id, title, type, author, start_date, finish_date, rating, hype_rating, notes, tags, cover_url, metadata_json, created_at, status"

// timestampLayout is fixed width so created_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, raw)
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (entry.Entry, error) {
	var (
		id         string
		title      string
		typeRaw    string
		author     sql.NullString
		startRaw   sql.NullString
		finishRaw  sql.NullString
		ratingRaw  sql.NullString
		hype       sql.NullInt64
		notes      sql.NullString
		tags       sql.NullString
		coverURL   sql.NullString
		metadata   sql.NullString
		createdRaw string
		statusRaw  string
	)

	if err := scanner.Scan(
		&id,
		&title,
		&typeRaw,
		&author,
		&startRaw,
		&finishRaw,
		&ratingRaw,
		&hype,
		&notes,
		&tags,
		&coverURL,
		&metadata,
		&createdRaw,
		&statusRaw,
	); err != nil {
		return entry.Entry{}, err
	}

	mediaType, ok := entry.ParseMediaType(typeRaw)
	if !ok {
		return entry.Entry{}, fmt.Errorf("entry %s: unknown type %q", id, typeRaw)
	}
	start, err := entry.ParseDate(startRaw.String)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("entry %s: start date: %w", id, err)
	}
	finish, err := entry.ParseDate(finishRaw.String)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("entry %s: finish date: %w", id, err)
	}
	rating, err := entry.ParseRating(ratingRaw.String)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("entry %s: rating: %w", id, err)
	}
	createdAt, err := parseTimestamp(createdRaw)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("entry %s: created_at: %w", id, err)
	}
	var meta map[string]any
	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &meta); err != nil {
			return entry.Entry{}, fmt.Errorf("entry %s: metadata: %w", id, err)
		}
	}

	e := entry.Entry{
		ID:         id,
		Title:      title,
		Type:       mediaType,
		Author:     author.String,
		StartDate:  start,
		FinishDate: finish,
		Rating:     rating,
		HypeRating: int(hype.Int64),
		Notes:      notes.String,
		Tags:       entry.ParseTags(tags.String),
		CoverURL:   coverURL.String,
		Metadata:   meta,
		CreatedAt:  createdAt,
		Status:     entry.Status(statusRaw),
	}
	return entry.Repair(e), nil
}

func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func nullableInt(value int) sql.NullInt64 {
	if value == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(value), Valid: true}
}

func entryArgs(e entry.Entry) ([]any, error) {
	var metadata sql.NullString
	if len(e.Metadata) > 0 {
		data, err := json.Marshal(e.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encode metadata for %s: %w", e.ID, err)
		}
		metadata = sql.NullString{String: string(data), Valid: true}
	}
	return []any{
		e.ID,
		e.Title,
		string(e.Type),
		nullableString(e.Author),
		nullableString(e.StartDate.String()),
		nullableString(e.FinishDate.String()),
		nullableString(e.Rating.String()),
		nullableInt(e.HypeRating),
		nullableString(e.Notes),
		nullableString(entry.JoinTags(e.Tags)),
		nullableString(e.CoverURL),
		metadata,
		formatTimestamp(e.CreatedAt),
		string(e.Status),
	}, nil
}
