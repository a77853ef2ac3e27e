package csvio

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"mediadiary/internal/entry"
)

// Column names in file order.
const (
	ColID         = "id"
	ColTitle      = "title"
	ColType       = "type"
	ColAuthor     = "author"
	ColStartDate  = "startdate"
	ColFinishDate = "finishdate"
	ColRating     = "rating"
	ColNotes      = "notes"
	ColCoverURL   = "coverurl"
	ColMetadata   = "metadata"
	ColCreatedAt  = "createdat"
	ColStatus     = "status"
	ColTags       = "tags"
	ColHypeRating = "hyperating"
)

// Header is the column order written by Encode.
var Header = []string{
	ColID, ColTitle, ColType, ColAuthor, ColStartDate, ColFinishDate, ColRating,
	ColNotes, ColCoverURL, ColMetadata, ColCreatedAt, ColStatus, ColTags, ColHypeRating,
}

// ErrFormat marks files whose structure cannot be read at all.
var ErrFormat = errors.New("invalid csv format")

// RowError describes a rejected row.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Result holds the decoded rows and the rows that were skipped.
type Result struct {
	Entries []entry.Entry
	Skipped []RowError
}

// Encode writes the header and one row per entry.
func Encode(w io.Writer, entries []entry.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range entries {
		record, err := encodeRow(e)
		if err != nil {
			return err
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write entry %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func encodeRow(e entry.Entry) ([]string, error) {
	metadata, err := encodeMetadata(e.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encode metadata for %s: %w", e.ID, err)
	}
	hype := ""
	if e.HypeRating > 0 {
		hype = strconv.Itoa(e.HypeRating)
	}
	created := ""
	if !e.CreatedAt.IsZero() {
		created = e.CreatedAt.UTC().Format(time.RFC3339)
	}
	return []string{
		e.ID,
		e.Title,
		string(e.Type),
		e.Author,
		e.StartDate.String(),
		e.FinishDate.String(),
		e.Rating.String(),
		e.Notes,
		e.CoverURL,
		metadata,
		created,
		string(e.Status),
		entry.JoinTags(e.Tags),
		hype,
	}, nil
}

func encodeMetadata(meta map[string]any) (string, error) {
	if len(meta) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Decode reads a CSV file produced by Encode or a compatible tool. Rows that
// fail validation are reported in Result.Skipped; a missing column or an
// unreadable file is returned as an error wrapping ErrFormat.
func Decode(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Result{}, fmt.Errorf("%w: empty file", ErrFormat)
		}
		return Result{}, fmt.Errorf("%w: read header: %v", ErrFormat, err)
	}
	columns, err := indexHeader(header)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.Skipped = append(result.Skipped, RowError{Line: parseErr.StartLine, Err: parseErr.Err})
				continue
			}
			return result, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		line, _ := cr.FieldPos(0)
		e, err := decodeRow(columns.row(record))
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Err: err})
			continue
		}
		result.Entries = append(result.Entries, e)
	}
	return result, nil
}

type columnIndex map[string]int

func indexHeader(header []string) (columnIndex, error) {
	columns := make(columnIndex, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	var missing []string
	for _, name := range Header {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrFormat, strings.Join(missing, ", "))
	}
	return columns, nil
}

// row maps a record onto column names. Short records read as empty trailing
// fields.
func (c columnIndex) row(record []string) map[string]string {
	out := make(map[string]string, len(Header))
	for _, name := range Header {
		if idx := c[name]; idx < len(record) {
			out[name] = record[idx]
		}
	}
	return out
}

func decodeRow(row map[string]string) (entry.Entry, error) {
	var metadata map[string]any
	if raw := strings.TrimSpace(row[ColMetadata]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
			return entry.Entry{}, fmt.Errorf("metadata: %w", err)
		}
	}

	candidate := entry.Candidate{
		Title:      row[ColTitle],
		Type:       row[ColType],
		Author:     row[ColAuthor],
		StartDate:  row[ColStartDate],
		FinishDate: row[ColFinishDate],
		Rating:     row[ColRating],
		HypeRating: row[ColHypeRating],
		Notes:      row[ColNotes],
		Tags:       row[ColTags],
		CoverURL:   row[ColCoverURL],
		Metadata:   metadata,
	}
	v := entry.Validate(candidate, entry.KindUpdate)
	if !v.Valid() {
		return entry.Entry{}, v.Err()
	}

	var createdAt time.Time
	if raw := strings.TrimSpace(row[ColCreatedAt]); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return entry.Entry{}, fmt.Errorf("createdat: %w", err)
		}
		createdAt = parsed.UTC()
	}

	status, _ := entry.ParseStatus(row[ColStatus])
	f := v.Fields
	e := entry.Entry{
		ID:         strings.TrimSpace(row[ColID]),
		Title:      f.Title,
		Type:       f.Type,
		Author:     f.Author,
		StartDate:  f.StartDate,
		FinishDate: f.FinishDate,
		Rating:     f.Rating,
		HypeRating: f.HypeRating,
		Notes:      f.Notes,
		Tags:       f.Tags,
		CoverURL:   f.CoverURL,
		Metadata:   f.Metadata,
		CreatedAt:  createdAt,
		Status:     status,
	}
	return entry.Repair(e), nil
}
