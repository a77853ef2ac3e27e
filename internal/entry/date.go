package entry

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar format used for storage and display.
const DateLayout = "2006-01-02"

// Date is a calendar day without a time of day. The zero value means absent.
type Date struct {
	t time.Time
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp. Empty input yields the
// zero Date.
func ParseDate(raw string) (Date, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(DateLayout, trimmed); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return DateOf(t.UTC()), nil
	}
	return Date{}, fmt.Errorf("invalid date %q", raw)
}

// IsZero reports whether the date is absent.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// Compare returns -1, 0, or +1 ordering d against other.
func (d Date) Compare(other Date) int {
	return d.t.Compare(other.t)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return d.t
}

// String formats the date as YYYY-MM-DD, or empty when absent.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
