package entry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinRating and MaxRating bound both outcome and hype ratings.
	MinRating = 1
	MaxRating = 10

	// NotRatedToken is the storage form of the "not rated" sentinel.
	NotRatedToken = "N/A"
)

// ErrRatingRange reports a rating outside MinRating..MaxRating.
var ErrRatingRange = errors.New("rating out of range")

type ratingKind uint8

const (
	ratingUnset ratingKind = iota
	ratingNotRated
	ratingValue
)

// Rating is the outcome score of a completed entry. The zero value is unset.
// NotRated records that the user finished the entry without scoring it.
type Rating struct {
	kind  ratingKind
	value int
}

// NotRated returns the "not rated" sentinel.
func NotRated() Rating {
	return Rating{kind: ratingNotRated}
}

// RatingOf returns a numeric rating. Zero yields an unset rating.
func RatingOf(value int) (Rating, error) {
	if value == 0 {
		return Rating{}, nil
	}
	if value < MinRating || value > MaxRating {
		return Rating{}, fmt.Errorf("%w: %d", ErrRatingRange, value)
	}
	return Rating{kind: ratingValue, value: value}, nil
}

// MustRating is RatingOf for constant values known to be valid.
func MustRating(value int) Rating {
	r, err := RatingOf(value)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseRating converts the storage or user form of a rating. Empty strings and
// "0" are unset, "N/A" (any case) is the not-rated sentinel.
func ParseRating(raw string) (Rating, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Rating{}, nil
	}
	if strings.EqualFold(trimmed, NotRatedToken) {
		return NotRated(), nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return Rating{}, fmt.Errorf("parse rating %q: %w", raw, err)
	}
	return RatingOf(n)
}

// IsSet reports whether the rating is either numeric or the not-rated sentinel.
func (r Rating) IsSet() bool {
	return r.kind != ratingUnset
}

// IsNotRated reports whether the rating is the not-rated sentinel.
func (r Rating) IsNotRated() bool {
	return r.kind == ratingNotRated
}

// Value returns the numeric score and whether one is present.
func (r Rating) Value() (int, bool) {
	if r.kind != ratingValue {
		return 0, false
	}
	return r.value, true
}

// String returns the storage form: empty, "N/A", or the number.
func (r Rating) String() string {
	switch r.kind {
	case ratingNotRated:
		return NotRatedToken
	case ratingValue:
		return strconv.Itoa(r.value)
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(text []byte) error {
	parsed, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseHypeRating converts a hype rating. Empty input is unset (0); any other
// value must fall within MinRating..MaxRating.
func ParseHypeRating(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse hype rating %q: %w", raw, err)
	}
	if n < MinRating || n > MaxRating {
		return 0, fmt.Errorf("%w: %d", ErrRatingRange, n)
	}
	return n, nil
}
