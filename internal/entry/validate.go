package entry

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind selects the rule set Validate applies.
type Kind int

const (
	// KindActive validates a new entry created through the active flow.
	KindActive Kind = iota
	// KindPending validates a new entry created through the pending flow.
	KindPending
	// KindUpdate validates the merged result of an edit.
	KindUpdate
)

func (k Kind) String() string {
	switch k {
	case KindActive:
		return "new-active"
	case KindPending:
		return "new-pending"
	case KindUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Intent is the status a user asked for when creating an active entry. It is
// checked against the supplied dates; the stored status is always derived.
type Intent string

const (
	IntentNone         Intent = ""
	IntentInProgress   Intent = "in-progress"
	IntentCompleted    Intent = "completed"
	IntentUnknownDates Intent = "unknown-dates"
)

// Validation messages. They are user facing and reported verbatim.
const (
	MsgTitleRequired        = "Title is required"
	MsgTypeRequired         = "Type is required"
	MsgInvalidType          = "Invalid content type"
	MsgInvalidStatus        = "Invalid status"
	MsgCompletedNeedsDate   = "Completed items need at least a finish date or both dates"
	MsgUnknownDatesHasDates = "Unknown-dates items should not have start or finish dates"
	MsgPendingHasDates      = "Pending items should not have start or finish dates"
	MsgInvalidStartDate     = "Invalid start date"
	MsgInvalidFinishDate    = "Invalid finish date"
	MsgFinishBeforeStart    = "Finish date cannot be before start date"
	MsgRatingRange          = "Rating must be between 1 and 10"
	MsgHypeRatingRange      = "Hype rating must be between 1 and 10"
	MsgTooManyTags          = "Maximum 20 tags allowed"
	MsgTagTooLong           = "Tags must be 50 characters or less"
	MsgInvalidCoverURL      = "Cover URL must be an http or https URL"
)

// Candidate is the raw, user supplied form of an entry. Every field is text so
// parse failures can be reported alongside rule violations.
type Candidate struct {
	Title      string
	Type       string
	Author     string
	StartDate  string
	FinishDate string
	Rating     string
	HypeRating string
	Notes      string
	Tags       string
	CoverURL   string
	Metadata   map[string]any
	Intent     string
}

// CandidateFrom renders an entry back into candidate form so edits can be
// validated against the merged result.
func CandidateFrom(e Entry) Candidate {
	c := Candidate{
		Title:      e.Title,
		Type:       string(e.Type),
		Author:     e.Author,
		StartDate:  e.StartDate.String(),
		FinishDate: e.FinishDate.String(),
		Rating:     e.Rating.String(),
		Notes:      e.Notes,
		Tags:       JoinTags(e.Tags),
		CoverURL:   e.CoverURL,
		Metadata:   CloneMetadata(e.Metadata),
	}
	if e.HypeRating > 0 {
		c.HypeRating = strconv.Itoa(e.HypeRating)
	}
	return c
}

// Fields holds the parsed values of a valid candidate.
type Fields struct {
	Title      string
	Type       MediaType
	Author     string
	StartDate  Date
	FinishDate Date
	Rating     Rating
	HypeRating int
	Notes      string
	Tags       []string
	CoverURL   string
	Metadata   map[string]any
	Intent     Intent
}

// Validation is the outcome of Validate. Fields is only meaningful when Valid
// returns true.
type Validation struct {
	Errors []string
	Fields Fields
}

// Valid reports whether no rule was violated.
func (v Validation) Valid() bool {
	return len(v.Errors) == 0
}

// Err returns a *ValidationError carrying every message, or nil when valid.
func (v Validation) Err() error {
	if v.Valid() {
		return nil
	}
	return &ValidationError{Errors: append([]string(nil), v.Errors...)}
}

// Validate checks a candidate against the rules for kind. It has no side
// effects and reports every violated rule.
func Validate(c Candidate, kind Kind) Validation {
	var (
		errs   []string
		fields Fields
	)

	fields.Title = strings.TrimSpace(c.Title)
	if fields.Title == "" {
		errs = append(errs, MsgTitleRequired)
	}

	if strings.TrimSpace(c.Type) == "" {
		errs = append(errs, MsgTypeRequired)
	} else if t, ok := ParseMediaType(c.Type); ok {
		fields.Type = t
	} else {
		errs = append(errs, MsgInvalidType)
	}

	start, startErr := ParseDate(c.StartDate)
	if startErr != nil {
		errs = append(errs, MsgInvalidStartDate)
	}
	finish, finishErr := ParseDate(c.FinishDate)
	if finishErr != nil {
		errs = append(errs, MsgInvalidFinishDate)
	}
	if startErr == nil && finishErr == nil && !start.IsZero() && !finish.IsZero() && finish.Before(start) {
		errs = append(errs, MsgFinishBeforeStart)
	}
	fields.StartDate, fields.FinishDate = start, finish
	hasDates := strings.TrimSpace(c.StartDate) != "" || strings.TrimSpace(c.FinishDate) != ""

	switch kind {
	case KindActive:
		intent := Intent(strings.ToLower(strings.TrimSpace(c.Intent)))
		switch intent {
		case IntentNone, IntentInProgress:
		case IntentCompleted:
			if !hasDates {
				errs = append(errs, MsgCompletedNeedsDate)
			}
		case IntentUnknownDates:
			if hasDates {
				errs = append(errs, MsgUnknownDatesHasDates)
			}
		default:
			errs = append(errs, MsgInvalidStatus)
		}
		fields.Intent = intent
	case KindPending:
		if hasDates {
			errs = append(errs, MsgPendingHasDates)
		}
	}

	// Pending entries carry only a hype rating; a rating is still checked.
	rating, err := ParseRating(c.Rating)
	if err != nil {
		errs = append(errs, MsgRatingRange)
	}
	if kind != KindPending {
		fields.Rating = rating
	}

	hype, err := ParseHypeRating(c.HypeRating)
	if err != nil {
		errs = append(errs, MsgHypeRatingRange)
	}
	fields.HypeRating = hype

	fields.Tags = ParseTags(c.Tags)
	if len(fields.Tags) > MaxTags {
		errs = append(errs, MsgTooManyTags)
	}
	for _, tag := range fields.Tags {
		if utf8.RuneCountInString(tag) > MaxTagLength {
			errs = append(errs, MsgTagTooLong)
			break
		}
	}

	fields.CoverURL = strings.TrimSpace(c.CoverURL)
	if fields.CoverURL != "" && !isHTTPURL(fields.CoverURL) {
		errs = append(errs, MsgInvalidCoverURL)
	}

	fields.Author = strings.TrimSpace(c.Author)
	fields.Notes = strings.TrimSpace(c.Notes)
	fields.Metadata = CloneMetadata(c.Metadata)

	return Validation{Errors: errs, Fields: fields}
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
