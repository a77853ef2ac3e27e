package collection

import "mediadiary/internal/entry"

// Patch enumerates every field an edit may change. Nil pointers leave the field
// untouched; pointers to empty strings clear it. A non-nil Metadata replaces
// the stored metadata wholesale.
type Patch struct {
	Title      *string
	Type       *string
	Author     *string
	StartDate  *string
	FinishDate *string
	Rating     *string
	HypeRating *string
	Notes      *string
	Tags       *string
	CoverURL   *string
	Metadata   map[string]any
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Type == nil && p.Author == nil &&
		p.StartDate == nil && p.FinishDate == nil && p.Rating == nil &&
		p.HypeRating == nil && p.Notes == nil && p.Tags == nil &&
		p.CoverURL == nil && p.Metadata == nil
}

func (p Patch) applyTo(c *entry.Candidate) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.Title, p.Title)
	set(&c.Type, p.Type)
	set(&c.Author, p.Author)
	set(&c.StartDate, p.StartDate)
	set(&c.FinishDate, p.FinishDate)
	set(&c.Rating, p.Rating)
	set(&c.HypeRating, p.HypeRating)
	set(&c.Notes, p.Notes)
	set(&c.Tags, p.Tags)
	set(&c.CoverURL, p.CoverURL)
	if p.Metadata != nil {
		c.Metadata = entry.CloneMetadata(p.Metadata)
	}
}

// String returns a pointer to s, for building patches.
func String(s string) *string {
	return &s
}
