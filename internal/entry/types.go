package entry

import "strings"

// MediaType identifies the kind of media an entry tracks.
type MediaType string

const (
	TypeVideoGame MediaType = "videogame"
	TypeFilm      MediaType = "film"
	TypeSeries    MediaType = "series"
	TypeBook      MediaType = "book"
	TypePaper     MediaType = "paper"
)

var allMediaTypes = []MediaType{
	TypeVideoGame,
	TypeFilm,
	TypeSeries,
	TypeBook,
	TypePaper,
}

var mediaTypeSet = func() map[MediaType]struct{} {
	set := make(map[MediaType]struct{}, len(allMediaTypes))
	for _, t := range allMediaTypes {
		set[t] = struct{}{}
	}
	return set
}()

// AllMediaTypes returns the ordered list of known media types.
func AllMediaTypes() []MediaType {
	out := make([]MediaType, len(allMediaTypes))
	copy(out, allMediaTypes)
	return out
}

// ParseMediaType converts a string into a MediaType, ignoring case and
// surrounding whitespace.
func ParseMediaType(value string) (MediaType, bool) {
	normalized := MediaType(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := mediaTypeSet[normalized]; ok {
		return normalized, true
	}
	return "", false
}

// Label returns a human readable name for the media type.
func (t MediaType) Label() string {
	switch t {
	case TypeVideoGame:
		return "Video game"
	case TypeFilm:
		return "Film"
	case TypeSeries:
		return "Series"
	case TypeBook:
		return "Book"
	case TypePaper:
		return "Paper"
	default:
		return string(t)
	}
}
