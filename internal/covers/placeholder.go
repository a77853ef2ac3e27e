package covers

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mediadiary/internal/config"
	"mediadiary/internal/entry"
)

const (
	maxTitleRunes  = 30
	fallbackColor  = "6b7280"
	textColor      = "ffffff"
	defaultBaseURL = "https://placehold.co"
	defaultWidth   = 300
	defaultHeight  = 450
)

var typeColors = map[entry.MediaType]string{
	entry.TypeVideoGame: "3b82f6",
	entry.TypeFilm:      "ef4444",
	entry.TypeSeries:    "06b6d4",
	entry.TypeBook:      "8b5cf6",
	entry.TypePaper:     "10b981",
}

// Color returns the background colour used for a media type.
func Color(t entry.MediaType) string {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return fallbackColor
}

// Generator renders placeholder URLs against a configurable image service.
type Generator struct {
	BaseURL string
	Width   int
	Height  int
}

// NewGenerator builds a generator from the covers configuration section.
func NewGenerator(cfg config.Covers) Generator {
	g := Generator{BaseURL: cfg.PlaceholderBaseURL, Width: cfg.Width, Height: cfg.Height}
	if g.BaseURL == "" {
		g.BaseURL = defaultBaseURL
	}
	if g.Width <= 0 {
		g.Width = defaultWidth
	}
	if g.Height <= 0 {
		g.Height = defaultHeight
	}
	return g
}

// Placeholder returns the placeholder image URL for a title.
func (g Generator) Placeholder(title string, t entry.MediaType) string {
	return fmt.Sprintf("%s/%dx%d/%s/%s?text=%s",
		strings.TrimRight(g.BaseURL, "/"), g.Width, g.Height, Color(t), textColor, placeholderText(title))
}

// Resolve returns the entry's own cover, or a placeholder when it has none.
func (g Generator) Resolve(e entry.Entry) string {
	if strings.TrimSpace(e.CoverURL) != "" {
		return e.CoverURL
	}
	return g.Placeholder(e.Title, e.Type)
}

var defaultGenerator = Generator{BaseURL: defaultBaseURL, Width: defaultWidth, Height: defaultHeight}

// Placeholder renders a placeholder URL against placehold.co at 300x450.
func Placeholder(title string, t entry.MediaType) string {
	return defaultGenerator.Placeholder(title, t)
}

// Resolve returns the entry's cover or the default placeholder.
func Resolve(e entry.Entry) string {
	return defaultGenerator.Resolve(e)
}

func placeholderText(title string) string {
	runes := []rune(title)
	if len(runes) > maxTitleRunes {
		runes = runes[:maxTitleRunes]
	}
	upper := cases.Upper(language.Und).String(string(runes))
	return escapeComponent(upper)
}

// componentUnescapes restores the characters URI components leave bare but
// QueryEscape encodes.
var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}
