package main

import (
	"encoding/json"
	"io"
)

// writeJSON encodes v as indented JSON. HTML escaping is off so titles and
// cover URLs containing & < > print as typed.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
