package tickers

import "strings"

// Parse splits free-form ticker text on commas and newlines, trims and
// upper-cases each token, and drops empty tokens. Duplicates are kept;
// each one becomes an independent lookup downstream.
func Parse(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.ToUpper(strings.TrimSpace(f))
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
