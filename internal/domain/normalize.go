package domain

import (
	"strings"
)

// NormalizeText folds a search term: surrounding whitespace is trimmed, the
// text is lowercased and runs of spaces collapse to one. Diacritics, hyphens
// and apostrophes are kept.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	// Compress multiple spaces into one.
	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
