package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// destinationKeywords maps every recognised keyword onto its destination.
var destinationKeywords = map[string]Destination{
	"person":     DestinationPeople,
	"people":     DestinationPeople,
	"project":    DestinationProjects,
	"projects":   DestinationProjects,
	"idea":       DestinationIdeas,
	"ideas":      DestinationIdeas,
	"admin":      DestinationAdmin,
	"vocab":      DestinationVocabulary,
	"vocabulary": DestinationVocabulary,
	"word":       DestinationVocabulary,
}

// OverrideKeywords is the short keyword list shown to users, one per destination.
var OverrideKeywords = []string{"person", "project", "idea", "admin", "vocab"}

var (
	prefixPattern     = regexp.MustCompile(`(?i)^\s*(person|people|projects?|ideas?|admin|vocab|vocabulary|word):\s*`)
	correctionPattern = regexp.MustCompile(`(?i)^\s*fix:\s*(.*)$`)
)

// DeleteKeywords are correction targets that soft-delete the log entry.
var DeleteKeywords = []string{"delete", "remove"}

// ResolveDestination maps a keyword (case-insensitive) onto a destination.
func ResolveDestination(keyword string) (Destination, error) {
	d, ok := destinationKeywords[strings.ToLower(strings.TrimSpace(keyword))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDestination, keyword)
	}
	return d, nil
}

// ParseDestinationPrefix detects a "<keyword>:" prefix. It returns the forced
// destination and the text after the prefix.
func ParseDestinationPrefix(text string) (Destination, string, bool) {
	m := prefixPattern.FindStringSubmatchIndex(text)
	if m == nil {
		return "", text, false
	}
	keyword := text[m[2]:m[3]]
	d, err := ResolveDestination(keyword)
	if err != nil {
		return "", text, false
	}
	return d, strings.TrimSpace(text[m[1]:]), true
}

// ParseCorrection recognises a "fix: <target>" command and returns the
// lower-cased target token.
func ParseCorrection(text string) (string, bool) {
	m := correctionPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	target := strings.ToLower(strings.TrimSpace(m[1]))
	if fields := strings.Fields(target); len(fields) > 0 {
		target = fields[0]
	}
	return target, true
}

// IsDeleteKeyword reports whether a correction target asks for deletion.
func IsDeleteKeyword(target string) bool {
	for _, k := range DeleteKeywords {
		if strings.EqualFold(target, k) {
			return true
		}
	}
	return false
}

// WithPrefix renders text so that ParseDestinationPrefix forces d.
func WithPrefix(d Destination, text string) string {
	return d.String() + ": " + text
}
