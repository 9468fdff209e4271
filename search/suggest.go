// ABOUTME: Keyword suggestions for the search box
// ABOUTME: Draws from contact names, note words, tags and categories; at most five, never the query itself
package search

import (
	"strings"

	"github.com/harperreed/callbook/models"
)

const (
	MaxSuggestions = 5
	// MinSuggestRunes is the shortest query that produces suggestions.
	MinSuggestRunes = 2
)

// Suggest returns up to five distinct candidates containing query. Contact
// names come first, then lowercased words from note bodies, then tags, then
// categories. A candidate equal to the query is skipped.
func Suggest(query string, contacts []models.Contact, notes []models.CallNote) []string {
	q := foldQuery(query)
	if len(q) < MinSuggestRunes {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	offer := func(candidate string) bool {
		f := fold(strings.TrimSpace(candidate))
		if len(f.orig) == 0 || !f.contains(q) || f.equals(q) {
			return false
		}
		key := string(f.lower)
		if seen[key] {
			return false
		}
		seen[key] = true
		out = append(out, f.String())
		return len(out) == MaxSuggestions
	}

	for _, c := range contacts {
		if offer(c.Name) {
			return out
		}
	}
	for _, n := range notes {
		for _, w := range words(n.Note) {
			if offer(strings.ToLower(w)) {
				return out
			}
		}
	}
	for _, n := range notes {
		for _, tag := range n.Tags {
			if offer(tag) {
				return out
			}
		}
	}
	for _, n := range notes {
		if offer(n.Category) {
			return out
		}
	}
	return out
}
