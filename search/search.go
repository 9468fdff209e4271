// ABOUTME: Free-text note search with one ranked match per note
// ABOUTME: Contact name beats body, body beats tags, tags beat category; results capped at ten
package search

import "github.com/harperreed/callbook/models"

type MatchType string

const (
	MatchContact  MatchType = "contact"
	MatchContent  MatchType = "content"
	MatchTag      MatchType = "tag"
	MatchCategory MatchType = "category"
)

const (
	// MaxResults caps Search output.
	MaxResults = 10
	// ContextRunes is how much body text is kept on each side of a content match.
	ContextRunes = 20
)

// Result is one note match. HighlightStart and HighlightEnd are rune offsets
// into MatchText.
type Result struct {
	Note           models.CallNote `json:"note"`
	MatchType      MatchType       `json:"matchType"`
	MatchText      string          `json:"matchText"`
	HighlightStart int             `json:"highlightStart"`
	HighlightEnd   int             `json:"highlightEnd"`
}

// Search finds notes containing query, case-insensitively, in input order.
func Search(notes []models.CallNote, query string) []Result {
	q := foldQuery(query)
	if len(q) == 0 {
		return nil
	}

	var results []Result
	for _, n := range notes {
		if r, ok := match(n, q); ok {
			results = append(results, r)
			if len(results) == MaxResults {
				break
			}
		}
	}
	return results
}

func match(n models.CallNote, q []rune) (Result, bool) {
	if name := fold(n.ContactName); name.contains(q) {
		return whole(n, MatchContact, name, q), true
	}

	body := fold(n.Note)
	if i := body.index(q); i >= 0 {
		start := max(0, i-ContextRunes)
		end := min(len(body.orig), i+len(q)+ContextRunes)
		return Result{
			Note:           n,
			MatchType:      MatchContent,
			MatchText:      string(body.orig[start:end]),
			HighlightStart: i - start,
			HighlightEnd:   i - start + len(q),
		}, true
	}

	for _, tag := range n.Tags {
		if t := fold(tag); t.contains(q) {
			return whole(n, MatchTag, t, q), true
		}
	}

	if c := fold(n.Category); c.contains(q) {
		return whole(n, MatchCategory, c, q), true
	}
	return Result{}, false
}

func whole(n models.CallNote, kind MatchType, text folded, q []rune) Result {
	i := text.index(q)
	return Result{
		Note:           n,
		MatchType:      kind,
		MatchText:      text.String(),
		HighlightStart: i,
		HighlightEnd:   i + len(q),
	}
}
