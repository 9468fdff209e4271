// ABOUTME: Tests for search, suggestions and the combined filter
// ABOUTME: Covers match priority, context windows, result caps and phone matching
package search

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/harperreed/callbook/models"
)

func TestContentMatchHighlightsQuery(t *testing.T) {
	notes := []models.CallNote{{ID: "n1", ContactName: "Ann", Note: "Call back at 3pm, tag: urgent", Tags: []string{"urgent"}}}

	results := Search(notes, "back")
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, MatchContent, r.MatchType)
	assert.Equal(t, 5, r.HighlightStart)
	assert.Equal(t, 9, r.HighlightEnd)
	assert.Equal(t, "back", string([]rune(r.MatchText)[r.HighlightStart:r.HighlightEnd]))
	assert.LessOrEqual(t, r.HighlightStart, ContextRunes)
	assert.LessOrEqual(t, utf8.RuneCountInString(r.MatchText)-r.HighlightEnd, ContextRunes)
}

func TestContentWindowTrimsLongBodies(t *testing.T) {
	body := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa needle bbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	results := Search([]models.CallNote{{ID: "n1", Note: body}}, "NEEDLE")
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, ContextRunes, r.HighlightStart)
	assert.Equal(t, ContextRunes+6, r.HighlightEnd)
	assert.Equal(t, ContextRunes*2+6, utf8.RuneCountInString(r.MatchText))
}

func TestMatchPriority(t *testing.T) {
	notes := []models.CallNote{
		{ID: "contact", ContactName: "Urgent Care", Tags: []string{"urgent"}},
		{ID: "tag", ContactName: "Bo", Note: "nothing", Tags: []string{"not-urgent"}},
		{ID: "category", ContactName: "Cy", Category: "Urgently needed"},
		{ID: "none", ContactName: "Dee"},
	}
	results := Search(notes, "urgent")
	require.Len(t, results, 3)
	assert.Equal(t, MatchContact, results[0].MatchType)
	assert.Equal(t, 0, results[0].HighlightStart)
	assert.Equal(t, MatchTag, results[1].MatchType)
	assert.Equal(t, "not-urgent", results[1].MatchText)
	assert.Equal(t, 4, results[1].HighlightStart)
	assert.Equal(t, MatchCategory, results[2].MatchType)
}

func TestSearchIsRuneAware(t *testing.T) {
	notes := []models.CallNote{{ID: "n1", Note: "Réunion à Zürich demain"}}
	results := Search(notes, "ZÜRICH")
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, "Zürich", string([]rune(r.MatchText)[r.HighlightStart:r.HighlightEnd]))
}

func TestSearchEmptyQuery(t *testing.T) {
	assert.Empty(t, Search([]models.CallNote{{ID: "a", Note: "x"}}, "   "))
}

func TestSearchCapsResults(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, 40).Draw(t, "count")
		notes := make([]models.CallNote, count)
		for i := range notes {
			notes[i] = models.CallNote{
				ID:          fmt.Sprintf("n%d", i),
				ContactName: rapid.SampledFrom([]string{"Ann", "Bob", "Cal"}).Draw(t, "name"),
				Note:        rapid.StringMatching(`[a-c ]{0,20}`).Draw(t, "note"),
				Tags:        rapid.SliceOfN(rapid.StringMatching(`[a-c]{1,4}`), 0, 3).Draw(t, "tags"),
			}
		}
		query := rapid.StringMatching(`[a-c]{1,2}`).Draw(t, "query")

		results := Search(notes, query)
		assert.LessOrEqual(t, len(results), MaxResults)
		seen := map[string]bool{}
		for _, r := range results {
			assert.False(t, seen[r.Note.ID], "one result per note")
			seen[r.Note.ID] = true
			runes := []rune(r.MatchText)
			require.LessOrEqual(t, r.HighlightEnd, len(runes))
			assert.Equal(t, query, strings.ToLower(string(runes[r.HighlightStart:r.HighlightEnd])))
		}
	})
}

func TestSuggest(t *testing.T) {
	contacts := []models.Contact{{Name: "Backus Ltd"}, {Name: "back"}}
	notes := []models.CallNote{
		{Note: "Call back, feedback pending. Backlog!", Tags: []string{"callback"}, Category: "Backend"},
	}
	got := Suggest("back", contacts, notes)
	assert.Equal(t, []string{"Backus Ltd", "feedback", "backlog", "callback", "Backend"}, got)
}

func TestSuggestNeedsTwoRunes(t *testing.T) {
	contacts := []models.Contact{{Name: "Ann"}}
	assert.Empty(t, Suggest("a", contacts, nil))
	assert.Equal(t, []string{"Ann"}, Suggest("an", contacts, nil))
}

func TestSuggestCapsAndDedupes(t *testing.T) {
	notes := []models.CallNote{{Note: "alpha alpha Alpha alpine alps alto altitude altar"}}
	got := Suggest("al", nil, notes)
	assert.Len(t, got, MaxSuggestions)
	assert.Equal(t, "alpha", got[0])
	assert.Equal(t, "alpine", got[1])
}

func TestFilterHitsEveryField(t *testing.T) {
	contacts := []models.Contact{{ID: "c1", PhoneNumber: "+1 (555) 010-2030"}}
	notes := []models.CallNote{
		{ID: "name", ContactName: "Ann"},
		{ID: "body", Note: "re-order widgets"},
		{ID: "status", Status: models.StatusWaitingReply},
		{ID: "custom", Status: models.StatusOther, CustomStatus: "Brochure sent"},
		{ID: "tag", Tags: []string{"vip"}},
		{ID: "cat", Category: "Wholesale"},
		{ID: "phone", ContactID: "c1"},
	}

	cases := map[string]string{
		"ann":       "name",
		"reorder":   "body",
		"widgets":   "body",
		"waiting":   "status",
		"brochure":  "custom",
		"vip":       "tag",
		"wholesale": "cat",
		"555":       "phone",
		"0102030":   "phone",
		"010-2030":  "phone",
	}
	for query, want := range cases {
		got := NewFilter(query, contacts).Apply(notes)
		require.Len(t, got, 1, query)
		assert.Equal(t, want, got[0].ID, query)
	}
}

func TestFilterEmptyQueryKeepsAll(t *testing.T) {
	notes := []models.CallNote{{ID: "a"}, {ID: "b"}}
	assert.Len(t, NewFilter("", nil).Apply(notes), 2)
}

func TestFilterIgnoresDigitsInWordQueries(t *testing.T) {
	contacts := []models.Contact{{ID: "c1", PhoneNumber: "5551"}}
	notes := []models.CallNote{{ID: "n", ContactID: "c1", ContactName: "Bo"}}
	assert.Empty(t, NewFilter("x1", contacts).Apply(notes))
}
