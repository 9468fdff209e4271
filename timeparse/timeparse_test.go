// ABOUTME: Tests for natural-language time detection
// ABOUTME: Table of phrases against a fixed Wednesday morning reference
package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Wednesday, March 13 2024, 10:00 UTC.
var ref = time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)

func day(d, h, m int) time.Time {
	return time.Date(2024, 3, d, h, m, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	tests := []struct {
		text   string
		strict bool
		want   time.Time
		ok     bool
	}{
		{"Call back at 3pm, tag: urgent", true, day(13, 15, 0), true},
		{"ring at 9", false, day(14, 9, 0), true},
		{"in 30 minutes", true, day(13, 10, 30), true},
		{"in 2 hours", true, day(13, 12, 0), true},
		{"in half an hour", false, day(13, 10, 30), true},
		{"in 3 days", true, day(16, 9, 0), true},
		{"in a week at 11:15", true, day(20, 11, 15), true},
		{"tomorrow", true, day(14, 9, 0), true},
		{"Tomorrow at 2:30 pm", true, day(14, 14, 30), true},
		{"day after tomorrow", true, day(15, 9, 0), true},
		{"tonight", true, day(13, 20, 0), true},
		{"tonight at 8", true, day(13, 20, 0), true},
		{"friday", false, day(15, 9, 0), true},
		{"friday", true, time.Time{}, false},
		{"next friday at 10am", true, day(15, 10, 0), true},
		{"wednesday", false, day(20, 9, 0), true},
		{"next week", false, day(20, 9, 0), true},
		{"next week", true, time.Time{}, false},
		{"at noon", true, day(13, 12, 0), true},
		{"12am", false, day(14, 0, 0), true},
		{"this afternoon", false, day(13, 14, 0), true},
		{"this afternoon", true, time.Time{}, false},
		{"2/30", false, time.Time{}, false},
		{"nothing to see", false, time.Time{}, false},
		{"", false, time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.text, ref, tt.strict)
		assert.Equal(t, tt.ok, ok, tt.text)
		if tt.ok {
			assert.True(t, tt.want.Equal(got), "%q: want %v got %v", tt.text, tt.want, got)
		}
	}
}

func TestNumericDates(t *testing.T) {
	got, ok := Parse("ship on 12/25", ref, true)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 12, 25, 9, 0, 0, 0, time.UTC), got)

	got, ok = Parse("renewal 1/5", ref, true)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC), got, "past dates roll to next year")

	got, ok = Parse("meeting 2025-01-15 at 15:00", ref, true)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 1, 15, 15, 0, 0, 0, time.UTC), got)

	got, ok = Parse("due 3/1/25", ref, true)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), got)
}

func TestParseKeepsReferenceLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	got, ok := Parse("tomorrow at 8:00", ref.In(loc), true)
	assert.True(t, ok)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 8, got.Hour())
	assert.Equal(t, 14, got.Day())
}

func TestFuncSignature(t *testing.T) {
	var f Func = Parse
	_, ok := f("tomorrow", ref, false)
	assert.True(t, ok)
}
