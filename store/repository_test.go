// ABOUTME: Property tests for list decoding and per-record migration
// ABOUTME: Migrating any legacy note list twice is a no-op the second time
package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/harperreed/callbook/models"
)

func legacyNoteGenerator() *rapid.Generator[map[string]any] {
	return rapid.Custom(func(t *rapid.T) map[string]any {
		rec := map[string]any{
			"id":          rapid.StringMatching(`[a-z0-9]{4,10}`).Draw(t, "id"),
			"contactName": rapid.StringMatching(`[A-Za-z ]{1,20}`).Draw(t, "contactName"),
			"note":        rapid.StringMatching(`[A-Za-z0-9 ,.]{0,40}`).Draw(t, "note"),
			"callStartTime": time.Unix(rapid.Int64Range(0, 2_000_000_000).Draw(t, "start"), 0).
				UTC().Format(time.RFC3339),
		}
		if rapid.Bool().Draw(t, "hasStatus") {
			rec["status"] = string(rapid.SampledFrom(models.NoteStatuses).Draw(t, "status"))
		}
		if rapid.Bool().Draw(t, "hasPriority") {
			rec["priority"] = rapid.SampledFrom([]string{"low", "medium", "high"}).Draw(t, "priority")
		}
		if rapid.Bool().Draw(t, "hasTags") {
			rec["tags"] = rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,8}`), 0, 4).Draw(t, "tags")
		}
		return rec
	})
}

func TestNoteMigrationIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := rapid.SliceOfN(legacyNoteGenerator(), 0, 12).Draw(t, "records")
		raw, err := json.Marshal(records)
		require.NoError(t, err)

		first, _, err := decodeList(raw, (*models.CallNote).Migrate)
		require.NoError(t, err)
		require.Len(t, first, len(records))
		for _, n := range first {
			assert.True(t, n.Status.Valid())
			assert.True(t, n.Priority.Valid())
			assert.NotNil(t, n.Tags)
		}

		rewritten, err := json.Marshal(first)
		require.NoError(t, err)
		second, stats, err := decodeList(rewritten, (*models.CallNote).Migrate)
		require.NoError(t, err)
		assert.False(t, stats.rewrite())
		assert.Equal(t, first, second)
	})
}

func TestDecodeListRejectsObject(t *testing.T) {
	_, _, err := decodeList[models.Contact]([]byte(`{"id":"x"}`), nil)
	assert.ErrorIs(t, err, errShape)
}

func TestDecodeObjectRejectsArray(t *testing.T) {
	_, _, err := decodeObject([]byte(`[]`), models.DefaultNoteSettings)
	assert.ErrorIs(t, err, errShape)
}
