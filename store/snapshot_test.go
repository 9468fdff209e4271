// ABOUTME: Tests for snapshot export and import
// ABOUTME: A snapshot moved between two stores reproduces every collection in JSON and YAML
package store

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/callbook/models"
)

func populate(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	c, err := s.AddContact(ctx, NewContact{Name: "Ann", PhoneNumber: "555-0100"})
	require.NoError(t, err)
	_, err = s.AddNote(ctx, NewNote{ContactID: c.ID, ContactName: c.Name, Note: "Quote sent", Tags: []string{"quote-sent"}, FolderID: "sales"})
	require.NoError(t, err)
	_, err = s.AddReminder(ctx, NewReminder{ContactID: c.ID, ContactName: c.Name, Title: "Chase", DueDate: testNow})
	require.NoError(t, err)
	_, err = s.AddOrder(ctx, NewOrder{ContactID: c.ID, ContactName: c.Name, Items: []models.OrderItem{{Name: "Widget", Price: 3, Quantity: 1}}, TotalAmount: 3})
	require.NoError(t, err)
	_, err = s.AddProductCatalog(ctx, "Main", []models.Product{{Name: "Widget", Price: 3, InStock: true}})
	require.NoError(t, err)
	_, err = s.SetNoteTemplate(ctx, "Agenda:")
	require.NoError(t, err)
	_, err = s.SaveNoteSettings(ctx, models.NoteSettings{DefaultStatus: models.StatusClosed, DefaultPriority: models.PriorityHigh, DefaultGroupBy: models.GroupByFolder})
	require.NoError(t, err)
}

func TestSnapshotMovesBetweenStores(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			ctx := context.Background()
			src, _ := setupStore(t)
			populate(t, src)
			snap := src.Export(ctx)

			var buf bytes.Buffer
			require.NoError(t, WriteSnapshot(&buf, snap, format))
			decoded, err := ReadSnapshot(&buf, format)
			require.NoError(t, err)

			dst, _ := setupStore(t)
			require.NoError(t, dst.Import(ctx, decoded))

			assert.Equal(t, snap.Contacts, dst.Contacts(ctx))
			assert.Equal(t, snap.Notes, dst.Notes(ctx))
			assert.Equal(t, snap.Reminders, dst.Reminders(ctx))
			assert.Equal(t, snap.Orders, dst.Orders(ctx))
			assert.Equal(t, snap.Folders, dst.Folders(ctx))
			assert.Equal(t, snap.ProductCatalogs, dst.ProductCatalogs(ctx))
			assert.Equal(t, snap.PresetTags, dst.PresetTags(ctx))
			assert.Equal(t, snap.NoteSettings, dst.NoteSettings(ctx))
			assert.Equal(t, snap.NoteTemplate.Body, dst.NoteTemplate(ctx).Body)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
