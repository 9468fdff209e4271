// ABOUTME: Tests for the CLI commands
// ABOUTME: Runs commands against an in-memory store and checks what they print
package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/callbook/backing"
	"github.com/harperreed/callbook/store"
)

var cliNow = time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)

func setupCLI(t *testing.T) (*store.Store, *bytes.Buffer) {
	t.Helper()
	st := store.New(backing.NewMemory(),
		store.WithLogger(log.New(io.Discard)),
		store.WithClock(func() time.Time { return cliNow }))
	require.NoError(t, st.Init(context.Background()))
	t.Cleanup(func() { _ = st.Close() })

	buf := &bytes.Buffer{}
	oldOut, oldNow := stdout, now
	stdout, now = buf, func() time.Time { return cliNow }
	t.Cleanup(func() { stdout, now = oldOut, oldNow })
	return st, buf
}

func firstContactID(t *testing.T, st *store.Store) string {
	t.Helper()
	contacts := st.Contacts(context.Background())
	require.NotEmpty(t, contacts)
	return contacts[0].ID
}

func TestContactCommands(t *testing.T) {
	st, out := setupCLI(t)

	assert.Error(t, AddContactCommand(st, []string{"--phone", "555"}))
	assert.Error(t, AddContactCommand(st, []string{"--name", "Ann"}))

	require.NoError(t, AddContactCommand(st, []string{"--name", "Ann Lee", "--phone", "+1 555 0100"}))
	assert.Contains(t, out.String(), "✓ Contact created: Ann Lee")
	id := firstContactID(t, st)

	out.Reset()
	require.NoError(t, ListContactsCommand(st, []string{"--query", "5550100"}))
	assert.Contains(t, out.String(), "Ann Lee")
	assert.Contains(t, out.String(), "Total: 1 contact(s)")

	out.Reset()
	require.NoError(t, UpdateContactCommand(st, []string{"--name", "Ann Smith", id}))
	assert.Contains(t, out.String(), "Ann Smith")

	require.NoError(t, DeleteContactCommand(st, []string{id}))
	out.Reset()
	require.NoError(t, ListContactsCommand(st, nil))
	assert.Contains(t, out.String(), "No contacts found")
}

func TestNoteCommands(t *testing.T) {
	st, out := setupCLI(t)
	require.NoError(t, AddContactCommand(st, []string{"--name", "Ann", "--phone", "555-0100"}))
	id := firstContactID(t, st)

	assert.Error(t, AddNoteCommand(st, []string{"--text", "no contact"}))
	assert.Error(t, AddNoteCommand(st, []string{"--contact", "missing"}))

	out.Reset()
	require.NoError(t, AddNoteCommand(st, []string{"--contact", id, "--text", "Call back about pricing", "--folder", "work", "--tag", "pricing"}))
	assert.Contains(t, out.String(), "✓ Note saved for Ann")
	assert.Contains(t, out.String(), "Follow-up")

	out.Reset()
	require.NoError(t, ListNotesCommand(st, []string{"--group-by", "folder"}))
	assert.Contains(t, out.String(), "Work (1)")
	assert.Contains(t, out.String(), "Call back about pricing")

	assert.Error(t, ListNotesCommand(st, []string{"--group-by", "hour"}))

	out.Reset()
	require.NoError(t, SearchCommand(st, []string{"pricing"}))
	assert.Contains(t, out.String(), "[pricing]")

	assert.Error(t, SearchCommand(st, nil))
}

func TestReminderCommands(t *testing.T) {
	st, out := setupCLI(t)

	assert.Error(t, AddReminderCommand(st, []string{"--due", "tomorrow"}))
	assert.Error(t, AddReminderCommand(st, []string{"--title", "Call"}))
	assert.Error(t, AddReminderCommand(st, []string{"--title", "Call", "--due", "whenever"}))

	require.NoError(t, AddReminderCommand(st, []string{"--title", "Call Ann", "--due", "tomorrow at 3pm"}))
	reminders := st.Reminders(context.Background())
	require.Len(t, reminders, 1)
	assert.Equal(t, 15, reminders[0].DueDate.Hour())

	out.Reset()
	require.NoError(t, ListRemindersCommand(st, nil))
	assert.Contains(t, out.String(), "Call Ann")
	assert.Contains(t, out.String(), "open")

	require.NoError(t, CompleteReminderCommand(st, []string{reminders[0].ID}))
	out.Reset()
	require.NoError(t, ListRemindersCommand(st, nil))
	assert.Contains(t, out.String(), "No reminders found")

	out.Reset()
	require.NoError(t, StatsCommand(st, nil))
	assert.Contains(t, out.String(), "Completed:")
	assert.Contains(t, out.String(), "+100.0%")

	assert.Error(t, CompleteReminderCommand(st, []string{"missing"}))
}

func TestOrderCommands(t *testing.T) {
	st, out := setupCLI(t)
	require.NoError(t, AddContactCommand(st, []string{"--name", "Ann", "--phone", "555-0100"}))
	id := firstContactID(t, st)

	assert.Error(t, AddOrderCommand(st, []string{"--contact", id}))
	assert.Error(t, AddOrderCommand(st, []string{"--contact", id, "--item", "soap"}))

	out.Reset()
	require.NoError(t, AddOrderCommand(st, []string{"--contact", id, "--item", "soap:2.5:4", "--item", "brush:10", "--remind-date", "2024-03-20"}))
	assert.Contains(t, out.String(), "total 20.00")

	orders := st.Orders(context.Background())
	require.Len(t, orders, 1)

	out.Reset()
	require.NoError(t, OrderStatusCommand(st, []string{orders[0].ID, "shipped"}))
	assert.Contains(t, out.String(), "is now shipped")
	assert.Error(t, OrderStatusCommand(st, []string{orders[0].ID, "lost"}))

	require.NoError(t, OrderReminderCommand(st, []string{orders[0].ID}))
	reminders := st.Reminders(context.Background())
	require.Len(t, reminders, 1)
	assert.Equal(t, "order-"+orders[0].ID, reminders[0].RelatedNoteID)

	out.Reset()
	require.NoError(t, CatalogsCommand(st, []string{"--name", "Spring", "--product", "soap:2.5", "--product", "brush:10"}))
	assert.Contains(t, out.String(), "has 2 product(s)")
}

func TestParseItem(t *testing.T) {
	item, err := parseItem("soap:2.5:3")
	require.NoError(t, err)
	assert.Equal(t, "soap", item.Name)
	assert.InDelta(t, 2.5, item.Price, 0.0001)
	assert.Equal(t, 3, item.Quantity)

	item, err = parseItem("brush:10")
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	for _, bad := range []string{"soap", ":1", "soap:x", "soap:1:0"} {
		_, err := parseItem(bad)
		assert.Error(t, err, bad)
	}
}

func TestFolderTagAndSettingsCommands(t *testing.T) {
	st, out := setupCLI(t)

	require.NoError(t, AddFolderCommand(st, []string{"--name", "Leads", "--color", "#000000"}))
	out.Reset()
	require.NoError(t, ListFoldersCommand(st, nil))
	assert.Contains(t, out.String(), "Leads")
	assert.Contains(t, out.String(), "Work")

	out.Reset()
	require.NoError(t, TagsCommand(st, []string{"--add", "hot", "--remove", "vip"}))
	assert.Contains(t, out.String(), "hot")
	assert.NotContains(t, out.String(), "vip")

	out.Reset()
	require.NoError(t, SettingsCommand(st, []string{"--group-by", "folder", "--template", "Agenda:"}))
	assert.Contains(t, out.String(), "✓ Settings saved")
	assert.Contains(t, out.String(), "folder")
	assert.Equal(t, "Agenda:", st.NoteTemplate(context.Background()).Body)

	assert.Error(t, SettingsCommand(st, []string{"--status", "maybe"}))
}

func TestExportImportRoundTrip(t *testing.T) {
	st, out := setupCLI(t)
	require.NoError(t, AddContactCommand(st, []string{"--name", "Ann", "--phone", "555-0100"}))

	path := filepath.Join(t.TempDir(), "backup.yaml")
	require.NoError(t, ExportCommand(st, []string{"--output", path}))

	fresh := store.New(backing.NewMemory(), store.WithLogger(log.New(io.Discard)))
	require.NoError(t, fresh.Init(context.Background()))

	out.Reset()
	require.NoError(t, ImportCommand(fresh, []string{path}))
	assert.Contains(t, out.String(), "--confirm")
	assert.Empty(t, fresh.Contacts(context.Background()))

	out.Reset()
	require.NoError(t, ImportCommand(fresh, []string{"--confirm", path}))
	assert.Contains(t, out.String(), "✓ Imported 1 contacts")
	require.Len(t, fresh.Contacts(context.Background()), 1)
	assert.Equal(t, "Ann", fresh.Contacts(context.Background())[0].Name)
}

func TestExportToStdout(t *testing.T) {
	st, out := setupCLI(t)
	require.NoError(t, AddContactCommand(st, []string{"--name", "Ann", "--phone", "555-0100"}))

	out.Reset()
	require.NoError(t, ExportCommand(st, []string{"--format", "json"}))
	assert.Contains(t, out.String(), `"contacts"`)
	assert.Error(t, ExportCommand(st, []string{"--format", "xml"}))
}

func TestSeedIsRepeatable(t *testing.T) {
	st, out := setupCLI(t)

	require.NoError(t, SeedCommand(st, []string{"--contacts", "5", "--notes", "2", "--seed", "7"}))
	assert.Contains(t, out.String(), "✓ Seeded 10 note(s)")
	assert.Len(t, st.Contacts(context.Background()), 5)

	out.Reset()
	require.NoError(t, SeedCommand(st, []string{"--contacts", "5", "--notes", "2", "--seed", "7"}))
	assert.Contains(t, out.String(), "✓ Seeded 0 note(s)")
	assert.Len(t, st.Contacts(context.Background()), 5)
	assert.Len(t, st.Notes(context.Background()), 10)
}

func TestVizCommands(t *testing.T) {
	st, out := setupCLI(t)
	require.NoError(t, SeedCommand(st, []string{"--contacts", "3", "--notes", "1"}))

	out.Reset()
	require.NoError(t, VizDashboardCommand(st, nil))
	assert.Contains(t, out.String(), "CALLBOOK DASHBOARD")
	assert.Contains(t, out.String(), "3 contacts")

	out.Reset()
	require.NoError(t, VizGraphCommand(st, nil))
	assert.Contains(t, out.String(), "digraph")
}
