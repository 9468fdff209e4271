// ABOUTME: Tests for the notes browser model
// ABOUTME: Drives Update with key messages and checks rows, collapse state, search and delete
package tui

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/callbook/backing"
	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/store"
)

var tuiNow = time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)

func setupModel(t *testing.T) Model {
	t.Helper()
	ctx := context.Background()
	st := store.New(backing.NewMemory(),
		store.WithLogger(log.New(io.Discard)),
		store.WithClock(func() time.Time { return tuiNow }))
	require.NoError(t, st.Init(ctx))
	t.Cleanup(func() { _ = st.Close() })

	settings := st.NoteSettings(ctx)
	settings.DefaultGroupBy = models.GroupByFolder
	_, err := st.SaveNoteSettings(ctx, settings)
	require.NoError(t, err)

	notes := []store.NewNote{
		{ContactID: "c1", ContactName: "Ann", Note: "pricing call", FolderID: "work", CallStartTime: tuiNow.Add(-time.Hour)},
		{ContactID: "c1", ContactName: "Ann", Note: "quote sent", FolderID: "work", CallStartTime: tuiNow.Add(-2 * time.Hour)},
		{ContactID: "c2", ContactName: "Bob", Note: "new lead", FolderID: "sales", CallStartTime: tuiNow.Add(-3 * time.Hour)},
		{ContactID: "c3", ContactName: "Cy", Note: "wrong number", CallStartTime: tuiNow.Add(-4 * time.Hour)},
	}
	for _, n := range notes {
		_, err := st.AddNote(ctx, n)
		require.NoError(t, err)
	}

	m := NewModel(st)
	m.now = func() time.Time { return tuiNow }
	return m
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNewModelUsesDefaultGrouping(t *testing.T) {
	m := setupModel(t)

	assert.Equal(t, models.GroupByFolder, m.groupBy)
	require.Len(t, m.groups, 3)
	assert.Equal(t, "Work", m.groups[0].Title)
	assert.Equal(t, "Sales", m.groups[1].Title)
	assert.Equal(t, "Ungrouped", m.groups[2].Title)
	// Three groups, each with contact subgroups.
	assert.Len(t, m.rows, 10)
	assert.Equal(t, rowGroup, m.rows[0].kind)
	assert.Equal(t, rowSubGroup, m.rows[1].kind)
	assert.Equal(t, rowNote, m.rows[2].kind)
}

func TestCollapseSurvivesRegrouping(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, "enter")
	assert.True(t, m.collapsed["folder:work"])
	assert.Len(t, m.rows, 7)

	for range models.GroupModes {
		m = press(t, m, "g")
	}
	assert.Equal(t, models.GroupByFolder, m.groupBy)
	assert.Len(t, m.rows, 7)

	m = press(t, m, "enter")
	assert.Len(t, m.rows, 10)
}

func TestNextGroupModeCycles(t *testing.T) {
	assert.Equal(t, models.GroupByDay, nextGroupMode(models.GroupByNone))
	assert.Equal(t, models.GroupByNone, nextGroupMode(models.GroupByFolder))
	assert.Equal(t, models.GroupByNone, nextGroupMode(models.GroupBy("bogus")))
}

func TestSearchFiltersGroups(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, "/")
	assert.True(t, m.searching)
	m = press(t, m, "b", "o", "b", "enter")
	assert.False(t, m.searching)
	assert.Equal(t, "bob", m.query)
	require.Len(t, m.groups, 1)
	assert.Equal(t, "Sales", m.groups[0].Title)

	m = press(t, m, "esc")
	assert.Equal(t, "", m.query)
	assert.Len(t, m.groups, 3)
}

func TestOpenDetailAndDelete(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, "down", "down", "enter")
	assert.Equal(t, ViewDetail, m.viewMode)
	assert.Equal(t, "Ann", m.selected.ContactName)
	assert.Contains(t, m.View(), "pricing call")

	m = press(t, m, "d")
	assert.Equal(t, ViewConfirmDelete, m.viewMode)
	m = press(t, m, "n")
	assert.Equal(t, ViewList, m.viewMode)

	m = press(t, m, "d", "y")
	assert.Equal(t, ViewList, m.viewMode)
	assert.Contains(t, m.message, "Deleted note for Ann")
	assert.Len(t, m.store.Notes(context.Background()), 3)
	assert.Len(t, m.rows, 9)
}

func TestStatsView(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, "s")
	assert.Equal(t, ViewStats, m.viewMode)
	assert.Contains(t, m.View(), "CALLBOOK DASHBOARD")

	m = press(t, m, "esc")
	assert.Equal(t, ViewList, m.viewMode)
}

func TestQuit(t *testing.T) {
	m := setupModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
