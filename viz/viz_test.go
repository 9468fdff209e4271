// ABOUTME: Tests for the folder graph and dashboard
// ABOUTME: Renders small fixtures and checks the visible labels
package viz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/callbook/models"
)

var vizNow = time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)

func fixtureNotes() []models.CallNote {
	return []models.CallNote{
		{ID: "n1", ContactID: "c1", ContactName: "Ann", FolderID: "work", Status: models.StatusFollowUp, CallStartTime: vizNow.Add(-time.Hour), CallDuration: 60},
		{ID: "n2", ContactID: "c1", ContactName: "Ann", FolderID: "work", Status: models.StatusClosed, CallStartTime: vizNow.Add(-2 * time.Hour), CallDuration: 120},
		{ID: "n3", ContactID: "c2", ContactName: "Bob", FolderID: "gone", Status: models.StatusOther, CustomStatus: "Sent brochure", CallStartTime: vizNow.AddDate(0, 0, -40)},
	}
}

func TestFolderGraph(t *testing.T) {
	folders := []models.NoteFolder{{ID: "work", Name: "Work", Color: "#3B82F6"}}

	dot, err := FolderGraph(context.Background(), fixtureNotes(), folders, FormatDOT)
	require.NoError(t, err)

	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, "Work")
	assert.Contains(t, dot, "Ungrouped")
	assert.Contains(t, dot, "Ann")
	assert.Contains(t, dot, "Bob")
}

func TestFolderGraphFolderNamedUngrouped(t *testing.T) {
	folders := []models.NoteFolder{{ID: "ungrouped", Name: "Misc"}}
	notes := []models.CallNote{
		{ID: "n1", ContactID: "c1", ContactName: "Ann", FolderID: "ungrouped"},
		{ID: "n2", ContactID: "c2", ContactName: "Bob"},
	}

	dot, err := FolderGraph(context.Background(), notes, folders, FormatDOT)
	require.NoError(t, err)
	assert.Contains(t, dot, "Misc")
	assert.Contains(t, dot, "Ungrouped")
}

func TestFolderGraphUnknownFormat(t *testing.T) {
	_, err := FolderGraph(context.Background(), nil, nil, Format("gif"))
	assert.Error(t, err)
}

func TestDashboardStats(t *testing.T) {
	contacts := []models.Contact{{ID: "c1", Name: "Ann"}, {ID: "c2", Name: "Bob"}, {ID: "c3", Name: "Cy"}}
	reminders := []models.Reminder{
		{ID: "r1", DueDate: vizNow.Add(-time.Hour), CreatedAt: vizNow.Add(-time.Hour)},
		{ID: "r2", DueDate: vizNow.Add(24 * time.Hour), CreatedAt: vizNow.Add(-time.Hour)},
	}

	stats := GenerateDashboardStats(contacts, fixtureNotes(), reminders, nil, vizNow)

	assert.Equal(t, 3, stats.TotalContacts)
	assert.Equal(t, 3, stats.Notes.Total)
	assert.Equal(t, 1, stats.Reminders.Overdue)
	require.Len(t, stats.StaleContacts, 2)
	assert.Equal(t, StaleContact{Name: "Bob", DaysSince: 40}, stats.StaleContacts[0])
	assert.Equal(t, StaleContact{Name: "Cy", DaysSince: -1}, stats.StaleContacts[1])

	out := RenderDashboard(stats)
	assert.Contains(t, out, "CALLBOOK DASHBOARD")
	assert.Contains(t, out, "Follow-up")
	assert.Contains(t, out, "Sent brochure")
	assert.Contains(t, out, "1 reminders overdue")
	assert.Contains(t, out, "2 contacts - no call in 30+ days")
}
