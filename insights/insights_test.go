// ABOUTME: Tests for reminder and note statistics
// ABOUTME: Growth edge cases and week windows around a fixed reference time
package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/harperreed/callbook/models"
)

func TestGrowth(t *testing.T) {
	assert.Equal(t, 0.0, Growth(0, 0))
	assert.Equal(t, 100.0, Growth(3, 0))
	assert.Equal(t, 50.0, Growth(3, 2))
	assert.Equal(t, -50.0, Growth(1, 2))
	assert.Equal(t, 33.3, Growth(4, 3))
}

func TestReminderStats(t *testing.T) {
	now := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)
	days := func(n int) time.Time { return now.AddDate(0, 0, n) }
	reminders := []models.Reminder{
		{DueDate: days(-1), CreatedAt: days(-2)},                     // overdue, this week
		{DueDate: days(3), CreatedAt: days(-1)},                      // due this week, this week
		{DueDate: days(30), CreatedAt: days(-9)},                     // later, last week
		{DueDate: days(-5), CreatedAt: days(-10), IsCompleted: true}, // completed, last week
		{DueDate: days(-5), CreatedAt: days(-3), IsArchived: true},   // archived
	}
	s := Reminders(reminders, now)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.Open)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.Archived)
	assert.Equal(t, 1, s.Overdue)
	assert.Equal(t, 1, s.DueThisWeek)
	assert.Equal(t, 2, s.CreatedThisWeek)
	assert.Equal(t, 2, s.CreatedLastWeek)
	assert.Equal(t, 0.0, s.GrowthPercent)
}

func TestNoteStats(t *testing.T) {
	notes := []models.CallNote{
		{Status: models.StatusClosed, CallDuration: 60},
		{Status: models.StatusClosed, CallDuration: 30, IsAutoGenerated: true},
		{Status: models.StatusOther, CustomStatus: "Left voicemail"},
	}
	s := Notes(notes)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.ByStatus["Closed"])
	assert.Equal(t, 1, s.ByStatus["Left voicemail"])
	assert.Equal(t, 90*time.Second, s.TotalDuration)
	assert.Equal(t, 1, s.AutoGenerated)
}
