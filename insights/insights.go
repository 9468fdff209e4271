// ABOUTME: Reminder statistics for dashboards and the CLI
// ABOUTME: Counts open, overdue and due-this-week reminders and true week-over-week growth
package insights

import (
	"math"
	"time"

	"github.com/harperreed/callbook/models"
)

type ReminderStats struct {
	Total           int     `json:"total"`
	Open            int     `json:"open"`
	Completed       int     `json:"completed"`
	Archived        int     `json:"archived"`
	Overdue         int     `json:"overdue"`
	DueThisWeek     int     `json:"dueThisWeek"`
	CreatedThisWeek int     `json:"createdThisWeek"`
	CreatedLastWeek int     `json:"createdLastWeek"`
	GrowthPercent   float64 `json:"growthPercent"`
}

// Reminders summarizes reminders as of now. Weeks are the seven days ending
// at now and the seven days before that. Archived reminders are counted only
// in Total and Archived.
func Reminders(reminders []models.Reminder, now time.Time) ReminderStats {
	var s ReminderStats
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)
	weekAhead := now.AddDate(0, 0, 7)

	for _, r := range reminders {
		s.Total++
		if r.IsArchived {
			s.Archived++
			continue
		}
		if r.IsCompleted {
			s.Completed++
		} else {
			s.Open++
			if r.DueDate.Before(now) {
				s.Overdue++
			} else if r.DueDate.Before(weekAhead) {
				s.DueThisWeek++
			}
		}
		switch {
		case !r.CreatedAt.Before(weekAgo) && !r.CreatedAt.After(now):
			s.CreatedThisWeek++
		case !r.CreatedAt.Before(twoWeeksAgo) && r.CreatedAt.Before(weekAgo):
			s.CreatedLastWeek++
		}
	}
	s.GrowthPercent = Growth(s.CreatedThisWeek, s.CreatedLastWeek)
	return s
}

// Growth is the week-over-week change in percent, rounded to one decimal.
// It is 0 when both weeks are empty and 100 when only this week has entries.
func Growth(thisWeek, lastWeek int) float64 {
	if lastWeek == 0 {
		if thisWeek == 0 {
			return 0
		}
		return 100
	}
	pct := float64(thisWeek-lastWeek) / float64(lastWeek) * 100
	return math.Round(pct*10) / 10
}

// NoteStats counts notes per status label and the total talk time.
type NoteStats struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"byStatus"`
	TotalDuration time.Duration  `json:"totalDuration"`
	AutoGenerated int            `json:"autoGenerated"`
}

func Notes(notes []models.CallNote) NoteStats {
	s := NoteStats{ByStatus: make(map[string]int)}
	for _, n := range notes {
		s.Total++
		s.ByStatus[n.StatusLabel()]++
		s.TotalDuration += time.Duration(n.CallDuration) * time.Second
		if n.IsAutoGenerated {
			s.AutoGenerated++
		}
	}
	return s
}
