// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides an ASCII overview of notes, reminders and stale contacts
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/callbook/insights"
	"github.com/harperreed/callbook/models"
)

// StaleAfter is how long since the last call before a contact needs attention.
const StaleAfter = 30 * 24 * time.Hour

type DashboardStats struct {
	TotalContacts int
	TotalOrders   int

	Notes     insights.NoteStats
	Reminders insights.ReminderStats

	// Contacts with no call in StaleAfter, or never called.
	StaleContacts []StaleContact
}

type StaleContact struct {
	Name      string
	DaysSince int // -1 when never called
}

func GenerateDashboardStats(contacts []models.Contact, notes []models.CallNote, reminders []models.Reminder, orders []models.Order, now time.Time) *DashboardStats {
	stats := &DashboardStats{
		TotalContacts: len(contacts),
		TotalOrders:   len(orders),
		Notes:         insights.Notes(notes),
		Reminders:     insights.Reminders(reminders, now),
	}

	lastCall := make(map[string]time.Time)
	for _, n := range notes {
		if n.CallStartTime.After(lastCall[n.ContactID]) {
			lastCall[n.ContactID] = n.CallStartTime
		}
	}

	for _, c := range contacts {
		last, ok := lastCall[c.ID]
		switch {
		case !ok:
			stats.StaleContacts = append(stats.StaleContacts, StaleContact{Name: c.Name, DaysSince: -1})
		case now.Sub(last) > StaleAfter:
			stats.StaleContacts = append(stats.StaleContacts, StaleContact{
				Name:      c.Name,
				DaysSince: int(now.Sub(last).Hours() / 24),
			})
		}
	}
	return stats
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  CALLBOOK DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("NOTES BY STATUS\n")
	renderStatuses(&out, stats.Notes.ByStatus)
	out.WriteString("\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  📇 %d contacts  📞 %d notes  📦 %d orders\n", stats.TotalContacts, stats.Notes.Total, stats.TotalOrders))
	out.WriteString(fmt.Sprintf("  ⏱  %s on calls\n\n", stats.Notes.TotalDuration))

	r := stats.Reminders
	out.WriteString("REMINDERS\n")
	out.WriteString(fmt.Sprintf("  %d open, %d due this week, %d completed\n", r.Open, r.DueThisWeek, r.Completed))
	out.WriteString(fmt.Sprintf("  %d created this week (%+.1f%% vs last week)\n\n", r.CreatedThisWeek, r.GrowthPercent))

	if r.Overdue > 0 || len(stats.StaleContacts) > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		if r.Overdue > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d reminders overdue\n", r.Overdue))
		}
		if len(stats.StaleContacts) > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d contacts - no call in 30+ days\n", len(stats.StaleContacts)))
		}
	}

	return out.String()
}

func renderStatuses(out *strings.Builder, byStatus map[string]int) {
	maxCount := 0
	for _, n := range byStatus {
		if n > maxCount {
			maxCount = n
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	labels := make([]string, 0, len(byStatus))
	for _, s := range models.NoteStatuses {
		labels = append(labels, s.Label())
	}
	var custom []string
	for label := range byStatus {
		if !contains(labels, label) {
			custom = append(custom, label)
		}
	}
	sort.Strings(custom)
	labels = append(labels, custom...)

	for _, label := range labels {
		count, ok := byStatus[label]
		if !ok {
			continue
		}
		barLength := (count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		out.WriteString(fmt.Sprintf("  %-14s %s  %2d\n", label, bar, count))
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
