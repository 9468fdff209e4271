package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/callbook/viz"
)

func (m Model) renderStatsView() string {
	var s strings.Builder
	stats := viz.GenerateDashboardStats(
		m.store.Contacts(m.ctx),
		m.store.Notes(m.ctx),
		m.store.Reminders(m.ctx),
		m.store.Orders(m.ctx),
		m.now(),
	)
	s.WriteString(viz.RenderDashboard(stats))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Esc: Back • q: Quit"))
	return s.String()
}

func (m Model) handleStatsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "s":
		m.viewMode = ViewList
	}
	return m, nil
}
