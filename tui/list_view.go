package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("CALLBOOK"))
	s.WriteString("\n")
	s.WriteString(dimStyle.Render(fmt.Sprintf("Grouped by %s", m.groupBy)))
	s.WriteString("\n\n")

	if m.searching || m.query != "" {
		s.WriteString(m.search.View())
		s.WriteString("\n\n")
	}

	if len(m.rows) == 0 {
		s.WriteString(dimStyle.Render("No notes"))
		s.WriteString("\n")
	}

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		line := m.renderRow(m.rows[i])
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		s.WriteString(line)
		s.WriteString("\n")
	}

	if m.message != "" {
		s.WriteString("\n")
		s.WriteString(m.message)
		s.WriteString("\n")
	}
	if m.err != nil {
		s.WriteString("\n")
		s.WriteString(fmt.Sprintf("Error: %v", m.err))
		s.WriteString("\n")
	}

	s.WriteString(m.renderListHelp())
	return s.String()
}

// visibleRange keeps the cursor on screen.
func (m Model) visibleRange() (int, int) {
	height := m.height - 10
	if height < 5 {
		height = 5
	}
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := start + height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	return start, end
}

func (m Model) renderRow(r row) string {
	marker := "▾"
	if m.collapsed[r.id] {
		marker = "▸"
	}
	switch r.kind {
	case rowGroup:
		return groupStyle.Render(fmt.Sprintf("%s %s (%d)", marker, r.title, r.count))
	case rowSubGroup:
		return subGroupStyle.Render(fmt.Sprintf("  %s %s (%d)", marker, r.title, r.count))
	}

	n := r.note
	text := n.Note
	if n.IsAutoGenerated {
		text = "(no note)"
	}
	return fmt.Sprintf("    %s  %-16s %-13s %s",
		n.CallStartTime.Local().Format("Jan 02 15:04"), truncate(n.ContactName, 16), n.StatusLabel(), truncate(text, 40))
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Enter: Open/toggle",
		"g: Group by",
		"/: Search",
		"s: Stats",
		"d: Delete",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "g":
		m.groupBy = nextGroupMode(m.groupBy)
		m.cursor = 0
		m.reload()
	case "/":
		m.searching = true
		m.search.SetValue(m.query)
		m.search.Focus()
		return m, textinput.Blink
	case "esc":
		if m.query != "" {
			m.query = ""
			m.search.SetValue("")
			m.reload()
		}
	case "r":
		m.store.InvalidateAll()
		m.reload()
	case "s":
		m.viewMode = ViewStats
	case "enter", " ":
		if len(m.rows) == 0 {
			return m, nil
		}
		r := m.rows[m.cursor]
		if r.kind == rowNote {
			m.selected = r.note
			m.viewMode = ViewDetail
			return m, nil
		}
		m.collapsed[r.id] = !m.collapsed[r.id]
		m.rebuildRows()
	case "d":
		if len(m.rows) > 0 && m.rows[m.cursor].kind == rowNote {
			m.selected = m.rows[m.cursor].note
			m.viewMode = ViewConfirmDelete
		}
	}
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		m.query = strings.TrimSpace(m.search.Value())
		m.cursor = 0
		m.reload()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.query)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func truncate(s string, n int) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
