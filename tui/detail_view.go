package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("CALL NOTE"))
	s.WriteString("\n\n")

	n := m.selected
	field := func(label, value string) {
		if value == "" {
			value = "-"
		}
		s.WriteString(fieldLabelStyle.Render(label+":") + " " + fieldValueStyle.Render(value) + "\n")
	}

	field("Contact", n.ContactName)
	field("Started", n.CallStartTime.Local().Format("2006-01-02 15:04"))
	field("Duration", (time.Duration(n.CallDuration) * time.Second).String())
	field("Direction", string(n.CallDirection))
	field("Status", n.StatusLabel())
	field("Priority", string(n.Priority))
	field("Tags", strings.Join(n.Tags, ", "))
	field("Category", n.Category)
	field("Folder", m.folderName(n.FolderID))

	s.WriteString("\n")
	if n.IsAutoGenerated {
		s.WriteString(dimStyle.Render("(no note recorded)"))
	} else {
		s.WriteString(n.Note)
	}
	s.WriteString("\n\n")

	s.WriteString(helpStyle.Render(strings.Join([]string{"Esc: Back", "d: Delete", "q: Quit"}, " • ")))
	return s.String()
}

func (m Model) folderName(id string) string {
	if id == "" {
		return ""
	}
	for _, f := range m.store.Folders(m.ctx) {
		if f.ID == id {
			return f.Name
		}
	}
	return fmt.Sprintf("%s (deleted)", id)
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.viewMode = ViewList
	case "d":
		m.viewMode = ViewConfirmDelete
	}
	return m, nil
}
