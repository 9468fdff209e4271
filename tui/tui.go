// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Browses call notes in collapsible groups with search and a stats view
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/callbook/grouping"
	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/search"
	"github.com/harperreed/callbook/store"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewStats
	ViewConfirmDelete
)

type rowKind int

const (
	rowGroup rowKind = iota
	rowSubGroup
	rowNote
)

// row is one visible line of the list view.
type row struct {
	kind  rowKind
	id    string
	title string
	count int
	note  models.CallNote
}

// Model is the main bubbletea model
type Model struct {
	store *store.Store
	ctx   context.Context
	now   func() time.Time

	viewMode ViewMode
	groupBy  models.GroupBy

	groups []grouping.Group
	rows   []row
	cursor int

	// Collapse state survives regrouping because group ids are stable.
	collapsed map[string]bool

	search    textinput.Model
	searching bool
	query     string

	selected models.CallNote
	message  string

	width  int
	height int
	err    error
}

// NewModel creates a new TUI model grouped by the saved default mode.
func NewModel(st *store.Store) Model {
	ti := textinput.New()
	ti.Placeholder = "search notes, contacts, tags..."
	ti.CharLimit = 100

	ctx := context.Background()
	m := Model{
		store:     st,
		ctx:       ctx,
		now:       time.Now,
		viewMode:  ViewList,
		groupBy:   st.NoteSettings(ctx).DefaultGroupBy,
		collapsed: make(map[string]bool),
		search:    ti,
		width:     80,
		height:    24,
	}
	m.reload()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewStats:
		return m.renderStatsView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewStats:
		return m.handleStatsKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}

	return m, nil
}

// reload regroups the notes matching the current query and rebuilds rows.
func (m *Model) reload() {
	notes := m.store.Notes(m.ctx)
	if m.query != "" {
		notes = search.NewFilter(m.query, m.store.Contacts(m.ctx)).Apply(notes)
	}
	m.groups = grouping.Build(notes, m.groupBy, m.store.Folders(m.ctx))
	m.rebuildRows()
}

func (m *Model) rebuildRows() {
	m.rows = nil
	for _, g := range m.groups {
		m.rows = append(m.rows, row{kind: rowGroup, id: g.ID, title: g.Title, count: len(g.Notes)})
		if m.collapsed[g.ID] {
			continue
		}
		if len(g.SubGroups) == 0 {
			for _, n := range g.Notes {
				m.rows = append(m.rows, row{kind: rowNote, id: n.ID, note: n})
			}
			continue
		}
		for _, sub := range g.SubGroups {
			m.rows = append(m.rows, row{kind: rowSubGroup, id: sub.ID, title: sub.Title, count: len(sub.Notes)})
			if m.collapsed[sub.ID] {
				continue
			}
			for _, n := range sub.Notes {
				m.rows = append(m.rows, row{kind: rowNote, id: n.ID, note: n})
			}
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// nextGroupMode returns the mode after g in the cycle order.
func nextGroupMode(g models.GroupBy) models.GroupBy {
	for i, mode := range models.GroupModes {
		if mode == g {
			return models.GroupModes[(i+1)%len(models.GroupModes)]
		}
	}
	return models.GroupModes[0]
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	groupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	subGroupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
