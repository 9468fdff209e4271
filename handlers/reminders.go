// ABOUTME: Reminder MCP tool handlers
// ABOUTME: Implements add_reminder, list_reminders, complete_reminder, delete_reminder and reminder_stats tools
package handlers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/callbook/insights"
	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/store"
	"github.com/harperreed/callbook/timeparse"
)

type ReminderHandlers struct {
	store *store.Store
	loc   *time.Location
	now   func() time.Time
}

func NewReminderHandlers(s *store.Store, loc *time.Location) *ReminderHandlers {
	if loc == nil {
		loc = time.Local
	}
	return &ReminderHandlers{store: s, loc: loc, now: time.Now}
}

type AddReminderInput struct {
	ContactID     string `json:"contact_id,omitempty" jsonschema:"Contact ID"`
	ContactName   string `json:"contact_name,omitempty" jsonschema:"Contact name; looked up from contact_id when omitted"`
	Title         string `json:"title" jsonschema:"Reminder title (required)"`
	Description   string `json:"description,omitempty" jsonschema:"Details"`
	DueDate       string `json:"due_date" jsonschema:"Due date: RFC3339, YYYY-MM-DD HH:MM, or phrases like 'tomorrow at 3pm' (required)"`
	RelatedNoteID string `json:"related_note_id,omitempty" jsonschema:"Note this reminder follows up on"`
}

func (h *ReminderHandlers) AddReminder(ctx context.Context, _ *mcp.CallToolRequest, input AddReminderInput) (*mcp.CallToolResult, ReminderOutput, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ReminderOutput{}, fmt.Errorf("title is required")
	}
	if strings.TrimSpace(input.DueDate) == "" {
		return nil, ReminderOutput{}, fmt.Errorf("due_date is required")
	}

	due, err := parseTime(input.DueDate, h.loc)
	if err != nil {
		parsed, ok := timeparse.Parse(input.DueDate, h.now().In(h.loc), false)
		if !ok {
			return nil, ReminderOutput{}, fmt.Errorf("due_date: %w", err)
		}
		due = parsed
	}

	name := input.ContactName
	if name == "" && input.ContactID != "" {
		if c, ok := h.store.Contact(ctx, input.ContactID); ok {
			name = c.Name
		}
	}

	reminder, err := h.store.AddReminder(ctx, store.NewReminder{
		ContactID:     input.ContactID,
		ContactName:   name,
		Title:         input.Title,
		Description:   input.Description,
		DueDate:       due,
		RelatedNoteID: input.RelatedNoteID,
	})
	if err != nil {
		return nil, ReminderOutput{}, fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil, reminderToOutput(reminder), nil
}

type ListRemindersInput struct {
	ContactID       string `json:"contact_id,omitempty" jsonschema:"Only reminders for this contact"`
	IncludeDone     bool   `json:"include_completed,omitempty" jsonschema:"Include completed reminders"`
	IncludeArchived bool   `json:"include_archived,omitempty" jsonschema:"Include archived reminders"`
}

type ListRemindersOutput struct {
	Reminders []ReminderOutput `json:"reminders"`
}

func (h *ReminderHandlers) ListReminders(ctx context.Context, _ *mcp.CallToolRequest, input ListRemindersInput) (*mcp.CallToolResult, ListRemindersOutput, error) {
	var all []models.Reminder
	if input.ContactID != "" {
		all = h.store.RemindersForContact(ctx, input.ContactID)
	} else {
		all = h.store.Reminders(ctx)
	}

	out := []ReminderOutput{}
	for _, r := range SortReminders(all) {
		if r.IsArchived && !input.IncludeArchived {
			continue
		}
		if r.IsCompleted && !input.IncludeDone {
			continue
		}
		out = append(out, reminderToOutput(r))
	}
	return nil, ListRemindersOutput{Reminders: out}, nil
}

// SortReminders orders reminders by due date, earliest first.
func SortReminders(reminders []models.Reminder) []models.Reminder {
	sorted := append([]models.Reminder(nil), reminders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueDate.Before(sorted[j].DueDate)
	})
	return sorted
}

type CompleteReminderInput struct {
	ID        string `json:"id" jsonschema:"Reminder ID (required)"`
	Completed *bool  `json:"completed,omitempty" jsonschema:"Completion state (default true)"`
	Archive   bool   `json:"archive,omitempty" jsonschema:"Also archive the reminder"`
}

func (h *ReminderHandlers) CompleteReminder(ctx context.Context, _ *mcp.CallToolRequest, input CompleteReminderInput) (*mcp.CallToolResult, ReminderOutput, error) {
	if input.ID == "" {
		return nil, ReminderOutput{}, fmt.Errorf("id is required")
	}
	completed := true
	if input.Completed != nil {
		completed = *input.Completed
	}
	upd := store.ReminderUpdate{IsCompleted: &completed}
	if input.Archive {
		archived := true
		upd.IsArchived = &archived
	}

	reminder, err := h.store.UpdateReminder(ctx, input.ID, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ReminderOutput{}, fmt.Errorf("reminder not found: %s", input.ID)
		}
		return nil, ReminderOutput{}, fmt.Errorf("failed to update reminder: %w", err)
	}
	return nil, reminderToOutput(reminder), nil
}

func (h *ReminderHandlers) DeleteReminder(ctx context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}
	if err := h.store.DeleteReminder(ctx, input.ID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}

type StatsInput struct{}

type StatsOutput struct {
	Reminders insights.ReminderStats `json:"reminders"`
	Notes     insights.NoteStats     `json:"notes"`
}

func (h *ReminderHandlers) Stats(ctx context.Context, _ *mcp.CallToolRequest, _ StatsInput) (*mcp.CallToolResult, StatsOutput, error) {
	return nil, StatsOutput{
		Reminders: insights.Reminders(h.store.Reminders(ctx), h.now().In(h.loc)),
		Notes:     insights.Notes(h.store.Notes(ctx)),
	}, nil
}
