// ABOUTME: Call-session MCP tool handlers
// ABOUTME: Drives the ring/answer/dial/hang-up state machine and saves the resulting note
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/session"
	"github.com/harperreed/callbook/store"
)

type CallHandlers struct {
	store   *store.Store
	session *session.Session
}

func NewCallHandlers(s *store.Store, sess *session.Session) *CallHandlers {
	return &CallHandlers{store: s, session: sess}
}

type CallEventInput struct {
	Event     string `json:"event" jsonschema:"ring, answer, decline, dial, hang_up, pick_contact, skip or reset (required)"`
	ContactID string `json:"contact_id,omitempty" jsonschema:"Contact for ring, dial and pick_contact"`
}

type CallStateOutput struct {
	SessionID   string `json:"session_id,omitempty"`
	State       string `json:"state"`
	Editing     bool   `json:"editing"`
	ContactID   string `json:"contact_id,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
	Direction   string `json:"direction,omitempty"`
	StartedAt   string `json:"started_at,omitempty"`
	EndedAt     string `json:"ended_at,omitempty"`
}

func viewToOutput(v session.View) CallStateOutput {
	out := CallStateOutput{
		SessionID: v.ID,
		State:     string(v.State),
		Editing:   v.Editing,
		Direction: string(v.Direction),
		StartedAt: formatTime(v.StartedAt),
		EndedAt:   formatTime(v.EndedAt),
	}
	if v.Contact != nil {
		out.ContactID = v.Contact.ID
		out.ContactName = v.Contact.Name
	}
	return out
}

func (h *CallHandlers) contact(ctx context.Context, id string) (models.Contact, error) {
	if id == "" {
		return models.Contact{}, fmt.Errorf("contact_id is required")
	}
	c, ok := h.store.Contact(ctx, id)
	if !ok {
		return models.Contact{}, fmt.Errorf("contact not found: %s", id)
	}
	return c, nil
}

func (h *CallHandlers) CallEvent(ctx context.Context, _ *mcp.CallToolRequest, input CallEventInput) (*mcp.CallToolResult, CallStateOutput, error) {
	var err error
	switch input.Event {
	case "ring", "dial", "pick_contact":
		var c models.Contact
		if c, err = h.contact(ctx, input.ContactID); err != nil {
			return nil, CallStateOutput{}, err
		}
		switch input.Event {
		case "ring":
			err = h.session.Ring(c)
		case "dial":
			err = h.session.Dial(c)
		default:
			err = h.session.PickContact(c)
		}
	case "answer":
		err = h.session.Answer()
	case "decline":
		err = h.session.Decline()
	case "hang_up":
		err = h.session.HangUp()
	case "skip":
		err = h.session.Skip()
	case "reset":
		h.session.Reset()
	default:
		return nil, CallStateOutput{}, fmt.Errorf("invalid event: %s", input.Event)
	}
	if err != nil {
		return nil, CallStateOutput{}, err
	}
	return nil, viewToOutput(h.session.View()), nil
}

type SaveCallNoteInput struct {
	Note           string   `json:"note,omitempty" jsonschema:"Note text; empty notes are kept as auto-generated"`
	Status         string   `json:"status,omitempty" jsonschema:"Note status"`
	CustomStatus   string   `json:"custom_status,omitempty" jsonschema:"Label when status is other"`
	Priority       string   `json:"priority,omitempty" jsonschema:"Note priority"`
	Tags           []string `json:"tags,omitempty" jsonschema:"Tags"`
	Category       string   `json:"category,omitempty" jsonschema:"Category"`
	FolderID       string   `json:"folder_id,omitempty" jsonschema:"Folder ID"`
	CreateReminder bool     `json:"create_reminder,omitempty" jsonschema:"Create the suggested reminder when the note mentions a time"`
}

type SaveCallNoteOutput struct {
	Note       NoteOutput      `json:"note"`
	Suggestion *ReminderOutput `json:"suggested_reminder,omitempty"`
	Reminder   *ReminderOutput `json:"reminder,omitempty"`
}

func (h *CallHandlers) SaveCallNote(ctx context.Context, _ *mcp.CallToolRequest, input SaveCallNoteInput) (*mcp.CallToolResult, SaveCallNoteOutput, error) {
	note, suggestion, err := h.session.Save(ctx, session.Draft{
		Text:         input.Note,
		Status:       models.NoteStatus(input.Status),
		CustomStatus: input.CustomStatus,
		Priority:     models.Priority(input.Priority),
		Tags:         input.Tags,
		Category:     input.Category,
		FolderID:     input.FolderID,
	})
	if err != nil {
		return nil, SaveCallNoteOutput{}, err
	}

	out := SaveCallNoteOutput{Note: noteToOutput(note)}
	if suggestion == nil {
		return nil, out, nil
	}

	preview := reminderToOutput(models.Reminder{
		ContactID:     suggestion.ContactID,
		ContactName:   suggestion.ContactName,
		Title:         suggestion.Title,
		Description:   suggestion.Description,
		DueDate:       suggestion.DueDate,
		RelatedNoteID: suggestion.RelatedNoteID,
	})
	out.Suggestion = &preview

	if input.CreateReminder {
		reminder, err := h.store.AddReminder(ctx, suggestion.Reminder())
		if err != nil {
			return nil, SaveCallNoteOutput{}, fmt.Errorf("note saved but reminder failed: %w", err)
		}
		r := reminderToOutput(reminder)
		out.Reminder = &r
	}
	return nil, out, nil
}
