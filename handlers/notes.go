// ABOUTME: Call-note MCP tool handlers
// ABOUTME: Implements note CRUD, move_notes, group_notes, search_notes, suggest_queries and filter_notes tools
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/callbook/grouping"
	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/search"
	"github.com/harperreed/callbook/store"
)

type NoteHandlers struct {
	store *store.Store
	loc   *time.Location
}

func NewNoteHandlers(s *store.Store, loc *time.Location) *NoteHandlers {
	if loc == nil {
		loc = time.Local
	}
	return &NoteHandlers{store: s, loc: loc}
}

type AddNoteInput struct {
	ContactID     string   `json:"contact_id,omitempty" jsonschema:"Contact ID; the contact name is looked up when contact_name is omitted"`
	ContactName   string   `json:"contact_name,omitempty" jsonschema:"Contact name as shown on the note"`
	Note          string   `json:"note,omitempty" jsonschema:"Note text; empty notes are marked auto-generated"`
	CallStartTime string   `json:"call_start_time,omitempty" jsonschema:"Call start (RFC3339 or YYYY-MM-DD HH:MM, default now)"`
	CallEndTime   string   `json:"call_end_time,omitempty" jsonschema:"Call end (default start)"`
	CallDirection string   `json:"call_direction,omitempty" jsonschema:"inbound or outbound (default outbound)"`
	Status        string   `json:"status,omitempty" jsonschema:"follow-up, waiting-reply, closed or other"`
	CustomStatus  string   `json:"custom_status,omitempty" jsonschema:"Label shown when status is other"`
	Priority      string   `json:"priority,omitempty" jsonschema:"low, medium or high"`
	Tags          []string `json:"tags,omitempty" jsonschema:"Tags"`
	Category      string   `json:"category,omitempty" jsonschema:"Free-form category"`
	FolderID      string   `json:"folder_id,omitempty" jsonschema:"Folder ID"`
}

func (h *NoteHandlers) AddNote(ctx context.Context, _ *mcp.CallToolRequest, input AddNoteInput) (*mcp.CallToolResult, NoteOutput, error) {
	name := strings.TrimSpace(input.ContactName)
	if name == "" && input.ContactID != "" {
		c, ok := h.store.Contact(ctx, input.ContactID)
		if !ok {
			return nil, NoteOutput{}, fmt.Errorf("contact not found: %s", input.ContactID)
		}
		name = c.Name
	}
	if name == "" {
		return nil, NoteOutput{}, fmt.Errorf("contact_id or contact_name is required")
	}

	start, err := parseTime(input.CallStartTime, h.loc)
	if err != nil {
		return nil, NoteOutput{}, fmt.Errorf("call_start_time: %w", err)
	}
	end, err := parseTime(input.CallEndTime, h.loc)
	if err != nil {
		return nil, NoteOutput{}, fmt.Errorf("call_end_time: %w", err)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return nil, NoteOutput{}, fmt.Errorf("call_end_time is before call_start_time")
	}

	note, err := h.store.AddNote(ctx, store.NewNote{
		ContactID:     input.ContactID,
		ContactName:   name,
		Note:          input.Note,
		CallStartTime: start,
		CallEndTime:   end,
		CallDirection: models.CallDirection(input.CallDirection),
		Status:        models.NoteStatus(input.Status),
		CustomStatus:  input.CustomStatus,
		Priority:      models.Priority(input.Priority),
		Tags:          input.Tags,
		Category:      input.Category,
		FolderID:      input.FolderID,
	})
	if err != nil {
		return nil, NoteOutput{}, fmt.Errorf("failed to create note: %w", err)
	}
	return nil, noteToOutput(note), nil
}

type UpdateNoteInput struct {
	ID           string    `json:"id" jsonschema:"Note ID (required)"`
	Note         *string   `json:"note,omitempty" jsonschema:"Updated note text"`
	Status       *string   `json:"status,omitempty" jsonschema:"Updated status"`
	CustomStatus *string   `json:"custom_status,omitempty" jsonschema:"Updated custom status label"`
	Priority     *string   `json:"priority,omitempty" jsonschema:"Updated priority"`
	Tags         *[]string `json:"tags,omitempty" jsonschema:"Replacement tag list"`
	Category     *string   `json:"category,omitempty" jsonschema:"Updated category"`
	FolderID     *string   `json:"folder_id,omitempty" jsonschema:"Updated folder ID; empty string clears it"`
}

func (h *NoteHandlers) UpdateNote(ctx context.Context, _ *mcp.CallToolRequest, input UpdateNoteInput) (*mcp.CallToolResult, NoteOutput, error) {
	if input.ID == "" {
		return nil, NoteOutput{}, fmt.Errorf("id is required")
	}

	upd := store.NoteUpdate{
		Note:         input.Note,
		CustomStatus: input.CustomStatus,
		Tags:         input.Tags,
		Category:     input.Category,
		FolderID:     input.FolderID,
	}
	if input.Status != nil {
		status := models.NoteStatus(*input.Status)
		if !status.Valid() {
			return nil, NoteOutput{}, fmt.Errorf("invalid status: %s", *input.Status)
		}
		upd.Status = &status
	}
	if input.Priority != nil {
		priority := models.Priority(*input.Priority)
		if !priority.Valid() {
			return nil, NoteOutput{}, fmt.Errorf("invalid priority: %s", *input.Priority)
		}
		upd.Priority = &priority
	}

	note, err := h.store.UpdateNote(ctx, input.ID, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NoteOutput{}, fmt.Errorf("note not found: %s", input.ID)
		}
		return nil, NoteOutput{}, fmt.Errorf("failed to update note: %w", err)
	}
	return nil, noteToOutput(note), nil
}

func (h *NoteHandlers) DeleteNote(ctx context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}
	if err := h.store.DeleteNote(ctx, input.ID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete note: %w", err)
	}
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}

type MoveNotesInput struct {
	IDs      []string `json:"ids" jsonschema:"Note IDs to move (required)"`
	FolderID string   `json:"folder_id,omitempty" jsonschema:"Destination folder; empty removes notes from their folder"`
}

type MoveNotesOutput struct {
	Moved int `json:"moved"`
}

func (h *NoteHandlers) MoveNotes(ctx context.Context, _ *mcp.CallToolRequest, input MoveNotesInput) (*mcp.CallToolResult, MoveNotesOutput, error) {
	if len(input.IDs) == 0 {
		return nil, MoveNotesOutput{}, fmt.Errorf("ids is required")
	}
	if input.FolderID != "" {
		if _, ok := store.FolderByID(h.store.Folders(ctx), input.FolderID); !ok {
			return nil, MoveNotesOutput{}, fmt.Errorf("folder not found: %s", input.FolderID)
		}
	}
	moved, err := h.store.MoveNotes(ctx, input.IDs, input.FolderID)
	if err != nil {
		return nil, MoveNotesOutput{}, fmt.Errorf("failed to move notes: %w", err)
	}
	return nil, MoveNotesOutput{Moved: moved}, nil
}

type GroupNotesInput struct {
	GroupBy   string `json:"group_by,omitempty" jsonschema:"none, day, week, month, year or folder (default from note settings)"`
	ContactID string `json:"contact_id,omitempty" jsonschema:"Only group notes for this contact"`
	Query     string `json:"query,omitempty" jsonschema:"Only group notes matching this filter"`
}

type GroupNotesOutput struct {
	GroupBy string        `json:"group_by"`
	Groups  []GroupOutput `json:"groups"`
	Count   int           `json:"count"`
}

func (h *NoteHandlers) GroupNotes(ctx context.Context, _ *mcp.CallToolRequest, input GroupNotesInput) (*mcp.CallToolResult, GroupNotesOutput, error) {
	mode := models.GroupBy(input.GroupBy)
	if input.GroupBy == "" {
		mode = h.store.NoteSettings(ctx).DefaultGroupBy
	}
	if !mode.Valid() {
		return nil, GroupNotesOutput{}, fmt.Errorf("invalid group_by: %s", input.GroupBy)
	}

	var notes []models.CallNote
	if input.ContactID != "" {
		notes = h.store.NotesForContact(ctx, input.ContactID)
	} else {
		notes = h.store.Notes(ctx)
	}
	if input.Query != "" {
		notes = search.NewFilter(input.Query, h.store.Contacts(ctx)).Apply(notes)
	}

	groups := grouping.Build(notes, mode, h.store.Folders(ctx), grouping.WithLocation(h.loc))
	return nil, GroupNotesOutput{GroupBy: string(mode), Groups: groupsToOutput(groups), Count: len(notes)}, nil
}

type SearchNotesInput struct {
	Query string `json:"query" jsonschema:"Search text (required)"`
}

type SearchNotesOutput struct {
	Results     []SearchResultOutput `json:"results"`
	Suggestions []string             `json:"suggestions,omitempty"`
}

func (h *NoteHandlers) SearchNotes(ctx context.Context, _ *mcp.CallToolRequest, input SearchNotesInput) (*mcp.CallToolResult, SearchNotesOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchNotesOutput{}, fmt.Errorf("query is required")
	}
	notes := h.store.Notes(ctx)
	return nil, SearchNotesOutput{
		Results:     resultsToOutput(search.Search(notes, input.Query)),
		Suggestions: search.Suggest(input.Query, h.store.Contacts(ctx), notes),
	}, nil
}

type SuggestInput struct {
	Query string `json:"query" jsonschema:"Partial search text (at least two characters)"`
}

type SuggestOutput struct {
	Suggestions []string `json:"suggestions"`
}

func (h *NoteHandlers) SuggestQueries(ctx context.Context, _ *mcp.CallToolRequest, input SuggestInput) (*mcp.CallToolResult, SuggestOutput, error) {
	suggestions := search.Suggest(input.Query, h.store.Contacts(ctx), h.store.Notes(ctx))
	if suggestions == nil {
		suggestions = []string{}
	}
	return nil, SuggestOutput{Suggestions: suggestions}, nil
}

type FilterNotesInput struct {
	Query string `json:"query,omitempty" jsonschema:"Filter text matched against contact, note, status, tags, category and phone"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum notes to return (default 50)"`
}

type FilterNotesOutput struct {
	Notes []NoteOutput `json:"notes"`
	Count int          `json:"count"`
}

func (h *NoteHandlers) FilterNotes(ctx context.Context, _ *mcp.CallToolRequest, input FilterNotesInput) (*mcp.CallToolResult, FilterNotesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}
	matched := search.NewFilter(input.Query, h.store.Contacts(ctx)).Apply(h.store.Notes(ctx))
	count := len(matched)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return nil, FilterNotesOutput{Notes: notesToOutput(matched), Count: count}, nil
}
