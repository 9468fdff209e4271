// ABOUTME: Tool output shapes and conversions from store records
// ABOUTME: Timestamps are rendered as RFC3339 strings
package handlers

import (
	"fmt"
	"time"

	"github.com/harperreed/callbook/grouping"
	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/search"
)

type ContactOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	CreatedAt   string `json:"created_at"`
}

type NoteOutput struct {
	ID              string   `json:"id"`
	ContactID       string   `json:"contact_id"`
	ContactName     string   `json:"contact_name"`
	Note            string   `json:"note"`
	CallStartTime   string   `json:"call_start_time"`
	CallEndTime     string   `json:"call_end_time"`
	CallDuration    int64    `json:"call_duration_seconds"`
	IsAutoGenerated bool     `json:"is_auto_generated"`
	CallDirection   string   `json:"call_direction"`
	Status          string   `json:"status"`
	StatusLabel     string   `json:"status_label"`
	Priority        string   `json:"priority"`
	Tags            []string `json:"tags"`
	Category        string   `json:"category,omitempty"`
	FolderID        string   `json:"folder_id,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       *string  `json:"updated_at,omitempty"`
}

type ReminderOutput struct {
	ID            string  `json:"id"`
	ContactID     string  `json:"contact_id"`
	ContactName   string  `json:"contact_name"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	DueDate       string  `json:"due_date"`
	IsCompleted   bool    `json:"is_completed"`
	IsArchived    bool    `json:"is_archived"`
	RelatedNoteID string  `json:"related_note_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
	CompletedAt   *string `json:"completed_at,omitempty"`
}

type OrderItemOutput struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type OrderOutput struct {
	ID           string            `json:"id"`
	ContactID    string            `json:"contact_id"`
	ContactName  string            `json:"contact_name"`
	Items        []OrderItemOutput `json:"items"`
	TotalAmount  float64           `json:"total_amount"`
	Status       string            `json:"status"`
	Notes        string            `json:"notes,omitempty"`
	ReminderDate string            `json:"reminder_date,omitempty"`
	ReminderTime string            `json:"reminder_time,omitempty"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
}

type FolderOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

type GroupOutput struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Kind      string        `json:"kind"`
	Notes     []NoteOutput  `json:"notes"`
	SubGroups []GroupOutput `json:"sub_groups,omitempty"`
}

type SearchResultOutput struct {
	Note           NoteOutput `json:"note"`
	MatchType      string     `json:"match_type"`
	MatchText      string     `json:"match_text"`
	HighlightStart int        `json:"highlight_start"`
	HighlightEnd   int        `json:"highlight_end"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// parseTime accepts RFC3339 or "2006-01-02 15:04" in loc. Empty input yields
// the zero time.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (want RFC3339 or YYYY-MM-DD HH:MM)", s)
}

func contactToOutput(c models.Contact) ContactOutput {
	return ContactOutput{
		ID:          c.ID,
		Name:        c.Name,
		PhoneNumber: c.PhoneNumber,
		CreatedAt:   formatTime(c.CreatedAt),
	}
}

func noteToOutput(n models.CallNote) NoteOutput {
	return NoteOutput{
		ID:              n.ID,
		ContactID:       n.ContactID,
		ContactName:     n.ContactName,
		Note:            n.Note,
		CallStartTime:   formatTime(n.CallStartTime),
		CallEndTime:     formatTime(n.CallEndTime),
		CallDuration:    n.CallDuration,
		IsAutoGenerated: n.IsAutoGenerated,
		CallDirection:   string(n.CallDirection),
		Status:          string(n.Status),
		StatusLabel:     n.StatusLabel(),
		Priority:        string(n.Priority),
		Tags:            n.Tags,
		Category:        n.Category,
		FolderID:        n.FolderID,
		CreatedAt:       formatTime(n.CreatedAt),
		UpdatedAt:       formatTimePtr(n.UpdatedAt),
	}
}

func notesToOutput(notes []models.CallNote) []NoteOutput {
	out := make([]NoteOutput, len(notes))
	for i, n := range notes {
		out[i] = noteToOutput(n)
	}
	return out
}

func reminderToOutput(r models.Reminder) ReminderOutput {
	return ReminderOutput{
		ID:            r.ID,
		ContactID:     r.ContactID,
		ContactName:   r.ContactName,
		Title:         r.Title,
		Description:   r.Description,
		DueDate:       formatTime(r.DueDate),
		IsCompleted:   r.IsCompleted,
		IsArchived:    r.IsArchived,
		RelatedNoteID: r.RelatedNoteID,
		CreatedAt:     formatTime(r.CreatedAt),
		CompletedAt:   formatTimePtr(r.CompletedAt),
	}
}

func orderToOutput(o models.Order) OrderOutput {
	items := make([]OrderItemOutput, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemOutput{ID: it.ID, Name: it.Name, Price: it.Price, Quantity: it.Quantity}
	}
	return OrderOutput{
		ID:           o.ID,
		ContactID:    o.ContactID,
		ContactName:  o.ContactName,
		Items:        items,
		TotalAmount:  o.TotalAmount,
		Status:       string(o.Status),
		Notes:        o.Notes,
		ReminderDate: o.ReminderDate,
		ReminderTime: o.ReminderTime,
		CreatedAt:    formatTime(o.CreatedAt),
		UpdatedAt:    formatTime(o.UpdatedAt),
	}
}

func folderToOutput(f models.NoteFolder) FolderOutput {
	return FolderOutput{ID: f.ID, Name: f.Name, Color: f.Color, Description: f.Description, Type: string(f.Type)}
}

func leafToOutput(l grouping.Leaf) GroupOutput {
	return GroupOutput{ID: l.ID, Title: l.Title, Kind: string(l.Kind), Notes: notesToOutput(l.Notes)}
}

func groupsToOutput(groups []grouping.Group) []GroupOutput {
	out := make([]GroupOutput, len(groups))
	for i, g := range groups {
		out[i] = leafToOutput(g.Leaf)
		for _, sub := range g.SubGroups {
			out[i].SubGroups = append(out[i].SubGroups, leafToOutput(sub))
		}
	}
	return out
}

func resultsToOutput(results []search.Result) []SearchResultOutput {
	out := make([]SearchResultOutput, len(results))
	for i, r := range results {
		out[i] = SearchResultOutput{
			Note:           noteToOutput(r.Note),
			MatchType:      string(r.MatchType),
			MatchText:      r.MatchText,
			HighlightStart: r.HighlightStart,
			HighlightEnd:   r.HighlightEnd,
		}
	}
	return out
}
