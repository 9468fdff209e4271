// ABOUTME: MCP prompt handlers for reusable call workflows
// ABOUTME: Builds call-prep and follow-up-plan prompts from stored notes and reminders
package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/callbook/insights"
	"github.com/harperreed/callbook/store"
)

type PromptHandlers struct {
	store *store.Store
	now   func() time.Time
}

func NewPromptHandlers(s *store.Store) *PromptHandlers {
	return &PromptHandlers{store: s, now: time.Now}
}

// Prompts lists the prompt definitions served by GetPrompt.
func (h *PromptHandlers) Prompts() []*mcp.Prompt {
	return []*mcp.Prompt{
		{
			Name:        "call-prep",
			Description: "Summarize past calls, open reminders and orders before calling a contact",
			Arguments: []*mcp.PromptArgument{
				{Name: "contact_id", Description: "Contact to prepare for", Required: true},
			},
		},
		{
			Name:        "follow-up-plan",
			Description: "Plan the day's follow-ups from overdue and upcoming reminders",
		},
	}
}

// GetPrompt generates the prompt message for the named template.
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "call-prep":
		return h.callPrep(ctx, request.Params.Arguments)
	case "follow-up-plan":
		return h.followUpPlan(ctx)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) callPrep(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	contactID := args["contact_id"]
	if contactID == "" {
		return nil, fmt.Errorf("contact_id is required")
	}
	contact, ok := h.store.Contact(ctx, contactID)
	if !ok {
		return nil, fmt.Errorf("contact not found: %s", contactID)
	}

	var b strings.Builder
	b.WriteString("I'm about to call this contact. Summarize where things stand and suggest talking points:\n\n")
	fmt.Fprintf(&b, "Name: %s\nPhone: %s\n", contact.Name, contact.PhoneNumber)

	notes := h.store.NotesForContact(ctx, contactID)
	if len(notes) > 0 {
		fmt.Fprintf(&b, "\nPrevious calls (%d):\n", len(notes))
		for i, n := range notes {
			if i == 10 {
				fmt.Fprintf(&b, "- ... %d older calls\n", len(notes)-i)
				break
			}
			text := n.Note
			if text == "" {
				text = "(no note)"
			}
			fmt.Fprintf(&b, "- %s %s [%s, %s]: %s\n",
				n.CallStartTime.Format("2006-01-02 15:04"), n.CallDirection, n.StatusLabel(), n.Priority, text)
		}
	}

	var open []string
	for _, r := range h.store.RemindersForContact(ctx, contactID) {
		if !r.IsCompleted && !r.IsArchived {
			open = append(open, fmt.Sprintf("- %s (due %s)", r.Title, r.DueDate.Format("2006-01-02 15:04")))
		}
	}
	if len(open) > 0 {
		b.WriteString("\nOpen reminders:\n")
		b.WriteString(strings.Join(open, "\n"))
		b.WriteString("\n")
	}

	for _, o := range h.store.Orders(ctx) {
		if o.ContactID == contactID {
			fmt.Fprintf(&b, "\nOrder %s: %d item(s), total %.2f, %s\n", o.ID, len(o.Items), o.TotalAmount, o.Status)
		}
	}

	return textPrompt("Call preparation for "+contact.Name, b.String()), nil
}

func (h *PromptHandlers) followUpPlan(ctx context.Context) (*mcp.GetPromptResult, error) {
	now := h.now()
	reminders := SortReminders(h.store.Reminders(ctx))
	stats := insights.Reminders(reminders, now)

	var b strings.Builder
	b.WriteString("Help me plan today's follow-up calls. Prioritize overdue items, then the rest of the week.\n\n")
	fmt.Fprintf(&b, "Open: %d, overdue: %d, due this week: %d, created this week: %d (%+.1f%% vs last week)\n\n",
		stats.Open, stats.Overdue, stats.DueThisWeek, stats.CreatedThisWeek, stats.GrowthPercent)

	weekAhead := now.AddDate(0, 0, 7)
	for _, r := range reminders {
		if r.IsCompleted || r.IsArchived || r.DueDate.After(weekAhead) {
			continue
		}
		marker := ""
		if r.DueDate.Before(now) {
			marker = " OVERDUE"
		}
		fmt.Fprintf(&b, "- %s: %s (due %s)%s\n", r.ContactName, r.Title, r.DueDate.Format("Mon Jan 2 15:04"), marker)
	}

	return textPrompt("Follow-up plan", b.String()), nil
}

func textPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
