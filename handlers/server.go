// ABOUTME: MCP server assembly
// ABOUTME: Registers every callbook tool, prompt and resource on one server
package handlers

import (
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/callbook/session"
	"github.com/harperreed/callbook/store"
	"github.com/harperreed/callbook/timeparse"
)

// NewServer builds the MCP server over st. Calls are tracked by a single
// session, matching one phone line.
func NewServer(st *store.Store, version string, loc *time.Location) *mcp.Server {
	contactHandlers := NewContactHandlers(st)
	noteHandlers := NewNoteHandlers(st, loc)
	reminderHandlers := NewReminderHandlers(st, loc)
	orderHandlers := NewOrderHandlers(st)
	folderHandlers := NewFolderHandlers(st)
	callHandlers := NewCallHandlers(st, session.New(st, session.WithTimeParser(timeparse.Parse)))
	promptHandlers := NewPromptHandlers(st)
	resourceHandlers := NewResourceHandlers(st)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "callbook",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact with a name and phone number",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search contacts by name or phone number",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Update a contact's name or phone number",
	}, contactHandlers.UpdateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_contact",
		Description: "Delete a contact (notes keep their contact name)",
	}, contactHandlers.DeleteContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_contacts",
		Description: "Import address book entries, skipping phone numbers already known",
	}, contactHandlers.ImportContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_note",
		Description: "Record a call note for a contact",
	}, noteHandlers.AddNote)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_note",
		Description: "Update a call note's text, status, priority, tags, category or folder",
	}, noteHandlers.UpdateNote)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a call note",
	}, noteHandlers.DeleteNote)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_notes",
		Description: "Move notes into a folder or out of every folder",
	}, noteHandlers.MoveNotes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "group_notes",
		Description: "Group notes by contact, day, week, month, year or folder",
	}, noteHandlers.GroupNotes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_notes",
		Description: "Search notes by contact, content, tag or category with highlighted matches",
	}, noteHandlers.SearchNotes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "suggest_queries",
		Description: "Suggest search completions from contacts, note words, tags and categories",
	}, noteHandlers.SuggestQueries)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "filter_notes",
		Description: "List notes matching a free-text filter",
	}, noteHandlers.FilterNotes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_reminder",
		Description: "Create a follow-up reminder; due_date accepts phrases like 'tomorrow at 3pm'",
	}, reminderHandlers.AddReminder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_reminders",
		Description: "List reminders by due date",
	}, reminderHandlers.ListReminders)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_reminder",
		Description: "Mark a reminder completed or open again",
	}, reminderHandlers.CompleteReminder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_reminder",
		Description: "Delete a reminder",
	}, reminderHandlers.DeleteReminder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stats",
		Description: "Reminder and note statistics including week-over-week growth",
	}, reminderHandlers.Stats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_order",
		Description: "Record an order for a contact",
	}, orderHandlers.AddOrder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_orders",
		Description: "List orders, optionally for one contact or status",
	}, orderHandlers.ListOrders)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_order_status",
		Description: "Change an order's status",
	}, orderHandlers.UpdateOrderStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_order_reminder",
		Description: "Create a follow-up reminder from an order's reminder date and time",
	}, orderHandlers.AddOrderReminder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_products",
		Description: "Add products to a catalog, creating the catalog if needed",
	}, orderHandlers.AddProducts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_folders",
		Description: "List note folders",
	}, folderHandlers.ListFolders)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_folder",
		Description: "Create a note folder",
	}, folderHandlers.AddFolder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_folder",
		Description: "Delete a folder; its notes become ungrouped",
	}, folderHandlers.DeleteFolder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preset_tags",
		Description: "List, add or remove preset tags",
	}, folderHandlers.PresetTags)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "note_settings",
		Description: "Read or change default note status, priority and grouping",
	}, folderHandlers.NoteSettings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "call_event",
		Description: "Advance the call session: ring, answer, decline, dial, hang_up, pick_contact, skip or reset",
	}, callHandlers.CallEvent)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_call_note",
		Description: "Save the note for the call just ended and optionally accept the suggested reminder",
	}, callHandlers.SaveCallNote)

	for _, p := range promptHandlers.Prompts() {
		server.AddPrompt(p, promptHandlers.GetPrompt)
	}
	for _, r := range resourceHandlers.Resources() {
		server.AddResource(r, resourceHandlers.ReadResource)
	}
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "contacts/{id}",
		Name:        "contact",
		Description: "One contact with its notes and reminders",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	return server
}
