// ABOUTME: MCP resource handlers exposing stored data by URI
// ABOUTME: Read-only JSON views of contacts, notes, reminders, folders and settings under callbook://
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/callbook/store"
)

const uriScheme = "callbook://"

type ResourceHandlers struct {
	store *store.Store
}

func NewResourceHandlers(s *store.Store) *ResourceHandlers {
	return &ResourceHandlers{store: s}
}

// Resources lists the fixed resources served by ReadResource.
func (h *ResourceHandlers) Resources() []*mcp.Resource {
	names := map[string]string{
		"contacts":  "All contacts",
		"notes":     "All call notes",
		"reminders": "All reminders",
		"folders":   "Note folders",
		"settings":  "Note and premium settings",
	}
	var out []*mcp.Resource
	for _, key := range []string{"contacts", "notes", "reminders", "folders", "settings"} {
		out = append(out, &mcp.Resource{
			URI:         uriScheme + key,
			Name:        key,
			Description: names[key],
			MIMEType:    "application/json",
		})
	}
	return out
}

// ReadResource handles resource read requests.
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, uriScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", uriScheme)
	}
	parts := strings.Split(strings.TrimPrefix(uri, uriScheme), "/")

	var data any
	switch parts[0] {
	case "contacts":
		if len(parts) > 1 && parts[1] != "" {
			c, ok := h.store.Contact(ctx, parts[1])
			if !ok {
				return nil, fmt.Errorf("resource not found: %s", uri)
			}
			data = map[string]any{
				"contact":   c,
				"notes":     h.store.NotesForContact(ctx, c.ID),
				"reminders": h.store.RemindersForContact(ctx, c.ID),
			}
		} else {
			data = h.store.Contacts(ctx)
		}
	case "notes":
		data = h.store.Notes(ctx)
	case "reminders":
		data = h.store.Reminders(ctx)
	case "folders":
		data = h.store.Folders(ctx)
	case "settings":
		data = map[string]any{
			"note":    h.store.NoteSettings(ctx),
			"premium": h.store.PremiumSettings(ctx),
			"tags":    h.store.PresetTags(ctx),
		}
	default:
		return nil, fmt.Errorf("resource not found: %s", uri)
	}

	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{URI: uri, MIMEType: "application/json", Text: string(body)},
	}}, nil
}
