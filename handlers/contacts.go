// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements add_contact, find_contacts, update_contact, delete_contact and import_contacts tools
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/store"
)

type ContactHandlers struct {
	store *store.Store
}

func NewContactHandlers(s *store.Store) *ContactHandlers {
	return &ContactHandlers{store: s}
}

type AddContactInput struct {
	Name              string `json:"name" jsonschema:"Contact name (required)"`
	PhoneNumber       string `json:"phone_number" jsonschema:"Contact phone number (required)"`
	BusinessCardImage string `json:"business_card_image,omitempty" jsonschema:"Reference to a scanned business card image"`
}

func (h *ContactHandlers) AddContact(ctx context.Context, _ *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ContactOutput{}, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(input.PhoneNumber) == "" {
		return nil, ContactOutput{}, fmt.Errorf("phone_number is required")
	}

	contact, err := h.store.AddContact(ctx, store.NewContact{
		Name:              input.Name,
		PhoneNumber:       input.PhoneNumber,
		BusinessCardImage: input.BusinessCardImage,
	})
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to create contact: %w", err)
	}
	return nil, contactToOutput(contact), nil
}

type FindContactsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search by name or phone number"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 50)"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
}

func (h *ContactHandlers) FindContacts(ctx context.Context, _ *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	matches := MatchContacts(h.store.Contacts(ctx), input.Query)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]ContactOutput, len(matches))
	for i, c := range matches {
		out[i] = contactToOutput(c)
	}
	return nil, FindContactsOutput{Contacts: out}, nil
}

// MatchContacts filters contacts by a case-insensitive name substring or a
// phone-number digit match.
func MatchContacts(contacts []models.Contact, query string) []models.Contact {
	query = strings.TrimSpace(query)
	if query == "" {
		return contacts
	}
	lower := strings.ToLower(query)
	digits := models.NormalizePhone(query)

	var out []models.Contact
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), lower) ||
			(digits != "" && strings.Contains(models.NormalizePhone(c.PhoneNumber), digits)) {
			out = append(out, c)
		}
	}
	return out
}

type UpdateContactInput struct {
	ID          string  `json:"id" jsonschema:"Contact ID (required)"`
	Name        *string `json:"name,omitempty" jsonschema:"Updated contact name"`
	PhoneNumber *string `json:"phone_number,omitempty" jsonschema:"Updated phone number"`
}

func (h *ContactHandlers) UpdateContact(ctx context.Context, _ *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ID == "" {
		return nil, ContactOutput{}, fmt.Errorf("id is required")
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ContactOutput{}, fmt.Errorf("name cannot be empty")
	}

	contact, err := h.store.UpdateContact(ctx, input.ID, store.ContactUpdate{
		Name:        input.Name,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ContactOutput{}, fmt.Errorf("contact not found: %s", input.ID)
		}
		return nil, ContactOutput{}, fmt.Errorf("failed to update contact: %w", err)
	}
	return nil, contactToOutput(contact), nil
}

type DeleteInput struct {
	ID string `json:"id" jsonschema:"ID of the record to delete (required)"`
}

type DeleteOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func (h *ContactHandlers) DeleteContact(ctx context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}
	if err := h.store.DeleteContact(ctx, input.ID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}

type DeviceContactInput struct {
	Name         string   `json:"name" jsonschema:"Display name from the address book"`
	PhoneNumbers []string `json:"phone_numbers" jsonschema:"Phone numbers; the first is used for matching"`
}

type ImportContactsInput struct {
	Contacts []DeviceContactInput `json:"contacts" jsonschema:"Address book entries to import"`
}

type ImportContactsOutput struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

func (h *ContactHandlers) ImportContacts(ctx context.Context, _ *mcp.CallToolRequest, input ImportContactsInput) (*mcp.CallToolResult, ImportContactsOutput, error) {
	device := make([]models.DeviceContact, len(input.Contacts))
	for i, c := range input.Contacts {
		device[i] = models.DeviceContact{Name: c.Name, PhoneNumbers: c.PhoneNumbers}
	}

	result, err := h.store.ImportContacts(ctx, device)
	if err != nil {
		return nil, ImportContactsOutput{}, fmt.Errorf("failed to import contacts: %w", err)
	}
	return nil, ImportContactsOutput{Imported: result.Imported, Skipped: result.Skipped, Total: result.Total}, nil
}
