// ABOUTME: Folder, tag and settings MCP tool handlers
// ABOUTME: Implements list_folders, add_folder, delete_folder, preset tag and note settings tools
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/store"
)

type FolderHandlers struct {
	store *store.Store
}

func NewFolderHandlers(s *store.Store) *FolderHandlers {
	return &FolderHandlers{store: s}
}

type ListFoldersInput struct{}

type ListFoldersOutput struct {
	Folders []FolderOutput `json:"folders"`
}

func (h *FolderHandlers) ListFolders(ctx context.Context, _ *mcp.CallToolRequest, _ ListFoldersInput) (*mcp.CallToolResult, ListFoldersOutput, error) {
	folders := h.store.Folders(ctx)
	out := make([]FolderOutput, len(folders))
	for i, f := range folders {
		out[i] = folderToOutput(f)
	}
	return nil, ListFoldersOutput{Folders: out}, nil
}

type AddFolderInput struct {
	Name        string `json:"name" jsonschema:"Folder name (required)"`
	Color       string `json:"color,omitempty" jsonschema:"Display color such as #3B82F6"`
	Description string `json:"description,omitempty" jsonschema:"Folder description"`
	Type        string `json:"type,omitempty" jsonschema:"general or sales-run (default general)"`
}

func (h *FolderHandlers) AddFolder(ctx context.Context, _ *mcp.CallToolRequest, input AddFolderInput) (*mcp.CallToolResult, FolderOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, FolderOutput{}, fmt.Errorf("name is required")
	}

	folder, err := h.store.AddFolder(ctx, store.NewFolder{
		Name:        input.Name,
		Color:       input.Color,
		Description: input.Description,
		Type:        models.FolderType(input.Type),
	})
	if err != nil {
		return nil, FolderOutput{}, fmt.Errorf("failed to create folder: %w", err)
	}
	return nil, folderToOutput(folder), nil
}

func (h *FolderHandlers) DeleteFolder(ctx context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}
	if err := h.store.DeleteFolder(ctx, input.ID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete folder: %w", err)
	}
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}

type TagInput struct {
	Add    string `json:"add,omitempty" jsonschema:"Preset tag to add"`
	Remove string `json:"remove,omitempty" jsonschema:"Preset tag to remove"`
}

type TagsOutput struct {
	Tags []string `json:"tags"`
}

func (h *FolderHandlers) PresetTags(ctx context.Context, _ *mcp.CallToolRequest, input TagInput) (*mcp.CallToolResult, TagsOutput, error) {
	tags := h.store.PresetTags(ctx)
	var err error
	if input.Add != "" {
		if tags, err = h.store.AddPresetTag(ctx, input.Add); err != nil {
			return nil, TagsOutput{}, fmt.Errorf("failed to add tag: %w", err)
		}
	}
	if input.Remove != "" {
		if tags, err = h.store.RemovePresetTag(ctx, input.Remove); err != nil {
			return nil, TagsOutput{}, fmt.Errorf("failed to remove tag: %w", err)
		}
	}
	return nil, TagsOutput{Tags: tags}, nil
}

type NoteSettingsInput struct {
	DefaultStatus   *string `json:"default_status,omitempty" jsonschema:"Status preselected for new notes"`
	DefaultPriority *string `json:"default_priority,omitempty" jsonschema:"Priority preselected for new notes"`
	DefaultGroupBy  *string `json:"default_group_by,omitempty" jsonschema:"Grouping used when none is requested"`
}

func (h *FolderHandlers) NoteSettings(ctx context.Context, _ *mcp.CallToolRequest, input NoteSettingsInput) (*mcp.CallToolResult, models.NoteSettings, error) {
	settings := h.store.NoteSettings(ctx)
	changed := false
	if input.DefaultStatus != nil {
		status := models.NoteStatus(*input.DefaultStatus)
		if !status.Valid() {
			return nil, models.NoteSettings{}, fmt.Errorf("invalid status: %s", *input.DefaultStatus)
		}
		settings.DefaultStatus, changed = status, true
	}
	if input.DefaultPriority != nil {
		priority := models.Priority(*input.DefaultPriority)
		if !priority.Valid() {
			return nil, models.NoteSettings{}, fmt.Errorf("invalid priority: %s", *input.DefaultPriority)
		}
		settings.DefaultPriority, changed = priority, true
	}
	if input.DefaultGroupBy != nil {
		mode := models.GroupBy(*input.DefaultGroupBy)
		if !mode.Valid() {
			return nil, models.NoteSettings{}, fmt.Errorf("invalid group_by: %s", *input.DefaultGroupBy)
		}
		settings.DefaultGroupBy, changed = mode, true
	}
	if !changed {
		return nil, settings, nil
	}

	saved, err := h.store.SaveNoteSettings(ctx, settings)
	if err != nil {
		return nil, models.NoteSettings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return nil, saved, nil
}
