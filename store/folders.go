// ABOUTME: Note folder reads and mutations
// ABOUTME: Deleting a folder first clears folderId on its notes, then removes the folder
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/harperreed/callbook/models"
)

type NewFolder struct {
	Name        string
	Color       string
	Description string
	Type        models.FolderType
}

// FolderUpdate carries the fields to change; nil fields are left alone.
type FolderUpdate struct {
	Name        *string
	Color       *string
	Description *string
	Type        *models.FolderType
}

func (s *Store) Folders(ctx context.Context) []models.NoteFolder {
	return s.folders.get(ctx, s)
}

// FolderByID resolves a weak folder reference. ok is false when id is empty
// or names a folder that no longer exists.
func FolderByID(folders []models.NoteFolder, id string) (models.NoteFolder, bool) {
	if id == "" {
		return models.NoteFolder{}, false
	}
	for _, f := range folders {
		if f.ID == id {
			return f, true
		}
	}
	return models.NoteFolder{}, false
}

func (s *Store) AddFolder(ctx context.Context, in NewFolder) (models.NoteFolder, error) {
	folder := models.NoteFolder{
		ID:          s.newID(),
		Name:        strings.TrimSpace(in.Name),
		Color:       in.Color,
		Description: in.Description,
		Type:        in.Type,
		CreatedAt:   s.now(),
	}
	if folder.Type == "" {
		folder.Type = models.FolderGeneral
	}
	_, err := s.folders.mutate(ctx, s, func(cur []models.NoteFolder) ([]models.NoteFolder, error) {
		return append(cur, folder), nil
	})
	if err != nil {
		return models.NoteFolder{}, err
	}
	return folder, nil
}

func (s *Store) UpdateFolder(ctx context.Context, id string, upd FolderUpdate) (models.NoteFolder, error) {
	var updated models.NoteFolder
	_, err := s.folders.mutate(ctx, s, func(cur []models.NoteFolder) ([]models.NoteFolder, error) {
		i := indexOf(cur, id, func(f models.NoteFolder) string { return f.ID })
		if i < 0 {
			return nil, ErrNotFound
		}
		f := &cur[i]
		if upd.Name != nil {
			f.Name = strings.TrimSpace(*upd.Name)
		}
		if upd.Color != nil {
			f.Color = *upd.Color
		}
		if upd.Description != nil {
			f.Description = *upd.Description
		}
		if upd.Type != nil && *upd.Type != "" {
			f.Type = *upd.Type
		}
		updated = *f
		return cur, nil
	})
	return updated, err
}

// DeleteFolder clears folderId on every note in the folder, writes the notes,
// then writes the folder list without it. Caches are updated only after the
// writes that succeeded; if the folder write fails the notes stay cleared.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	s.notes.mu.Lock()
	defer s.notes.mu.Unlock()
	s.folders.mu.Lock()
	defer s.folders.mu.Unlock()

	notes, err := s.notes.load(ctx, s)
	if err != nil {
		return err
	}
	folders, err := s.folders.load(ctx, s)
	if err != nil {
		return err
	}

	cleared := 0
	for i := range notes {
		if notes[i].FolderID == id {
			notes[i].FolderID = ""
			cleared++
		}
	}
	if cleared > 0 {
		if err := s.notes.commit(ctx, s, notes); err != nil {
			return err
		}
		s.logger.Debug("cleared folder from notes", "folder", id, "notes", cleared)
	}

	remaining, err := removeByID(folders, id, func(f models.NoteFolder) string { return f.ID })
	if errors.Is(err, errUnchanged) {
		return nil
	}
	return s.folders.commit(ctx, s, remaining)
}
