// ABOUTME: Call-note reads and mutations
// ABOUTME: Derives duration and auto-generated flag, normalizes tags, stamps updatedAt
package store

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/callbook/models"
)

// NewNote is the input for AddNote. ContactName is stored as given and never
// re-derived from the contact afterwards.
type NewNote struct {
	ContactID     string
	ContactName   string
	Note          string
	CallStartTime time.Time
	CallEndTime   time.Time
	CallDirection models.CallDirection
	Status        models.NoteStatus
	CustomStatus  string
	Priority      models.Priority
	Tags          []string
	Category      string
	FolderID      string
}

// NoteUpdate carries the fields to change; nil fields are left alone.
type NoteUpdate struct {
	Note          *string
	CallStartTime *time.Time
	CallEndTime   *time.Time
	CallDirection *models.CallDirection
	Status        *models.NoteStatus
	CustomStatus  *string
	Priority      *models.Priority
	Tags          *[]string
	Category      *string
	FolderID      *string
}

func (s *Store) Notes(ctx context.Context) []models.CallNote {
	return s.notes.get(ctx, s)
}

func (s *Store) Note(ctx context.Context, id string) (models.CallNote, bool) {
	for _, n := range s.Notes(ctx) {
		if n.ID == id {
			return n, true
		}
	}
	return models.CallNote{}, false
}

// NotesForContact returns the contact's notes, newest call first.
func (s *Store) NotesForContact(ctx context.Context, contactID string) []models.CallNote {
	var out []models.CallNote
	for _, n := range s.Notes(ctx) {
		if n.ContactID == contactID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CallStartTime.After(out[j].CallStartTime)
	})
	return out
}

func (s *Store) AddNote(ctx context.Context, in NewNote) (models.CallNote, error) {
	now := s.now()
	start := in.CallStartTime
	if start.IsZero() {
		start = now
	}
	end := in.CallEndTime
	if end.IsZero() {
		end = start
	}

	note := models.CallNote{
		ID:            s.newID(),
		ContactID:     in.ContactID,
		ContactName:   in.ContactName,
		Note:          in.Note,
		CallStartTime: start,
		CallEndTime:   end,
		CallDirection: in.CallDirection,
		Status:        in.Status,
		Priority:      in.Priority,
		Tags:          models.NormalizeTags(in.Tags),
		Category:      strings.TrimSpace(in.Category),
		FolderID:      in.FolderID,
		CreatedAt:     now,
	}
	if !note.CallDirection.Valid() {
		note.CallDirection = models.DirectionOutbound
	}
	if !note.Status.Valid() {
		note.Status = models.StatusFollowUp
	}
	if note.Status == models.StatusOther {
		note.CustomStatus = strings.TrimSpace(in.CustomStatus)
	}
	if !note.Priority.Valid() {
		note.Priority = models.PriorityMedium
	}
	deriveCallFields(&note)

	_, err := s.notes.mutate(ctx, s, func(cur []models.CallNote) ([]models.CallNote, error) {
		return append(cur, note), nil
	})
	if err != nil {
		return models.CallNote{}, err
	}
	return note, nil
}

func (s *Store) UpdateNote(ctx context.Context, id string, upd NoteUpdate) (models.CallNote, error) {
	var updated models.CallNote
	_, err := s.notes.mutate(ctx, s, func(cur []models.CallNote) ([]models.CallNote, error) {
		i := indexOf(cur, id, func(n models.CallNote) string { return n.ID })
		if i < 0 {
			return nil, ErrNotFound
		}
		n := &cur[i]
		if upd.Note != nil {
			n.Note = *upd.Note
		}
		if upd.CallStartTime != nil {
			n.CallStartTime = *upd.CallStartTime
		}
		if upd.CallEndTime != nil {
			n.CallEndTime = *upd.CallEndTime
		}
		if upd.CallDirection != nil && upd.CallDirection.Valid() {
			n.CallDirection = *upd.CallDirection
		}
		if upd.Status != nil && upd.Status.Valid() {
			n.Status = *upd.Status
		}
		if upd.CustomStatus != nil {
			n.CustomStatus = strings.TrimSpace(*upd.CustomStatus)
		}
		if n.Status != models.StatusOther {
			n.CustomStatus = ""
		}
		if upd.Priority != nil && upd.Priority.Valid() {
			n.Priority = *upd.Priority
		}
		if upd.Tags != nil {
			n.Tags = models.NormalizeTags(*upd.Tags)
		}
		if upd.Category != nil {
			n.Category = strings.TrimSpace(*upd.Category)
		}
		if upd.FolderID != nil {
			n.FolderID = *upd.FolderID
		}
		deriveCallFields(n)
		stamp := s.now()
		n.UpdatedAt = &stamp
		updated = *n
		return cur, nil
	})
	return updated, err
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	_, err := s.notes.mutate(ctx, s, func(cur []models.CallNote) ([]models.CallNote, error) {
		return removeByID(cur, id, func(n models.CallNote) string { return n.ID })
	})
	return err
}

// MoveNotes sets folderID on every listed note. An empty folderID clears it.
func (s *Store) MoveNotes(ctx context.Context, ids []string, folderID string) (int, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	moved := 0
	_, err := s.notes.mutate(ctx, s, func(cur []models.CallNote) ([]models.CallNote, error) {
		moved = 0
		stamp := s.now()
		for i := range cur {
			if want[cur[i].ID] && cur[i].FolderID != folderID {
				cur[i].FolderID = folderID
				cur[i].UpdatedAt = &stamp
				moved++
			}
		}
		if moved == 0 {
			return cur, errUnchanged
		}
		return cur, nil
	})
	return moved, err
}

// deriveCallFields recomputes the duration and auto-generated flag.
func deriveCallFields(n *models.CallNote) {
	d := n.CallEndTime.Sub(n.CallStartTime)
	if d < 0 {
		d = 0
	}
	n.CallDuration = int64(d / time.Second)
	n.IsAutoGenerated = strings.TrimSpace(n.Note) == ""
}
