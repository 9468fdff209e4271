// ABOUTME: Contact reads and mutations
// ABOUTME: Add, update, delete and duplicate-safe bulk import keyed by phone number
package store

import (
	"context"
	"strings"

	"github.com/harperreed/callbook/models"
)

type NewContact struct {
	Name              string
	PhoneNumber       string
	BusinessCardImage string
}

// ContactUpdate carries the fields to change; nil fields are left alone.
type ContactUpdate struct {
	Name              *string
	PhoneNumber       *string
	BusinessCardImage *string
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Imported int
	Skipped  int
	Total    int
}

func (s *Store) Contacts(ctx context.Context) []models.Contact {
	return s.contacts.get(ctx, s)
}

// Contact looks up one contact; ok is false for unknown or dangling ids.
func (s *Store) Contact(ctx context.Context, id string) (models.Contact, bool) {
	for _, c := range s.Contacts(ctx) {
		if c.ID == id {
			return c, true
		}
	}
	return models.Contact{}, false
}

func (s *Store) AddContact(ctx context.Context, in NewContact) (models.Contact, error) {
	contact := models.Contact{
		ID:                s.newID(),
		Name:              strings.TrimSpace(in.Name),
		PhoneNumber:       strings.TrimSpace(in.PhoneNumber),
		BusinessCardImage: in.BusinessCardImage,
		CreatedAt:         s.now(),
	}
	_, err := s.contacts.mutate(ctx, s, func(cur []models.Contact) ([]models.Contact, error) {
		return append(cur, contact), nil
	})
	if err != nil {
		return models.Contact{}, err
	}
	return contact, nil
}

func (s *Store) UpdateContact(ctx context.Context, id string, upd ContactUpdate) (models.Contact, error) {
	var updated models.Contact
	_, err := s.contacts.mutate(ctx, s, func(cur []models.Contact) ([]models.Contact, error) {
		i := indexOf(cur, id, func(c models.Contact) string { return c.ID })
		if i < 0 {
			return nil, ErrNotFound
		}
		c := &cur[i]
		if upd.Name != nil {
			c.Name = strings.TrimSpace(*upd.Name)
		}
		if upd.PhoneNumber != nil {
			c.PhoneNumber = strings.TrimSpace(*upd.PhoneNumber)
		}
		if upd.BusinessCardImage != nil {
			c.BusinessCardImage = *upd.BusinessCardImage
		}
		updated = *c
		return cur, nil
	})
	return updated, err
}

// DeleteContact removes the contact. Notes keep their contactId and
// contactName snapshot.
func (s *Store) DeleteContact(ctx context.Context, id string) error {
	_, err := s.contacts.mutate(ctx, s, func(cur []models.Contact) ([]models.Contact, error) {
		return removeByID(cur, id, func(c models.Contact) string { return c.ID })
	})
	return err
}

// ImportContacts appends device contacts whose phone number is not already
// known. Entries without a usable phone number are skipped. Running the same
// import twice adds nothing the second time.
func (s *Store) ImportContacts(ctx context.Context, device []models.DeviceContact) (ImportResult, error) {
	var result ImportResult
	next, err := s.contacts.mutate(ctx, s, func(cur []models.Contact) ([]models.Contact, error) {
		result = ImportResult{}
		matcher := newPhoneMatcher(cur)
		for _, dc := range device {
			phone := strings.TrimSpace(firstPhone(dc.PhoneNumbers))
			if phone == "" || matcher.has(phone) {
				result.Skipped++
				continue
			}
			name := strings.TrimSpace(dc.Name)
			if name == "" {
				name = phone
			}
			cur = append(cur, models.Contact{
				ID:          s.newID(),
				Name:        name,
				PhoneNumber: phone,
				CreatedAt:   s.now(),
			})
			matcher.add(phone)
			result.Imported++
		}
		if result.Imported == 0 {
			return cur, errUnchanged
		}
		return cur, nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	result.Total = len(next)
	return result, nil
}

func indexOf[E any](list []E, id string, idOf func(E) string) int {
	for i := range list {
		if idOf(list[i]) == id {
			return i
		}
	}
	return -1
}

// removeByID filters out id. A missing id is reported as errUnchanged so the
// delete is a no-op.
func removeByID[E any](list []E, id string, idOf func(E) string) ([]E, error) {
	out := list[:0]
	found := false
	for _, e := range list {
		if idOf(e) == id {
			found = true
			continue
		}
		out = append(out, e)
	}
	if !found {
		return list, errUnchanged
	}
	return out, nil
}
