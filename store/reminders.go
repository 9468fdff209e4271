// ABOUTME: Reminder reads and mutations
// ABOUTME: completedAt follows the isCompleted flag; order follow-up reminders link back via order-<id>
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/callbook/models"
)

// ErrNoReminderDate is returned when an order has no reminder date to schedule.
var ErrNoReminderDate = errors.New("store: order has no reminder date")

type NewReminder struct {
	ContactID     string
	ContactName   string
	Title         string
	Description   string
	DueDate       time.Time
	RelatedNoteID string
}

// ReminderUpdate carries the fields to change; nil fields are left alone.
// CompletedAt is not settable; it follows IsCompleted.
type ReminderUpdate struct {
	Title         *string
	Description   *string
	DueDate       *time.Time
	IsCompleted   *bool
	IsArchived    *bool
	RelatedNoteID *string
}

func (s *Store) Reminders(ctx context.Context) []models.Reminder {
	return s.reminders.get(ctx, s)
}

func (s *Store) RemindersForContact(ctx context.Context, contactID string) []models.Reminder {
	var out []models.Reminder
	for _, r := range s.Reminders(ctx) {
		if r.ContactID == contactID {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) AddReminder(ctx context.Context, in NewReminder) (models.Reminder, error) {
	reminder := models.Reminder{
		ID:            s.newID(),
		ContactID:     in.ContactID,
		ContactName:   in.ContactName,
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		DueDate:       in.DueDate,
		RelatedNoteID: in.RelatedNoteID,
		CreatedAt:     s.now(),
	}
	_, err := s.reminders.mutate(ctx, s, func(cur []models.Reminder) ([]models.Reminder, error) {
		return append(cur, reminder), nil
	})
	if err != nil {
		return models.Reminder{}, err
	}
	return reminder, nil
}

func (s *Store) UpdateReminder(ctx context.Context, id string, upd ReminderUpdate) (models.Reminder, error) {
	var updated models.Reminder
	_, err := s.reminders.mutate(ctx, s, func(cur []models.Reminder) ([]models.Reminder, error) {
		i := indexOf(cur, id, func(r models.Reminder) string { return r.ID })
		if i < 0 {
			return nil, ErrNotFound
		}
		r := &cur[i]
		if upd.Title != nil {
			r.Title = strings.TrimSpace(*upd.Title)
		}
		if upd.Description != nil {
			r.Description = *upd.Description
		}
		if upd.DueDate != nil {
			r.DueDate = *upd.DueDate
		}
		if upd.IsArchived != nil {
			r.IsArchived = *upd.IsArchived
		}
		if upd.RelatedNoteID != nil {
			r.RelatedNoteID = *upd.RelatedNoteID
		}
		if upd.IsCompleted != nil {
			switch {
			case *upd.IsCompleted && !r.IsCompleted:
				stamp := s.now()
				r.CompletedAt = &stamp
			case !*upd.IsCompleted:
				r.CompletedAt = nil
			}
			r.IsCompleted = *upd.IsCompleted
		}
		updated = *r
		return cur, nil
	})
	return updated, err
}

func (s *Store) DeleteReminder(ctx context.Context, id string) error {
	_, err := s.reminders.mutate(ctx, s, func(cur []models.Reminder) ([]models.Reminder, error) {
		return removeByID(cur, id, func(r models.Reminder) string { return r.ID })
	})
	return err
}

// AddOrderReminder schedules a follow-up for an order at its reminder date and
// time (09:00 when no time is set), in the local time zone.
func (s *Store) AddOrderReminder(ctx context.Context, orderID string) (models.Reminder, error) {
	order, ok := s.Order(ctx, orderID)
	if !ok {
		return models.Reminder{}, ErrNotFound
	}
	due, err := orderDueDate(order, s.now().Location())
	if err != nil {
		return models.Reminder{}, err
	}
	return s.AddReminder(ctx, NewReminder{
		ContactID:     order.ContactID,
		ContactName:   order.ContactName,
		Title:         "Follow up on order",
		Description:   fmt.Sprintf("%d item(s), total %.2f", len(order.Items), order.TotalAmount),
		DueDate:       due,
		RelatedNoteID: models.OrderReference(order.ID),
	})
}

func orderDueDate(order models.Order, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(order.ReminderDate) == "" {
		return time.Time{}, ErrNoReminderDate
	}
	clock := strings.TrimSpace(order.ReminderTime)
	if clock == "" {
		clock = "09:00"
	}
	due, err := time.ParseInLocation("2006-01-02 15:04", order.ReminderDate+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse order reminder: %w", err)
	}
	return due, nil
}
