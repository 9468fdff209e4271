// ABOUTME: Order reads and mutations
// ABOUTME: Item ids are assigned on add; totals are stored as supplied by the caller
package store

import (
	"context"
	"strings"

	"github.com/harperreed/callbook/models"
)

type NewOrder struct {
	ContactID    string
	ContactName  string
	Items        []models.OrderItem
	TotalAmount  float64
	Status       models.OrderStatus
	Notes        string
	ReminderDate string
	ReminderTime string
}

// OrderUpdate carries the fields to change; nil fields are left alone.
type OrderUpdate struct {
	Items        *[]models.OrderItem
	TotalAmount  *float64
	Status       *models.OrderStatus
	Notes        *string
	ReminderDate *string
	ReminderTime *string
}

func (s *Store) Orders(ctx context.Context) []models.Order {
	return s.orders.get(ctx, s)
}

func (s *Store) Order(ctx context.Context, id string) (models.Order, bool) {
	for _, o := range s.Orders(ctx) {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

func (s *Store) AddOrder(ctx context.Context, in NewOrder) (models.Order, error) {
	now := s.now()
	order := models.Order{
		ID:           s.newID(),
		ContactID:    in.ContactID,
		ContactName:  in.ContactName,
		Items:        s.assignItemIDs(in.Items),
		TotalAmount:  in.TotalAmount,
		Status:       in.Status,
		Notes:        in.Notes,
		ReminderDate: strings.TrimSpace(in.ReminderDate),
		ReminderTime: strings.TrimSpace(in.ReminderTime),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if !order.Status.Valid() {
		order.Status = models.OrderPending
	}
	_, err := s.orders.mutate(ctx, s, func(cur []models.Order) ([]models.Order, error) {
		return append(cur, order), nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *Store) UpdateOrder(ctx context.Context, id string, upd OrderUpdate) (models.Order, error) {
	var updated models.Order
	_, err := s.orders.mutate(ctx, s, func(cur []models.Order) ([]models.Order, error) {
		i := indexOf(cur, id, func(o models.Order) string { return o.ID })
		if i < 0 {
			return nil, ErrNotFound
		}
		o := &cur[i]
		if upd.Items != nil {
			o.Items = s.assignItemIDs(*upd.Items)
		}
		if upd.TotalAmount != nil {
			o.TotalAmount = *upd.TotalAmount
		}
		if upd.Status != nil && upd.Status.Valid() {
			o.Status = *upd.Status
		}
		if upd.Notes != nil {
			o.Notes = *upd.Notes
		}
		if upd.ReminderDate != nil {
			o.ReminderDate = strings.TrimSpace(*upd.ReminderDate)
		}
		if upd.ReminderTime != nil {
			o.ReminderTime = strings.TrimSpace(*upd.ReminderTime)
		}
		o.UpdatedAt = s.now()
		updated = *o
		return cur, nil
	})
	return updated, err
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	_, err := s.orders.mutate(ctx, s, func(cur []models.Order) ([]models.Order, error) {
		return removeByID(cur, id, func(o models.Order) string { return o.ID })
	})
	return err
}

func (s *Store) assignItemIDs(items []models.OrderItem) []models.OrderItem {
	out := make([]models.OrderItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = s.newID()
		}
	}
	return out
}
