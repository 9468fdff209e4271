// ABOUTME: Per-record upgrades applied when collections are loaded from storage
// ABOUTME: Each Migrate method reports whether the record changed so callers can write back once
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// UnmarshalJSON accepts a legacy numeric phoneNumber as well as a string.
func (c *Contact) UnmarshalJSON(data []byte) error {
	type plain Contact
	aux := struct {
		*plain
		PhoneNumber json.RawMessage `json:"phoneNumber"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	phone, err := decodePhone(aux.PhoneNumber)
	if err != nil {
		return err
	}
	c.PhoneNumber = phone
	return nil
}

func decodePhone(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("phoneNumber: %w", err)
	}
	return n.String(), nil
}

// Migrate upgrades a legacy note in place.
func (n *CallNote) Migrate() bool {
	changed := false
	if n.Status == "" {
		n.Status = StatusFollowUp
		changed = true
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
		changed = true
	}
	if n.CallDirection == "" {
		n.CallDirection = DirectionOutbound
		changed = true
	}
	if n.Tags == nil {
		n.Tags = []string{}
		changed = true
	}
	return changed
}

// Migrate upgrades a legacy order in place.
func (o *Order) Migrate() bool {
	changed := false
	if o.Status == "" {
		o.Status = OrderPending
		changed = true
	}
	if o.Items == nil {
		o.Items = []OrderItem{}
		changed = true
	}
	if o.UpdatedAt.IsZero() && !o.CreatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
		changed = true
	}
	return changed
}

// Migrate upgrades a legacy folder in place.
func (f *NoteFolder) Migrate() bool {
	if f.Type == "" {
		f.Type = FolderGeneral
		return true
	}
	return false
}

// Migrate upgrades a legacy catalog in place.
func (c *ProductCatalog) Migrate() bool {
	if c.Products == nil {
		c.Products = []Product{}
		return true
	}
	return false
}

// NormalizeTags trims, drops empties and removes duplicates keeping first occurrence.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// NormalizePhone reduces a phone number to its digits, keeping a leading '+'.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
