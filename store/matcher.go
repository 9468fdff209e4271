// ABOUTME: Contact deduplication by phone number
// ABOUTME: Finds existing contacts by normalized phone to keep bulk imports idempotent
package store

import "github.com/harperreed/callbook/models"

type phoneMatcher struct {
	byPhone map[string]bool
}

func newPhoneMatcher(contacts []models.Contact) *phoneMatcher {
	m := &phoneMatcher{byPhone: make(map[string]bool, len(contacts))}
	for _, c := range contacts {
		m.add(c.PhoneNumber)
	}
	return m
}

func (m *phoneMatcher) has(phone string) bool {
	key := models.NormalizePhone(phone)
	return key != "" && m.byPhone[key]
}

// add records phone so later entries in the same import are skipped too.
func (m *phoneMatcher) add(phone string) {
	if key := models.NormalizePhone(phone); key != "" {
		m.byPhone[key] = true
	}
}

// firstPhone returns the first number that normalizes to something dialable.
func firstPhone(numbers []string) string {
	for _, n := range numbers {
		if models.NormalizePhone(n) != "" {
			return n
		}
	}
	return ""
}
