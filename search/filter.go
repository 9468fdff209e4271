// ABOUTME: Combined note filter applied before grouping
// ABOUTME: One query matched against contact, body, status, tags, category and the contact's phone
package search

import (
	"strings"

	"github.com/harperreed/callbook/models"
)

// Filter is a prepared query. The zero query matches every note.
type Filter struct {
	q       []rune
	digits  string
	phoneOf map[string]string
}

// NewFilter prepares query. contacts supply phone numbers by contact id.
func NewFilter(query string, contacts []models.Contact) *Filter {
	f := &Filter{q: foldQuery(query), phoneOf: make(map[string]string, len(contacts))}
	if phoneLike(query) {
		f.digits = digitsOnly(query)
	}
	for _, c := range contacts {
		f.phoneOf[c.ID] = c.PhoneNumber
	}
	return f
}

// Match reports whether any searchable field of n contains the query.
func (f *Filter) Match(n models.CallNote) bool {
	if len(f.q) == 0 {
		return true
	}
	if fold(n.ContactName).contains(f.q) {
		return true
	}
	if fold(n.Note).contains(f.q) {
		return true
	}
	for _, w := range words(n.Note) {
		if fold(w).contains(f.q) {
			return true
		}
	}
	if fold(n.StatusLabel()).contains(f.q) || fold(string(n.Status)).contains(f.q) {
		return true
	}
	for _, tag := range n.Tags {
		if fold(tag).contains(f.q) {
			return true
		}
	}
	if fold(n.Category).contains(f.q) {
		return true
	}
	if phone, ok := f.phoneOf[n.ContactID]; ok && phone != "" {
		if fold(phone).contains(f.q) {
			return true
		}
		if f.digits != "" && strings.Contains(digitsOnly(phone), f.digits) {
			return true
		}
	}
	return false
}

// Apply returns the matching notes in input order.
func (f *Filter) Apply(notes []models.CallNote) []models.CallNote {
	if len(f.q) == 0 {
		return notes
	}
	var out []models.CallNote
	for _, n := range notes {
		if f.Match(n) {
			out = append(out, n)
		}
	}
	return out
}

// phoneLike reports whether q is made of digits and dialing punctuation only.
func phoneLike(q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return false
	}
	for _, r := range q {
		if !strings.ContainsRune("0123456789+-() .", r) {
			return false
		}
	}
	return true
}
