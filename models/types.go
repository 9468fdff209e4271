// ABOUTME: Data models for call-note CRM entities
// ABOUTME: Defines Contact, CallNote, Reminder, Order, NoteFolder, ProductCatalog and settings records
package models

import (
	"strings"
	"time"
)

type Contact struct {
	ID                string    `json:"id" yaml:"id"`
	Name              string    `json:"name" yaml:"name"`
	PhoneNumber       string    `json:"phoneNumber" yaml:"phoneNumber"`
	BusinessCardImage string    `json:"businessCardImage,omitempty" yaml:"businessCardImage,omitempty"`
	CreatedAt         time.Time `json:"createdAt" yaml:"createdAt"`
}

// CallNote is one note taken for a call. ContactName is a snapshot taken when
// the note is created and is never re-derived from the contact.
type CallNote struct {
	ID              string        `json:"id" yaml:"id"`
	ContactID       string        `json:"contactId" yaml:"contactId"`
	ContactName     string        `json:"contactName" yaml:"contactName"`
	Note            string        `json:"note" yaml:"note"`
	CallStartTime   time.Time     `json:"callStartTime" yaml:"callStartTime"`
	CallEndTime     time.Time     `json:"callEndTime" yaml:"callEndTime"`
	CallDuration    int64         `json:"callDuration" yaml:"callDuration"` // seconds
	IsAutoGenerated bool          `json:"isAutoGenerated" yaml:"isAutoGenerated"`
	CallDirection   CallDirection `json:"callDirection" yaml:"callDirection"`
	Status          NoteStatus    `json:"status" yaml:"status"`
	CustomStatus    string        `json:"customStatus,omitempty" yaml:"customStatus,omitempty"`
	Priority        Priority      `json:"priority" yaml:"priority"`
	Tags            []string      `json:"tags" yaml:"tags"`
	Category        string        `json:"category,omitempty" yaml:"category,omitempty"`
	FolderID        string        `json:"folderId,omitempty" yaml:"folderId,omitempty"`
	CreatedAt       time.Time     `json:"createdAt" yaml:"createdAt"`
	UpdatedAt       *time.Time    `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// StatusLabel returns the human label shown for the note's status.
func (n *CallNote) StatusLabel() string {
	if n.Status == StatusOther && strings.TrimSpace(n.CustomStatus) != "" {
		return n.CustomStatus
	}
	return n.Status.Label()
}

type Reminder struct {
	ID            string     `json:"id" yaml:"id"`
	ContactID     string     `json:"contactId" yaml:"contactId"`
	ContactName   string     `json:"contactName" yaml:"contactName"`
	Title         string     `json:"title" yaml:"title"`
	Description   string     `json:"description" yaml:"description"`
	DueDate       time.Time  `json:"dueDate" yaml:"dueDate"`
	IsCompleted   bool       `json:"isCompleted" yaml:"isCompleted"`
	IsArchived    bool       `json:"isArchived" yaml:"isArchived"`
	RelatedNoteID string     `json:"relatedNoteId,omitempty" yaml:"relatedNoteId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" yaml:"createdAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

type OrderItem struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Price       float64 `json:"price" yaml:"price"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
}

// Order totals are kept by the caller: TotalAmount should equal the sum of
// price*quantity over Items.
type Order struct {
	ID           string      `json:"id" yaml:"id"`
	ContactID    string      `json:"contactId" yaml:"contactId"`
	ContactName  string      `json:"contactName" yaml:"contactName"`
	Items        []OrderItem `json:"items" yaml:"items"`
	TotalAmount  float64     `json:"totalAmount" yaml:"totalAmount"`
	Status       OrderStatus `json:"status" yaml:"status"`
	Notes        string      `json:"notes,omitempty" yaml:"notes,omitempty"`
	ReminderDate string      `json:"reminderDate,omitempty" yaml:"reminderDate,omitempty"` // 2006-01-02
	ReminderTime string      `json:"reminderTime,omitempty" yaml:"reminderTime,omitempty"` // 15:04
	CreatedAt    time.Time   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt" yaml:"updatedAt"`
}

// ItemsTotal sums price*quantity over the order items.
func (o *Order) ItemsTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

type NoteFolder struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Color       string     `json:"color" yaml:"color"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Type        FolderType `json:"type" yaml:"type"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
}

type Product struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Price       float64 `json:"price" yaml:"price"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	SKU         string  `json:"sku,omitempty" yaml:"sku,omitempty"`
	Category    string  `json:"category,omitempty" yaml:"category,omitempty"`
	InStock     bool    `json:"inStock" yaml:"inStock"`
}

type ProductCatalog struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Products  []Product `json:"products" yaml:"products"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// NoteSettings holds note-taking preferences. Persisted values are merged
// over DefaultNoteSettings.
type NoteSettings struct {
	DefaultStatus          NoteStatus `json:"defaultStatus" yaml:"defaultStatus"`
	DefaultPriority        Priority   `json:"defaultPriority" yaml:"defaultPriority"`
	DefaultGroupBy         GroupBy    `json:"defaultGroupBy" yaml:"defaultGroupBy"`
	AutoGenerateEmptyNotes bool       `json:"autoGenerateEmptyNotes" yaml:"autoGenerateEmptyNotes"`
	SuggestReminders       bool       `json:"suggestReminders" yaml:"suggestReminders"`
	ShowCallDuration       bool       `json:"showCallDuration" yaml:"showCallDuration"`
}

type PremiumSettings struct {
	IsPremium   bool       `json:"isPremium" yaml:"isPremium"`
	Plan        string     `json:"plan" yaml:"plan"`
	ActivatedAt *time.Time `json:"activatedAt,omitempty" yaml:"activatedAt,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
	MaxFolders  int        `json:"maxFolders" yaml:"maxFolders"`
	PDFImport   bool       `json:"pdfImport" yaml:"pdfImport"`
}

// Active reports whether the premium plan is in effect at now.
func (p *PremiumSettings) Active(now time.Time) bool {
	if !p.IsPremium {
		return false
	}
	return p.ExpiresAt == nil || now.Before(*p.ExpiresAt)
}

// NoteTemplate is the body pre-filled into new notes.
type NoteTemplate struct {
	Body      string     `json:"body" yaml:"body"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// DeviceContact is one entry from a device or remote address book.
type DeviceContact struct {
	Name         string   `json:"name" yaml:"name"`
	PhoneNumbers []string `json:"phoneNumbers" yaml:"phoneNumbers"`
}
