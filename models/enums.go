// ABOUTME: Enumerated values for call-note CRM entities
// ABOUTME: Call direction, note status, priority, order status, folder type, grouping mode and storage keys
package models

import "strings"

type CallDirection string

const (
	DirectionInbound  CallDirection = "inbound"
	DirectionOutbound CallDirection = "outbound"
)

func (d CallDirection) Valid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

type NoteStatus string

const (
	StatusFollowUp     NoteStatus = "follow-up"
	StatusWaitingReply NoteStatus = "waiting-reply"
	StatusClosed       NoteStatus = "closed"
	StatusOther        NoteStatus = "other"
)

// NoteStatuses lists every status in display order.
var NoteStatuses = []NoteStatus{StatusFollowUp, StatusWaitingReply, StatusClosed, StatusOther}

func (s NoteStatus) Valid() bool {
	switch s {
	case StatusFollowUp, StatusWaitingReply, StatusClosed, StatusOther:
		return true
	}
	return false
}

// Label returns the display label for the status.
func (s NoteStatus) Label() string {
	switch s {
	case StatusFollowUp:
		return "Follow-up"
	case StatusWaitingReply:
		return "Waiting Reply"
	case StatusClosed:
		return "Closed"
	case StatusOther:
		return "Other"
	}
	return string(s)
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type FolderType string

const (
	FolderGeneral  FolderType = "general"
	FolderSalesRun FolderType = "sales-run"
)

// GroupBy selects how notes are bucketed for display.
type GroupBy string

const (
	GroupByNone   GroupBy = "none"
	GroupByDay    GroupBy = "day"
	GroupByWeek   GroupBy = "week"
	GroupByMonth  GroupBy = "month"
	GroupByYear   GroupBy = "year"
	GroupByFolder GroupBy = "folder"
)

// GroupModes lists every grouping mode in the order the UI cycles through them.
var GroupModes = []GroupBy{GroupByNone, GroupByDay, GroupByWeek, GroupByMonth, GroupByYear, GroupByFolder}

func (g GroupBy) Valid() bool {
	for _, m := range GroupModes {
		if g == m {
			return true
		}
	}
	return false
}

// Storage keys, one per persisted collection or singleton.
const (
	KeyContacts        = "contacts"
	KeyNotes           = "notes"
	KeyReminders       = "reminders"
	KeyOrders          = "orders"
	KeyNoteTemplate    = "note-template"
	KeyFolders         = "folders"
	KeyProductCatalogs = "product-catalogs"
	KeyPresetTags      = "preset-tags"
	KeyNoteSettings    = "note-settings"
	KeyPremiumSettings = "premium-settings"
)

// AllKeys lists every storage key.
var AllKeys = []string{
	KeyContacts, KeyNotes, KeyReminders, KeyOrders, KeyNoteTemplate,
	KeyFolders, KeyProductCatalogs, KeyPresetTags, KeyNoteSettings, KeyPremiumSettings,
}

const orderRefPrefix = "order-"

// OrderReference encodes an order id for use in Reminder.RelatedNoteID.
func OrderReference(orderID string) string {
	return orderRefPrefix + orderID
}

// ParseOrderReference extracts the order id from a related-note reference.
func ParseOrderReference(ref string) (string, bool) {
	if !strings.HasPrefix(ref, orderRefPrefix) || len(ref) == len(orderRefPrefix) {
		return "", false
	}
	return strings.TrimPrefix(ref, orderRefPrefix), true
}
