// ABOUTME: Export and import of every collection as one snapshot
// ABOUTME: Snapshots are encoded as JSON or YAML for backups and backend moves
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/callbook/models"
)

const SnapshotVersion = "1"

// Snapshot is the full serializable dump of the store.
type Snapshot struct {
	Version         string                  `json:"version" yaml:"version"`
	ExportedAt      time.Time               `json:"exportedAt" yaml:"exportedAt"`
	Contacts        []models.Contact        `json:"contacts" yaml:"contacts"`
	Notes           []models.CallNote       `json:"notes" yaml:"notes"`
	Reminders       []models.Reminder       `json:"reminders" yaml:"reminders"`
	Orders          []models.Order          `json:"orders" yaml:"orders"`
	Folders         []models.NoteFolder     `json:"folders" yaml:"folders"`
	ProductCatalogs []models.ProductCatalog `json:"productCatalogs" yaml:"productCatalogs"`
	PresetTags      []string                `json:"presetTags" yaml:"presetTags"`
	NoteSettings    models.NoteSettings     `json:"noteSettings" yaml:"noteSettings"`
	PremiumSettings models.PremiumSettings  `json:"premiumSettings" yaml:"premiumSettings"`
	NoteTemplate    models.NoteTemplate     `json:"noteTemplate" yaml:"noteTemplate"`
}

func (s *Store) Export(ctx context.Context) *Snapshot {
	return &Snapshot{
		Version:         SnapshotVersion,
		ExportedAt:      s.now(),
		Contacts:        s.Contacts(ctx),
		Notes:           s.Notes(ctx),
		Reminders:       s.Reminders(ctx),
		Orders:          s.Orders(ctx),
		Folders:         s.Folders(ctx),
		ProductCatalogs: s.ProductCatalogs(ctx),
		PresetTags:      s.PresetTags(ctx),
		NoteSettings:    s.NoteSettings(ctx),
		PremiumSettings: s.PremiumSettings(ctx),
		NoteTemplate:    s.NoteTemplate(ctx),
	}
}

// Import replaces every collection with the snapshot's contents. Records
// pass through the same migrations as a load. Topics are written one at a
// time; the first failure stops the import.
func (s *Store) Import(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("import: nil snapshot")
	}
	steps := []struct {
		key string
		run func() error
	}{
		{models.KeyContacts, func() error { return replace(ctx, s, s.contacts, snap.Contacts, nil) }},
		{models.KeyNotes, func() error { return replace(ctx, s, s.notes, snap.Notes, (*models.CallNote).Migrate) }},
		{models.KeyReminders, func() error { return replace(ctx, s, s.reminders, snap.Reminders, nil) }},
		{models.KeyOrders, func() error { return replace(ctx, s, s.orders, snap.Orders, (*models.Order).Migrate) }},
		{models.KeyFolders, func() error { return replace(ctx, s, s.folders, snap.Folders, (*models.NoteFolder).Migrate) }},
		{models.KeyProductCatalogs, func() error {
			return replace(ctx, s, s.catalogs, snap.ProductCatalogs, (*models.ProductCatalog).Migrate)
		}},
		{models.KeyPresetTags, func() error {
			return replace(ctx, s, s.presetTags, models.NormalizeTags(snap.PresetTags), nil)
		}},
		{models.KeyNoteSettings, func() error {
			_, err := s.SaveNoteSettings(ctx, snap.NoteSettings)
			return err
		}},
		{models.KeyPremiumSettings, func() error {
			_, err := s.SavePremiumSettings(ctx, snap.PremiumSettings)
			return err
		}},
		{models.KeyNoteTemplate, func() error {
			_, err := s.noteTemplate.mutate(ctx, s, func(models.NoteTemplate) (models.NoteTemplate, error) {
				return snap.NoteTemplate, nil
			})
			return err
		}},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("import %s: %w", step.key, err)
		}
	}
	return nil
}

func replace[E any](ctx context.Context, s *Store, c *collection[[]E], records []E, migrate func(*E) bool) error {
	next := make([]E, len(records))
	copy(next, records)
	if migrate != nil {
		for i := range next {
			migrate(&next[i])
		}
	}
	_, err := c.mutate(ctx, s, func([]E) ([]E, error) { return next, nil })
	return err
}

// Format selects a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml, case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown snapshot format %q", name)
}

func WriteSnapshot(w io.Writer, snap *Snapshot, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode yaml snapshot: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode json snapshot: %w", err)
		}
		return nil
	}
}

func ReadSnapshot(r io.Reader, format Format) (*Snapshot, error) {
	var snap Snapshot
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
			return nil, fmt.Errorf("decode yaml snapshot: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&snap); err != nil {
			return nil, fmt.Errorf("decode json snapshot: %w", err)
		}
	}
	return &snap, nil
}
