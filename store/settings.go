// ABOUTME: Preset tags, note settings, premium settings and the note template
// ABOUTME: Singletons are merged over their defaults on load
package store

import (
	"context"
	"strings"

	"github.com/harperreed/callbook/models"
)

func (s *Store) PresetTags(ctx context.Context) []string {
	return s.presetTags.get(ctx, s)
}

// SetPresetTags replaces the whole list.
func (s *Store) SetPresetTags(ctx context.Context, tags []string) ([]string, error) {
	return s.presetTags.mutate(ctx, s, func([]string) ([]string, error) {
		return models.NormalizeTags(tags), nil
	})
}

// AddPresetTag appends tag unless an equal tag (ignoring case) exists.
func (s *Store) AddPresetTag(ctx context.Context, tag string) ([]string, error) {
	tag = strings.TrimSpace(tag)
	return s.presetTags.mutate(ctx, s, func(cur []string) ([]string, error) {
		if tag == "" {
			return cur, errUnchanged
		}
		for _, t := range cur {
			if strings.EqualFold(t, tag) {
				return cur, errUnchanged
			}
		}
		return append(cur, tag), nil
	})
}

func (s *Store) RemovePresetTag(ctx context.Context, tag string) ([]string, error) {
	return s.presetTags.mutate(ctx, s, func(cur []string) ([]string, error) {
		return removeByID(cur, strings.TrimSpace(tag), func(t string) string { return t })
	})
}

func (s *Store) NoteSettings(ctx context.Context) models.NoteSettings {
	return s.noteSettings.get(ctx, s)
}

func (s *Store) SaveNoteSettings(ctx context.Context, settings models.NoteSettings) (models.NoteSettings, error) {
	return s.noteSettings.mutate(ctx, s, func(models.NoteSettings) (models.NoteSettings, error) {
		return settings, nil
	})
}

func (s *Store) PremiumSettings(ctx context.Context) models.PremiumSettings {
	return s.premiumSettings.get(ctx, s)
}

func (s *Store) SavePremiumSettings(ctx context.Context, settings models.PremiumSettings) (models.PremiumSettings, error) {
	return s.premiumSettings.mutate(ctx, s, func(models.PremiumSettings) (models.PremiumSettings, error) {
		return settings, nil
	})
}

func (s *Store) NoteTemplate(ctx context.Context) models.NoteTemplate {
	return s.noteTemplate.get(ctx, s)
}

func (s *Store) SetNoteTemplate(ctx context.Context, body string) (models.NoteTemplate, error) {
	return s.noteTemplate.mutate(ctx, s, func(models.NoteTemplate) (models.NoteTemplate, error) {
		stamp := s.now()
		return models.NoteTemplate{Body: body, UpdatedAt: &stamp}, nil
	})
}
