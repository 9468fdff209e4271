// ABOUTME: Default seeds and settings for call-note CRM storage
// ABOUTME: Provides default folders, preset tags, note settings, premium settings and note template
package models

import "time"

// DefaultFolders returns the folders seeded when none exist.
func DefaultFolders(now time.Time) []NoteFolder {
	return []NoteFolder{
		{ID: "work", Name: "Work", Color: "#3B82F6", Description: "Work related calls", Type: FolderGeneral, CreatedAt: now},
		{ID: "personal", Name: "Personal", Color: "#10B981", Description: "Personal calls", Type: FolderGeneral, CreatedAt: now},
		{ID: "sales", Name: "Sales", Color: "#F59E0B", Description: "Sales and prospects", Type: FolderGeneral, CreatedAt: now},
		{ID: "support", Name: "Support", Color: "#EF4444", Description: "Customer support", Type: FolderGeneral, CreatedAt: now},
	}
}

// DefaultPresetTags returns the tags seeded when the list is empty.
func DefaultPresetTags() []string {
	return []string{
		"urgent",
		"follow-up",
		"interested",
		"not-interested",
		"callback",
		"quote-sent",
		"new-lead",
		"vip",
		"pricing",
		"support",
	}
}

func DefaultNoteSettings() NoteSettings {
	return NoteSettings{
		DefaultStatus:          StatusFollowUp,
		DefaultPriority:        PriorityMedium,
		DefaultGroupBy:         GroupByDay,
		AutoGenerateEmptyNotes: true,
		SuggestReminders:       true,
		ShowCallDuration:       true,
	}
}

func DefaultPremiumSettings() PremiumSettings {
	return PremiumSettings{
		Plan:       "free",
		MaxFolders: 4,
	}
}

func DefaultNoteTemplate() NoteTemplate {
	return NoteTemplate{}
}
