// ABOUTME: Folder, preset tag and settings CLI commands
// ABOUTME: Manage note folders, the preset tag list, note defaults and the note template
package cli

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/store"
)

// ListFoldersCommand lists folders with their note counts.
func ListFoldersCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("folders list", flag.ExitOnError)
	_ = fs.Parse(args)

	ctx := context.Background()
	counts := map[string]int{}
	for _, n := range st.Notes(ctx) {
		counts[n.FolderID]++
	}

	folders := st.Folders(ctx)
	if len(folders) == 0 {
		fmt.Fprintln(stdout, "No folders")
		return nil
	}
	w := newTable()
	_, _ = fmt.Fprintln(w, "NAME\tTYPE\tCOLOR\tNOTES\tID")
	_, _ = fmt.Fprintln(w, "----\t----\t-----\t-----\t--")
	for _, f := range folders {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", f.Name, f.Type, orDash(f.Color), counts[f.ID], f.ID)
	}
	_ = w.Flush()
	return nil
}

// AddFolderCommand creates a folder.
func AddFolderCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("folders add", flag.ExitOnError)
	name := fs.String("name", "", "Folder name (required)")
	color := fs.String("color", "", "Display color, e.g. #3B82F6")
	description := fs.String("description", "", "Description")
	kind := fs.String("type", "general", "general or sales-run")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	folder, err := st.AddFolder(context.Background(), store.NewFolder{
		Name:        *name,
		Color:       *color,
		Description: *description,
		Type:        models.FolderType(*kind),
	})
	if err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Folder created: %s (ID: %s)\n", folder.Name, folder.ID)
	return nil
}

// DeleteFolderCommand deletes a folder. Its notes become ungrouped.
func DeleteFolderCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("folders delete", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := requireID(fs.Args(), "folder")
	if err != nil {
		return err
	}
	if err := st.DeleteFolder(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Folder deleted: %s\n", id)
	return nil
}

// TagsCommand lists preset tags, or edits them with --add/--remove.
func TagsCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("tags", flag.ExitOnError)
	add := fs.String("add", "", "Add a preset tag")
	remove := fs.String("remove", "", "Remove a preset tag")
	_ = fs.Parse(args)

	ctx := context.Background()
	tags := st.PresetTags(ctx)
	var err error
	if *add != "" {
		if tags, err = st.AddPresetTag(ctx, *add); err != nil {
			return fmt.Errorf("failed to add tag: %w", err)
		}
	}
	if *remove != "" {
		if tags, err = st.RemovePresetTag(ctx, *remove); err != nil {
			return fmt.Errorf("failed to remove tag: %w", err)
		}
	}

	if len(tags) == 0 {
		fmt.Fprintln(stdout, "No preset tags")
		return nil
	}
	fmt.Fprintln(stdout, strings.Join(tags, ", "))
	return nil
}

// SettingsCommand shows settings, or changes note defaults with flags.
func SettingsCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	groupBy := fs.String("group-by", "", "Default grouping")
	status := fs.String("status", "", "Default status for new notes")
	priority := fs.String("priority", "", "Default priority for new notes")
	template := fs.String("template", "", "Body pre-filled into new notes")
	_ = fs.Parse(args)

	ctx := context.Background()
	settings := st.NoteSettings(ctx)
	changed := false
	if *groupBy != "" {
		mode := models.GroupBy(*groupBy)
		if !mode.Valid() {
			return fmt.Errorf("invalid --group-by: %s", *groupBy)
		}
		settings.DefaultGroupBy, changed = mode, true
	}
	if *status != "" {
		s := models.NoteStatus(*status)
		if !s.Valid() {
			return fmt.Errorf("invalid --status: %s", *status)
		}
		settings.DefaultStatus, changed = s, true
	}
	if *priority != "" {
		p := models.Priority(*priority)
		if !p.Valid() {
			return fmt.Errorf("invalid --priority: %s", *priority)
		}
		settings.DefaultPriority, changed = p, true
	}
	if changed {
		var err error
		if settings, err = st.SaveNoteSettings(ctx, settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Fprintln(stdout, "✓ Settings saved")
	}
	if *template != "" {
		if _, err := st.SetNoteTemplate(ctx, *template); err != nil {
			return fmt.Errorf("failed to save template: %w", err)
		}
		fmt.Fprintln(stdout, "✓ Note template saved")
	}

	premium := st.PremiumSettings(ctx)
	w := newTable()
	_, _ = fmt.Fprintf(w, "Default status:\t%s\n", settings.DefaultStatus.Label())
	_, _ = fmt.Fprintf(w, "Default priority:\t%s\n", settings.DefaultPriority)
	_, _ = fmt.Fprintf(w, "Default grouping:\t%s\n", settings.DefaultGroupBy)
	_, _ = fmt.Fprintf(w, "Reminder suggestions:\t%v\n", settings.SuggestReminders)
	_, _ = fmt.Fprintf(w, "Show call duration:\t%v\n", settings.ShowCallDuration)
	_, _ = fmt.Fprintf(w, "Plan:\t%s (active: %v)\n", premium.Plan, premium.Active(now()))
	_, _ = fmt.Fprintf(w, "Note template:\t%s\n", orDash(truncate(st.NoteTemplate(ctx).Body, 40)))
	_ = w.Flush()
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
