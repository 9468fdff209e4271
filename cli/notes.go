// ABOUTME: Call-note CLI commands
// ABOUTME: Add, list (grouped or filtered), update, delete and move notes between folders
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/harperreed/callbook/grouping"
	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/search"
	"github.com/harperreed/callbook/store"
)

// AddNoteCommand records a note for a contact.
func AddNoteCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("notes add", flag.ExitOnError)
	contactID := fs.String("contact", "", "Contact ID (required)")
	text := fs.String("text", "", "Note text")
	start := fs.String("start", "", "Call start (default now)")
	end := fs.String("end", "", "Call end (default start)")
	direction := fs.String("direction", "outbound", "inbound or outbound")
	status := fs.String("status", "", "follow-up, waiting-reply, closed or other")
	custom := fs.String("custom-status", "", "Label when status is other")
	priority := fs.String("priority", "", "low, medium or high")
	category := fs.String("category", "", "Category")
	folder := fs.String("folder", "", "Folder ID")
	var tags stringList
	fs.Var(&tags, "tag", "Tag (repeatable or comma-separated)")
	_ = fs.Parse(args)

	ctx := context.Background()
	if *contactID == "" {
		return fmt.Errorf("--contact is required")
	}
	contact, ok := st.Contact(ctx, *contactID)
	if !ok {
		return fmt.Errorf("contact not found: %s", *contactID)
	}

	startAt, err := parseWhen(*start)
	if err != nil {
		return err
	}
	endAt, err := parseWhen(*end)
	if err != nil {
		return err
	}

	settings := st.NoteSettings(ctx)
	if *status == "" {
		*status = string(settings.DefaultStatus)
	}
	if *priority == "" {
		*priority = string(settings.DefaultPriority)
	}
	body := *text
	if body == "" {
		body = st.NoteTemplate(ctx).Body
	}

	note, err := st.AddNote(ctx, store.NewNote{
		ContactID:     contact.ID,
		ContactName:   contact.Name,
		Note:          body,
		CallStartTime: startAt,
		CallEndTime:   endAt,
		CallDirection: models.CallDirection(*direction),
		Status:        models.NoteStatus(*status),
		CustomStatus:  *custom,
		Priority:      models.Priority(*priority),
		Tags:          tags,
		Category:      *category,
		FolderID:      *folder,
	})
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	fmt.Fprintf(stdout, "✓ Note saved for %s (ID: %s)\n", note.ContactName, note.ID)
	fmt.Fprintf(stdout, "  Status: %s, priority: %s\n", note.StatusLabel(), note.Priority)
	if note.IsAutoGenerated {
		fmt.Fprintln(stdout, "  (no text; marked auto-generated)")
	}
	return nil
}

// ListNotesCommand prints notes grouped by the requested mode.
func ListNotesCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("notes list", flag.ExitOnError)
	groupBy := fs.String("group-by", "", "none, day, week, month, year or folder (default from settings)")
	query := fs.String("query", "", "Only notes matching this filter")
	contactID := fs.String("contact", "", "Only notes for this contact")
	_ = fs.Parse(args)

	ctx := context.Background()
	mode := models.GroupBy(*groupBy)
	if *groupBy == "" {
		mode = st.NoteSettings(ctx).DefaultGroupBy
	}
	if !mode.Valid() {
		return fmt.Errorf("invalid --group-by: %s", *groupBy)
	}

	notes := st.Notes(ctx)
	if *contactID != "" {
		notes = st.NotesForContact(ctx, *contactID)
	}
	notes = search.NewFilter(*query, st.Contacts(ctx)).Apply(notes)
	if len(notes) == 0 {
		fmt.Fprintln(stdout, "No notes found")
		return nil
	}

	groups := grouping.Build(notes, mode, st.Folders(ctx))
	for _, g := range groups {
		fmt.Fprintf(stdout, "\n%s (%d)\n", g.Title, len(g.Notes))
		fmt.Fprintln(stdout, strings.Repeat("─", len([]rune(g.Title))+4))
		if len(g.SubGroups) == 0 {
			printNotes(g.Notes, true)
			continue
		}
		for _, sub := range g.SubGroups {
			fmt.Fprintf(stdout, "  %s\n", sub.Title)
			printNotes(sub.Notes, false)
		}
	}

	fmt.Fprintf(stdout, "\nTotal: %d note(s) in %d group(s)\n", len(notes), len(groups))
	return nil
}

func printNotes(notes []models.CallNote, showContact bool) {
	w := newTable()
	for _, n := range notes {
		text := n.Note
		if n.IsAutoGenerated {
			text = "(no note)"
		}
		who := ""
		if showContact {
			who = n.ContactName + "\t"
		}
		_, _ = fmt.Fprintf(w, "    %s%s\t%s\t%s\t%s\t%s\n",
			who, formatTime(n.CallStartTime), n.StatusLabel(), n.Priority, truncate(text, 50), n.ID)
	}
	_ = w.Flush()
}

// UpdateNoteCommand updates an existing note.
func UpdateNoteCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("notes update", flag.ExitOnError)
	text := fs.String("text", "", "Note text")
	status := fs.String("status", "", "Status")
	custom := fs.String("custom-status", "", "Label when status is other")
	priority := fs.String("priority", "", "Priority")
	category := fs.String("category", "", "Category")
	var tags stringList
	fs.Var(&tags, "tag", "Replace tags (repeatable or comma-separated)")
	_ = fs.Parse(args)

	id, err := requireID(fs.Args(), "note")
	if err != nil {
		return err
	}

	var upd store.NoteUpdate
	if *text != "" {
		upd.Note = text
	}
	if *status != "" {
		s := models.NoteStatus(*status)
		if !s.Valid() {
			return fmt.Errorf("invalid --status: %s", *status)
		}
		upd.Status = &s
	}
	if *custom != "" {
		upd.CustomStatus = custom
	}
	if *priority != "" {
		p := models.Priority(*priority)
		if !p.Valid() {
			return fmt.Errorf("invalid --priority: %s", *priority)
		}
		upd.Priority = &p
	}
	if *category != "" {
		upd.Category = category
	}
	if len(tags) > 0 {
		t := []string(tags)
		upd.Tags = &t
	}

	note, err := st.UpdateNote(context.Background(), id, upd)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("note not found: %s", id)
	}
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	fmt.Fprintf(stdout, "✓ Note updated (ID: %s, status: %s)\n", note.ID, note.StatusLabel())
	return nil
}

// DeleteNoteCommand deletes a note.
func DeleteNoteCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("notes delete", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := requireID(fs.Args(), "note")
	if err != nil {
		return err
	}
	if err := st.DeleteNote(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Note deleted: %s\n", id)
	return nil
}

// MoveNotesCommand moves notes into a folder, or out of every folder with --folder "".
func MoveNotesCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("notes move", flag.ExitOnError)
	folder := fs.String("folder", "", "Destination folder ID (empty removes from folder)")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("at least one note ID is required")
	}

	ctx := context.Background()
	if *folder != "" {
		if _, ok := store.FolderByID(st.Folders(ctx), *folder); !ok {
			return fmt.Errorf("folder not found: %s", *folder)
		}
	}
	moved, err := st.MoveNotes(ctx, fs.Args(), *folder)
	if err != nil {
		return fmt.Errorf("failed to move notes: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Moved %d note(s)\n", moved)
	return nil
}
