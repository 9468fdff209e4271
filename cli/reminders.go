// ABOUTME: Reminder CLI commands
// ABOUTME: Add, list, complete, delete reminders and print reminder statistics
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/harperreed/callbook/handlers"
	"github.com/harperreed/callbook/insights"
	"github.com/harperreed/callbook/store"
)

// AddReminderCommand creates a reminder.
func AddReminderCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("reminders add", flag.ExitOnError)
	contactID := fs.String("contact", "", "Contact ID")
	title := fs.String("title", "", "Reminder title (required)")
	description := fs.String("description", "", "Details")
	due := fs.String("due", "", "Due date, e.g. \"2024-03-20 09:00\" or \"friday at 3pm\" (required)")
	note := fs.String("note", "", "Related note ID")
	_ = fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("--title is required")
	}
	if *due == "" {
		return fmt.Errorf("--due is required")
	}
	dueAt, err := parseWhen(*due)
	if err != nil {
		return err
	}

	ctx := context.Background()
	in := store.NewReminder{
		ContactID:     *contactID,
		Title:         *title,
		Description:   *description,
		DueDate:       dueAt,
		RelatedNoteID: *note,
	}
	if *contactID != "" {
		c, ok := st.Contact(ctx, *contactID)
		if !ok {
			return fmt.Errorf("contact not found: %s", *contactID)
		}
		in.ContactName = c.Name
	}

	reminder, err := st.AddReminder(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Reminder created: %s (ID: %s)\n", reminder.Title, reminder.ID)
	fmt.Fprintf(stdout, "  Due: %s\n", formatTime(reminder.DueDate))
	return nil
}

// ListRemindersCommand lists reminders by due date.
func ListRemindersCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("reminders list", flag.ExitOnError)
	all := fs.Bool("all", false, "Include completed and archived reminders")
	contactID := fs.String("contact", "", "Only reminders for this contact")
	_ = fs.Parse(args)

	ctx := context.Background()
	reminders := st.Reminders(ctx)
	if *contactID != "" {
		reminders = st.RemindersForContact(ctx, *contactID)
	}

	w := newTable()
	_, _ = fmt.Fprintln(w, "DUE\tCONTACT\tTITLE\tSTATUS\tID")
	_, _ = fmt.Fprintln(w, "---\t-------\t-----\t------\t--")
	shown := 0
	current := now()
	for _, r := range handlers.SortReminders(reminders) {
		if !*all && (r.IsCompleted || r.IsArchived) {
			continue
		}
		status := "open"
		switch {
		case r.IsArchived:
			status = "archived"
		case r.IsCompleted:
			status = "done"
		case r.DueDate.Before(current):
			status = "overdue"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", formatTime(r.DueDate), orDash(r.ContactName), truncate(r.Title, 40), status, r.ID)
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(stdout, "No reminders found")
		return nil
	}
	_ = w.Flush()
	fmt.Fprintf(stdout, "\nTotal: %d reminder(s)\n", shown)
	return nil
}

// CompleteReminderCommand marks a reminder done, or open again with --undo.
func CompleteReminderCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("reminders done", flag.ExitOnError)
	undo := fs.Bool("undo", false, "Mark the reminder open again")
	archive := fs.Bool("archive", false, "Archive the reminder as well")
	_ = fs.Parse(args)

	id, err := requireID(fs.Args(), "reminder")
	if err != nil {
		return err
	}

	completed := !*undo
	upd := store.ReminderUpdate{IsCompleted: &completed}
	if *archive {
		upd.IsArchived = archive
	}
	reminder, err := st.UpdateReminder(context.Background(), id, upd)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("reminder not found: %s", id)
	}
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}

	if reminder.IsCompleted {
		fmt.Fprintf(stdout, "✓ Reminder completed: %s\n", reminder.Title)
	} else {
		fmt.Fprintf(stdout, "✓ Reminder reopened: %s\n", reminder.Title)
	}
	return nil
}

// DeleteReminderCommand deletes a reminder.
func DeleteReminderCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("reminders delete", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := requireID(fs.Args(), "reminder")
	if err != nil {
		return err
	}
	if err := st.DeleteReminder(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Reminder deleted: %s\n", id)
	return nil
}

// StatsCommand prints reminder and note statistics.
func StatsCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	_ = fs.Parse(args)

	ctx := context.Background()
	r := insights.Reminders(st.Reminders(ctx), now())
	n := insights.Notes(st.Notes(ctx))

	fmt.Fprintln(stdout, "Reminders")
	fmt.Fprintln(stdout, "─────────")
	w := newTable()
	_, _ = fmt.Fprintf(w, "Open:\t%d\n", r.Open)
	_, _ = fmt.Fprintf(w, "Overdue:\t%d\n", r.Overdue)
	_, _ = fmt.Fprintf(w, "Due this week:\t%d\n", r.DueThisWeek)
	_, _ = fmt.Fprintf(w, "Completed:\t%d\n", r.Completed)
	_, _ = fmt.Fprintf(w, "Archived:\t%d\n", r.Archived)
	_, _ = fmt.Fprintf(w, "Created this week:\t%d (%+.1f%% vs last week)\n", r.CreatedThisWeek, r.GrowthPercent)
	_ = w.Flush()

	fmt.Fprintln(stdout, "\nNotes")
	fmt.Fprintln(stdout, "─────")
	w = newTable()
	_, _ = fmt.Fprintf(w, "Total:\t%d\n", n.Total)
	_, _ = fmt.Fprintf(w, "Without text:\t%d\n", n.AutoGenerated)
	_, _ = fmt.Fprintf(w, "Talk time:\t%s\n", n.TotalDuration)
	for _, label := range sortedKeys(n.ByStatus) {
		_, _ = fmt.Fprintf(w, "%s:\t%d\n", label, n.ByStatus[label])
	}
	_ = w.Flush()
	return nil
}
