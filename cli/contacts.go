// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for adding, listing, editing, deleting and importing contacts
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/harperreed/callbook/handlers"
	"github.com/harperreed/callbook/importer"
	"github.com/harperreed/callbook/store"
)

// AddContactCommand adds a new contact.
func AddContactCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("contacts add", flag.ExitOnError)
	name := fs.String("name", "", "Contact name (required)")
	phone := fs.String("phone", "", "Phone number (required)")
	card := fs.String("card", "", "Business card image reference")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	if *phone == "" {
		return fmt.Errorf("--phone is required")
	}

	contact, err := st.AddContact(context.Background(), store.NewContact{
		Name:              *name,
		PhoneNumber:       *phone,
		BusinessCardImage: *card,
	})
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	fmt.Fprintf(stdout, "✓ Contact created: %s (ID: %s)\n", contact.Name, contact.ID)
	fmt.Fprintf(stdout, "  Phone: %s\n", contact.PhoneNumber)
	return nil
}

// ListContactsCommand lists contacts.
func ListContactsCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("contacts list", flag.ExitOnError)
	query := fs.String("query", "", "Search by name or phone")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	contacts := handlers.MatchContacts(st.Contacts(context.Background()), *query)
	if len(contacts) == 0 {
		fmt.Fprintln(stdout, "No contacts found")
		return nil
	}
	total := len(contacts)
	if *limit > 0 && len(contacts) > *limit {
		contacts = contacts[:*limit]
	}

	w := newTable()
	_, _ = fmt.Fprintln(w, "NAME\tPHONE\tADDED\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t-----\t--")
	for _, c := range contacts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, orDash(c.PhoneNumber), formatTime(c.CreatedAt), c.ID)
	}
	_ = w.Flush()

	fmt.Fprintf(stdout, "\nTotal: %d contact(s)\n", total)
	return nil
}

// UpdateContactCommand updates an existing contact.
func UpdateContactCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("contacts update", flag.ExitOnError)
	name := fs.String("name", "", "Contact name")
	phone := fs.String("phone", "", "Phone number")
	_ = fs.Parse(args)

	id, err := requireID(fs.Args(), "contact")
	if err != nil {
		return err
	}

	var upd store.ContactUpdate
	if *name != "" {
		upd.Name = name
	}
	if *phone != "" {
		upd.PhoneNumber = phone
	}

	contact, err := st.UpdateContact(context.Background(), id, upd)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("contact not found: %s", id)
	}
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	fmt.Fprintf(stdout, "✓ Contact updated: %s (ID: %s)\n", contact.Name, contact.ID)
	return nil
}

// DeleteContactCommand deletes a contact. Its notes keep the contact name.
func DeleteContactCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("contacts delete", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := requireID(fs.Args(), "contact")
	if err != nil {
		return err
	}
	if err := st.DeleteContact(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	fmt.Fprintf(stdout, "✓ Contact deleted: %s\n", id)
	return nil
}

// ImportContactsCommand imports contacts from an address-book export file.
func ImportContactsCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("contacts import", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("file path is required (JSON or YAML list of {name, phoneNumbers})")
	}
	return runImport(st, importer.FileSource{Path: fs.Arg(0)})
}

func runImport(st *store.Store, src importer.Source) error {
	fmt.Fprintf(stdout, "Importing contacts from %s...\n", src.Name())

	result, err := importer.Run(context.Background(), st, src)
	if errors.Is(err, importer.ErrPermissionDenied) {
		return fmt.Errorf("permission denied: %w", err)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "✓ Imported %d, skipped %d (already known or no phone)\n", result.Imported, result.Skipped)
	fmt.Fprintf(stdout, "  Total contacts: %d\n", result.Total)
	return nil
}
