// ABOUTME: Export, import and seed CLI commands
// ABOUTME: Moves whole-store snapshots in JSON or YAML and fills a store with demo data
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/callbook/importer"
	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/store"
)

func formatFor(name, path string) (store.Format, error) {
	if name == "" && path != "" {
		name = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	return store.ParseFormat(name)
}

// ExportCommand writes a snapshot of every collection.
func ExportCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "", "json or yaml (default from file extension, else json)")
	output := fs.String("output", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	f, err := formatFor(*format, *output)
	if err != nil {
		return err
	}
	snap := st.Export(context.Background())

	if *output == "" {
		return store.WriteSnapshot(stdout, snap, f)
	}
	file, err := os.OpenFile(*output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", *output, err)
	}
	defer func() { _ = file.Close() }()
	if err := store.WriteSnapshot(file, snap, f); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Exported %d contacts, %d notes, %d reminders to %s\n",
		len(snap.Contacts), len(snap.Notes), len(snap.Reminders), *output)
	return nil
}

// ImportCommand replaces the store's contents with a snapshot file.
func ImportCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	format := fs.String("format", "", "json or yaml (default from file extension)")
	confirm := fs.Bool("confirm", false, "Confirm replacing all current data")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("snapshot file is required")
	}
	path := fs.Arg(0)
	if !*confirm {
		fmt.Fprintln(stdout, "WARNING: importing replaces ALL current data.")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "To confirm, run:")
		fmt.Fprintf(stdout, "  callbook import --confirm %s\n", path)
		return nil
	}

	f, err := formatFor(*format, path)
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	snap, err := store.ReadSnapshot(file, f)
	if err != nil {
		return err
	}
	if err := st.Import(context.Background(), snap); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(stdout, "✓ Imported %d contacts, %d notes, %d reminders\n", len(snap.Contacts), len(snap.Notes), len(snap.Reminders))
	return nil
}

// SeedCommand fills the store with deterministic fake contacts and notes.
// Re-running with the same seed adds no duplicate contacts.
func SeedCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	count := fs.Int("contacts", 12, "Number of fake contacts")
	perContact := fs.Int("notes", 3, "Notes per newly imported contact")
	seed := fs.Int64("seed", 1, "Random seed")
	_ = fs.Parse(args)

	ctx := context.Background()
	before := map[string]bool{}
	for _, c := range st.Contacts(ctx) {
		before[c.ID] = true
	}

	if err := runImport(st, importer.FakeSource{Count: *count, Seed: *seed}); err != nil {
		return err
	}

	var fresh []models.Contact
	for _, c := range st.Contacts(ctx) {
		if !before[c.ID] {
			fresh = append(fresh, c)
		}
	}
	for _, n := range importer.FakeNotes(fresh, *perContact, *seed, now()) {
		if _, err := st.AddNote(ctx, n); err != nil {
			return fmt.Errorf("failed to seed note: %w", err)
		}
	}
	fmt.Fprintf(stdout, "✓ Seeded %d note(s)\n", len(fresh)**perContact)
	return nil
}
