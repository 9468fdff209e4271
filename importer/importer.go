// ABOUTME: Device contact sources feeding the duplicate-safe contact import
// ABOUTME: A Source lists address-book entries; Run hands them to the store
package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/store"
)

// ErrPermissionDenied is returned by sources whose address book has not been
// granted to the application.
var ErrPermissionDenied = errors.New("importer: contacts permission denied")

// Source lists contacts from an address book.
type Source interface {
	Name() string
	List(ctx context.Context) ([]models.DeviceContact, error)
}

// ContactImporter is the part of the store an import writes to.
type ContactImporter interface {
	ImportContacts(ctx context.Context, device []models.DeviceContact) (store.ImportResult, error)
}

// Run lists src and imports the result. Contacts already known by phone
// number are skipped.
func Run(ctx context.Context, dst ContactImporter, src Source) (store.ImportResult, error) {
	contacts, err := src.List(ctx)
	if err != nil {
		return store.ImportResult{}, fmt.Errorf("list %s contacts: %w", src.Name(), err)
	}
	result, err := dst.ImportContacts(ctx, contacts)
	if err != nil {
		return store.ImportResult{}, fmt.Errorf("import %s contacts: %w", src.Name(), err)
	}
	return result, nil
}
