// ABOUTME: Address-book export file source
// ABOUTME: Reads a JSON or YAML list of {name, phoneNumbers} entries
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/callbook/models"
)

type FileSource struct {
	Path string
}

func (f FileSource) Name() string { return "file " + filepath.Base(f.Path) }

func (f FileSource) List(_ context.Context) ([]models.DeviceContact, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
		return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}

	var contacts []models.DeviceContact
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &contacts)
	default:
		err = json.Unmarshal(data, &contacts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.Path, err)
	}
	return contacts, nil
}
