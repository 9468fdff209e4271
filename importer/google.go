// ABOUTME: Google People API contact source
// ABOUTME: Pages through the user's connections and keeps entries that carry a phone number
package importer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	people "google.golang.org/api/people/v1"

	"github.com/harperreed/callbook/models"
)

const pageSize = 1000

// GoogleSource lists contacts from Google Contacts.
type GoogleSource struct {
	Config    *oauth2.Config
	TokenPath string
	// Endpoint overrides the People API base URL; used by tests.
	Endpoint string
	// HTTPClient bypasses OAuth entirely when set.
	HTTPClient *http.Client
}

func NewGoogleSource() *GoogleSource {
	return &GoogleSource{Config: NewOAuthConfig(), TokenPath: TokenPath()}
}

func (g *GoogleSource) Name() string { return "google" }

func (g *GoogleSource) service(ctx context.Context) (*people.Service, error) {
	client := g.HTTPClient
	if client == nil {
		token, err := LoadToken(g.TokenPath)
		if err != nil {
			return nil, err
		}
		client, err = httpClient(ctx, g.Config, token)
		if err != nil {
			return nil, err
		}
	}

	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if g.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.Endpoint))
	}
	svc, err := people.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create people service: %w", err)
	}
	return svc, nil
}

func (g *GoogleSource) List(ctx context.Context) ([]models.DeviceContact, error) {
	svc, err := g.service(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.DeviceContact
	pageToken := ""
	for {
		call := svc.People.Connections.List("people/me").
			PageSize(pageSize).
			PersonFields("names,phoneNumbers").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			var apiErr *googleapi.Error
			if errors.As(err, &apiErr) && (apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden) {
				return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
			}
			return nil, fmt.Errorf("failed to fetch contacts: %w", err)
		}

		for _, person := range resp.Connections {
			if c, ok := convertPerson(person); ok {
				out = append(out, c)
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}
	return out, nil
}

// convertPerson keeps the primary phone number first so imports match on it.
func convertPerson(person *people.Person) (models.DeviceContact, bool) {
	var c models.DeviceContact
	if len(person.Names) > 0 {
		c.Name = person.Names[0].DisplayName
		for _, n := range person.Names {
			if n.Metadata != nil && n.Metadata.Primary {
				c.Name = n.DisplayName
				break
			}
		}
	}

	for _, p := range person.PhoneNumbers {
		if p.Value == "" {
			continue
		}
		if p.Metadata != nil && p.Metadata.Primary {
			c.PhoneNumbers = append([]string{p.Value}, c.PhoneNumbers...)
		} else {
			c.PhoneNumbers = append(c.PhoneNumbers, p.Value)
		}
	}
	return c, len(c.PhoneNumbers) > 0
}
