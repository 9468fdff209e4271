// ABOUTME: Google OAuth2 configuration and token persistence
// ABOUTME: Tokens live under the XDG data directory, readable only by the owner
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const contactsScope = "https://www.googleapis.com/auth/contacts.readonly"

// RedirectURL is where the local callback server listens during `sync init`.
const RedirectURL = "http://localhost:8080/oauth/callback"

// NewOAuthConfig builds the OAuth2 config from GOOGLE_CLIENT_ID and
// GOOGLE_CLIENT_SECRET.
func NewOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  RedirectURL,
		Scopes:       []string{contactsScope},
		Endpoint:     google.Endpoint,
	}
}

// TokenPath returns the XDG-compliant path for the stored token.
func TokenPath() string {
	return filepath.Join(xdg.DataHome, "callbook", "google-credentials.json")
}

// SaveToken writes token to path, creating the directory if needed.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

// LoadToken reads a token saved by SaveToken. A missing file is reported as
// ErrPermissionDenied since the user never granted access.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no Google token at %s, run 'callbook sync init'", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return &token, nil
}

func httpClient(ctx context.Context, config *oauth2.Config, token *oauth2.Token) (*http.Client, error) {
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}
	return config.Client(ctx, token), nil
}
