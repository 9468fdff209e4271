// ABOUTME: Google contact sync CLI commands
// ABOUTME: Runs the OAuth consent flow and imports the Google address book
package cli

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"

	"golang.org/x/oauth2"

	"github.com/harperreed/callbook/importer"
	"github.com/harperreed/callbook/store"
)

// SyncInitCommand handles OAuth setup
func SyncInitCommand(args []string) error {
	fs := flag.NewFlagSet("sync init", flag.ExitOnError)
	_ = fs.Parse(args)

	ctx := context.Background()
	config := importer.NewOAuthConfig()
	if config.ClientID == "" || config.ClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	callbackChan := make(chan *oauth2.Token, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			return
		}

		token, err := config.Exchange(ctx, code)
		if err != nil {
			errChan <- fmt.Errorf("failed to exchange code: %w", err)
			return
		}

		callbackChan <- token
		_, _ = fmt.Fprintf(w, "Authorization successful! You can close this window.")
	})

	server := &http.Server{Addr: ":8080", Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	authURL := config.AuthCodeURL("state", oauth2.AccessTypeOffline)

	fmt.Fprintln(stdout, "Opening browser for Google OAuth...")
	fmt.Fprintf(stdout, "\nIf browser doesn't open, visit this URL:\n%s\n\n", authURL)
	_ = openBrowser(authURL)

	select {
	case token := <-callbackChan:
		_ = server.Shutdown(ctx)

		path := importer.TokenPath()
		if err := importer.SaveToken(path, token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}

		fmt.Fprintf(stdout, "\n✓ Authenticated successfully\n")
		fmt.Fprintf(stdout, "✓ Tokens saved to %s\n\n", path)
		fmt.Fprintln(stdout, "Ready to sync! Run 'callbook sync contacts' to import contacts.")
		return nil

	case err := <-errChan:
		_ = server.Shutdown(ctx)
		return fmt.Errorf("OAuth flow failed: %w", err)
	}
}

// SyncContactsCommand imports Google Contacts. Contacts whose phone number
// is already known are skipped, so it is safe to run repeatedly.
func SyncContactsCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("sync contacts", flag.ExitOnError)
	_ = fs.Parse(args)

	return runImport(st, importer.NewGoogleSource())
}

func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}

	return exec.Command(cmd, args...).Start()
}
