// ABOUTME: Tests for contact sources and the import runner
// ABOUTME: File parsing, People API paging and conversion, fake data and duplicate-safe re-import
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	people "google.golang.org/api/people/v1"

	"github.com/harperreed/callbook/backing"
	"github.com/harperreed/callbook/models"
	"github.com/harperreed/callbook/store"
)

func setupStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(backing.NewMemory(), store.WithLogger(log.New(io.Discard)))
	require.NoError(t, s.Init(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFileSourceJSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "contacts.json")
	yamlPath := filepath.Join(dir, "contacts.yaml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"name":"Ann","phoneNumbers":["555-0100"]}]`), 0600))
	require.NoError(t, os.WriteFile(yamlPath, []byte("- name: Bo\n  phoneNumbers: [\"555-0101\", \"555-0102\"]\n"), 0600))

	got, err := FileSource{Path: jsonPath}.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.DeviceContact{{Name: "Ann", PhoneNumbers: []string{"555-0100"}}}, got)

	got, err = FileSource{Path: yamlPath}.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.DeviceContact{{Name: "Bo", PhoneNumbers: []string{"555-0101", "555-0102"}}}, got)
}

func TestFileSourceErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := FileSource{Path: filepath.Join(dir, "missing.json")}.List(context.Background())
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not":"a list"}`), 0600))
	_, err = FileSource{Path: bad}.List(context.Background())
	assert.Error(t, err)
}

func TestConvertPersonPrefersPrimary(t *testing.T) {
	person := &people.Person{
		Names: []*people.Name{
			{DisplayName: "Nick"},
			{DisplayName: "Nicole Reyes", Metadata: &people.FieldMetadata{Primary: true}},
		},
		PhoneNumbers: []*people.PhoneNumber{
			{Value: "555-0200"},
			{Value: ""},
			{Value: "555-0201", Metadata: &people.FieldMetadata{Primary: true}},
		},
	}

	c, ok := convertPerson(person)
	require.True(t, ok)
	assert.Equal(t, "Nicole Reyes", c.Name)
	assert.Equal(t, []string{"555-0201", "555-0200"}, c.PhoneNumbers)

	_, ok = convertPerson(&people.Person{Names: []*people.Name{{DisplayName: "No Phone"}}})
	assert.False(t, ok)
}

func TestGoogleSourcePaginates(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.True(t, strings.HasSuffix(r.URL.Path, "/people/me/connections"), r.URL.Path)
		resp := people.ListConnectionsResponse{}
		if r.URL.Query().Get("pageToken") == "" {
			resp.Connections = []*people.Person{{
				Names:        []*people.Name{{DisplayName: "Ann"}},
				PhoneNumbers: []*people.PhoneNumber{{Value: "555-0100"}},
			}}
			resp.NextPageToken = "page2"
		} else {
			resp.Connections = []*people.Person{
				{Names: []*people.Name{{DisplayName: "Skipped"}}},
				{Names: []*people.Name{{DisplayName: "Bo"}}, PhoneNumbers: []*people.PhoneNumber{{Value: "555-0101"}}},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	src := &GoogleSource{Endpoint: srv.URL + "/", HTTPClient: srv.Client()}
	got, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, got, 2)
	assert.Equal(t, "Ann", got[0].Name)
	assert.Equal(t, "Bo", got[1].Name)
}

func TestGoogleSourceForbiddenIsPermissionDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"denied"}}`))
	}))
	defer srv.Close()

	src := &GoogleSource{Endpoint: srv.URL + "/", HTTPClient: srv.Client()}
	_, err := src.List(context.Background())
	assert.True(t, errors.Is(err, ErrPermissionDenied))
}

func TestGoogleSourceWithoutTokenIsPermissionDenied(t *testing.T) {
	src := &GoogleSource{Config: NewOAuthConfig(), TokenPath: filepath.Join(t.TempDir(), "none.json")}
	_, err := src.List(context.Background())
	assert.True(t, errors.Is(err, ErrPermissionDenied))
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	require.NoError(t, SaveToken(path, &oauth2Token))

	got, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, oauth2Token.AccessToken, got.AccessToken)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestOAuthConfigScopes(t *testing.T) {
	config := NewOAuthConfig()
	assert.Equal(t, []string{contactsScope}, config.Scopes)
	assert.Equal(t, RedirectURL, config.RedirectURL)
	assert.Equal(t, "google-credentials.json", filepath.Base(TokenPath()))
}

func TestFakeSourceIsDeterministic(t *testing.T) {
	a, err := FakeSource{Count: 25, Seed: 7}.List(context.Background())
	require.NoError(t, err)
	b, err := FakeSource{Count: 25, Seed: 7}.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	phones := map[string]bool{}
	for _, c := range a {
		require.Len(t, c.PhoneNumbers, 1)
		phones[models.NormalizePhone(c.PhoneNumbers[0])] = true
	}
	assert.Len(t, phones, 25)
}

func TestRunIsDuplicateSafe(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	src := FakeSource{Count: 10, Seed: 1}

	first, err := Run(ctx, s, src)
	require.NoError(t, err)
	assert.Equal(t, 10, first.Imported)

	second, err := Run(ctx, s, src)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 10, second.Skipped)
	assert.Len(t, s.Contacts(ctx), 10)
}

type failingSource struct{}

func (failingSource) Name() string { return "broken" }
func (failingSource) List(context.Context) ([]models.DeviceContact, error) {
	return nil, ErrPermissionDenied
}

func TestRunWrapsSourceError(t *testing.T) {
	_, err := Run(context.Background(), setupStore(t), failingSource{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPermissionDenied))
	assert.Contains(t, err.Error(), "broken")
}

func TestFakeNotesReferenceContacts(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	contacts := []models.Contact{{ID: "c1", Name: "Ann"}, {ID: "c2", Name: "Bo"}}
	notes := FakeNotes(contacts, 3, 1, now)
	require.Len(t, notes, 6)
	for _, n := range notes {
		assert.Contains(t, []string{"c1", "c2"}, n.ContactID)
		assert.False(t, n.CallStartTime.After(now))
		assert.True(t, n.CallEndTime.After(n.CallStartTime))
		assert.True(t, n.Status.Valid())
	}
}

var oauth2Token = oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}
