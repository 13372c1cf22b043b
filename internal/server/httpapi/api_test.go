package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"impulselog/internal/logging"
	"impulselog/internal/server/config"
	"impulselog/internal/server/httpapi"
	"impulselog/internal/server/repositories/repomanager"
	"impulselog/internal/server/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var seq int

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	seq++
	dsn := fmt.Sprintf("file:api_test_%d?mode=memory&cache=shared", seq)
	m, err := repomanager.NewSQLiteRepositoryManager(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	require.NoError(t, m.RunMigrations(context.Background()))

	cfg := &config.Config{}
	cfg.LoadDefaults()
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))

	us := services.NewUserService(m, cfg)
	es := services.NewEntryService(m)

	srv := httptest.NewServer(httpapi.NewServer(cfg.EndpointAddr, logger, us, es, cfg.SecretKey).Handler())
	t.Cleanup(srv.Close)
	return srv
}

// doJSON sends body as JSON and decodes the response into a generic map.
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func doJSONList(t *testing.T, srv *httptest.Server, path, token string) (int, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded []map[string]any
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func register(t *testing.T, srv *httptest.Server, username, email string) string {
	t.Helper()

	status, body := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "s3cret!",
	})
	require.Equal(t, http.StatusOK, status)
	return body["token"].(string)
}

func TestRegister(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cret!",
		"fullName": "Alice A",
	})
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body["token"])

	user := body["user"].(map[string]any)
	require.Equal(t, "alice", user["username"])
	require.Equal(t, "Alice A", user["fullName"])
	require.NotContains(t, user, "passwordHash")
	require.NotContains(t, user, "password")
}

func TestRegister_Validation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		req  map[string]string
	}{
		{"short username", map[string]string{"username": "ab", "email": "a@b.co", "password": "s3cret!"}},
		{"bad email", map[string]string{"username": "alice", "email": "not-an-email", "password": "s3cret!"}},
		{"short password", map[string]string{"username": "alice", "email": "a@b.co", "password": "12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, srv, http.MethodPost, "/auth/register", "", tt.req)
			require.Equal(t, http.StatusBadRequest, status)
			require.NotEmpty(t, body["message"])
		})
	}
}

func TestRegister_Conflicts(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "alice", "alice@example.com")

	status, body := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "s3cret!",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Username already exists", body["message"])

	status, body = doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "bob", "email": "alice@example.com", "password": "s3cret!",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Email already exists", body["message"])
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "alice", "alice@example.com")

	status, body := doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "alice", "password": "s3cret!",
	})
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body["token"])
	require.Equal(t, "alice", body["user"].(map[string]any)["username"])

	// Wrong password and unknown user answer identically.
	status, body = doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Invalid username or password", body["message"])

	status, body = doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "nobody", "password": "s3cret!",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Invalid username or password", body["message"])
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/users/me"},
		{http.MethodPut, "/users/me"},
		{http.MethodGet, "/impulse-entries"},
		{http.MethodPost, "/impulse-entries"},
	} {
		status, _ := doJSON(t, srv, tc.method, tc.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, status, "%s %s", tc.method, tc.path)
	}

	status, _ := doJSON(t, srv, http.MethodGet, "/users/me", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestCurrentUser(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "alice", "alice@example.com")

	status, body := doJSON(t, srv, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "alice", body["username"])
	require.Equal(t, "alice@example.com", body["email"])
}

func TestUpdateCurrentUser(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "alice", "alice@example.com")
	register(t, srv, "bob", "bob@example.com")

	// Empty fields are ignored, present ones applied.
	status, body := doJSON(t, srv, http.MethodPut, "/users/me", token, map[string]string{
		"fullName": "Alice Renamed",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Alice Renamed", body["fullName"])
	require.Equal(t, "alice@example.com", body["email"])

	// Someone else's email is a conflict.
	status, body = doJSON(t, srv, http.MethodPut, "/users/me", token, map[string]string{
		"email": "bob@example.com",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Email already in use", body["message"])

	// Password change takes effect at the next login.
	status, _ = doJSON(t, srv, http.MethodPut, "/users/me", token, map[string]string{
		"password": "newpass1",
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "alice", "password": "s3cret!",
	})
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "alice", "password": "newpass1",
	})
	require.Equal(t, http.StatusOK, status)
}

func TestCreateEntry(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "alice", "alice@example.com")

	status, body := doJSON(t, srv, http.MethodPost, "/impulse-entries", token, map[string]string{
		"impulseText": "buy a drone",
		"emotion":     "excitement",
	})
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, body["id"])
	require.Equal(t, "unknown", body["didAct"])
	require.Equal(t, "excitement", body["emotion"])
	require.NotEmpty(t, body["createdAt"])
	require.Nil(t, body["updatedAt"])

	status, body = doJSON(t, srv, http.MethodPost, "/impulse-entries", token, map[string]string{})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Impulse text is required", body["message"])

	status, _ = doJSON(t, srv, http.MethodPost, "/impulse-entries", token, map[string]string{
		"impulseText": "x", "didAct": "maybe",
	})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestEntryLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "alice", "alice@example.com")

	status, created := doJSON(t, srv, http.MethodPost, "/impulse-entries", token, map[string]string{
		"impulseText": "buy concert tickets",
		"trigger":     "ad",
	})
	require.Equal(t, http.StatusCreated, status)
	id := created["id"].(string)

	status, got := doJSON(t, srv, http.MethodGet, "/impulse-entries/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "buy concert tickets", got["impulseText"])

	// Partial update: only didAct and notes change.
	status, updated := doJSON(t, srv, http.MethodPut, "/impulse-entries/"+id, token, map[string]string{
		"didAct": "no",
		"notes":  "urge passed",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "buy concert tickets", updated["impulseText"])
	require.Equal(t, "ad", updated["trigger"])
	require.Equal(t, "no", updated["didAct"])
	require.Equal(t, "urge passed", updated["notes"])
	require.NotEmpty(t, updated["updatedAt"])

	status, _ = doJSON(t, srv, http.MethodDelete, "/impulse-entries/"+id, token, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, body := doJSON(t, srv, http.MethodGet, "/impulse-entries/"+id, token, nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Impulse entry not found", body["message"])

	status, _ = doJSON(t, srv, http.MethodDelete, "/impulse-entries/"+id, token, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestEntry_UnknownAndMalformedIDs(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "alice", "alice@example.com")

	status, body := doJSON(t, srv, http.MethodGet, "/impulse-entries/"+uuid.New().String(), token, nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Impulse entry not found", body["message"])

	status, body = doJSON(t, srv, http.MethodGet, "/impulse-entries/not-a-uuid", token, nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Impulse entry not found", body["message"])
}

func TestEntry_CrossUserIsolation(t *testing.T) {
	srv := newTestServer(t)
	alice := register(t, srv, "alice", "alice@example.com")
	bob := register(t, srv, "bob", "bob@example.com")

	status, created := doJSON(t, srv, http.MethodPost, "/impulse-entries", alice, map[string]string{
		"impulseText": "private thought",
	})
	require.Equal(t, http.StatusCreated, status)
	id := created["id"].(string)

	// To bob, alice's entry does not exist.
	status, _ = doJSON(t, srv, http.MethodGet, "/impulse-entries/"+id, bob, nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, srv, http.MethodPut, "/impulse-entries/"+id, bob, map[string]string{"notes": "hijack"})
	require.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, srv, http.MethodDelete, "/impulse-entries/"+id, bob, nil)
	require.Equal(t, http.StatusNotFound, status)

	status, list := doJSONList(t, srv, "/impulse-entries", bob)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 0)

	status, list = doJSONList(t, srv, "/impulse-entries", alice)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
}

func TestListEntries_Filters(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "alice", "alice@example.com")

	for _, e := range []map[string]string{
		{"impulseText": "first", "didAct": "yes"},
		{"impulseText": "second", "didAct": "no"},
		{"impulseText": "third", "didAct": "no"},
	} {
		status, _ := doJSON(t, srv, http.MethodPost, "/impulse-entries", token, e)
		require.Equal(t, http.StatusCreated, status)
	}

	status, list := doJSONList(t, srv, "/impulse-entries?didAct=no", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 2)
	for _, e := range list {
		require.Equal(t, "no", e["didAct"])
	}

	// "all" is a no-op filter.
	status, list = doJSONList(t, srv, "/impulse-entries?didAct=all", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 3)

	status, list = doJSONList(t, srv, "/impulse-entries?startDate=2020-01-01", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 3)

	status, list = doJSONList(t, srv, "/impulse-entries?endDate=2020-01-01", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 0)

	status, _ = doJSONList(t, srv, "/impulse-entries?startDate=garbage", token)
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSONList(t, srv, "/impulse-entries?didAct=maybe", token)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])
}
