package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*APIClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewAPIClient(srv.URL, 5*time.Second), srv
}

func TestLogin_KeepsToken(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "alice", req["username"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-123",
			"user":  map[string]any{"id": 1, "username": "alice"},
		})
	})
	defer srv.Close()

	res, err := c.Login(context.Background(), "alice", "s3cret!")
	require.NoError(t, err)
	require.Equal(t, "tok-123", res.Token)
	require.Equal(t, "tok-123", c.Token())

	c.Logout()
	require.Empty(t, c.Token())
}

func TestLogin_BadCredentials(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid username or password"})
	})
	defer srv.Close()

	_, err := c.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
	require.EqualError(t, err, "Invalid username or password")
}

func TestAuthenticatedRequestsCarryBearer(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "alice"})
	})
	defer srv.Close()

	c.token = "tok-123"

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
}

func TestListEntries_QueryParams(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "2026-01-01", q.Get("startDate"))
		require.Equal(t, "no", q.Get("didAct"))
		require.False(t, q.Has("endDate"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "e1", "impulseText": "first", "didAct": "no"},
		})
	})
	defer srv.Close()

	entries, err := c.ListEntries(context.Background(), ListFilter{StartDate: "2026-01-01", DidAct: "no"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "first", entries[0].ImpulseText)
}

func TestGetEntry_NotFound(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Impulse entry not found"})
	})
	defer srv.Close()

	_, err := c.GetEntry(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateEntry_OmitsAbsentFields(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Contains(t, body, "notes")
		require.NotContains(t, body, "impulseText")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "e1", "notes": "done"})
	})
	defer srv.Close()

	notes := "done"
	entry, err := c.UpdateEntry(context.Background(), "e1", EntryPatch{Notes: &notes})
	require.NoError(t, err)
	require.Equal(t, "done", entry.Notes)
}

func TestDeleteEntry(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	require.NoError(t, c.DeleteEntry(context.Background(), "e1"))
}

func TestServerUnreachable(t *testing.T) {
	c := NewAPIClient("http://127.0.0.1:1", 500*time.Millisecond)

	err := c.Health(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}
