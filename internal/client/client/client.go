// Package client is a typed HTTP client for the ImpulseLog REST API. It
// keeps the bearer token from the last successful register/login and sends
// it on every authenticated call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type APIClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Token returns the currently held bearer token, "" when logged out.
func (c *APIClient) Token() string {
	return c.token
}

// Logout drops the held token.
func (c *APIClient) Logout() {
	c.token = ""
}

// apiError is a non-2xx response with its {"message": ...} body. It wraps
// one of the sentinel errors so callers can branch with errors.Is.
type apiError struct {
	status  int
	message string
	kind    error
}

func (e *apiError) Error() string {
	if e.message != "" {
		return e.message
	}
	return fmt.Sprintf("server returned status %d", e.status)
}

func (e *apiError) Unwrap() error { return e.kind }

func kindForStatus(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		return ErrUnavailable
	}
}

// do performs one request and decodes a 2xx JSON body into out (when out is
// non-nil). Any other status is returned as an *apiError.
func (c *APIClient) do(ctx context.Context, method, path string, body any, out any) error {

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &apiError{status: resp.StatusCode, message: errBody.Message, kind: kindForStatus(resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Register creates an account and keeps the returned token.
func (c *APIClient) Register(ctx context.Context, username, email, password, fullName string) (*AuthResult, error) {
	req := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
		"fullName": fullName,
	}

	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &res); err != nil {
		return nil, err
	}

	c.token = res.Token
	return &res, nil
}

// Login authenticates and keeps the returned token.
func (c *APIClient) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	req := map[string]string{
		"username": username,
		"password": password,
	}

	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &res); err != nil {
		return nil, err
	}

	c.token = res.Token
	return &res, nil
}

func (c *APIClient) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *APIClient) UpdateCurrentUser(ctx context.Context, patch UserPatch) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/users/me", patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *APIClient) ListEntries(ctx context.Context, filter ListFilter) ([]Entry, error) {
	q := url.Values{}
	if filter.StartDate != "" {
		q.Set("startDate", filter.StartDate)
	}
	if filter.EndDate != "" {
		q.Set("endDate", filter.EndDate)
	}
	if filter.DidAct != "" {
		q.Set("didAct", filter.DidAct)
	}

	path := "/impulse-entries"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var entries []Entry
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *APIClient) GetEntry(ctx context.Context, id string) (*Entry, error) {
	var entry Entry
	if err := c.do(ctx, http.MethodGet, "/impulse-entries/"+url.PathEscape(id), nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *APIClient) CreateEntry(ctx context.Context, draft EntryDraft) (*Entry, error) {
	var entry Entry
	if err := c.do(ctx, http.MethodPost, "/impulse-entries", draft, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *APIClient) UpdateEntry(ctx context.Context, id string, patch EntryPatch) (*Entry, error) {
	var entry Entry
	if err := c.do(ctx, http.MethodPut, "/impulse-entries/"+url.PathEscape(id), patch, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *APIClient) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/impulse-entries/"+url.PathEscape(id), nil, nil)
}

// Health probes the server's liveness endpoint.
func (c *APIClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}
