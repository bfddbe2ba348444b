// Package pocketbase provides a client for one PocketBase collection,
// authenticated with a single superuser credential.
package pocketbase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"budgetable/internal/model"
	"budgetable/internal/store"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
	listPageSize   = 500
)

var (
	// ErrMissingCredentials indicates the service-account email or
	// password is not configured.
	ErrMissingCredentials = errors.New("pocketbase: EMAIL and PASSWORD must be set")
	// ErrUnauthorized indicates the store rejected the credential.
	ErrUnauthorized = errors.New("pocketbase: unauthorized (credential rejected)")
)

// Client talks to one PocketBase collection as a superuser. The auth token
// is fetched lazily on first use and cached for the client's lifetime.
type Client struct {
	baseURL    string
	collection string
	email      string
	password   string
	http       *http.Client

	mu    sync.Mutex
	token string
}

// New creates a client bound to the given collection. Credentials are
// checked lazily so that a misconfigured client fails per-request rather
// than at startup.
func New(baseURL, collection, email, password string) *Client {
	return &Client{
		baseURL:    baseURL,
		collection: collection,
		email:      email,
		password:   password,
		http:       &http.Client{},
	}
}

type authResponse struct {
	Token string `json:"token"`
}

// Ensure authenticates the superuser credential if no cached token exists.
// Safe to call before every operation; a no-op while the session is valid.
func (c *Client) Ensure(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ensureLocked(ctx)
}

func (c *Client) ensureLocked(ctx context.Context) error {
	if c.token != "" {
		return nil
	}
	if c.email == "" || c.password == "" {
		return ErrMissingCredentials
	}

	body, err := json.Marshal(map[string]string{
		"identity": c.email,
		"password": c.password,
	})
	if err != nil {
		return fmt.Errorf("pocketbase: encoding auth request: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost,
		"/api/collections/_superusers/auth-with-password", "", body)
	if err != nil {
		// PocketBase answers a bad credential with 400; collapse every
		// rejection from the auth endpoint into ErrUnauthorized.
		var se *statusError
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, store.ErrNotFound) || errors.As(err, &se) {
			return ErrUnauthorized
		}
		return err
	}

	var ar authResponse
	if err := json.Unmarshal(data, &ar); err != nil {
		return fmt.Errorf("pocketbase: parsing auth response: %w", err)
	}
	if ar.Token == "" {
		return ErrUnauthorized
	}

	c.token = ar.Token
	return nil
}

// session returns the cached token, authenticating first if needed.
func (c *Client) session(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLocked(ctx); err != nil {
		return "", err
	}
	return c.token, nil
}

// invalidate drops the cached token so the next call re-authenticates.
func (c *Client) invalidate() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

type listResponse struct {
	Page    int         `json:"page"`
	PerPage int         `json:"perPage"`
	Items   []model.Row `json:"items"`
}

// List returns the full ordered contents of the collection.
func (c *Client) List(ctx context.Context) ([]model.Row, error) {
	rows := make([]model.Row, 0)
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("perPage", strconv.Itoa(listPageSize))
		q.Set("sort", "created")
		q.Set("skipTotal", "1")

		data, err := c.authedDo(ctx, http.MethodGet, c.recordsPath()+"?"+q.Encode(), nil)
		if err != nil {
			return nil, err
		}

		var lr listResponse
		if err := json.Unmarshal(data, &lr); err != nil {
			return nil, fmt.Errorf("pocketbase: parsing list response: %w", err)
		}
		rows = append(rows, lr.Items...)

		if len(lr.Items) < listPageSize {
			return rows, nil
		}
	}
}

// Get returns a single row by id.
func (c *Client) Get(ctx context.Context, id string) (model.Row, error) {
	data, err := c.authedDo(ctx, http.MethodGet, c.recordPath(id), nil)
	if err != nil {
		return model.Row{}, err
	}
	return decodeRow(data)
}

// Create persists a new row; the store assigns its id.
func (c *Client) Create(ctx context.Context, row model.Row) (model.Row, error) {
	row.ID = ""
	if row.Status == "" {
		row.Status = model.StatusUnpaid
	}
	body, err := json.Marshal(row)
	if err != nil {
		return model.Row{}, fmt.Errorf("pocketbase: encoding row: %w", err)
	}

	data, err := c.authedDo(ctx, http.MethodPost, c.recordsPath(), body)
	if err != nil {
		return model.Row{}, err
	}
	return decodeRow(data)
}

// Update merges the given fields into the existing row and returns it.
func (c *Client) Update(ctx context.Context, id string, row model.Row) (model.Row, error) {
	body, err := json.Marshal(row)
	if err != nil {
		return model.Row{}, fmt.Errorf("pocketbase: encoding row: %w", err)
	}

	data, err := c.authedDo(ctx, http.MethodPatch, c.recordPath(id), body)
	if err != nil {
		return model.Row{}, err
	}
	return decodeRow(data)
}

// Delete removes the row with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.authedDo(ctx, http.MethodDelete, c.recordPath(id), nil)
	return err
}

func (c *Client) recordsPath() string {
	return "/api/collections/" + url.PathEscape(c.collection) + "/records"
}

func (c *Client) recordPath(id string) string {
	return c.recordsPath() + "/" + url.PathEscape(id)
}

// authedDo performs a request with the cached token, authenticating first
// if needed. A 401/403 drops the cached token before surfacing the error.
func (c *Client) authedDo(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	token, err := c.session(ctx)
	if err != nil {
		return nil, err
	}

	data, err := c.do(ctx, method, path, token, body)
	if errors.Is(err, ErrUnauthorized) {
		c.invalidate()
	}
	return data, err
}

// do performs a single request against the store and returns the response
// body. Status codes are collapsed into the package's error taxonomy.
func (c *Client) do(ctx context.Context, method, path, token string, body []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("pocketbase: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pocketbase: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, store.ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("pocketbase: reading response: %w", err)
	}
	return data, nil
}

// statusError carries a non-2xx status the taxonomy has no name for.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("pocketbase: unexpected status %d", e.code)
}

func decodeRow(data []byte) (model.Row, error) {
	var r model.Row
	if err := json.Unmarshal(data, &r); err != nil {
		return model.Row{}, fmt.Errorf("pocketbase: parsing record: %w", err)
	}
	return r, nil
}
