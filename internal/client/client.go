// Package client provides the HTTP client the TUI uses against a running
// budgetable server.
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

	"budgetable/internal/model"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// Client talks to the budgetable HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// apiError mirrors the server's error envelope.
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// List fetches the full row collection.
func (c *Client) List(ctx context.Context) ([]model.Row, error) {
	data, err := c.do(ctx, http.MethodGet, "/pocketbase", nil)
	if err != nil {
		return nil, err
	}
	var rows []model.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("client: parsing rows: %w", err)
	}
	return rows, nil
}

// Create persists a new row and returns the server-assigned copy.
func (c *Client) Create(ctx context.Context, row model.Row) (model.Row, error) {
	body, err := json.Marshal(row)
	if err != nil {
		return model.Row{}, fmt.Errorf("client: encoding row: %w", err)
	}
	data, err := c.do(ctx, http.MethodPost, "/pocketbase", body)
	if err != nil {
		return model.Row{}, err
	}
	return decodeRow(data)
}

// Update sends the full row state and returns the authoritative copy.
func (c *Client) Update(ctx context.Context, row model.Row) (model.Row, error) {
	body, err := json.Marshal(row)
	if err != nil {
		return model.Row{}, fmt.Errorf("client: encoding row: %w", err)
	}
	data, err := c.do(ctx, http.MethodPut, "/pocketbase/"+url.PathEscape(row.ID), body)
	if err != nil {
		return model.Row{}, err
	}
	return decodeRow(data)
}

// Delete removes the row with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/pocketbase/"+url.PathEscape(id), nil)
	return err
}

// Health checks the server health endpoint.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("client: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("client: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ae apiError
		if json.Unmarshal(data, &ae) == nil && ae.Error.Message != "" {
			return nil, fmt.Errorf("client: %s (status %d)", ae.Error.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("client: unexpected status %d", resp.StatusCode)
	}
	return data, nil
}

func decodeRow(data []byte) (model.Row, error) {
	var r model.Row
	if err := json.Unmarshal(data, &r); err != nil {
		return model.Row{}, fmt.Errorf("client: parsing row: %w", err)
	}
	return r, nil
}
