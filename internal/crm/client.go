// Package crm writes processed client records into a Baserow database.
// Baserow exposes tables over a simple token-authenticated REST API; rows
// are flat JSON objects keyed by field name when user_field_names is set.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/willowgate/transcriptd/internal/config"
)

// Row is a flat field-name to value mapping as Baserow stores it.
type Row map[string]any

// RowStore is the persistence boundary the pipeline depends on.
type RowStore interface {
	SaveRow(ctx context.Context, tableID int, row Row) (int, error)
	UpdateRow(ctx context.Context, tableID, rowID int, row Row) error
	Health(ctx context.Context) error
}

// Client is a Baserow REST client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Baserow client from CRM config.
func NewClient(cfg config.CRMConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token.Value(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type rowResponse struct {
	ID int `json:"id"`
}

// SaveRow creates a row and returns its ID.
func (c *Client) SaveRow(ctx context.Context, tableID int, row Row) (int, error) {
	url := fmt.Sprintf("%s/api/database/rows/table/%d/?user_field_names=true", c.baseURL, tableID)
	body, err := c.do(ctx, http.MethodPost, url, row)
	if err != nil {
		return 0, fmt.Errorf("failed to create row: %w", err)
	}

	var created rowResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return 0, fmt.Errorf("failed to parse create response: %w", err)
	}
	return created.ID, nil
}

// UpdateRow patches an existing row.
func (c *Client) UpdateRow(ctx context.Context, tableID, rowID int, row Row) error {
	url := fmt.Sprintf("%s/api/database/rows/table/%d/%d/?user_field_names=true", c.baseURL, tableID, rowID)
	if _, err := c.do(ctx, http.MethodPatch, url, row); err != nil {
		return fmt.Errorf("failed to update row %d: %w", rowID, err)
	}
	return nil
}

// Health checks that the Baserow API is reachable and the token works.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/database/tokens/check/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("crm unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("crm health check failed with status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, row Row) ([]byte, error) {
	payload, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crm API error (%d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// Ensure interface is implemented at compile time.
var _ RowStore = (*Client)(nil)
