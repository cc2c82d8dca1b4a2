// Package supabase provides a thin PostgREST reader for the tables the
// charity portal writes directly to Supabase (formal hours, endorsements).
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Options configures a Client.
type Options struct {
	ProjectURL string
	APIKey     string
	HTTPClient *http.Client
}

// Client performs read-only Supabase REST calls.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a Supabase client.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.ProjectURL) == "" {
		return nil, fmt.Errorf("supabase: project URL is required")
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("supabase: api key is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(opts.ProjectURL, "/") + "/rest/v1",
		apiKey:  opts.APIKey,
		http:    httpClient,
	}, nil
}

// Select queries a table with PostgREST parameters and decodes the JSON array
// response into dest.
func (c *Client) Select(ctx context.Context, table string, params url.Values, dest any) error {
	endpoint := c.baseURL + "/" + url.PathEscape(table)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("supabase: build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("supabase: select %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("supabase: select %s: status %d: %s", table, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("supabase: decode %s response: %w", table, err)
	}
	return nil
}
