// Package dnc provides do-not-call registry lookups. The resolver treats any
// lookup failure as listed, so implementations report errors honestly and
// never guess.
package dnc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client queries an external DNC registry over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a registry client. The timeout bounds a single lookup;
// the resolver holds the overall deadline.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type lookupResponse struct {
	Listed bool `json:"listed"`
}

// IsListed reports registry membership for a phone number.
func (c *Client) IsListed(ctx context.Context, phoneNumber string) (bool, error) {
	u := fmt.Sprintf("%s/v1/lookup?number=%s", c.baseURL, url.QueryEscape(phoneNumber))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("build dnc request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("dnc lookup: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("dnc lookup: unexpected status %d", resp.StatusCode)
	}
	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("decode dnc response: %w", err)
	}
	return body.Listed, nil
}
