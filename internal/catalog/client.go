package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public JioSaavn API mirror.
	DefaultBaseURL = "https://saavn.dev"
	searchPath     = "/api/search/songs"
	userAgent      = "saavn-terminal-player/1.0 (https://github.com/llehouerou/saavn)"
)

// Client is a JioSaavn search API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a search client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type searchResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		Total   int     `json:"total"`
		Start   int     `json:"start"`
		Results []Track `json:"results"`
	} `json:"data"`
}

// SearchSongs returns the tracks matching query.
// An empty or missing result collection is not an error.
func (c *Client) SearchSongs(ctx context.Context, query string) ([]Track, error) {
	params := url.Values{}
	params.Set("query", query)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, searchPath, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// A body that is not the expected container means no results.
		return []Track{}, nil //nolint:nilerr // malformed results are "no results"
	}
	if result.Data == nil || len(result.Data.Results) == 0 {
		return []Track{}, nil
	}

	return result.Data.Results, nil
}
