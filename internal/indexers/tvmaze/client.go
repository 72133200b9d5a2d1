package tvmaze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ShowExternals carries the cross-provider IDs TVmaze tracks for a show.
type ShowExternals struct {
	TVRage  int64  `json:"tvrage"`
	TheTVDB int64  `json:"thetvdb"`
	IMDB    string `json:"imdb"`
}

// Show represents a TVmaze show record.
type Show struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Premiered string        `json:"premiered"`
	Externals ShowExternals `json:"externals"`
}

// Lookup selects which external ID to resolve. Exactly one field is used;
// IMDb takes precedence when both are present.
type Lookup struct {
	IMDB string
	TVDB string
}

// Looker defines the TVmaze operations used by the indexer registry.
type Looker interface {
	LookupShow(ctx context.Context, lookup Lookup) (*Show, error)
}

// Client provides access to the TVmaze API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Looker = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TVmaze client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tvmaze base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// LookupShow resolves an IMDb or TheTVDB ID to a TVmaze show. A lookup with
// no match returns (nil, nil).
func (c *Client) LookupShow(ctx context.Context, lookup Lookup) (*Show, error) {
	params := url.Values{}
	switch {
	case strings.TrimSpace(lookup.IMDB) != "":
		params.Set("imdb", strings.TrimSpace(lookup.IMDB))
	case strings.TrimSpace(lookup.TVDB) != "":
		params.Set("thetvdb", strings.TrimSpace(lookup.TVDB))
	default:
		return nil, errors.New("lookup requires an imdb or thetvdb id")
	}

	endpoint, err := url.Parse(c.baseURL + "/lookup/shows")
	if err != nil {
		return nil, fmt.Errorf("parse tvmaze url: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tvmaze lookup returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload Show
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tvmaze response: %w", err)
	}
	return &payload, nil
}
