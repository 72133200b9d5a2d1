package trakt

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

// IDs carries the cross-provider identifiers Trakt tracks for a show.
type IDs struct {
	Trakt int64  `json:"trakt"`
	Slug  string `json:"slug"`
	TVDB  int64  `json:"tvdb"`
	IMDB  string `json:"imdb"`
	TMDB  int64  `json:"tmdb"`
}

// ShowResult is a single show entry from a search response.
type ShowResult struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
	IDs   IDs    `json:"ids"`
}

// SearchResult wraps one match in a Trakt search-by-id response.
type SearchResult struct {
	Type string     `json:"type"`
	Show ShowResult `json:"show"`
}

// Searcher defines the Trakt operations used by the externals resolver.
type Searcher interface {
	SearchShowByID(ctx context.Context, idType, id string) ([]SearchResult, error)
}

// Client provides access to the Trakt API.
type Client struct {
	clientID   string
	baseURL    string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

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

// New creates a Trakt client.
func New(clientID, baseURL string, opts ...Option) (*Client, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, errors.New("trakt client id required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("trakt base url required")
	}
	client := &Client{
		clientID:   clientID,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchShowByID looks up shows by an external ID. idType is one of trakt,
// tvdb, tmdb, or imdb.
func (c *Client) SearchShowByID(ctx context.Context, idType, id string) ([]SearchResult, error) {
	idType = strings.TrimSpace(idType)
	id = strings.TrimSpace(id)
	if idType == "" || id == "" {
		return nil, errors.New("id type and id must not be empty")
	}

	endpoint, err := url.Parse(c.baseURL + "/search/" + url.PathEscape(idType) + "/" + url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("parse trakt url: %w", err)
	}
	params := url.Values{}
	params.Set("type", "show")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("trakt-api-version", "2")
	req.Header.Set("trakt-api-key", c.clientID)

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
		return nil, fmt.Errorf("trakt search returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload []SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode trakt response: %w", err)
	}
	return payload, nil
}
