package tvdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Series represents a single TheTVDB search match.
type Series struct {
	ID         int64  `json:"id"`
	SeriesName string `json:"seriesName"`
	Slug       string `json:"slug"`
	FirstAired string `json:"firstAired"`
	Network    string `json:"network"`
	Status     string `json:"status"`
}

type searchResponse struct {
	Data []Series `json:"data"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Searcher defines the TheTVDB operations used by the indexer registry.
type Searcher interface {
	SearchByIMDB(ctx context.Context, imdbID string) ([]Series, error)
	SearchByZap2It(ctx context.Context, zap2itID string) ([]Series, error)
}

// Client provides access to the TheTVDB API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	token string
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

// New creates a TheTVDB client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tvdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tvdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchByIMDB searches series by IMDb ID.
func (c *Client) SearchByIMDB(ctx context.Context, imdbID string) ([]Series, error) {
	return c.search(ctx, "imdbId", imdbID)
}

// SearchByZap2It searches series by Zap2it ID.
func (c *Client) SearchByZap2It(ctx context.Context, zap2itID string) ([]Series, error) {
	return c.search(ctx, "zap2itId", zap2itID)
}

func (c *Client) search(ctx context.Context, param, value string) ([]Series, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.New("search value must not be empty")
	}

	token, err := c.login(ctx)
	if err != nil {
		return nil, err
	}

	endpoint, err := url.Parse(c.baseURL + "/search/series")
	if err != nil {
		return nil, fmt.Errorf("parse tvdb url: %w", err)
	}
	params := url.Values{}
	params.Set(param, value)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	// TheTVDB answers 404 for a search with no matches.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidateToken()
		return nil, fmt.Errorf("tvdb search unauthorized (latency=%v)", latency)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tvdb search returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tvdb response: %w", err)
	}
	return payload.Data, nil
}

// login obtains a JWT for the configured API key, caching it across calls.
func (c *Client) login(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token, nil
	}

	body, err := json.Marshal(map[string]string{"apikey": c.apiKey})
	if err != nil {
		return "", fmt.Errorf("marshal login body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tvdb login returned %d", resp.StatusCode)
	}

	var payload loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if payload.Token == "" {
		return "", errors.New("tvdb login returned empty token")
	}
	c.token = payload.Token
	return c.token, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}
