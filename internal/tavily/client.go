package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"tavagent/internal/config"
	"tavagent/internal/models"
	"tavagent/pkg/logger"
)

// Search depth accepted by the remote search endpoint.
const (
	DepthBasic    = "basic"
	DepthAdvanced = "advanced"
)

// APIError is a failure reported by the remote service itself, as opposed to
// a transport-level failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tavily: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("tavily: %s (status %d)", e.Message, e.StatusCode)
}

// Client is a thin facade over the Tavily HTTP API. It holds the credential
// for the process lifetime and adds no retry, caching or rate limiting; any
// failure is returned to the caller as-is.
type Client struct {
	apiKey     string
	baseURL    string
	maxResults int
	depth      string
	client     *http.Client
}

// NewClient creates a client from the loaded configuration.
func NewClient(cfg *config.TavilyConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.tavily.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30
	}
	if cfg.MaxResults == 0 {
		cfg.MaxResults = 5
	}
	if cfg.SearchDepth == "" {
		cfg.SearchDepth = DepthAdvanced
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		maxResults: cfg.MaxResults,
		depth:      cfg.SearchDepth,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// SearchOptions configures a single search call.
type SearchOptions struct {
	MaxResults int
	Depth      string // DepthBasic or DepthAdvanced; empty means the configured default
}

type searchRequest struct {
	Query             string `json:"query"`
	MaxResults        int    `json:"max_results,omitempty"`
	SearchDepth       string `json:"search_depth,omitempty"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

type extractRequest struct {
	URLs              []string `json:"urls"`
	IncludeRawContent bool     `json:"include_raw_content"`
}

type errorResponse struct {
	Error  string `json:"error,omitempty"`
	Detail struct {
		Error string `json:"error,omitempty"`
	} `json:"detail,omitempty"`
}

// Search calls the remote search endpoint. Full page text is always
// requested so results carry raw content, not just snippets.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*models.Envelope, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = c.maxResults
	}
	depth := opts.Depth
	if depth == "" {
		depth = c.depth
	}

	req := searchRequest{
		Query:             query,
		MaxResults:        maxResults,
		SearchDepth:       depth,
		IncludeRawContent: true,
	}
	return c.post(ctx, "/search", req)
}

// Extract calls the remote content-extraction endpoint for a set of URLs.
// One record comes back per fetched URL; order is not guaranteed to match
// the input.
func (c *Client) Extract(ctx context.Context, urls []string, includeRaw bool) (*models.Envelope, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("tavily: extract requires at least one url")
	}
	req := extractRequest{
		URLs:              urls,
		IncludeRawContent: includeRaw,
	}
	return c.post(ctx, "/extract", req)
}

func (c *Client) post(ctx context.Context, path string, payload any) (*models.Envelope, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	logger.Debug("tavily response",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Int("body_bytes", len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    parseErrorMessage(body),
		}
	}

	var envelope models.Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &envelope, nil
}

func parseErrorMessage(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return ""
	}
	if er.Error != "" {
		return er.Error
	}
	return er.Detail.Error
}
