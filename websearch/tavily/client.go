// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/versebase/core"
	"github.com/poiesic/versebase/websearch"
)

const (
	defaultEndpoint   = "https://api.tavily.com/search"
	defaultMaxResults = 5
	defaultTimeout    = 30 * time.Second
)

// Client implements websearch.Searcher against the Tavily search API.
type Client struct {
	apiKey     string
	endpoint   string
	maxResults int
	httpClient *http.Client
	logger     *slog.Logger
}

var _ websearch.Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API endpoint. Used by tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithMaxResults sets how many sources a search requests.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient creates a Tavily client.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, websearch.ErrAPIKeyRequired
	}

	c := &Client{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		maxResults: defaultMaxResults,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default().With("component", "tavily-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// searchRequest is the Tavily search API request body.
type searchRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	MaxResults        int    `json:"max_results"`
	SearchDepth       string `json:"search_depth"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

// searchResult is one hit in the Tavily response.
type searchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// searchResponse is the Tavily search API response body.
type searchResponse struct {
	Answer  string         `json:"answer"`
	Results []searchResult `json:"results"`
}

// Search queries the Tavily API and maps its hits to context sources.
func (c *Client) Search(ctx context.Context, query string) (*websearch.Response, error) {
	body, err := json.Marshal(searchRequest{
		APIKey:            c.apiKey,
		Query:             query,
		MaxResults:        c.maxResults,
		SearchDepth:       "advanced",
		IncludeAnswer:     true,
		IncludeRawContent: false,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("search request failed", "err", err)
		return nil, fmt.Errorf("%w: %w", websearch.ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("search request rejected", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", websearch.ErrSearchUnavailable, resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", websearch.ErrSearchUnavailable, err)
	}

	sources := make([]core.ContextSource, len(parsed.Results))
	for i, result := range parsed.Results {
		sources[i] = core.ContextSource{
			Title:   result.Title,
			Snippet: result.Content,
			URL:     result.URL,
			Score:   result.Score,
		}
	}

	c.logger.Debug("search completed", "sources", len(sources), "has_answer", parsed.Answer != "")
	return &websearch.Response{Answer: parsed.Answer, Sources: sources}, nil
}
