// internal/search/tavily.go
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"matchtech-assistant/internal/assistant"
	"matchtech-assistant/internal/common/logger"
)

var (
	ErrSearchTimeout = errors.New("WEB_SEARCH_TIMEOUT")
)

// Client issues web searches against the Tavily search API. Any failure is
// surfaced as an error; the assistant degrades it to an empty result set.
type Client struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		logger: log.With(map[string]interface{}{
			"component": "web-search",
		}),
	}
}

func (c *Client) Search(ctx context.Context, query string) ([]assistant.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		c.logger.Debug("empty query, skipping web search", nil)
		return nil, nil
	}

	body, _ := json.Marshal(map[string]interface{}{
		"api_key":      c.config.APIKey,
		"query":        query,
		"search_depth": c.config.SearchDepth,
		"max_results":  c.config.MaxResults,
	})

	req, err := http.NewRequestWithContext(ctx, "POST", c.config.BaseURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded ||
			strings.Contains(err.Error(), "Client.Timeout") ||
			strings.Contains(err.Error(), "deadline") {
			return nil, ErrSearchTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorText, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(errorText)))
	}

	var apiResponse struct {
		Results []assistant.SearchResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := apiResponse.Results
	if len(results) > c.config.MaxResults {
		results = results[:c.config.MaxResults]
	}

	c.logger.Info("web search completed", map[string]interface{}{
		"resultCount": len(results),
	})

	return results, nil
}
