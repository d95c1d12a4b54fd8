package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"newsie/internal/model"
)

// Client is a minimal client for a SearxNG-compatible search endpoint
// (JSON format API). It is the optional collaborator that grounds section
// content in current news.
type Client struct {
	baseURL    string
	client     *http.Client
	maxResults int
}

// NewClient creates a search client. baseURL points at the SearxNG instance
// root, e.g. "https://searx.example.org".
func NewClient(baseURL string, maxResults int) *Client {
	if maxResults <= 0 {
		maxResults = 3
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: 10 * time.Second},
		maxResults: maxResults,
	}
}

// searchResponse mirrors the subset of the SearxNG JSON payload we use.
type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search queries for a section's focus phrase, preferring news results and
// falling back to general results when news yields nothing. Any failure is
// non-fatal: it logs a warning and returns an empty list so generation can
// proceed ungrounded.
func (c *Client) Search(ctx context.Context, sectionName, focus string) []model.SearchResult {
	query := strings.TrimSpace(focus)
	if query == "" {
		query = sectionName
	}
	query = query + " nonprofit community news"

	results, err := c.search(ctx, query, "news")
	if err == nil && len(results) == 0 {
		results, err = c.search(ctx, query, "general")
	}
	if err != nil {
		slog.Warn("websearch: query failed, continuing without context", "section", sectionName, "err", err)
		return nil
	}
	return results
}

func (c *Client) search(ctx context.Context, query, category string) ([]model.SearchResult, error) {
	q := url.Values{
		"q":          {query},
		"format":     {"json"},
		"categories": {category},
	}
	endpoint := c.baseURL + "/search?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("websearch: status %d", resp.StatusCode)
	}
	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	out := make([]model.SearchResult, 0, c.maxResults)
	for _, r := range raw.Results {
		if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.URL) == "" {
			continue
		}
		out = append(out, model.SearchResult{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Content,
		})
		if len(out) >= c.maxResults {
			break
		}
	}
	return out, nil
}

// Augment gathers context for every section with a non-empty focus. Sections
// the search fails for simply get no context block.
func (c *Client) Augment(ctx context.Context, in model.FormInput, brand model.BrandConfig) []model.SectionContext {
	var contexts []model.SectionContext
	for i := 0; i < model.NumSections; i++ {
		name := strings.TrimSpace(in.Sections[i].Name)
		if name == "" {
			name = brand.SectionNames[i]
		}
		if strings.TrimSpace(in.Sections[i].Focus) == "" {
			continue
		}
		contexts = append(contexts, model.SectionContext{
			SectionName: name,
			Results:     c.Search(ctx, name, in.Sections[i].Focus),
		})
	}
	return contexts
}
