package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultTavilyURL is the public Tavily search endpoint.
	DefaultTavilyURL = "https://api.tavily.com/search"
	// DefaultDepth asks Tavily for its more thorough search mode.
	DefaultDepth = "advanced"
	// DefaultMaxResults caps the number of hits requested per query.
	DefaultMaxResults = 5
)

// Tavily implements Provider against the Tavily search API.
type Tavily struct {
	APIKey     string
	BaseURL    string // defaults to DefaultTavilyURL
	Depth      string // defaults to DefaultDepth
	MaxResults int    // defaults to DefaultMaxResults
	HTTPClient *http.Client
}

func (t *Tavily) Name() string { return "tavily" }

type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

type tavilyResponse struct {
	Results json.RawMessage `json:"results"`
}

// Search posts the query to Tavily and returns its results in the order
// Tavily ranked them. A missing API key is not checked here; Tavily rejects
// the request instead.
func (t *Tavily) Search(ctx context.Context, query string) (ResultSet, error) {
	endpoint := t.BaseURL
	if endpoint == "" {
		endpoint = DefaultTavilyURL
	}
	depth := t.Depth
	if depth == "" {
		depth = DefaultDepth
	}
	limit := t.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	payload, err := json.Marshal(tavilyRequest{
		APIKey:      t.APIKey,
		Query:       query,
		SearchDepth: depth,
		MaxResults:  limit,
	})
	if err != nil {
		return ResultSet{}, fmt.Errorf("marshal tavily request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return ResultSet{}, fmt.Errorf("create tavily request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	hc := t.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return ResultSet{}, fmt.Errorf("tavily request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ResultSet{}, fmt.Errorf("tavily status: %d", resp.StatusCode)
	}

	var tr tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return ResultSet{}, fmt.Errorf("decode tavily response: %w", err)
	}
	if len(tr.Results) == 0 || string(tr.Results) == "null" {
		return ResultSet{}, fmt.Errorf("tavily response has no results field")
	}
	var items []Result
	if err := json.Unmarshal(tr.Results, &items); err != nil {
		return ResultSet{}, fmt.Errorf("decode tavily results: %w", err)
	}
	return ResultSet{Items: items, Raw: tr.Results}, nil
}
