package search

import (
	"context"
	"encoding/json"
)

// Result represents a single search hit from any provider.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`
}

// ResultSet is the ordered list of hits returned for one query. Items keep
// the provider's ranking. Raw holds the provider's results array exactly as
// it arrived on the wire.
type ResultSet struct {
	Items []Result
	Raw   json.RawMessage
}

// Provider is a minimal interface for search providers.
type Provider interface {
	Search(ctx context.Context, query string) (ResultSet, error)
	Name() string
}

// Len returns the number of items in the set.
func (rs ResultSet) Len() int { return len(rs.Items) }

// Top returns at most n leading items in provider order.
func (rs ResultSet) Top(n int) []Result {
	if n <= 0 {
		return nil
	}
	if n > len(rs.Items) {
		n = len(rs.Items)
	}
	return rs.Items[:n]
}

// Context returns the textual form of the results that is handed to the
// language model. The raw provider payload is used as-is when present.
func (rs ResultSet) Context() string {
	if len(rs.Raw) > 0 {
		return string(rs.Raw)
	}
	if rs.Items == nil {
		return "[]"
	}
	b, err := json.Marshal(rs.Items)
	if err != nil {
		return ""
	}
	return string(b)
}
