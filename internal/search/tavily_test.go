package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTavily_Search_SendsAdvancedDepthAndLimit(t *testing.T) {
	var got tavilyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method=%s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type=%q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"query":"q","results":[]}`))
	}))
	defer srv.Close()

	tv := &Tavily{APIKey: "tvly-test", BaseURL: srv.URL, HTTPClient: srv.Client()}
	if _, err := tv.Search(context.Background(), "What is the capital of France?"); err != nil {
		t.Fatalf("search error: %v", err)
	}
	if got.APIKey != "tvly-test" {
		t.Fatalf("api_key=%q", got.APIKey)
	}
	if got.Query != "What is the capital of France?" {
		t.Fatalf("query=%q", got.Query)
	}
	if got.SearchDepth != "advanced" {
		t.Fatalf("search_depth=%q, want advanced", got.SearchDepth)
	}
	if got.MaxResults != 5 {
		t.Fatalf("max_results=%d, want 5", got.MaxResults)
	}
}

func TestTavily_Search_PreservesOrderAndRawPayload(t *testing.T) {
	body := `{"results":[
		{"title":"B","url":"https://b.example","content":"second ranked first","score":0.4},
		{"title":"A","url":"https://a.example","content":"first ranked second","score":0.9,"raw_content":null}
	]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	tv := &Tavily{BaseURL: srv.URL, HTTPClient: srv.Client()}
	rs, err := tv.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if rs.Len() != 2 {
		t.Fatalf("len=%d, want 2", rs.Len())
	}
	if rs.Items[0].Title != "B" || rs.Items[1].Title != "A" {
		t.Fatalf("provider order not preserved: %+v", rs.Items)
	}
	if !strings.Contains(rs.Context(), `"raw_content":null`) {
		t.Fatalf("expected raw payload in context, got %s", rs.Context())
	}
}

func TestTavily_Search_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":{"error":"Unauthorized: missing or invalid API key."}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	tv := &Tavily{BaseURL: srv.URL, HTTPClient: srv.Client()}
	_, err := tv.Search(context.Background(), "q")
	if err == nil {
		t.Fatalf("expected error on 401")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Fatalf("error should carry status: %v", err)
	}
}

func TestTavily_Search_MalformedBody(t *testing.T) {
	for name, body := range map[string]string{
		"not json":        `<html>oops</html>`,
		"missing results": `{"answer":"x"}`,
		"wrong shape":     `{"results":{"title":"x"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()
			tv := &Tavily{BaseURL: srv.URL, HTTPClient: srv.Client()}
			if _, err := tv.Search(context.Background(), "q"); err == nil {
				t.Fatalf("expected error for body %s", body)
			}
		})
	}
}

func TestResultSet_Top(t *testing.T) {
	rs := ResultSet{Items: []Result{{Title: "1"}, {Title: "2"}, {Title: "3"}, {Title: "4"}}}
	if got := rs.Top(3); len(got) != 3 || got[2].Title != "3" {
		t.Fatalf("Top(3)=%+v", got)
	}
	if got := rs.Top(10); len(got) != 4 {
		t.Fatalf("Top(10) len=%d, want 4", len(got))
	}
	if got := rs.Top(0); got != nil {
		t.Fatalf("Top(0)=%+v, want nil", got)
	}
}

func TestResultSet_ContextFallsBackToItems(t *testing.T) {
	rs := ResultSet{Items: []Result{{Title: "Paris", URL: "https://p.example", Content: "capital"}}}
	ctx := rs.Context()
	if !strings.Contains(ctx, `"title":"Paris"`) || !strings.Contains(ctx, `"content":"capital"`) {
		t.Fatalf("unexpected context: %s", ctx)
	}
	if got := (ResultSet{}).Context(); got != "[]" {
		t.Fatalf("empty context=%q, want []", got)
	}
}
