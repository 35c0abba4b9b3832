package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeAPIs serves a Tavily-shaped /search and an OpenAI-compatible
// /v1/chat/completions from one server.
func fakeAPIs(t *testing.T, chatStatus int) (*httptest.Server, *int) {
	t.Helper()
	chatCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["api_key"] != "tvly-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"title":"Paris - Wikipedia","url":"https://en.wikipedia.org/wiki/Paris","content":"Paris is the capital of France."}]}`))
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		chatCalls++
		if r.Header.Get("Authorization") != "Bearer sk-key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"Authentication Fails"}}`))
			return
		}
		if chatStatus != http.StatusOK {
			w.WriteHeader(chatStatus)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream failure"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "The capital of France is Paris."}},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &chatCalls
}

func testConfig(base string) Config {
	cfg := Config{
		Credentials: Credentials{SearchAPIKey: "tvly-key", LLMAPIKey: "sk-key"},
		TavilyURL:   base + "/search",
		LLMBaseURL:  base + "/v1",
	}
	ApplyDefaults(&cfg)
	return cfg
}

func TestAskOnce_CapitalOfFrance(t *testing.T) {
	srv, _ := fakeAPIs(t, http.StatusOK)
	a, err := New(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	var buf bytes.Buffer
	if err := a.AskOnce(context.Background(), "What is the capital of France?", &buf); err != nil {
		t.Fatalf("ask: %v", err)
	}
	want := "Question: What is the capital of France?\n\n" +
		"AI Answer:\nThe capital of France is Paris.\n\n" +
		"Web References:\n1. Paris - Wikipedia\n   URL: https://en.wikipedia.org/wiki/Paris\n\n"
	if buf.String() != want {
		t.Fatalf("output mismatch:\n got: %q\nwant: %q", buf.String(), want)
	}
}

func TestAskOnce_MissingSearchKeyFailsAtRequestTime(t *testing.T) {
	srv, chatCalls := fakeAPIs(t, http.StatusOK)
	cfg := testConfig(srv.URL)
	cfg.Credentials.SearchAPIKey = ""
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("construction must not validate keys: %v", err)
	}
	var buf bytes.Buffer
	if err := a.AskOnce(context.Background(), "q", &buf); err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(buf.String(), "Error: web search: tavily status: 401") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if *chatCalls != 0 {
		t.Fatalf("chat endpoint called %d times after search failure", *chatCalls)
	}
}

func TestAskOnce_SynthesisFailureShowsError(t *testing.T) {
	srv, chatCalls := fakeAPIs(t, http.StatusBadGateway)
	a, err := New(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	var buf bytes.Buffer
	if err := a.AskOnce(context.Background(), "q", &buf); err == nil {
		t.Fatalf("expected error")
	}
	out := buf.String()
	if strings.Contains(out, "AI Answer:") || !strings.Contains(out, "Error: answer synthesis:") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if *chatCalls != 1 {
		t.Fatalf("chat calls=%d, want 1 (no retry)", *chatCalls)
	}
}

func TestAskOnce_EmptyQuestion(t *testing.T) {
	a, err := New(testConfig("http://127.0.0.1:0"))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if err := a.AskOnce(context.Background(), "  ", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for empty question")
	}
}

func TestNewSearchProvider_Selection(t *testing.T) {
	cfg := testConfig("http://x")
	p, err := NewSearchProvider(cfg, nil)
	if err != nil || p.Name() != "tavily" {
		t.Fatalf("default provider=%v err=%v", p, err)
	}
	cfg.SearchProvider = "searxng"
	cfg.SearxURL = "http://searx"
	p, err = NewSearchProvider(cfg, nil)
	if err != nil || p.Name() != "searxng" {
		t.Fatalf("searxng provider=%v err=%v", p, err)
	}
	cfg.SearchProvider = "bing"
	if _, err := NewSearchProvider(cfg, nil); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
