package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

type searchRequest struct {
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

// apistub serves a Tavily-shaped /search and an OpenAI-compatible
// /v1/chat/completions so goask can be exercised without network access:
//
//	goask -tavily.url http://localhost:8081/search -llm.base http://localhost:8081/v1
func main() {
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}
	log.Printf("apistub listening on %s", addr)
	if err := http.ListenAndServe(addr, newMux()); err != nil {
		log.Fatal(err)
	}
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		results := []map[string]any{
			{"title": req.Query + " - Wikipedia", "url": "https://en.wikipedia.org/wiki/Special:Search", "content": "Encyclopedia entry for " + req.Query + ".", "score": 0.91},
			{"title": req.Query + " explained", "url": "https://example.com/explained", "content": "A longer explanation of " + req.Query + ".", "score": 0.77},
			{"title": req.Query + " FAQ", "url": "https://example.com/faq", "content": "Frequently asked questions.", "score": 0.52},
			{"title": req.Query + " forum", "url": "https://example.com/forum", "content": "Community discussion.", "score": 0.31},
		}
		if req.MaxResults > 0 && len(results) > req.MaxResults {
			results = results[:req.MaxResults]
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"query":   req.Query,
			"results": results,
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			http.Error(w, `{"error":{"message":"missing bearer token"}}`, http.StatusUnauthorized)
			return
		}
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		question := ""
		if n := len(req.Messages); n > 0 {
			user := req.Messages[n-1].Content
			if i := strings.LastIndex(user, "Question: "); i >= 0 {
				question = strings.TrimSuffix(strings.TrimSpace(user[i+len("Question: "):]), "Answer:")
				question = strings.TrimSpace(question)
			}
		}
		if question == "" {
			http.Error(w, "unexpected prompt", http.StatusBadRequest)
			return
		}
		content := "Stub answer to \"" + question + "\" based on the provided search results."
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model": req.Model,
			"choices": []map[string]any{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": content}, "finish_reason": "stop"},
			},
		})
	})
	return mux
}
