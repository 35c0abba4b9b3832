package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestOpenAIProvider_SendsBearerTokenToChatEndpoint(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "hi"}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL+"/v1", srv.Client())
	resp, err := p.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model:    "deepseek-chat",
		Messages: []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("chat error: %v", err)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("Authorization=%q", gotAuth)
	}
	if gotPath != "/v1/chat/completions" {
		t.Fatalf("path=%q", gotPath)
	}
	if gotReq["model"] != "deepseek-chat" {
		t.Fatalf("model=%v", gotReq["model"])
	}
	if len(resp.Choices) != 1 || resp.Choices[0].Message.Content != "hi" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestOpenAIProvider_NonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Authentication Fails","type":"authentication_error"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("", srv.URL, srv.Client())
	if _, err := p.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{Model: "m"}); err == nil {
		t.Fatalf("expected error on 401")
	}
}

func TestNewOpenAIProvider_DefaultsToDeepSeek(t *testing.T) {
	p := NewOpenAIProvider("k", "", nil)
	if p.Inner == nil {
		t.Fatalf("expected inner client")
	}
}
