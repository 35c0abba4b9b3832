package llm

import (
	"context"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultBaseURL points at DeepSeek's OpenAI-compatible API.
const DefaultBaseURL = "https://api.deepseek.com/v1"

// Client is the minimal interface needed by core logic to call a chat model.
// It mirrors the CreateChatCompletion method of go-openai so that any
// OpenAI-compatible backend can be adapted.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider adapts *openai.Client to the Client interface.
type OpenAIProvider struct {
	Inner *openai.Client
}

// NewOpenAIProvider builds a provider that authenticates with a static bearer
// token. An empty baseURL selects DefaultBaseURL.
func NewOpenAIProvider(apiKey, baseURL string, hc *http.Client) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = DefaultBaseURL
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if hc != nil {
		cfg.HTTPClient = hc
	}
	return &OpenAIProvider{Inner: openai.NewClientWithConfig(cfg)}
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return p.Inner.CreateChatCompletion(ctx, request)
}
