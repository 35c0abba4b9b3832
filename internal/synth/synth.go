package synth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/goask/internal/llm"
	"github.com/hyperifyio/goask/internal/search"
)

const (
	// DefaultModel is DeepSeek's general chat model.
	DefaultModel = "deepseek-chat"
	// DefaultTemperature is the sampling temperature sent with every request.
	DefaultTemperature float32 = 0.7
	// DefaultSystemPrompt instructs the model to stay within the search context.
	DefaultSystemPrompt = "You are a helpful assistant that answers questions based on web search results. " +
		"Use the provided context to form your answer. Be comprehensive but concise."
)

// ErrNoChoices indicates the model response carried no completion.
var ErrNoChoices = errors.New("no choices in model response")

// Synthesizer asks a chat model to answer a question from search results.
type Synthesizer struct {
	Client llm.Client
	Model  string
	// Temperature defaults to DefaultTemperature when nil. An explicit zero
	// is honored.
	Temperature *float32
	// SystemPrompt, when non-empty, overrides DefaultSystemPrompt.
	SystemPrompt string
}

// Synthesize issues exactly one chat-completion request and returns the
// first choice's content. Errors are not retried.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, results search.ResultSet) (string, error) {
	if s.Client == nil {
		return "", errors.New("synthesizer not configured")
	}
	model := s.Model
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	temp := DefaultTemperature
	if s.Temperature != nil {
		temp = *s.Temperature
	}
	// go-openai omits a zero temperature from the request body, which would
	// leave the server default in place.
	if temp == 0 {
		temp = math.SmallestNonzeroFloat32
	}
	system := DefaultSystemPrompt
	if strings.TrimSpace(s.SystemPrompt) != "" {
		system = s.SystemPrompt
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: BuildUserMessage(question, results)},
		},
		Temperature: temp,
	}
	resp, err := s.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// BuildUserMessage embeds the search results and the question verbatim.
// The results are not reformatted; the provider payload goes in as-is.
func BuildUserMessage(question string, results search.ResultSet) string {
	var sb strings.Builder
	sb.WriteString("Web search results:\n")
	sb.WriteString(results.Context())
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString("\nAnswer:")
	return sb.String()
}
