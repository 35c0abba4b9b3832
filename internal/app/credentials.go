package app

import (
	"os"

	"github.com/rs/zerolog"
)

// Credentials are the two API secrets. They are read once at startup and
// handed to the clients that need them.
type Credentials struct {
	SearchAPIKey string
	LLMAPIKey    string
}

// CredentialsFromEnv reads both secrets from the process environment. Missing
// keys are left empty; the providers reject the request when it is made.
func CredentialsFromEnv() Credentials {
	return Credentials{
		SearchAPIKey: firstEnv("TAVILY_API_KEY", "SEARCH_API_KEY"),
		LLMAPIKey:    firstEnv("DeepSeek_API_KEY", "DEEPSEEK_API_KEY", "LLM_API_KEY"),
	}
}

func (c Credentials) String() string {
	return "Credentials{search:" + redact(c.SearchAPIKey) + " llm:" + redact(c.LLMAPIKey) + "}"
}

// MarshalZerologObject logs only whether each key is present.
func (c Credentials) MarshalZerologObject(e *zerolog.Event) {
	e.Bool("searchKey", c.SearchAPIKey != "").Bool("llmKey", c.LLMAPIKey != "")
}

func redact(s string) string {
	if s == "" {
		return "unset"
	}
	return "set"
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
