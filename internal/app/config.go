package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	Credentials Credentials

	// Search
	SearchProvider string // "tavily" or "searxng"
	TavilyURL      string
	SearchDepth    string
	MaxResults     int
	SearxURL       string
	SearxKey       string
	SearxUA        string

	// LLM
	LLMBaseURL   string
	LLMModel     string
	Temperature  *float64 // nil selects the synthesizer default
	SystemPrompt string

	// Transport
	HTTPTimeout time.Duration

	// Display
	References int
	Markdown   bool

	// Behavior
	Question string // non-empty runs one headless interaction
	LogFile  string
	Verbose  bool
}
