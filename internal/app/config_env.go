package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	env := CredentialsFromEnv()
	if cfg.Credentials.SearchAPIKey == "" {
		cfg.Credentials.SearchAPIKey = env.SearchAPIKey
	}
	if cfg.Credentials.LLMAPIKey == "" {
		cfg.Credentials.LLMAPIKey = env.LLMAPIKey
	}

	setString := func(dst *string, keys ...string) {
		if *dst == "" {
			*dst = firstEnv(keys...)
		}
	}
	setString(&cfg.SearchProvider, "SEARCH_PROVIDER")
	setString(&cfg.TavilyURL, "TAVILY_URL")
	setString(&cfg.SearchDepth, "SEARCH_DEPTH")
	// Support both SEARX_URL and SEARXNG_URL; prefer SEARX_URL if set
	setString(&cfg.SearxURL, "SEARX_URL", "SEARXNG_URL")
	setString(&cfg.SearxKey, "SEARX_KEY", "SEARXNG_KEY")
	setString(&cfg.LLMBaseURL, "LLM_BASE_URL")
	setString(&cfg.LLMModel, "LLM_MODEL")
	setString(&cfg.SystemPrompt, "SYNTH_SYSTEM_PROMPT")
	setString(&cfg.LogFile, "LOG_FILE")

	if cfg.MaxResults == 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("SEARCH_MAX_RESULTS"))); err == nil && n > 0 {
			cfg.MaxResults = n
		}
	}
	if cfg.Temperature == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv("LLM_TEMPERATURE")), 64); err == nil {
			cfg.Temperature = &f
		}
	}
	if cfg.HTTPTimeout == 0 {
		if d, err := time.ParseDuration(os.Getenv("HTTP_TIMEOUT")); err == nil {
			cfg.HTTPTimeout = d
		}
	}

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			if s == "1" || s == "true" || s == "yes" || s == "on" {
				*dst = true
			}
		}
	}
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.Markdown, "MARKDOWN")
}
