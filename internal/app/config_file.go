package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/goask/internal/llm"
	"github.com/hyperifyio/goask/internal/render"
	"github.com/hyperifyio/goask/internal/search"
	"github.com/hyperifyio/goask/internal/synth"
)

const (
	providerTavily  = "tavily"
	providerSearxNG = "searxng"

	searxUADefault     = "goask/1.0 (+https://github.com/hyperifyio/goask)"
	httpTimeoutDefault = 60 * time.Second
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Search struct {
		Provider   string `yaml:"provider" json:"provider"`
		Depth      string `yaml:"depth" json:"depth"`
		MaxResults int    `yaml:"maxResults" json:"maxResults"`
	} `yaml:"search" json:"search"`

	Tavily struct {
		URL string `yaml:"url" json:"url"`
		Key string `yaml:"key" json:"key"`
	} `yaml:"tavily" json:"tavily"`

	Searx struct {
		URL string `yaml:"url" json:"url"`
		Key string `yaml:"key" json:"key"`
		UA  string `yaml:"ua" json:"ua"`
	} `yaml:"searx" json:"searx"`

	LLM struct {
		BaseURL     string   `yaml:"base" json:"base"`
		Model       string   `yaml:"model" json:"model"`
		APIKey      string   `yaml:"key" json:"key"`
		Temperature *float64 `yaml:"temperature" json:"temperature"`
	} `yaml:"llm" json:"llm"`

	Prompts struct {
		SynthSystemPrompt     string `yaml:"synthSystemPrompt" json:"synthSystemPrompt"`
		SynthSystemPromptFile string `yaml:"synthSystemPromptFile" json:"synthSystemPromptFile"`
	} `yaml:"prompts" json:"prompts"`

	HTTP struct {
		Timeout time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"http" json:"http"`

	UI struct {
		References int  `yaml:"references" json:"references"`
		Markdown   bool `yaml:"markdown" json:"markdown"`
	} `yaml:"ui" json:"ui"`

	Log struct {
		File    string `yaml:"file" json:"file"`
		Verbose bool   `yaml:"verbose" json:"verbose"`
	} `yaml:"log" json:"log"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	if p := strings.TrimSpace(fc.Prompts.SynthSystemPromptFile); p != "" {
		if !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(path), p)
		}
		pb, err := os.ReadFile(p)
		if err != nil {
			return fc, fmt.Errorf("read synth system prompt: %w", err)
		}
		fc.Prompts.SynthSystemPrompt = string(pb)
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are still unset after flags and environment were applied.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.SearchProvider == "" && fc.Search.Provider != "" {
		cfg.SearchProvider = fc.Search.Provider
	}
	if cfg.SearchDepth == "" && fc.Search.Depth != "" {
		cfg.SearchDepth = fc.Search.Depth
	}
	if cfg.MaxResults == 0 && fc.Search.MaxResults > 0 {
		cfg.MaxResults = fc.Search.MaxResults
	}

	if cfg.TavilyURL == "" && fc.Tavily.URL != "" {
		cfg.TavilyURL = fc.Tavily.URL
	}
	if cfg.Credentials.SearchAPIKey == "" && fc.Tavily.Key != "" {
		cfg.Credentials.SearchAPIKey = fc.Tavily.Key
	}

	if cfg.SearxURL == "" && fc.Searx.URL != "" {
		cfg.SearxURL = fc.Searx.URL
	}
	if cfg.SearxKey == "" && fc.Searx.Key != "" {
		cfg.SearxKey = fc.Searx.Key
	}
	if cfg.SearxUA == "" && fc.Searx.UA != "" {
		cfg.SearxUA = fc.Searx.UA
	}

	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.Credentials.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.Credentials.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.Temperature == nil && fc.LLM.Temperature != nil {
		t := *fc.LLM.Temperature
		cfg.Temperature = &t
	}

	if cfg.SystemPrompt == "" && fc.Prompts.SynthSystemPrompt != "" {
		cfg.SystemPrompt = fc.Prompts.SynthSystemPrompt
	}
	if cfg.HTTPTimeout == 0 && fc.HTTP.Timeout > 0 {
		cfg.HTTPTimeout = fc.HTTP.Timeout
	}

	if cfg.References == 0 && fc.UI.References > 0 {
		cfg.References = fc.UI.References
	}
	if !cfg.Markdown && fc.UI.Markdown {
		cfg.Markdown = true
	}

	if cfg.LogFile == "" && fc.Log.File != "" {
		cfg.LogFile = fc.Log.File
	}
	if !cfg.Verbose && fc.Log.Verbose {
		cfg.Verbose = true
	}
}

// ApplyDefaults fills whatever is still unset with built-in defaults.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.SearchProvider == "" {
		cfg.SearchProvider = providerTavily
	}
	if cfg.TavilyURL == "" {
		cfg.TavilyURL = search.DefaultTavilyURL
	}
	if cfg.SearchDepth == "" {
		cfg.SearchDepth = search.DefaultDepth
	}
	if cfg.MaxResults == 0 {
		cfg.MaxResults = search.DefaultMaxResults
	}
	if cfg.SearxUA == "" {
		cfg.SearxUA = searxUADefault
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = llm.DefaultBaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = synth.DefaultModel
	}
	if cfg.Temperature == nil {
		t := float64(synth.DefaultTemperature)
		cfg.Temperature = &t
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = httpTimeoutDefault
	}
	if cfg.References == 0 {
		cfg.References = render.DefaultReferences
	}
}

// ValidateConfig performs minimal schema validation. Missing API keys are
// deliberately not checked here.
func ValidateConfig(cfg Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.SearchProvider)) {
	case providerTavily:
	case providerSearxNG:
		if strings.TrimSpace(cfg.SearxURL) == "" {
			return errors.New("config: searx.url is required for the searxng provider (or set SEARX_URL)")
		}
	default:
		return fmt.Errorf("config: unknown search provider %q", cfg.SearchProvider)
	}
	if strings.TrimSpace(cfg.LLMModel) == "" {
		return errors.New("config: llm.model is required (or set LLM_MODEL)")
	}
	if cfg.MaxResults < 0 || cfg.References < 0 || cfg.HTTPTimeout < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if t := cfg.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("config: temperature %.2f out of range [0,2]", *t)
	}
	return nil
}
