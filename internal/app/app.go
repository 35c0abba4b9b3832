package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goask/internal/interact"
	"github.com/hyperifyio/goask/internal/llm"
	"github.com/hyperifyio/goask/internal/render"
	"github.com/hyperifyio/goask/internal/search"
	"github.com/hyperifyio/goask/internal/synth"
)

// App wires the search provider and synthesizer into an interaction
// controller.
type App struct {
	cfg        Config
	httpClient *http.Client
	provider   search.Provider
	controller *interact.Controller
}

// New builds the application from an already merged configuration.
func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	hc := newHTTPClient(cfg.HTTPTimeout)
	provider, err := NewSearchProvider(cfg, hc)
	if err != nil {
		return nil, err
	}
	s := &synth.Synthesizer{
		Client:       llm.NewOpenAIProvider(cfg.Credentials.LLMAPIKey, cfg.LLMBaseURL, hc),
		Model:        cfg.LLMModel,
		SystemPrompt: cfg.SystemPrompt,
	}
	if cfg.Temperature != nil {
		t := float32(*cfg.Temperature)
		s.Temperature = &t
	}
	log.Debug().
		Str("search", provider.Name()).
		Str("llmBase", cfg.LLMBaseURL).
		Str("model", cfg.LLMModel).
		Object("credentials", cfg.Credentials).
		Msg("app configured")
	return &App{
		cfg:        cfg,
		httpClient: hc,
		provider:   provider,
		controller: &interact.Controller{Search: provider, Synth: s},
	}, nil
}

// NewSearchProvider returns the provider selected by cfg.SearchProvider.
func NewSearchProvider(cfg Config, hc *http.Client) (search.Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.SearchProvider)) {
	case "", providerTavily:
		return &search.Tavily{
			APIKey:     cfg.Credentials.SearchAPIKey,
			BaseURL:    cfg.TavilyURL,
			Depth:      cfg.SearchDepth,
			MaxResults: cfg.MaxResults,
			HTTPClient: hc,
		}, nil
	case providerSearxNG:
		return &search.SearxNG{
			BaseURL:    cfg.SearxURL,
			APIKey:     cfg.SearxKey,
			MaxResults: cfg.MaxResults,
			HTTPClient: hc,
			UserAgent:  cfg.SearxUA,
		}, nil
	}
	return nil, fmt.Errorf("unknown search provider %q", cfg.SearchProvider)
}

func (a *App) Config() Config { return a.cfg }

func (a *App) Controller() *interact.Controller { return a.controller }

func (a *App) Provider() search.Provider { return a.provider }

// NewDocument returns an output document sized to the configured reference
// count.
func (a *App) NewDocument() *render.Document {
	return &render.Document{References: a.cfg.References}
}

// AskOnce runs a single interaction and writes the resulting document to w.
// The document is written on failure too, ending with the error line.
func (a *App) AskOnce(ctx context.Context, question string, w io.Writer) error {
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("empty question")
	}
	d := &printDisplay{Document: a.NewDocument()}
	err := a.controller.Run(ctx, d, question)
	out := d.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if _, werr := io.WriteString(w, out); werr != nil && err == nil {
		err = werr
	}
	return err
}

// printDisplay is the headless display. There is no input to toggle.
type printDisplay struct {
	*render.Document
}

func (printDisplay) SetInputEnabled(bool) {}
