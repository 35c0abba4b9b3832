package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goask/internal/app"
	"github.com/hyperifyio/goask/internal/tui"
)

func main() {
	var (
		configPath       string
		envFiles         string
		question         string
		searchProvider   string
		tavilyURL        string
		searchDepth      string
		maxResults       int
		searxURL         string
		searxKey         string
		searxUA          string
		llmBaseURL       string
		llmModel         string
		temperature      float64
		systemPrompt     string
		systemPromptFile string
		httpTimeout      time.Duration
		references       int
		markdown         bool
		logFile          string
		verbose          bool
		showVersion      bool
	)

	flag.StringVar(&configPath, "config", os.Getenv("GOASK_CONFIG"), "Path to YAML or JSON config file")
	flag.StringVar(&envFiles, "env", ".env", "Comma-separated dotenv files to load before reading the environment")
	flag.StringVar(&question, "q", "", "Ask one question, print the answer to stdout and exit")
	flag.StringVar(&searchProvider, "search.provider", "", "Search provider: tavily or searxng")
	flag.StringVar(&tavilyURL, "tavily.url", "", "Tavily search endpoint")
	flag.StringVar(&searchDepth, "search.depth", "", "Search depth requested from Tavily (basic or advanced)")
	flag.IntVar(&maxResults, "search.max", 0, "Maximum search results per query")
	flag.StringVar(&searxURL, "searx.url", "", "SearxNG base URL")
	flag.StringVar(&searxKey, "searx.key", "", "SearxNG API key (optional)")
	flag.StringVar(&searxUA, "searx.ua", "", "Custom User-Agent for SearxNG requests")
	flag.StringVar(&llmBaseURL, "llm.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", "", "Model name")
	flag.Float64Var(&temperature, "llm.temperature", 0, "Sampling temperature")
	flag.StringVar(&systemPrompt, "synth.systemPrompt", "", "Override synthesis system prompt (inline string)")
	flag.StringVar(&systemPromptFile, "synth.systemPromptFile", os.Getenv("SYNTH_SYSTEM_PROMPT_FILE"), "Path to file containing synthesis system prompt")
	flag.DurationVar(&httpTimeout, "http.timeout", 0, "Timeout for each outbound HTTP request")
	flag.IntVar(&references, "ui.references", 0, "Number of source links listed under the answer")
	flag.BoolVar(&markdown, "ui.markdown", false, "Render the answer as Markdown in the terminal UI")
	flag.StringVar(&logFile, "log.file", "", "Write logs to this file while the terminal UI runs")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("goask %s (%s)\n", app.BuildVersion, app.BuildCommit)
		return
	}

	// Secrets may live in an untracked dotenv file next to the binary.
	if err := app.LoadEnvFiles(strings.Split(envFiles, ",")...); err != nil {
		fmt.Fprintf(os.Stderr, "load env files: %v\n", err)
		os.Exit(2)
	}
	// File-based prompts take precedence over inline strings
	if strings.TrimSpace(systemPromptFile) != "" {
		b, err := os.ReadFile(systemPromptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read system prompt: %v\n", err)
			os.Exit(2)
		}
		systemPrompt = string(b)
	}

	cfg := app.Config{
		SearchProvider: searchProvider,
		TavilyURL:      tavilyURL,
		SearchDepth:    searchDepth,
		MaxResults:     maxResults,
		SearxURL:       searxURL,
		SearxKey:       searxKey,
		SearxUA:        searxUA,
		LLMBaseURL:     llmBaseURL,
		LLMModel:       llmModel,
		Temperature:    setFloat(flag.CommandLine, "llm.temperature", temperature),
		SystemPrompt:   systemPrompt,
		HTTPTimeout:    httpTimeout,
		References:     references,
		Markdown:       markdown,
		Question:       question,
		LogFile:        logFile,
		Verbose:        verbose,
	}
	// Precedence: flags > environment > config file > defaults.
	app.ApplyEnvToConfig(&cfg)
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyDefaults(&cfg)

	closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
		os.Exit(2)
	}
	defer closeLog()

	a, err := app.New(cfg)
	if err != nil {
		log.Error().Err(err).Msg("init app")
		closeLog()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if strings.TrimSpace(cfg.Question) != "" {
		if err := a.AskOnce(ctx, cfg.Question, os.Stdout); err != nil {
			log.Debug().Err(err).Msg("question failed")
			stop()
			closeLog()
			os.Exit(1)
		}
		return
	}

	m := tui.New(ctx, a.Controller(), a.NewDocument(), tui.Options{
		Markdown: cfg.Markdown,
		Version:  app.BuildVersion,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("terminal UI failed")
		fmt.Fprintf(os.Stderr, "goask: %v\n", err)
		stop()
		closeLog()
		os.Exit(1)
	}
}

// setFloat returns v only when the named flag was given on the command line,
// so an explicit 0 is kept apart from "not set".
func setFloat(fs *flag.FlagSet, name string, v float64) *float64 {
	var out *float64
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			out = &v
		}
	})
	return out
}

// setupLogging routes zerolog to stderr in headless mode. The terminal UI
// owns stderr, so there logs go to cfg.LogFile or nowhere.
func setupLogging(cfg app.Config) (func(), error) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	var out io.Writer = os.Stderr
	closer := func() {}
	if strings.TrimSpace(cfg.Question) == "" {
		if cfg.LogFile == "" {
			log.Logger = zerolog.Nop()
			return closer, nil
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return closer, err
		}
		out = f
		closer = func() { _ = f.Close() }
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true})
		return closer, nil
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	return closer, nil
}
