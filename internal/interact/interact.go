package interact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goask/internal/search"
)

// Placeholder is shown while an interaction is in flight.
const Placeholder = "Searching... Please wait...\n"

// State is the controller's position in its two-state machine.
type State int

const (
	Idle State = iota
	Busy
)

func (s State) String() string {
	if s == Busy {
		return "busy"
	}
	return "idle"
}

// Searcher retrieves web results for a query.
type Searcher interface {
	Search(ctx context.Context, query string) (search.ResultSet, error)
}

// Synthesizer turns a question and its results into an answer.
type Synthesizer interface {
	Synthesize(ctx context.Context, question string, results search.ResultSet) (string, error)
}

// Display is the surface an interaction writes to.
type Display interface {
	SetInputEnabled(enabled bool)
	Clear()
	Write(s string)
	Render(question string, results search.ResultSet, answer string)
	RenderError(err error)
}

// Outcome is the result of one successful interaction.
type Outcome struct {
	Question string
	Results  search.ResultSet
	Answer   string
}

// Controller runs one query at a time through search and synthesis.
// Begin and Finish must be called from the goroutine that owns the Display.
type Controller struct {
	Search Searcher
	Synth  Synthesizer

	state   State
	started time.Time
}

func (c *Controller) State() State { return c.state }

// Begin moves Idle to Busy. Blank queries and calls made while Busy are
// ignored and leave the display untouched.
func (c *Controller) Begin(d Display, query string) bool {
	if strings.TrimSpace(query) == "" || c.state == Busy {
		return false
	}
	c.state = Busy
	c.started = time.Now()
	d.SetInputEnabled(false)
	d.Clear()
	d.Write(Placeholder)
	log.Debug().Int("queryLen", len(query)).Msg("interaction started")
	return true
}

// Ask searches and then synthesizes. It touches no display state and may run
// off the UI goroutine. The synthesizer is skipped when search fails.
func (c *Controller) Ask(ctx context.Context, query string) (Outcome, error) {
	if c.Search == nil || c.Synth == nil {
		return Outcome{}, fmt.Errorf("controller not configured")
	}
	t0 := time.Now()
	results, err := c.Search.Search(ctx, query)
	if err != nil {
		return Outcome{}, fmt.Errorf("web search: %w", err)
	}
	log.Debug().Int("results", results.Len()).Dur("took", time.Since(t0)).Msg("search complete")

	t1 := time.Now()
	answer, err := c.Synth.Synthesize(ctx, query, results)
	if err != nil {
		return Outcome{}, fmt.Errorf("answer synthesis: %w", err)
	}
	log.Debug().Int("answerLen", len(answer)).Dur("took", time.Since(t1)).Msg("synthesis complete")
	return Outcome{Question: query, Results: results, Answer: answer}, nil
}

// Finish renders the outcome or the error, then re-enables input and returns
// to Idle.
func (c *Controller) Finish(d Display, out Outcome, err error) {
	defer func() {
		d.SetInputEnabled(true)
		c.state = Idle
	}()
	if err != nil {
		log.Warn().Err(err).Dur("took", time.Since(c.started)).Msg("interaction failed")
		d.RenderError(err)
		return
	}
	log.Info().Int("results", out.Results.Len()).Dur("took", time.Since(c.started)).Msg("interaction complete")
	d.Render(out.Question, out.Results, out.Answer)
}

// Run performs a whole interaction on the calling goroutine. Input is
// re-enabled even if a collaborator panics.
func (c *Controller) Run(ctx context.Context, d Display, query string) (err error) {
	if !c.Begin(d, query) {
		return nil
	}
	finished := false
	defer func() {
		if !finished {
			d.SetInputEnabled(true)
			c.state = Idle
		}
	}()
	out, err := c.Ask(ctx, query)
	c.Finish(d, out, err)
	finished = true
	return err
}
