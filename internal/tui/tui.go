package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goask/internal/interact"
	"github.com/hyperifyio/goask/internal/render"
	"github.com/hyperifyio/goask/internal/search"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusButton
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// chromeHeight covers title, label, input row, help line and the
	// output border.
	chromeHeight = 8
)

// answerMsg carries the outcome of a background interaction back to the UI
// loop.
type answerMsg struct {
	out interact.Outcome
	err error
}

// Options configure the terminal UI.
type Options struct {
	// Markdown renders the output document with glamour.
	Markdown bool
	// Version is shown in the title bar.
	Version string
}

// Model is the bubbletea model for the question window. It implements
// interact.Display; all display methods run on the bubbletea loop.
type Model struct {
	ctx  context.Context
	ctrl *interact.Controller
	doc  *render.Document
	opts Options

	input        textinput.Model
	viewport     viewport.Model
	focus        focusArea
	inputEnabled bool
	width        int
	height       int
	quitting     bool

	renderer      *glamour.TermRenderer
	rendererWidth int
}

// New creates the question window.
func New(ctx context.Context, ctrl *interact.Controller, doc *render.Document, opts Options) *Model {
	if doc == nil {
		doc = &render.Document{}
	}
	ti := textinput.New()
	ti.Placeholder = "Enter your question"
	ti.Prompt = "> "
	ti.CharLimit = 2000
	ti.Width = defaultWidth - 16
	ti.Focus()

	m := &Model{
		ctx:          ctx,
		ctrl:         ctrl,
		doc:          doc,
		opts:         opts,
		input:        ti,
		viewport:     viewport.New(defaultWidth-2, defaultHeight-chromeHeight),
		inputEnabled: true,
		width:        defaultWidth,
		height:       defaultHeight,
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case answerMsg:
		m.ctrl.Finish(m, msg.out, msg.err)
		if m.focus == focusInput {
			return m, textinput.Blink
		}
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		if !m.inputEnabled {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil
		case "enter":
			return m, m.submit()
		case "pgup", "pgdown", "up", "down", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		if m.focus == focusInput {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	title := "goask"
	if m.opts.Version != "" {
		title += " " + m.opts.Version
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Enter your question:"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), "  ", m.buttonView()))
	b.WriteString("\n")
	b.WriteString(outputStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	if m.ctrl.State() == interact.Busy {
		b.WriteString(busyStyle.Render("Working… input is disabled until the answer arrives"))
	} else {
		b.WriteString(helpStyle.Render("Enter: Search • Tab: Focus • PgUp/PgDn: Scroll • Esc: Quit"))
	}
	return b.String()
}

// Output returns the plain text currently in the output area.
func (m *Model) Output() string { return m.doc.String() }

// InputEnabled reports whether the question field and button accept input.
func (m *Model) InputEnabled() bool { return m.inputEnabled }

// Query returns the text in the question field.
func (m *Model) Query() string { return m.input.Value() }

func (m *Model) SetInputEnabled(enabled bool) {
	m.inputEnabled = enabled
	if !enabled {
		m.input.Blur()
		return
	}
	if m.focus == focusInput {
		m.input.Focus()
	}
}

func (m *Model) Clear() {
	m.doc.Clear()
	m.refresh()
}

func (m *Model) Write(s string) {
	m.doc.Write(s)
	m.refresh()
}

func (m *Model) Render(question string, results search.ResultSet, answer string) {
	m.doc.Render(question, results, answer)
	m.refresh()
	m.viewport.GotoTop()
}

func (m *Model) RenderError(err error) {
	m.doc.RenderError(err)
	m.refresh()
	m.viewport.GotoBottom()
}

// submit starts an interaction. The network calls run in the returned
// command, off the UI loop; only Finish comes back through Update.
func (m *Model) submit() tea.Cmd {
	query := m.input.Value()
	if !m.ctrl.Begin(m, query) {
		return nil
	}
	ctx, ctrl := m.ctx, m.ctrl
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		out, err := ctrl.Ask(ctx, query)
		return answerMsg{out: out, err: err}
	}
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusButton
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) buttonView() string {
	switch {
	case !m.inputEnabled:
		return buttonDisabledStyle.Render("Search")
	case m.focus == focusButton:
		return buttonFocusedStyle.Render("Search")
	default:
		return buttonStyle.Render("Search")
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.input.Width = max(10, width-16)
	m.viewport.Width = max(10, width-2)
	m.viewport.Height = max(3, height-chromeHeight)
	m.refresh()
}

// refresh re-wraps the document into the viewport.
func (m *Model) refresh() {
	content := m.doc.String()
	wrap := max(10, m.viewport.Width-1)
	if m.opts.Markdown && content != "" {
		if r := m.markdownRenderer(wrap); r != nil {
			out, err := r.Render(content)
			if err == nil {
				m.viewport.SetContent(strings.TrimRight(out, "\n"))
				return
			}
			log.Debug().Err(err).Msg("markdown render failed; falling back to plain text")
		}
	}
	m.viewport.SetContent(wordwrap.String(content, wrap))
}

func (m *Model) markdownRenderer(width int) *glamour.TermRenderer {
	if m.renderer != nil && m.rendererWidth == width {
		return m.renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		log.Debug().Err(err).Msg("create markdown renderer")
		return nil
	}
	m.renderer, m.rendererWidth = r, width
	return r
}
