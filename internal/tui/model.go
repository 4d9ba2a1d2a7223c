// Package tui is the interactive terminal dashboard for agents.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/internal/dashboard"
	"github.com/JaimeStill/octo/internal/session"
	"github.com/JaimeStill/octo/pkg/pagination"
)

const (
	namePlaceholder         = "Math Tutor, Code Assistant, or your agent's creative name!"
	instructionsPlaceholder = "Describe what your agent should do. For example: 'Help me solve math problems in a fun way!'"
	signInMessage           = "Your session has expired. Sign in on the web dashboard and run octo agents again."
)

type screen int

const (
	screenAgents screen = iota
	screenCreate
	screenPrices
)

const (
	fieldName = iota
	fieldInstructions
)

// Config wires the dashboard to its data source.
type Config struct {
	Fetcher  dashboard.Fetcher
	Creator  dashboard.Creator
	Owner    uuid.UUID
	Plan     session.Plan
	PageSize int

	// Location is the initial filter query, e.g. "search=math&page=2".
	Location string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
}

type fetchedMsg struct {
	outcome dashboard.Outcome
}

type submittedMsg struct {
	result   dashboard.Result
	err      error
	notices  []dashboard.Notice
	redirect *redirect
}

type redirectMsg struct {
	path string
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	cfg  Config
	list *dashboard.ListController
	flow *dashboard.CreateFlow
	fx   *effects

	screen       screen
	search       textinput.Model
	name         textinput.Model
	instructions textarea.Model
	focus        int
	fields       map[string]string
	submitting   bool
	notice       *dashboard.Notice
	exitMessage  string

	width  int
	height int
}

// New builds the model. The binding starts from cfg.Location; search changes keep the page.
func New(cfg Config) Model {
	binding := pagination.NewBinding(cfg.Location, nil, pagination.UpdateOptions{})
	list := dashboard.NewListController(binding, cfg.Fetcher, cfg.Owner, dashboard.WithPageSize(cfg.PageSize))
	fx := &effects{}
	flow := dashboard.NewCreateFlow(cfg.Creator,
		dashboard.WithInvalidators(list),
		dashboard.WithNavigator(fx),
		dashboard.WithNotifier(fx),
		dashboard.WithPaths(pathPrices, pathSignIn),
	)

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "Search agents..."
	search.SetValue(binding.State().Search)

	name := textinput.New()
	name.Placeholder = namePlaceholder
	name.CharLimit = agents.MaxNameLength

	instructions := textarea.New()
	instructions.Placeholder = instructionsPlaceholder
	instructions.CharLimit = agents.MaxInstructionsLength
	instructions.SetHeight(5)

	return Model{
		cfg:          cfg,
		list:         list,
		flow:         flow,
		fx:           fx,
		search:       search,
		name:         name,
		instructions: instructions,
	}
}

// ExitMessage is printed after the program ends, if set.
func (m Model) ExitMessage() string {
	return m.exitMessage
}

func (m Model) Init() tea.Cmd {
	return m.fetch(m.list.Request())
}

func (m Model) requestContext() (context.Context, context.CancelFunc) {
	if m.cfg.Timeout > 0 {
		return context.WithTimeout(context.Background(), m.cfg.Timeout)
	}
	return context.WithCancel(context.Background())
}

func (m Model) fetch(t dashboard.Ticket) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return fetchedMsg{outcome: m.list.Load(ctx, t)}
	}
}

func (m Model) submit(in dashboard.CreateInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		res, err := m.flow.Submit(ctx, in)
		notices, r := m.fx.drain()
		return submittedMsg{result: res, err: err, notices: notices, redirect: r}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.instructions.SetWidth(max(msg.Width-4, 20))
		return m, nil

	case fetchedMsg:
		m.list.Commit(msg.outcome)
		return m, nil

	case submittedMsg:
		return m.submitted(msg)

	case redirectMsg:
		switch msg.path {
		case pathPrices:
			m.screen = screenPrices
			return m, nil
		case pathSignIn:
			m.exitMessage = signInMessage
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenCreate:
			return m.updateCreate(msg)
		case screenPrices:
			return m.updatePrices(msg)
		default:
			return m.updateAgents(msg)
		}
	}

	return m, nil
}

func (m Model) updateAgents(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.Focused() {
		switch msg.String() {
		case "enter", "esc":
			m.search.Blur()
			return m, nil
		}

		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() == before {
			return m, cmd
		}
		t := m.list.Update(dashboard.SearchIntent(m.search.Value()))
		return m, tea.Batch(cmd, m.fetch(t))
	}

	view := m.list.View()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		return m, m.search.Focus()
	case "left", "h":
		if view.Loading || view.Err != nil || view.List.Pager.PrevDisabled {
			return m, nil
		}
		p := view.List.Pager
		return m, m.fetch(m.list.Update(dashboard.PageIntent(p.PrevPage, p.TotalPages)))
	case "right", "l":
		if view.Loading || view.Err != nil || view.List.Pager.NextDisabled {
			return m, nil
		}
		p := view.List.Pager
		return m, m.fetch(m.list.Update(dashboard.PageIntent(p.NextPage, p.TotalPages)))
	case "r":
		m.list.Invalidate(m.cfg.Owner, uuid.Nil)
		return m, m.fetch(m.list.Request())
	case "n":
		return m.openCreate()
	case "p":
		m.screen = screenPrices
		return m, nil
	}
	return m, nil
}

func (m Model) openCreate() (tea.Model, tea.Cmd) {
	m.screen = screenCreate
	m.notice = nil
	m.fields = nil
	m.focus = fieldName
	m.instructions.Blur()
	return m, m.name.Focus()
}

func (m Model) closeCreate() Model {
	m.screen = screenAgents
	m.fields = nil
	m.name.Reset()
	m.name.Blur()
	m.instructions.Reset()
	m.instructions.Blur()
	return m
}

func (m Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.submitting {
			return m, nil
		}
		return m.closeCreate(), nil
	case "tab", "shift+tab":
		return m.toggleFocus()
	case "ctrl+s":
		return m.trySubmit()
	case "enter":
		if m.focus == fieldName {
			return m.trySubmit()
		}
	}

	var cmd tea.Cmd
	if m.focus == fieldName {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.instructions, cmd = m.instructions.Update(msg)
	}
	return m, cmd
}

func (m Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == fieldName {
		m.focus = fieldInstructions
		m.name.Blur()
		return m, m.instructions.Focus()
	}
	m.focus = fieldName
	m.instructions.Blur()
	return m, m.name.Focus()
}

func (m Model) trySubmit() (tea.Model, tea.Cmd) {
	if m.submitting || m.flow.Pending() {
		return m, nil
	}

	in := dashboard.CreateInput{Name: m.name.Value(), Instructions: m.instructions.Value()}
	if fields := dashboard.ValidateInput(in); fields != nil {
		m.fields = fields
		return m, nil
	}

	m.fields = nil
	m.notice = nil
	m.submitting = true
	return m, m.submit(in)
}

func (m Model) submitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	if n := len(msg.notices); n > 0 {
		m.notice = &msg.notices[n-1]
	}

	var cmds []tea.Cmd
	if msg.redirect != nil {
		path := msg.redirect.path
		cmds = append(cmds, tea.Tick(msg.redirect.delay, func(time.Time) tea.Msg {
			return redirectMsg{path: path}
		}))
	}

	switch {
	case msg.result.Closed:
		m = m.closeCreate()
		cmds = append(cmds, m.fetch(m.list.Request()))
	case errors.Is(msg.err, agents.ErrValidation):
		m.fields = msg.result.Fields
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updatePrices(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "b", "backspace":
		m.screen = screenAgents
	}
	return m, nil
}
