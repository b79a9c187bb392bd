// Package dash renders the interactive environment dashboard.
package dash

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/powerdesk/powerdesk/internal/config"
	"github.com/powerdesk/powerdesk/internal/directory"
	"github.com/powerdesk/powerdesk/internal/tasks"
)

// Task kinds scheduled by the dashboard. One of each may run at a time.
const (
	kindRefresh = "env.refresh"
	kindSelect  = "env.select"
)

var errRefreshFailed = errors.New("environment refresh failed")

type outcomeMsg tasks.Outcome

type keyMap struct {
	Refresh key.Binding
	Select  key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
)

// Model is the bubbletea model behind ppd dash.
type Model struct {
	ctx    context.Context
	dir    *directory.Directory
	runner *tasks.Runner

	table   table.Model
	spinner spinner.Model
	keys    keyMap

	// catalog mirrors the table rows so a cursor index maps back to the
	// environment it came from.
	catalog []directory.Environment
	status  string
	failed  bool
	busy    bool
}

// New builds the dashboard model. Geometry comes from the ui settings; the
// model resizes itself when the terminal reports its real size.
func New(ctx context.Context, dir *directory.Directory, runner *tasks.Runner, ui config.UIConfig) Model {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Display Name", Width: 28},
		{Title: "Type", Width: 12},
		{Title: "Region", Width: 14},
		{Title: "State", Width: 10},
	}

	height := ui.Height - 6
	if height < 4 {
		height = 4
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12"))
	tbl.SetStyles(styles)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		dir:     dir,
		runner:  runner,
		table:   tbl,
		spinner: sp,
		keys:    defaultKeyMap(),
		status:  "loading environments",
		busy:    true,
	}
}

// Init starts the first refresh and the outcome listener.
func (m Model) Init() tea.Cmd {
	m.scheduleRefresh()
	return tea.Batch(m.spinner.Tick, m.waitForOutcome())
}

// scheduleRefresh kicks the catalog refresh onto the task runner. A refresh
// already in flight is left alone.
func (m Model) scheduleRefresh() {
	_ = m.runner.Go(kindRefresh, func() (any, error) {
		if !m.dir.Refresh(m.ctx) {
			return nil, errRefreshFailed
		}
		return m.dir.Environments(), nil
	})
}

func (m Model) scheduleSelect(env directory.Environment) error {
	return m.runner.Go(kindSelect, func() (any, error) {
		if !m.dir.Select(m.ctx, env) {
			return nil, fmt.Errorf("failed to select %s", env.DisplayName)
		}
		return env, nil
	})
}

// waitForOutcome blocks on the runner's outcome channel and surfaces the
// next terminal notification as a tea message.
func (m Model) waitForOutcome() tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(<-m.runner.Outcomes())
	}
}

// Update drives the dashboard state machine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if m.runner.InFlight(kindRefresh) {
				m.status = "refresh already running"
				return m, nil
			}
			m.scheduleRefresh()
			m.status = "refreshing environments"
			m.failed = false
			m.busy = true
			return m, m.spinner.Tick
		case key.Matches(msg, m.keys.Select):
			env, ok := m.selectedEnvironment()
			if !ok {
				return m, nil
			}
			if err := m.scheduleSelect(env); err != nil {
				m.status = fmt.Sprintf("selection of %s already running", env.DisplayName)
				return m, nil
			}
			m.status = fmt.Sprintf("selecting %s", env.DisplayName)
			m.failed = false
			m.busy = true
			return m, m.spinner.Tick
		}

	case outcomeMsg:
		m.applyOutcome(tasks.Outcome(msg))
		m.busy = m.runner.InFlight(kindRefresh) || m.runner.InFlight(kindSelect)
		return m, m.waitForOutcome()

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width - 2)
		m.table.SetHeight(msg.Height - 6)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) applyOutcome(outcome tasks.Outcome) {
	switch outcome.Kind {
	case kindRefresh:
		if outcome.Err != nil {
			m.status = fmt.Sprintf("refresh failed: %v", outcome.Err)
			m.failed = true
			return
		}
		envs, _ := outcome.Result.([]directory.Environment)
		m.setCatalog(envs)
		m.status = fmt.Sprintf("%d environments", len(envs))
		m.failed = false
	case kindSelect:
		if outcome.Err != nil {
			m.status = outcome.Err.Error()
			m.failed = true
			return
		}
		env, _ := outcome.Result.(directory.Environment)
		m.status = fmt.Sprintf("selected %s", env.DisplayName)
		m.failed = false
	}
}

func (m *Model) setCatalog(envs []directory.Environment) {
	m.catalog = envs
	rows := make([]table.Row, 0, len(envs))
	for _, env := range envs {
		rows = append(rows, table.Row{env.Name, env.DisplayName, env.Type, env.Region, env.State})
	}
	m.table.SetRows(rows)
}

func (m Model) selectedEnvironment() (directory.Environment, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.catalog) {
		return directory.Environment{}, false
	}
	return m.catalog[cursor], true
}

// View renders the dashboard.
func (m Model) View() string {
	title := titleStyle.Render("Power Platform environments")
	if current, ok := m.dir.Current(); ok {
		title += statusStyle.Render("• " + current.DisplayName)
	}

	status := m.status
	style := statusStyle
	if m.failed {
		style = errorStyle
	}
	if m.busy {
		status = m.spinner.View() + " " + status
	}

	help := helpStyle.Render("r refresh • enter select • q quit")
	return title + "\n" + m.table.View() + "\n" + style.Render(status) + "\n" + help + "\n"
}

// Run drives the dashboard until the user quits or ctx is canceled.
func Run(ctx context.Context, dir *directory.Directory, runner *tasks.Runner, ui config.UIConfig) error {
	program := tea.NewProgram(New(ctx, dir, runner, ui), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
