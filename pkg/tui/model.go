// Package tui is the interactive reports view: a bubbletea program over the
// reportlist controller and a report store.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/dkoosis/reportdash/pkg/mapper"
	"github.com/dkoosis/reportdash/pkg/report"
	"github.com/dkoosis/reportdash/pkg/reportlist"
)

// DefaultFeedbackTimeout is how long the success bar stays open.
const DefaultFeedbackTimeout = 4 * time.Second

// Backend is the store the view drives and reads flags from.
type Backend interface {
	reportlist.Store
	Feedback() reportlist.Feedback
}

// Options configures the model.
type Options struct {
	Backend         Backend
	Theme           string
	FeedbackTimeout time.Duration
	Logger          zerolog.Logger
}

type mode int

const (
	modeList mode = iota
	modeSearch
	modeConfirm
	modeDetail
)

// pending is an action waiting for y/n.
type pending struct {
	prompt string
	event  reportlist.Event
}

// Model is the bubbletea model for the reports view.
type Model struct {
	ctx     context.Context
	backend Backend
	log     zerolog.Logger

	state     reportlist.State
	feedback  reportlist.Feedback
	activated bool

	// feedbackSeq numbers success-bar openings so stale timers are ignored.
	feedbackSeq     int
	feedbackTimeout time.Duration

	mode    mode
	confirm *pending
	sortCol int

	styles   styles
	keys     keyMap
	table    table.Model
	search   textinput.Model
	detail   viewport.Model
	help     help.Model
	width    int
	height   int
	ready    bool
	quitting bool
}

// New builds the model. Nothing is fetched until the first RefreshMsg.
func New(ctx context.Context, opts Options) Model {
	if opts.FeedbackTimeout <= 0 {
		opts.FeedbackTimeout = DefaultFeedbackTimeout
	}
	st := compileStyles(opts.Theme)

	tbl := table.New(
		table.WithColumns(columns(reportlist.SortKey{}, 0)),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(st.Table),
	)

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter by test name or status"
	ti.CharLimit = 128

	return Model{
		ctx:             ctx,
		backend:         opts.Backend,
		log:             opts.Logger,
		state:           reportlist.New(),
		feedbackTimeout: opts.FeedbackTimeout,
		styles:          st,
		keys:            defaultKeyMap(),
		table:           tbl,
		search:          ti,
		detail:          viewport.New(80, 20),
		help:            help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// State exposes the controller state, mostly for tests and the final log line.
func (m Model) State() reportlist.State { return m.state }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case RefreshMsg:
		if !m.activated {
			m.activated = true
			return m.apply(reportlist.Activated{})
		}
		return m.apply(reportlist.Ticked{})

	case outcomesMsg:
		return m.handleOutcomes(msg)

	case feedbackExpiredMsg:
		if msg.seq != m.feedbackSeq || !reportlist.FeedbackVisible(m.feedback) {
			return m, nil
		}
		m.log.Debug().Int("seq", msg.seq).Msg("feedback auto-hidden")
		return m.apply(reportlist.FeedbackDismissed{})

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeDetail:
			return m.updateDetail(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

// apply runs ev through the controller and dispatches its commands.
func (m Model) apply(ev reportlist.Event) (Model, tea.Cmd) {
	next, cmds := reportlist.Reduce(m.state, ev)
	m.state = next
	m.syncTable()
	return m, m.dispatch(cmds)
}

// dispatch executes cmds off the event loop, in order.
func (m Model) dispatch(cmds []reportlist.Command) tea.Cmd {
	if len(cmds) == 0 || m.backend == nil {
		return nil
	}
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		return outcomesMsg(reportlist.DispatchAll(ctx, backend, cmds))
	}
}

func (m Model) handleOutcomes(outs outcomesMsg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, out := range outs {
		if out.Err != nil {
			m.log.Warn().Stringer("command", out.Command.Kind).Err(out.Err).Msg("command failed")
		} else {
			m.log.Debug().Stringer("command", out.Command.Kind).Msg("command finished")
		}

		switch out.Command.Kind {
		case reportlist.CmdFetchReports:
			if out.Err == nil {
				m.state = reportlist.Refreshed(m.state, out.Reports)
				if _, open := m.state.OpenView(); !open && m.mode == modeDetail {
					m.mode = modeList
				}
				m.syncTable()
			}
		case reportlist.CmdFetchReport:
			if out.Report != nil {
				if v, open := m.state.OpenView(); open && !v.Raw && v.ReportID == out.Report.ReportID {
					m.detail.SetContent(detailContent(*out.Report, m.styles))
				}
			}
		case reportlist.CmdCreateJob, reportlist.CmdStopJob:
			m.log.Info().
				Stringer("result", out.Result.Kind).
				Str("job_id", out.Result.JobID).
				Str("reason", out.Result.Reason).
				Msg("job action")
		}
	}

	if m.backend == nil {
		return m, nil
	}
	wasVisible := reportlist.FeedbackVisible(m.feedback)
	m.feedback = m.backend.Feedback()
	if !wasVisible && reportlist.FeedbackVisible(m.feedback) {
		m.feedbackSeq++
		seq := m.feedbackSeq
		cmds = append(cmds, tea.Tick(m.feedbackTimeout, func(time.Time) tea.Msg {
			return feedbackExpiredMsg{seq: seq}
		}))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.state.SearchTerm())
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.PrevCol):
		m.sortCol = (m.sortCol - 1 + len(mapper.Columns)) % len(mapper.Columns)
		m.syncTable()
		return m, nil

	case key.Matches(msg, m.keys.NextCol):
		m.sortCol = (m.sortCol + 1) % len(mapper.Columns)
		m.syncTable()
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		return m.apply(reportlist.SortRequested{Field: mapper.Columns[m.sortCol].Field})

	case key.Matches(msg, m.keys.Refresh):
		return m.apply(reportlist.Ticked{})

	case key.Matches(msg, m.keys.View):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeDetail
		m.detail.SetContent(detailContent(r, m.styles))
		m.detail.GotoTop()
		return m.apply(reportlist.ViewRequested{ReportID: r.ReportID})

	case key.Matches(msg, m.keys.Raw):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeDetail
		m.detail.SetContent(rawContent(r))
		m.detail.GotoTop()
		return m.apply(reportlist.RawViewRequested{ReportID: r.ReportID})

	case key.Matches(msg, m.keys.Rerun):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeConfirm
		m.confirm = &pending{
			prompt: "Re-run " + r.TestName + " now? (y/n)",
			event:  reportlist.RunRequested{Job: report.JobFromReport(r)},
		}
		return m, nil

	case key.Matches(msg, m.keys.Stop):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeConfirm
		m.confirm = &pending{
			prompt: "Stop run " + r.ReportID + " of " + r.TestName + "? (y/n)",
			event:  reportlist.StopRequested{Report: r},
		}
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		return m.dismiss()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// dismiss closes the innermost thing on screen: success bar, then alert bar,
// then an active search.
func (m Model) dismiss() (Model, tea.Cmd) {
	_, shown := reportlist.FeedbackMessage(m.state, m.feedback)
	switch {
	case shown:
		return m.apply(reportlist.FeedbackDismissed{})
	case hasAlert(m.feedback):
		return m.apply(reportlist.AlertDismissed{})
	case m.state.SearchTerm() != "" || !m.state.SortKey().IsZero():
		return m.apply(reportlist.SearchRequested{Term: ""})
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.mode = modeList
		m.search.Blur()
		if msg.Type == tea.KeyEsc {
			return m.apply(reportlist.SearchRequested{Term: ""})
		}
		return m, nil
	case tea.KeyCtrlC:
		return m.quit()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if strings.TrimSpace(m.search.Value()) == m.state.SearchTerm() {
		return m, cmd
	}
	next, dispatched := m.apply(reportlist.SearchRequested{Term: m.search.Value()})
	return next, tea.Batch(cmd, dispatched)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		ev := m.confirm.event
		m.mode, m.confirm = modeList, nil
		return m.apply(ev)
	case key.Matches(msg, m.keys.Cancel):
		m.mode, m.confirm = modeList, nil
		return m, nil
	case msg.Type == tea.KeyCtrlC:
		return m.quit()
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m.mode = modeList
		return m.apply(reportlist.ViewClosed{})
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// quit deactivates the view, running its clears inline, then exits.
func (m Model) quit() (Model, tea.Cmd) {
	next, cmds := reportlist.Reduce(m.state, reportlist.Deactivated{})
	m.state = next
	if m.backend != nil {
		reportlist.DispatchAll(m.ctx, m.backend, cmds)
	}
	m.quitting = true
	return m, tea.Quit
}

// selected returns the report under the table cursor.
func (m Model) selected() (report.Report, bool) {
	rows := m.state.Displayed()
	i := m.table.Cursor()
	if i < 0 || i >= len(rows) {
		return report.Report{}, false
	}
	return rows[i], true
}

// syncTable rebuilds the table rows and headers from the controller state.
func (m *Model) syncTable() {
	m.table.SetColumns(columns(m.state.SortKey(), m.sortCol))
	displayed := m.state.Displayed()
	rows := make([]table.Row, len(displayed))
	for i, r := range displayed {
		rows[i] = rowFor(r)
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width, m.height = width, height
	m.help.Width = width
	m.search.Width = max(width-4, 10)

	// title(1) + scope(1) + input/bars(2) + help(2)
	chrome := 6
	if m.help.ShowAll {
		chrome += 3
	}
	body := max(height-chrome, 3)
	m.table.SetWidth(width)
	m.table.SetHeight(body)
	m.detail.Width = max(width-4, 10)
	m.detail.Height = max(body-3, 1)
	m.ready = true
}

func hasAlert(f reportlist.Feedback) bool {
	_, ok := reportlist.ComposeAlert(f)
	return ok
}
