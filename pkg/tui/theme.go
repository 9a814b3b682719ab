package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/reportdash/pkg/render"
)

// styles holds pre-built lipgloss styles compiled from a palette.
type styles struct {
	Title      lipgloss.Style
	Scope      lipgloss.Style
	Table      table.Styles
	DetailBox  lipgloss.Style
	DetailHead lipgloss.Style
	Label      lipgloss.Style
	Feedback   lipgloss.Style
	Alert      lipgloss.Style
	Confirm    lipgloss.Style
	StatusBar  lipgloss.Style
	Muted      lipgloss.Style

	TitleIcon string
}

// compileStyles builds the TUI styles for the named theme.
func compileStyles(name string) styles {
	p := render.PaletteByName(name)
	mono := p.Name == "mono"

	st := styles{TitleIcon: "⚡"}
	if mono {
		st.TitleIcon = "*"
	}

	st.Title = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	st.DetailHead = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	st.Feedback = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	st.Alert = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if mono {
		st.Feedback = st.Feedback.Underline(true)
		st.Alert = st.Alert.Reverse(true)
	} else {
		st.Title = st.Title.Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color(p.Accent))
		st.DetailHead = st.DetailHead.Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color(p.Accent))
		st.Feedback = st.Feedback.Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color(p.Success))
		st.Alert = st.Alert.Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color(p.Error))
	}

	st.Scope = render.Fg(p.Muted).Padding(0, 1)
	st.Muted = render.Fg(p.Muted)
	st.Label = render.Fg(p.Primary).Bold(true)
	st.Confirm = render.Fg(p.Warning).Bold(true).Padding(0, 1)
	st.StatusBar = render.Fg(p.Muted).MarginTop(1)

	border := lipgloss.RoundedBorder()
	st.DetailBox = lipgloss.NewStyle().Border(border).Padding(0, 1)
	if !mono {
		st.DetailBox = st.DetailBox.BorderForeground(lipgloss.Color(p.Primary))
	}

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.Bold(true)
	if mono {
		ts.Selected = ts.Selected.Reverse(true)
	} else {
		ts.Header = ts.Header.BorderForeground(lipgloss.Color(p.Muted)).Foreground(lipgloss.Color(p.Primary))
		ts.Selected = ts.Selected.Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color(p.Accent))
	}
	st.Table = ts

	return st
}
