package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/reportdash/pkg/mapper"
	"github.com/dkoosis/reportdash/pkg/report"
	"github.com/dkoosis/reportdash/pkg/reportlist"
)

// columns builds the table header. The column picked for sorting is bracketed
// and the sorted column carries an arrow.
func columns(key reportlist.SortKey, picked int) []table.Column {
	cols := make([]table.Column, len(mapper.Columns))
	for i, c := range mapper.Columns {
		title := c.Title
		if c.Field == key.Field {
			if key.Dir == reportlist.Descending {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		if i == picked {
			title = "[" + title + "]"
		}
		cols[i] = table.Column{Title: title, Width: max(c.Width, runewidth.StringWidth(title))}
	}
	return cols
}

func rowFor(r report.Report) table.Row {
	row := make(table.Row, len(mapper.Columns))
	for i, c := range mapper.Columns {
		row[i] = runewidth.Truncate(c.Cell(r), c.Width, "…")
	}
	return row
}

func detailContent(r report.Report, st styles) string {
	end := "-"
	if r.EndTime != nil {
		end = r.EndTime.Local().Format(mapper.TimeLayout)
	}
	fields := [][2]string{
		{"Test", r.TestName},
		{"Report", r.ReportID},
		{"Job", r.JobID},
		{"Status", r.Status},
		{"Type", r.TestType},
		{"Start", r.StartTime.Local().Format(mapper.TimeLayout)},
		{"End", end},
		{"Duration", mapper.FormatSeconds(r.Duration)},
		{"Arrival rate", mapper.FormatRate(r)},
		{"Parallelism", fmt.Sprint(r.Parallelism)},
		{"Max VUs", fmt.Sprint(r.MaxVirtualUsers)},
		{"Environment", r.Environment},
		{"Last RPS", fmt.Sprintf("%.1f", r.LastRPS)},
		{"Success rate", fmt.Sprintf("%.1f%%", r.LastSuccessRate)},
		{"Grafana", r.GrafanaReport},
		{"Notes", r.Notes},
	}
	var sb strings.Builder
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		sb.WriteString(st.Label.Render(fmt.Sprintf("%-13s", f[0])))
		sb.WriteString(" ")
		sb.WriteString(f[1])
		sb.WriteString("\n")
	}
	return sb.String()
}

func rawContent(r report.Report) string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "cannot encode report: " + err.Error()
	}
	return string(data)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading reports..."
	}

	title := m.styles.Title.Render(m.styles.TitleIcon + " reportdash · last reports")
	scope := m.styles.Scope.Render(m.scopeLine())
	sections := []string{lipgloss.JoinHorizontal(lipgloss.Top, title, scope)}

	if m.mode == modeDetail {
		sections = append(sections, m.detailView())
	} else {
		sections = append(sections, m.table.View())
	}

	switch m.mode {
	case modeSearch:
		sections = append(sections, m.search.View())
	case modeConfirm:
		sections = append(sections, m.styles.Confirm.Render(m.confirm.prompt))
	}

	if msg, ok := reportlist.FeedbackMessage(m.state, m.feedback); ok {
		sections = append(sections, m.styles.Feedback.Render(msg))
	}
	if msg, ok := reportlist.ComposeAlert(m.feedback); ok {
		sections = append(sections, m.styles.Alert.Render(runewidth.Truncate(msg, max(m.width-2, 10), "…")))
	}

	sections = append(sections, m.styles.StatusBar.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) scopeLine() string {
	sortBy := m.state.SortIndicator()
	if sortBy == "" {
		sortBy = "none"
	}
	parts := []string{
		fmt.Sprintf("%d/%d reports", len(m.state.Displayed()), len(m.state.Reports())),
		"sort: " + sortBy,
	}
	if term := m.state.SearchTerm(); term != "" {
		parts = append(parts, "search: "+term)
	}
	parts = append(parts, "column: "+mapper.Columns[m.sortCol].Title)
	return strings.Join(parts, " · ")
}

func (m Model) detailView() string {
	v, _ := m.state.OpenView()
	head := "Report " + v.ReportID
	if v.Raw {
		head += " (raw)"
	}
	box := m.styles.DetailBox.Width(m.detail.Width + 2).Render(m.detail.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.styles.DetailHead.Render(head), box)
}
