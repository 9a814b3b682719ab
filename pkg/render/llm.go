package render

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dkoosis/reportdash/pkg/pattern"
)

// LLM renders patterns as terse plain text for logs, pipes and AI consumption.
// Zero ANSI codes; rows keep the order they were derived in.
type LLM struct{}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{}
}

// Render formats all patterns as plain text.
func (l *LLM) Render(patterns []pattern.Pattern) string {
	var sb strings.Builder
	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.Summary:
			sb.WriteString(v.Label + "\n")
			for _, m := range v.Metrics {
				sb.WriteString("  " + m.Label + ": " + m.Value + "\n")
			}
		case *pattern.ReportTable:
			sb.WriteString("\n" + strings.ToUpper(v.Label) + " (" + scopeLine(v) + ")\n")
			if len(v.Rows) == 0 {
				sb.WriteString("  no reports\n")
				continue
			}
			tw := plainTable(v)
			tw.SetStyle(table.StyleDefault)
			tw.Style().Options = table.OptionsNoBordersAndSeparators
			tw.Style().Format.Header = text.FormatDefault
			sb.WriteString(tw.Render())
			sb.WriteString("\n")
		case *pattern.Sparkline:
			vals := make([]string, len(v.Values))
			for i, x := range v.Values {
				vals[i] = strconv.FormatFloat(x, 'f', 1, 64)
			}
			sb.WriteString("\n" + v.Label + " trend: " + strings.Join(vals, " ") + "\n")
		}
	}
	return sb.String()
}

// plainTable builds a go-pretty writer holding the report id plus every column.
func plainTable(rt *pattern.ReportTable) table.Writer {
	tw := table.NewWriter()
	header := table.Row{"ID"}
	for _, c := range rt.Columns {
		header = append(header, c)
	}
	tw.AppendHeader(header)
	for _, r := range rt.Rows {
		row := table.Row{r.ReportID}
		for _, c := range r.Cells {
			row = append(row, c)
		}
		tw.AppendRow(row)
	}
	return tw
}
