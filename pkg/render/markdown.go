package render

import (
	"strings"

	"github.com/dkoosis/reportdash/pkg/pattern"
)

// Markdown renders patterns as GitHub-flavored markdown, suitable for CI job
// summaries and issue comments.
type Markdown struct{}

// NewMarkdown creates a markdown renderer.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// Render formats all patterns as markdown.
func (m *Markdown) Render(patterns []pattern.Pattern) string {
	var sb strings.Builder
	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.Summary:
			sb.WriteString("## " + v.Label + "\n\n")
			for _, item := range v.Metrics {
				sb.WriteString("- **" + item.Label + "**: " + item.Value + "\n")
			}
			sb.WriteString("\n")
		case *pattern.ReportTable:
			sb.WriteString("### " + v.Label + "\n\n_" + scopeLine(v) + "_\n\n")
			if len(v.Rows) == 0 {
				sb.WriteString("No reports.\n\n")
				continue
			}
			sb.WriteString(plainTable(v).RenderMarkdown())
			sb.WriteString("\n\n")
		case *pattern.Sparkline:
			sb.WriteString("**" + v.Label + "**: `" + sparkline(v.Values) + "`\n")
		}
	}
	return sb.String()
}
