// Package render provides output renderers for reportdash's list patterns.
package render

import (
	"fmt"

	"github.com/dkoosis/reportdash/pkg/pattern"
)

// Renderer converts patterns to formatted output.
type Renderer interface {
	Render(patterns []pattern.Pattern) string
}

// Output formats accepted by ForFormat.
const (
	FormatAuto     = "auto"
	FormatTerminal = "terminal"
	FormatLLM      = "llm"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ForFormat picks a renderer. auto resolves to terminal when isTTY and llm
// otherwise.
func ForFormat(format string, isTTY bool, theme Theme, width int) (Renderer, error) {
	switch format {
	case FormatAuto, "":
		if isTTY {
			return NewTerminal(theme, width), nil
		}
		return NewLLM(), nil
	case FormatTerminal:
		return NewTerminal(theme, width), nil
	case FormatLLM, "plain":
		return NewLLM(), nil
	case FormatMarkdown, "md":
		return NewMarkdown(), nil
	case FormatJSON:
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want auto, terminal, llm, markdown or json)", format)
	}
}

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// sparkline maps values onto block characters scaled between their min and max.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	valueRange := maxVal - minVal
	if valueRange == 0 {
		valueRange = 1
	}
	out := make([]rune, len(values))
	for i, v := range values {
		idx := int((v - minVal) / valueRange * 7)
		out[i] = sparkBlocks[max(0, min(7, idx))]
	}
	return string(out)
}

// scopeLine describes the sort and search behind a table.
func scopeLine(t *pattern.ReportTable) string {
	sortBy, search := t.Sort, t.Search
	if sortBy == "" {
		sortBy = "none"
	}
	if search == "" {
		search = "none"
	}
	return fmt.Sprintf("sort: %s  search: %s", sortBy, search)
}
