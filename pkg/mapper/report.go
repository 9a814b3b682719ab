// Package mapper converts report lists into visualization patterns.
package mapper

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/dkoosis/reportdash/pkg/pattern"
	"github.com/dkoosis/reportdash/pkg/report"
)

const (
	kindSuccess = "success"
	kindError   = "error"
	kindWarning = "warning"
	kindInfo    = "info"
)

// View is a derived report list together with what produced it.
type View struct {
	Reports []report.Report // display order
	Total   int             // size of the unfiltered list
	Sort    string          // sort indicator, "" when unsorted
	Search  string
}

// FromReports converts a derived view into a status Summary, the ReportTable and,
// when there are at least two runs, a throughput Sparkline in start-time order.
func FromReports(v View) []pattern.Pattern {
	label := fmt.Sprintf("REPORTS: %d shown", len(v.Reports))
	if v.Total != len(v.Reports) {
		label = fmt.Sprintf("REPORTS: %d of %d shown", len(v.Reports), v.Total)
	}

	patterns := []pattern.Pattern{summarize(label, v.Reports)}

	table := &pattern.ReportTable{
		Label:   "Last reports",
		Sort:    v.Sort,
		Search:  v.Search,
		Total:   v.Total,
		Columns: Headers(),
		Rows:    make([]pattern.ReportRow, 0, len(v.Reports)),
	}
	for _, r := range v.Reports {
		table.Rows = append(table.Rows, pattern.ReportRow{
			ReportID: r.ReportID,
			Kind:     StatusKind(r.Status),
			Cells:    Cells(r),
		})
	}
	patterns = append(patterns, table)

	if s := rpsTrend(v.Reports); s != nil {
		patterns = append(patterns, s)
	}
	return patterns
}

// summarize counts reports per status, in order of first appearance.
func summarize(label string, reports []report.Report) *pattern.Summary {
	counts := make(map[string]int)
	var order []string
	for _, r := range reports {
		if counts[r.Status] == 0 {
			order = append(order, r.Status)
		}
		counts[r.Status]++
	}
	sum := &pattern.Summary{Label: label, Metrics: make([]pattern.SummaryItem, 0, len(order))}
	for _, st := range order {
		sum.Metrics = append(sum.Metrics, pattern.SummaryItem{
			Label: st,
			Value: strconv.Itoa(counts[st]),
			Kind:  StatusKind(st),
		})
	}
	return sum
}

func rpsTrend(reports []report.Report) *pattern.Sparkline {
	if len(reports) < 2 {
		return nil
	}
	byStart := slices.Clone(reports)
	slices.SortStableFunc(byStart, func(a, b report.Report) int { return a.StartTime.Compare(b.StartTime) })
	values := make([]float64, len(byStart))
	for i, r := range byStart {
		values[i] = r.LastRPS
	}
	return &pattern.Sparkline{Label: "RPS", Values: values, Unit: " rps"}
}
