package reportlist

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/dkoosis/reportdash/pkg/report"
)

// filterReports returns a new slice with the reports whose test name or status
// contains term, ignoring case. An empty term keeps every report.
func filterReports(rs []report.Report, term string) []report.Report {
	out := make([]report.Report, 0, len(rs))
	if term == "" {
		return append(out, rs...)
	}
	fold := cases.Fold()
	needle := fold.String(term)
	for _, r := range rs {
		if strings.Contains(fold.String(r.TestName), needle) || strings.Contains(fold.String(r.Status), needle) {
			out = append(out, r)
		}
	}
	return out
}
