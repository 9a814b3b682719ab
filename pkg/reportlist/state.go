package reportlist

import (
	"slices"
	"strings"

	"github.com/dkoosis/reportdash/pkg/report"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota + 1
	Descending
)

// SortKey is the active sort. The zero value means unsorted.
type SortKey struct {
	Field string
	Dir   Direction
}

// IsZero reports whether no sort is active.
func (k SortKey) IsZero() bool { return k.Field == "" }

// Indicator renders the key as field+ (ascending) or field- (descending).
func (k SortKey) Indicator() string {
	switch {
	case k.IsZero():
		return ""
	case k.Dir == Descending:
		return k.Field + "-"
	default:
		return k.Field + "+"
	}
}

// View is an open report view. Raw views show the report JSON.
type View struct {
	ReportID string
	Raw      bool
}

// State is the derived report list. Treat it as immutable: every reducer returns a
// fresh value and never writes through slices shared with earlier states.
type State struct {
	base      []report.Report
	displayed []report.Report
	sortKey   SortKey
	search    string
	rerun     *report.Job
	view      *View
}

// New returns an empty state.
func New() State { return State{} }

// Displayed returns the reports to show, in display order.
func (s State) Displayed() []report.Report { return slices.Clone(s.displayed) }

// Reports returns the base list in service order.
func (s State) Reports() []report.Report { return slices.Clone(s.base) }

// SortKey returns the active sort.
func (s State) SortKey() SortKey { return s.sortKey }

// SortIndicator returns the active sort as field+ or field-, or "" when unsorted.
func (s State) SortIndicator() string { return s.sortKey.Indicator() }

// SearchTerm returns the active search term.
func (s State) SearchTerm() string { return s.search }

// Rerun returns the job of the last re-run request, if one is pending.
func (s State) Rerun() (report.Job, bool) {
	if s.rerun == nil {
		return report.Job{}, false
	}
	return *s.rerun, true
}

// OpenView returns the open report view, if any.
func (s State) OpenView() (View, bool) {
	if s.view == nil {
		return View{}, false
	}
	return *s.view, true
}

// Lookup finds a report in the base list by id.
func (s State) Lookup(reportID string) (report.Report, bool) {
	i := slices.IndexFunc(s.base, func(r report.Report) bool { return r.ReportID == reportID })
	if i < 0 {
		return report.Report{}, false
	}
	return s.base[i], true
}

// derive recomputes the displayed list from base, search and sort.
func (s State) derive() State {
	out := filterReports(s.base, s.search)
	if !s.sortKey.IsZero() {
		sortReports(out, s.sortKey)
	}
	s.displayed = out
	return s
}

// Refreshed replaces the base list and re-applies the active search and sort.
// Duplicate report ids keep their first occurrence.
func Refreshed(s State, reports []report.Report) State {
	seen := make(map[string]struct{}, len(reports))
	base := make([]report.Report, 0, len(reports))
	for _, r := range reports {
		if _, dup := seen[r.ReportID]; dup {
			continue
		}
		seen[r.ReportID] = struct{}{}
		base = append(base, r)
	}
	s.base = base
	if s.view != nil {
		if _, ok := s.Lookup(s.view.ReportID); !ok {
			s.view = nil
		}
	}
	return s.derive()
}

// Sort sorts by field: ascending on the first request, then alternating.
// Unknown fields leave the state unchanged.
func Sort(s State, field string) State {
	if _, ok := comparators[field]; !ok {
		return s
	}
	dir := Ascending
	if s.sortKey.Field == field && s.sortKey.Dir == Ascending {
		dir = Descending
	}
	s.sortKey = SortKey{Field: field, Dir: dir}
	return s.derive()
}

// Search filters by test name or status. Surrounding whitespace is ignored; a
// blank term clears search and sort.
func Search(s State, term string) State {
	term = strings.TrimSpace(term)
	if term == "" {
		s.search = ""
		s.sortKey = SortKey{}
		return s.derive()
	}
	s.search = term
	return s.derive()
}

// ViewReport opens the detailed view of a known report and asks for its full record.
func ViewReport(s State, reportID string) (State, []Command) {
	r, ok := s.Lookup(reportID)
	if !ok {
		return s, nil
	}
	s.view = &View{ReportID: reportID}
	return s, []Command{{Kind: CmdFetchReport, TestID: r.TestID, ReportID: r.ReportID}}
}

// ViewRaw opens the raw JSON view of a known report.
func ViewRaw(s State, reportID string) State {
	if _, ok := s.Lookup(reportID); !ok {
		return s
	}
	s.view = &View{ReportID: reportID, Raw: true}
	return s
}

// CloseView closes any open view.
func CloseView(s State) (State, []Command) {
	if s.view == nil {
		return s, nil
	}
	raw := s.view.Raw
	s.view = nil
	if raw {
		return s, nil
	}
	return s, []Command{cmd(CmdClearSelectedReport)}
}

// Activate starts a session: a fresh load with no pending re-run.
func Activate(s State) (State, []Command) {
	s.rerun = nil
	return s, loadCommands()
}

// Tick is a periodic refresh. A pending re-run survives it so its feedback still shows.
func Tick(s State) (State, []Command) {
	return s, loadCommands()
}

// Deactivate ends a session.
func Deactivate(s State) (State, []Command) {
	s.view = nil
	return s, []Command{cmd(CmdClearReportsError), cmd(CmdClearSelectedReport)}
}
