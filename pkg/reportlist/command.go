package reportlist

import "github.com/dkoosis/reportdash/pkg/report"

// CommandKind identifies a side effect requested by a reducer.
type CommandKind int

const (
	CmdFetchReports CommandKind = iota
	CmdFetchTests
	CmdFetchReport
	CmdCreateJob
	CmdStopJob
	CmdClearStopSuccess
	CmdClearStopError
	CmdClearCreateSuccess
	CmdClearCreateError
	CmdClearReportsError
	CmdClearSelectedReport
)

var commandNames = map[CommandKind]string{
	CmdFetchReports:        "fetch_reports",
	CmdFetchTests:          "fetch_tests",
	CmdFetchReport:         "fetch_report",
	CmdCreateJob:           "create_job",
	CmdStopJob:             "stop_job",
	CmdClearStopSuccess:    "clear_stop_success",
	CmdClearStopError:      "clear_stop_error",
	CmdClearCreateSuccess:  "clear_create_success",
	CmdClearCreateError:    "clear_create_error",
	CmdClearReportsError:   "clear_reports_error",
	CmdClearSelectedReport: "clear_selected_report",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is one side effect. Only the fields relevant to Kind are set.
type Command struct {
	Kind     CommandKind
	Request  report.JobRequest // CmdCreateJob
	JobID    string            // CmdStopJob
	ReportID string            // CmdStopJob, CmdFetchReport
	TestID   string            // CmdFetchReport
}

func cmd(kind CommandKind) Command { return Command{Kind: kind} }

// Kinds lists the kinds of cmds in order.
func Kinds(cmds []Command) []CommandKind {
	kinds := make([]CommandKind, len(cmds))
	for i, c := range cmds {
		kinds[i] = c.Kind
	}
	return kinds
}

// loadCommands is the page load sequence: tests, error reset, reports.
func loadCommands() []Command {
	return []Command{cmd(CmdFetchTests), cmd(CmdClearReportsError), cmd(CmdFetchReports)}
}
