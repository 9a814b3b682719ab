package reportlist

import (
	"context"
	"fmt"

	"github.com/dkoosis/reportdash/pkg/report"
)

// Store is the authoritative holder of reports and job-action flags.
type Store interface {
	FetchAllReports(ctx context.Context) ([]report.Report, error)
	FetchTests(ctx context.Context) ([]report.Test, error)
	FetchReport(ctx context.Context, testID, reportID string) (report.Report, error)
	CreateJob(ctx context.Context, req report.JobRequest) report.JobActionResult
	StopJob(ctx context.Context, jobID, reportID string) report.JobActionResult

	ClearStopSuccess()
	ClearStopError()
	ClearCreateSuccess()
	ClearCreateError()
	ClearReportsError()
	ClearSelectedReport()
}

// Outcome is what executing one Command produced.
type Outcome struct {
	Command Command
	Reports []report.Report        // CmdFetchReports
	Tests   []report.Test          // CmdFetchTests
	Report  *report.Report         // CmdFetchReport
	Result  report.JobActionResult // CmdCreateJob, CmdStopJob
	Err     error
}

// Dispatch executes c against st. Failures are returned in the Outcome and are
// also recorded by the store; nothing is retried here.
func Dispatch(ctx context.Context, st Store, c Command) Outcome {
	out := Outcome{Command: c}
	switch c.Kind {
	case CmdFetchReports:
		out.Reports, out.Err = st.FetchAllReports(ctx)
	case CmdFetchTests:
		out.Tests, out.Err = st.FetchTests(ctx)
	case CmdFetchReport:
		r, err := st.FetchReport(ctx, c.TestID, c.ReportID)
		if err == nil {
			out.Report = &r
		}
		out.Err = err
	case CmdCreateJob:
		out.Result = st.CreateJob(ctx, c.Request)
	case CmdStopJob:
		out.Result = st.StopJob(ctx, c.JobID, c.ReportID)
	case CmdClearStopSuccess:
		st.ClearStopSuccess()
	case CmdClearStopError:
		st.ClearStopError()
	case CmdClearCreateSuccess:
		st.ClearCreateSuccess()
	case CmdClearCreateError:
		st.ClearCreateError()
	case CmdClearReportsError:
		st.ClearReportsError()
	case CmdClearSelectedReport:
		st.ClearSelectedReport()
	default:
		out.Err = fmt.Errorf("unknown command %d", c.Kind)
	}
	return out
}

// DispatchAll executes cmds in order.
func DispatchAll(ctx context.Context, st Store, cmds []Command) []Outcome {
	outs := make([]Outcome, 0, len(cmds))
	for _, c := range cmds {
		outs = append(outs, Dispatch(ctx, st, c))
	}
	return outs
}
