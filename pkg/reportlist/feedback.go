package reportlist

import (
	"fmt"

	"github.com/dkoosis/reportdash/pkg/report"
)

// Feedback is a snapshot of the store's job-action and load flags.
type Feedback struct {
	StopSucceeded   bool
	StopError       string
	CreateSucceeded bool
	CreatedJobID    string
	CreateError     string
	ReportsError    string
}

// Result reduces the flags to one result. Stop success wins over create success,
// and successes win over errors.
func (f Feedback) Result() report.JobActionResult {
	switch {
	case f.StopSucceeded:
		return report.StopSucceeded()
	case f.CreateSucceeded:
		return report.CreateSucceeded(f.CreatedJobID)
	case f.StopError != "":
		return report.JobActionResult{Kind: report.ActionError, Op: report.OpStop, Reason: f.StopError}
	case f.CreateError != "":
		return report.JobActionResult{Kind: report.ActionError, Op: report.OpCreate, Reason: f.CreateError}
	default:
		return report.JobActionResult{}
	}
}

// ComposeFeedback returns the success message for res. A created job is only
// announced when rerunPending is set.
func ComposeFeedback(res report.JobActionResult, rerunPending bool) (string, bool) {
	switch res.Kind {
	case report.ActionStopSucceeded:
		return "Job successfully aborted", true
	case report.ActionCreateSucceeded:
		if !rerunPending {
			return "", false
		}
		return fmt.Sprintf("Job created successfully: %s", res.JobID), true
	default:
		return "", false
	}
}

// FeedbackVisible reports whether the success bar is open.
func FeedbackVisible(f Feedback) bool {
	return f.StopSucceeded || f.CreateSucceeded
}

// FeedbackMessage combines the store flags with the state's re-run context. It
// returns false when there is nothing to show.
func FeedbackMessage(s State, f Feedback) (string, bool) {
	if !FeedbackVisible(f) {
		return "", false
	}
	return ComposeFeedback(f.Result(), s.rerun != nil)
}

// ComposeAlert returns the failure message for f, if any.
func ComposeAlert(f Feedback) (string, bool) {
	switch {
	case f.StopError != "":
		return "Failed to stop job: " + f.StopError, true
	case f.CreateError != "":
		return "Failed to create job: " + f.CreateError, true
	case f.ReportsError != "":
		return "Failed to load reports: " + f.ReportsError, true
	default:
		return "", false
	}
}

// DismissFeedback closes the success bar: reload, clear the action flags, forget
// the pending re-run.
func DismissFeedback(s State) (State, []Command) {
	s.rerun = nil
	return s, []Command{
		cmd(CmdFetchReports),
		cmd(CmdClearStopSuccess),
		cmd(CmdClearStopError),
		cmd(CmdClearCreateSuccess),
	}
}

// DismissAlert closes the failure bar and clears every error flag.
func DismissAlert(s State) (State, []Command) {
	s.rerun = nil
	return s, []Command{
		cmd(CmdClearStopError),
		cmd(CmdClearCreateError),
		cmd(CmdClearReportsError),
	}
}
