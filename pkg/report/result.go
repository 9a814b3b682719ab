package report

// ActionKind tags a JobActionResult.
type ActionKind int

const (
	// ActionNone means no job action has completed since the last clear.
	ActionNone ActionKind = iota
	// ActionStopSucceeded means a stop request was accepted.
	ActionStopSucceeded
	// ActionCreateSucceeded means a job was created; JobID is set.
	ActionCreateSucceeded
	// ActionError means a stop or create request failed; Op and Reason are set.
	ActionError
)

func (k ActionKind) String() string {
	switch k {
	case ActionStopSucceeded:
		return "stop_succeeded"
	case ActionCreateSucceeded:
		return "create_succeeded"
	case ActionError:
		return "error"
	default:
		return "none"
	}
}

// Operations that can fail with an ActionError.
const (
	OpStop   = "stop"
	OpCreate = "create"
)

// JobActionResult is the outcome of a create-job or stop-job command.
type JobActionResult struct {
	Kind   ActionKind
	JobID  string
	Op     string
	Reason string
}

// StopSucceeded returns the result of an accepted stop request.
func StopSucceeded() JobActionResult {
	return JobActionResult{Kind: ActionStopSucceeded}
}

// CreateSucceeded returns the result of a created job.
func CreateSucceeded(jobID string) JobActionResult {
	return JobActionResult{Kind: ActionCreateSucceeded, JobID: jobID}
}

// ActionFailed returns the result of a failed op.
func ActionFailed(op string, err error) JobActionResult {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	return JobActionResult{Kind: ActionError, Op: op, Reason: reason}
}
