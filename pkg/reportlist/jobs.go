package reportlist

import "github.com/dkoosis/reportdash/pkg/report"

// BuildRunRequest turns a job definition into a one-off immediate run: the schedule
// is dropped and run_immediately is forced on.
func BuildRunRequest(job report.Job) report.JobRequest {
	req := report.NewJobRequest(job)
	req.CronExpression = ""
	req.RunImmediately = true
	return req
}

// RunTest re-runs job now and remembers it as the pending re-run.
func RunTest(s State, job report.Job) (State, []Command) {
	pending := job
	s.rerun = &pending
	return s, []Command{{Kind: CmdCreateJob, Request: BuildRunRequest(job)}}
}

// Stop asks the service to abort the run behind r.
func Stop(s State, r report.Report) (State, []Command) {
	return s, []Command{{Kind: CmdStopJob, JobID: r.JobID, ReportID: r.ReportID}}
}
