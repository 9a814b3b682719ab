package reportlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/reportdash/pkg/report"
)

func TestBuildRunRequest_ForcesImmediateOneOffRun(t *testing.T) {
	t.Parallel()

	job := report.Job{
		ID: "j1", TestID: "t1", Type: report.JobTypeLoad,
		ArrivalRate: 5, Duration: 60, CronExpression: "*/5 * * * *",
		RunImmediately: false, Notes: "nightly",
	}
	req := BuildRunRequest(job)

	assert.True(t, req.RunImmediately)
	assert.Empty(t, req.CronExpression)
	assert.Equal(t, "t1", req.TestID)
	assert.Equal(t, 5, req.ArrivalRate)
	assert.Equal(t, "nightly", req.Notes)
	assert.Equal(t, "*/5 * * * *", job.CronExpression, "job is not modified")
}

func TestRunTest_IssuesCreateAndRecordsRerun(t *testing.T) {
	t.Parallel()

	job := report.Job{ID: "j1", TestID: "t1", CronExpression: "0 * * * *"}
	s, cmds := RunTest(New(), job)

	require.Len(t, cmds, 1)
	assert.Equal(t, CmdCreateJob, cmds[0].Kind)
	assert.True(t, cmds[0].Request.RunImmediately)
	assert.Empty(t, cmds[0].Request.CronExpression)

	got, ok := s.Rerun()
	require.True(t, ok)
	assert.Equal(t, "j1", got.ID)
}

func TestStop_KeyedByJobAndReport(t *testing.T) {
	t.Parallel()

	s := New()
	next, cmds := Stop(s, report.Report{JobID: "j9", ReportID: "r9"})

	assert.Equal(t, []Command{{Kind: CmdStopJob, JobID: "j9", ReportID: "r9"}}, cmds)
	_, pending := next.Rerun()
	assert.False(t, pending)
}
