package reportlist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/reportdash/pkg/report"
)

type fakeStore struct {
	calls     []string
	reports   []report.Report
	fetchErr  error
	created   report.JobRequest
	stoppedID [2]string
}

func (f *fakeStore) FetchAllReports(context.Context) ([]report.Report, error) {
	f.calls = append(f.calls, "fetch_reports")
	return f.reports, f.fetchErr
}

func (f *fakeStore) FetchTests(context.Context) ([]report.Test, error) {
	f.calls = append(f.calls, "fetch_tests")
	return []report.Test{{ID: "t1"}}, nil
}

func (f *fakeStore) FetchReport(_ context.Context, testID, reportID string) (report.Report, error) {
	f.calls = append(f.calls, "fetch_report")
	return report.Report{TestID: testID, ReportID: reportID}, nil
}

func (f *fakeStore) CreateJob(_ context.Context, req report.JobRequest) report.JobActionResult {
	f.calls = append(f.calls, "create_job")
	f.created = req
	return report.CreateSucceeded("new-job")
}

func (f *fakeStore) StopJob(_ context.Context, jobID, reportID string) report.JobActionResult {
	f.calls = append(f.calls, "stop_job")
	f.stoppedID = [2]string{jobID, reportID}
	return report.StopSucceeded()
}

func (f *fakeStore) ClearStopSuccess()    { f.calls = append(f.calls, "clear_stop_success") }
func (f *fakeStore) ClearStopError()      { f.calls = append(f.calls, "clear_stop_error") }
func (f *fakeStore) ClearCreateSuccess()  { f.calls = append(f.calls, "clear_create_success") }
func (f *fakeStore) ClearCreateError()    { f.calls = append(f.calls, "clear_create_error") }
func (f *fakeStore) ClearReportsError()   { f.calls = append(f.calls, "clear_reports_error") }
func (f *fakeStore) ClearSelectedReport() { f.calls = append(f.calls, "clear_selected_report") }

func TestDispatchAll_DismissSequence(t *testing.T) {
	t.Parallel()

	st := &fakeStore{reports: fixtureReports()}
	_, cmds := DismissFeedback(New())
	outs := DispatchAll(context.Background(), st, cmds)

	assert.Equal(t, []string{"fetch_reports", "clear_stop_success", "clear_stop_error", "clear_create_success"}, st.calls)
	require.Len(t, outs, 4)
	assert.Len(t, outs[0].Reports, 4)
	for _, out := range outs {
		assert.NoError(t, out.Err)
	}
}

func TestDispatch_CreateAndStop(t *testing.T) {
	t.Parallel()

	st := &fakeStore{}
	_, cmds := RunTest(New(), report.Job{TestID: "t1", CronExpression: "* * * * *"})
	out := Dispatch(context.Background(), st, cmds[0])

	assert.Equal(t, report.ActionCreateSucceeded, out.Result.Kind)
	assert.Equal(t, "new-job", out.Result.JobID)
	assert.True(t, st.created.RunImmediately)
	assert.Empty(t, st.created.CronExpression)

	_, cmds = Stop(New(), report.Report{JobID: "j", ReportID: "r"})
	out = Dispatch(context.Background(), st, cmds[0])
	assert.Equal(t, report.ActionStopSucceeded, out.Result.Kind)
	assert.Equal(t, [2]string{"j", "r"}, st.stoppedID)
}

func TestDispatch_FetchErrorReturned(t *testing.T) {
	t.Parallel()

	st := &fakeStore{fetchErr: errors.New("down")}
	out := Dispatch(context.Background(), st, Command{Kind: CmdFetchReports})
	assert.EqualError(t, out.Err, "down")
}

func TestDispatch_FetchReport(t *testing.T) {
	t.Parallel()

	st := &fakeStore{}
	out := Dispatch(context.Background(), st, Command{Kind: CmdFetchReport, TestID: "t", ReportID: "r"})
	require.NotNil(t, out.Report)
	assert.Equal(t, "r", out.Report.ReportID)
}

func TestDispatch_UnknownCommand(t *testing.T) {
	t.Parallel()

	out := Dispatch(context.Background(), &fakeStore{}, Command{Kind: CommandKind(99)})
	assert.Error(t, out.Err)
	assert.Equal(t, "unknown", CommandKind(99).String())
}
