package store

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/reportdash/pkg/report"
	"github.com/dkoosis/reportdash/pkg/reportlist"
)

type fakeAPI struct {
	failReports atomic.Bool
	failStop    atomic.Bool
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/v1/tests/last_reports":
		if f.failReports.Load() {
			http.Error(w, `{"message":"db down"}`, http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, `[{"report_id":"r1","job_id":"j1","test_id":"t1","test_name":"a","status":"in_progress","start_time":"2024-01-01T00:00:00Z"}]`)
	case r.URL.Path == "/v1/tests":
		_, _ = io.WriteString(w, `[{"id":"t1","name":"a","type":"load_test"}]`)
	case r.URL.Path == "/v1/tests/t1/reports/r1":
		_, _ = io.WriteString(w, `{"report_id":"r1","test_id":"t1","test_name":"a","status":"in_progress","start_time":"2024-01-01T00:00:00Z"}`)
	case r.URL.Path == "/v1/jobs" && r.Method == http.MethodPost:
		_, _ = io.WriteString(w, `{"id":"42","test_id":"t1","type":"load_test","duration":10}`)
	case r.URL.Path == "/v1/jobs/j1/runs/r1/stop":
		if f.failStop.Load() {
			http.Error(w, `{"message":"run already finished"}`, http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func newTestStore(t *testing.T) (*Store, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	return New(newTestClient(t, api), zerolog.Nop()), api
}

func TestStore_FetchAllReports_KeepsListOnError(t *testing.T) {
	t.Parallel()

	st, api := newTestStore(t)
	ctx := context.Background()

	rs, err := st.FetchAllReports(ctx)
	require.NoError(t, err)
	require.Len(t, rs, 1)

	api.failReports.Store(true)
	_, err = st.FetchAllReports(ctx)
	require.Error(t, err)
	assert.Len(t, st.Reports(), 1, "previous list kept")
	assert.Contains(t, st.Feedback().ReportsError, "db down")

	st.ClearReportsError()
	assert.Empty(t, st.Feedback().ReportsError)
}

func TestStore_StopJob_Flags(t *testing.T) {
	t.Parallel()

	st, api := newTestStore(t)
	ctx := context.Background()

	res := st.StopJob(ctx, "j1", "r1")
	assert.Equal(t, report.ActionStopSucceeded, res.Kind)
	fb := st.Feedback()
	assert.True(t, fb.StopSucceeded)
	assert.True(t, reportlist.FeedbackVisible(fb))

	st.ClearStopSuccess()
	assert.False(t, st.Feedback().StopSucceeded)

	api.failStop.Store(true)
	res = st.StopJob(ctx, "j1", "r1")
	assert.Equal(t, report.ActionError, res.Kind)
	assert.Equal(t, report.OpStop, res.Op)
	msg, ok := reportlist.ComposeAlert(st.Feedback())
	assert.True(t, ok)
	assert.Contains(t, msg, "run already finished")

	st.ClearStopError()
	_, ok = reportlist.ComposeAlert(st.Feedback())
	assert.False(t, ok)
}

func TestStore_CreateJob_Flags(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	res := st.CreateJob(context.Background(), report.JobRequest{TestID: "t1", Duration: 10, RunImmediately: true})

	assert.Equal(t, report.CreateSucceeded("42"), res)
	fb := st.Feedback()
	assert.True(t, fb.CreateSucceeded)
	assert.Equal(t, "42", fb.CreatedJobID)

	st.ClearCreateSuccess()
	assert.False(t, st.Feedback().CreateSucceeded)
}

func TestStore_SelectedReport(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	_, ok := st.Selected()
	assert.False(t, ok)

	_, err := st.FetchReport(context.Background(), "t1", "r1")
	require.NoError(t, err)
	got, ok := st.Selected()
	require.True(t, ok)
	assert.Equal(t, "r1", got.ReportID)

	st.ClearSelectedReport()
	_, ok = st.Selected()
	assert.False(t, ok)
}

func TestStore_DismissFlowThroughDispatch(t *testing.T) {
	t.Parallel()

	st, _ := newTestStore(t)
	ctx := context.Background()

	s, cmds := reportlist.RunTest(reportlist.New(), report.Job{ID: "j1", TestID: "t1", CronExpression: "0 0 * * *"})
	reportlist.DispatchAll(ctx, st, cmds)

	msg, ok := reportlist.FeedbackMessage(s, st.Feedback())
	require.True(t, ok)
	assert.Equal(t, "Job created successfully: 42", msg)

	s, cmds = reportlist.DismissFeedback(s)
	outs := reportlist.DispatchAll(ctx, st, cmds)
	require.NotEmpty(t, outs)
	assert.Len(t, outs[0].Reports, 1)

	_, ok = reportlist.FeedbackMessage(s, st.Feedback())
	assert.False(t, ok)
	assert.False(t, reportlist.FeedbackVisible(st.Feedback()))

	_, err := st.FetchTests(ctx)
	require.NoError(t, err)
	assert.Len(t, st.Tests(), 1)
}
