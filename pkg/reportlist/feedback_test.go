package reportlist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkoosis/reportdash/pkg/report"
)

func TestComposeFeedback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		res      report.JobActionResult
		rerun    bool
		wantMsg  string
		wantShow bool
	}{
		{"stop succeeded", report.StopSucceeded(), false, "Job successfully aborted", true},
		{"stop succeeded during rerun", report.StopSucceeded(), true, "Job successfully aborted", true},
		{"created for rerun", report.CreateSucceeded("42"), true, "Job created successfully: 42", true},
		{"created elsewhere", report.CreateSucceeded("42"), false, "", false},
		{"error", report.ActionFailed(report.OpStop, nil), true, "", false},
		{"none", report.JobActionResult{}, true, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg, ok := ComposeFeedback(tt.res, tt.rerun)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantShow, ok)
		})
	}
}

func TestFeedbackMessage_UsesRerunContext(t *testing.T) {
	t.Parallel()

	fb := Feedback{CreateSucceeded: true, CreatedJobID: "42"}

	_, ok := FeedbackMessage(New(), fb)
	assert.False(t, ok, "no re-run pending")

	s, _ := RunTest(New(), report.Job{ID: "j1", TestID: "t1"})
	msg, ok := FeedbackMessage(s, fb)
	assert.True(t, ok)
	assert.Equal(t, "Job created successfully: 42", msg)
}

func TestFeedbackMessage_HiddenWithoutSuccessFlags(t *testing.T) {
	t.Parallel()

	s, _ := RunTest(New(), report.Job{ID: "j1"})
	_, ok := FeedbackMessage(s, Feedback{StopError: "nope"})
	assert.False(t, ok)
	assert.False(t, FeedbackVisible(Feedback{CreateError: "x"}))
	assert.True(t, FeedbackVisible(Feedback{StopSucceeded: true}))
	assert.True(t, FeedbackVisible(Feedback{CreateSucceeded: true}))
}

func TestFeedback_ResultPrecedence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, report.ActionStopSucceeded, Feedback{StopSucceeded: true, CreateSucceeded: true}.Result().Kind)
	assert.Equal(t, report.ActionCreateSucceeded, Feedback{CreateSucceeded: true, StopError: "x"}.Result().Kind)

	res := Feedback{CreateError: "quota"}.Result()
	assert.Equal(t, report.ActionError, res.Kind)
	assert.Equal(t, report.OpCreate, res.Op)
	assert.Equal(t, "quota", res.Reason)

	assert.Equal(t, report.ActionNone, Feedback{}.Result().Kind)
}

func TestDismissFeedback_ClearsFlagsAndRerun(t *testing.T) {
	t.Parallel()

	for _, fb := range []Feedback{
		{StopSucceeded: true},
		{CreateSucceeded: true, CreatedJobID: "7"},
	} {
		s, _ := RunTest(New(), report.Job{ID: "j1"})
		s, cmds := DismissFeedback(s)

		_, pending := s.Rerun()
		assert.False(t, pending, "%+v", fb)
		assert.Equal(t, []CommandKind{
			CmdFetchReports,
			CmdClearStopSuccess,
			CmdClearStopError,
			CmdClearCreateSuccess,
		}, Kinds(cmds))
	}
}

func TestComposeAlert(t *testing.T) {
	t.Parallel()

	msg, ok := ComposeAlert(Feedback{StopError: "job not running"})
	assert.True(t, ok)
	assert.Equal(t, "Failed to stop job: job not running", msg)

	msg, _ = ComposeAlert(Feedback{CreateError: "invalid test_id"})
	assert.Equal(t, "Failed to create job: invalid test_id", msg)

	msg, _ = ComposeAlert(Feedback{ReportsError: "connection refused"})
	assert.Equal(t, "Failed to load reports: connection refused", msg)

	_, ok = ComposeAlert(Feedback{StopSucceeded: true})
	assert.False(t, ok)
}

func TestDismissAlert_ClearsErrorFlags(t *testing.T) {
	t.Parallel()

	s, _ := RunTest(New(), report.Job{ID: "j1"})
	s, cmds := DismissAlert(s)
	_, pending := s.Rerun()
	assert.False(t, pending)
	assert.Equal(t, []CommandKind{CmdClearStopError, CmdClearCreateError, CmdClearReportsError}, Kinds(cmds))
}
