package store

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dkoosis/reportdash/pkg/report"
	"github.com/dkoosis/reportdash/pkg/reportlist"
)

// Store holds the last fetched reports and tests, the selected report and the
// job-action flags. It is safe for concurrent use; fetches run off the UI loop.
type Store struct {
	client *Client
	log    zerolog.Logger

	mu           sync.RWMutex
	reports      []report.Report
	tests        []report.Test
	selected     *report.Report
	reportsErr   error
	stopSuccess  bool
	stopErr      error
	created      *report.Job
	createErr    error
	reportsEpoch uint64
}

// New wraps client in a Store.
func New(client *Client, log zerolog.Logger) *Store {
	return &Store{client: client, log: log}
}

var _ reportlist.Store = (*Store)(nil)

// FetchAllReports replaces the report list with the service's latest. On failure the
// previous list is kept and the error flag is set.
func (s *Store) FetchAllReports(ctx context.Context) ([]report.Report, error) {
	rs, err := s.client.LastReports(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.reportsErr = err
		s.log.Warn().Err(err).Msg("fetch reports failed")
		return nil, err
	}
	s.reports = rs
	s.reportsEpoch++
	s.log.Debug().Int("count", len(rs)).Uint64("epoch", s.reportsEpoch).Msg("reports fetched")
	return slices.Clone(rs), nil
}

// FetchTests refreshes the test list.
func (s *Store) FetchTests(ctx context.Context) ([]report.Test, error) {
	ts, err := s.client.Tests(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("fetch tests failed")
		return nil, err
	}
	s.mu.Lock()
	s.tests = ts
	s.mu.Unlock()
	return slices.Clone(ts), nil
}

// FetchReport loads one report and makes it the selected report.
func (s *Store) FetchReport(ctx context.Context, testID, reportID string) (report.Report, error) {
	r, err := s.client.Report(ctx, testID, reportID)
	if err != nil {
		s.log.Warn().Err(err).Str("report_id", reportID).Msg("fetch report failed")
		return report.Report{}, err
	}
	s.mu.Lock()
	s.selected = &r
	s.mu.Unlock()
	return r, nil
}

// CreateJob creates a job and records the outcome.
func (s *Store) CreateJob(ctx context.Context, req report.JobRequest) report.JobActionResult {
	job, err := s.client.CreateJob(ctx, req)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.createErr = err
		s.log.Error().Err(err).Str("test_id", req.TestID).Msg("create job failed")
		return report.ActionFailed(report.OpCreate, err)
	}
	s.created = &job
	s.createErr = nil
	s.log.Info().Str("job_id", job.ID).Str("test_id", req.TestID).Msg("job created")
	return report.CreateSucceeded(job.ID)
}

// StopJob stops a run and records the outcome.
func (s *Store) StopJob(ctx context.Context, jobID, reportID string) report.JobActionResult {
	err := s.client.StopRun(ctx, jobID, reportID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.stopErr = err
		s.log.Error().Err(err).Str("job_id", jobID).Str("report_id", reportID).Msg("stop job failed")
		return report.ActionFailed(report.OpStop, err)
	}
	s.stopSuccess = true
	s.stopErr = nil
	s.log.Info().Str("job_id", jobID).Str("report_id", reportID).Msg("job stopped")
	return report.StopSucceeded()
}

// Job fetches a job definition; used to re-run by job id.
func (s *Store) Job(ctx context.Context, jobID string) (report.Job, error) {
	return s.client.Job(ctx, jobID)
}

func (s *Store) ClearStopSuccess()    { s.set(func() { s.stopSuccess = false }) }
func (s *Store) ClearStopError()      { s.set(func() { s.stopErr = nil }) }
func (s *Store) ClearCreateSuccess()  { s.set(func() { s.created = nil }) }
func (s *Store) ClearCreateError()    { s.set(func() { s.createErr = nil }) }
func (s *Store) ClearReportsError()   { s.set(func() { s.reportsErr = nil }) }
func (s *Store) ClearSelectedReport() { s.set(func() { s.selected = nil }) }

func (s *Store) set(fn func()) {
	s.mu.Lock()
	fn()
	s.mu.Unlock()
}

// Reports returns the last fetched reports.
func (s *Store) Reports() []report.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.reports)
}

// Tests returns the last fetched tests.
func (s *Store) Tests() []report.Test {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tests)
}

// Selected returns the selected report, if one is loaded.
func (s *Store) Selected() (report.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return report.Report{}, false
	}
	return *s.selected, true
}

// Feedback snapshots the flags read by the feedback composer.
func (s *Store) Feedback() reportlist.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fb := reportlist.Feedback{
		StopSucceeded:   s.stopSuccess,
		CreateSucceeded: s.created != nil,
		StopError:       errString(s.stopErr),
		CreateError:     errString(s.createErr),
		ReportsError:    errString(s.reportsErr),
	}
	if s.created != nil {
		fb.CreatedJobID = s.created.ID
	}
	return fb
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
