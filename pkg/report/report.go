// Package report holds the load-test service's domain records: reports, tests, jobs and
// the outcome of job actions.
package report

import "time"

// Status values reported by the service.
const (
	StatusInitializing      = "initializing"
	StatusStarted           = "started"
	StatusInProgress        = "in_progress"
	StatusFinished          = "finished"
	StatusPartiallyFinished = "partially_finished"
	StatusFailed            = "failed"
	StatusAborted           = "aborted"
)

// Report is one test run as served by the last-reports endpoint. Values are never
// mutated after decoding.
type Report struct {
	ReportID        string     `json:"report_id"`
	JobID           string     `json:"job_id"`
	TestID          string     `json:"test_id"`
	TestName        string     `json:"test_name"`
	TestType        string     `json:"test_type,omitempty"`
	JobType         string     `json:"job_type,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Duration        int        `json:"duration"` // seconds
	Status          string     `json:"status"`
	ArrivalRate     int        `json:"arrival_rate"`
	RampTo          *int       `json:"ramp_to,omitempty"`
	LastSuccessRate float64    `json:"last_success_rate"`
	LastRPS         float64    `json:"last_rps"`
	Parallelism     int        `json:"parallelism"`
	MaxVirtualUsers int        `json:"max_virtual_users,omitempty"`
	Environment     string     `json:"environment,omitempty"`
	Notes           string     `json:"notes"`
	GrafanaReport   string     `json:"grafana_report,omitempty"`
	Emails          []string   `json:"emails,omitempty"`
	Webhooks        []string   `json:"webhooks,omitempty"`
}

// Running reports whether the run can still be stopped.
func (r Report) Running() bool {
	switch r.Status {
	case StatusInitializing, StatusStarted, StatusInProgress:
		return true
	default:
		return false
	}
}

// Test is a test definition. The reports view only passes these through.
type Test struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	UpdatedAt   time.Time `json:"updated_at"`
}
