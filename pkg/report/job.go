package report

// Job types accepted by the service.
const (
	JobTypeLoad       = "load_test"
	JobTypeFunctional = "functional_test"
)

// Job is a runnable test definition. A job with a CronExpression recurs.
type Job struct {
	ID              string   `json:"id,omitempty"`
	TestID          string   `json:"test_id"`
	Type            string   `json:"type"`
	ArrivalRate     int      `json:"arrival_rate,omitempty"`
	Duration        int      `json:"duration"`
	RampTo          *int     `json:"ramp_to,omitempty"`
	Parallelism     int      `json:"parallelism,omitempty"`
	MaxVirtualUsers int      `json:"max_virtual_users,omitempty"`
	Environment     string   `json:"environment,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	CronExpression  string   `json:"cron_expression,omitempty"`
	RunImmediately  bool     `json:"run_immediately,omitempty"`
	Emails          []string `json:"emails,omitempty"`
	Webhooks        []string `json:"webhooks,omitempty"`
	Debug           string   `json:"debug,omitempty"`
	Enabled         *bool    `json:"enabled,omitempty"`
}

// JobRequest is the body of a create-job call. Zero-valued optional fields are
// left out of the JSON so the service applies its own defaults.
type JobRequest struct {
	TestID          string   `json:"test_id"`
	Type            string   `json:"type"`
	ArrivalRate     int      `json:"arrival_rate,omitempty"`
	Duration        int      `json:"duration"`
	RampTo          *int     `json:"ramp_to,omitempty"`
	Parallelism     int      `json:"parallelism,omitempty"`
	MaxVirtualUsers int      `json:"max_virtual_users,omitempty"`
	Environment     string   `json:"environment,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	CronExpression  string   `json:"cron_expression,omitempty"`
	RunImmediately  bool     `json:"run_immediately"`
	Emails          []string `json:"emails,omitempty"`
	Webhooks        []string `json:"webhooks,omitempty"`
	Debug           string   `json:"debug,omitempty"`
	Enabled         *bool    `json:"enabled,omitempty"`
}

// NewJobRequest copies the definition fields of j into a request body.
func NewJobRequest(j Job) JobRequest {
	return JobRequest{
		TestID:          j.TestID,
		Type:            j.Type,
		ArrivalRate:     j.ArrivalRate,
		Duration:        j.Duration,
		RampTo:          copyInt(j.RampTo),
		Parallelism:     j.Parallelism,
		MaxVirtualUsers: j.MaxVirtualUsers,
		Environment:     j.Environment,
		Notes:           j.Notes,
		CronExpression:  j.CronExpression,
		RunImmediately:  j.RunImmediately,
		Emails:          append([]string(nil), j.Emails...),
		Webhooks:        append([]string(nil), j.Webhooks...),
		Debug:           j.Debug,
		Enabled:         j.Enabled,
	}
}

// JobFromReport rebuilds the job definition behind a report row, so the row can be
// re-run without fetching the job first.
func JobFromReport(r Report) Job {
	jobType := r.JobType
	if jobType == "" {
		jobType = JobTypeLoad
	}
	return Job{
		ID:              r.JobID,
		TestID:          r.TestID,
		Type:            jobType,
		ArrivalRate:     r.ArrivalRate,
		Duration:        r.Duration,
		RampTo:          copyInt(r.RampTo),
		Parallelism:     r.Parallelism,
		MaxVirtualUsers: r.MaxVirtualUsers,
		Environment:     r.Environment,
		Notes:           r.Notes,
		Emails:          append([]string(nil), r.Emails...),
		Webhooks:        append([]string(nil), r.Webhooks...),
	}
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
