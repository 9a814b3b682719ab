package reportlist

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/dkoosis/reportdash/pkg/report"
)

// Sortable fields, named as in the service's JSON.
const (
	FieldReportID        = "report_id"
	FieldJobID           = "job_id"
	FieldTestName        = "test_name"
	FieldStartTime       = "start_time"
	FieldEndTime         = "end_time"
	FieldDuration        = "duration"
	FieldStatus          = "status"
	FieldArrivalRate     = "arrival_rate"
	FieldRampTo          = "ramp_to"
	FieldLastSuccessRate = "last_success_rate"
	FieldLastRPS         = "last_rps"
	FieldParallelism     = "parallelism"
	FieldNotes           = "notes"
)

type comparator func(a, b report.Report) int

var comparators = map[string]comparator{
	FieldReportID:        func(a, b report.Report) int { return strings.Compare(a.ReportID, b.ReportID) },
	FieldJobID:           func(a, b report.Report) int { return strings.Compare(a.JobID, b.JobID) },
	FieldTestName:        func(a, b report.Report) int { return strings.Compare(a.TestName, b.TestName) },
	FieldStartTime:       func(a, b report.Report) int { return a.StartTime.Compare(b.StartTime) },
	FieldEndTime:         func(a, b report.Report) int { return compareOptionalTime(a.EndTime, b.EndTime) },
	FieldDuration:        func(a, b report.Report) int { return cmp.Compare(a.Duration, b.Duration) },
	FieldStatus:          func(a, b report.Report) int { return strings.Compare(a.Status, b.Status) },
	FieldArrivalRate:     func(a, b report.Report) int { return cmp.Compare(a.ArrivalRate, b.ArrivalRate) },
	FieldRampTo:          func(a, b report.Report) int { return compareOptionalInt(a.RampTo, b.RampTo) },
	FieldLastSuccessRate: func(a, b report.Report) int { return cmp.Compare(a.LastSuccessRate, b.LastSuccessRate) },
	FieldLastRPS:         func(a, b report.Report) int { return cmp.Compare(a.LastRPS, b.LastRPS) },
	FieldParallelism:     func(a, b report.Report) int { return cmp.Compare(a.Parallelism, b.Parallelism) },
	FieldNotes:           func(a, b report.Report) int { return strings.Compare(a.Notes, b.Notes) },
}

// IsSortable reports whether field can be passed to Sort.
func IsSortable(field string) bool {
	_, ok := comparators[field]
	return ok
}

// sortReports sorts rs in place. The sort is stable, so equal keys keep their
// relative order in both directions.
func sortReports(rs []report.Report, key SortKey) {
	compare := comparators[key.Field]
	if compare == nil {
		return
	}
	slices.SortStableFunc(rs, func(a, b report.Report) int {
		if key.Dir == Descending {
			return compare(b, a)
		}
		return compare(a, b)
	})
}

// Absent values order before present ones.
func compareOptionalTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}

func compareOptionalInt(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}
