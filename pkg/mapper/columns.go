package mapper

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dkoosis/reportdash/pkg/report"
	"github.com/dkoosis/reportdash/pkg/reportlist"
)

// Column describes one report column: its header, the sort field behind it and
// how a cell is formatted.
type Column struct {
	Title string
	Field string
	Width int
	Cell  func(report.Report) string
}

// TimeLayout is used for start and end times.
const TimeLayout = "2006-01-02 15:04"

// Columns is the report grid, left to right.
var Columns = []Column{
	{Title: "Test", Field: reportlist.FieldTestName, Width: 28, Cell: func(r report.Report) string { return r.TestName }},
	{Title: "Status", Field: reportlist.FieldStatus, Width: 18, Cell: func(r report.Report) string { return r.Status }},
	{Title: "Start", Field: reportlist.FieldStartTime, Width: 16, Cell: func(r report.Report) string { return formatTime(&r.StartTime) }},
	{Title: "End", Field: reportlist.FieldEndTime, Width: 16, Cell: func(r report.Report) string { return formatTime(r.EndTime) }},
	{Title: "Duration", Field: reportlist.FieldDuration, Width: 9, Cell: func(r report.Report) string { return FormatSeconds(r.Duration) }},
	{Title: "Rate", Field: reportlist.FieldArrivalRate, Width: 10, Cell: FormatRate},
	{Title: "RPS", Field: reportlist.FieldLastRPS, Width: 8, Cell: func(r report.Report) string { return strconv.FormatFloat(r.LastRPS, 'f', 1, 64) }},
	{Title: "Success", Field: reportlist.FieldLastSuccessRate, Width: 8, Cell: func(r report.Report) string { return fmt.Sprintf("%.1f%%", r.LastSuccessRate) }},
	{Title: "Par", Field: reportlist.FieldParallelism, Width: 4, Cell: func(r report.Report) string { return strconv.Itoa(r.Parallelism) }},
	{Title: "Notes", Field: reportlist.FieldNotes, Width: 24, Cell: func(r report.Report) string { return r.Notes }},
}

// Headers returns the column titles.
func Headers() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Title
	}
	return out
}

// Cells formats r for every column.
func Cells(r report.Report) []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Cell(r)
	}
	return out
}

// FormatSeconds renders a duration in whole seconds, e.g. "5m0s".
func FormatSeconds(s int) string {
	return (time.Duration(s) * time.Second).String()
}

// FormatRate renders the arrival rate, with the ramp target when set.
func FormatRate(r report.Report) string {
	if r.RampTo != nil {
		return fmt.Sprintf("%d→%d", r.ArrivalRate, *r.RampTo)
	}
	return strconv.Itoa(r.ArrivalRate)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(TimeLayout)
}

// StatusKind maps a run status to a styling kind.
func StatusKind(status string) string {
	switch status {
	case report.StatusFinished:
		return kindSuccess
	case report.StatusFailed:
		return kindError
	case report.StatusAborted, report.StatusPartiallyFinished:
		return kindWarning
	default:
		return kindInfo
	}
}
