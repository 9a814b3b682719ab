package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/reportdash/pkg/pattern"
	"github.com/dkoosis/reportdash/pkg/report"
)

func sampleReports() []report.Report {
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	ramp := 50
	return []report.Report{
		{ReportID: "r2", TestName: "checkout", Status: report.StatusFailed, StartTime: t0.Add(time.Hour), Duration: 300, ArrivalRate: 10, RampTo: &ramp, LastRPS: 40},
		{ReportID: "r1", TestName: "login", Status: report.StatusFinished, StartTime: t0, Duration: 60, ArrivalRate: 5, LastRPS: 12.5, LastSuccessRate: 99.5},
		{ReportID: "r3", TestName: "search", Status: report.StatusFinished, StartTime: t0.Add(2 * time.Hour), LastRPS: 20},
	}
}

func TestFromReports_SummaryCountsStatuses(t *testing.T) {
	t.Parallel()
	patterns := FromReports(View{Reports: sampleReports(), Total: 3})
	require.NotEmpty(t, patterns)

	sum, ok := patterns[0].(*pattern.Summary)
	require.True(t, ok, "first pattern should be Summary, got %T", patterns[0])
	assert.Equal(t, "REPORTS: 3 shown", sum.Label)
	require.Len(t, sum.Metrics, 2)
	assert.Equal(t, pattern.SummaryItem{Label: "failed", Value: "1", Kind: "error"}, sum.Metrics[0])
	assert.Equal(t, pattern.SummaryItem{Label: "finished", Value: "2", Kind: "success"}, sum.Metrics[1])
}

func TestFromReports_TableKeepsDisplayOrder(t *testing.T) {
	t.Parallel()
	patterns := FromReports(View{Reports: sampleReports(), Total: 5, Sort: "last_rps-", Search: "o"})

	table, ok := patterns[1].(*pattern.ReportTable)
	require.True(t, ok)
	assert.Equal(t, "last_rps-", table.Sort)
	assert.Equal(t, "o", table.Search)
	assert.Equal(t, 5, table.Total)
	assert.Equal(t, Headers(), table.Columns)

	ids := make([]string, len(table.Rows))
	for i, r := range table.Rows {
		ids[i] = r.ReportID
		assert.Len(t, r.Cells, len(Columns))
	}
	assert.Equal(t, []string{"r2", "r1", "r3"}, ids)
	assert.Equal(t, "10→50", table.Rows[0].Cells[5])
	assert.Equal(t, "5m0s", table.Rows[0].Cells[4])
	assert.Equal(t, "-", table.Rows[0].Cells[3], "missing end time")

	sum := patterns[0].(*pattern.Summary)
	assert.Equal(t, "REPORTS: 3 of 5 shown", sum.Label)
}

func TestFromReports_SparklineInStartOrder(t *testing.T) {
	t.Parallel()
	patterns := FromReports(View{Reports: sampleReports(), Total: 3})
	require.Len(t, patterns, 3)

	spark, ok := patterns[2].(*pattern.Sparkline)
	require.True(t, ok)
	assert.Equal(t, []float64{12.5, 40, 20}, spark.Values)
}

func TestFromReports_EmptyView(t *testing.T) {
	t.Parallel()
	patterns := FromReports(View{})
	require.Len(t, patterns, 2)
	table := patterns[1].(*pattern.ReportTable)
	assert.Empty(t, table.Rows)
	assert.NotNil(t, table.Rows)
}

func TestStatusKind(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "success", StatusKind(report.StatusFinished))
	assert.Equal(t, "error", StatusKind(report.StatusFailed))
	assert.Equal(t, "warning", StatusKind(report.StatusAborted))
	assert.Equal(t, "info", StatusKind(report.StatusInProgress))
}
