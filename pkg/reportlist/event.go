package reportlist

import "github.com/dkoosis/reportdash/pkg/report"

// Event is an operator intent or lifecycle signal accepted by Reduce.
type Event interface{ isEvent() }

type (
	Activated         struct{}
	Deactivated       struct{}
	Ticked            struct{}
	DataRefreshed     struct{ Reports []report.Report }
	SortRequested     struct{ Field string }
	SearchRequested   struct{ Term string }
	ViewRequested     struct{ ReportID string }
	RawViewRequested  struct{ ReportID string }
	ViewClosed        struct{}
	RunRequested      struct{ Job report.Job }
	StopRequested     struct{ Report report.Report }
	FeedbackDismissed struct{}
	AlertDismissed    struct{}
)

func (Activated) isEvent()         {}
func (Deactivated) isEvent()       {}
func (Ticked) isEvent()            {}
func (DataRefreshed) isEvent()     {}
func (SortRequested) isEvent()     {}
func (SearchRequested) isEvent()   {}
func (ViewRequested) isEvent()     {}
func (RawViewRequested) isEvent()  {}
func (ViewClosed) isEvent()        {}
func (RunRequested) isEvent()      {}
func (StopRequested) isEvent()     {}
func (FeedbackDismissed) isEvent() {}
func (AlertDismissed) isEvent()    {}

// Reduce applies ev to s.
func Reduce(s State, ev Event) (State, []Command) {
	switch ev := ev.(type) {
	case Activated:
		return Activate(s)
	case Deactivated:
		return Deactivate(s)
	case Ticked:
		return Tick(s)
	case DataRefreshed:
		return Refreshed(s, ev.Reports), nil
	case SortRequested:
		return Sort(s, ev.Field), nil
	case SearchRequested:
		return Search(s, ev.Term), nil
	case ViewRequested:
		return ViewReport(s, ev.ReportID)
	case RawViewRequested:
		return ViewRaw(s, ev.ReportID), nil
	case ViewClosed:
		return CloseView(s)
	case RunRequested:
		return RunTest(s, ev.Job)
	case StopRequested:
		return Stop(s, ev.Report)
	case FeedbackDismissed:
		return DismissFeedback(s)
	case AlertDismissed:
		return DismissAlert(s)
	default:
		return s, nil
	}
}
