package tui

import "github.com/dkoosis/reportdash/pkg/reportlist"

// RefreshMsg asks the model for a periodic reload. The refresher sends it
// through tea.Program.Send; the first one activates the view.
type RefreshMsg struct{}

// outcomesMsg carries the results of one dispatched command list, in order.
type outcomesMsg []reportlist.Outcome

// feedbackExpiredMsg auto-hides the success bar opened as number seq.
type feedbackExpiredMsg struct{ seq int }
