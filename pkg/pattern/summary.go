package pattern

// Summary represents high-level counts, e.g. reports per status.
type Summary struct {
	Label   string        `json:"label"`
	Metrics []SummaryItem `json:"metrics"`
}

// SummaryItem is a single metric in a summary.
type SummaryItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Kind  string `json:"kind"` // success, error, warning, info
}

func (s *Summary) Type() PatternType { return PatternTypeSummary }
