package pattern

// Sparkline represents a word-sized trend graphic using Unicode blocks.
type Sparkline struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
	Unit   string    `json:"unit,omitempty"`
}

func (s *Sparkline) Type() PatternType { return PatternTypeSparkline }
