package pattern

// ReportTable is the derived report view: rows in display order plus the sort
// and search that produced them.
type ReportTable struct {
	Label   string      `json:"label"`
	Sort    string      `json:"sort,omitempty"` // e.g. "last_rps-"
	Search  string      `json:"search,omitempty"`
	Total   int         `json:"total"` // rows before filtering
	Columns []string    `json:"columns"`
	Rows    []ReportRow `json:"rows"`
}

// ReportRow is one report, pre-formatted per column.
type ReportRow struct {
	ReportID string   `json:"report_id"`
	Kind     string   `json:"kind"` // success, error, warning, info
	Cells    []string `json:"cells"`
}

func (t *ReportTable) Type() PatternType { return PatternTypeReportTable }
