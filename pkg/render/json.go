package render

import (
	"bytes"
	"encoding/json"

	"github.com/dkoosis/reportdash/pkg/pattern"
)

const jsonSchema = "reportdash.list/v1"

// JSON renders the list as a single document for scripts. The table scope
// is lifted to the top level so consumers need not search the patterns.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

type jsonDocument struct {
	Schema   string        `json:"schema"`
	Shown    int           `json:"shown"`
	Total    int           `json:"total"`
	Sort     string        `json:"sort,omitempty"`
	Search   string        `json:"search,omitempty"`
	Patterns []jsonPattern `json:"patterns"`
}

type jsonPattern struct {
	Type pattern.PatternType `json:"type"`
	Data pattern.Pattern     `json:"data"`
}

// Render formats all patterns as indented JSON.
func (j *JSON) Render(patterns []pattern.Pattern) string {
	doc := jsonDocument{
		Schema:   jsonSchema,
		Patterns: make([]jsonPattern, 0, len(patterns)),
	}
	for _, p := range patterns {
		if t, ok := p.(*pattern.ReportTable); ok {
			doc.Shown = len(t.Rows)
			doc.Total = t.Total
			doc.Sort = t.Sort
			doc.Search = t.Search
		}
		doc.Patterns = append(doc.Patterns, jsonPattern{Type: p.Type(), Data: p})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON) + "\n"
	}
	return buf.String()
}
