package search

import (
	"path/filepath"

	"github.com/seforimlab/libsearch/highlight"
	"github.com/seforimlab/libsearch/index"
)

// SearchResult is one assembled hit: the score, the document's stored
// fields, and highlighted snippets around the query terms. Results are
// immutable once assembled and owned by the caller.
type SearchResult struct {
	Score      float64  `json:"score"`
	Title      string   `json:"title"`
	Reference  string   `json:"reference"`
	Topics     string   `json:"topics"`
	FilePath   string   `json:"file_path"`
	Segment    any      `json:"segment"`
	IsPDF      bool     `json:"is_pdf"`
	Text       string   `json:"text"`
	Highlights []string `json:"highlights"`
}

// assemble builds a SearchResult from a hit and its fetched fields.
// Missing fields become zero-value placeholders, never errors. The
// title falls back to the file name portion of filePath when the
// document has none.
func assemble(hit index.Hit, fields map[string]interface{}, rawQuery string) SearchResult {
	text := fieldString(fields, "text")
	filePath := fieldString(fields, "filePath")

	title := fieldString(fields, "title")
	if title == "" && filePath != "" {
		title = filepath.Base(filePath)
	}

	return SearchResult{
		Score:      hit.Score,
		Title:      title,
		Reference:  fieldString(fields, "reference"),
		Topics:     fieldString(fields, "topics"),
		FilePath:   filePath,
		Segment:    fields["segment"],
		IsPDF:      fieldBool(fields, "isPdf"),
		Text:       text,
		Highlights: highlight.Extract(rawQuery, text),
	}
}

// fieldString extracts a stored field as a string. bleve returns
// multi-valued fields as a slice; the first value wins, matching the
// single-value document shape the library indexes.
func fieldString(fields map[string]interface{}, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case []interface{}:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

func fieldBool(fields map[string]interface{}, key string) bool {
	switch v := fields[key].(type) {
	case bool:
		return v
	case []interface{}:
		if len(v) > 0 {
			if b, ok := v[0].(bool); ok {
				return b
			}
		}
	}
	return false
}
