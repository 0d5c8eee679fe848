package search

import (
	"strings"
	"testing"

	"github.com/seforimlab/libsearch/index"
)

func TestAssembleFullDocument(t *testing.T) {
	fields := map[string]interface{}{
		"text":      "cloud security frameworks require careful network design",
		"reference": "ops handbook",
		"topics":    "infrastructure",
		"title":     "Cloud Security",
		"filePath":  "/library/ops/cloud.pdf",
		"segment":   float64(12),
		"isPdf":     true,
	}

	r := assemble(index.Hit{ID: "doc-1", Score: 1.5}, fields, "security")

	if r.Score != 1.5 {
		t.Errorf("expected score 1.5, got %f", r.Score)
	}
	if r.Title != "Cloud Security" {
		t.Errorf("expected stored title, got %q", r.Title)
	}
	if r.FilePath != "/library/ops/cloud.pdf" {
		t.Errorf("unexpected filePath %q", r.FilePath)
	}
	if !r.IsPDF {
		t.Error("expected isPdf to carry through")
	}
	if r.Segment != float64(12) {
		t.Errorf("unexpected segment %v", r.Segment)
	}
	if len(r.Highlights) == 0 || !strings.Contains(r.Highlights[0], "security") {
		t.Errorf("expected highlight around the term, got %v", r.Highlights)
	}
}

func TestAssembleMissingFields(t *testing.T) {
	r := assemble(index.Hit{ID: "doc-2", Score: 0.5}, map[string]interface{}{}, "anything")

	if r.Title != "" || r.Reference != "" || r.Topics != "" || r.FilePath != "" {
		t.Error("missing fields must become empty placeholders, not errors")
	}
	if r.IsPDF {
		t.Error("missing isPdf must default to false")
	}
	if r.Segment != nil {
		t.Errorf("missing segment must be nil, got %v", r.Segment)
	}
	// No text: the fallback highlight is the (empty) text itself.
	if len(r.Highlights) != 1 || r.Highlights[0] != "" {
		t.Errorf("unexpected highlights for empty text: %v", r.Highlights)
	}
}

func TestAssembleTitleFallback(t *testing.T) {
	fields := map[string]interface{}{
		"text":     "some text",
		"filePath": "/deep/path/to/tractate.txt",
	}
	r := assemble(index.Hit{Score: 1}, fields, "text")
	if r.Title != "tractate.txt" {
		t.Errorf("expected file-name fallback, got %q", r.Title)
	}

	// Without a filePath there is nothing to fall back to.
	r = assemble(index.Hit{Score: 1}, map[string]interface{}{"text": "x y z"}, "text")
	if r.Title != "" {
		t.Errorf("expected empty title, got %q", r.Title)
	}
}

func TestAssembleSyntaxOnlyQueryFallsBack(t *testing.T) {
	text := strings.Repeat("w", 120)
	r := assemble(index.Hit{Score: 1}, map[string]interface{}{"text": text}, `"AND OR +"`)
	if len(r.Highlights) != 1 {
		t.Fatalf("expected single fallback highlight, got %d", len(r.Highlights))
	}
	want := strings.Repeat("w", 100) + "..."
	if r.Highlights[0] != want {
		t.Errorf("expected 100-rune fallback, got %q", r.Highlights[0])
	}
}

func TestFieldStringMultiValued(t *testing.T) {
	fields := map[string]interface{}{
		"topics": []interface{}{"הלכה", "מדרש"},
	}
	if got := fieldString(fields, "topics"); got != "הלכה" {
		t.Errorf("expected first value of multi-valued field, got %q", got)
	}
}

func TestFieldBoolMultiValued(t *testing.T) {
	fields := map[string]interface{}{
		"isPdf": []interface{}{true},
	}
	if !fieldBool(fields, "isPdf") {
		t.Error("expected multi-valued bool to unwrap")
	}
}
