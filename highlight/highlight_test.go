package highlight

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTermsStripsSyntax(t *testing.T) {
	terms := Terms(`+reference:בראשית +text:"הבל"^2.0 +(דמי OR דמים) -הבלים`)
	want := []string{"reference", "בראשית", "text", "הבל", "2.0", "דמי", "דמים", "הבלים"}
	if len(terms) != len(want) {
		t.Fatalf("expected %d terms, got %d: %v", len(want), len(terms), terms)
	}
	for i, term := range terms {
		if term != want[i] {
			t.Errorf("term %d: expected %q, got %q", i, want[i], term)
		}
	}
}

func TestTermsDropsShortResidue(t *testing.T) {
	if terms := Terms("a AND b"); terms != nil {
		t.Errorf("expected no usable terms from %q, got %v", "a AND b", terms)
	}
	if terms := Terms(`"AND OR +"`); terms != nil {
		t.Errorf("expected no usable terms, got %v", terms)
	}
}

func TestExtractFallbackShortText(t *testing.T) {
	text := "short document"
	got := Extract(`"AND OR +"`, text)
	if len(got) != 1 {
		t.Fatalf("expected 1 fallback highlight, got %d", len(got))
	}
	if got[0] != text {
		t.Errorf("short text fallback must not truncate: %q", got[0])
	}
}

func TestExtractFallbackLongText(t *testing.T) {
	text := strings.Repeat("x", 150)
	got := Extract("a b", text)
	if len(got) != 1 {
		t.Fatalf("expected 1 fallback highlight, got %d", len(got))
	}
	want := strings.Repeat("x", 100) + "..."
	if got[0] != want {
		t.Errorf("expected 100-rune truncation with ellipsis, got %q", got[0])
	}
}

func TestExtractFallbackWhenNoMatch(t *testing.T) {
	got := Extract("zebra", "a document that never mentions the term")
	if len(got) != 1 {
		t.Fatalf("expected 1 fallback highlight, got %d", len(got))
	}
	if got[0] != "a document that never mentions the term" {
		t.Errorf("unexpected fallback %q", got[0])
	}
}

func TestExtractWindowAndEllipses(t *testing.T) {
	pad := strings.Repeat("a", 60)
	text := pad + " needle " + pad
	got := Extract("needle", text)
	if len(got) != 1 {
		t.Fatalf("expected 1 highlight, got %d", len(got))
	}
	h := got[0]
	if !strings.HasPrefix(h, "...") || !strings.HasSuffix(h, "...") {
		t.Errorf("interior match must be ellipsized on both sides: %q", h)
	}
	core := strings.TrimSuffix(strings.TrimPrefix(h, "..."), "...")
	// 50 runes of context each side around the 6-rune match.
	if utf8.RuneCountInString(core) != 106 {
		t.Errorf("expected 106-rune window, got %d", utf8.RuneCountInString(core))
	}
	if !strings.Contains(core, "needle") {
		t.Errorf("window must contain the match: %q", core)
	}
}

func TestExtractMatchAtTextStart(t *testing.T) {
	text := "needle " + strings.Repeat("b", 100)
	got := Extract("needle", text)
	if len(got) != 1 {
		t.Fatalf("expected 1 highlight, got %d", len(got))
	}
	if strings.HasPrefix(got[0], "...") {
		t.Errorf("window starting at 0 must not have a leading ellipsis: %q", got[0])
	}
	if !strings.HasSuffix(got[0], "...") {
		t.Errorf("clipped window must have a trailing ellipsis: %q", got[0])
	}
}

func TestExtractMatchAtTextEnd(t *testing.T) {
	text := strings.Repeat("b", 100) + " needle"
	got := Extract("needle", text)
	if len(got) != 1 {
		t.Fatalf("expected 1 highlight, got %d", len(got))
	}
	if !strings.HasPrefix(got[0], "...") {
		t.Errorf("clipped window must have a leading ellipsis: %q", got[0])
	}
	if strings.HasSuffix(got[0], "...") {
		t.Errorf("window ending at text end must not have a trailing ellipsis: %q", got[0])
	}
}

func TestExtractTinyTextNoEllipses(t *testing.T) {
	got := Extract("needle", "the needle here")
	if len(got) != 1 {
		t.Fatalf("expected 1 highlight, got %d", len(got))
	}
	if got[0] != "the needle here" {
		t.Errorf("whole-text window must carry no ellipses: %q", got[0])
	}
}

func TestExtractCaseInsensitive(t *testing.T) {
	got := Extract("needle", "one NEEDLE here")
	if len(got) != 1 {
		t.Fatalf("expected 1 highlight, got %d", len(got))
	}
	if !strings.Contains(got[0], "NEEDLE") {
		t.Errorf("expected case-insensitive match: %q", got[0])
	}
}

func TestExtractOneHighlightPerMatch(t *testing.T) {
	text := "needle one needle two needle three"
	got := Extract("needle", text)
	if len(got) != 3 {
		t.Fatalf("expected 3 highlights (one per match, overlaps kept), got %d", len(got))
	}
}

func TestExtractHebrew(t *testing.T) {
	got := Extract("text:שלום", "שלום עולם")
	if len(got) != 1 {
		t.Fatalf("expected 1 highlight, got %d", len(got))
	}
	if !strings.Contains(got[0], "שלום") {
		t.Errorf("expected highlight to contain the Hebrew term: %q", got[0])
	}
}

func TestExtractHebrewWindowIsRuneSafe(t *testing.T) {
	pad := strings.Repeat("א", 80)
	text := pad + " שלום " + pad
	got := Extract("שלום", text)
	if len(got) != 1 {
		t.Fatalf("expected 1 highlight, got %d", len(got))
	}
	if !utf8.ValidString(got[0]) {
		t.Errorf("highlight split a rune: %q", got[0])
	}
	core := strings.TrimSuffix(strings.TrimPrefix(got[0], "..."), "...")
	if utf8.RuneCountInString(core) != 104 {
		t.Errorf("expected 104-rune window, got %d", utf8.RuneCountInString(core))
	}
}

func TestExtractRegexMetaTermsMatchLiterally(t *testing.T) {
	got := Extract("3.14", "the value 3.14 appears here plus padding text")
	if len(got) != 1 {
		t.Fatalf("expected 1 highlight, got %d", len(got))
	}
	if !strings.Contains(got[0], "3.14") {
		t.Errorf("expected literal match of escaped term: %q", got[0])
	}
	// The dot must not match arbitrary characters once escaped.
	got = Extract("3.14", "the value 3x14 appears here")
	if got[0] != "the value 3x14 appears here" {
		t.Errorf("escaped term must not regex-match %q", "3x14")
	}
}
