// Package highlight derives display snippets from a raw query and a
// document's text.
//
// The extraction is deliberately tokenizer-agnostic: it works on the
// literal terms left after stripping query syntax, independent of how
// the index analyzed or stemmed the document. Overlapping match
// windows are emitted as-is, one highlight per match, without merging
// or deduplication.
package highlight

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// contextRunes is the window extension on each side of a match.
	contextRunes = 50
	// fallbackRunes is the truncation length when no term matches.
	fallbackRunes = 100
	ellipsis      = "..."
)

// syntaxPattern strips query syntax down to a bag of literal terms:
// field colons, grouping characters, quote/boost/slop/wildcard
// markers, escape backslashes, the boolean keywords as whole words,
// and the +/- prefixes all become spaces.
var syntaxPattern = regexp.MustCompile(`[:"'()\[\]{}^~*?\\]|\b(?:AND|OR|NOT|TO|IN)\b|[-+]`)

// Terms returns the literal query terms used for highlighting: the
// residue of syntax stripping, minus any term of one rune or less.
func Terms(rawQuery string) []string {
	stripped := syntaxPattern.ReplaceAllString(rawQuery, " ")

	var terms []string
	for _, term := range strings.Fields(stripped) {
		if utf8.RuneCountInString(term) > 1 {
			terms = append(terms, term)
		}
	}
	return terms
}

// Extract returns one highlight per non-overlapping case-insensitive
// occurrence of any literal query term in text. Each highlight is a
// window of up to 50 runes of context on both sides of the match, with
// an ellipsis marker on every edge that does not reach the text
// boundary. When the query yields no usable terms, or no term occurs
// in the text, the single fallback highlight is the first 100 runes of
// the text (ellipsis-suffixed if truncated).
func Extract(rawQuery, text string) []string {
	terms := Terms(rawQuery)
	if len(terms) == 0 {
		return []string{truncate(text)}
	}

	escaped := make([]string, len(terms))
	for i, term := range terms {
		escaped[i] = regexp.QuoteMeta(term)
	}
	pattern, err := regexp.Compile("(?i)" + strings.Join(escaped, "|"))
	if err != nil {
		return []string{truncate(text)}
	}

	matches := pattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []string{truncate(text)}
	}

	runes := []rune(text)
	highlights := make([]string, 0, len(matches))
	for _, m := range matches {
		// Match offsets are in bytes; windows are clamped in runes so
		// multi-byte scripts never get split mid-character.
		start := utf8.RuneCountInString(text[:m[0]])
		end := start + utf8.RuneCountInString(text[m[0]:m[1]])

		winStart := start - contextRunes
		if winStart < 0 {
			winStart = 0
		}
		winEnd := end + contextRunes
		if winEnd > len(runes) {
			winEnd = len(runes)
		}

		h := string(runes[winStart:winEnd])
		if winStart > 0 {
			h = ellipsis + h
		}
		if winEnd < len(runes) {
			h = h + ellipsis
		}
		highlights = append(highlights, h)
	}
	return highlights
}

func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= fallbackRunes {
		return text
	}
	return string(runes[:fallbackRunes]) + ellipsis
}
