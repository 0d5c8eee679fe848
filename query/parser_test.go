package query

import (
	"testing"

	"github.com/blevesearch/bleve/v2/search/query"
)

func TestParseStrictBasicTerm(t *testing.T) {
	q, dropped, err := Parse("שלום", ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if dropped != nil {
		t.Errorf("strict mode should not report dropped fragments, got %v", dropped)
	}
	mq, ok := q.(*query.MatchQuery)
	if !ok {
		t.Fatalf("expected *query.MatchQuery, got %T", q)
	}
	if mq.Match != "שלום" {
		t.Errorf("expected match text שלום, got %q", mq.Match)
	}
}

func TestParseFieldScopedTerm(t *testing.T) {
	q, _, err := Parse("text:שלום", ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	mq, ok := q.(*query.MatchQuery)
	if !ok {
		t.Fatalf("expected *query.MatchQuery, got %T", q)
	}
	if mq.Field() != "text" {
		t.Errorf("expected field text, got %q", mq.Field())
	}
}

func TestParseMatchAll(t *testing.T) {
	q, _, err := Parse("*", ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, ok := q.(*query.MatchAllQuery); !ok {
		t.Fatalf("expected *query.MatchAllQuery, got %T", q)
	}
}

func TestParseWildcardTerm(t *testing.T) {
	q, _, err := Parse("sec?rity", ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	wq, ok := q.(*query.WildcardQuery)
	if !ok {
		t.Fatalf("expected *query.WildcardQuery, got %T", q)
	}
	if wq.Wildcard != "sec?rity" {
		t.Errorf("expected wildcard sec?rity, got %q", wq.Wildcard)
	}
}

func TestParseWildcardLowercased(t *testing.T) {
	q, _, err := Parse("Cloud*", ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	wq, ok := q.(*query.WildcardQuery)
	if !ok {
		t.Fatalf("expected *query.WildcardQuery, got %T", q)
	}
	if wq.Wildcard != "cloud*" {
		t.Errorf("expected lowercased wildcard cloud*, got %q", wq.Wildcard)
	}
}

func TestParseSpaceDefaultsToOr(t *testing.T) {
	q, _, err := Parse("cloud network", ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	dq, ok := q.(*query.DisjunctionQuery)
	if !ok {
		t.Fatalf("expected *query.DisjunctionQuery, got %T", q)
	}
	if len(dq.Disjuncts) != 2 {
		t.Errorf("expected 2 disjuncts, got %d", len(dq.Disjuncts))
	}
}

func TestParseAndBindsTighterThanOr(t *testing.T) {
	q, _, err := Parse("a1 AND b1 OR c1", ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	dq, ok := q.(*query.DisjunctionQuery)
	if !ok {
		t.Fatalf("expected *query.DisjunctionQuery, got %T", q)
	}
	if len(dq.Disjuncts) != 2 {
		t.Fatalf("expected 2 disjuncts, got %d", len(dq.Disjuncts))
	}
	if _, ok := dq.Disjuncts[0].(*query.ConjunctionQuery); !ok {
		t.Errorf("expected first disjunct to be a conjunction, got %T", dq.Disjuncts[0])
	}
}

func TestParseRequiredExcludedTerms(t *testing.T) {
	q, _, err := Parse("+security cloud -deprecated", ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	bq, ok := q.(*query.BooleanQuery)
	if !ok {
		t.Fatalf("expected *query.BooleanQuery, got %T", q)
	}
	if bq.Must == nil {
		t.Error("expected a must clause for +security")
	}
	if bq.MustNot == nil {
		t.Error("expected a mustNot clause for -deprecated")
	}
}

func TestParseOnlyExclusionsMatchesNothing(t *testing.T) {
	q, _, err := Parse("-a1", ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, ok := q.(*query.MatchNoneQuery); !ok {
		t.Fatalf("exclusion-only query should match nothing, got %T", q)
	}
}

func TestParsePhrase(t *testing.T) {
	for _, raw := range []string{`"exact phrase"`, `'exact phrase'`} {
		q, _, err := Parse(raw, ModeStrict)
		if err != nil {
			t.Fatalf("Parse(%s) failed: %v", raw, err)
		}
		pq, ok := q.(*query.MatchPhraseQuery)
		if !ok {
			t.Fatalf("expected *query.MatchPhraseQuery for %s, got %T", raw, q)
		}
		if pq.MatchPhrase != "exact phrase" {
			t.Errorf("expected phrase text, got %q", pq.MatchPhrase)
		}
	}
}

func TestParseFieldScopedPhrase(t *testing.T) {
	q, _, err := Parse(`reference:"משנה תורה"`, ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	pq, ok := q.(*query.MatchPhraseQuery)
	if !ok {
		t.Fatalf("expected *query.MatchPhraseQuery, got %T", q)
	}
	if pq.Field() != "reference" {
		t.Errorf("expected field reference, got %q", pq.Field())
	}
}

func TestParsePhraseWithEscapedQuote(t *testing.T) {
	q, _, err := Parse(`"say \"hello\" now"`, ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	pq, ok := q.(*query.MatchPhraseQuery)
	if !ok {
		t.Fatalf("expected *query.MatchPhraseQuery, got %T", q)
	}
	if pq.MatchPhrase != `say "hello" now` {
		t.Errorf("unexpected phrase text %q", pq.MatchPhrase)
	}
}

func TestParsePhraseSlop(t *testing.T) {
	q, _, err := Parse(`"cloud security"~2`, ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// Slop phrases degrade to an all-terms match query.
	if _, ok := q.(*query.MatchQuery); !ok {
		t.Fatalf("expected *query.MatchQuery for slop phrase, got %T", q)
	}
}

func TestParsePhrasePrefix(t *testing.T) {
	q, _, err := Parse(`"clou"*`, ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	pq, ok := q.(*query.PrefixQuery)
	if !ok {
		t.Fatalf("expected *query.PrefixQuery, got %T", q)
	}
	if pq.Prefix != "clou" {
		t.Errorf("expected prefix clou, got %q", pq.Prefix)
	}
}

func TestParseMultiWordPhrasePrefix(t *testing.T) {
	q, _, err := Parse(`"start of phr"*`, ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	cq, ok := q.(*query.ConjunctionQuery)
	if !ok {
		t.Fatalf("expected *query.ConjunctionQuery, got %T", q)
	}
	if len(cq.Conjuncts) != 2 {
		t.Fatalf("expected 2 conjuncts, got %d", len(cq.Conjuncts))
	}
	if _, ok := cq.Conjuncts[1].(*query.PrefixQuery); !ok {
		t.Errorf("expected trailing prefix query, got %T", cq.Conjuncts[1])
	}
}

func TestParseBoost(t *testing.T) {
	q, _, err := Parse("security^2.0", ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	mq, ok := q.(*query.MatchQuery)
	if !ok {
		t.Fatalf("expected *query.MatchQuery, got %T", q)
	}
	if mq.BoostVal == nil {
		t.Fatal("expected boost to be set")
	}
	if mq.BoostVal.Value() != 2.0 {
		t.Errorf("expected boost 2.0, got %v", mq.BoostVal.Value())
	}
}

func TestParseGrouping(t *testing.T) {
	q, _, err := Parse("shabath AND (walk OR go)", ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	cq, ok := q.(*query.ConjunctionQuery)
	if !ok {
		t.Fatalf("expected *query.ConjunctionQuery, got %T", q)
	}
	if len(cq.Conjuncts) != 2 {
		t.Fatalf("expected 2 conjuncts, got %d", len(cq.Conjuncts))
	}
	if _, ok := cq.Conjuncts[1].(*query.DisjunctionQuery); !ok {
		t.Errorf("expected nested disjunction, got %T", cq.Conjuncts[1])
	}
}

func TestParseAndNot(t *testing.T) {
	q, _, err := Parse("a1 AND NOT b1", ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	bq, ok := q.(*query.BooleanQuery)
	if !ok {
		t.Fatalf("expected *query.BooleanQuery, got %T", q)
	}
	if bq.MustNot == nil {
		t.Error("expected mustNot clause for NOT b1")
	}
}

func TestParseStrictErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"unterminated phrase", `"never closed`},
		{"dangling and", "a1 AND"},
		{"leading or", "OR a1"},
		{"unexpected rparen", "a1) b1"},
		{"unclosed group", "(a1 OR b1"},
		{"invalid boost", "term^abc"},
		{"zero boost", "term^0"},
		{"unknown field", "nosuchfield:term"},
		{"missing term after field", "text:"},
		{"slop without number", `"a b"~`},
		{"stray caret", "^2"},
		{"trailing plus", "a1 +"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := Parse(tc.raw, ModeStrict); err == nil {
				t.Errorf("expected strict parse of %q to fail", tc.raw)
			}
		})
	}
}

func TestParseLenientNeverFails(t *testing.T) {
	cases := []string{
		`"never closed`,
		"a1 AND",
		"OR a1",
		"a1) b1",
		"(a1 OR b1",
		"term^abc",
		"nosuchfield:term",
		"text:",
		`"a b"~`,
		"^^^~~~",
		"((((",
		"",
	}
	for _, raw := range cases {
		q, _, err := Parse(raw, ModeLenient)
		if err != nil {
			t.Errorf("lenient parse of %q returned error: %v", raw, err)
		}
		if q == nil {
			t.Errorf("lenient parse of %q returned nil query", raw)
		}
	}
}

func TestParseLenientDropsBadClauses(t *testing.T) {
	q, dropped, err := Parse("nosuchfield:x text:good", ModeLenient)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(dropped) == 0 {
		t.Error("expected the unknown-field clause to be reported as dropped")
	}
	mq, ok := q.(*query.MatchQuery)
	if !ok {
		t.Fatalf("expected surviving clause to be *query.MatchQuery, got %T", q)
	}
	if mq.Match != "good" {
		t.Errorf("expected surviving term good, got %q", mq.Match)
	}
}

func TestParseLenientNothingUsable(t *testing.T) {
	q, _, err := Parse("^~ OR AND", ModeLenient)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, ok := q.(*query.MatchNoneQuery); !ok {
		t.Fatalf("expected match-none for unusable query, got %T", q)
	}
}

func TestParseEmptyQuery(t *testing.T) {
	q, _, err := Parse("", ModeStrict)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, ok := q.(*query.MatchNoneQuery); !ok {
		t.Fatalf("expected match-none for empty query, got %T", q)
	}
}

func TestModeString(t *testing.T) {
	if ModeStrict.String() != "strict" || ModeLenient.String() != "lenient" {
		t.Error("unexpected mode names")
	}
}
