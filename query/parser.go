package query

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2/search/query"
)

// Mode selects how the parser treats malformed input.
type Mode int

const (
	// ModeStrict fails on the first malformed fragment.
	ModeStrict Mode = iota
	// ModeLenient silently drops fragments it cannot interpret.
	ModeLenient
)

func (m Mode) String() string {
	if m == ModeLenient {
		return "lenient"
	}
	return "strict"
}

// Fields that may be scoped with the field:term syntax. Anything else
// is a parse error in strict mode and a dropped clause in lenient mode.
var knownFields = map[string]bool{
	"text":      true,
	"reference": true,
	"topics":    true,
	"title":     true,
}

// occur marks how a clause participates in its enclosing group.
type occur int

const (
	occurShould occur = iota
	occurMust
	occurMustNot
)

type clause struct {
	occ occur
	q   query.Query
}

// Parse turns a raw query string into a bleve query.
//
// In ModeLenient the returned error is always nil: unparseable
// fragments are dropped and returned in the second value, and a query
// with nothing usable left yields a match-none query. In ModeStrict the
// dropped list is always nil and any malformed fragment is an error.
func Parse(raw string, mode Mode) (query.Query, []string, error) {
	p := &parser{lex: newLexer(raw, mode), mode: mode}
	if err := p.advance(); err != nil {
		return nil, nil, err
	}
	q, err := p.parseGroup(false)
	if err != nil {
		return nil, nil, err
	}
	return q, p.dropped, nil
}

type parser struct {
	lex     *lexer
	mode    Mode
	tok     token
	dropped []string
}

func (p *parser) advance() error {
	for {
		tok, err := p.lex.next()
		if err != nil {
			if p.mode == ModeStrict {
				return err
			}
			p.drop(err.Error())
			continue
		}
		p.tok = tok
		return nil
	}
}

func (p *parser) drop(fragment string) {
	p.dropped = append(p.dropped, fragment)
}

// parseGroup parses a parenthesized group or, when insideParen is
// false, the whole query. AND binds tighter than OR by merging an
// AND-connected atom into the preceding clause; the remaining clauses
// are OR-separated (a bare space between atoms defaults to OR).
func (p *parser) parseGroup(insideParen bool) (query.Query, error) {
	var clauses []clause
	pendingAnd := false
	occ := occurShould

loop:
	for {
		switch p.tok.kind {
		case tokenEOF:
			if insideParen && p.mode == ModeStrict {
				return nil, fmt.Errorf("unclosed group")
			}
			break loop

		case tokenRParen:
			if insideParen {
				if err := p.advance(); err != nil {
					return nil, err
				}
				break loop
			}
			if p.mode == ModeStrict {
				return nil, fmt.Errorf("unexpected ) at offset %d", p.tok.pos)
			}
			p.drop(")")
			if err := p.advance(); err != nil {
				return nil, err
			}

		case tokenAnd, tokenOr:
			if len(clauses) == 0 {
				if p.mode == ModeStrict {
					return nil, fmt.Errorf("dangling %s at offset %d", p.tok.text, p.tok.pos)
				}
				p.drop(p.tok.text)
			} else {
				pendingAnd = p.tok.kind == tokenAnd
			}
			if err := p.advance(); err != nil {
				return nil, err
			}

		case tokenPlus:
			occ = occurMust
			if err := p.advance(); err != nil {
				return nil, err
			}

		case tokenMinus, tokenNot:
			occ = occurMustNot
			if err := p.advance(); err != nil {
				return nil, err
			}

		case tokenLParen:
			if err := p.advance(); err != nil {
				return nil, err
			}
			sub, err := p.parseGroup(true)
			if err != nil {
				return nil, err
			}
			clauses = attach(clauses, clause{occ: occ, q: sub}, pendingAnd)
			pendingAnd = false
			occ = occurShould

		case tokenTerm, tokenPhrase:
			atom, err := buildAtom(p.tok)
			if err != nil {
				if p.mode == ModeStrict {
					return nil, err
				}
				p.drop(p.tok.String())
				if err := p.advance(); err != nil {
					return nil, err
				}
				pendingAnd = false
				occ = occurShould
				continue
			}
			clauses = attach(clauses, clause{occ: occ, q: atom}, pendingAnd)
			pendingAnd = false
			occ = occurShould
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	if occ != occurShould && p.mode == ModeStrict {
		return nil, fmt.Errorf("dangling occurrence marker")
	}
	if pendingAnd && p.mode == ModeStrict {
		return nil, fmt.Errorf("dangling AND")
	}

	return combine(clauses), nil
}

// attach adds a clause to the group. An AND connective folds the new
// clause into the previous one as a conjunction, unless either side
// carries a +/-/NOT marker, in which case occurrence handling at group
// level already expresses the conjunction.
func attach(clauses []clause, c clause, pendingAnd bool) []clause {
	if pendingAnd && len(clauses) > 0 && c.occ == occurShould {
		last := &clauses[len(clauses)-1]
		if conj, ok := last.q.(*query.ConjunctionQuery); ok {
			conj.AddQuery(c.q)
		} else {
			last.q = query.NewConjunctionQuery([]query.Query{last.q, c.q})
		}
		return clauses
	}
	// `a AND NOT b` and friends fall through: the group-level boolean
	// combination already expresses the conjunction.
	return append(clauses, c)
}

// combine folds a group's clauses into a single query. All-optional
// clauses form a disjunction (space and OR both mean OR); any +/-
// marker switches the group to boolean occurrence semantics. A group
// with only excluded clauses can match nothing, mirroring the engine
// this syntax descends from.
func combine(clauses []clause) query.Query {
	if len(clauses) == 0 {
		return query.NewMatchNoneQuery()
	}

	signed := false
	positive := false
	for _, c := range clauses {
		if c.occ != occurShould {
			signed = true
		}
		if c.occ != occurMustNot {
			positive = true
		}
	}

	if !signed {
		if len(clauses) == 1 {
			return clauses[0].q
		}
		qs := make([]query.Query, len(clauses))
		for i, c := range clauses {
			qs[i] = c.q
		}
		return query.NewDisjunctionQuery(qs)
	}

	if !positive {
		return query.NewMatchNoneQuery()
	}

	b := query.NewBooleanQuery(nil, nil, nil)
	for _, c := range clauses {
		switch c.occ {
		case occurMust:
			b.AddMust(c.q)
		case occurMustNot:
			b.AddMustNot(c.q)
		default:
			b.AddShould(c.q)
		}
	}
	return b
}

// buildAtom maps a single term or phrase token to a bleve query.
func buildAtom(tok token) (query.Query, error) {
	if tok.field != "" && !knownFields[tok.field] {
		return nil, fmt.Errorf("unknown field %q at offset %d", tok.field, tok.pos)
	}

	if tok.kind == tokenPhrase {
		return buildPhrase(tok)
	}

	if tok.text == "*" && tok.field == "" {
		q := query.NewMatchAllQuery()
		if tok.boost > 0 {
			q.SetBoost(tok.boost)
		}
		return q, nil
	}

	if strings.ContainsAny(tok.text, "*?") {
		// Wildcard queries bypass the analyzer, so fold case here the
		// way the analyzer would.
		q := query.NewWildcardQuery(strings.ToLower(tok.text))
		if tok.field != "" {
			q.SetField(tok.field)
		}
		if tok.boost > 0 {
			q.SetBoost(tok.boost)
		}
		return q, nil
	}

	q := query.NewMatchQuery(tok.text)
	if tok.field != "" {
		q.SetField(tok.field)
	}
	if tok.boost > 0 {
		q.SetBoost(tok.boost)
	}
	return q, nil
}

func buildPhrase(tok token) (query.Query, error) {
	if strings.TrimSpace(tok.text) == "" {
		return nil, fmt.Errorf("empty phrase at offset %d", tok.pos)
	}

	if tok.slop > 0 {
		// bleve has no positional slop; require every phrase term
		// instead, which over-matches but never under-matches.
		q := query.NewMatchQuery(tok.text)
		q.SetOperator(query.MatchQueryOperatorAnd)
		if tok.field != "" {
			q.SetField(tok.field)
		}
		if tok.boost > 0 {
			q.SetBoost(tok.boost)
		}
		return q, nil
	}

	if tok.prefix {
		return buildPhrasePrefix(tok)
	}

	q := query.NewMatchPhraseQuery(tok.text)
	if tok.field != "" {
		q.SetField(tok.field)
	}
	if tok.boost > 0 {
		q.SetBoost(tok.boost)
	}
	return q, nil
}

// buildPhrasePrefix handles `"abc"*`: the final token matches as a
// prefix, any preceding tokens as an exact phrase.
func buildPhrasePrefix(tok token) (query.Query, error) {
	words := strings.Fields(tok.text)
	last := strings.ToLower(words[len(words)-1])

	prefix := query.NewPrefixQuery(last)
	if tok.field != "" {
		prefix.SetField(tok.field)
	}
	if len(words) == 1 {
		if tok.boost > 0 {
			prefix.SetBoost(tok.boost)
		}
		return prefix, nil
	}

	head := query.NewMatchPhraseQuery(strings.Join(words[:len(words)-1], " "))
	if tok.field != "" {
		head.SetField(tok.field)
	}
	conj := query.NewConjunctionQuery([]query.Query{head, prefix})
	if tok.boost > 0 {
		conj.SetBoost(tok.boost)
	}
	return conj, nil
}
