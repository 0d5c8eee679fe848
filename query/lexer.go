package query

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenLParen
	tokenRParen
	tokenAnd
	tokenOr
	tokenNot
	tokenPlus
	tokenMinus
	tokenTerm
	tokenPhrase
)

// token is one lexical atom of the query syntax. Field scoping, slop,
// prefix markers, and boosts are resolved during lexing so the parser
// only deals in complete atoms.
type token struct {
	kind   tokenKind
	field  string
	text   string
	slop   int
	prefix bool
	boost  float64
	pos    int
}

func (t token) String() string {
	switch t.kind {
	case tokenEOF:
		return "<eof>"
	case tokenPhrase:
		return fmt.Sprintf("%q", t.text)
	default:
		return t.text
	}
}

type lexer struct {
	input   string
	pos     int
	lenient bool
}

func newLexer(input string, mode Mode) *lexer {
	return &lexer{input: input, lenient: mode == ModeLenient}
}

// Characters that terminate a bare term. Wildcards (* ?) and the colon
// of a field scope stay inside the term; hyphens inside a word are part
// of the word, not an exclusion marker.
func isTermBoundary(r rune) bool {
	return unicode.IsSpace(r) || r == '(' || r == ')' || r == '"' || r == '\'' || r == '^' || r == '~'
}

func (l *lexer) peekRune() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

func (l *lexer) skipSpace() {
	for {
		r, w := l.peekRune()
		if w == 0 || !unicode.IsSpace(r) {
			return
		}
		l.pos += w
	}
}

// next returns the next token. In strict mode malformed input yields an
// error; in lenient mode the lexer recovers with a best-effort token or
// skips ahead.
func (l *lexer) next() (token, error) {
	l.skipSpace()
	start := l.pos
	r, w := l.peekRune()
	if w == 0 {
		return token{kind: tokenEOF, pos: start}, nil
	}

	switch r {
	case '(':
		l.pos += w
		return token{kind: tokenLParen, text: "(", pos: start}, nil
	case ')':
		l.pos += w
		return token{kind: tokenRParen, text: ")", pos: start}, nil
	case '+':
		l.pos += w
		return token{kind: tokenPlus, text: "+", pos: start}, nil
	case '-':
		l.pos += w
		return token{kind: tokenMinus, text: "-", pos: start}, nil
	case '"', '\'':
		return l.lexPhrase("", start)
	case '^', '~':
		if l.lenient {
			l.pos += w
			return l.next()
		}
		return token{}, fmt.Errorf("unexpected %q at offset %d", r, start)
	}

	return l.lexTerm(start)
}

// lexTerm scans a bare word, resolving keywords, field scopes, and a
// trailing boost. A field scope immediately followed by a quote hands
// off to the phrase lexer so `text:"a b"` works.
func (l *lexer) lexTerm(start int) (token, error) {
	var b strings.Builder
	for {
		r, w := l.peekRune()
		if w == 0 || isTermBoundary(r) {
			break
		}
		if r == ':' {
			next, nw := decodeAfter(l.input, l.pos+w)
			if nw > 0 && (next == '"' || next == '\'') {
				field := b.String()
				l.pos += w
				if field == "" {
					if !l.lenient {
						return token{}, fmt.Errorf("missing field name before %q at offset %d", next, l.pos)
					}
					return l.lexPhrase("", l.pos)
				}
				return l.lexPhrase(field, start)
			}
		}
		b.WriteRune(r)
		l.pos += w
	}

	word := b.String()
	switch word {
	case "AND":
		return token{kind: tokenAnd, text: word, pos: start}, nil
	case "OR":
		return token{kind: tokenOr, text: word, pos: start}, nil
	case "NOT":
		return token{kind: tokenNot, text: word, pos: start}, nil
	}

	tok := token{kind: tokenTerm, text: word, pos: start}
	if idx := strings.Index(word, ":"); idx > 0 {
		tok.field = word[:idx]
		tok.text = word[idx+1:]
		if tok.text == "" {
			if !l.lenient {
				return token{}, fmt.Errorf("missing term after field %q at offset %d", tok.field, start)
			}
			return l.next()
		}
	}

	return l.lexSuffix(tok)
}

// lexPhrase scans a quoted phrase plus its optional trailing slop (~N),
// prefix marker (*), and boost (^N).
func (l *lexer) lexPhrase(field string, start int) (token, error) {
	quote, w := l.peekRune()
	l.pos += w

	var b strings.Builder
	closed := false
	for !closed {
		r, w := l.peekRune()
		if w == 0 {
			break
		}
		l.pos += w
		switch r {
		case '\\':
			esc, ew := l.peekRune()
			if ew > 0 {
				b.WriteRune(esc)
				l.pos += ew
			}
		case quote:
			closed = true
		default:
			b.WriteRune(r)
		}
	}
	if !closed && !l.lenient {
		return token{}, fmt.Errorf("unterminated phrase starting at offset %d", start)
	}

	tok := token{kind: tokenPhrase, field: field, text: b.String(), pos: start}

	if r, w := l.peekRune(); r == '~' {
		l.pos += w
		digits := l.takeWhile(unicode.IsDigit)
		if digits == "" {
			if !l.lenient {
				return token{}, fmt.Errorf("slop operator without a number at offset %d", l.pos)
			}
		} else {
			tok.slop, _ = strconv.Atoi(digits)
		}
	}
	if r, w := l.peekRune(); r == '*' {
		l.pos += w
		tok.prefix = true
	}

	return l.lexSuffix(tok)
}

// lexSuffix handles a trailing ^boost shared by terms and phrases.
func (l *lexer) lexSuffix(tok token) (token, error) {
	r, w := l.peekRune()
	if r != '^' {
		return tok, nil
	}
	l.pos += w
	raw := l.takeWhile(func(r rune) bool { return unicode.IsDigit(r) || r == '.' })
	boost, err := strconv.ParseFloat(raw, 64)
	if err != nil || boost <= 0 {
		if !l.lenient {
			return token{}, fmt.Errorf("invalid boost %q at offset %d", raw, tok.pos)
		}
		return tok, nil
	}
	tok.boost = boost
	return tok, nil
}

func (l *lexer) takeWhile(pred func(rune) bool) string {
	start := l.pos
	for {
		r, w := l.peekRune()
		if w == 0 || !pred(r) {
			break
		}
		l.pos += w
	}
	return l.input[start:l.pos]
}

func decodeAfter(s string, pos int) (rune, int) {
	if pos >= len(s) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(s[pos:])
}
