package lexer

import (
	"strings"
	"unicode"

	"github.com/tutara-lang/tutara/internal/cerrors"
)

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithPreserveComments controls whether Comment tokens are yielded to the
// caller. By default Next skips comments; with preserve set it yields them,
// and a parser reading such a lexer turns them into CommentStatements.
func WithPreserveComments(preserve bool) Option {
	return func(l *Lexer) { l.preserveComments = preserve }
}

// Lexer is a lazy, single-pass, non-restartable producer of tokens over a
// source string. Once Next returns an error, or the source is exhausted,
// the sequence is drained: further calls return ok=false, err=nil.
type Lexer struct {
	source []rune
	pos    int

	line   int
	column int
	length int

	preserveComments bool
	done             bool
}

// New constructs a Lexer over source.
func New(source string, opts ...Option) *Lexer {
	l := &Lexer{
		source: []rune(source),
		line:   1,
		column: 0,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lexer) atEOF() bool { return l.pos >= len(l.source) }

func (l *Lexer) peek() (rune, bool) {
	if l.atEOF() {
		return 0, false
	}
	return l.source[l.pos], true
}

func (l *Lexer) peekAt(offset int) (rune, bool) {
	idx := l.pos + offset
	if idx < 0 || idx >= len(l.source) {
		return 0, false
	}
	return l.source[idx], true
}

func (l *Lexer) advance() rune {
	r := l.source[l.pos]
	l.pos++
	l.length++
	return r
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.column, Length: l.length}
}

func (l *Lexer) token(kind TokenKind, lit Literal) Token {
	return Token{Kind: kind, Literal: lit, Pos: l.currentPos()}
}

// Next yields the next token. ok is false once the sequence is drained,
// either because the source is exhausted or because a prior call returned
// an error. err is non-nil exactly once, on the token that failed.
func (l *Lexer) Next() (Token, error, bool) {
	for {
		if l.done {
			return Token{}, nil, false
		}
		if l.atEOF() {
			l.done = true
			return Token{}, nil, false
		}

		current := l.advance()
		l.length = 1

		switch {
		case current == '\n':
			l.line++
			l.column = 0
			l.length = 0
			continue
		case unicode.IsSpace(current):
			l.column += l.length
			continue
		case unicode.IsDigit(current):
			tok, err := l.readNumber(current)
			return l.finish(tok, err)
		case unicode.IsLetter(current):
			tok, err := l.readIdentifier(current)
			return l.finish(tok, err)
		case current == '\'':
			tok, err := l.readString()
			return l.finish(tok, err)
		case current == '/' && l.peekIs('/'):
			l.consume()
			tok, err := l.readComment()
			if err == nil && !l.preserveComments {
				l.column += l.length
				l.length = 0
				continue
			}
			return l.finish(tok, err)
		case current == '&':
			tok, err := l.expect('&', And, "expected &")
			return l.finish(tok, err)
		case current == '|':
			tok, err := l.expect('|', Or, "expected |")
			return l.finish(tok, err)
		case current == '*' && l.peekIs('*'):
			l.consume()
			kind := Exponentiation
			if l.peekIs('=') {
				l.consume()
				kind = AssignExponentiation
			}
			return l.finish(l.token(kind, Literal{}), nil)
		default:
			tok, err := l.readReserved(current)
			return l.finish(tok, err)
		}
	}
}

func (l *Lexer) finish(tok Token, err error) (Token, error, bool) {
	l.column += l.length
	if err != nil {
		l.done = true
		return Token{}, err, false
	}
	return tok, nil, true
}

func (l *Lexer) peekIs(r rune) bool {
	c, ok := l.peek()
	return ok && c == r
}

func (l *Lexer) consume() rune {
	return l.advance()
}

func (l *Lexer) expect(next rune, kind TokenKind, message string) (Token, error) {
	if l.peekIs(next) {
		l.consume()
		return l.token(kind, Literal{}), nil
	}
	return Token{}, cerrors.NewLexical(l.currentPos(), message)
}

func (l *Lexer) readNumber(first rune) (Token, error) {
	var sb strings.Builder
	sb.WriteRune(first)

	for {
		c, ok := l.peek()
		if !ok || !unicode.IsDigit(c) {
			break
		}
		sb.WriteRune(l.advance())
	}

	var value uint64
	for _, r := range sb.String() {
		value = value*10 + uint64(r-'0')
		if value > 0xFFFFFFFF {
			return Token{}, cerrors.NewLexical(l.currentPos(), "Invalid number")
		}
	}

	return l.token(Integer, Literal{Kind: NumberLiteral, Number: value}), nil
}

func (l *Lexer) readIdentifier(first rune) (Token, error) {
	var sb strings.Builder
	sb.WriteRune(first)

	for {
		c, ok := l.peek()
		if !ok || !(unicode.IsLetter(c) || unicode.IsDigit(c)) {
			break
		}
		sb.WriteRune(l.advance())
	}

	name := sb.String()
	if kind, ok := lookupReserved(name); ok {
		if kind == Boolean {
			return l.token(Boolean, Literal{Kind: BooleanLiteral, Bool: name == "true"}), nil
		}
		return l.token(kind, Literal{}), nil
	}
	return l.token(Identifier, Literal{Kind: StringLiteralKind, Text: name}), nil
}

func (l *Lexer) readString() (Token, error) {
	var sb strings.Builder

	for {
		c, ok := l.peek()
		if !ok {
			break
		}
		switch {
		case c == '\\':
			l.advance()
			if esc, ok := l.readEscape(); ok {
				sb.WriteString(esc)
			} else {
				sb.WriteByte('\\')
			}
		case c == '\'':
			l.advance()
			return l.token(String, Literal{Kind: StringLiteralKind, Text: sb.String()}), nil
		case c == '\n':
			return Token{}, cerrors.NewLexical(l.currentPos(), "Unexpected new line, expected end of string.")
		default:
			sb.WriteRune(l.advance())
		}
	}

	return Token{}, cerrors.NewLexical(l.currentPos(), "Unexpected new line, expected end of string.")
}

func (l *Lexer) readEscape() (string, bool) {
	c, ok := l.peek()
	if !ok {
		return "", false
	}
	switch c {
	case 'n':
		l.advance()
		return "\n", true
	case 'r':
		l.advance()
		return "\r", true
	case 't':
		l.advance()
		return "\t", true
	case '\\':
		l.advance()
		return "\\", true
	case '\'':
		l.advance()
		return "'", true
	default:
		return "", false
	}
}

func (l *Lexer) readComment() (Token, error) {
	var sb strings.Builder
	for {
		c, ok := l.peek()
		if !ok || c == '\n' {
			break
		}
		sb.WriteRune(l.advance())
	}
	return l.token(Comment, Literal{Kind: StringLiteralKind, Text: sb.String()}), nil
}

func (l *Lexer) readReserved(current rune) (Token, error) {
	kind, ok := lookupReserved(string(current))
	if !ok {
		return Token{}, cerrors.NewLexical(l.currentPos(), "Unexpected token "+string(current))
	}

	tok := l.token(kind, Literal{})

	if isArithmeticOperator(kind) && l.peekIs('=') {
		l.consume()
		upgraded, ok := compoundAssignFor(kind)
		if !ok {
			return Token{}, cerrors.NewLexical(l.currentPos(), "Invalid assignment operation")
		}
		tok = l.token(upgraded, Literal{})
	} else if kind == Not || kind == Assign || kind == Greater || kind == Lesser {
		if l.peekIs('=') {
			l.consume()
			tok = l.token(comparisonUpgradeFor(kind), Literal{})
		}
	}

	return tok, nil
}

func compoundAssignFor(kind TokenKind) (TokenKind, bool) {
	switch kind {
	case Plus:
		return AssignPlus, true
	case Minus:
		return AssignMinus, true
	case Multiply:
		return AssignMultiply, true
	case Division:
		return AssignDivision, true
	case Modulo:
		return AssignModulo, true
	default:
		return ILLEGAL, false
	}
}

func comparisonUpgradeFor(kind TokenKind) TokenKind {
	switch kind {
	case Not:
		return NotEqual
	case Assign:
		return Equal
	case Greater:
		return GreaterOrEqual
	case Lesser:
		return LesserOrEqual
	default:
		return kind
	}
}
