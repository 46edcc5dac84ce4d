package lmr

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

//go:generate stringer -type=TokenType -trimprefix=Token
const (
	TokenEOF TokenType = iota
	TokenInteger

	TokenIdentifier
	TokenFonction
	TokenReturn

	TokenPlus
	TokenMinus
	TokenMulti
	TokenDiv
	TokenAssign
	TokenOpenParentheses
	TokenCloseParentheses
	TokenComma
	TokenColon
	TokenNewline
)

var keywordTable = map[string]TokenType{
	"fonction": TokenFonction,
	"return":   TokenReturn,
}

var operatorTable = map[rune]TokenType{
	'+':  TokenPlus,
	'-':  TokenMinus,
	'*':  TokenMulti,
	'/':  TokenDiv,
	'=':  TokenAssign,
	'(':  TokenOpenParentheses,
	')':  TokenCloseParentheses,
	',':  TokenComma,
	':':  TokenColon,
	'\n': TokenNewline,
}

type Token struct {
	Typ   TokenType
	Value string
}

// Tokenizer hands out tokens one at a time. Once the input is exhausted it
// keeps returning a TokenEOF token.
type Tokenizer interface {
	NextToken() (Token, error)
}

// Lexer is a pull-based Tokenizer. Each call to NextToken runs the state
// machine until exactly one token has been produced.
type Lexer struct {
	reader *bufio.Reader
	pos    int

	state stateFunc
	tok   *Token
	err   error
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		state:  defaultState,
	}
}

func NewLexerFromString(source string) *Lexer {
	return NewLexer(strings.NewReader(source))
}

func (l *Lexer) NextToken() (Token, error) {
	for l.tok == nil && l.err == nil {
		l.state = l.state(l)
	}

	if l.err != nil {
		// A lexing failure is sticky, the cursor never moves past it
		return Token{}, l.err
	}

	tok := *l.tok
	l.tok = nil

	return tok, nil
}

// All drains the lexer, returning every token before the end of the stream.
func (l *Lexer) All() ([]Token, error) {
	var tokens []Token
	for {
		t, err := l.NextToken()
		if err != nil {
			return nil, err
		}

		if t.Typ == TokenEOF {
			return tokens, nil
		}

		tokens = append(tokens, t)
	}
}

func defaultState(l *Lexer) stateFunc {
	for {
		switch r, ok := l.peek(); {
		case !ok:
			return l.emmitValue(TokenEOF, "")
		case r != '\n' && unicode.IsSpace(r):
			l.next()
			continue
		case '0' <= r && r <= '9':
			return integerState
		case r == '_' || unicode.IsLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func integerState(l *Lexer) stateFunc {
	start := l.pos

	var num strings.Builder
	for r, ok := l.peek(); ok && '0' <= r && r <= '9'; r, ok = l.peek() {
		num.WriteRune(l.next())
	}

	if _, err := strconv.ParseInt(num.String(), 10, 64); err != nil {
		return l.fail(&LexError{Pos: start, Literal: num.String()})
	}

	return l.emmitValue(TokenInteger, num.String())
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r, ok := l.peek(); ok && isIdentifierRune(r); r, ok = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emmitValue(t, id.String())
	}

	return l.emmitValue(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	pos := l.pos
	r := l.next()

	if tok, ok := operatorTable[r]; ok {
		return l.emmitValue(tok, string(r))
	}

	return l.fail(&LexError{Pos: pos, Char: r})
}

func isIdentifierRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *Lexer) fail(err error) stateFunc {
	l.err = err

	return defaultState
}

func (l *Lexer) emmitValue(t TokenType, val string) stateFunc {
	l.tok = &Token{
		Typ:   t,
		Value: val,
	}

	return defaultState
}

// peek reports false once the input is exhausted. A NUL rune is ordinary
// input and is rejected by operatorState.
func (l *Lexer) peek() (rune, bool) {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return 0, false
	}

	_ = l.reader.UnreadRune()

	return r, true
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return utf8.RuneError
	}

	l.pos++

	return r
}
