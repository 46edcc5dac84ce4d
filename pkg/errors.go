package lmr

import (
	"fmt"
	"strings"
)

// LexError reports input the lexer could not turn into a token: either an
// unknown character or an integer literal too large for 64 bits.
type LexError struct {
	Pos     int
	Char    rune
	Literal string
}

func (e *LexError) Error() string {
	if e.Literal != "" {
		return fmt.Sprintf("%d: integer literal out of range: %s", e.Pos, e.Literal)
	}

	return fmt.Sprintf("%d: unknown character %q", e.Pos, e.Char)
}

type SyntaxError struct {
	Expected []TokenType
	Found    Token
}

func (e *SyntaxError) Error() string {
	expected := make([]string, len(e.Expected))
	for i, t := range e.Expected {
		expected[i] = t.String()
	}

	found := e.Found.Typ.String()
	if e.Found.Value != "" && e.Found.Typ != TokenNewline {
		found = fmt.Sprintf("%s '%s'", found, e.Found.Value)
	}

	return fmt.Sprintf("syntax error: expected %s, found %s", strings.Join(expected, " or "), found)
}

type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("undefined variable: %s", e.Name)
}

type UndefinedFunctionError struct {
	Name string
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("undefined function: %s", e.Name)
}

type ArityMismatchError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("function '%s' takes %d argument(s), got %d", e.Name, e.Want, e.Got)
}

// RuntimeError is an arithmetic failure such as a zero divisor or an integer
// overflow.
type RuntimeError struct {
	Op     BinaryOp
	Reason string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %s in '%s'", e.Reason, e.Op)
}
