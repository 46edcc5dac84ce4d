package lmr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type BufferedTokenizerMocker struct {
	buf []Token
	pos int
}

func NewBufferedTokenizerMocker(toks []Token) *BufferedTokenizerMocker {
	return &BufferedTokenizerMocker{
		buf: toks,
		pos: 0,
	}
}

func (b *BufferedTokenizerMocker) NextToken() (Token, error) {
	if len(b.buf) <= b.pos {
		return Token{Typ: TokenEOF}, nil
	}

	tok := b.buf[b.pos]
	b.pos++

	return tok, nil
}

func lit(v int64) *IntegerLiteral {
	return &IntegerLiteral{Value: v}
}

func ref(name string) *VariableRef {
	return &VariableRef{Name: name}
}

func TestParser(t *testing.T) {
	cases := []struct {
		data   []Token
		fail   bool
		expect Node
	}{
		{
			[]Token{
				{TokenFonction, "fonction"},
				{TokenIdentifier, "main"},
				{TokenOpenParentheses, "("},
				{TokenCloseParentheses, ")"},
				{TokenColon, ":"},
				{TokenReturn, "return"},
				{TokenInteger, "1"},
			},
			false,
			&FuncDecl{
				Name:   "main",
				Params: nil,
				Body:   lit(1),
			},
		},
		{
			[]Token{
				{TokenFonction, "fonction"},
				{TokenIdentifier, "add"},
				{TokenOpenParentheses, "("},
				{TokenIdentifier, "a"},
				{TokenComma, ","},
				{TokenIdentifier, "b"},
				{TokenCloseParentheses, ")"},
				{TokenColon, ":"},
				{TokenNewline, "\n"},
				{TokenReturn, "return"},
				{TokenIdentifier, "a"},
				{TokenPlus, "+"},
				{TokenIdentifier, "b"},
				{TokenNewline, "\n"},
			},
			false,
			&FuncDecl{
				Name:   "add",
				Params: []string{"a", "b"},
				Body: &BinaryExpr{
					Operation: BinaryAddition,
					Op1:       ref("a"),
					Op2:       ref("b"),
				},
			},
		},
		{
			[]Token{
				{TokenIdentifier, "únicódeShouldBeVàlid"},
				{TokenAssign, "="},
				{TokenInteger, "1"},
			},
			false,
			&Assignment{
				Name:  "únicódeShouldBeVàlid",
				Value: lit(1),
			},
		},
		{
			[]Token{
				{TokenFonction, "fonction"},
				{TokenOpenParentheses, "("},
				{TokenCloseParentheses, ")"},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenFonction, "fonction"},
				{TokenIdentifier, "f"},
				{TokenOpenParentheses, "("},
				{TokenCloseParentheses, ")"},
				{TokenColon, ":"},
				{TokenInteger, "1"},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenIdentifier, "foo"},
				{TokenOpenParentheses, "("},
				{TokenCloseParentheses, ")"},
			},
			false,
			&FuncCall{
				Name: "foo",
				Args: nil,
			},
		},
		{
			[]Token{
				{TokenIdentifier, "foo"},
				{TokenOpenParentheses, "("},
				{TokenIdentifier, "arg1"},
				{TokenComma, ","},
				{TokenInteger, "2"},
				{TokenCloseParentheses, ")"},
			},
			false,
			&FuncCall{
				Name: "foo",
				Args: []Node{ref("arg1"), lit(2)},
			},
		},
		{
			[]Token{
				{TokenIdentifier, "foo"},
				{TokenOpenParentheses, "("},
				{TokenInteger, "1"},
				{TokenPlus, "+"},
				{TokenInteger, "2"},
				{TokenCloseParentheses, ")"},
			},
			false,
			&FuncCall{
				Name: "foo",
				Args: []Node{
					&BinaryExpr{BinaryAddition, lit(1), lit(2)},
				},
			},
		},
		{
			[]Token{
				{TokenIdentifier, "foo"},
				{TokenOpenParentheses, "("},
				{TokenInteger, "1"},
				{TokenInteger, "2"},
				{TokenCloseParentheses, ")"},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenInteger, "1"},
				{TokenPlus, "+"},
				{TokenInteger, "2"},
				{TokenMulti, "*"},
				{TokenInteger, "3"},
			},
			false,
			&BinaryExpr{
				Operation: BinaryAddition,
				Op1:       lit(1),
				Op2: &BinaryExpr{
					Operation: BinaryMultiplication,
					Op1:       lit(2),
					Op2:       lit(3),
				},
			},
		},
		{
			[]Token{
				{TokenOpenParentheses, "("},
				{TokenInteger, "1"},
				{TokenPlus, "+"},
				{TokenInteger, "3"},
				{TokenCloseParentheses, ")"},
				{TokenMulti, "*"},
				{TokenInteger, "2"},
			},
			false,
			&BinaryExpr{
				Operation: BinaryMultiplication,
				Op1: &BinaryExpr{
					Operation: BinaryAddition,
					Op1:       lit(1),
					Op2:       lit(3),
				},
				Op2: lit(2),
			},
		},
		{
			[]Token{
				{TokenInteger, "1"},
				{TokenMinus, "-"},
				{TokenInteger, "3"},
				{TokenPlus, "+"},
				{TokenInteger, "1"},
			},
			false,
			&BinaryExpr{
				Operation: BinaryAddition,
				Op1: &BinaryExpr{
					Operation: BinarySubtraction,
					Op1:       lit(1),
					Op2:       lit(3),
				},
				Op2: lit(1),
			},
		},
		{
			[]Token{
				{TokenMinus, "-"},
				{TokenInteger, "1"},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenInteger, "1"},
				{TokenInteger, "2"},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenIdentifier, "x"},
				{TokenNewline, "\n"},
				{TokenNewline, "\n"},
			},
			true,
			nil,
		},
	}

	for _, c := range cases {
		tokenizer := NewBufferedTokenizerMocker(c.data)
		p := NewParser(tokenizer)

		got, err := p.Parse()
		if c.fail {
			var syntaxErr *SyntaxError
			assert.True(t, errors.As(err, &syntaxErr), "expected parsing to fail, but got %v", err)
			continue
		}

		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(c.expect, got))
	}
}

func parse(t *testing.T, source string) Node {
	t.Helper()

	node, err := NewParser(NewLexerFromString(source)).Parse()
	require.NoError(t, err, source)

	return node
}

func TestParserLeftAssociativity(t *testing.T) {
	got := parse(t, "8 / 4 / 2 * 3")

	expect := &BinaryExpr{
		Operation: BinaryMultiplication,
		Op1: &BinaryExpr{
			Operation: BinaryDivision,
			Op1: &BinaryExpr{
				Operation: BinaryDivision,
				Op1:       lit(8),
				Op2:       lit(4),
			},
			Op2: lit(2),
		},
		Op2: lit(3),
	}

	assert.Empty(t, cmp.Diff(expect, got))
}

func TestParserExpressionStartingWithIdentifier(t *testing.T) {
	cases := []struct {
		source string
		expect Node
	}{
		{"x", ref("x")},
		{"x + 1", &BinaryExpr{BinaryAddition, ref("x"), lit(1)}},
		{
			"x * 2 + y",
			&BinaryExpr{
				BinaryAddition,
				&BinaryExpr{BinaryMultiplication, ref("x"), lit(2)},
				ref("y"),
			},
		},
		{
			"add(2, 3) * 2\n",
			&BinaryExpr{
				BinaryMultiplication,
				&FuncCall{Name: "add", Args: []Node{lit(2), lit(3)}},
				lit(2),
			},
		},
		{
			"y = f(g(1), (2))",
			&Assignment{
				Name: "y",
				Value: &FuncCall{
					Name: "f",
					Args: []Node{
						&FuncCall{Name: "g", Args: []Node{lit(1)}},
						lit(2),
					},
				},
			},
		},
	}

	for _, c := range cases {
		assert.Empty(t, cmp.Diff(c.expect, parse(t, c.source)), c.source)
	}
}

func TestParserSyntaxErrorReportsKinds(t *testing.T) {
	_, err := NewParser(NewLexerFromString("fonction f(a b): return a")).Parse()

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, []TokenType{TokenCloseParentheses}, syntaxErr.Expected)
	assert.Equal(t, Token{TokenIdentifier, "b"}, syntaxErr.Found)
	assert.Contains(t, err.Error(), "expected CloseParentheses, found Identifier 'b'")
}

func TestParserPropagatesLexError(t *testing.T) {
	for _, source := range []string{"@", "x = @", "f(1, @)", "fonction f(a): return a @"} {
		_, err := NewParser(NewLexerFromString(source)).Parse()

		var lexErr *LexError
		assert.True(t, errors.As(err, &lexErr), source)
	}
}

func TestParserRejectsStatementAsOperand(t *testing.T) {
	for _, source := range []string{"(x = 1)", "1 + fonction", "x = y = 1", "return 1"} {
		_, err := NewParser(NewLexerFromString(source)).Parse()

		var syntaxErr *SyntaxError
		assert.True(t, errors.As(err, &syntaxErr), source)
	}
}

func TestParserAsSyntacticAnalyzer(t *testing.T) {
	var analyzer SyntacticAnalyzer = NewParser(NewBufferedTokenizerMocker([]Token{
		{TokenIdentifier, "x"},
		{TokenAssign, "="},
		{TokenInteger, "1"},
	}))

	stmt, err := analyzer.Parse()
	require.NoError(t, err)
	assert.Equal(t, &Assignment{Name: "x", Value: lit(1)}, stmt)
}
