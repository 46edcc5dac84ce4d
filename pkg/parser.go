package lmr

import "strconv"

type SyntacticAnalyzer interface {
	Parse() (Node, error)
}

var _ SyntacticAnalyzer = (*Parser)(nil)

// Parser is a recursive descent parser holding one token of lookahead. A
// Parser reads a single statement; Parse consumes its tokenizer.
type Parser struct {
	tokenizer Tokenizer
	current   Token
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
	}
}

// Parse reads exactly one statement, optionally followed by a newline, and
// fails if anything else remains in the stream.
func (p *Parser) Parse() (Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}

	if p.check(TokenNewline) {
		if _, err := p.eat(TokenNewline); err != nil {
			return nil, err
		}
	}

	if !p.check(TokenEOF) {
		return nil, p.errorf(TokenNewline, TokenEOF)
	}

	return stmt, nil
}

func (p *Parser) advance() error {
	tok, err := p.tokenizer.NextToken()
	if err != nil {
		return err
	}

	p.current = tok

	return nil
}

func (p *Parser) check(typ TokenType) bool {
	return p.current.Typ == typ
}

// eat consumes the current token if it has the given type and returns it.
func (p *Parser) eat(typ TokenType) (Token, error) {
	tok := p.current
	if tok.Typ != typ {
		return tok, p.errorf(typ)
	}

	if err := p.advance(); err != nil {
		return tok, err
	}

	return tok, nil
}

func (p *Parser) errorf(expected ...TokenType) error {
	return &SyntaxError{
		Expected: expected,
		Found:    p.current,
	}
}

func (p *Parser) statement() (Node, error) {
	switch p.current.Typ {
	case TokenFonction:
		return p.funcDecl()
	default:
		return p.assignment()
	}
}

func (p *Parser) funcDecl() (Node, error) {
	if _, err := p.eat(TokenFonction); err != nil {
		return nil, err
	}

	name, err := p.eat(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	params, err := p.params()
	if err != nil {
		return nil, err
	}

	if _, err := p.eat(TokenColon); err != nil {
		return nil, err
	}

	if p.check(TokenNewline) {
		if _, err := p.eat(TokenNewline); err != nil {
			return nil, err
		}
	}

	if _, err := p.eat(TokenReturn); err != nil {
		return nil, err
	}

	body, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &FuncDecl{
		Name:   name.Value,
		Params: params,
		Body:   body,
	}, nil
}

func (p *Parser) params() ([]string, error) {
	if _, err := p.eat(TokenOpenParentheses); err != nil {
		return nil, err
	}

	var params []string
	if p.check(TokenIdentifier) {
		for {
			id, err := p.eat(TokenIdentifier)
			if err != nil {
				return nil, err
			}

			params = append(params, id.Value)

			if !p.check(TokenComma) {
				break
			}

			if _, err := p.eat(TokenComma); err != nil {
				return nil, err
			}
		}
	}

	if _, err := p.eat(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return params, nil
}

// assignment needs two tokens to tell "x = ..." from an expression starting
// with x, so the identifier is consumed first and handed down when it turns
// out not to be an assignment target.
func (p *Parser) assignment() (Node, error) {
	if !p.check(TokenIdentifier) {
		return p.expr()
	}

	id, err := p.eat(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	if p.check(TokenAssign) {
		if _, err := p.eat(TokenAssign); err != nil {
			return nil, err
		}

		value, err := p.expr()
		if err != nil {
			return nil, err
		}

		return &Assignment{
			Name:  id.Value,
			Value: value,
		}, nil
	}

	lhs, err := p.identifier(id.Value)
	if err != nil {
		return nil, err
	}

	if lhs, err = p.multiplicativeFrom(lhs); err != nil {
		return nil, err
	}

	return p.additiveFrom(lhs)
}

func (p *Parser) expr() (Node, error) {
	lhs, err := p.multiplicativeExpr()
	if err != nil {
		return nil, err
	}

	return p.additiveFrom(lhs)
}

func (p *Parser) additiveFrom(lhs Node) (Node, error) {
	for p.check(TokenPlus) || p.check(TokenMinus) {
		op := p.current

		if err := p.advance(); err != nil {
			return nil, err
		}

		rhs, err := p.multiplicativeExpr()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Operation: BinaryOp(op.Value),
			Op1:       lhs,
			Op2:       rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) multiplicativeExpr() (Node, error) {
	lhs, err := p.factor()
	if err != nil {
		return nil, err
	}

	return p.multiplicativeFrom(lhs)
}

func (p *Parser) multiplicativeFrom(lhs Node) (Node, error) {
	for p.check(TokenMulti) || p.check(TokenDiv) {
		op := p.current

		if err := p.advance(); err != nil {
			return nil, err
		}

		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Operation: BinaryOp(op.Value),
			Op1:       lhs,
			Op2:       rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) factor() (Node, error) {
	switch tok := p.current; tok.Typ {
	case TokenInteger:
		return p.literal()
	case TokenIdentifier:
		if _, err := p.eat(TokenIdentifier); err != nil {
			return nil, err
		}

		return p.identifier(tok.Value)
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	default:
		return nil, p.errorf(TokenInteger, TokenIdentifier, TokenOpenParentheses)
	}
}

func (p *Parser) literal() (Node, error) {
	v, err := strconv.ParseInt(p.current.Value, 10, 64)
	if err != nil {
		return nil, p.errorf(TokenInteger)
	}

	if _, err := p.eat(TokenInteger); err != nil {
		return nil, err
	}

	return &IntegerLiteral{Value: v}, nil
}

// identifier turns an already consumed name into a call when an opening
// parenthesis follows it, and into a variable reference otherwise.
func (p *Parser) identifier(name string) (Node, error) {
	if !p.check(TokenOpenParentheses) {
		return &VariableRef{Name: name}, nil
	}

	args, err := p.callArgs()
	if err != nil {
		return nil, err
	}

	return &FuncCall{
		Name: name,
		Args: args,
	}, nil
}

func (p *Parser) callArgs() ([]Node, error) {
	if _, err := p.eat(TokenOpenParentheses); err != nil {
		return nil, err
	}

	var args []Node
	if !p.check(TokenCloseParentheses) {
		for {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if !p.check(TokenComma) {
				break
			}

			if _, err := p.eat(TokenComma); err != nil {
				return nil, err
			}
		}
	}

	if _, err := p.eat(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return args, nil
}

func (p *Parser) parenthesisedExpression() (Node, error) {
	if _, err := p.eat(TokenOpenParentheses); err != nil {
		return nil, err
	}

	exp, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.eat(TokenCloseParentheses); err != nil {
		return nil, err
	}

	return exp, nil
}
