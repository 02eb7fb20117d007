package parser

import (
	"github.com/lhaig/burn/internal/annotation"
	"github.com/lhaig/burn/internal/ast"
	"github.com/lhaig/burn/internal/lexer"
	"github.com/lhaig/burn/internal/literal"
)

// Operator precedence, lowest to highest
const (
	precAny            = 0
	precLogic          = 10 // and, or
	precNot            = 11
	precComparison     = 20 // is == != < > <= >=
	precUnion          = 25
	precAdditive       = 30
	precMultiplicative = 31
)

type binaryBuilder func(left, right ast.Expression, offset int) ast.Expression

var multiplicativeOps = map[lexer.TokenType]binaryBuilder{
	lexer.STAR: func(l, r ast.Expression, off int) ast.Expression {
		return &ast.Multiplication{Left: l, Right: r, Offset: off}
	},
	lexer.SLASH: func(l, r ast.Expression, off int) ast.Expression {
		return &ast.Division{Left: l, Right: r, Offset: off}
	},
}

var additiveOps = map[lexer.TokenType]binaryBuilder{
	lexer.PLUS: func(l, r ast.Expression, off int) ast.Expression {
		return &ast.Addition{Left: l, Right: r, Offset: off}
	},
	lexer.MINUS: func(l, r ast.Expression, off int) ast.Expression {
		return &ast.Subtraction{Left: l, Right: r, Offset: off}
	},
}

var unionOps = map[lexer.TokenType]binaryBuilder{
	lexer.PIPE: func(l, r ast.Expression, off int) ast.Expression {
		return &ast.Union{Left: l, Right: r, Offset: off}
	},
}

var comparisonOps = map[lexer.TokenType]binaryBuilder{
	lexer.IS: func(l, r ast.Expression, off int) ast.Expression {
		return &ast.Is{Left: l, Right: r, Offset: off}
	},
	lexer.EQ: func(l, r ast.Expression, off int) ast.Expression {
		return &ast.Eq{Left: l, Right: r, Offset: off}
	},
	lexer.NEQ: func(l, r ast.Expression, off int) ast.Expression {
		return &ast.Neq{Left: l, Right: r, Offset: off}
	},
	lexer.LT: func(l, r ast.Expression, off int) ast.Expression {
		return &ast.Lt{Left: l, Right: r, Offset: off}
	},
	lexer.GT: func(l, r ast.Expression, off int) ast.Expression {
		return &ast.Gt{Left: l, Right: r, Offset: off}
	},
	lexer.LEQ: func(l, r ast.Expression, off int) ast.Expression {
		return &ast.LtEq{Left: l, Right: r, Offset: off}
	},
	lexer.GEQ: func(l, r ast.Expression, off int) ast.Expression {
		return &ast.GtEq{Left: l, Right: r, Offset: off}
	},
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parsePrecedence(precAny)
}

// parsePrecedence parses an expression whose operators all bind at least
// as tightly as minPrec, using precedence climbing. Each tier is folded
// left-associatively and its right operands are parsed one tier higher.
// Comparisons do not chain, and `and` cannot be mixed with `or` without
// parentheses.
func (p *Parser) parsePrecedence(minPrec int) (ast.Expression, error) {
	var left ast.Expression
	var err error

	if minPrec <= precNot && p.check(lexer.NOT) {
		kw := p.consume(lexer.NOT)
		operand, err := p.parsePrecedence(precNot + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.Not{Operand: operand, Offset: kw.Offset}
	} else if left, err = p.parseAccess(); err != nil {
		return nil, err
	}

	if minPrec > precMultiplicative {
		return left, nil
	}
	if left, err = p.foldTier(left, multiplicativeOps, precMultiplicative, true); err != nil {
		return nil, err
	}

	if minPrec > precAdditive {
		return left, nil
	}
	if left, err = p.foldTier(left, additiveOps, precAdditive, true); err != nil {
		return nil, err
	}

	if minPrec > precUnion {
		return left, nil
	}
	if left, err = p.foldTier(left, unionOps, precUnion, true); err != nil {
		return nil, err
	}

	if minPrec > precComparison {
		return left, nil
	}
	if left, err = p.foldTier(left, comparisonOps, precComparison, false); err != nil {
		return nil, err
	}

	if minPrec > precLogic {
		return left, nil
	}
	return p.parseLogic(left)
}

// foldTier applies the operators of one tier to left. With repeat unset
// at most one operator is applied.
func (p *Parser) foldTier(left ast.Expression, ops map[lexer.TokenType]binaryBuilder, prec int, repeat bool) (ast.Expression, error) {
	for {
		tok := p.peek()
		build, ok := ops[tok.Type]
		if !ok {
			return left, nil
		}
		p.buf.read()
		p.skipNewlines()

		right, err := p.parsePrecedence(prec + 1)
		if err != nil {
			return nil, err
		}
		left = build(left, right, tok.Offset)

		if !repeat {
			return left, nil
		}
	}
}

// parseLogic folds a chain of `and` or a chain of `or` onto left
func (p *Parser) parseLogic(left ast.Expression) (ast.Expression, error) {
	first := p.peek().Type
	if first != lexer.AND && first != lexer.OR {
		return left, nil
	}

	for p.check(first) {
		tok := p.buf.read()
		p.skipNewlines()

		right, err := p.parsePrecedence(precLogic + 1)
		if err != nil {
			return nil, err
		}
		if first == lexer.AND {
			left = &ast.And{Left: left, Right: right, Offset: tok.Offset}
		} else {
			left = &ast.Or{Left: left, Right: right, Offset: tok.Offset}
		}
	}

	if tok := p.peek(); tok.Type == lexer.AND || tok.Type == lexer.OR {
		return nil, p.errorf(tok.Offset, "cannot mix `and` and `or` without parentheses")
	}
	return left, nil
}

// parseAccess parses an atom followed by any number of .name and
// (arguments) suffixes
func (p *Parser) parseAccess() (ast.Expression, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek().Type {
		case lexer.DOT:
			dot := p.consume(lexer.DOT)
			name, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			expr = &ast.DotAccess{
				Expression: expr,
				Name:       p.ident(name.Literal),
				Offset:     dot.Offset,
			}
		case lexer.LPAREN:
			open := p.consume(lexer.LPAREN)
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.Call{Function: expr, Arguments: args, Offset: open.Offset}
		default:
			return expr, nil
		}
	}
}

// parseArguments parses a comma separated argument list after `(` and
// consumes the closing `)`. Newlines are insignificant inside the list.
func (p *Parser) parseArguments() ([]ast.Expression, error) {
	restore := p.buf.setPolicy(ignoreNewlines)
	defer restore()

	var args []ast.Expression
	if p.check(lexer.RPAREN) {
		p.consume(lexer.RPAREN)
		return args, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch tok := p.peek(); tok.Type {
		case lexer.COMMA:
			p.consume(lexer.COMMA)
		case lexer.RPAREN:
			p.consume(lexer.RPAREN)
			return args, nil
		default:
			return nil, p.errorf(tok.Offset, "expected `,` or `)`, found %s", tok)
		}
	}
}

func (p *Parser) parseAtom() (ast.Expression, error) {
	tok := p.peek()

	switch tok.Type {
	case lexer.FUNCTION:
		return p.parseFunction()

	case lexer.LPAREN:
		return p.parseParenthesized()

	case lexer.IDENT:
		p.buf.read()
		return &ast.Name{
			Identifier: p.ident(tok.Literal),
			Annotation: annotation.NewName(),
			Offset:     tok.Offset,
		}, nil

	case lexer.VARIABLE:
		p.buf.read()
		return &ast.Variable{Name: p.ident(tok.Literal), Offset: tok.Offset}, nil

	case lexer.STRING:
		p.buf.read()
		value, err := literal.ParseString(tok.Literal)
		if err != nil {
			return nil, p.errorf(tok.Offset, "%v", err)
		}
		return &ast.String{Value: value, Offset: tok.Offset}, nil

	case lexer.INT:
		p.buf.read()
		value, err := literal.ParseInt(tok.Literal)
		if err != nil {
			return nil, p.errorf(tok.Offset, "%v", err)
		}
		return &ast.Integer{Value: value, Offset: tok.Offset}, nil

	case lexer.FLOAT:
		p.buf.read()
		value, err := literal.ParseFloat(tok.Literal)
		if err != nil {
			return nil, p.errorf(tok.Offset, "%v", err)
		}
		return &ast.Float{Value: value, Offset: tok.Offset}, nil

	case lexer.TRUE, lexer.FALSE:
		p.buf.read()
		return &ast.Boolean{Value: tok.Type == lexer.TRUE, Offset: tok.Offset}, nil

	case lexer.NOTHING:
		p.buf.read()
		return &ast.Nothing{Offset: tok.Offset}, nil
	}

	return nil, p.unexpected(tok)
}

// parseParenthesized parses ( expression ). The parentheses leave no node
// behind.
func (p *Parser) parseParenthesized() (ast.Expression, error) {
	p.consume(lexer.LPAREN)

	restore := p.buf.setPolicy(ignoreNewlines)
	defer restore()

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseFunction parses: function ( parameters ) { body }
func (p *Parser) parseFunction() (*ast.Function, error) {
	restore := p.buf.setPolicy(ignoreNewlines)
	defer restore()

	kw := p.consume(lexer.FUNCTION)
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Function{
		Parameters: params,
		Frame:      annotation.NewClosureFrame(),
		Body:       body,
		Offset:     kw.Offset,
	}, nil
}

// parseParameters parses the parameter list after `(` and consumes the
// closing `)`. A parameter is `[Type] $name [= default]`; a leading
// variable is the parameter itself only when `=`, `,` or `)` follows it.
func (p *Parser) parseParameters() ([]*ast.FunctionParameter, error) {
	var params []*ast.FunctionParameter
	if p.check(lexer.RPAREN) {
		p.consume(lexer.RPAREN)
		return params, nil
	}

	for {
		param := &ast.FunctionParameter{}

		if !p.check(lexer.VARIABLE) || !endsParameterName(p.buf.peekN(1).Type) {
			typ, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			param.Type = typ
		}

		v, err := p.expect(lexer.VARIABLE)
		if err != nil {
			return nil, err
		}
		param.Name = p.ident(v.Literal)
		param.Offset = v.Offset

		if p.check(lexer.ASSIGN) {
			p.consume(lexer.ASSIGN)
			if param.Default, err = p.parseExpression(); err != nil {
				return nil, err
			}
		}
		params = append(params, param)

		switch tok := p.peek(); tok.Type {
		case lexer.COMMA:
			p.consume(lexer.COMMA)
		case lexer.RPAREN:
			p.consume(lexer.RPAREN)
			return params, nil
		default:
			return nil, p.errorf(tok.Offset, "expected `,` or `)`, found %s", tok)
		}
	}
}

func endsParameterName(tt lexer.TokenType) bool {
	return tt == lexer.ASSIGN || tt == lexer.COMMA || tt == lexer.RPAREN
}
