package parser

import (
	"fmt"

	"github.com/lhaig/burn/internal/annotation"
	"github.com/lhaig/burn/internal/ast"
	"github.com/lhaig/burn/internal/ident"
	"github.com/lhaig/burn/internal/lexer"
	"github.com/lhaig/burn/internal/origin"
)

// Parser holds the parser state for one source unit
type Parser struct {
	buf    *buffer
	origin *origin.Origin
	idents *ident.Table
}

// Parse parses source into a Root. The returned error is a *ParseError.
func Parse(o *origin.Origin, source string) (*ast.Root, error) {
	return New(o, lexer.New(source)).Parse()
}

// New creates a parser reading tokens from src. Identifiers are interned
// in ident.Default unless SetIdentTable is called.
func New(o *origin.Origin, src TokenSource) *Parser {
	return &Parser{
		buf:    newBuffer(src),
		origin: o,
		idents: ident.Default,
	}
}

// SetIdentTable makes the parser intern identifiers in t
func (p *Parser) SetIdentTable(t *ident.Table) {
	p.idents = t
}

// Parse parses statements until the end of input
func (p *Parser) Parse() (*ast.Root, error) {
	var stmts []ast.Statement

	p.skipNewlines()
	for !p.check(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)

		if err := p.endStatement(lexer.EOF); err != nil {
			return nil, err
		}
		p.skipNewlines()
	}

	return &ast.Root{
		Statements: stmts,
		Frame:      annotation.NewFrame(),
	}, nil
}

// Token helpers

func (p *Parser) peek() lexer.Token {
	return p.buf.peek()
}

// check returns true if the next visible token is of the given type
func (p *Parser) check(tt lexer.TokenType) bool {
	return p.buf.peek().Type == tt
}

// expect consumes the next token if it matches, otherwise reports an error
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	tok := p.buf.peek()
	if tok.Type != tt {
		return tok, p.errorf(tok.Offset, "expected %s, found %s", tt, tok)
	}
	return p.buf.read(), nil
}

// consume reads a token the caller has already checked for. A mismatch is
// a bug in the parser, not in the input.
func (p *Parser) consume(tt lexer.TokenType) lexer.Token {
	tok := p.buf.read()
	if tok.Type != tt {
		panic(fmt.Sprintf("parser: expected %s, found %s", tt, tok))
	}
	return tok
}

func (p *Parser) skipNewlines() {
	for p.check(lexer.NEWLINE) {
		p.buf.read()
	}
}

func (p *Parser) ident(text string) ident.Identifier {
	return p.idents.FindOrCreate(text)
}

// endStatement checks that a statement is followed by a newline or by
// the token closing the enclosing statement list.
func (p *Parser) endStatement(closing lexer.TokenType) error {
	tok := p.peek()
	switch tok.Type {
	case lexer.NEWLINE, closing:
		return nil
	case lexer.EOF:
		return p.errorf(tok.Offset, "expected %s", closing)
	}
	return p.errorf(tok.Offset, "expected newline, found %s", tok)
}

// Blocks and statements

// parseBlock parses { statements }. Newlines are significant inside the
// braces whatever the surrounding policy.
func (p *Parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect(lexer.LBRACE)
	if err != nil {
		return nil, err
	}

	restore := p.buf.setPolicy(heedNewlines)
	defer restore()

	block := &ast.Block{Offset: open.Offset}
	p.skipNewlines()
	for {
		switch tok := p.peek(); tok.Type {
		case lexer.RBRACE:
			p.consume(lexer.RBRACE)
			return block, nil
		case lexer.EOF:
			return nil, p.errorf(tok.Offset, "expected %s", lexer.RBRACE)
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)

		if err := p.endStatement(lexer.RBRACE); err != nil {
			return nil, err
		}
		p.skipNewlines()
	}
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.peek().Type {
	case lexer.USE:
		return p.parseUse()
	case lexer.LET:
		return p.parseLet()
	case lexer.PRINT:
		return p.parsePrint()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.THROW:
		return p.parseThrow()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.TRY:
		return p.parseTry()
	default:
		return p.parseExpressionOrAssignment()
	}
}

// parseUse parses: use name(.name)*
func (p *Parser) parseUse() (*ast.UseStmt, error) {
	kw := p.consume(lexer.USE)

	var path []ident.Identifier
	for {
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		path = append(path, p.ident(name.Literal))
		if !p.check(lexer.DOT) {
			break
		}
		p.consume(lexer.DOT)
	}

	return &ast.UseStmt{
		Path:       path,
		Annotation: annotation.NewUse(path[len(path)-1]),
		Offset:     kw.Offset,
	}, nil
}

// parseLet parses: let $name [= expression]
func (p *Parser) parseLet() (*ast.LetStmt, error) {
	kw := p.consume(lexer.LET)
	v, err := p.expect(lexer.VARIABLE)
	if err != nil {
		return nil, err
	}

	let := &ast.LetStmt{
		Variable:       p.ident(v.Literal),
		VariableOffset: v.Offset,
		Offset:         kw.Offset,
	}
	if p.check(lexer.ASSIGN) {
		p.consume(lexer.ASSIGN)
		if let.Default, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	return let, nil
}

func (p *Parser) parsePrint() (*ast.PrintStmt, error) {
	kw := p.consume(lexer.PRINT)
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Expression: expr, Offset: kw.Offset}, nil
}

// parseReturn parses: return [expression]. The value is absent when the
// statement ends right after the keyword.
func (p *Parser) parseReturn() (*ast.ReturnStmt, error) {
	kw := p.consume(lexer.RETURN)
	ret := &ast.ReturnStmt{Offset: kw.Offset}

	switch p.peek().Type {
	case lexer.NEWLINE, lexer.RBRACE, lexer.EOF:
		return ret, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	ret.Expression = expr
	return ret, nil
}

func (p *Parser) parseThrow() (*ast.ThrowStmt, error) {
	kw := p.consume(lexer.THROW)
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ThrowStmt{Expression: expr, Offset: kw.Offset}, nil
}

// parseIf parses: if test { } (else if test { })* [else { }]
// Newlines between the clauses are insignificant.
func (p *Parser) parseIf() (*ast.IfStmt, error) {
	restore := p.buf.setPolicy(ignoreNewlines)
	defer restore()

	kw := p.consume(lexer.IF)
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Test: test, Block: block, Offset: kw.Offset}

	for p.check(lexer.ELSE) {
		elseTok := p.consume(lexer.ELSE)

		if !p.check(lexer.IF) {
			block, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			stmt.Else = &ast.Else{Block: block, Offset: elseTok.Offset}
			break
		}

		p.consume(lexer.IF)
		test, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.ElseIfs = append(stmt.ElseIfs, &ast.ElseIf{
			Test:   test,
			Block:  block,
			Offset: elseTok.Offset,
		})
	}

	return stmt, nil
}

// parseWhile parses: while test { } [else { }]
func (p *Parser) parseWhile() (*ast.WhileStmt, error) {
	restore := p.buf.setPolicy(ignoreNewlines)
	defer restore()

	kw := p.consume(lexer.WHILE)
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.WhileStmt{Test: test, Block: block, Offset: kw.Offset}

	if stmt.Else, err = p.parseElse(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseTry parses: try { } (catch [Type] $e { })* [else { }] [finally { }]
func (p *Parser) parseTry() (*ast.TryStmt, error) {
	restore := p.buf.setPolicy(ignoreNewlines)
	defer restore()

	kw := p.consume(lexer.TRY)
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.TryStmt{Block: block, Offset: kw.Offset}

	for p.check(lexer.CATCH) {
		c, err := p.parseCatch()
		if err != nil {
			return nil, err
		}
		stmt.Catches = append(stmt.Catches, c)
	}

	if stmt.Else, err = p.parseElse(); err != nil {
		return nil, err
	}

	if p.check(lexer.FINALLY) {
		fin := p.consume(lexer.FINALLY)
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Finally = &ast.Finally{Block: block, Offset: fin.Offset}
	}

	return stmt, nil
}

// parseCatch parses one catch clause. `catch $e {` has no type; anything
// else before the variable is the type expression.
func (p *Parser) parseCatch() (*ast.Catch, error) {
	kw := p.consume(lexer.CATCH)
	c := &ast.Catch{Offset: kw.Offset}

	if !p.check(lexer.VARIABLE) || p.buf.peekN(1).Type != lexer.LBRACE {
		typ, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		c.Type = typ
	}

	v, err := p.expect(lexer.VARIABLE)
	if err != nil {
		return nil, err
	}
	c.Variable = p.ident(v.Literal)
	c.VariableOffset = v.Offset

	if c.Block, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return c, nil
}

// parseElse parses an optional trailing else block
func (p *Parser) parseElse() (*ast.Else, error) {
	if !p.check(lexer.ELSE) {
		return nil, nil
	}
	kw := p.consume(lexer.ELSE)
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Else{Block: block, Offset: kw.Offset}, nil
}

// parseExpressionOrAssignment parses an expression statement, or an
// assignment when the expression is followed by `=`.
func (p *Parser) parseExpressionOrAssignment() (ast.Statement, error) {
	start := p.buf.offset()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if !p.check(lexer.ASSIGN) {
		return &ast.ExprStmt{Expression: expr}, nil
	}

	target, err := p.toLvalue(expr, start)
	if err != nil {
		return nil, err
	}
	eq := p.consume(lexer.ASSIGN)
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.AssignStmt{Lvalue: target, Rvalue: value, Offset: eq.Offset}, nil
}
