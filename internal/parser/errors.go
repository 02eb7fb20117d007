package parser

import (
	"fmt"

	"github.com/lhaig/burn/internal/lexer"
	"github.com/lhaig/burn/internal/origin"
)

// ParseError is the first syntax error found in a source unit
type ParseError struct {
	Offset  int
	Origin  *origin.Origin
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: offset %d: %s", e.Origin, e.Offset, e.Message)
}

// errorf builds a ParseError at offset
func (p *Parser) errorf(offset int, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Offset:  offset,
		Origin:  p.origin,
		Message: fmt.Sprintf(format, args...),
	}
}

// unexpected reports tok as not fitting the grammar at this point
func (p *Parser) unexpected(tok lexer.Token) *ParseError {
	if tok.Type == lexer.ILLEGAL {
		if len(tok.Literal) == 1 {
			return p.errorf(tok.Offset, "unexpected character `%s`", tok.Literal)
		}
		return p.errorf(tok.Offset, "%s", tok.Literal)
	}
	return p.errorf(tok.Offset, "unexpected %s", tok)
}
