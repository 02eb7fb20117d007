package parser

import "github.com/lhaig/burn/internal/ast"

// toLvalue converts the expression on the left of `=` into an assignment
// target. Only variables and dot accesses can be assigned to; offset is
// where the target expression starts.
func (p *Parser) toLvalue(expr ast.Expression, offset int) (ast.Lvalue, error) {
	switch e := expr.(type) {
	case *ast.Variable:
		return &ast.VariableLvalue{
			Name:       e.Name,
			Annotation: e.Annotation,
			Offset:     e.Offset,
		}, nil
	case *ast.DotAccess:
		return &ast.DotAccessLvalue{
			Expression: e.Expression,
			Name:       e.Name,
			Offset:     e.Offset,
		}, nil
	}
	return nil, p.errorf(offset, "invalid assignment target")
}
