// Package format prints a syntax tree back as canonical Burn source.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lhaig/burn/internal/ast"
	"github.com/lhaig/burn/internal/literal"
)

// Format takes a Root and returns canonical source code. Parsing the
// result yields a tree equal to root.
func Format(root *ast.Root) string {
	f := &formatter{}
	for _, stmt := range root.Statements {
		f.formatStmt(stmt)
	}
	return f.sb.String()
}

// Expression returns the canonical source of a single expression
func Expression(e ast.Expression) string {
	f := &formatter{}
	return f.formatExpr(e)
}

type formatter struct {
	sb     strings.Builder
	indent int
}

func (f *formatter) emit(s string) {
	f.sb.WriteString(s)
}

func (f *formatter) emitf(format string, args ...any) {
	f.sb.WriteString(fmt.Sprintf(format, args...))
}

func (f *formatter) emitLine(s string) {
	f.sb.WriteString(f.indentStr())
	f.sb.WriteString(s)
	f.sb.WriteString("\n")
}

func (f *formatter) emitLinef(format string, args ...any) {
	f.emitLine(fmt.Sprintf(format, args...))
}

func (f *formatter) incIndent() { f.indent++ }
func (f *formatter) decIndent() { f.indent-- }

func (f *formatter) indentStr() string {
	return strings.Repeat("    ", f.indent)
}

// --- statements ---

// formatBody writes the statements of b followed by the closing brace.
// The opening brace is already on the current line.
func (f *formatter) formatBody(b *ast.Block) {
	if len(b.Statements) == 0 {
		f.emit(" }")
		return
	}
	f.emit("\n")
	f.incIndent()
	for _, stmt := range b.Statements {
		f.formatStmt(stmt)
	}
	f.decIndent()
	f.emit(f.indentStr() + "}")
}

func (f *formatter) formatStmt(s ast.Statement) {
	switch stmt := s.(type) {
	case *ast.UseStmt:
		parts := make([]string, len(stmt.Path))
		for i, id := range stmt.Path {
			parts[i] = id.String()
		}
		f.emitLinef("use %s", strings.Join(parts, "."))

	case *ast.LetStmt:
		if stmt.Default != nil {
			f.emitLinef("let $%s = %s", stmt.Variable, f.formatExpr(stmt.Default))
		} else {
			f.emitLinef("let $%s", stmt.Variable)
		}

	case *ast.AssignStmt:
		f.emitLinef("%s = %s", f.formatLvalue(stmt.Lvalue), f.formatExpr(stmt.Rvalue))

	case *ast.PrintStmt:
		f.emitLinef("print %s", f.formatExpr(stmt.Expression))

	case *ast.ReturnStmt:
		if stmt.Expression != nil {
			f.emitLinef("return %s", f.formatExpr(stmt.Expression))
		} else {
			f.emitLine("return")
		}

	case *ast.ThrowStmt:
		f.emitLinef("throw %s", f.formatExpr(stmt.Expression))

	case *ast.IfStmt:
		f.emitf("%sif %s {", f.indentStr(), f.formatExpr(stmt.Test))
		f.formatBody(stmt.Block)
		for _, elseIf := range stmt.ElseIfs {
			f.emitf(" else if %s {", f.formatExpr(elseIf.Test))
			f.formatBody(elseIf.Block)
		}
		f.formatElse(stmt.Else)
		f.emit("\n")

	case *ast.WhileStmt:
		f.emitf("%swhile %s {", f.indentStr(), f.formatExpr(stmt.Test))
		f.formatBody(stmt.Block)
		f.formatElse(stmt.Else)
		f.emit("\n")

	case *ast.TryStmt:
		f.emit(f.indentStr() + "try {")
		f.formatBody(stmt.Block)
		for _, c := range stmt.Catches {
			if c.Type != nil {
				f.emitf(" catch %s $%s {", f.formatExpr(c.Type), c.Variable)
			} else {
				f.emitf(" catch $%s {", c.Variable)
			}
			f.formatBody(c.Block)
		}
		f.formatElse(stmt.Else)
		if stmt.Finally != nil {
			f.emit(" finally {")
			f.formatBody(stmt.Finally.Block)
		}
		f.emit("\n")

	case *ast.ExprStmt:
		f.emitLine(f.formatExpr(stmt.Expression))
	}
}

func (f *formatter) formatElse(e *ast.Else) {
	if e == nil {
		return
	}
	f.emit(" else {")
	f.formatBody(e.Block)
}

func (f *formatter) formatLvalue(l ast.Lvalue) string {
	switch lv := l.(type) {
	case *ast.VariableLvalue:
		return "$" + lv.Name.String()
	case *ast.DotAccessLvalue:
		return fmt.Sprintf("%s.%s", f.formatExprPrec(lv.Expression, precAccess), lv.Name)
	}
	return "<unknown>"
}

// --- expressions ---

// Binding strength of each expression form, mirroring the parser's tiers
const (
	precLogic          = 10
	precNot            = 11
	precComparison     = 20
	precUnion          = 25
	precAdditive       = 30
	precMultiplicative = 31
	precAccess         = 40
	precAtom           = 50
)

func precedence(e ast.Expression) int {
	switch e.(type) {
	case *ast.And, *ast.Or:
		return precLogic
	case *ast.Not:
		return precNot
	case *ast.Is, *ast.Eq, *ast.Neq, *ast.Lt, *ast.Gt, *ast.LtEq, *ast.GtEq:
		return precComparison
	case *ast.Union:
		return precUnion
	case *ast.Addition, *ast.Subtraction:
		return precAdditive
	case *ast.Multiplication, *ast.Division:
		return precMultiplicative
	case *ast.DotAccess, *ast.ItemAccess, *ast.Call:
		return precAccess
	}
	return precAtom
}

func (f *formatter) formatExpr(e ast.Expression) string {
	return f.formatExprPrec(e, 0)
}

// formatExprPrec formats an expression, wrapping it in parentheses when it
// binds more loosely than parentPrec requires.
func (f *formatter) formatExprPrec(e ast.Expression, parentPrec int) string {
	result := f.formatBare(e)
	if precedence(e) < parentPrec {
		return "(" + result + ")"
	}
	return result
}

func (f *formatter) formatBare(e ast.Expression) string {
	switch expr := e.(type) {
	case *ast.And:
		return f.formatLogic(expr, expr.Left, expr.Right)

	case *ast.Or:
		return f.formatLogic(expr, expr.Left, expr.Right)

	case *ast.Not:
		return "not " + f.formatExprPrec(expr.Operand, precNot+1)

	case ast.BinaryExpression:
		prec := precedence(expr)
		left, right := expr.Operands()
		leftPrec := prec
		if prec == precComparison {
			// comparisons do not chain
			leftPrec = prec + 1
		}
		return fmt.Sprintf("%s %s %s",
			f.formatExprPrec(left, leftPrec), expr.Operator(), f.formatExprPrec(right, prec+1))

	case *ast.DotAccess:
		return fmt.Sprintf("%s.%s", f.formatExprPrec(expr.Expression, precAccess), expr.Name)

	case *ast.ItemAccess:
		return fmt.Sprintf("%s[%s]", f.formatExprPrec(expr.Expression, precAccess), f.formatExpr(expr.Key))

	case *ast.Call:
		args := make([]string, len(expr.Arguments))
		for i, arg := range expr.Arguments {
			args[i] = f.formatExpr(arg)
		}
		return fmt.Sprintf("%s(%s)", f.formatExprPrec(expr.Function, precAccess), strings.Join(args, ", "))

	case *ast.Function:
		return f.formatFunction(expr)

	case *ast.Variable:
		return "$" + expr.Name.String()

	case *ast.Name:
		return expr.Identifier.String()

	case *ast.String:
		return literal.Quote(expr.Value)

	case *ast.Integer:
		return strconv.FormatInt(expr.Value, 10)

	case *ast.Float:
		return formatFloat(expr.Value)

	case *ast.Boolean:
		if expr.Value {
			return "true"
		}
		return "false"

	case *ast.Nothing:
		return "nothing"

	default:
		return "<unknown>"
	}
}

// formatLogic prints an and/or chain. An operand of the other logic
// operator is parenthesized since the two cannot be mixed.
func (f *formatter) formatLogic(e ast.BinaryExpression, left, right ast.Expression) string {
	l := f.formatExprPrec(left, precLogic)
	if precedence(left) == precLogic && fmt.Sprintf("%T", left) != fmt.Sprintf("%T", e) {
		l = "(" + l + ")"
	}
	return fmt.Sprintf("%s %s %s", l, e.Operator(), f.formatExprPrec(right, precLogic+1))
}

func (f *formatter) formatFunction(fn *ast.Function) string {
	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		s := "$" + p.Name.String()
		if p.Type != nil {
			s = f.formatExpr(p.Type) + " " + s
		}
		if p.Default != nil {
			s += " = " + f.formatExpr(p.Default)
		}
		params[i] = s
	}

	inner := &formatter{indent: f.indent}
	inner.emitf("function (%s) {", strings.Join(params, ", "))
	inner.formatBody(fn.Body)
	return inner.sb.String()
}

// formatFloat prints v so that it lexes as a float again
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
