package ast

import (
	"fmt"

	"github.com/lhaig/burn/internal/annotation"
	"github.com/lhaig/burn/internal/ident"
)

// Node is the base interface for all AST nodes. Pos returns the byte
// offset of the token that introduced the node.
type Node interface {
	Pos() int
}

// Statement nodes
type Statement interface {
	Node
	stmtNode()
}

// Expression nodes
type Expression interface {
	Node
	exprNode()
}

// Lvalue nodes are the targets of an assignment
type Lvalue interface {
	Node
	lvalueNode()
}

// BinaryExpression is implemented by every two-operand expression
type BinaryExpression interface {
	Expression
	Operands() (left, right Expression)
	Operator() string
}

// bindVariable fills a variable annotation slot that must still be empty
func bindVariable(slot **annotation.Variable, v *annotation.Variable, node string) {
	if *slot != nil {
		panic(fmt.Sprintf("ast: %s annotation bound twice", node))
	}
	*slot = v
}

// Root represents a whole source unit
type Root struct {
	Statements []Statement
	Frame      *annotation.Frame
}

func (r *Root) Pos() int {
	if len(r.Statements) > 0 {
		return r.Statements[0].Pos()
	}
	return 0
}

// Block represents a braced statement list. Offset is the `{`.
type Block struct {
	Statements []Statement
	Offset     int
}

func (b *Block) Pos() int { return b.Offset }

// Statements

// UseStmt represents `use a.b.c`; the last segment is the bound name
type UseStmt struct {
	Path       []ident.Identifier
	Annotation *annotation.Use
	Offset     int
}

func (u *UseStmt) Pos() int  { return u.Offset }
func (u *UseStmt) stmtNode() {}

// Name returns the name the statement binds
func (u *UseStmt) Name() ident.Identifier { return u.Path[len(u.Path)-1] }

// ExprStmt is an expression evaluated for its effect
type ExprStmt struct {
	Expression Expression
}

func (e *ExprStmt) Pos() int  { return e.Expression.Pos() }
func (e *ExprStmt) stmtNode() {}

// AssignStmt represents `target = value`. Offset is the `=`.
type AssignStmt struct {
	Lvalue Lvalue
	Rvalue Expression
	Offset int
}

func (a *AssignStmt) Pos() int  { return a.Offset }
func (a *AssignStmt) stmtNode() {}

// LetStmt declares a variable with an optional initial value
type LetStmt struct {
	Variable       ident.Identifier
	VariableOffset int
	Annotation     *annotation.Variable
	Default        Expression
	Offset         int
}

func (l *LetStmt) Pos() int  { return l.Offset }
func (l *LetStmt) stmtNode() {}

// Bind records the variable's storage. It panics if already bound.
func (l *LetStmt) Bind(v *annotation.Variable) { bindVariable(&l.Annotation, v, "let") }

// PrintStmt represents `print expr`
type PrintStmt struct {
	Expression Expression
	Offset     int
}

func (p *PrintStmt) Pos() int  { return p.Offset }
func (p *PrintStmt) stmtNode() {}

// ReturnStmt represents `return [expr]`; Expression is nil for a bare return
type ReturnStmt struct {
	Expression Expression
	Offset     int
}

func (r *ReturnStmt) Pos() int  { return r.Offset }
func (r *ReturnStmt) stmtNode() {}

// ThrowStmt represents `throw expr`
type ThrowStmt struct {
	Expression Expression
	Offset     int
}

func (t *ThrowStmt) Pos() int  { return t.Offset }
func (t *ThrowStmt) stmtNode() {}

// IfStmt represents an if / else if / else chain
type IfStmt struct {
	Test    Expression
	Block   *Block
	ElseIfs []*ElseIf
	Else    *Else
	Offset  int
}

func (i *IfStmt) Pos() int  { return i.Offset }
func (i *IfStmt) stmtNode() {}

// ElseIf is one `else if test { }` clause. Offset is the `else`.
type ElseIf struct {
	Test   Expression
	Block  *Block
	Offset int
}

func (e *ElseIf) Pos() int { return e.Offset }

// Else is a trailing `else { }` clause of an if, while or try
type Else struct {
	Block  *Block
	Offset int
}

func (e *Else) Pos() int { return e.Offset }

// Finally is the `finally { }` clause of a try
type Finally struct {
	Block  *Block
	Offset int
}

func (f *Finally) Pos() int { return f.Offset }

// TryStmt represents try / catch / else / finally
type TryStmt struct {
	Block   *Block
	Catches []*Catch
	Else    *Else
	Finally *Finally
	Offset  int
}

func (t *TryStmt) Pos() int  { return t.Offset }
func (t *TryStmt) stmtNode() {}

// Catch is one `catch [Type] $var { }` clause. Type is nil when the
// clause catches everything.
type Catch struct {
	Type           Expression
	Variable       ident.Identifier
	VariableOffset int
	Annotation     *annotation.Variable
	Block          *Block
	Offset         int
}

func (c *Catch) Pos() int { return c.Offset }

// Bind records the catch variable's storage. It panics if already bound.
func (c *Catch) Bind(v *annotation.Variable) { bindVariable(&c.Annotation, v, "catch") }

// WhileStmt represents `while test { } [else { }]`
type WhileStmt struct {
	Test   Expression
	Block  *Block
	Else   *Else
	Offset int
}

func (w *WhileStmt) Pos() int  { return w.Offset }
func (w *WhileStmt) stmtNode() {}

// Expressions

// Function is a function literal. Frame is always a closure frame.
type Function struct {
	Parameters []*FunctionParameter
	Frame      *annotation.Frame
	Body       *Block
	Offset     int
}

func (f *Function) Pos() int  { return f.Offset }
func (f *Function) exprNode() {}

// FunctionParameter is `[Type] $name [= default]`. Offset is the variable.
type FunctionParameter struct {
	Type       Expression
	Default    Expression
	Name       ident.Identifier
	Offset     int
	Annotation *annotation.Variable
}

func (p *FunctionParameter) Pos() int { return p.Offset }

// Bind records the parameter's storage. It panics if already bound.
func (p *FunctionParameter) Bind(v *annotation.Variable) {
	bindVariable(&p.Annotation, v, "parameter")
}

// Not represents `not expr`
type Not struct {
	Operand Expression
	Offset  int
}

func (n *Not) Pos() int  { return n.Offset }
func (n *Not) exprNode() {}

// And represents `left and right`
type And struct {
	Left, Right Expression
	Offset      int
}

func (e *And) Pos() int                           { return e.Offset }
func (e *And) exprNode()                          {}
func (e *And) Operands() (Expression, Expression) { return e.Left, e.Right }
func (e *And) Operator() string                   { return "and" }

// Or represents `left or right`
type Or struct {
	Left, Right Expression
	Offset      int
}

func (e *Or) Pos() int                           { return e.Offset }
func (e *Or) exprNode()                          {}
func (e *Or) Operands() (Expression, Expression) { return e.Left, e.Right }
func (e *Or) Operator() string                   { return "or" }

// Is represents `left is right`
type Is struct {
	Left, Right Expression
	Offset      int
}

func (e *Is) Pos() int                           { return e.Offset }
func (e *Is) exprNode()                          {}
func (e *Is) Operands() (Expression, Expression) { return e.Left, e.Right }
func (e *Is) Operator() string                   { return "is" }

// Eq represents `left == right`
type Eq struct {
	Left, Right Expression
	Offset      int
}

func (e *Eq) Pos() int                           { return e.Offset }
func (e *Eq) exprNode()                          {}
func (e *Eq) Operands() (Expression, Expression) { return e.Left, e.Right }
func (e *Eq) Operator() string                   { return "==" }

// Neq represents `left != right`
type Neq struct {
	Left, Right Expression
	Offset      int
}

func (e *Neq) Pos() int                           { return e.Offset }
func (e *Neq) exprNode()                          {}
func (e *Neq) Operands() (Expression, Expression) { return e.Left, e.Right }
func (e *Neq) Operator() string                   { return "!=" }

// Lt represents `left < right`
type Lt struct {
	Left, Right Expression
	Offset      int
}

func (e *Lt) Pos() int                           { return e.Offset }
func (e *Lt) exprNode()                          {}
func (e *Lt) Operands() (Expression, Expression) { return e.Left, e.Right }
func (e *Lt) Operator() string                   { return "<" }

// Gt represents `left > right`
type Gt struct {
	Left, Right Expression
	Offset      int
}

func (e *Gt) Pos() int                           { return e.Offset }
func (e *Gt) exprNode()                          {}
func (e *Gt) Operands() (Expression, Expression) { return e.Left, e.Right }
func (e *Gt) Operator() string                   { return ">" }

// LtEq represents `left <= right`
type LtEq struct {
	Left, Right Expression
	Offset      int
}

func (e *LtEq) Pos() int                           { return e.Offset }
func (e *LtEq) exprNode()                          {}
func (e *LtEq) Operands() (Expression, Expression) { return e.Left, e.Right }
func (e *LtEq) Operator() string                   { return "<=" }

// GtEq represents `left >= right`
type GtEq struct {
	Left, Right Expression
	Offset      int
}

func (e *GtEq) Pos() int                           { return e.Offset }
func (e *GtEq) exprNode()                          {}
func (e *GtEq) Operands() (Expression, Expression) { return e.Left, e.Right }
func (e *GtEq) Operator() string                   { return ">=" }

// Union represents `left | right`
type Union struct {
	Left, Right Expression
	Offset      int
}

func (e *Union) Pos() int                           { return e.Offset }
func (e *Union) exprNode()                          {}
func (e *Union) Operands() (Expression, Expression) { return e.Left, e.Right }
func (e *Union) Operator() string                   { return "|" }

// Addition represents `left + right`
type Addition struct {
	Left, Right Expression
	Offset      int
}

func (e *Addition) Pos() int                           { return e.Offset }
func (e *Addition) exprNode()                          {}
func (e *Addition) Operands() (Expression, Expression) { return e.Left, e.Right }
func (e *Addition) Operator() string                   { return "+" }

// Subtraction represents `left - right`
type Subtraction struct {
	Left, Right Expression
	Offset      int
}

func (e *Subtraction) Pos() int                           { return e.Offset }
func (e *Subtraction) exprNode()                          {}
func (e *Subtraction) Operands() (Expression, Expression) { return e.Left, e.Right }
func (e *Subtraction) Operator() string                   { return "-" }

// Multiplication represents `left * right`
type Multiplication struct {
	Left, Right Expression
	Offset      int
}

func (e *Multiplication) Pos() int                           { return e.Offset }
func (e *Multiplication) exprNode()                          {}
func (e *Multiplication) Operands() (Expression, Expression) { return e.Left, e.Right }
func (e *Multiplication) Operator() string                   { return "*" }

// Division represents `left / right`
type Division struct {
	Left, Right Expression
	Offset      int
}

func (e *Division) Pos() int                           { return e.Offset }
func (e *Division) exprNode()                          {}
func (e *Division) Operands() (Expression, Expression) { return e.Left, e.Right }
func (e *Division) Operator() string                   { return "/" }

// DotAccess represents `expr.name`. Offset is the `.`.
type DotAccess struct {
	Expression Expression
	Name       ident.Identifier
	Offset     int
}

func (d *DotAccess) Pos() int  { return d.Offset }
func (d *DotAccess) exprNode() {}

// ItemAccess represents `expr[key]`. The grammar does not produce it yet.
type ItemAccess struct {
	Expression Expression
	Key        Expression
	Offset     int
}

func (i *ItemAccess) Pos() int  { return i.Offset }
func (i *ItemAccess) exprNode() {}

// Call represents `callee(args)`. Offset is the `(`.
type Call struct {
	Function  Expression
	Arguments []Expression
	Offset    int
}

func (c *Call) Pos() int  { return c.Offset }
func (c *Call) exprNode() {}

// Variable is a `$name` reference
type Variable struct {
	Name       ident.Identifier
	Annotation *annotation.Variable
	Offset     int
}

func (v *Variable) Pos() int  { return v.Offset }
func (v *Variable) exprNode() {}

// Bind records which variable the reference resolves to. It panics if
// already bound.
func (v *Variable) Bind(a *annotation.Variable) { bindVariable(&v.Annotation, a, "variable") }

// Name is a bare identifier such as a type or a builtin
type Name struct {
	Identifier ident.Identifier
	Annotation *annotation.Name
	Offset     int
}

func (n *Name) Pos() int  { return n.Offset }
func (n *Name) exprNode() {}

// String is a decoded string literal
type String struct {
	Value  string
	Offset int
}

func (s *String) Pos() int  { return s.Offset }
func (s *String) exprNode() {}

// Integer is an integer literal
type Integer struct {
	Value  int64
	Offset int
}

func (i *Integer) Pos() int  { return i.Offset }
func (i *Integer) exprNode() {}

// Float is a float literal
type Float struct {
	Value  float64
	Offset int
}

func (f *Float) Pos() int  { return f.Offset }
func (f *Float) exprNode() {}

// Boolean is `true` or `false`
type Boolean struct {
	Value  bool
	Offset int
}

func (b *Boolean) Pos() int  { return b.Offset }
func (b *Boolean) exprNode() {}

// Nothing is the `nothing` literal
type Nothing struct {
	Offset int
}

func (n *Nothing) Pos() int  { return n.Offset }
func (n *Nothing) exprNode() {}

// Lvalues

// VariableLvalue is `$name` on the left of `=`
type VariableLvalue struct {
	Name       ident.Identifier
	Annotation *annotation.Variable
	Offset     int
}

func (v *VariableLvalue) Pos() int    { return v.Offset }
func (v *VariableLvalue) lvalueNode() {}

// Bind records which variable is assigned. It panics if already bound.
func (v *VariableLvalue) Bind(a *annotation.Variable) {
	bindVariable(&v.Annotation, a, "variable lvalue")
}

// DotAccessLvalue is `expr.name` on the left of `=`. Offset is the `.`.
type DotAccessLvalue struct {
	Expression Expression
	Name       ident.Identifier
	Offset     int
}

func (d *DotAccessLvalue) Pos() int    { return d.Offset }
func (d *DotAccessLvalue) lvalueNode() {}
