package linter

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lhaig/burn/internal/ast"
	"github.com/lhaig/burn/internal/diagnostic"
	"github.com/lhaig/burn/internal/ident"
)

// Rule names, usable in the lint.disabled config list
const (
	RuleEmptyBlock       = "empty-block"
	RuleUnreachableCatch = "unreachable-catch"
	RuleDuplicateLet     = "duplicate-let"
	RuleSelfAssignment   = "self-assignment"
	RuleDuplicateUse     = "duplicate-use"
	RuleVariableNaming   = "variable-naming"
	RuleTypeNaming       = "type-naming"
)

// Rules returns every rule name in a stable order
func Rules() []string {
	return []string{
		RuleEmptyBlock,
		RuleUnreachableCatch,
		RuleDuplicateLet,
		RuleSelfAssignment,
		RuleDuplicateUse,
		RuleVariableNaming,
		RuleTypeNaming,
	}
}

// IsRule reports whether name is a known rule
func IsRule(name string) bool {
	for _, r := range Rules() {
		if r == name {
			return true
		}
	}
	return false
}

// Linter performs style and best-practice checks on a syntax tree.
// It reports warnings (never errors) using the diagnostic system.
type Linter struct {
	diag     *diagnostic.Diagnostics
	disabled map[string]bool
}

// Lint runs all enabled rules on root and returns the warnings. source is
// the text root was parsed from and is used to locate diagnostics.
func Lint(root *ast.Root, source string, disabled ...string) *diagnostic.Diagnostics {
	l := &Linter{
		diag:     diagnostic.New(source),
		disabled: make(map[string]bool),
	}
	for _, name := range disabled {
		l.disabled[name] = true
	}

	l.lintStatements(root.Statements)
	return l.diag
}

func (l *Linter) warn(rule string, offset int, hint string, format string, args ...interface{}) {
	if l.disabled[rule] {
		return
	}
	l.diag.Add(diagnostic.Diagnostic{
		Severity: diagnostic.Warning,
		Message:  fmt.Sprintf(format, args...),
		Offset:   offset,
		Rule:     rule,
		Hint:     hint,
	})
}

// blockScope tracks the names bound directly in one statement list
type blockScope struct {
	lets map[ident.Identifier]bool
	uses map[ident.Identifier]bool
}

func (l *Linter) lintStatements(stmts []ast.Statement) {
	scope := &blockScope{
		lets: make(map[ident.Identifier]bool),
		uses: make(map[ident.Identifier]bool),
	}
	for _, stmt := range stmts {
		l.lintStatement(stmt, scope)
	}
}

// lintBlock checks a clause body. what names the clause in messages.
func (l *Linter) lintBlock(b *ast.Block, what string) {
	if len(b.Statements) == 0 {
		l.warn(RuleEmptyBlock, b.Offset, "", "empty %s block", what)
		return
	}
	l.lintStatements(b.Statements)
}

func (l *Linter) lintStatement(stmt ast.Statement, scope *blockScope) {
	switch s := stmt.(type) {
	case *ast.UseStmt:
		name := s.Name()
		if scope.uses[name] {
			l.warn(RuleDuplicateUse, s.Offset, "", "`%s` is already imported in this block", name)
		}
		scope.uses[name] = true

	case *ast.LetStmt:
		if scope.lets[s.Variable] {
			l.warn(RuleDuplicateLet, s.VariableOffset, "assign to the existing variable instead",
				"`$%s` is already declared in this block", s.Variable)
		}
		scope.lets[s.Variable] = true
		l.checkVariableName(s.Variable, s.VariableOffset)
		l.lintExpression(s.Default)

	case *ast.AssignStmt:
		l.checkSelfAssignment(s)
		if dot, ok := s.Lvalue.(*ast.DotAccessLvalue); ok {
			l.lintExpression(dot.Expression)
		}
		l.lintExpression(s.Rvalue)

	case *ast.ExprStmt:
		l.lintExpression(s.Expression)

	case *ast.PrintStmt:
		l.lintExpression(s.Expression)

	case *ast.ReturnStmt:
		l.lintExpression(s.Expression)

	case *ast.ThrowStmt:
		l.lintExpression(s.Expression)

	case *ast.IfStmt:
		l.lintExpression(s.Test)
		l.lintBlock(s.Block, "if")
		for _, elseIf := range s.ElseIfs {
			l.lintExpression(elseIf.Test)
			l.lintBlock(elseIf.Block, "else if")
		}
		if s.Else != nil {
			l.lintBlock(s.Else.Block, "else")
		}

	case *ast.WhileStmt:
		l.lintExpression(s.Test)
		l.lintBlock(s.Block, "while")
		if s.Else != nil {
			l.lintBlock(s.Else.Block, "else")
		}

	case *ast.TryStmt:
		l.lintTry(s)
	}
}

func (l *Linter) lintTry(s *ast.TryStmt) {
	l.lintBlock(s.Block, "try")

	catchAll := false
	for _, c := range s.Catches {
		if catchAll {
			l.warn(RuleUnreachableCatch, c.Offset, "move the catch-all clause last",
				"catch clause is unreachable after a catch-all clause")
		}
		if c.Type == nil {
			catchAll = true
		} else {
			l.checkTypeNames(c.Type)
		}
		l.checkVariableName(c.Variable, c.VariableOffset)
		l.lintBlock(c.Block, "catch")
	}

	if s.Else != nil {
		l.lintBlock(s.Else.Block, "else")
	}
	if s.Finally != nil {
		l.lintBlock(s.Finally.Block, "finally")
	}
}

// lintExpression looks for function literals inside e and checks them
func (l *Linter) lintExpression(e ast.Expression) {
	ast.Walk(e, func(n ast.Node) bool {
		fn, ok := n.(*ast.Function)
		if !ok {
			return true
		}
		l.lintFunction(fn)
		return false
	})
}

func (l *Linter) lintFunction(fn *ast.Function) {
	for _, p := range fn.Parameters {
		l.checkVariableName(p.Name, p.Offset)
		if p.Type != nil {
			l.checkTypeNames(p.Type)
			l.lintExpression(p.Type)
		}
		l.lintExpression(p.Default)
	}
	l.lintBlock(fn.Body, "function")
}

// --- Lint rules ---

// checkSelfAssignment warns about `$x = $x`
func (l *Linter) checkSelfAssignment(s *ast.AssignStmt) {
	target, ok := s.Lvalue.(*ast.VariableLvalue)
	if !ok {
		return
	}
	if v, ok := s.Rvalue.(*ast.Variable); ok && v.Name == target.Name {
		l.warn(RuleSelfAssignment, target.Offset, "", "`$%s` is assigned to itself", target.Name)
	}
}

// checkVariableName warns if a variable name is not snake_case
func (l *Linter) checkVariableName(name ident.Identifier, offset int) {
	if !isSnakeCase(name.String()) {
		l.warn(RuleVariableNaming, offset, "",
			"variable `$%s` should use snake_case", name)
	}
}

// checkTypeNames warns about lowercase names used as types, e.g. in
// `catch error $e`
func (l *Linter) checkTypeNames(typ ast.Expression) {
	ast.Walk(typ, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Name:
			if !isPascalCase(n.Identifier.String()) {
				l.warn(RuleTypeNaming, n.Offset, "",
					"type `%s` should use PascalCase", n.Identifier)
			}
		case *ast.Union:
			return true
		}
		return false
	})
}

// isSnakeCase returns true if the name follows snake_case conventions:
// lowercase letters, digits, and underscores only, not starting with a digit.
func isSnakeCase(name string) bool {
	if len(name) == 0 {
		return false
	}
	for _, r := range name {
		if !unicode.IsLower(r) && r != '_' && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isPascalCase returns true if the name starts with an uppercase letter
// and contains no underscores.
func isPascalCase(name string) bool {
	if len(name) == 0 {
		return false
	}
	runes := []rune(name)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	return !strings.ContainsRune(name, '_')
}
