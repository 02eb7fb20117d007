package ast

// WalkFunc is called for each node during Walk. Returning false skips the
// node's children.
type WalkFunc func(Node) bool

// Walk traverses the tree rooted at node in source order, calling fn on
// each node before its children. Nil children are skipped.
func Walk(node Node, fn WalkFunc) {
	if isNil(node) || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Root:
		walkStatements(n.Statements, fn)
	case *Block:
		walkStatements(n.Statements, fn)
	case *ExprStmt:
		Walk(n.Expression, fn)
	case *AssignStmt:
		Walk(n.Lvalue, fn)
		Walk(n.Rvalue, fn)
	case *LetStmt:
		Walk(n.Default, fn)
	case *PrintStmt:
		Walk(n.Expression, fn)
	case *ReturnStmt:
		Walk(n.Expression, fn)
	case *ThrowStmt:
		Walk(n.Expression, fn)
	case *IfStmt:
		Walk(n.Test, fn)
		Walk(n.Block, fn)
		for _, elseIf := range n.ElseIfs {
			Walk(elseIf, fn)
		}
		Walk(n.Else, fn)
	case *ElseIf:
		Walk(n.Test, fn)
		Walk(n.Block, fn)
	case *Else:
		Walk(n.Block, fn)
	case *Finally:
		Walk(n.Block, fn)
	case *TryStmt:
		Walk(n.Block, fn)
		for _, c := range n.Catches {
			Walk(c, fn)
		}
		Walk(n.Else, fn)
		Walk(n.Finally, fn)
	case *Catch:
		Walk(n.Type, fn)
		Walk(n.Block, fn)
	case *WhileStmt:
		Walk(n.Test, fn)
		Walk(n.Block, fn)
		Walk(n.Else, fn)
	case *Function:
		for _, p := range n.Parameters {
			Walk(p, fn)
		}
		Walk(n.Body, fn)
	case *FunctionParameter:
		Walk(n.Type, fn)
		Walk(n.Default, fn)
	case *Not:
		Walk(n.Operand, fn)
	case BinaryExpression:
		left, right := n.Operands()
		Walk(left, fn)
		Walk(right, fn)
	case *DotAccess:
		Walk(n.Expression, fn)
	case *ItemAccess:
		Walk(n.Expression, fn)
		Walk(n.Key, fn)
	case *Call:
		Walk(n.Function, fn)
		for _, arg := range n.Arguments {
			Walk(arg, fn)
		}
	case *DotAccessLvalue:
		Walk(n.Expression, fn)
	}
}

func walkStatements(stmts []Statement, fn WalkFunc) {
	for _, stmt := range stmts {
		Walk(stmt, fn)
	}
}
