package ast

import (
	"fmt"
	"strings"

	"github.com/lhaig/burn/internal/ident"
)

// PrintStmt returns a tree-like string representation of the AST for debugging
func Print(node Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

func printBlock(sb *strings.Builder, label string, b *Block, indent int) {
	prefix := strings.Repeat("  ", indent)
	if b == nil || len(b.Statements) == 0 {
		sb.WriteString(fmt.Sprintf("%s%s: empty\n", prefix, label))
		return
	}
	sb.WriteString(fmt.Sprintf("%s%s:\n", prefix, label))
	for _, stmt := range b.Statements {
		printNode(sb, stmt, indent+1)
	}
}

func printChild(sb *strings.Builder, label string, node Node, indent int) {
	sb.WriteString(fmt.Sprintf("%s%s:\n", strings.Repeat("  ", indent), label))
	printNode(sb, node, indent+1)
}

func printNode(sb *strings.Builder, node Node, indent int) {
	if node == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *Root:
		sb.WriteString(prefix + "Root\n")
		for _, stmt := range n.Statements {
			printNode(sb, stmt, indent+1)
		}

	case *Block:
		printBlock(sb, "Block", n, indent)

	case *UseStmt:
		sb.WriteString(fmt.Sprintf("%sUse: %s\n", prefix, joinPath(n.Path)))

	case *ExprStmt:
		sb.WriteString(prefix + "ExpressionStatement\n")
		printNode(sb, n.Expression, indent+1)

	case *AssignStmt:
		sb.WriteString(prefix + "Assignment\n")
		printChild(sb, "Target", n.Lvalue, indent+1)
		printChild(sb, "Value", n.Rvalue, indent+1)

	case *LetStmt:
		sb.WriteString(fmt.Sprintf("%sLet: $%s\n", prefix, n.Variable))
		if n.Default != nil {
			printChild(sb, "Value", n.Default, indent+1)
		}

	case *PrintStmt:
		sb.WriteString(prefix + "Print\n")
		printNode(sb, n.Expression, indent+1)

	case *ReturnStmt:
		sb.WriteString(prefix + "Return\n")
		if n.Expression != nil {
			printNode(sb, n.Expression, indent+1)
		}

	case *ThrowStmt:
		sb.WriteString(prefix + "Throw\n")
		printNode(sb, n.Expression, indent+1)

	case *IfStmt:
		sb.WriteString(prefix + "If\n")
		printChild(sb, "Test", n.Test, indent+1)
		printBlock(sb, "Then", n.Block, indent+1)
		for _, elseIf := range n.ElseIfs {
			printNode(sb, elseIf, indent+1)
		}
		if n.Else != nil {
			printNode(sb, n.Else, indent+1)
		}

	case *ElseIf:
		sb.WriteString(prefix + "ElseIf\n")
		printChild(sb, "Test", n.Test, indent+1)
		printBlock(sb, "Then", n.Block, indent+1)

	case *Else:
		printBlock(sb, "Else", n.Block, indent)

	case *Finally:
		printBlock(sb, "Finally", n.Block, indent)

	case *TryStmt:
		sb.WriteString(prefix + "Try\n")
		printBlock(sb, "Body", n.Block, indent+1)
		for _, c := range n.Catches {
			printNode(sb, c, indent+1)
		}
		if n.Else != nil {
			printNode(sb, n.Else, indent+1)
		}
		if n.Finally != nil {
			printNode(sb, n.Finally, indent+1)
		}

	case *Catch:
		sb.WriteString(fmt.Sprintf("%sCatch: $%s\n", prefix, n.Variable))
		if n.Type != nil {
			printChild(sb, "Type", n.Type, indent+1)
		}
		printBlock(sb, "Body", n.Block, indent+1)

	case *WhileStmt:
		sb.WriteString(prefix + "While\n")
		printChild(sb, "Test", n.Test, indent+1)
		printBlock(sb, "Body", n.Block, indent+1)
		if n.Else != nil {
			printNode(sb, n.Else, indent+1)
		}

	case *Function:
		sb.WriteString(prefix + "Function\n")
		if len(n.Parameters) > 0 {
			sb.WriteString(prefix + "  Params:\n")
			for _, p := range n.Parameters {
				printNode(sb, p, indent+2)
			}
		} else {
			sb.WriteString(prefix + "  Params: none\n")
		}
		printBlock(sb, "Body", n.Body, indent+1)

	case *FunctionParameter:
		sb.WriteString(fmt.Sprintf("%sParam: $%s\n", prefix, n.Name))
		if n.Type != nil {
			printChild(sb, "Type", n.Type, indent+1)
		}
		if n.Default != nil {
			printChild(sb, "Default", n.Default, indent+1)
		}

	case *Not:
		sb.WriteString(prefix + "Not\n")
		printNode(sb, n.Operand, indent+1)

	case BinaryExpression:
		left, right := n.Operands()
		sb.WriteString(fmt.Sprintf("%s%s: %s\n", prefix, binaryName(n), n.Operator()))
		printChild(sb, "Left", left, indent+1)
		printChild(sb, "Right", right, indent+1)

	case *DotAccess:
		sb.WriteString(fmt.Sprintf("%sDotAccess: %s\n", prefix, n.Name))
		printNode(sb, n.Expression, indent+1)

	case *ItemAccess:
		sb.WriteString(prefix + "ItemAccess\n")
		printChild(sb, "Object", n.Expression, indent+1)
		printChild(sb, "Key", n.Key, indent+1)

	case *Call:
		sb.WriteString(prefix + "Call\n")
		printChild(sb, "Function", n.Function, indent+1)
		if len(n.Arguments) > 0 {
			sb.WriteString(prefix + "  Args:\n")
			for _, arg := range n.Arguments {
				printNode(sb, arg, indent+2)
			}
		} else {
			sb.WriteString(prefix + "  Args: none\n")
		}

	case *Variable:
		sb.WriteString(fmt.Sprintf("%sVariable: $%s\n", prefix, n.Name))

	case *Name:
		sb.WriteString(fmt.Sprintf("%sName: %s\n", prefix, n.Identifier))

	case *String:
		sb.WriteString(fmt.Sprintf("%sString: %q\n", prefix, n.Value))

	case *Integer:
		sb.WriteString(fmt.Sprintf("%sInteger: %d\n", prefix, n.Value))

	case *Float:
		sb.WriteString(fmt.Sprintf("%sFloat: %g\n", prefix, n.Value))

	case *Boolean:
		sb.WriteString(fmt.Sprintf("%sBoolean: %t\n", prefix, n.Value))

	case *Nothing:
		sb.WriteString(prefix + "Nothing\n")

	case *VariableLvalue:
		sb.WriteString(fmt.Sprintf("%sVariableLvalue: $%s\n", prefix, n.Name))

	case *DotAccessLvalue:
		sb.WriteString(fmt.Sprintf("%sDotAccessLvalue: %s\n", prefix, n.Name))
		printNode(sb, n.Expression, indent+1)

	default:
		sb.WriteString(fmt.Sprintf("%sUnknown node type: %T\n", prefix, node))
	}
}

func binaryName(e BinaryExpression) string {
	name := fmt.Sprintf("%T", e)
	return strings.TrimPrefix(name, "*ast.")
}

func joinPath(path []ident.Identifier) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = id.String()
	}
	return strings.Join(parts, ".")
}
