package ast

import (
	"reflect"

	"github.com/lhaig/burn/internal/ident"
)

// Equal reports whether two trees have the same shape and values.
// Offsets and annotation records are ignored, so a tree re-parsed from
// formatted source compares equal to the original.
func Equal(x, y Node) bool {
	if isNil(x) || isNil(y) {
		return isNil(x) && isNil(y)
	}
	if reflect.TypeOf(x) != reflect.TypeOf(y) {
		return false
	}

	switch x := x.(type) {
	case *Root:
		y := y.(*Root)
		return equalStatements(x.Statements, y.Statements)
	case *Block:
		y := y.(*Block)
		return equalStatements(x.Statements, y.Statements)
	case *UseStmt:
		y := y.(*UseStmt)
		return equalPath(x.Path, y.Path)
	case *ExprStmt:
		return Equal(x.Expression, y.(*ExprStmt).Expression)
	case *AssignStmt:
		y := y.(*AssignStmt)
		return Equal(x.Lvalue, y.Lvalue) && Equal(x.Rvalue, y.Rvalue)
	case *LetStmt:
		y := y.(*LetStmt)
		return x.Variable == y.Variable && Equal(x.Default, y.Default)
	case *PrintStmt:
		return Equal(x.Expression, y.(*PrintStmt).Expression)
	case *ReturnStmt:
		return Equal(x.Expression, y.(*ReturnStmt).Expression)
	case *ThrowStmt:
		return Equal(x.Expression, y.(*ThrowStmt).Expression)
	case *IfStmt:
		y := y.(*IfStmt)
		if len(x.ElseIfs) != len(y.ElseIfs) {
			return false
		}
		for i := range x.ElseIfs {
			if !Equal(x.ElseIfs[i], y.ElseIfs[i]) {
				return false
			}
		}
		return Equal(x.Test, y.Test) && Equal(x.Block, y.Block) && Equal(x.Else, y.Else)
	case *ElseIf:
		y := y.(*ElseIf)
		return Equal(x.Test, y.Test) && Equal(x.Block, y.Block)
	case *Else:
		return Equal(x.Block, y.(*Else).Block)
	case *Finally:
		return Equal(x.Block, y.(*Finally).Block)
	case *TryStmt:
		y := y.(*TryStmt)
		if len(x.Catches) != len(y.Catches) {
			return false
		}
		for i := range x.Catches {
			if !Equal(x.Catches[i], y.Catches[i]) {
				return false
			}
		}
		return Equal(x.Block, y.Block) && Equal(x.Else, y.Else) && Equal(x.Finally, y.Finally)
	case *Catch:
		y := y.(*Catch)
		return x.Variable == y.Variable && Equal(x.Type, y.Type) && Equal(x.Block, y.Block)
	case *WhileStmt:
		y := y.(*WhileStmt)
		return Equal(x.Test, y.Test) && Equal(x.Block, y.Block) && Equal(x.Else, y.Else)
	case *Function:
		y := y.(*Function)
		if len(x.Parameters) != len(y.Parameters) {
			return false
		}
		for i := range x.Parameters {
			if !Equal(x.Parameters[i], y.Parameters[i]) {
				return false
			}
		}
		return Equal(x.Body, y.Body)
	case *FunctionParameter:
		y := y.(*FunctionParameter)
		return x.Name == y.Name && Equal(x.Type, y.Type) && Equal(x.Default, y.Default)
	case *Not:
		return Equal(x.Operand, y.(*Not).Operand)
	case BinaryExpression:
		xl, xr := x.Operands()
		yl, yr := y.(BinaryExpression).Operands()
		return Equal(xl, yl) && Equal(xr, yr)
	case *DotAccess:
		y := y.(*DotAccess)
		return x.Name == y.Name && Equal(x.Expression, y.Expression)
	case *ItemAccess:
		y := y.(*ItemAccess)
		return Equal(x.Expression, y.Expression) && Equal(x.Key, y.Key)
	case *Call:
		y := y.(*Call)
		if len(x.Arguments) != len(y.Arguments) {
			return false
		}
		for i := range x.Arguments {
			if !Equal(x.Arguments[i], y.Arguments[i]) {
				return false
			}
		}
		return Equal(x.Function, y.Function)
	case *Variable:
		return x.Name == y.(*Variable).Name
	case *Name:
		return x.Identifier == y.(*Name).Identifier
	case *String:
		return x.Value == y.(*String).Value
	case *Integer:
		return x.Value == y.(*Integer).Value
	case *Float:
		return x.Value == y.(*Float).Value
	case *Boolean:
		return x.Value == y.(*Boolean).Value
	case *Nothing:
		return true
	case *VariableLvalue:
		return x.Name == y.(*VariableLvalue).Name
	case *DotAccessLvalue:
		y := y.(*DotAccessLvalue)
		return x.Name == y.Name && Equal(x.Expression, y.Expression)
	}
	return false
}

func equalStatements(x, y []Statement) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !Equal(x[i], y[i]) {
			return false
		}
	}
	return true
}

func equalPath(x, y []ident.Identifier) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// isNil treats typed nil pointers stored in an interface as nil
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
