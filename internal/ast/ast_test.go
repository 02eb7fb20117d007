package ast

import (
	"strings"
	"testing"

	"github.com/lhaig/burn/internal/annotation"
	"github.com/lhaig/burn/internal/ident"
)

func id(s string) ident.Identifier { return ident.FindOrCreate(s) }

// sampleTree builds the tree for:
//
//	let $x = 1 + 2 * 3
//	if not $x { print "no" } else { $x.y = nothing }
func sampleTree(offset int) *Root {
	return &Root{
		Frame: annotation.NewFrame(),
		Statements: []Statement{
			&LetStmt{
				Variable: id("x"),
				Default: &Addition{
					Left: &Integer{Value: 1, Offset: offset},
					Right: &Multiplication{
						Left:   &Integer{Value: 2, Offset: offset},
						Right:  &Integer{Value: 3, Offset: offset},
						Offset: offset,
					},
					Offset: offset,
				},
				Offset: offset,
			},
			&IfStmt{
				Test: &Not{Operand: &Variable{Name: id("x"), Offset: offset}, Offset: offset},
				Block: &Block{Statements: []Statement{
					&PrintStmt{Expression: &String{Value: "no", Offset: offset}, Offset: offset},
				}},
				Else: &Else{Block: &Block{Statements: []Statement{
					&AssignStmt{
						Lvalue: &DotAccessLvalue{Expression: &Variable{Name: id("x")}, Name: id("y")},
						Rvalue: &Nothing{},
					},
				}}},
				Offset: offset,
			},
		},
	}
}

func TestPrint(t *testing.T) {
	out := Print(sampleTree(0))

	expected := []string{
		"Root",
		"  Let: $x",
		"      Addition: +",
		"          Multiplication: *",
		"  If",
		"      Not",
		"        Variable: $x",
		"      Print",
		"        String: \"no\"",
		"    Else:",
		"          DotAccessLvalue: y",
		"          Nothing",
	}
	for _, line := range expected {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("expected output to contain %q, got:\n%s", line, out)
		}
	}
}

func TestPrintEmptyBlocks(t *testing.T) {
	w := &WhileStmt{Test: &Boolean{Value: true}, Block: &Block{}}
	out := Print(w)
	if !strings.Contains(out, "Body: empty") {
		t.Errorf("expected empty body marker, got:\n%s", out)
	}
	fn := &Function{Frame: annotation.NewClosureFrame(), Body: &Block{}}
	if out := Print(fn); !strings.Contains(out, "Params: none") {
		t.Errorf("expected no params marker, got:\n%s", out)
	}
}

func TestEqualIgnoresOffsets(t *testing.T) {
	if !Equal(sampleTree(0), sampleTree(42)) {
		t.Error("expected trees differing only in offsets to be equal")
	}
}

func TestEqualDetectsDifferences(t *testing.T) {
	tests := []struct {
		name string
		x, y Node
	}{
		{
			name: "different operator",
			x:    &Addition{Left: &Integer{Value: 1}, Right: &Integer{Value: 2}},
			y:    &Subtraction{Left: &Integer{Value: 1}, Right: &Integer{Value: 2}},
		},
		{
			name: "different literal",
			x:    &Integer{Value: 1},
			y:    &Integer{Value: 2},
		},
		{
			name: "different variable",
			x:    &Variable{Name: id("a")},
			y:    &Variable{Name: id("b")},
		},
		{
			name: "missing else",
			x:    &WhileStmt{Test: &Boolean{Value: true}, Block: &Block{}, Else: &Else{Block: &Block{}}},
			y:    &WhileStmt{Test: &Boolean{Value: true}, Block: &Block{}},
		},
		{
			name: "argument count",
			x:    &Call{Function: &Name{Identifier: id("f")}, Arguments: []Expression{&Nothing{}}},
			y:    &Call{Function: &Name{Identifier: id("f")}},
		},
		{
			name: "catch type",
			x:    &Catch{Type: &Name{Identifier: id("E")}, Variable: id("e"), Block: &Block{}},
			y:    &Catch{Variable: id("e"), Block: &Block{}},
		},
		{
			name: "use path",
			x:    &UseStmt{Path: []ident.Identifier{id("a"), id("b")}},
			y:    &UseStmt{Path: []ident.Identifier{id("a")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Equal(tt.x, tt.y) {
				t.Errorf("expected %T and %T to differ", tt.x, tt.y)
			}
		})
	}
}

func TestEqualNil(t *testing.T) {
	var e *Else
	if !Equal(nil, e) {
		t.Error("expected nil and typed nil to be equal")
	}
	if Equal(nil, &Nothing{}) {
		t.Error("expected nil and a node to differ")
	}
}

func TestWalkOrder(t *testing.T) {
	var kinds []string
	Walk(sampleTree(0), func(n Node) bool {
		switch n := n.(type) {
		case *Integer:
			kinds = append(kinds, "int")
		case *Variable:
			kinds = append(kinds, "$"+n.Name.String())
		case *String:
			kinds = append(kinds, "str")
		case *Nothing:
			kinds = append(kinds, "nothing")
		}
		return true
	})

	got := strings.Join(kinds, " ")
	expected := "int int int $x str $x nothing"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestWalkPrune(t *testing.T) {
	count := 0
	Walk(sampleTree(0), func(n Node) bool {
		count++
		_, isIf := n.(*IfStmt)
		return !isIf
	})
	// Root, Let, Addition, three literals, Multiplication, If
	if count != 8 {
		t.Errorf("expected 8 visited nodes, got %d", count)
	}
}

func TestBindOnce(t *testing.T) {
	v := annotation.NewVariable(id("x"), 0)

	tests := []struct {
		name string
		bind func(*annotation.Variable)
	}{
		{"let", (&LetStmt{}).Bind},
		{"catch", (&Catch{}).Bind},
		{"parameter", (&FunctionParameter{}).Bind},
		{"variable", (&Variable{}).Bind},
		{"lvalue", (&VariableLvalue{}).Bind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.bind(v)
			defer func() {
				if recover() == nil {
					t.Error("expected panic on second bind")
				}
			}()
			tt.bind(v)
		})
	}
}

func TestUseName(t *testing.T) {
	u := &UseStmt{Path: []ident.Identifier{id("std"), id("io")}}
	if u.Name() != id("io") {
		t.Errorf("expected io, got %s", u.Name())
	}
}

func TestStatementNodesAndPrint(t *testing.T) {
	stmts := []Statement{
		&UseStmt{Path: []ident.Identifier{id("std")}},
		&ExprStmt{Expression: &Nothing{}},
		&AssignStmt{Lvalue: &VariableLvalue{Name: id("x")}, Rvalue: &Integer{Value: 1}},
		&LetStmt{Variable: id("x")},
		&PrintStmt{Expression: &Integer{Value: 1}},
		&ReturnStmt{},
		&ThrowStmt{Expression: &Name{Identifier: id("E")}},
		&IfStmt{Test: &Boolean{Value: true}, Block: &Block{}},
		&TryStmt{Block: &Block{}},
		&WhileStmt{Test: &Boolean{Value: false}, Block: &Block{}},
	}
	out := Print(&Root{Statements: stmts})
	for _, label := range []string{"Use: std", "ExpressionStatement", "Assignment", "Let: $x", "Print", "Return", "Throw", "If", "Try", "While"} {
		if !strings.Contains(out, label) {
			t.Errorf("expected %q in tree dump, got:\n%s", label, out)
		}
	}
}
