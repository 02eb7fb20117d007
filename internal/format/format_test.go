package format

import (
	"testing"

	"github.com/lhaig/burn/internal/ast"
	"github.com/lhaig/burn/internal/ident"
	"github.com/lhaig/burn/internal/origin"
	"github.com/lhaig/burn/internal/parser"
)

// helper: parse source, format, return formatted string
func formatSource(t *testing.T, source string) string {
	t.Helper()
	root, err := parser.Parse(origin.New("<test>"), source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return Format(root)
}

func TestFormatStatements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"use", "use   std . io", "use std.io\n"},
		{"let", "let $x", "let $x\n"},
		{"let with value", "let $x=1+2", "let $x = 1 + 2\n"},
		{"assignment", "$a.b=$c", "$a.b = $c\n"},
		{"print", "print   'hi'", "print \"hi\"\n"},
		{"return", "return", "return\n"},
		{"throw", "throw $e", "throw $e\n"},
		{"blank lines dropped", "\n\nprint 1\n\n\nprint 2\n", "print 1\nprint 2\n"},
		{
			"if chain",
			"if $a {\nprint 1\n}\nelse if $b { }\nelse {\nprint 2\n}",
			"if $a {\n    print 1\n} else if $b { } else {\n    print 2\n}\n",
		},
		{
			"while else",
			"while $x { $x = $x - 1 } else { print \"done\" }",
			"while $x {\n    $x = $x - 1\n} else {\n    print \"done\"\n}\n",
		},
		{
			"try",
			"try { f() } catch Error $e { throw $e } catch $e { } else { } finally { print 1 }",
			"try {\n    f()\n} catch Error $e {\n    throw $e\n} catch $e { } else { } finally {\n    print 1\n}\n",
		},
		{
			"function",
			"let $f = function(Integer $n=1,$m){\nif $n { return $m }\n}",
			"let $f = function (Integer $n = 1, $m) {\n    if $n {\n        return $m\n    }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatSource(t, tt.input)
			if got != tt.expected {
				t.Errorf("expected:\n%q\ngot:\n%q", tt.expected, got)
			}
		})
	}
}

func TestFormatParentheses(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(1 + 2) * 3", "(1 + 2) * 3"},
		{"1 + (2 * 3)", "1 + 2 * 3"},
		{"1 - (2 - 3)", "1 - (2 - 3)"},
		{"(1 - 2) - 3", "1 - 2 - 3"},
		{"(a < b) == c", "(a < b) == c"},
		{"(not a) and b", "not a and b"},
		{"not (a and b)", "not (a and b)"},
		{"(not a) == b", "(not a) == b"},
		{"(a or b) and c", "(a or b) and c"},
		{"a and (b and c)", "a and (b and c)"},
		{"(a | b) | c", "a | b | c"},
		{"(1 + 2).x", "(1 + 2).x"},
		{"(f)(1)", "f(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, err := parser.Parse(origin.New("<test>"), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			stmt := root.Statements[0].(*ast.ExprStmt)
			if got := Expression(stmt.Expression); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestFormatLiterals(t *testing.T) {
	tests := []struct {
		expr     ast.Expression
		expected string
	}{
		{&ast.String{Value: "a\"b\n"}, `"a\"b\n"`},
		{&ast.Integer{Value: 42}, "42"},
		{&ast.Float{Value: 2}, "2.0"},
		{&ast.Float{Value: 0.5}, "0.5"},
		{&ast.Float{Value: 1e21}, "1e+21"},
		{&ast.Boolean{Value: false}, "false"},
		{&ast.Nothing{}, "nothing"},
		{&ast.ItemAccess{Expression: &ast.Variable{Name: ident.FindOrCreate("a")}, Key: &ast.Integer{Value: 0}}, "$a[0]"},
	}

	for _, tt := range tests {
		if got := Expression(tt.expr); got != tt.expected {
			t.Errorf("expected %s, got %s", tt.expected, got)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	sources := []string{
		"let $x = 1 + 2\nprint $x\n",
		"use std.io\nio.write(\"a\\tb\", 'c')\n",
		"if a\nand b { }\n",
		"print not $a == $b and ($c or $d)\n",
		"print (not $a) + 1 | Nothing\n",
		"print 1 - (2 - 3) * (4 / (5 / 6))\n",
		"let $f = function (A | B $a, $b = function () { return }) {\n  return $a.x($b)(1).y\n}\n",
		"try {\n  throw Error(\"x\")\n} catch Error | Other $e {\n} catch $e { print $e } else { } finally { }\n",
		"while $i < 10 {\n  $i = $i + 1\n  if $i == 5 { print \"half\" } else if $i >= 9 { print 2.5e3 } else { }\n} else { print true }\n",
		"$obj.field.inner = (function ($x) { return $x })(nothing)\n",
		"print \"\\xff\"\n",
		"print 'raw \\x80\\xc3 bytes \\u{1f525}'\n",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			original, err := parser.Parse(origin.New("<original>"), src)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			formatted := Format(original)

			reparsed, err := parser.Parse(origin.New("<formatted>"), formatted)
			if err != nil {
				t.Fatalf("formatted source does not parse: %v\n%s", err, formatted)
			}
			if !ast.Equal(original, reparsed) {
				t.Errorf("round trip changed the tree\nformatted:\n%s\noriginal:\n%s\nreparsed:\n%s",
					formatted, ast.Print(original), ast.Print(reparsed))
			}
			if again := Format(reparsed); again != formatted {
				t.Errorf("formatting is not stable:\nfirst:\n%s\nsecond:\n%s", formatted, again)
			}
		})
	}
}

func TestFormatKeepsRawBytes(t *testing.T) {
	root, err := parser.Parse(origin.New("<test>"), "print \"\\xff\"\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if got := Format(root); got != "print \"\\xff\"\n" {
		t.Errorf("expected %q, got %q", "print \"\\xff\"\n", got)
	}
}
