package linter

import (
	"strings"
	"testing"

	"github.com/lhaig/burn/internal/diagnostic"
	"github.com/lhaig/burn/internal/origin"
	"github.com/lhaig/burn/internal/parser"
)

func parseAndLint(t *testing.T, source string, disabled ...string) []diagnostic.Diagnostic {
	t.Helper()
	root, err := parser.Parse(origin.New("test"), source)
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	return Lint(root, source, disabled...).All()
}

func rulesOf(items []diagnostic.Diagnostic) []string {
	var rules []string
	for _, d := range items {
		rules = append(rules, d.Rule)
	}
	return rules
}

func TestLintRules(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected []string
	}{
		{"clean", "let $x = 1\nif $x { print $x } else { print 0 }", nil},
		{"empty if", "if a { }", []string{RuleEmptyBlock}},
		{"empty else if and else", "if a { print 1 } else if b { } else { }", []string{RuleEmptyBlock, RuleEmptyBlock}},
		{"empty while", "while a { }", []string{RuleEmptyBlock}},
		{"empty function", "let $f = function () { }", []string{RuleEmptyBlock}},
		{"empty nested function", "print f(function ($x) { })", []string{RuleEmptyBlock}},
		{"empty try clauses", "try { } catch $e { } finally { }", []string{RuleEmptyBlock, RuleEmptyBlock, RuleEmptyBlock}},
		{
			"unreachable catch",
			"try { f() } catch $e { print 1 } catch Error $e { print 2 }",
			[]string{RuleUnreachableCatch},
		},
		{"typed catches are fine", "try { f() } catch A $e { print 1 } catch $e { print 2 }", nil},
		{"duplicate let", "let $x = 1\nlet $x = 2", []string{RuleDuplicateLet}},
		{"shadowing in nested block is fine", "let $x = 1\nif a {\n  let $x = 2\n}", nil},
		{"self assignment", "$x = $x", []string{RuleSelfAssignment}},
		{"assignment from other variable", "$x = $y", nil},
		{"duplicate use", "use std.io\nuse other.io", []string{RuleDuplicateUse}},
		{"different uses", "use std.io\nuse std.os", nil},
		{"variable naming", "let $myVar = 1", []string{RuleVariableNaming}},
		{"parameter naming", "let $f = function ($Bad) { return $Bad }", []string{RuleVariableNaming}},
		{"type naming", "try { f() } catch error | Other $e { print 1 }", []string{RuleTypeNaming}},
		{"qualified type is fine", "try { f() } catch errors.NotFound $e { print 1 }", nil},
		{"parameter type naming", "let $f = function (integer $n) { return $n }", []string{RuleTypeNaming}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rulesOf(parseAndLint(t, tt.source))
			if strings.Join(got, ",") != strings.Join(tt.expected, ",") {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLintWarningsOnly(t *testing.T) {
	items := parseAndLint(t, "if a { }\n$x = $x\nlet $x\nlet $x")
	if len(items) == 0 {
		t.Fatal("expected warnings")
	}
	for _, d := range items {
		if d.Severity != diagnostic.Warning {
			t.Errorf("expected only warnings, got %s: %s", d.Severity, d.Message)
		}
	}
}

func TestLintPositions(t *testing.T) {
	items := parseAndLint(t, "let $x = 1\nlet $x = 2\n")
	if len(items) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(items))
	}
	d := items[0]
	if d.Line != 2 || d.Column != 5 {
		t.Errorf("expected warning at 2:5, got %d:%d", d.Line, d.Column)
	}
	if !strings.Contains(d.Message, "`$x` is already declared") {
		t.Errorf("unexpected message %q", d.Message)
	}
	if d.Hint == "" {
		t.Error("expected a hint")
	}
}

func TestLintDisabledRules(t *testing.T) {
	source := "if a { }\n$x = $x"
	items := parseAndLint(t, source, RuleEmptyBlock)
	if got := rulesOf(items); len(got) != 1 || got[0] != RuleSelfAssignment {
		t.Errorf("expected only self-assignment, got %v", got)
	}

	items = parseAndLint(t, source, RuleEmptyBlock, RuleSelfAssignment)
	if len(items) != 0 {
		t.Errorf("expected no warnings, got %v", rulesOf(items))
	}
}

func TestIsRule(t *testing.T) {
	for _, name := range Rules() {
		if !IsRule(name) {
			t.Errorf("expected %s to be a rule", name)
		}
	}
	if IsRule("no-such-rule") {
		t.Error("expected unknown rule to be rejected")
	}
}
