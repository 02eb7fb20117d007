package diagnostic

import (
	"errors"
	"strings"
	"testing"

	"github.com/lhaig/burn/internal/origin"
	"github.com/lhaig/burn/internal/parser"
)

func TestLocate(t *testing.T) {
	source := "let $x = 1\nprint $x\n\n  héllo"
	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{10, 1, 11},
		{11, 2, 1},
		{17, 2, 7},
		{20, 3, 1},
		{21, 4, 1},
		{26, 4, 5},
		{len(source), 4, 8},
		{len(source) + 10, 4, 8},
		{-1, 1, 1},
	}

	for _, tt := range tests {
		line, col := Locate(source, tt.offset)
		if line != tt.line || col != tt.column {
			t.Errorf("offset %d: expected %d:%d, got %d:%d", tt.offset, tt.line, tt.column, line, col)
		}
	}
}

func TestDiagnosticsCounts(t *testing.T) {
	d := New("print 1\nprint 2\n")
	d.Errorf(0, "bad %s", "thing")
	d.Warningf(8, "suspicious")
	d.Infof(8, "note")
	d.WarningWithHint(6, "odd", "try something else")

	if !d.HasErrors() {
		t.Error("expected HasErrors to be true")
	}
	if d.Count() != 4 {
		t.Errorf("expected 4 diagnostics, got %d", d.Count())
	}
	if d.ErrorCount() != 1 || d.WarningCount() != 2 {
		t.Errorf("expected 1 error and 2 warnings, got %d and %d", d.ErrorCount(), d.WarningCount())
	}
	if len(d.Errors()) != 1 || d.Errors()[0].Message != "bad thing" {
		t.Errorf("unexpected errors: %+v", d.Errors())
	}
	if item := d.All()[1]; item.Line != 2 || item.Column != 1 {
		t.Errorf("expected warning at 2:1, got %d:%d", item.Line, item.Column)
	}

	d.Clear()
	if d.Count() != 0 || d.HasErrors() {
		t.Error("expected empty collection after Clear")
	}
}

func TestFormat(t *testing.T) {
	d := New("print 1\nif a { }\n")
	d.Errorf(6, "unexpected thing")
	d.Add(Diagnostic{Severity: Warning, Message: "empty block", Offset: 13, Rule: "empty-block", Hint: "remove it"})
	d.Add(Diagnostic{Severity: Warning, Message: "elsewhere", Offset: 0, File: "other.burn"})

	expected := "error[main.burn:1:7]: unexpected thing\n" +
		"warning[main.burn:2:6]: empty block [empty-block]\n" +
		"  hint: remove it\n" +
		"warning[other.burn:1:1]: elsewhere"
	if got := d.Format("main.burn"); got != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := New("").Format("x"); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestRender(t *testing.T) {
	d := New("let $x = 1\n\tprint )\n")
	d.ErrorWithHint(18, "unexpected `)`", "remove the parenthesis")

	expected := "error[main.burn:2:8]: unexpected `)`\n" +
		" 2 | \tprint )\n" +
		"   | \t      ^\n" +
		"  hint: remove the parenthesis"
	if got := d.Render("main.burn"); got != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestFromParseError(t *testing.T) {
	source := "a and b or c"
	_, err := parser.Parse(origin.New("logic.burn"), source)
	if err == nil {
		t.Fatal("expected a parse error")
	}

	d, ok := FromParseError(source, err)
	if !ok {
		t.Fatal("expected conversion to succeed")
	}
	if d.Count() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", d.Count())
	}
	item := d.All()[0]
	if item.Severity != Error || item.File != "logic.burn" {
		t.Errorf("unexpected diagnostic %+v", item)
	}
	if item.Line != 1 || item.Column != 9 {
		t.Errorf("expected 1:9, got %d:%d", item.Line, item.Column)
	}
	if item.Hint == "" {
		t.Error("expected a hint for mixed logic operators")
	}
	if !strings.HasPrefix(d.Format(""), "error[logic.burn:1:9]: cannot mix") {
		t.Errorf("unexpected format %q", d.Format(""))
	}
}

func TestFromParseErrorRejectsOtherErrors(t *testing.T) {
	if _, ok := FromParseError("", errors.New("boom")); ok {
		t.Error("expected conversion of a plain error to fail")
	}
}
