package diagnostic

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lhaig/burn/internal/parser"
)

// Severity represents the severity level of a diagnostic message
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single parse error, lint warning, or info message
type Diagnostic struct {
	Severity Severity
	Message  string
	Offset   int // byte offset into the source
	Line     int
	Column   int
	File     string // optional file path, overrides the name given to Format
	Hint     string // optional suggestion
	Rule     string // lint rule that produced the diagnostic, if any
}

// Diagnostics manages a collection of diagnostic messages for one source
type Diagnostics struct {
	source string
	items  []Diagnostic
}

// New creates an empty collection for source. Offsets passed to the
// add methods are resolved to lines and columns against it.
func New(source string) *Diagnostics {
	return &Diagnostics{
		source: source,
		items:  make([]Diagnostic, 0),
	}
}

// Source returns the source text the collection refers to
func (d *Diagnostics) Source() string { return d.source }

// Add appends a diagnostic, filling Line and Column from its Offset
func (d *Diagnostics) Add(item Diagnostic) {
	item.Line, item.Column = Locate(d.source, item.Offset)
	d.items = append(d.items, item)
}

// Errorf adds an error diagnostic with formatted message
func (d *Diagnostics) Errorf(offset int, format string, args ...interface{}) {
	d.Add(Diagnostic{Severity: Error, Message: fmt.Sprintf(format, args...), Offset: offset})
}

// Warningf adds a warning diagnostic with formatted message
func (d *Diagnostics) Warningf(offset int, format string, args ...interface{}) {
	d.Add(Diagnostic{Severity: Warning, Message: fmt.Sprintf(format, args...), Offset: offset})
}

// Infof adds an info diagnostic with formatted message
func (d *Diagnostics) Infof(offset int, format string, args ...interface{}) {
	d.Add(Diagnostic{Severity: Info, Message: fmt.Sprintf(format, args...), Offset: offset})
}

// ErrorWithHint adds an error diagnostic with an optional hint
func (d *Diagnostics) ErrorWithHint(offset int, msg, hint string) {
	d.Add(Diagnostic{Severity: Error, Message: msg, Offset: offset, Hint: hint})
}

// WarningWithHint adds a warning diagnostic with an optional hint
func (d *Diagnostics) WarningWithHint(offset int, msg, hint string) {
	d.Add(Diagnostic{Severity: Warning, Message: msg, Offset: offset, Hint: hint})
}

// HasErrors returns true if there are any error-level diagnostics
func (d *Diagnostics) HasErrors() bool {
	return d.ErrorCount() > 0
}

// Errors returns only the error-level diagnostics
func (d *Diagnostics) Errors() []Diagnostic {
	errs := make([]Diagnostic, 0)
	for _, item := range d.items {
		if item.Severity == Error {
			errs = append(errs, item)
		}
	}
	return errs
}

// All returns all diagnostics regardless of severity
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Count returns the total number of diagnostics
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// ErrorCount returns the number of error-level diagnostics
func (d *Diagnostics) ErrorCount() int {
	return d.countSeverity(Error)
}

// WarningCount returns the number of warning-level diagnostics
func (d *Diagnostics) WarningCount() int {
	return d.countSeverity(Warning)
}

func (d *Diagnostics) countSeverity(s Severity) int {
	count := 0
	for _, item := range d.items {
		if item.Severity == s {
			count++
		}
	}
	return count
}

// Format returns human-readable messages, one per diagnostic:
//
//	error[script.burn:3:10]: unexpected `)`
//	  hint: did you forget an operand?
//	warning[script.burn:5:1]: empty block
func (d *Diagnostics) Format(filename string) string {
	var builder strings.Builder
	for i, item := range d.items {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(item.header(filename))
		if item.Hint != "" {
			builder.WriteString(fmt.Sprintf("\n  hint: %s", item.Hint))
		}
	}
	return builder.String()
}

// Render is like Format but quotes the offending source line under each
// diagnostic with a caret at the column.
func (d *Diagnostics) Render(filename string) string {
	var builder strings.Builder
	for i, item := range d.items {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(item.header(filename))
		builder.WriteString("\n")

		text := lineText(d.source, item.Offset)
		gutter := fmt.Sprintf("%d", item.Line)
		pad := strings.Repeat(" ", len(gutter))
		builder.WriteString(fmt.Sprintf(" %s | %s\n", gutter, text))
		builder.WriteString(fmt.Sprintf(" %s | %s^", pad, caretIndent(text, item.Column)))
		if item.Hint != "" {
			builder.WriteString(fmt.Sprintf("\n  hint: %s", item.Hint))
		}
	}
	return builder.String()
}

func (item Diagnostic) header(filename string) string {
	file := filename
	if item.File != "" {
		file = item.File
	}
	msg := item.Message
	if item.Rule != "" {
		msg = fmt.Sprintf("%s [%s]", msg, item.Rule)
	}
	return fmt.Sprintf("%s[%s:%d:%d]: %s", item.Severity, file, item.Line, item.Column, msg)
}

// Clear removes all diagnostics from the collection
func (d *Diagnostics) Clear() {
	d.items = make([]Diagnostic, 0)
}

// parseHints maps parser messages to a suggestion shown under them
var parseHints = map[string]string{
	"cannot mix `and` and `or` without parentheses": "group one side, e.g. `(a and b) or c`",
	"invalid assignment target":                     "only `$variable` and `expr.name` can be assigned to",
	"expected `}`":                                  "a block is missing its closing brace",
}

// FromParseError converts err into an error diagnostic. It returns false
// when err is not a *parser.ParseError.
func FromParseError(source string, err error) (*Diagnostics, bool) {
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		return nil, false
	}
	d := New(source)
	d.Add(Diagnostic{
		Severity: Error,
		Message:  perr.Message,
		Offset:   perr.Offset,
		File:     perr.Origin.String(),
		Hint:     parseHints[perr.Message],
	})
	return d, true
}

// Locate converts a byte offset into a 1-based line and column. Columns
// count characters, not bytes. Offsets past the end map to the end.
func Locate(source string, offset int) (line, column int) {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		offset = 0
	}
	before := source[:offset]
	line = strings.Count(before, "\n") + 1
	start := strings.LastIndexByte(before, '\n') + 1
	column = utf8.RuneCountInString(before[start:]) + 1
	return line, column
}

// lineText returns the line containing offset without its terminator
func lineText(source string, offset int) string {
	if offset > len(source) {
		offset = len(source)
	}
	start := strings.LastIndexByte(source[:offset], '\n') + 1
	end := strings.IndexByte(source[offset:], '\n')
	if end < 0 {
		end = len(source)
	} else {
		end += offset
	}
	return strings.TrimRight(source[start:end], "\r")
}

// caretIndent returns whitespace reaching column in text, keeping tabs so
// the caret lines up in a terminal
func caretIndent(text string, column int) string {
	var sb strings.Builder
	i := 1
	for _, r := range text {
		if i >= column {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
		i++
	}
	for ; i < column; i++ {
		sb.WriteByte(' ')
	}
	return sb.String()
}
