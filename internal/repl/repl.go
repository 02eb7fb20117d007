// Package repl accumulates interactive input until it forms complete
// statements. Terminal handling lives in cmd/burn.
package repl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lhaig/burn/internal/ast"
	"github.com/lhaig/burn/internal/ident"
	"github.com/lhaig/burn/internal/lexer"
	"github.com/lhaig/burn/internal/logger"
	"github.com/lhaig/burn/internal/origin"
	"github.com/lhaig/burn/internal/parser"
)

// Result is the outcome of feeding one line
type Result struct {
	// Incomplete is set when more lines are needed; the other fields are
	// then empty.
	Incomplete bool
	Origin     *origin.Origin
	Source     string
	Root       *ast.Root
}

// Session holds the pending input of an interactive session. All entries
// share one identifier table.
type Session struct {
	lines   []string
	entries int
	idents  *ident.Table
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{idents: ident.NewTable()}
}

// Pending reports whether earlier lines are waiting for a continuation
func (s *Session) Pending() bool {
	return len(s.lines) > 0
}

// Entries returns the number of entries parsed so far
func (s *Session) Entries() int {
	return s.entries
}

// Idents returns the session's identifier table
func (s *Session) Idents() *ident.Table {
	return s.idents
}

// Reset drops any pending input
func (s *Session) Reset() {
	s.lines = s.lines[:0]
}

// Feed adds a line of input. If the buffered text stops at a point where
// the parser still wanted more, the result is Incomplete. Otherwise the
// buffer is parsed as one entry and cleared; a syntax error is returned
// as a *parser.ParseError. A blank line ends a pending entry even if it is
// incomplete, so the user can get the error instead of more prompts.
func (s *Session) Feed(line string) (Result, error) {
	blank := strings.TrimSpace(line) == ""
	if blank && !s.Pending() {
		return Result{}, nil
	}
	s.lines = append(s.lines, line)
	source := strings.Join(s.lines, "\n") + "\n"

	o := origin.New(fmt.Sprintf("<repl:%d>", s.entries+1))
	p := parser.New(o, lexer.New(source))
	p.SetIdentTable(s.idents)
	root, err := p.Parse()

	if err != nil && !blank && atEnd(err, source) {
		logger.Debug("repl continuation", "lines", len(s.lines))
		return Result{Incomplete: true}, nil
	}

	s.Reset()
	s.entries++
	if err != nil {
		return Result{Origin: o, Source: source}, err
	}
	return Result{Origin: o, Source: source, Root: root}, nil
}

// atEnd reports whether err was raised at the end of source, meaning the
// parser ran out of input rather than met a bad token.
func atEnd(err error, source string) bool {
	var perr *parser.ParseError
	return errors.As(err, &perr) && perr.Offset >= len(source)
}
