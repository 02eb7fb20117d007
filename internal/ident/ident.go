// Package ident interns identifier names so that the parser and later passes
// can compare names by handle instead of by string.
package ident

import "sync"

// Identifier is an interned name. Two identifiers created from the same text
// by the same table compare equal with ==. The zero value is the empty
// identifier and is never returned by FindOrCreate.
type Identifier struct {
	sym *symbol
}

type symbol struct {
	text string
}

// String returns the identifier's text
func (id Identifier) String() string {
	if id.sym == nil {
		return ""
	}
	return id.sym.text
}

// IsZero reports whether id is the zero Identifier
func (id Identifier) IsZero() bool {
	return id.sym == nil
}

// Table maps names to identifiers. It is safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	symbols map[string]*symbol
}

// NewTable creates an empty identifier table
func NewTable() *Table {
	return &Table{symbols: make(map[string]*symbol)}
}

// FindOrCreate returns the identifier for text, interning it on first use
func (t *Table) FindOrCreate(text string) Identifier {
	t.mu.RLock()
	sym, ok := t.symbols[text]
	t.mu.RUnlock()
	if ok {
		return Identifier{sym: sym}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if sym, ok := t.symbols[text]; ok {
		return Identifier{sym: sym}
	}
	sym = &symbol{text: text}
	t.symbols[text] = sym
	return Identifier{sym: sym}
}

// Len returns the number of interned names
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.symbols)
}

// Default is the process-wide table used when no table is supplied.
var Default = NewTable()

// FindOrCreate interns text in the Default table
func FindOrCreate(text string) Identifier {
	return Default.FindOrCreate(text)
}
