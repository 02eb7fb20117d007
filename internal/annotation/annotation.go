// Package annotation defines the records that semantic analysis attaches to
// the syntax tree. The parser creates them empty (or leaves a nil slot) and
// never reads them; the resolver fills each one exactly once.
package annotation

import (
	"fmt"

	"github.com/lhaig/burn/internal/ident"
)

// writeOnce guards a record against being resolved twice.
type writeOnce struct {
	written bool
}

func (w *writeOnce) claim(what string) {
	if w.written {
		panic(fmt.Sprintf("annotation: %s resolved twice", what))
	}
	w.written = true
}

// Variable is the storage assigned to one binding: a let, a parameter, a
// catch variable, or a name brought in by use.
type Variable struct {
	Name ident.Identifier
	// Slot is the index of the variable in its frame
	Slot int
	// Captured is set when a closure refers to the variable, which then
	// has to live in a heap cell instead of a plain frame slot.
	Captured bool
}

// NewVariable creates a variable record for the resolver
func NewVariable(name ident.Identifier, slot int) *Variable {
	return &Variable{Name: name, Slot: slot}
}

// Frame is the scope record of the program root and of each function.
type Frame struct {
	writeOnce
	closure   bool
	variables []*Variable
	captures  []*Variable
}

// NewFrame creates the frame of a plain scope such as the program root
func NewFrame() *Frame {
	return &Frame{}
}

// NewClosureFrame creates the frame of a function body, which may capture
// variables from enclosing frames
func NewClosureFrame() *Frame {
	return &Frame{closure: true}
}

// IsClosure reports whether the frame belongs to a function literal
func (f *Frame) IsClosure() bool { return f.closure }

// Resolved reports whether the resolver has filled the frame
func (f *Frame) Resolved() bool { return f.written }

// Resolve records the frame's own variables (in slot order) and, for
// closure frames, the variables it captures.
func (f *Frame) Resolve(variables, captures []*Variable) {
	if len(captures) > 0 && !f.closure {
		panic("annotation: plain frame cannot capture variables")
	}
	f.claim("frame")
	f.variables = variables
	f.captures = captures
}

// Variables returns the frame's variables after resolution
func (f *Frame) Variables() []*Variable { return f.variables }

// Captures returns the captured variables after resolution
func (f *Frame) Captures() []*Variable { return f.captures }

// Use annotates a use statement with the binding it introduces.
type Use struct {
	writeOnce
	name     ident.Identifier
	variable *Variable
}

// NewUse creates the annotation of a use statement binding name
func NewUse(name ident.Identifier) *Use {
	return &Use{name: name}
}

// Name returns the name the use statement binds
func (u *Use) Name() ident.Identifier { return u.name }

// Resolved reports whether the resolver has filled the annotation
func (u *Use) Resolved() bool { return u.written }

// Resolve records the variable that holds the imported value
func (u *Use) Resolve(v *Variable) {
	u.claim("use")
	u.variable = v
}

// Variable returns the bound variable, or nil before resolution
func (u *Use) Variable() *Variable { return u.variable }

// NameKind says what an unqualified name turned out to refer to.
type NameKind int

const (
	Unresolved NameKind = iota
	Global
	Type
	Builtin
	Imported
)

// String returns the kind's name
func (k NameKind) String() string {
	switch k {
	case Unresolved:
		return "unresolved"
	case Global:
		return "global"
	case Type:
		return "type"
	case Builtin:
		return "builtin"
	case Imported:
		return "imported"
	default:
		return fmt.Sprintf("NameKind(%d)", int(k))
	}
}

// Name annotates an unqualified identifier reference.
type Name struct {
	writeOnce
	kind     NameKind
	variable *Variable
}

// NewName creates an unresolved name annotation
func NewName() *Name {
	return &Name{}
}

// Kind returns the resolved kind, Unresolved before resolution
func (n *Name) Kind() NameKind { return n.kind }

// Variable returns the variable for Imported names
func (n *Name) Variable() *Variable { return n.variable }

// Resolve records what the name refers to. v is only meaningful for
// Imported names and may be nil otherwise.
func (n *Name) Resolve(kind NameKind, v *Variable) {
	if kind == Unresolved {
		panic("annotation: cannot resolve a name to Unresolved")
	}
	n.claim("name")
	n.kind = kind
	n.variable = v
}
