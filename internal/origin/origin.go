// Package origin identifies the source unit a piece of code came from.
package origin

import (
	"fmt"

	"github.com/google/uuid"
)

// Origin names a source unit (a file, a REPL entry, a test string). It is
// shared by pointer between every error produced while parsing that unit.
type Origin struct {
	ID   uuid.UUID
	Name string
}

// New creates an origin with a fresh identity
func New(name string) *Origin {
	return &Origin{
		ID:   uuid.New(),
		Name: name,
	}
}

// String returns the origin's display name
func (o *Origin) String() string {
	if o == nil {
		return "<unknown>"
	}
	return o.Name
}

// Short returns the name plus the first segment of the ID, useful when
// several origins share a name (REPL lines, reloaded files).
func (o *Origin) Short() string {
	if o == nil {
		return "<unknown>"
	}
	return fmt.Sprintf("%s#%s", o.Name, o.ID.String()[:8])
}
