package hosttypes

import (
	"maps"

	"github.com/google/uuid"
)

// HostData is the construction-time identity of a host. A host keeps its own
// copy; nothing in it is shared with the interpreter after construction.
type HostData struct {
	ID          uuid.UUID
	Name        string
	Group       string
	Description string
	TypeName    string
	Profile     string
	ClientData  map[string]string
	Flags       CreateFlags
	Interpreter Interpreter
}

// NewHostData returns host data with a fresh identifier.
func NewHostData(name string, typeName string, interpreter Interpreter) HostData {
	return HostData{
		ID:          uuid.New(),
		Name:        name,
		TypeName:    typeName,
		Interpreter: interpreter,
	}
}

// Clone returns a deep copy of the data. A missing identifier is filled in.
func (d HostData) Clone() HostData {
	clone := d
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	if d.ClientData != nil {
		clone.ClientData = maps.Clone(d.ClientData)
	}
	return clone
}

// NoColor reports whether colored output was disabled at construction.
func (d HostData) NoColor() bool {
	return d.Flags.Has(CreateFlagNoColor)
}

// NoTitle reports whether the title subsystem was disabled at construction.
func (d HostData) NoTitle() bool {
	return d.Flags.Has(CreateFlagNoTitle)
}

// NoCancel reports whether cancellation handling was disabled at construction.
func (d HostData) NoCancel() bool {
	return d.Flags.Has(CreateFlagNoCancel)
}

// NoProfile reports whether profile loading was disabled at construction.
func (d HostData) NoProfile() bool {
	return d.Flags.Has(CreateFlagNoProfile)
}
