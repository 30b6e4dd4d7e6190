package hosts

import (
	"hostshell/internal/host"
	"hostshell/pkg/hosttypes"
)

// Null is a headless host. It never produces output; only the read-only
// Default color role exists.
type Null struct {
	*host.Shell
}

var _ hosttypes.Host = (*Null)(nil)

var nullColors = host.NewColorTable[*Null]().
	ReadOnlyRole("Default",
		func(n *Null) hosttypes.ConsoleColor { return n.Base().DefaultForegroundColor() },
		func(n *Null) hosttypes.ConsoleColor { return n.Base().DefaultBackgroundColor() })

// NewNull creates a null host. It never loads a profile, so it does not
// advertise profile support.
func NewNull(data hosttypes.HostData) *Null {
	data.Flags |= hosttypes.CreateFlagNoProfile
	n := &Null{}
	n.Shell = host.NewShell(host.NewDefault(host.WithNoColor(true)), data)
	n.BindColors(nullColors.Bind(n))
	return n
}
