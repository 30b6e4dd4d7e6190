package hosts

import (
	"bytes"
	"strconv"

	"hostshell/internal/host"
	"hostshell/internal/logger"
	"hostshell/internal/theme"
	"hostshell/pkg/hosttypes"
)

// Capture is an embedded console that records its output in memory as
// plain text.
type Capture struct {
	*host.Shell
	roles  host.RoleColors
	buffer bytes.Buffer
}

var _ hosttypes.Host = (*Capture)(nil)

var captureColors = host.RegisterStandardRoles(host.NewColorTable[*Capture](),
	func(c *Capture) host.Base { return c.Base() },
	func(c *Capture) *host.RoleColors { return &c.roles })

// NewCapture creates a capture host.
func NewCapture(data hosttypes.HostData) *Capture {
	c := &Capture{
		roles: host.NewRoleColors(hosttypes.ColorDefault, hosttypes.ColorDefault),
	}
	base := host.NewDefault(
		host.WithWriter(stripWriter{w: &c.buffer}),
		host.WithNoColor(true),
		host.WithFeatures(hosttypes.HostFlagCapture),
	)
	c.Shell = host.NewShell(base, data, host.WithStateFunc(c.state))
	c.BindColors(captureColors.Bind(c))

	if err := c.ApplyPalette(theme.Plain()); err != nil {
		logger.Warn("Failed to apply built-in palette", "host", data.Name, "error", err)
	}
	if err := c.LoadProfile(); err != nil {
		logger.Warn("Failed to load host profile", "host", data.Name, "error", err)
	}
	return c
}

// Output returns everything written so far.
func (c *Capture) Output() string {
	return c.buffer.String()
}

// Clear discards the recorded output.
func (c *Capture) Clear() {
	c.buffer.Reset()
}

// Reset resets the host and discards the recorded output.
func (c *Capture) Reset() error {
	if err := c.Shell.Reset(); err != nil {
		return err
	}
	c.Clear()
	return nil
}

func (c *Capture) state() []hosttypes.StatePair {
	return []hosttypes.StatePair{
		{Key: "CapturedBytes", Value: strconv.Itoa(c.buffer.Len())},
	}
}
