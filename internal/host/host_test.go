package host

import (
	"bytes"
	"errors"
	"fmt"

	"hostshell/internal/testutils"
	"hostshell/pkg/hosttypes"
)

// testHost is the smallest concrete host: a Shell plus the standard roles
// and a few deliberately awkward properties.
type testHost struct {
	*Shell
	roles RoleColors
	half  hosttypes.ConsoleColor
}

var testColorTable = RegisterStandardRoles(NewColorTable[*testHost](),
	func(h *testHost) Base { return h.Base() },
	func(h *testHost) *RoleColors { return &h.roles }).
	Property("BrokenForegroundColor",
		func(*testHost) hosttypes.ConsoleColor { panic("accessor exploded") },
		func(*testHost, hosttypes.ConsoleColor) { panic("accessor exploded") }).
	Property("BrokenBackgroundColor", nil, nil).
	Property("HalfForegroundColor",
		func(h *testHost) hosttypes.ConsoleColor { return h.half },
		func(h *testHost, c hosttypes.ConsoleColor) { h.half = c }).
	Property("WriteOnlyForegroundColor", nil, func(*testHost, hosttypes.ConsoleColor) {}).
	Property("WriteOnlyBackgroundColor", nil, func(*testHost, hosttypes.ConsoleColor) {})

func bracketRenderer(text string, fg, bg hosttypes.ConsoleColor) string {
	return fmt.Sprintf("[%s/%s]%s", fg, bg, text)
}

func newTestHost(data hosttypes.HostData, baseOpts []DefaultOption, opts ...Option) (*testHost, *bytes.Buffer) {
	out := &bytes.Buffer{}
	baseOpts = append([]DefaultOption{WithWriter(out), WithNoColor(true)}, baseOpts...)
	base := NewDefault(baseOpts...)
	h := &testHost{roles: NewRoleColors(hosttypes.ColorDefault, hosttypes.ColorDefault)}
	h.Shell = NewShell(base, data, opts...)
	h.BindColors(testColorTable.Bind(h))
	return h, out
}

func newPlainHost(interp hosttypes.Interpreter, opts ...Option) (*testHost, *bytes.Buffer) {
	return newTestHost(testutils.NewHostData("test", interp), nil, opts...)
}

// countingBase wraps Default to observe flag computation and fail resets on demand.
type countingBase struct {
	*Default
	flagCalls      int
	failFlagsReset bool
	failReset      error
}

func (c *countingBase) HostFlags() hosttypes.HostFlags {
	c.flagCalls++
	return c.Default.HostFlags()
}

func (c *countingBase) ResetHostFlags() bool {
	return !c.failFlagsReset
}

func (c *countingBase) Reset() error {
	if c.failReset != nil {
		return c.failReset
	}
	return c.Default.Reset()
}

// failingWriter fails every write.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}
