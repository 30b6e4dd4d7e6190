package hosts

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"hostshell/internal/host"
	"hostshell/internal/testutils"
	"hostshell/pkg/hosttypes"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	assert.Equal(t, []string{KindCapture, KindConsole, KindNull}, r.Kinds())

	h, err := r.Create(KindNull, testutils.NewHostData("quiet", testutils.NewMockInterpreter(1)))
	require.NoError(t, err)
	assert.IsType(t, &Null{}, h)

	_, err = r.Create("gui", hosttypes.HostData{})
	assert.EqualError(t, err, "host kind gui not found")

	err = r.Register(KindNull, func(hosttypes.HostData) (hosttypes.Host, error) { return nil, nil })
	assert.EqualError(t, err, "host kind null already registered")
}

func TestRegistry_TypeNameDefaultsToKind(t *testing.T) {
	r := NewDefaultRegistry()
	data := testutils.NewHostData("cap", testutils.NewMockInterpreter(1))
	data.TypeName = ""

	h, err := r.Create(KindCapture, data)
	require.NoError(t, err)
	assert.Equal(t, KindCapture, h.Data().TypeName)
}

func TestGlobalRegistry(t *testing.T) {
	original := GetGlobalRegistry()
	defer SetGlobalRegistry(original)

	custom := NewRegistry()
	SetGlobalRegistry(custom)
	assert.Same(t, custom, GetGlobalRegistry())
}

func TestNull(t *testing.T) {
	n := NewNull(testutils.NewHostData("quiet", testutils.NewMockInterpreter(1)))

	assert.False(t, n.Write("anything"))
	flags := n.GetHostFlags()
	testutils.AssertHasFlags(t, flags, hosttypes.HostFlagPrompt|hosttypes.HostFlagMonochrome)
	testutils.AssertLacksFlags(t, flags, hosttypes.HostFlagText|hosttypes.HostFlagColor|hosttypes.HostFlagProfile)
	assert.True(t, n.Data().NoProfile())

	promptFlags := hosttypes.PromptFlagNone
	code, err := n.Prompt(hosttypes.PromptStart, &promptFlags)
	require.NoError(t, err)
	assert.Equal(t, hosttypes.Ok, code)
	assert.False(t, promptFlags.Has(hosttypes.PromptFlagDone))

	_, _, err = n.GetColors("", "Error", true, false)
	assert.ErrorIs(t, err, hosttypes.ErrPropertyNotFound)

	fg, _, err := n.GetColors("", "Default", true, false)
	require.NoError(t, err)
	assert.Equal(t, hosttypes.ColorDefault, fg)
}

func TestCapture(t *testing.T) {
	interp := testutils.NewMockInterpreter(1)
	c := NewCapture(testutils.NewHostData("embedded", interp))

	testutils.AssertHasFlags(t, c.GetHostFlags(), hosttypes.HostFlagCapture|hosttypes.HostFlagText)

	_, err := c.Prompt(hosttypes.PromptStart, nil)
	require.NoError(t, err)
	assert.True(t, c.Write("\x1b[31mred\x1b[0m\n"))
	assert.True(t, c.WriteResultLine(hosttypes.Error, "bad", 0))
	assert.Equal(t, "% red\nerror: bad\n", c.Output())

	count, ok := testutils.StateValue(c.QueryState(), "CapturedBytes")
	require.True(t, ok)
	assert.Equal(t, "17", count)

	require.NoError(t, c.Reset())
	assert.Empty(t, c.Output())
}

func TestCapture_Profile(t *testing.T) {
	data := testutils.NewHostData("embedded", testutils.NewMockInterpreter(1))
	data.Profile = testutils.WriteProfile(t, "colors:\n  Error:\n    foreground: DarkRed\n")

	c := NewCapture(data)
	fg, _, err := c.GetColors("", "Error", true, false)
	require.NoError(t, err)
	assert.Equal(t, hosttypes.ColorDarkRed, fg)
}

func TestConsole_Monochrome(t *testing.T) {
	out := &bytes.Buffer{}
	data := testutils.NewHostData("term", testutils.NewMockInterpreter(2))
	data.Flags = hosttypes.CreateFlagNoColor

	c, err := NewConsole(data, WithOutput(out))
	require.NoError(t, err)

	testutils.AssertHasFlags(t, c.GetHostFlags(), hosttypes.HostFlagMonochrome|hosttypes.HostFlagText)
	assert.True(t, c.Write("\x1b[1mbold\x1b[0m "))
	_, err = c.Prompt(hosttypes.PromptStart, nil)
	require.NoError(t, err)
	assert.Equal(t, "bold i:2 % ", out.String())

	profile, _ := testutils.StateValue(c.QueryState(), "ColorProfile")
	assert.Equal(t, "Ascii", profile)
}

func TestConsole_Color(t *testing.T) {
	out := &bytes.Buffer{}
	data := testutils.NewHostData("term", testutils.NewMockInterpreter(1))

	c, err := NewConsole(data, WithOutput(out), WithColorProfile(termenv.ANSI256))
	require.NoError(t, err)
	testutils.AssertHasFlags(t, c.GetHostFlags(), hosttypes.HostFlagColor)

	fg, _, err := c.GetColors("", "Error", true, false)
	require.NoError(t, err)
	assert.Equal(t, hosttypes.ColorRed, fg, "built-in palette applied")

	assert.True(t, c.WriteResultLine(hosttypes.Error, "boom", 0))
	assert.Contains(t, out.String(), "\x1b[")
	assert.Equal(t, "error: boom\n", ansi.Strip(out.String()))

	out.Reset()
	_, err = c.Prompt(hosttypes.PromptContinue, nil)
	require.NoError(t, err)
	assert.Equal(t, ">\t", ansi.Strip(out.String()), "tabs are kept")
}

func TestConsole_DetectedAscii(t *testing.T) {
	out := &bytes.Buffer{}
	c, err := NewConsole(testutils.NewHostData("pipe", testutils.NewMockInterpreter(1)), WithOutput(out), WithColorProfile(termenv.Ascii))
	require.NoError(t, err)

	testutils.AssertHasFlags(t, c.GetHostFlags(), hosttypes.HostFlagMonochrome)
	assert.True(t, c.WriteResultLine(hosttypes.Ok, "plain", 0))
	assert.Equal(t, "plain\n", out.String())
}

func TestConsole_SeparateTerminal(t *testing.T) {
	out := &bytes.Buffer{}
	terminal, err := os.CreateTemp(t.TempDir(), "tty")
	require.NoError(t, err)
	defer terminal.Close()

	c, err := NewConsole(testutils.NewHostData("editor", testutils.NewMockInterpreter(1)),
		WithOutput(out), WithTerminal(terminal), WithColorProfile(termenv.Ascii))
	require.NoError(t, err)

	assert.True(t, c.WriteResultLine(hosttypes.Ok, "routed", 0))
	assert.Equal(t, "routed\n", out.String())

	info, err := terminal.Stat()
	require.NoError(t, err)
	assert.Zero(t, info.Size(), "a non-terminal gets no title")

	isTTY, _ := testutils.StateValue(c.QueryState(), "Terminal")
	assert.Equal(t, "false", isTTY)
}

func TestDefaultRegistry_ConsoleOptions(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewDefaultRegistry(WithOutput(out), WithColorProfile(termenv.Ascii))

	h, err := r.Create(KindConsole, testutils.NewHostData("routed", testutils.NewMockInterpreter(1)))
	require.NoError(t, err)
	assert.True(t, h.Write("x"))
	assert.Equal(t, "x", out.String())
}

func TestConsole_PromptMarks(t *testing.T) {
	out := &bytes.Buffer{}
	c, err := NewConsole(testutils.NewHostData("marked", testutils.NewMockInterpreter(1)),
		WithOutput(out), WithColorProfile(termenv.ANSI256), WithPromptMarks(true))
	require.NoError(t, err)

	_, err = c.Prompt(hosttypes.PromptStart, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "\x1b]133;A\a"))
	assert.True(t, strings.HasSuffix(out.String(), "\x1b]133;B\a"))
	assert.Equal(t, "% ", ansi.Strip(out.String()))

	out.Reset()
	_, err = c.Prompt(hosttypes.PromptContinue, nil)
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "\x1b]133;")

	assert.True(t, c.WriteResultLine(hosttypes.Error, "bad", 1))
	out.Reset()
	_, err = c.Prompt(hosttypes.PromptStart, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "\x1b]133;D;1\a\x1b]133;A\a"))

	marks, _ := testutils.StateValue(c.QueryState(), "PromptMarks")
	assert.Equal(t, "true", marks)
}

func TestConsole_ClosedWritesNoMarks(t *testing.T) {
	if host.StrictDisposal {
		t.Skip("closed hosts panic in strict builds")
	}
	out := &bytes.Buffer{}
	c, err := NewConsole(testutils.NewHostData("marked", testutils.NewMockInterpreter(1)),
		WithOutput(out), WithColorProfile(termenv.ANSI256), WithPromptMarks(true))
	require.NoError(t, err)
	require.NoError(t, c.Close())

	code, err := c.Prompt(hosttypes.PromptStart, nil)
	assert.Equal(t, hosttypes.Error, code)
	assert.ErrorIs(t, err, hosttypes.ErrDisposed)
	assert.Empty(t, out.String())
}

func TestConsole_PromptMarksNeedColor(t *testing.T) {
	out := &bytes.Buffer{}
	data := testutils.NewHostData("plain", testutils.NewMockInterpreter(1))
	data.Flags = hosttypes.CreateFlagNoColor

	c, err := NewConsole(data, WithOutput(out), WithPromptMarks(true))
	require.NoError(t, err)
	_, err = c.Prompt(hosttypes.PromptStart, nil)
	require.NoError(t, err)
	assert.Equal(t, "% ", out.String())
}

func TestFormatMark(t *testing.T) {
	assert.Equal(t, "\x1b]133;A\a", formatMark(markPromptStart))
	assert.Equal(t, "\x1b]133;D;0\a", formatMark(markCommandEnd, exitStatus(hosttypes.Ok)))
	assert.Equal(t, "1", exitStatus(hosttypes.Break))
}
