package host

import (
	"testing"

	"hostshell/internal/testutils"
	"hostshell/pkg/hosttypes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColors_Validation(t *testing.T) {
	h, _ := newPlainHost(testutils.NewMockInterpreter(1))

	_, _, err := h.GetColors("", "", true, true)
	assert.ErrorIs(t, err, hosttypes.ErrInvalidColorName)
	assert.EqualError(t, err, "invalid color name")

	_, _, err = h.GetColors("anything-nonempty", "X", true, true)
	assert.ErrorIs(t, err, hosttypes.ErrUnsupportedTheme)

	// theme is checked before the name
	_, _, err = h.GetColors("dark", "", true, true)
	assert.ErrorIs(t, err, hosttypes.ErrUnsupportedTheme)

	assert.ErrorIs(t, h.SetColors("dark", "Error", true, true, hosttypes.ColorRed, hosttypes.ColorRed), hosttypes.ErrUnsupportedTheme)
	assert.ErrorIs(t, h.SetColors("", "", true, true, hosttypes.ColorRed, hosttypes.ColorRed), hosttypes.ErrInvalidColorName)
}

func TestColors_RoundTrip(t *testing.T) {
	h, _ := newPlainHost(testutils.NewMockInterpreter(1))

	require.NoError(t, h.SetColors("", "Error", true, false, hosttypes.ColorRed, hosttypes.ColorWhite))
	fg, bg, err := h.GetColors("", "Error", true, false)
	require.NoError(t, err)
	assert.Equal(t, hosttypes.ColorRed, fg)
	assert.Equal(t, hosttypes.ColorDefault, bg, "unrequested half is the host default")
	assert.Equal(t, hosttypes.ColorDefault, h.roles.Error.Background, "background was not requested")

	require.NoError(t, h.SetColors("", "Fatal", true, true, hosttypes.ColorWhite, hosttypes.ColorDarkRed))
	fg, bg, err = h.GetColors("", "Fatal", true, true)
	require.NoError(t, err)
	assert.Equal(t, hosttypes.ColorWhite, fg)
	assert.Equal(t, hosttypes.ColorDarkRed, bg)
}

func TestColors_UnrequestedHalvesUseBaseDefaults(t *testing.T) {
	h, _ := newTestHost(testutils.NewHostData("test", testutils.NewMockInterpreter(1)),
		[]DefaultOption{WithDefaultColors(hosttypes.ColorGray, hosttypes.ColorBlack)})

	fg, bg, err := h.GetColors("", "Missing", false, false)
	require.NoError(t, err)
	assert.Equal(t, hosttypes.ColorGray, fg)
	assert.Equal(t, hosttypes.ColorBlack, bg)

	fg, bg, err = h.GetColors("", "Default", true, true)
	require.NoError(t, err)
	assert.Equal(t, hosttypes.ColorGray, fg)
	assert.Equal(t, hosttypes.ColorBlack, bg)
}

func TestColors_NotFound(t *testing.T) {
	h, _ := newPlainHost(testutils.NewMockInterpreter(1))

	fg, bg, err := h.GetColors("", "Missing", true, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, hosttypes.ErrPropertyNotFound)
	assert.Equal(t, `property for foreground color "Missing" not found`, err.Error())
	assert.Equal(t, hosttypes.ColorNone, fg)
	assert.Equal(t, hosttypes.ColorNone, bg)

	_, _, err = h.GetColors("", "Half", false, true)
	assert.EqualError(t, err, `property for background color "Half" not found`)
}

func TestColors_Access(t *testing.T) {
	h, _ := newPlainHost(testutils.NewMockInterpreter(1))

	err := h.SetColors("", "Default", true, false, hosttypes.ColorRed, hosttypes.ColorNone)
	assert.ErrorIs(t, err, hosttypes.ErrPropertyNotWritable)
	assert.EqualError(t, err, `property for foreground color "Default" cannot be written`)

	_, _, err = h.GetColors("", "WriteOnly", false, true)
	assert.ErrorIs(t, err, hosttypes.ErrPropertyNotReadable)
	assert.EqualError(t, err, `property for background color "WriteOnly" cannot be read`)

	assert.NoError(t, h.SetColors("", "WriteOnly", true, true, hosttypes.ColorRed, hosttypes.ColorBlue))
}

func TestColors_GetIsAtomic(t *testing.T) {
	h, _ := newPlainHost(testutils.NewMockInterpreter(1))
	h.half = hosttypes.ColorGreen

	fg, bg, err := h.GetColors("", "Half", true, true)
	assert.ErrorIs(t, err, hosttypes.ErrPropertyNotFound)
	assert.Equal(t, hosttypes.ColorNone, fg, "foreground lookup succeeded but is not returned")
	assert.Equal(t, hosttypes.ColorNone, bg)
}

func TestColors_SetIsNotAtomic(t *testing.T) {
	h, _ := newPlainHost(testutils.NewMockInterpreter(1))

	err := h.SetColors("", "Half", true, true, hosttypes.ColorRed, hosttypes.ColorBlue)
	assert.EqualError(t, err, `property for background color "Half" not found`)

	fg, _, err := h.GetColors("", "Half", true, false)
	require.NoError(t, err)
	assert.Equal(t, hosttypes.ColorRed, fg, "foreground write remains")
}

func TestColors_AccessorPanicRecovered(t *testing.T) {
	h, _ := newPlainHost(testutils.NewMockInterpreter(1))

	var err error
	assert.NotPanics(t, func() {
		_, _, err = h.GetColors("", "Broken", true, false)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accessor exploded")
	assert.Equal(t, hosttypes.Error, hosttypes.CodeOf(err))

	assert.NotPanics(t, func() {
		err = h.SetColors("", "Broken", true, false, hosttypes.ColorRed, hosttypes.ColorNone)
	})
	assert.ErrorContains(t, err, "accessor exploded")

	_, _, err = h.GetColors("", "Broken", false, true)
	assert.ErrorIs(t, err, hosttypes.ErrPropertyNotReadable)
}

func TestColors_NoResolverBound(t *testing.T) {
	base := NewDefault()
	shell := NewShell(base, testutils.NewHostData("bare", nil))

	_, _, err := shell.GetColors("", "Error", true, true)
	assert.ErrorIs(t, err, hosttypes.ErrPropertyNotFound)
	assert.Empty(t, shell.ColorRoles())
}

func TestColorRoles(t *testing.T) {
	h, _ := newPlainHost(testutils.NewMockInterpreter(1))

	roles := h.ColorRoles()
	assert.Contains(t, roles, "Default")
	assert.Contains(t, roles, "Error")
	assert.Contains(t, roles, "Isolated")
	assert.Contains(t, roles, "WriteOnly")
	assert.NotContains(t, roles, "Half")
	assert.IsIncreasing(t, roles)
}

func TestColorTable_Properties(t *testing.T) {
	table := NewColorTable[*ColorPair]().
		Role("Solo", func(p *ColorPair) *ColorPair { return p })

	assert.Equal(t, []string{"SoloBackgroundColor", "SoloForegroundColor"}, table.Properties())

	pair := &ColorPair{}
	resolver := table.Bind(pair)
	require.NoError(t, resolver.SetProperty("SoloForegroundColor", hosttypes.ColorCyan))
	assert.Equal(t, hosttypes.ColorCyan, pair.Foreground)

	c, err := resolver.GetProperty("SoloForegroundColor")
	require.NoError(t, err)
	assert.Equal(t, hosttypes.ColorCyan, c)

	_, err = resolver.GetProperty("Solo")
	assert.ErrorIs(t, err, hosttypes.ErrPropertyNotFound)
}

func TestWriteRole(t *testing.T) {
	h, out := newTestHost(testutils.NewHostData("test", testutils.NewMockInterpreter(1)),
		[]DefaultOption{WithNoColor(false), WithRenderer(bracketRenderer)})
	h.roles.Banner = ColorPair{Foreground: hosttypes.ColorCyan, Background: hosttypes.ColorDefault}

	assert.True(t, h.WriteRole("Banner", "hello"))
	assert.Equal(t, "[Cyan/Default]hello", out.String())

	out.Reset()
	assert.True(t, h.WriteRole("Nope", "plain"))
	assert.Equal(t, "plain", out.String())
}
