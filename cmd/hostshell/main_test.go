package main

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"hostshell/internal/hosts"
	"hostshell/internal/interp"
	"hostshell/internal/testutils"
	"hostshell/pkg/hosttypes"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	prompts []string
	lines   []string
	errs    []error
}

func (f *fakeSource) SetPrompt(prompt string) {
	f.prompts = append(f.prompts, prompt)
}

func (f *fakeSource) Readline() (string, error) {
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return "", err
		}
	}
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func TestLineEditor_HoldsPromptText(t *testing.T) {
	out := &bytes.Buffer{}
	source := &fakeSource{lines: []string{"set x 1"}}
	editor := &lineEditor{source: source, out: out}

	_, err := io.WriteString(editor, "banner\n(debug) ")
	require.NoError(t, err)
	_, err = io.WriteString(editor, "% ")
	require.NoError(t, err)
	assert.Equal(t, "banner\n", out.String())

	line, err := editor.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "set x 1", line)
	assert.Equal(t, []string{"(debug) % "}, source.prompts)

	_, err = editor.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "", source.prompts[1], "prompt is consumed by a read")
}

func TestLineEditor_MapsInterrupt(t *testing.T) {
	editor := &lineEditor{source: &fakeSource{errs: []error{readline.ErrInterrupt}}, out: io.Discard}
	_, err := editor.ReadLine()
	assert.ErrorIs(t, err, interp.ErrInterrupted)
}

func TestLineEditor_WriteError(t *testing.T) {
	editor := &lineEditor{source: &fakeSource{}, out: failWriter{}}
	_, err := io.WriteString(editor, "line\n")
	assert.Error(t, err)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestInteractiveThroughLineEditor(t *testing.T) {
	out := &bytes.Buffer{}
	source := &fakeSource{lines: []string{"puts hi", "set v 3"}}
	editor := &lineEditor{source: source, out: out}

	i := interp.New()
	data := testutils.NewHostData("editor", i)
	data.Flags = hosttypes.CreateFlagNoColor | hosttypes.CreateFlagNoTitle
	c, err := hosts.NewConsole(data, hosts.WithOutput(editor))
	require.NoError(t, err)
	i.SetHost(c)

	_, err = i.Interactive(t.Context(), editor, false)
	require.NoError(t, err)

	assert.Equal(t, "hi\n3\n", out.String())
	require.Len(t, source.prompts, 3)
	for _, prompt := range source.prompts {
		assert.Contains(t, prompt, "% ")
	}
}

func TestInfoMarkdown(t *testing.T) {
	i := interp.New()
	c := hosts.NewCapture(testutils.NewHostData("sample", i))

	md := infoMarkdown(c, []string{"capture", "console"})
	assert.Contains(t, md, "# Host sample")
	assert.Contains(t, md, "| Name | sample |")
	assert.Contains(t, md, "| CapturedBytes | 0 |")
	assert.Contains(t, md, "| Error | Default | Default |")
	assert.Contains(t, md, "- console\n")
}

func TestRenderInfo(t *testing.T) {
	i := interp.New()
	data := testutils.NewHostData("sample", i)
	data.Flags = hosttypes.CreateFlagNoColor
	c := hosts.NewCapture(data)

	out, err := renderInfo(c, []string{"capture"})
	require.NoError(t, err)
	assert.Contains(t, out, "sample")
	assert.Contains(t, out, "capture")
}

func TestApplyThemeFile(t *testing.T) {
	i := interp.New()
	c := hosts.NewCapture(testutils.NewHostData("themed", i))
	path := testutils.WriteProfile(t, "name: custom\ncolors:\n  Result:\n    foreground: Green\n")

	require.NoError(t, applyThemeFile(c, path))
	fg, _, err := c.GetColors("", "Result", true, false)
	require.NoError(t, err)
	assert.Equal(t, hosttypes.ColorGreen, fg)

	assert.Error(t, applyThemeFile(c, path+".missing"))
}
