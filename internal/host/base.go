// Package host implements the interactive host core shared by every front
// end: the capability flag cache, the prompt protocol, the theme color
// resolver and the host title. Concrete hosts embed a Shell and register
// their color roles in a ColorTable.
package host

import (
	"fmt"
	"io"
	"os"
	"strings"

	"hostshell/pkg/hosttypes"
)

// Base is the default host layer a Shell delegates to. It owns raw output,
// the default colors and the read/write exception state.
type Base interface {
	DefaultForegroundColor() hosttypes.ConsoleColor
	DefaultBackgroundColor() hosttypes.ConsoleColor

	// Write emits text and reports whether output occurred.
	Write(value string) bool
	// WriteColor emits text in the given colors and reports whether output occurred.
	WriteColor(value string, foreground, background hosttypes.ConsoleColor) bool
	// WriteResultLine emits an evaluation result followed by a newline.
	WriteResultLine(code hosttypes.ReturnCode, result string, errorLine int) bool

	// HostFlags returns the capabilities contributed by this layer.
	HostFlags() hosttypes.HostFlags
	ResetHostFlags() bool
	Reset() error

	ReadException() bool
	WriteException() bool
	SetReadException(exception bool)
	SetWriteException(exception bool)

	// OnStateChange registers a callback fired whenever this layer changes
	// state that affects its capability flags.
	OnStateChange(fn func())
}

// ColorSource resolves color roles for a base layer that renders results.
type ColorSource interface {
	GetColors(theme string, name string, foreground bool, background bool) (hosttypes.ConsoleColor, hosttypes.ConsoleColor, error)
}

// ColorBinder is implemented by base layers that color their own output.
type ColorBinder interface {
	BindColors(source ColorSource)
}

// Renderer turns text and a color pair into terminal output.
type Renderer func(text string, foreground, background hosttypes.ConsoleColor) string

// PlainRenderer ignores colors.
func PlainRenderer(text string, _, _ hosttypes.ConsoleColor) string {
	return text
}

// Default is the base host layer writing to an io.Writer.
type Default struct {
	out            io.Writer
	render         Renderer
	foreground     hosttypes.ConsoleColor
	background     hosttypes.ConsoleColor
	features       hosttypes.HostFlags
	noColor        bool
	colorDetector  func() bool
	colors         ColorSource
	readException  bool
	writeException bool
	stateListeners []func()
}

// DefaultOption configures a Default layer.
type DefaultOption func(*Default)

// WithWriter sets the output destination. Without one the layer has no Text capability.
func WithWriter(w io.Writer) DefaultOption {
	return func(d *Default) {
		d.out = w
	}
}

// WithRenderer sets how colored text is rendered.
func WithRenderer(r Renderer) DefaultOption {
	return func(d *Default) {
		if r != nil {
			d.render = r
		}
	}
}

// WithDefaultColors sets the colors reported as the host defaults.
func WithDefaultColors(foreground, background hosttypes.ConsoleColor) DefaultOption {
	return func(d *Default) {
		d.foreground = foreground
		d.background = background
	}
}

// WithFeatures adds capability bits contributed by the concrete host.
func WithFeatures(flags hosttypes.HostFlags) DefaultOption {
	return func(d *Default) {
		d.features |= flags
	}
}

// WithNoColor disables colored output regardless of the terminal.
func WithNoColor(noColor bool) DefaultOption {
	return func(d *Default) {
		d.noColor = noColor
	}
}

// WithColorDetector sets the check deciding whether the output supports color.
func WithColorDetector(detect func() bool) DefaultOption {
	return func(d *Default) {
		d.colorDetector = detect
	}
}

// NewDefault creates a base layer.
func NewDefault(opts ...DefaultOption) *Default {
	d := &Default{
		render:     PlainRenderer,
		foreground: hosttypes.ColorDefault,
		background: hosttypes.ColorDefault,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DefaultForegroundColor returns the default text color.
func (d *Default) DefaultForegroundColor() hosttypes.ConsoleColor {
	return d.foreground
}

// DefaultBackgroundColor returns the default fill color.
func (d *Default) DefaultBackgroundColor() hosttypes.ConsoleColor {
	return d.background
}

// BindColors sets the source used to color result lines.
func (d *Default) BindColors(source ColorSource) {
	d.colors = source
}

// ColorEnabled reports whether output is rendered with colors.
func (d *Default) ColorEnabled() bool {
	if d.noColor {
		return false
	}
	return d.colorDetector == nil || d.colorDetector()
}

// Write emits text as is.
func (d *Default) Write(value string) bool {
	if d.out == nil {
		return false
	}
	if _, err := io.WriteString(d.out, value); err != nil {
		d.SetWriteException(true)
		return false
	}
	return true
}

// WriteColor emits text rendered in the given colors when color is enabled.
func (d *Default) WriteColor(value string, foreground, background hosttypes.ConsoleColor) bool {
	if d.ColorEnabled() {
		value = d.render(value, foreground, background)
	}
	return d.Write(value)
}

// WriteResultLine writes "result" for Ok and "code: result" otherwise, using
// the Result or Error color role when one is bound.
func (d *Default) WriteResultLine(code hosttypes.ReturnCode, result string, errorLine int) bool {
	if code == hosttypes.Ok && result == "" {
		return true
	}

	text := FormatResult(code, result, errorLine)
	role := "Result"
	if code != hosttypes.Ok {
		role = "Error"
	}

	if d.colors != nil {
		if fg, bg, err := d.colors.GetColors("", role, true, true); err == nil {
			return d.WriteColor(text, fg, bg) && d.Write("\n")
		}
	}
	return d.Write(text + "\n")
}

// FormatResult renders an evaluation result the way result lines show it.
func FormatResult(code hosttypes.ReturnCode, result string, errorLine int) string {
	if code == hosttypes.Ok {
		return result
	}
	var sb strings.Builder
	sb.WriteString(code.String())
	sb.WriteString(": ")
	sb.WriteString(result)
	if errorLine > 0 {
		fmt.Fprintf(&sb, " (line %d)", errorLine)
	}
	return sb.String()
}

// HostFlags returns Text when a writer is present, QueryState, Color or
// Monochrome, any extra features and the exception bits.
func (d *Default) HostFlags() hosttypes.HostFlags {
	flags := d.features | hosttypes.HostFlagQueryState
	if d.out != nil {
		flags |= hosttypes.HostFlagText
	}
	if d.ColorEnabled() {
		flags |= hosttypes.HostFlagColor
	} else {
		flags |= hosttypes.HostFlagMonochrome
	}
	if d.readException {
		flags |= hosttypes.HostFlagReadException
	}
	if d.writeException {
		flags |= hosttypes.HostFlagWriteException
	}
	return flags
}

// ResetHostFlags has nothing cached at this layer.
func (d *Default) ResetHostFlags() bool {
	return true
}

// Reset clears the exception state.
func (d *Default) Reset() error {
	d.readException = false
	d.writeException = false
	d.notify()
	return nil
}

// ReadException reports whether reading has faulted.
func (d *Default) ReadException() bool {
	return d.readException
}

// WriteException reports whether writing has faulted.
func (d *Default) WriteException() bool {
	return d.writeException
}

// SetReadException records the read fault state.
func (d *Default) SetReadException(exception bool) {
	d.readException = exception
	d.notify()
}

// SetWriteException records the write fault state.
func (d *Default) SetWriteException(exception bool) {
	d.writeException = exception
	d.notify()
}

// OnStateChange registers fn to run after exception state changes.
func (d *Default) OnStateChange(fn func()) {
	if fn != nil {
		d.stateListeners = append(d.stateListeners, fn)
	}
}

// Close detaches the writer, closing it when it is an io.Closer other than a standard stream.
func (d *Default) Close() error {
	out := d.out
	d.out = nil
	d.notify()
	if c, ok := out.(io.Closer); ok && !isStandardStream(out) {
		return c.Close()
	}
	return nil
}

func (d *Default) notify() {
	for _, fn := range d.stateListeners {
		fn()
	}
}

func isStandardStream(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (f == os.Stdout || f == os.Stderr)
}
