package hosttypes

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by hosts.
var (
	ErrInvalidInterpreter  = errors.New("invalid interpreter")
	ErrUnsupportedTheme    = errors.New("unsupported theme name")
	ErrInvalidColorName    = errors.New("invalid color name")
	ErrPropertyNotFound    = errors.New("not found")
	ErrPropertyNotReadable = errors.New("cannot be read")
	ErrPropertyNotWritable = errors.New("cannot be written")
	ErrDisposed            = errors.New("host is closed")
	ErrResetFlags          = errors.New("failed to reset flags")
	ErrPromptInProgress    = errors.New("prompt already in progress")
)

// ColorDirection names one half of a color pair.
type ColorDirection string

const (
	// Foreground is the text color.
	Foreground ColorDirection = "foreground"
	// Background is the fill color behind the text.
	Background ColorDirection = "background"
)

// ColorPropertyError reports a color role whose backing property is missing
// or cannot be accessed in the needed direction.
type ColorPropertyError struct {
	Direction ColorDirection
	Name      string
	Err       error
}

// Error renders the message as `property for foreground color "Name" not found`.
func (e *ColorPropertyError) Error() string {
	return fmt.Sprintf("property for %s color %q %v", e.Direction, e.Name, e.Err)
}

// Unwrap exposes the matching sentinel error.
func (e *ColorPropertyError) Unwrap() error {
	return e.Err
}

// ScriptError carries the failure of a script evaluated on behalf of a host.
type ScriptError struct {
	Code    ReturnCode
	Message string
	Line    int
}

// Error returns the script's own error message.
func (e *ScriptError) Error() string {
	return e.Message
}

// CodeOf maps an error returned by a host operation onto a return code.
// A nil error is Ok; a ScriptError keeps its own code; anything else is Error.
func CodeOf(err error) ReturnCode {
	if err == nil {
		return Ok
	}
	var scriptErr *ScriptError
	if errors.As(err, &scriptErr) {
		return scriptErr.Code
	}
	return Error
}
