// Package hosttypes defines the shared vocabulary between an interpreter and the
// interactive hosts it drives: return codes, prompt and capability flags,
// console colors, host identity data and the contracts on both sides.
package hosttypes

import "strings"

// ReturnCode is the completion status of an evaluation or host operation.
type ReturnCode int

const (
	// Ok means the operation completed normally.
	Ok ReturnCode = iota
	// Error means the operation failed; the accompanying result holds the message.
	Error
	// Return means a script requested an early return.
	Return
	// Break means a script requested the enclosing loop to stop.
	Break
	// Continue means a script requested the next loop iteration.
	Continue
)

var returnCodeNames = map[ReturnCode]string{
	Ok:       "ok",
	Error:    "error",
	Return:   "return",
	Break:    "break",
	Continue: "continue",
}

// String returns the lower-case name of the return code.
func (c ReturnCode) String() string {
	if name, ok := returnCodeNames[c]; ok {
		return name
	}
	return "unknown"
}

// PromptType selects which kind of prompt is being requested.
type PromptType int

const (
	// PromptNone requests no prompt text; only a configured script could run, and it never does.
	PromptNone PromptType = iota
	// PromptStart is the prompt shown before the first line of a command.
	PromptStart
	// PromptContinue is the prompt shown before a continuation line of a multi-line command.
	PromptContinue
)

// String returns the name of the prompt type.
func (t PromptType) String() string {
	switch t {
	case PromptNone:
		return "none"
	case PromptStart:
		return "start"
	case PromptContinue:
		return "continue"
	default:
		return "unknown"
	}
}

// PromptFlags modify a prompt request and report what the host did with it.
type PromptFlags uint32

const (
	// PromptFlagNone is the empty modifier set.
	PromptFlagNone PromptFlags = 0
	// PromptFlagDebug marks a prompt issued from a nested debug evaluation.
	PromptFlagDebug PromptFlags = 1 << iota
	// PromptFlagQueue marks a prompt issued from a queued or batched evaluation.
	PromptFlagQueue
	// PromptFlagInterpreter asks the default prompt to embed the interpreter id.
	PromptFlagInterpreter
	// PromptFlagDone reports that prompt output was produced.
	PromptFlagDone
)

// Has reports whether all bits of want are set.
func (f PromptFlags) Has(want PromptFlags) bool {
	return f&want == want
}

// String returns a pipe separated list of the set flag names.
func (f PromptFlags) String() string {
	return flagString(uint64(f), []flagName{
		{uint64(PromptFlagDebug), "Debug"},
		{uint64(PromptFlagQueue), "Queue"},
		{uint64(PromptFlagInterpreter), "Interpreter"},
		{uint64(PromptFlagDone), "Done"},
	})
}

// HostFlags advertise which optional capabilities a host currently exposes.
type HostFlags uint64

const (
	// HostFlagsNone means the host supports nothing optional.
	HostFlagsNone HostFlags = 0
	// HostFlagText means the host can emit text.
	HostFlagText HostFlags = 1 << iota
	// HostFlagColor means the host renders console colors.
	HostFlagColor
	// HostFlagMonochrome means the host emits text without colors.
	HostFlagMonochrome
	// HostFlagPrompt means the host implements the prompt protocol.
	HostFlagPrompt
	// HostFlagTitle means the host maintains a title.
	HostFlagTitle
	// HostFlagProfile means the host loads a color profile.
	HostFlagProfile
	// HostFlagQueryState means the host can describe its own state.
	HostFlagQueryState
	// HostFlagReadException means the input side of the host has faulted.
	HostFlagReadException
	// HostFlagWriteException means the output side of the host has faulted.
	HostFlagWriteException
	// HostFlagCapture means output is recorded in memory rather than shown.
	HostFlagCapture
)

// HostFlagsExceptionMask covers both exception bits.
const HostFlagsExceptionMask = HostFlagReadException | HostFlagWriteException

// Has reports whether all bits of want are set.
func (f HostFlags) Has(want HostFlags) bool {
	return f&want == want
}

// String returns a pipe separated list of the set flag names.
func (f HostFlags) String() string {
	return flagString(uint64(f), []flagName{
		{uint64(HostFlagText), "Text"},
		{uint64(HostFlagColor), "Color"},
		{uint64(HostFlagMonochrome), "Monochrome"},
		{uint64(HostFlagPrompt), "Prompt"},
		{uint64(HostFlagTitle), "Title"},
		{uint64(HostFlagProfile), "Profile"},
		{uint64(HostFlagQueryState), "QueryState"},
		{uint64(HostFlagReadException), "ReadException"},
		{uint64(HostFlagWriteException), "WriteException"},
		{uint64(HostFlagCapture), "Capture"},
	})
}

// CreateFlags are construction-time switches carried in HostData.
type CreateFlags uint32

const (
	// CreateFlagsNone selects the defaults.
	CreateFlagsNone CreateFlags = 0
	// CreateFlagNoColor disables colored output.
	CreateFlagNoColor CreateFlags = 1 << iota
	// CreateFlagNoTitle disables the title subsystem.
	CreateFlagNoTitle
	// CreateFlagNoProfile skips loading the host profile.
	CreateFlagNoProfile
	// CreateFlagNoCancel keeps interactive sessions running when their
	// context is canceled, and keeps signal handlers from being installed.
	CreateFlagNoCancel
)

// Has reports whether all bits of want are set.
func (f CreateFlags) Has(want CreateFlags) bool {
	return f&want == want
}

// VariableFlags select the access mode of an interpreter variable lookup.
type VariableFlags uint32

const (
	// VariableFlagsNone is an ordinary lookup.
	VariableFlagsNone VariableFlags = 0
	// VariableFlagViaPrompt marks a lookup made on behalf of the prompt protocol.
	// Interpreters must not apply readiness checks or traces that could re-enter the host.
	VariableFlagViaPrompt VariableFlags = 1 << iota
)

type flagName struct {
	bit  uint64
	name string
}

func flagString(value uint64, names []flagName) string {
	if value == 0 {
		return "None"
	}
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if value&n.bit != 0 {
			parts = append(parts, n.name)
			value &^= n.bit
		}
	}
	if value != 0 {
		parts = append(parts, "Unknown")
	}
	return strings.Join(parts, "|")
}
