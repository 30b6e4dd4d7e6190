package host

import (
	"fmt"

	"hostshell/pkg/hosttypes"
)

// PromptVariablePrefix starts the names of the variables holding prompt scripts.
const PromptVariablePrefix = "hostshell_prompt"

// Default prompt text.
const (
	StartPrompt    = "% "
	ContinuePrompt = ">\t"
	QueuePrefix    = "^ "
	DebugPrefix    = "(debug) "
)

// PromptVariableName selects the variable holding the prompt script for a
// request. Start and Continue map to 1 and 2; Debug adds 2 and Queue adds 4,
// giving hostshell_prompt1 through hostshell_prompt8.
func PromptVariableName(promptType hosttypes.PromptType, flags hosttypes.PromptFlags) string {
	index := 1
	if promptType == hosttypes.PromptContinue {
		index = 2
	}
	if flags.Has(hosttypes.PromptFlagDebug) {
		index += 2
	}
	if flags.Has(hosttypes.PromptFlagQueue) {
		index += 4
	}
	return fmt.Sprintf("%s%d", PromptVariablePrefix, index)
}

// DefaultPrompt returns the built-in prompt text, or "" for PromptNone.
func DefaultPrompt(promptType hosttypes.PromptType, flags hosttypes.PromptFlags, interpreterID int64) string {
	var prompt string
	switch promptType {
	case hosttypes.PromptStart:
		prompt = StartPrompt
	case hosttypes.PromptContinue:
		prompt = ContinuePrompt
	default:
		return ""
	}

	if flags.Has(hosttypes.PromptFlagQueue) {
		prompt = QueuePrefix + prompt
	}
	if flags.Has(hosttypes.PromptFlagDebug) {
		prompt = DebugPrefix + prompt
	}
	if flags.Has(hosttypes.PromptFlagInterpreter) {
		prompt = fmt.Sprintf("i:%d %s", interpreterID, prompt)
	}
	return prompt
}

// Prompt emits the prompt for a read boundary. A prompt script stored in the
// selected variable runs first; the default prompt is written whenever no
// script ran or the script failed. A script failure is returned even when the
// default prompt was written. Done is cleared on entry and set in *flags when
// output was produced. A prompt script asking for another prompt fails with
// ErrPromptInProgress; nothing is evaluated on a closed host.
func (s *Shell) Prompt(promptType hosttypes.PromptType, flags *hosttypes.PromptFlags) (hosttypes.ReturnCode, error) {
	var local hosttypes.PromptFlags
	if flags == nil {
		flags = &local
	}
	*flags &^= hosttypes.PromptFlagDone

	if s.disposed() {
		return hosttypes.Error, hosttypes.ErrDisposed
	}
	if s.prompting {
		return hosttypes.Error, hosttypes.ErrPromptInProgress
	}
	s.prompting = true
	defer func() { s.prompting = false }()

	interp := s.interpreterNoReadyCheck()
	if interp == nil {
		return hosttypes.Error, hosttypes.ErrInvalidInterpreter
	}

	id := interp.ID()
	if id > PrimaryInterpreterID {
		*flags |= hosttypes.PromptFlagInterpreter
	}

	code := hosttypes.Ok
	var err error

	scriptDone := false
	if promptType != hosttypes.PromptNone {
		name := PromptVariableName(promptType, *flags)
		if script, ok := interp.GetVariableValue(hosttypes.VariableFlagViaPrompt, name); ok {
			var result string
			var line int
			code, result, line = interp.EvaluatePromptScript(script)
			if code == hosttypes.Ok {
				*flags |= hosttypes.PromptFlagDone
				scriptDone = true
			} else {
				s.log.Debug("Prompt script failed", "host", s.data.Name, "prompt", name, "error", result)
				s.bestEffort("WriteResultLine", func() bool {
					return s.WriteResultLine(code, result, line)
				})
				interp.AddErrorInformation(result,
					fmt.Sprintf("\n    (script that generates prompt, line %d)", line))
				err = &hosttypes.ScriptError{Code: code, Message: result, Line: line}
			}
		}
	}

	if !scriptDone {
		if text := DefaultPrompt(promptType, *flags, id); text != "" {
			if s.WriteRole("Prompt", text) {
				*flags |= hosttypes.PromptFlagDone
			}
		}
	}

	return code, err
}
