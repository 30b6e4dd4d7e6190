// Package interp is a small line-oriented command interpreter that drives an
// interactive host. It owns variables, evaluates scripts and runs the
// read/eval loop that asks the host for prompts.
package interp

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"hostshell/internal/logger"
	"hostshell/pkg/hosttypes"

	"github.com/charmbracelet/log"
	"github.com/google/shlex"
)

// ErrorInfoVariable holds the accumulated error information of the last failure.
const ErrorInfoVariable = "errorInfo"

var (
	// ErrCanceled is reported by Ready while an evaluation is canceled.
	ErrCanceled = errors.New("eval canceled")
	// ErrClosed is reported by Ready after Close.
	ErrClosed = errors.New("interpreter is closed")
)

var lastID atomic.Int64

// Interpreter evaluates scripts against a bound host. It is driven by one
// goroutine at a time; only Cancel may be called concurrently.
type Interpreter struct {
	id       int64
	host     hosttypes.Host
	vars     map[string]string
	commands map[string]commandFunc
	debug    bool
	canceled atomic.Bool
	closed   bool
	exitCode int
	exited   bool
	log      *log.Logger
}

var _ hosttypes.Interpreter = (*Interpreter)(nil)

// New creates an interpreter. The first interpreter in a process gets id 1.
func New() *Interpreter {
	i := &Interpreter{
		id:   lastID.Add(1),
		vars: make(map[string]string),
		log:  logger.NewStyledLogger("Interp"),
	}
	i.commands = builtinCommands()
	return i
}

// SetHost binds the host the interpreter writes to.
func (i *Interpreter) SetHost(h hosttypes.Host) {
	i.host = h
}

// Host returns the bound host, or nil.
func (i *Interpreter) Host() hosttypes.Host {
	return i.host
}

// ID implements hosttypes.Interpreter.
func (i *Interpreter) ID() int64 {
	return i.id
}

// Ready implements hosttypes.Interpreter.
func (i *Interpreter) Ready() error {
	if i.closed {
		return ErrClosed
	}
	if i.canceled.Load() {
		return ErrCanceled
	}
	return nil
}

// Cancel makes evaluations fail until ResetCancel is called.
func (i *Interpreter) Cancel() {
	i.canceled.Store(true)
}

// ResetCancel clears a pending cancellation.
func (i *Interpreter) ResetCancel() {
	i.canceled.Store(false)
}

// Close disposes the interpreter. The host is not closed.
func (i *Interpreter) Close() error {
	i.closed = true
	return nil
}

// Debug reports whether debug mode is on.
func (i *Interpreter) Debug() bool {
	return i.debug
}

// SetDebug switches debug mode.
func (i *Interpreter) SetDebug(debug bool) {
	i.debug = debug
}

// Exited reports whether the exit command ran, and its exit code.
func (i *Interpreter) Exited() (bool, int) {
	return i.exited, i.exitCode
}

// SetVariable sets a variable.
func (i *Interpreter) SetVariable(name, value string) {
	i.vars[name] = value
}

// UnsetVariable removes a variable, reporting whether it existed.
func (i *Interpreter) UnsetVariable(name string) bool {
	_, ok := i.vars[name]
	delete(i.vars, name)
	return ok
}

// GetVariable returns a variable value.
func (i *Interpreter) GetVariable(name string) (string, bool) {
	value, ok := i.vars[name]
	return value, ok
}

// VariableNames returns the variable names in sorted order.
func (i *Interpreter) VariableNames() []string {
	names := make([]string, 0, len(i.vars))
	for name := range i.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetVariableValue implements hosttypes.Interpreter. Lookups made via the
// prompt are not logged so a debug-level trace cannot write into the
// prompt being produced.
func (i *Interpreter) GetVariableValue(flags hosttypes.VariableFlags, name string) (string, bool) {
	value, ok := i.vars[name]
	if flags&hosttypes.VariableFlagViaPrompt == 0 {
		i.log.Debug("Variable lookup", "name", name, "found", ok)
	}
	return value, ok
}

// EvaluatePromptScript implements hosttypes.Interpreter. A return from the
// script counts as success.
func (i *Interpreter) EvaluatePromptScript(script string) (hosttypes.ReturnCode, string, int) {
	code, result, line := i.EvaluateScript(script)
	if code == hosttypes.Return {
		code = hosttypes.Ok
	}
	return code, result, line
}

// AddErrorInformation implements hosttypes.Interpreter. The first call for a
// result starts errorInfo with the result itself; later calls append.
func (i *Interpreter) AddErrorInformation(result string, info string) {
	current, ok := i.vars[ErrorInfoVariable]
	if !ok || !strings.HasPrefix(current, result) {
		current = result
	}
	i.vars[ErrorInfoVariable] = current + info
}

// EvaluateScript evaluates a script line by line. It stops at the first line
// not completing with Ok and returns that line's code, result and number.
func (i *Interpreter) EvaluateScript(script string) (hosttypes.ReturnCode, string, int) {
	if err := i.Ready(); err != nil {
		return hosttypes.Error, err.Error(), 0
	}

	var result string
	for index, line := range splitLines(script) {
		lineNumber := index + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		code, value := i.evaluateLine(trimmed)
		if code != hosttypes.Ok {
			if code == hosttypes.Error {
				i.AddErrorInformation(value, fmt.Sprintf("\n    (line %d)", lineNumber))
			}
			return code, value, lineNumber
		}
		result = value

		if i.exited {
			break
		}
	}
	return hosttypes.Ok, result, 0
}

// Evaluate evaluates a top level script. Return completes normally there;
// break and continue outside a loop are errors.
func (i *Interpreter) Evaluate(script string) (hosttypes.ReturnCode, string, int) {
	code, result, line := i.EvaluateScript(script)
	switch code {
	case hosttypes.Return:
		return hosttypes.Ok, result, 0
	case hosttypes.Break, hosttypes.Continue:
		return hosttypes.Error, fmt.Sprintf("invoked %q outside of a loop", code.String()), line
	}
	return code, result, line
}

func (i *Interpreter) evaluateLine(line string) (hosttypes.ReturnCode, string) {
	substituted, err := i.substitute(line)
	if err != nil {
		return hosttypes.Error, err.Error()
	}

	words, err := shlex.Split(substituted)
	if err != nil {
		return hosttypes.Error, fmt.Sprintf("syntax error: %v", err)
	}
	if len(words) == 0 {
		return hosttypes.Ok, ""
	}

	command, ok := i.commands[words[0]]
	if !ok {
		return hosttypes.Error, fmt.Sprintf("invalid command name %q", words[0])
	}
	return command(i, words[1:])
}

// substitute replaces $name and ${name} outside single quotes. A backslash
// keeps the following character for the tokenizer.
func (i *Interpreter) substitute(line string) (string, error) {
	var sb strings.Builder
	inSingle, inDouble := false, false

	for pos := 0; pos < len(line); pos++ {
		c := line[pos]
		switch {
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			sb.WriteByte(c)
		case c == '"' && !inSingle:
			inDouble = !inDouble
			sb.WriteByte(c)
		case inSingle:
			sb.WriteByte(c)
		case c == '\\' && pos+1 < len(line):
			sb.WriteByte(c)
			sb.WriteByte(line[pos+1])
			pos++
		case c == '$':
			name, width := scanVariableName(line[pos+1:])
			if name == "" {
				sb.WriteByte(c)
				continue
			}
			value, ok := i.vars[name]
			if !ok {
				return "", fmt.Errorf("can't read %q: no such variable", name)
			}
			sb.WriteString(value)
			pos += width
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), nil
}

// scanVariableName reads "name" or "{name}" and returns the name and the
// number of bytes consumed.
func scanVariableName(s string) (string, int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end <= 1 {
			return "", 0
		}
		return s[1:end], end + 1
	}

	end := 0
	for end < len(s) && isNameByte(s[end]) {
		end++
	}
	return s[:end], end
}

func isNameByte(c byte) bool {
	return c == '_' || c == ':' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// splitLines splits a script into lines, joining lines that end in a backslash.
func splitLines(script string) []string {
	raw := strings.Split(strings.ReplaceAll(script, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	var pending strings.Builder
	for _, line := range raw {
		if strings.HasSuffix(line, "\\") {
			pending.WriteString(strings.TrimSuffix(line, "\\"))
			pending.WriteByte(' ')
			// keep numbering aligned with the source
			lines = append(lines, "")
			continue
		}
		if pending.Len() > 0 {
			pending.WriteString(line)
			line = pending.String()
			pending.Reset()
		}
		lines = append(lines, line)
	}
	if pending.Len() > 0 {
		lines = append(lines, pending.String())
	}
	return lines
}
