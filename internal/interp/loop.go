package interp

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"hostshell/pkg/hosttypes"
)

// ErrInterrupted is returned by a LineReader when the user interrupts the
// current line. The pending command is discarded and the loop continues.
var ErrInterrupted = errors.New("interrupted")

// LineReader supplies input lines without their line terminators. It
// returns io.EOF when input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

// ScannerReader reads lines from an io.Reader.
type ScannerReader struct {
	scanner *bufio.Scanner
}

// NewScannerReader creates a line reader over r.
func NewScannerReader(r io.Reader) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(r)}
}

// ReadLine implements LineReader.
func (s *ScannerReader) ReadLine() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

type readExceptionSetter interface {
	SetReadException(exception bool)
}

// promptFlags returns the modifiers describing the current evaluation context.
func (i *Interpreter) promptFlags(queued bool) hosttypes.PromptFlags {
	flags := hosttypes.PromptFlagNone
	if i.debug {
		flags |= hosttypes.PromptFlagDebug
	}
	if queued {
		flags |= hosttypes.PromptFlagQueue
	}
	return flags
}

// Interactive runs the read/eval loop until input ends, exit runs or ctx is
// done. The host shows a start prompt before each command and a continue
// prompt for every line following one that ends in a backslash. Queued
// marks input that does not come from a person, such as a pipe. It returns
// the exit code requested by the exit command. A host created with
// CreateFlagNoCancel ignores cancellation of ctx.
func (i *Interpreter) Interactive(ctx context.Context, reader LineReader, queued bool) (int, error) {
	if i.host == nil {
		return 1, hosttypes.ErrInvalidInterpreter
	}
	if i.host.Data().NoCancel() {
		ctx = context.WithoutCancel(ctx)
	}

	var pending strings.Builder
	for {
		if err := ctx.Err(); err != nil {
			i.Cancel()
			return 1, err
		}

		promptType := hosttypes.PromptStart
		if pending.Len() > 0 {
			promptType = hosttypes.PromptContinue
		}
		flags := i.promptFlags(queued)
		if _, err := i.host.Prompt(promptType, &flags); err != nil {
			i.log.Debug("Prompt failed", "prompt", promptType, "error", err)
		}

		line, err := reader.ReadLine()
		if errors.Is(err, ErrInterrupted) {
			pending.Reset()
			i.ResetCancel()
			continue
		}
		if errors.Is(err, io.EOF) {
			if pending.Len() > 0 {
				i.evaluateAndReport(pending.String())
			}
			_, code := i.Exited()
			return code, nil
		}
		if err != nil {
			if setter, ok := i.host.(readExceptionSetter); ok {
				setter.SetReadException(true)
			}
			return 1, err
		}

		if strings.HasSuffix(line, "\\") {
			pending.WriteString(line)
			pending.WriteByte('\n')
			continue
		}
		pending.WriteString(line)
		script := pending.String()
		pending.Reset()

		i.evaluateAndReport(script)
		if exited, code := i.Exited(); exited {
			return code, nil
		}
	}
}

// evaluateAndReport evaluates a command and writes its result line.
func (i *Interpreter) evaluateAndReport(script string) hosttypes.ReturnCode {
	code, result, line := i.Evaluate(script)
	if !i.host.WriteResultLine(code, result, line) {
		i.log.Debug("Result not written", "code", code)
	}
	return code
}

// RunScript evaluates a whole script and reports its result through the
// host, returning the exit code: the one given to exit, 1 on failure, else 0.
func (i *Interpreter) RunScript(script string) int {
	if i.host == nil {
		return 1
	}
	code := i.evaluateAndReport(script)
	if exited, exitCode := i.Exited(); exited {
		return exitCode
	}
	if code != hosttypes.Ok {
		return 1
	}
	return 0
}
