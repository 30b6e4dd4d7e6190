package main

import (
	"bytes"
	"errors"
	"io"

	"hostshell/internal/interp"

	"github.com/chzyer/readline"
)

// lineSource is the part of readline.Instance the editor uses.
type lineSource interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// lineEditor sits between a console host and readline. Complete lines are
// written through; text after the last newline is held back and handed to
// readline as the prompt of the next read, so prompts survive redraws.
type lineEditor struct {
	source  lineSource
	out     io.Writer
	pending []byte
}

func newLineEditor(rl *readline.Instance) *lineEditor {
	return &lineEditor{source: rl, out: rl.Stdout()}
}

// Write implements io.Writer.
func (e *lineEditor) Write(p []byte) (int, error) {
	e.pending = append(e.pending, p...)
	if i := bytes.LastIndexByte(e.pending, '\n'); i >= 0 {
		if _, err := e.out.Write(e.pending[:i+1]); err != nil {
			return 0, err
		}
		e.pending = append(e.pending[:0], e.pending[i+1:]...)
	}
	return len(p), nil
}

// ReadLine implements interp.LineReader.
func (e *lineEditor) ReadLine() (string, error) {
	e.source.SetPrompt(string(e.pending))
	e.pending = e.pending[:0]

	line, err := e.source.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", interp.ErrInterrupted
	}
	return line, err
}
