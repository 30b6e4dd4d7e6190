package hosts

import (
	"strings"

	"hostshell/internal/logger"
	"hostshell/pkg/hosttypes"
)

// OSC 133 semantic prompt marks. Terminals use them to jump between prompts
// and to tell command input from command output.
const (
	markPromptStart  = "A"
	markCommandStart = "B"
	markCommandEnd   = "D"
)

// formatMark returns ESC ] 133 ; mark [; params] BEL.
func formatMark(mark string, params ...string) string {
	var sb strings.Builder
	sb.WriteString("\x1b]133;")
	sb.WriteString(mark)
	for _, p := range params {
		sb.WriteByte(';')
		sb.WriteString(p)
	}
	sb.WriteByte('\a')
	return sb.String()
}

// exitStatus maps a result code onto the status carried by a command end mark.
func exitStatus(code hosttypes.ReturnCode) string {
	if code == hosttypes.Ok {
		return "0"
	}
	return "1"
}

// Prompt runs the shared prompt protocol. With prompt marks enabled a start
// prompt is preceded by the end mark of the previous command and wrapped in
// prompt start and command start marks. A closed console writes no marks.
func (c *Console) Prompt(promptType hosttypes.PromptType, flags *hosttypes.PromptFlags) (hosttypes.ReturnCode, error) {
	if !c.marks || promptType != hosttypes.PromptStart || c.Closed() {
		return c.Shell.Prompt(promptType, flags)
	}

	if c.commandRan {
		c.writeMark(markCommandEnd, exitStatus(c.lastCode))
		c.commandRan = false
	}
	c.writeMark(markPromptStart)
	code, err := c.Shell.Prompt(promptType, flags)
	c.writeMark(markCommandStart)
	return code, err
}

// WriteResultLine writes a result line and records its code for the next
// command end mark.
func (c *Console) WriteResultLine(code hosttypes.ReturnCode, result string, errorLine int) bool {
	c.lastCode, c.commandRan = code, true
	return c.Shell.WriteResultLine(code, result, errorLine)
}

func (c *Console) writeMark(mark string, params ...string) {
	if !c.Base().Write(formatMark(mark, params...)) {
		logger.Debug("Prompt mark not written", "host", c.Data().Name, "mark", mark)
	}
}
