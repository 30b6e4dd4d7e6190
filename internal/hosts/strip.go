package hosts

import (
	"io"

	"github.com/charmbracelet/x/ansi"
)

// stripWriter removes ANSI escape sequences before writing.
type stripWriter struct {
	w io.Writer
}

func (s stripWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(s.w, ansi.Strip(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}
