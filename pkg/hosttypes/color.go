package hosttypes

import (
	"fmt"
	"strings"
)

// ConsoleColor is one of the sixteen classic console colors, or one of the
// two pseudo colors None (unset) and Default (whatever the terminal uses).
type ConsoleColor int

// Console colors. The numeric order of the concrete colors follows the
// classic console palette, not the ANSI one; use ANSI for rendering.
const (
	ColorNone ConsoleColor = iota
	ColorDefault
	ColorBlack
	ColorDarkBlue
	ColorDarkGreen
	ColorDarkCyan
	ColorDarkRed
	ColorDarkMagenta
	ColorDarkYellow
	ColorGray
	ColorDarkGray
	ColorBlue
	ColorGreen
	ColorCyan
	ColorRed
	ColorMagenta
	ColorYellow
	ColorWhite
)

var colorNames = []string{
	ColorNone:        "None",
	ColorDefault:     "Default",
	ColorBlack:       "Black",
	ColorDarkBlue:    "DarkBlue",
	ColorDarkGreen:   "DarkGreen",
	ColorDarkCyan:    "DarkCyan",
	ColorDarkRed:     "DarkRed",
	ColorDarkMagenta: "DarkMagenta",
	ColorDarkYellow:  "DarkYellow",
	ColorGray:        "Gray",
	ColorDarkGray:    "DarkGray",
	ColorBlue:        "Blue",
	ColorGreen:       "Green",
	ColorCyan:        "Cyan",
	ColorRed:         "Red",
	ColorMagenta:     "Magenta",
	ColorYellow:      "Yellow",
	ColorWhite:       "White",
}

// ansiIndex maps concrete colors onto the 16 color ANSI palette.
var ansiIndex = map[ConsoleColor]int{
	ColorBlack:       0,
	ColorDarkRed:     1,
	ColorDarkGreen:   2,
	ColorDarkYellow:  3,
	ColorDarkBlue:    4,
	ColorDarkMagenta: 5,
	ColorDarkCyan:    6,
	ColorGray:        7,
	ColorDarkGray:    8,
	ColorRed:         9,
	ColorGreen:       10,
	ColorYellow:      11,
	ColorBlue:        12,
	ColorMagenta:     13,
	ColorCyan:        14,
	ColorWhite:       15,
}

// String returns the color name.
func (c ConsoleColor) String() string {
	if c >= 0 && int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("ConsoleColor(%d)", int(c))
}

// IsConcrete reports whether the color names an actual palette entry.
func (c ConsoleColor) IsConcrete() bool {
	_, ok := ansiIndex[c]
	return ok
}

// ANSI returns the ANSI palette index of the color, or -1 for pseudo colors.
func (c ConsoleColor) ANSI() int {
	if idx, ok := ansiIndex[c]; ok {
		return idx
	}
	return -1
}

// ParseConsoleColor parses a color name case-insensitively.
func ParseConsoleColor(name string) (ConsoleColor, error) {
	trimmed := strings.TrimSpace(name)
	for i, candidate := range colorNames {
		if strings.EqualFold(candidate, trimmed) {
			return ConsoleColor(i), nil
		}
	}
	return ColorNone, fmt.Errorf("unknown console color %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (c ConsoleColor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so colors can be read
// from YAML and environment configuration by name.
func (c *ConsoleColor) UnmarshalText(text []byte) error {
	parsed, err := ParseConsoleColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
