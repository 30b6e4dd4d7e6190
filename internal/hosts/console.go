package hosts

import (
	"io"
	"os"
	"strconv"

	"hostshell/internal/host"
	"hostshell/internal/logger"
	"hostshell/internal/theme"
	"hostshell/pkg/hosttypes"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Console is a terminal host rendering color roles with lipgloss.
type Console struct {
	*host.Shell
	roles    host.RoleColors
	renderer *lipgloss.Renderer
	terminal io.Writer

	marks      bool
	commandRan bool
	lastCode   hosttypes.ReturnCode
}

var _ hosttypes.Host = (*Console)(nil)

var consoleColors = host.RegisterStandardRoles(host.NewColorTable[*Console](),
	func(c *Console) host.Base { return c.Base() },
	func(c *Console) *host.RoleColors { return &c.roles })

type consoleOptions struct {
	out      io.Writer
	terminal io.Writer
	profile  *termenv.Profile
	marks    bool
}

// ConsoleOption configures a Console.
type ConsoleOption func(*consoleOptions)

// WithOutput sets where the console writes. Defaults to standard output.
func WithOutput(w io.Writer) ConsoleOption {
	return func(o *consoleOptions) {
		o.out = w
	}
}

// WithTerminal sets the terminal used for color detection and the window
// title when output goes through another writer, such as a line editor.
func WithTerminal(f *os.File) ConsoleOption {
	return func(o *consoleOptions) {
		o.terminal = f
	}
}

// WithPromptMarks emits OSC 133 prompt marks around start prompts. Marks are
// never written when color is disabled.
func WithPromptMarks(enabled bool) ConsoleOption {
	return func(o *consoleOptions) {
		o.marks = enabled
	}
}

// WithColorProfile forces a color profile instead of detecting one.
func WithColorProfile(profile termenv.Profile) ConsoleOption {
	return func(o *consoleOptions) {
		o.profile = &profile
	}
}

// NewConsole creates a console host. The built-in palette matching the color
// support is applied first and the host profile, if any, on top of it.
func NewConsole(data hosttypes.HostData, opts ...ConsoleOption) (*Console, error) {
	options := consoleOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(&options)
	}
	if options.terminal == nil {
		options.terminal = options.out
	}

	renderer := lipgloss.NewRenderer(options.terminal)
	if options.profile != nil {
		renderer.SetColorProfile(*options.profile)
	}
	if data.NoColor() {
		renderer.SetColorProfile(termenv.Ascii)
	}

	out := options.out
	if data.NoColor() {
		out = stripWriter{w: out}
	}

	c := &Console{
		roles:    host.NewRoleColors(hosttypes.ColorDefault, hosttypes.ColorDefault),
		renderer: renderer,
		terminal: options.terminal,
		marks:    options.marks && !data.NoColor(),
	}
	base := host.NewDefault(
		host.WithWriter(out),
		host.WithNoColor(data.NoColor()),
		host.WithRenderer(lipglossRenderer(renderer)),
		host.WithColorDetector(func() bool {
			return renderer.ColorProfile() != termenv.Ascii
		}),
	)
	c.Shell = host.NewShell(base, data, host.WithStateFunc(c.state))
	c.BindColors(consoleColors.Bind(c))

	if err := c.ApplyPalette(theme.ForHost(data.NoColor())); err != nil {
		logger.Warn("Failed to apply built-in palette", "host", data.Name, "error", err)
	}
	if err := c.LoadProfile(); err != nil {
		logger.Warn("Failed to load host profile", "host", data.Name, "error", err)
	}

	if !data.NoTitle() && isTerminal(options.terminal) {
		if title := c.DefaultTitle(); title != "" {
			termenv.NewOutput(options.terminal).SetWindowTitle(title)
		}
	}

	return c, nil
}

func (c *Console) state() []hosttypes.StatePair {
	return []hosttypes.StatePair{
		{Key: "ColorProfile", Value: profileName(c.renderer.ColorProfile())},
		{Key: "Terminal", Value: strconv.FormatBool(isTerminal(c.terminal))},
		{Key: "PromptMarks", Value: strconv.FormatBool(c.marks)},
	}
}

// lipglossRenderer renders a color pair with the 16 color ANSI palette.
// Pseudo colors leave the terminal's own color in place.
func lipglossRenderer(r *lipgloss.Renderer) host.Renderer {
	return func(text string, foreground, background hosttypes.ConsoleColor) string {
		style := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
		if n := foreground.ANSI(); n >= 0 {
			style = style.Foreground(lipgloss.Color(strconv.Itoa(n)))
		}
		if n := background.ANSI(); n >= 0 {
			style = style.Background(lipgloss.Color(strconv.Itoa(n)))
		}
		return style.Render(text)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func profileName(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "TrueColor"
	case termenv.ANSI256:
		return "ANSI256"
	case termenv.ANSI:
		return "ANSI"
	default:
		return "Ascii"
	}
}
