package hosttypes

// Interpreter is what a host needs from the interpreter that owns it.
type Interpreter interface {
	// ID returns the numeric interpreter identifier; 1 is the primary interpreter.
	ID() int64

	// Ready reports whether the interpreter may currently evaluate scripts.
	// A nil error means ready; disposed or canceled interpreters return an error.
	Ready() error

	// GetVariableValue looks up a variable, returning false when it does not
	// exist or has no value.
	GetVariableValue(flags VariableFlags, name string) (string, bool)

	// EvaluatePromptScript evaluates a prompt script and returns its status,
	// result (the error message on failure) and the failing line, if any.
	EvaluatePromptScript(script string) (code ReturnCode, result string, errorLine int)

	// AddErrorInformation appends context to the error information recorded
	// for the given error result.
	AddErrorInformation(result string, info string)
}

// InteractiveHost is the surface an interpreter's read/eval loop uses.
type InteractiveHost interface {
	// Prompt emits the prompt of the given type. Done is cleared on entry and
	// set in *flags when output was produced.
	Prompt(promptType PromptType, flags *PromptFlags) (ReturnCode, error)

	// GetHostFlags returns the capabilities the host currently exposes.
	GetHostFlags() HostFlags

	// ResetHostFlags discards cached capability information.
	ResetHostFlags() bool

	// DefaultTitle returns the lazily built host title, or "" when unavailable.
	DefaultTitle() string

	// Write emits text and reports whether output actually occurred.
	Write(value string) bool

	// WriteResultLine emits an evaluation result followed by a newline.
	WriteResultLine(code ReturnCode, result string, errorLine int) bool
}

// ColorHost resolves symbolic color roles to foreground/background pairs.
type ColorHost interface {
	// GetColors reads the requested halves of a color role. Unrequested halves
	// are the host's default colors.
	GetColors(theme string, name string, foreground bool, background bool) (ConsoleColor, ConsoleColor, error)

	// SetColors writes the requested halves of a color role.
	SetColors(theme string, name string, foreground bool, background bool, foregroundColor ConsoleColor, backgroundColor ConsoleColor) error
}

// StatePair is one entry of a host state description.
type StatePair struct {
	Key   string
	Value string
}

// Host is the full contract implemented by every concrete host.
type Host interface {
	InteractiveHost
	ColorHost

	// Data returns a copy of the identity the host was created with.
	Data() HostData

	// Reset returns the host to its initial runtime state.
	Reset() error

	// QueryState describes the host for diagnostics.
	QueryState() []StatePair

	// Close releases the host. Further use is a no-op unless built in strict mode.
	Close() error
}
