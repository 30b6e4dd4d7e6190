package host

import (
	"fmt"
	"io"
	"strconv"

	"hostshell/internal/logger"
	"hostshell/internal/version"
	"hostshell/pkg/hosttypes"

	"github.com/charmbracelet/log"
)

// PrimaryInterpreterID is the identifier of the first interpreter created in
// a process. Prompts of any other interpreter carry its id.
const PrimaryInterpreterID int64 = 1

// Shell is the interactive host core. It layers the prompt protocol, the
// capability flag cache, color role resolution and the title on top of a
// Base. A Shell is driven by one interpreter at a time and does no locking.
type Shell struct {
	base        Base
	data        hosttypes.HostData
	extraFlags  hosttypes.HostFlags
	flags       flagCache
	colors      ColorResolver
	titleSource func() version.PackageInfo
	title       string
	stateFunc   func() []hosttypes.StatePair
	closed      bool
	prompting   bool
	log         *log.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithExtraFlags adds capability bits the concrete host supports.
func WithExtraFlags(flags hosttypes.HostFlags) Option {
	return func(s *Shell) {
		s.extraFlags |= flags
	}
}

// WithTitleSource replaces the packaging metadata the title is built from.
func WithTitleSource(source func() version.PackageInfo) Option {
	return func(s *Shell) {
		if source != nil {
			s.titleSource = source
		}
	}
}

// WithStateFunc appends host specific entries to QueryState.
func WithStateFunc(fn func() []hosttypes.StatePair) Option {
	return func(s *Shell) {
		s.stateFunc = fn
	}
}

// NewShell creates the host core over base. The host data is copied.
func NewShell(base Base, data hosttypes.HostData, opts ...Option) *Shell {
	s := &Shell{
		base:        base,
		data:        data.Clone(),
		titleSource: version.GetPackageInfo,
		log:         logger.NewStyledLogger("Host"),
	}
	for _, opt := range opts {
		opt(s)
	}

	base.OnStateChange(s.flags.invalidate)
	if binder, ok := base.(ColorBinder); ok {
		binder.BindColors(s)
	}
	return s
}

// Data returns a copy of the host identity.
func (s *Shell) Data() hosttypes.HostData {
	return s.data.Clone()
}

// Base returns the default host layer.
func (s *Shell) Base() Base {
	return s.base
}

// BindColors attaches the color roles of the concrete host.
func (s *Shell) BindColors(resolver ColorResolver) {
	s.colors = resolver
}

// Interpreter returns the owning interpreter after checking it may evaluate.
func (s *Shell) Interpreter() (hosttypes.Interpreter, error) {
	interp := s.data.Interpreter
	if interp == nil {
		return nil, hosttypes.ErrInvalidInterpreter
	}
	if err := interp.Ready(); err != nil {
		return nil, fmt.Errorf("interpreter %d not ready: %w", interp.ID(), err)
	}
	return interp, nil
}

// interpreterNoReadyCheck returns the owning interpreter even while it is
// canceled or shutting down. Only the prompt path may use it.
func (s *Shell) interpreterNoReadyCheck() hosttypes.Interpreter {
	return s.data.Interpreter
}

// GetHostFlags returns the cached capability flags, computing them when stale.
func (s *Shell) GetHostFlags() hosttypes.HostFlags {
	if s.disposed() {
		return hosttypes.HostFlagsNone
	}
	return s.flags.get(s.computeHostFlags)
}

func (s *Shell) computeHostFlags() hosttypes.HostFlags {
	flags := hosttypes.HostFlagPrompt | hosttypes.HostFlagTitle | s.extraFlags
	if !s.data.NoProfile() {
		flags |= hosttypes.HostFlagProfile
	}
	flags |= s.base.HostFlags()
	s.log.Debug("Computed host flags", "host", s.data.Name, "flags", flags)
	return flags
}

// ResetHostFlags invalidates the cache and resets the base layer flags.
func (s *Shell) ResetHostFlags() bool {
	if s.disposed() {
		return false
	}
	s.flags.invalidate()
	return s.base.ResetHostFlags()
}

// Reset resets the base layer and then the capability flags.
func (s *Shell) Reset() error {
	if s.disposed() {
		return hosttypes.ErrDisposed
	}
	if err := s.base.Reset(); err != nil {
		return err
	}
	if !s.ResetHostFlags() {
		return hosttypes.ErrResetFlags
	}
	return nil
}

// SetReadException records a read fault and invalidates the flags.
func (s *Shell) SetReadException(exception bool) {
	if s.disposed() {
		return
	}
	s.base.SetReadException(exception)
	s.flags.invalidate()
}

// SetWriteException records a write fault and invalidates the flags.
func (s *Shell) SetWriteException(exception bool) {
	if s.disposed() {
		return
	}
	s.base.SetWriteException(exception)
	s.flags.invalidate()
}

// Write emits text through the base layer.
func (s *Shell) Write(value string) bool {
	if s.disposed() {
		return false
	}
	return s.base.Write(value)
}

// WriteLine emits text followed by a newline.
func (s *Shell) WriteLine(value string) bool {
	return s.Write(value + "\n")
}

// WriteRole emits text in the colors of a role, falling back to plain text
// when the role cannot be resolved.
func (s *Shell) WriteRole(role string, value string) bool {
	if s.disposed() {
		return false
	}
	fg, bg, err := s.GetColors("", role, true, true)
	if err != nil {
		s.log.Debug("Color role unavailable", "role", role, "error", err)
		return s.base.Write(value)
	}
	return s.base.WriteColor(value, fg, bg)
}

// WriteResultLine emits an evaluation result through the base layer.
func (s *Shell) WriteResultLine(code hosttypes.ReturnCode, result string, errorLine int) bool {
	if s.disposed() {
		return false
	}
	return s.base.WriteResultLine(code, result, errorLine)
}

// QueryState describes the host for diagnostics.
func (s *Shell) QueryState() []hosttypes.StatePair {
	if s.disposed() {
		return nil
	}
	state := []hosttypes.StatePair{
		{Key: "ID", Value: s.data.ID.String()},
		{Key: "Name", Value: s.data.Name},
		{Key: "Group", Value: s.data.Group},
		{Key: "Description", Value: s.data.Description},
		{Key: "TypeName", Value: s.data.TypeName},
		{Key: "Profile", Value: s.data.Profile},
		{Key: "HostFlags", Value: s.GetHostFlags().String()},
		{Key: "Title", Value: s.DefaultTitle()},
		{Key: "ReadException", Value: strconv.FormatBool(s.base.ReadException())},
		{Key: "WriteException", Value: strconv.FormatBool(s.base.WriteException())},
	}
	if interp := s.interpreterNoReadyCheck(); interp != nil {
		state = append(state, hosttypes.StatePair{Key: "Interpreter", Value: strconv.FormatInt(interp.ID(), 10)})
	}
	if s.stateFunc != nil {
		state = append(state, s.stateFunc()...)
	}
	return state
}

// Close releases the base layer. Afterwards every operation is a no-op that
// reports failure, or panics when the binary is built with the hoststrict tag.
func (s *Shell) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.flags.invalidate()
	if c, ok := s.base.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("failed to close host %s: %w", s.data.Name, err)
		}
	}
	return nil
}

// Closed reports whether Close has been called.
func (s *Shell) Closed() bool {
	return s.closed
}

// disposed reports whether the host was closed.
func (s *Shell) disposed() bool {
	if !s.closed {
		return false
	}
	if StrictDisposal {
		panic(fmt.Errorf("host %s: %w", s.data.Name, hosttypes.ErrDisposed))
	}
	return true
}

// bestEffort runs a secondary operation whose failure must not mask the
// primary outcome of the caller.
func (s *Shell) bestEffort(name string, op func() bool) {
	if !op() {
		s.log.Debug("Best-effort operation failed", "host", s.data.Name, "operation", name)
	}
}
