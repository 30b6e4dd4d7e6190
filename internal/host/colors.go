package host

import (
	"fmt"
	"sort"
	"strings"

	"hostshell/pkg/hosttypes"
)

// Suffixes naming the two color properties behind a role.
const (
	ForegroundSuffix = "ForegroundColor"
	BackgroundSuffix = "BackgroundColor"
)

// ColorResolver reads and writes named color properties of one host.
type ColorResolver interface {
	// GetProperty fails with ErrPropertyNotFound or ErrPropertyNotReadable.
	GetProperty(property string) (hosttypes.ConsoleColor, error)
	// SetProperty fails with ErrPropertyNotFound or ErrPropertyNotWritable.
	SetProperty(property string, color hosttypes.ConsoleColor) error
	// Properties lists the registered property names in sorted order.
	Properties() []string
}

type colorAccessor[H any] struct {
	get func(H) hosttypes.ConsoleColor
	set func(H, hosttypes.ConsoleColor)
}

// ColorTable maps property names to accessors of host type H. Build one per
// host type at package initialization and bind it to each instance.
type ColorTable[H any] struct {
	properties map[string]colorAccessor[H]
}

// NewColorTable creates an empty table.
func NewColorTable[H any]() *ColorTable[H] {
	return &ColorTable[H]{properties: make(map[string]colorAccessor[H])}
}

// Property registers a property. A nil get makes it unreadable and a nil set
// makes it unwritable.
func (t *ColorTable[H]) Property(name string, get func(H) hosttypes.ConsoleColor, set func(H, hosttypes.ConsoleColor)) *ColorTable[H] {
	t.properties[name] = colorAccessor[H]{get: get, set: set}
	return t
}

// Role registers the read/write foreground and background properties of a
// role backed by the pair returned from pair.
func (t *ColorTable[H]) Role(name string, pair func(H) *ColorPair) *ColorTable[H] {
	t.Property(name+ForegroundSuffix,
		func(h H) hosttypes.ConsoleColor { return pair(h).Foreground },
		func(h H, c hosttypes.ConsoleColor) { pair(h).Foreground = c })
	t.Property(name+BackgroundSuffix,
		func(h H) hosttypes.ConsoleColor { return pair(h).Background },
		func(h H, c hosttypes.ConsoleColor) { pair(h).Background = c })
	return t
}

// ReadOnlyRole registers a role whose properties can be read but not written.
func (t *ColorTable[H]) ReadOnlyRole(name string, foreground, background func(H) hosttypes.ConsoleColor) *ColorTable[H] {
	t.Property(name+ForegroundSuffix, foreground, nil)
	t.Property(name+BackgroundSuffix, background, nil)
	return t
}

// Bind returns a resolver over one host instance.
func (t *ColorTable[H]) Bind(h H) ColorResolver {
	return boundColorTable[H]{table: t, host: h}
}

// Properties lists the registered property names in sorted order.
func (t *ColorTable[H]) Properties() []string {
	names := make([]string, 0, len(t.properties))
	for name := range t.properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type boundColorTable[H any] struct {
	table *ColorTable[H]
	host  H
}

func (b boundColorTable[H]) GetProperty(property string) (hosttypes.ConsoleColor, error) {
	accessor, ok := b.table.properties[property]
	if !ok {
		return hosttypes.ColorNone, hosttypes.ErrPropertyNotFound
	}
	if accessor.get == nil {
		return hosttypes.ColorNone, hosttypes.ErrPropertyNotReadable
	}
	return accessor.get(b.host), nil
}

func (b boundColorTable[H]) SetProperty(property string, color hosttypes.ConsoleColor) error {
	accessor, ok := b.table.properties[property]
	if !ok {
		return hosttypes.ErrPropertyNotFound
	}
	if accessor.set == nil {
		return hosttypes.ErrPropertyNotWritable
	}
	accessor.set(b.host, color)
	return nil
}

func (b boundColorTable[H]) Properties() []string {
	return b.table.Properties()
}

// ColorPair is the foreground and background color of one role.
type ColorPair struct {
	Foreground hosttypes.ConsoleColor
	Background hosttypes.ConsoleColor
}

// RoleColors holds the writable standard color roles of a host.
type RoleColors struct {
	Banner   ColorPair
	Debug    ColorPair
	Error    ColorPair
	Fatal    ColorPair
	Help     ColorPair
	HelpItem ColorPair
	Official ColorPair
	Prompt   ColorPair
	Result   ColorPair
	Trusted  ColorPair
	Stable   ColorPair
	Safe     ColorPair
	Security ColorPair
	Isolated ColorPair
}

// NewRoleColors returns roles set to the given default pair.
func NewRoleColors(foreground, background hosttypes.ConsoleColor) RoleColors {
	pair := ColorPair{Foreground: foreground, Background: background}
	return RoleColors{
		Banner: pair, Debug: pair, Error: pair, Fatal: pair,
		Help: pair, HelpItem: pair, Official: pair, Prompt: pair,
		Result: pair, Trusted: pair, Stable: pair, Safe: pair,
		Security: pair, Isolated: pair,
	}
}

// RegisterStandardRoles registers the read-only Default role and every
// RoleColors field on a table.
func RegisterStandardRoles[H any](t *ColorTable[H], base func(H) Base, roles func(H) *RoleColors) *ColorTable[H] {
	t.ReadOnlyRole("Default",
		func(h H) hosttypes.ConsoleColor { return base(h).DefaultForegroundColor() },
		func(h H) hosttypes.ConsoleColor { return base(h).DefaultBackgroundColor() })

	fields := map[string]func(*RoleColors) *ColorPair{
		"Banner":   func(r *RoleColors) *ColorPair { return &r.Banner },
		"Debug":    func(r *RoleColors) *ColorPair { return &r.Debug },
		"Error":    func(r *RoleColors) *ColorPair { return &r.Error },
		"Fatal":    func(r *RoleColors) *ColorPair { return &r.Fatal },
		"Help":     func(r *RoleColors) *ColorPair { return &r.Help },
		"HelpItem": func(r *RoleColors) *ColorPair { return &r.HelpItem },
		"Official": func(r *RoleColors) *ColorPair { return &r.Official },
		"Prompt":   func(r *RoleColors) *ColorPair { return &r.Prompt },
		"Result":   func(r *RoleColors) *ColorPair { return &r.Result },
		"Trusted":  func(r *RoleColors) *ColorPair { return &r.Trusted },
		"Stable":   func(r *RoleColors) *ColorPair { return &r.Stable },
		"Safe":     func(r *RoleColors) *ColorPair { return &r.Safe },
		"Security": func(r *RoleColors) *ColorPair { return &r.Security },
		"Isolated": func(r *RoleColors) *ColorPair { return &r.Isolated },
	}
	for name, field := range fields {
		t.Role(name, func(h H) *ColorPair { return field(roles(h)) })
	}
	return t
}

// GetColors reads the requested halves of a color role. Both lookups must
// succeed before anything is returned; unrequested halves are the base
// layer defaults.
func (s *Shell) GetColors(theme string, name string, foreground bool, background bool) (fg hosttypes.ConsoleColor, bg hosttypes.ConsoleColor, err error) {
	if s.disposed() {
		return hosttypes.ColorNone, hosttypes.ColorNone, hosttypes.ErrDisposed
	}
	defer recoverColorFault(name, &err, func() {
		fg, bg = hosttypes.ColorNone, hosttypes.ColorNone
	})

	if err := validateColorRequest(theme, name); err != nil {
		return hosttypes.ColorNone, hosttypes.ColorNone, err
	}

	localFg := s.base.DefaultForegroundColor()
	localBg := s.base.DefaultBackgroundColor()

	if foreground {
		c, err := s.getProperty(hosttypes.Foreground, name)
		if err != nil {
			return hosttypes.ColorNone, hosttypes.ColorNone, err
		}
		localFg = c
	}
	if background {
		c, err := s.getProperty(hosttypes.Background, name)
		if err != nil {
			return hosttypes.ColorNone, hosttypes.ColorNone, err
		}
		localBg = c
	}
	return localFg, localBg, nil
}

// SetColors writes the requested halves of a color role. Each half is
// written as soon as it resolves, so a failing background leaves an already
// written foreground in place.
func (s *Shell) SetColors(theme string, name string, foreground bool, background bool, foregroundColor hosttypes.ConsoleColor, backgroundColor hosttypes.ConsoleColor) (err error) {
	if s.disposed() {
		return hosttypes.ErrDisposed
	}
	defer recoverColorFault(name, &err, nil)

	if err := validateColorRequest(theme, name); err != nil {
		return err
	}
	if foreground {
		if err := s.setProperty(hosttypes.Foreground, name, foregroundColor); err != nil {
			return err
		}
	}
	if background {
		if err := s.setProperty(hosttypes.Background, name, backgroundColor); err != nil {
			return err
		}
	}
	return nil
}

// ColorRoles lists the roles of the bound resolver that have both halves.
func (s *Shell) ColorRoles() []string {
	if s.colors == nil {
		return nil
	}
	seen := make(map[string]int)
	var roles []string
	for _, property := range s.colors.Properties() {
		role, ok := trimColorSuffix(property)
		if !ok {
			continue
		}
		seen[role]++
		if seen[role] == 2 {
			roles = append(roles, role)
		}
	}
	sort.Strings(roles)
	return roles
}

func validateColorRequest(theme, name string) error {
	if theme != "" {
		return hosttypes.ErrUnsupportedTheme
	}
	if name == "" {
		return hosttypes.ErrInvalidColorName
	}
	return nil
}

func (s *Shell) getProperty(direction hosttypes.ColorDirection, name string) (hosttypes.ConsoleColor, error) {
	if s.colors == nil {
		return hosttypes.ColorNone, &hosttypes.ColorPropertyError{Direction: direction, Name: name, Err: hosttypes.ErrPropertyNotFound}
	}
	c, err := s.colors.GetProperty(propertyName(direction, name))
	if err != nil {
		return hosttypes.ColorNone, &hosttypes.ColorPropertyError{Direction: direction, Name: name, Err: err}
	}
	return c, nil
}

func (s *Shell) setProperty(direction hosttypes.ColorDirection, name string, color hosttypes.ConsoleColor) error {
	if s.colors == nil {
		return &hosttypes.ColorPropertyError{Direction: direction, Name: name, Err: hosttypes.ErrPropertyNotFound}
	}
	if err := s.colors.SetProperty(propertyName(direction, name), color); err != nil {
		return &hosttypes.ColorPropertyError{Direction: direction, Name: name, Err: err}
	}
	return nil
}

func propertyName(direction hosttypes.ColorDirection, name string) string {
	if direction == hosttypes.Background {
		return name + BackgroundSuffix
	}
	return name + ForegroundSuffix
}

func trimColorSuffix(property string) (string, bool) {
	for _, suffix := range []string{ForegroundSuffix, BackgroundSuffix} {
		if role, ok := strings.CutSuffix(property, suffix); ok && role != "" {
			return role, true
		}
	}
	return "", false
}

// recoverColorFault turns a panic raised by a color accessor into an error.
func recoverColorFault(name string, err *error, reset func()) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("color %q: %v", name, r)
		if reset != nil {
			reset()
		}
	}
}
