package host

import (
	"errors"
	"fmt"

	"hostshell/internal/theme"
	"hostshell/pkg/hosttypes"
)

// ApplyPalette writes every role of the palette through SetColors. Roles the
// host does not have are skipped; other failures are collected.
func (s *Shell) ApplyPalette(palette *theme.Palette) error {
	if palette == nil {
		return nil
	}

	var errs []error
	for _, role := range palette.Roles() {
		pair := palette.Colors[role]
		var fg, bg hosttypes.ConsoleColor
		if pair.Foreground != nil {
			fg = *pair.Foreground
		}
		if pair.Background != nil {
			bg = *pair.Background
		}

		err := s.SetColors("", role, pair.Foreground != nil, pair.Background != nil, fg, bg)
		if errors.Is(err, hosttypes.ErrPropertyNotFound) {
			s.log.Debug("Skipping color role", "host", s.data.Name, "role", role, "palette", palette.Name)
			continue
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadProfile applies the profile file named in the host data. Nothing is
// loaded when the host was created without profile support or no profile
// is configured.
func (s *Shell) LoadProfile() error {
	if s.data.NoProfile() || s.data.Profile == "" {
		return nil
	}

	palette, err := theme.LoadFile(s.data.Profile)
	if err != nil {
		return fmt.Errorf("failed to load host profile: %w", err)
	}
	if err := s.ApplyPalette(palette); err != nil {
		return fmt.Errorf("failed to apply host profile %s: %w", palette.Name, err)
	}
	return nil
}
