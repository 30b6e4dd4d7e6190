// Package theme loads the color palettes hosts start from. A palette maps
// color role names to foreground/background pairs and is stored as YAML,
// either embedded in the binary or in a host profile file.
package theme

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"hostshell/internal/data/embedded"
	"hostshell/internal/logger"
	"hostshell/pkg/hosttypes"

	"gopkg.in/yaml.v3"
)

// RolePair is the configured color pair of one role. Missing halves are left
// untouched when the palette is applied.
type RolePair struct {
	Foreground *hosttypes.ConsoleColor `yaml:"foreground,omitempty"`
	Background *hosttypes.ConsoleColor `yaml:"background,omitempty"`
}

// Palette is a named set of role colors.
type Palette struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description,omitempty"`
	Colors      map[string]RolePair `yaml:"colors"`
}

// Parse decodes a palette from YAML.
func Parse(data []byte) (*Palette, error) {
	var palette Palette
	if err := yaml.Unmarshal(data, &palette); err != nil {
		return nil, fmt.Errorf("failed to parse palette: %w", err)
	}

	for role := range palette.Colors {
		if strings.TrimSpace(role) == "" {
			return nil, fmt.Errorf("palette %q has an empty role name", palette.Name)
		}
	}

	if palette.Colors == nil {
		palette.Colors = make(map[string]RolePair)
	}
	return &palette, nil
}

// LoadFile reads a palette from a YAML file.
func LoadFile(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette %s: %w", path, err)
	}

	palette, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if palette.Name == "" {
		palette.Name = path
	}
	return palette, nil
}

// Default returns the built-in palette for color-capable hosts.
func Default() *Palette {
	return loadEmbedded("default", embedded.DefaultThemeData)
}

// Plain returns the built-in monochrome palette.
func Plain() *Palette {
	return loadEmbedded("plain", embedded.PlainThemeData)
}

// ForHost picks the built-in palette matching the host's color support.
func ForHost(noColor bool) *Palette {
	if noColor {
		return Plain()
	}
	return Default()
}

func loadEmbedded(name string, data []byte) *Palette {
	palette, err := Parse(data)
	if err != nil {
		logger.Error("Failed to load palette", "palette", name, "error", err)
		return &Palette{Name: name, Colors: make(map[string]RolePair)}
	}
	return palette
}

// Roles returns the role names of the palette in sorted order.
func (p *Palette) Roles() []string {
	roles := make([]string, 0, len(p.Colors))
	for role := range p.Colors {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}
