// Package embedded provides access to embedded host color palettes.
package embedded

import _ "embed"

// DefaultThemeData contains the embedded default palette YAML data.
//
//go:embed themes/default.yaml
var DefaultThemeData []byte

// PlainThemeData contains the embedded monochrome palette YAML data.
//
//go:embed themes/plain.yaml
var PlainThemeData []byte
