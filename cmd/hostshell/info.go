package main

import (
	"fmt"
	"strings"

	"hostshell/pkg/hosttypes"

	"github.com/charmbracelet/glamour"
)

// infoMarkdown describes a host: its state, its color roles and the host
// kinds that could have been configured instead.
func infoMarkdown(h hosttypes.Host, kinds []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Host %s\n\n", h.Data().Name)

	sb.WriteString("| Key | Value |\n|---|---|\n")
	for _, pair := range h.QueryState() {
		fmt.Fprintf(&sb, "| %s | %s |\n", pair.Key, escapeCell(pair.Value))
	}

	if lister, ok := h.(interface{ ColorRoles() []string }); ok {
		if roles := lister.ColorRoles(); len(roles) > 0 {
			sb.WriteString("\n## Color roles\n\n| Role | Foreground | Background |\n|---|---|---|\n")
			for _, role := range roles {
				fg, bg, err := h.GetColors("", role, true, true)
				if err != nil {
					fmt.Fprintf(&sb, "| %s | %s | |\n", role, escapeCell(err.Error()))
					continue
				}
				fmt.Fprintf(&sb, "| %s | %s | %s |\n", role, fg, bg)
			}
		}
	}

	sb.WriteString("\n## Host kinds\n\n")
	for _, kind := range kinds {
		fmt.Fprintf(&sb, "- %s\n", kind)
	}
	return sb.String()
}

func escapeCell(value string) string {
	return strings.NewReplacer("|", "\\|", "\n", " ").Replace(value)
}

// renderInfo renders infoMarkdown for the terminal. Plain output is used
// when the host has color disabled.
func renderInfo(h hosttypes.Host, kinds []string) (string, error) {
	style := glamour.WithAutoStyle()
	if h.Data().NoColor() {
		style = glamour.WithStylePath("notty")
	}

	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return renderer.Render(infoMarkdown(h, kinds))
}
