package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeySection groups related bindings under a title
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key or gesture and what it does
type KeyBinding struct {
	Key  string
	Desc string
}

// RenderKeyHelp formats bindings one per line, titles in the accent color
func RenderKeyHelp(sections []KeySection, accent lipgloss.Color) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(accent)
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, title.Render(sec.Title))
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-14s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderSwatch renders a block in c, used as the status line mode indicator
func RenderSwatch(c Color) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(hex(c)))
	return style.Render("■")
}

func hex(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
