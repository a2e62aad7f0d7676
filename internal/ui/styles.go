package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Highlights, identifiers, interactive elements
// - Muted (gray): Secondary info, timestamps
// - No colored success/error/warning - use unicode symbols only

const defaultAccentColor = "#A78BFA"

var (
	// Accent style for project IDs, query names, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor))

	// Muted style for secondary info, hints, timestamps
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor)).Bold(true)

	// accentColor is the configured accent, empty when disabled.
	accentColor = defaultAccentColor
)

// ConfigureTheme applies a user-configured accent color. Accepts hex colors
// ("#7aa2f7", "#abc") and ANSI codes ("39"); "none", "off", "default" and
// unrecognized values disable the accent.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	if !ok {
		accentColor = ""
		Accent = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle().Bold(true)
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the active accent color, or false when disabled.
func AccentColor() (string, bool) {
	if accentColor == "" {
		return "", false
	}
	return accentColor, true
}

// normalizeAccentColor validates and canonicalizes an accent color value.
func normalizeAccentColor(value string) (string, bool) {
	v := strings.TrimSpace(strings.ToLower(value))
	switch v {
	case "", "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		if !isHex(hex) {
			return "", false
		}
		switch len(hex) {
		case 3:
			// Expand shorthand #abc to #aabbcc.
			var sb strings.Builder
			sb.WriteByte('#')
			for i := 0; i < 3; i++ {
				sb.WriteByte(hex[i])
				sb.WriteByte(hex[i])
			}
			return sb.String(), true
		case 6:
			return "#" + hex, true
		}
		return "", false
	}

	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 || n > 255 {
			return "", false
		}
		return strconv.Itoa(n), true
	}

	return "", false
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}
