// Package ui renders lootsweep's console output.
package ui

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors, shared by both themes.
var (
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
	Info        = lipgloss.Color("#2196F3")
	Essence     = lipgloss.Color("#4FC3F7")
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#101F38"),
		Accent:     lipgloss.Color("#C89B3C"),
		Muted:      lipgloss.Color("#6b7280"),
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#f2f2f2"),
		Accent:     lipgloss.Color("#F0E6D2"),
		Muted:      lipgloss.Color("#9ca3af"),
	}
}

// DetectTheme picks a theme from COLORFGBG or LOOTSWEEP_DARK_MODE.
func DetectTheme() Theme {
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		// 0-6 and 8 are dark backgrounds
		if bg, err := strconv.Atoi(parts[1]); err == nil && ((bg >= 0 && bg <= 6) || bg == 8) {
			return DarkTheme()
		}
	}
	if os.Getenv("LOOTSWEEP_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds the styled components used by the report.
type Styles struct {
	Muted   lipgloss.Style
	Prompt  lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	List    lipgloss.Style
}

// NewStyles builds styles bound to a writer, so color support is detected
// for that writer rather than for stdout.
func NewStyles(w io.Writer, theme Theme) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Muted: r.NewStyle().
			Foreground(theme.Muted),

		Prompt: r.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Value: r.NewStyle().
			Foreground(Essence).
			Bold(true),

		Success: r.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: r.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: r.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: r.NewStyle().
			Foreground(Info),

		List: r.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(4),
	}
}
