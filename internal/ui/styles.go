package ui

import "github.com/charmbracelet/lipgloss"

// ANSI 256 palette: a single teal accent over grays.
const (
	colorAccent = "43"  // teal, headers and success
	colorWarn   = "179" // muted amber
	colorError  = "167" // soft red
	colorMuted  = "245" // labels
	colorFaint  = "240" // separators, de-emphasized text
)

// Styles is the style set command output renders with.
type Styles struct {
	Header  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
	Label   lipgloss.Style
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// DefaultStyles returns the colored set.
func DefaultStyles() Styles {
	return Styles{
		Header:  fg(colorAccent).Bold(true),
		Success: fg(colorAccent),
		Warning: fg(colorWarn),
		Error:   fg(colorError),
		Dim:     fg(colorFaint),
		Label:   fg(colorMuted),
	}
}

// NoColorStyles returns pass-through styles for plain mode.
func NoColorStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Dim:     lipgloss.NewStyle(),
		Label:   lipgloss.NewStyle(),
	}
}

// GetStyles picks the set matching the color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
