package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds all lipgloss styles for rendering
type Styles struct {
	Success lipgloss.Style
	Failure lipgloss.Style
	Info    lipgloss.Style
	Header  lipgloss.Style
	Dim     lipgloss.Style
	Preview lipgloss.Style
}

// NewStyles creates styled renderers for out based on config colors. When
// colorize is false every style renders plain text.
func NewStyles(out io.Writer, colorize bool, successColor, failureColor, infoColor int) Styles {
	r := lipgloss.NewRenderer(out)
	if !colorize {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Success: r.NewStyle().Foreground(lipgloss.Color(fmt.Sprint(successColor))).Bold(true),
		Failure: r.NewStyle().Foreground(lipgloss.Color(fmt.Sprint(failureColor))).Bold(true),
		Info:    r.NewStyle().Foreground(lipgloss.Color(fmt.Sprint(infoColor))),
		Header:  r.NewStyle().Bold(true).Underline(true),
		Dim:     r.NewStyle().Foreground(lipgloss.Color("243")), // Dimmed gray
		Preview: r.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color(fmt.Sprint(infoColor))).
			PaddingLeft(1),
	}
}
