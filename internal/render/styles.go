// Package render prints checks, favorites and history to a terminal.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shahar-caura/glutenguard/internal/classify"
)

var (
	SafeColor    = lipgloss.Color("#4ECDC4")
	CautionColor = lipgloss.Color("#FFE66D")
	UnsafeColor  = lipgloss.Color("#FF6B6B")
	ErrorColor   = lipgloss.Color("#C792EA")
	SubtleColor  = lipgloss.Color("#666666")

	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)
)

// StatusStyle returns the colour style for status.
func StatusStyle(status classify.Status) lipgloss.Style {
	switch status {
	case classify.StatusSafe:
		return lipgloss.NewStyle().Foreground(SafeColor)
	case classify.StatusCaution:
		return lipgloss.NewStyle().Foreground(CautionColor)
	case classify.StatusUnsafe:
		return lipgloss.NewStyle().Foreground(UnsafeColor)
	default:
		return lipgloss.NewStyle().Foreground(ErrorColor)
	}
}

// Badge renders status as an upper-case coloured label.
func Badge(status classify.Status) string {
	return badgeStyle.Inherit(StatusStyle(status)).Render(strings.ToUpper(string(status)))
}
