package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// colorStyles maps screen colors to lipgloss styles.
var colorStyles = map[Color]lipgloss.Style{
	ColorDefault: lipgloss.NewStyle(),
	ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

// RenderScreen converts a screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escapes.
func RenderScreen(s *Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.Get(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.Get(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
