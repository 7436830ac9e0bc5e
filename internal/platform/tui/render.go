package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gunjam/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorPlayer:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWeapon:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorBullet:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorDemon:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorFlyer:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBoss:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorGround:  lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	core.ColorAnvil:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorGate:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorHUD:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGood:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBad:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
