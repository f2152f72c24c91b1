package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-towerdefense/internal/canvas"
	"github.com/vovakirdan/tui-towerdefense/internal/hud"
)

// colorStyles maps canvas colors to lipgloss styles.
var colorStyles = func() map[canvas.Color]lipgloss.Style {
	styles := map[canvas.Color]lipgloss.Style{
		canvas.ColorDefault: lipgloss.NewStyle(),
	}
	for c := canvas.ColorRed; c <= canvas.ColorGray; c++ {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.ANSI()))
	}
	return styles
}()

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	goalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
)

// RenderCanvas converts a canvas to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderCanvas(c *canvas.Canvas) string {
	var sb strings.Builder
	sb.Grow(c.Width()*c.Height()*2 + c.Height())

	for y := range c.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.Width() {
			startColor := c.Get(x, y).Color

			var run strings.Builder
			for x < c.Width() {
				cell := c.Get(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[canvas.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// buttonStyle turns a derived button style into a lipgloss style.
func buttonStyle(s hud.Style) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 1)
	if s.Fill != "" {
		st = st.Background(lipgloss.Color(s.Fill))
	}
	if s.Text != "" {
		st = st.Foreground(lipgloss.Color(s.Text))
	}
	return st
}

// renderButtons renders an option group on one line. cursor < 0 hides the
// cursor marker.
func renderButtons(buttons []hud.OptionButton, cursor int) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		label := b.Label
		if i == cursor {
			label = "▸" + label
		}
		parts[i] = buttonStyle(b.Style).Render(label)
	}
	return strings.Join(parts, " ")
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
