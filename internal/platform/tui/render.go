package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/core"
)

// palette maps core.Color to ANSI 256-color codes.
var palette = map[core.Color]string{
	core.ColorRed:         "1",
	core.ColorGreen:       "2",
	core.ColorYellow:      "11",
	core.ColorBlue:        "12",
	core.ColorMagenta:     "5",
	core.ColorCyan:        "14",
	core.ColorWhite:       "7",
	core.ColorOrange:      "208",
	core.ColorGray:        "245",
	core.ColorBrightWhite: "15",
}

// Styles holds one lipgloss style per screen color.
type Styles map[core.Color]lipgloss.Style

// NewStyles builds styles for a renderer. SSH sessions pass their own
// renderer so color support is detected per client.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	styles := Styles{core.ColorDefault: r.NewStyle()}
	for c, code := range palette {
		style := r.NewStyle().Foreground(lipgloss.Color(code))
		if c == core.ColorWhite || c == core.ColorBrightWhite {
			style = style.Bold(true)
		}
		styles[c] = style
	}
	return styles
}

var defaultStyles = NewStyles(nil)

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (st Styles) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := st[color]
			if !ok {
				style = st[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
