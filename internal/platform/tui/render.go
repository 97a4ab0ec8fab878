package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flapper/internal/core"
)

// palette maps core.Color to ANSI 256-color codes.
var palette = map[core.Color]string{
	core.ColorRed:          "1",
	core.ColorGreen:        "2",
	core.ColorYellow:       "3",
	core.ColorBlue:         "4",
	core.ColorMagenta:      "5",
	core.ColorCyan:         "6",
	core.ColorWhite:        "7",
	core.ColorBrightRed:    "9",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrightBlue:   "12",
	core.ColorBrightWhite:  "15",
	core.ColorOrange:       "208",
	core.ColorBrown:        "130",
	core.ColorGray:         "245",
	core.ColorDarkGray:     "238",
}

// nightBackground is the sky color once night mode kicks in.
const nightBackground = "17"

var (
	dayStyles   = buildStyles("")
	nightStyles = buildStyles(nightBackground)
)

func buildStyles(background string) map[core.Color]lipgloss.Style {
	base := lipgloss.NewStyle()
	if background != "" {
		base = base.Background(lipgloss.Color(background))
	}

	styles := map[core.Color]lipgloss.Style{core.ColorDefault: base}
	for c, code := range palette {
		styles[c] = base.Foreground(lipgloss.Color(code))
	}
	return styles
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
// Night mode paints every cell over a dark blue background.
func RenderScreen(s *core.Screen, night bool) string {
	styles := dayStyles
	if night {
		styles = nightStyles
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
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

			style, ok := styles[startColor]
			if !ok {
				style = styles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
