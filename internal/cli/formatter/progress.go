package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a completion bar like [████░░░░]  45%, colored
// by how far along it is: red under a third, yellow up to two thirds,
// green beyond.
func RenderProgress(pct float64, width int) string {
	return renderBar(pct, width, completionStyle(pct))
}

// RenderPosition renders the same bar in a fixed color, for progress
// that tracks a position in a sequence rather than completion health
// (question 3 of 5 is not "worse" than question 5 of 5).
func RenderPosition(pct float64, width int) string {
	return renderBar(pct, width, StyleBlue)
}

func renderBar(pct float64, width int, style lipgloss.Style) string {
	pct = math.Min(math.Max(pct, 0), 1)
	if width < 2 {
		width = 2
	}

	filled := int(math.Round(pct * float64(width)))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

func completionStyle(pct float64) lipgloss.Style {
	switch {
	case pct < 0.33:
		return StyleRed
	case pct < 0.66:
		return StyleYellow
	default:
		return StyleGreen
	}
}
