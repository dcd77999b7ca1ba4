package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/planwise/planwise/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the
// left, the active plan and tax regime on the right.
func RenderStatusBar(width int, profile, taxYear, region string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [q]uit"
	right := fmt.Sprintf("%s · %s · %s ", profile, taxYear, region)

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
