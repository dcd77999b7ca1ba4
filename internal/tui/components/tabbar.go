package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/planwise/planwise/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Saving", Key: 's', KeyPos: 0},
	{Name: "Drawdown", Key: 'd', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1}, // x is not in "Settings"
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Background).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Background)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Background).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Background)

	bar := ""
	for i, tab := range Tabs {
		if i > 0 {
			bar += " "
		}
		if i == activeIdx {
			bar += activeStyle.Render(tab.Name)
			continue
		}
		// Render with highlighted shortcut key
		if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			before := tab.Name[:tab.KeyPos]
			key := string(tab.Name[tab.KeyPos])
			after := tab.Name[tab.KeyPos+1:]
			bar += inactiveStyle.Render(before) +
				dimKeyStyle.Render("[") + keyStyle.Render(key) + dimKeyStyle.Render("]") +
				inactiveStyle.Render(after)
		} else {
			// Key not in name (e.g., "Settings" with 'x')
			bar += inactiveStyle.Render(tab.Name) +
				dimKeyStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimKeyStyle.Render("]")
		}
	}

	rowStyle := lipgloss.NewStyle().
		Background(t.Background).
		Width(width)
	return rowStyle.Render(" " + bar)
}

// TabVisualWidth returns the rendered width of one tab, used to derive
// mouse hitboxes. Must stay in sync with RenderTabBar.
func TabVisualWidth(tab Tab, active bool) int {
	if active || (tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name)) {
		w := len(tab.Name)
		if !active {
			w += 2 // the [ ] around the shortcut letter
		}
		return w
	}
	return len(tab.Name) + 3 // name plus [k]
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
