package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/planwise/planwise/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowMatchesTallestCard(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("test setup: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	if got := len(strings.Split(joined, "\n")); got != tallLines {
		t.Errorf("joined height = %d, want tallest card height %d", got, tallLines)
	}
}

func TestLayoutRowDistributesWidth(t *testing.T) {
	tests := []struct {
		total, n int
	}{
		{120, 4},
		{121, 4},
		{122, 3},
		{80, 2},
		{81, 1},
	}
	for _, tt := range tests {
		widths := LayoutRow(tt.total, tt.n)
		if len(widths) != tt.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tt.total, tt.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tt.total {
			t.Errorf("LayoutRow(%d, %d) widths sum to %d", tt.total, tt.n, sum)
		}
	}
}

func TestMetricCardShowsContent(t *testing.T) {
	theme.SetActive("flexoki-dark")

	card := MetricCard(Metric{Label: "POT", Value: "£1.2M", Note: "age 67"}, 30)
	for _, want := range []string{"POT", "£1.2M", "age 67"} {
		if !strings.Contains(card, want) {
			t.Errorf("metric card missing %q", want)
		}
	}
}

func TestTabVisualWidthMatchesTabs(t *testing.T) {
	for _, tab := range Tabs {
		if w := TabVisualWidth(tab, true); w != len(tab.Name) {
			t.Errorf("active %s width = %d, want %d", tab.Name, w, len(tab.Name))
		}
		inactive := TabVisualWidth(tab, false)
		if inactive <= len(tab.Name) {
			t.Errorf("inactive %s width = %d, should exceed name length", tab.Name, inactive)
		}
	}
}

func TestSparklineLength(t *testing.T) {
	theme.SetActive("flexoki-dark")

	vals := []float64{1, 2, 3, 4, 5}
	got := Sparkline(vals, theme.Active.Accent)

	stripped := stripANSI(got)
	if n := len([]rune(stripped)); n != len(vals) {
		t.Errorf("sparkline runes = %d, want %d", n, len(vals))
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
