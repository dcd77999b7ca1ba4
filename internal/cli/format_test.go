package cli

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force color output so styled-cell rendering is exercised.
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestFormatGBP(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "£0.00"},
		{4.5, "£4.50"},
		{99.994, "£99.99"},
		{845.6, "£846"},
		{1000, "£1,000"},
		{12345.6, "£12,346"},
		{1234567, "£1,234,567"},
		{-845.6, "-£846"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}
	for _, tt := range tests {
		if got := FormatGBP(tt.in); got != tt.want {
			t.Errorf("FormatGBP(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := FormatGBP(math.NaN()); got != "NaN" {
		t.Errorf("FormatGBP(NaN) = %q, want NaN", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234567, "-1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMultiple(t *testing.T) {
	if got := FormatMultiple(1.5); got != "1.50x" {
		t.Errorf("FormatMultiple(1.5) = %q, want 1.50x", got)
	}
	if got := FormatMultiple(math.Inf(1)); got != "inf" {
		t.Errorf("FormatMultiple(+Inf) = %q, want inf", got)
	}
	if got := FormatMultiple(math.NaN()); got != "NaN" {
		t.Errorf("FormatMultiple(NaN) = %q, want NaN", got)
	}
}

func TestFormatTaxYear(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{2025, "2025/26"},
		{2023, "2023/24"},
		{2099, "2099/00"},
	}
	for _, tt := range tests {
		if got := FormatTaxYear(tt.in); got != tt.want {
			t.Errorf("FormatTaxYear(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.2); got != "20.0%" {
		t.Errorf("FormatPercent(0.2) = %q, want 20.0%%", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(1500, 1000); got != "+£500" {
		t.Errorf("FormatDelta(1500, 1000) = %q, want +£500", got)
	}
	if got := FormatDelta(1000, 1500); got != "-£500" {
		t.Errorf("FormatDelta(1000, 1500) = %q, want -£500", got)
	}
}

func TestRenderTableStyledCellsAlign(t *testing.T) {
	red := lipgloss.NewStyle().Foreground(ColorRed).Render("£9,999")
	out := RenderTable(Table{
		Headers: []string{"Age", "Shortfall"},
		Rows:    [][]string{{"68", red}, {"69", "–"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	w := lipgloss.Width(lines[0])
	for _, ln := range lines[1:] {
		if lipgloss.Width(ln) != w {
			t.Fatalf("ragged table line %q: width %d, want %d", ln, lipgloss.Width(ln), w)
		}
	}
}

func TestRenderTableContainsCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Age", "Balance"},
		Rows:    [][]string{{"30", "£1,000"}, {"---"}, {"31", "£2,100"}},
	})
	for _, want := range []string{"Age", "Balance", "£1,000", "£2,100"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q", want)
		}
	}
	if !strings.Contains(out, "╭") || !strings.Contains(out, "╯") {
		t.Error("table output missing rounded border corners")
	}
}

func TestRenderProgressBarEmpty(t *testing.T) {
	if got := RenderProgressBar(1, 0, 20); got != "" {
		t.Errorf("RenderProgressBar with zero total = %q, want empty", got)
	}
}
