package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/planwise/planwise/internal/tui/theme"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// BalanceSeries is one bar per projection year. Labels runs parallel to
// Values; empty entries draw no axis label, so callers choose which ages
// to mark. Pivot is the index of the first drawdown year: bars from it
// onward render in the drawdown color. Pivot outside [0,len) means the
// whole series is one phase.
type BalanceSeries struct {
	Values []float64
	Labels []string
	Accent lipgloss.Color
	Pivot  int
}

// BarChart renders the series as vertical bars with a sterling Y axis.
// Falls back to a sparkline when the area is too small for axes.
func BarChart(s BalanceSeries, width, height int) string {
	if len(s.Values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(s.Values, s.Accent)
	}

	t := theme.Active

	peak := 0.0
	for _, v := range s.Values {
		if v > peak {
			peak = v
		}
	}

	ax := buildYAxis(peak, height)

	chartW := width - ax.labelW - 1
	if chartW < 5 {
		chartW = 5
	}

	// Bars are 2-6 columns wide with a single-column gap. A series too
	// long for 2-column bars gets sampled down first.
	s = downsample(s, (chartW+1)/3)
	n := len(s.Values)
	barW := chartW / n
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	}
	if barW < 2 {
		barW = 2
	}
	if barW > 6 {
		barW = 6
	}
	gap := 1
	if n == 1 {
		gap = 0
	}
	axisLen := n*barW + (n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	fillStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := ax.rows; row >= 1; row-- {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", ax.labelW, ax.ticks[row])))
		b.WriteString(axisStyle.Render("│"))

		lo, hi := ax.rowBounds(row)
		for i, v := range s.Values {
			if i > 0 && gap > 0 {
				b.WriteString(fillStyle.Render(" "))
			}
			cell := barCell(v, lo, hi)
			if cell == " " {
				b.WriteString(fillStyle.Render(strings.Repeat(" ", barW)))
				continue
			}
			style := lipgloss.NewStyle().Foreground(s.barColor(i, row, ax.rows)).Background(t.Surface)
			b.WriteString(style.Render(strings.Repeat(cell, barW)))
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", ax.labelW, "£0")))
	b.WriteString(renderXAxis(s, barW, gap, axisLen))

	if row := sparseLabelRow(s.Labels, barW, gap, axisLen); row != "" {
		b.WriteString("\n")
		b.WriteString(fillStyle.Render(strings.Repeat(" ", ax.labelW+1)))
		b.WriteString(axisStyle.Render(row))
	}

	return b.String()
}

// barCell picks the block rune for one chart cell: full below the bar
// top, a partial eighth where the bar ends, blank above it.
func barCell(v, lo, hi float64) string {
	eighths := []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}
	if v >= hi {
		return "█"
	}
	if v <= lo {
		return " "
	}
	idx := int((v - lo) / (hi - lo) * 8)
	if idx < 1 {
		idx = 1
	}
	if idx > 8 {
		idx = 8
	}
	return eighths[idx]
}

func (s BalanceSeries) barColor(i, row, rows int) lipgloss.Color {
	t := theme.Active
	if s.Pivot >= 0 && s.Pivot < len(s.Values) && i >= s.Pivot {
		return t.Blue
	}
	if float64(row)/float64(rows) > 0.75 {
		return t.AccentBright
	}
	return s.Accent
}

// renderXAxis draws the baseline, marking the drawdown pivot when the
// series has one so the retirement boundary is visible on the axis too.
func renderXAxis(s BalanceSeries, barW, gap, axisLen int) string {
	t := theme.Active
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if s.Pivot <= 0 || s.Pivot >= len(s.Values) {
		return axisStyle.Render("└" + strings.Repeat("─", axisLen))
	}

	mark := s.Pivot * (barW + gap)
	markStyle := lipgloss.NewStyle().Foreground(t.Blue).Background(t.Surface)
	return axisStyle.Render("└"+strings.Repeat("─", mark)) +
		markStyle.Render("┬") +
		axisStyle.Render(strings.Repeat("─", axisLen-mark-1))
}

// sparseLabelRow lays the non-empty labels under their bars, left to
// right, skipping any that would collide with one already placed.
func sparseLabelRow(labels []string, barW, gap, axisLen int) string {
	if len(labels) == 0 {
		return ""
	}
	buf := []byte(strings.Repeat(" ", axisLen))
	lastEnd := -1
	for i, lbl := range labels {
		if lbl == "" {
			continue
		}
		pos := i * (barW + gap)
		if pos+len(lbl) > axisLen {
			pos = axisLen - len(lbl)
		}
		if pos <= lastEnd || pos < 0 {
			continue
		}
		copy(buf[pos:], lbl)
		lastEnd = pos + len(lbl)
	}
	return strings.TrimRight(string(buf), " ")
}

// yAxis is the vertical scale: rows of chart area, the value ceiling
// they map to, and the tick label at each labelled row.
type yAxis struct {
	ceiling float64
	rows    int
	labelW  int
	ticks   map[int]string
}

func buildYAxis(peak float64, height int) yAxis {
	if peak <= 0 {
		peak = 1
	}

	step := niceStep(peak / 4)
	maxTicks := height / 2
	if maxTicks < 2 {
		maxTicks = 2
	}
	for math.Ceil(peak/step) > float64(maxTicks) {
		step *= 2
	}

	intervals := int(math.Ceil(peak / step))
	if intervals < 1 {
		intervals = 1
	}
	perTick := height / intervals
	if perTick < 2 {
		perTick = 2
	}

	ax := yAxis{
		ceiling: float64(intervals) * step,
		rows:    perTick * intervals,
		ticks:   make(map[int]string, intervals),
	}
	for i := 1; i <= intervals; i++ {
		ax.ticks[i*perTick] = moneyAxisLabel(step * float64(i))
	}
	ax.labelW = len(moneyAxisLabel(ax.ceiling)) + 1
	if ax.labelW < 4 {
		ax.labelW = 4
	}
	return ax
}

// rowBounds returns the value range a chart row covers, row 1 at the
// bottom.
func (ax yAxis) rowBounds(row int) (lo, hi float64) {
	lo = ax.ceiling * float64(row-1) / float64(ax.rows)
	hi = ax.ceiling * float64(row) / float64(ax.rows)
	return lo, hi
}

// niceStep rounds a rough interval up the 1-2-5 ladder.
func niceStep(rough float64) float64 {
	if rough <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(rough)))
	switch norm := rough / mag; {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	}
	return 10 * mag
}

// downsample thins the series until it fits maxN bars, keeping the
// first and last values and remapping the pivot onto the kept indexes.
func downsample(s BalanceSeries, maxN int) BalanceSeries {
	n := len(s.Values)
	if maxN < 2 {
		maxN = 2
	}
	if n <= maxN {
		return s
	}

	out := BalanceSeries{
		Values: make([]float64, maxN),
		Accent: s.Accent,
		Pivot:  -1,
	}
	if len(s.Labels) == n {
		out.Labels = make([]string, maxN)
	}
	for i := range out.Values {
		src := i * (n - 1) / (maxN - 1)
		out.Values[i] = s.Values[src]
		if out.Labels != nil {
			out.Labels[i] = s.Labels[src]
		}
		if s.Pivot >= 0 && s.Pivot < n && out.Pivot == -1 && src >= s.Pivot {
			out.Pivot = i
		}
	}
	return out
}

// moneyAxisLabel renders a compact sterling axis tick: £950, £12k, £1.2M.
func moneyAxisLabel(v float64) string {
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("£%.0fM", v/1e6)
		}
		return fmt.Sprintf("£%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("£%.0fk", v/1e3)
		}
		return fmt.Sprintf("£%.1fk", v/1e3)
	default:
		return fmt.Sprintf("£%.0f", v)
	}
}
