package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/planwise/planwise/internal/cli"
	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/tui/components"
	"github.com/planwise/planwise/internal/tui/theme"
)

const overviewChartHeight = 9

// accountColor assigns each account kind a stable chart color.
func accountColor(k model.AccountKind) lipgloss.Color {
	t := theme.Active
	switch k {
	case model.BonusSavings:
		return t.Green
	case model.StandardSavings:
		return t.Cyan
	case model.PersonalPension:
		return t.Blue
	case model.EmployerPension:
		return t.Yellow
	default:
		return t.Accent
	}
}

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.proj.Summary

	var sections []string

	// 1. Headline metrics
	shortfallColor := t.Green
	shortfallNote := "fully funded"
	if s.TotalShortfall > 0 {
		shortfallColor = t.Red
		shortfallNote = "today's money"
	}
	metrics := []components.Metric{
		{
			Label: "POT AT RETIREMENT",
			Value: cli.FormatGBP(s.RetirementTotal),
			Note:  fmt.Sprintf("age %d", s.RetirementAge),
			Color: t.Green,
		},
		{
			Label: "PAID IN",
			Value: cli.FormatGBP(s.NetContribution),
			Note:  fmt.Sprintf("%s gross", cli.FormatGBP(s.GrossContribution)),
			Color: t.Blue,
		},
		{
			Label: "GROWTH MULTIPLE",
			Value: cli.FormatMultiple(s.GrowthMultiple),
			Note:  "pot over paid in",
			Color: t.Accent,
		},
		{
			Label: "SHORTFALL",
			Value: cli.FormatGBP(s.TotalShortfall),
			Note:  shortfallNote,
			Color: shortfallColor,
		},
	}
	if a.isCompactLayout() {
		sections = append(sections,
			components.MetricCardRow(metrics[:2], cw),
			components.MetricCardRow(metrics[2:], cw))
	} else {
		sections = append(sections, components.MetricCardRow(metrics, cw))
	}

	// 2. Balance trajectory across both phases. Saving years take the
	// accent, drawdown years the pivot color; decade ages, both ends,
	// and the retirement age get axis labels.
	series := components.BalanceSeries{
		Accent: t.Accent,
		Pivot:  len(a.proj.Contributions),
	}
	addYear := func(age int, balance float64) {
		lbl := ""
		if age%10 == 0 || age == a.prof.Age || age == a.prof.RetirementAge || age == a.prof.Drawdown.EndAge {
			lbl = strconv.Itoa(age)
		}
		series.Values = append(series.Values, balance)
		series.Labels = append(series.Labels, lbl)
	}
	for _, y := range a.proj.Contributions {
		addYear(y.Age, y.Balances.Total())
	}
	for _, y := range a.proj.Retirement {
		addYear(y.Age, y.Balances.Total())
	}
	chart := components.BarChart(series, components.CardInnerWidth(cw), overviewChartHeight)
	title := fmt.Sprintf("Total balance by age (%d → %d)", a.prof.Age, a.prof.Drawdown.EndAge)
	sections = append(sections, components.ContentCard(title, chart, cw))

	// 3. Pots at retirement + plan facts
	if a.isCompactLayout() {
		sections = append(sections,
			components.ContentCard("Pots at retirement", a.renderPotsBody(components.CardInnerWidth(cw)), cw),
			components.ContentCard("Plan", a.renderFactsBody(), cw))
	} else {
		widths := components.LayoutRow(cw, 2)
		pots := components.ContentCard("Pots at retirement", a.renderPotsBody(components.CardInnerWidth(widths[0])), widths[0])
		facts := components.ContentCard("Plan", a.renderFactsBody(), widths[1])
		sections = append(sections, components.CardRow([]string{pots, facts}))
	}

	return strings.Join(sections, "\n")
}

// renderPotsBody draws one horizontal bar per account, scaled to the
// largest pot at retirement.
func (a App) renderPotsBody(width int) string {
	t := theme.Active
	bals := a.proj.Summary.RetirementBalances

	var maxBal float64
	for _, v := range bals {
		if v > maxBal {
			maxBal = v
		}
	}

	const labelW = 10
	const valueW = 9
	barW := width - labelW - valueW - 2
	if barW < 4 {
		barW = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var lines []string
	for _, k := range model.Kinds() {
		v := bals[k]
		filled := 0
		if maxBal > 0 {
			filled = int(v / maxBal * float64(barW))
		}
		if v > 0 && filled < 1 {
			filled = 1
		}
		if filled > barW {
			filled = barW
		}

		barStyle := lipgloss.NewStyle().Foreground(accountColor(k)).Background(t.Surface)
		line := labelStyle.Render(fmt.Sprintf("%-*s", labelW, k.Label())) +
			barStyle.Render(strings.Repeat("█", filled)) +
			emptyStyle.Render(strings.Repeat("╌", barW-filled)) +
			valueStyle.Render(fmt.Sprintf("%*s", valueW+2, cli.FormatGBP(v)))
		lines = append(lines, line)
	}

	totalStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)
	lines = append(lines, "",
		labelStyle.Render(fmt.Sprintf("%-*s", labelW, "Total"))+
			strings.Repeat(" ", barW)+
			totalStyle.Render(fmt.Sprintf("%*s", valueW+2, cli.FormatGBP(bals.Total()))))

	return strings.Join(lines, "\n")
}

// renderFactsBody summarises the assumptions behind the projection.
func (a App) renderFactsBody() string {
	t := theme.Active
	p := a.prof
	s := a.proj.Summary

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-14s", label)) + valueStyle.Render(value)
	}

	var lines []string
	lines = append(lines, row("Contributions", describeContributionMode(p.Contributions)))
	if g, ok := uniformRate(p.Returns.Growth); ok {
		lines = append(lines, row("Growth", cli.FormatPercent(g)+" while saving"))
	} else {
		lines = append(lines, row("Growth", "varies by account"))
	}
	if d, ok := uniformRate(p.Returns.Drawdown); ok {
		lines = append(lines, row("In retirement", cli.FormatPercent(d)+" growth"))
	} else {
		lines = append(lines, row("In retirement", "varies by account"))
	}
	lines = append(lines, row("Inflation", cli.FormatPercent(p.Returns.Inflation)))
	lines = append(lines, row("Target income", cli.FormatGBP(p.Drawdown.TargetIncome)+"/yr today's money"))

	if sp, err := a.engine.Tables().StatePensionFor(p.Year); err == nil {
		lines = append(lines, row("State pension", fmt.Sprintf("%s/yr from age %d", cli.FormatGBP(sp.PerYear), sp.Age)))
	}

	if s.DepletedAge > 0 {
		lines = append(lines, "", warnStyle.Render(fmt.Sprintf("⚠ Pots run dry at age %d", s.DepletedAge)))
	} else {
		okStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
		lines = append(lines, "", okStyle.Render(fmt.Sprintf("✓ Pots last to age %d", p.Drawdown.EndAge)))
	}

	return strings.Join(lines, "\n")
}

// uniformRate reports whether all four per-account rates are equal.
func uniformRate(pa model.PerAccount) (float64, bool) {
	for _, v := range pa[1:] {
		if v != pa[0] {
			return 0, false
		}
	}
	return pa[0], true
}

func describeContributionMode(c model.ContributionPlan) string {
	if c.Mode == model.ModeAmount {
		return "fixed £ amounts"
	}
	if c.Basis == model.BasisTakeHome {
		return "% of take-home pay"
	}
	return "% of gross salary"
}
