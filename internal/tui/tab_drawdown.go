package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/planwise/planwise/internal/cli"
	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/tui/components"
	"github.com/planwise/planwise/internal/tui/theme"
)

func (a App) renderDrawdownTab(cw, contentH int) string {
	if len(a.proj.Retirement) == 0 {
		return components.ContentCard("Drawdown phase", "The plan ends at retirement: nothing to draw down.", cw)
	}

	coverage := a.renderCoverageCard(cw)

	tableH := contentH - lipgloss.Height(coverage)
	schedule := a.renderDrawdownSchedule(cw, tableH)

	return coverage + "\n" + schedule
}

// coverageMilestones picks a handful of retirement years to summarise:
// the first year, every fifth after that, the depletion year if any,
// and the final year.
func (a App) coverageMilestones() []model.RetirementYear {
	years := a.proj.Retirement
	depleted := a.proj.Summary.DepletedAge

	var out []model.RetirementYear
	for i, y := range years {
		keep := i == 0 || i == len(years)-1 || i%5 == 0 || y.Age == depleted
		if keep {
			out = append(out, y)
		}
	}
	return out
}

// renderCoverageCard shows how much of the income target selected years
// actually fund, with the state pension counted in.
func (a App) renderCoverageCard(cw int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	const labelW = 7
	barW := inner - labelW - 7
	if barW > 50 {
		barW = 50
	}
	if barW < 10 {
		barW = 10
	}

	var lines []string
	for _, y := range a.coverageMilestones() {
		pct := 1.0
		if y.Target > 0 {
			pct = (y.Target - y.Shortfall) / y.Target
		}
		lines = append(lines, components.CoverageBar(fmt.Sprintf("age %d", y.Age), pct, labelW, barW))
	}

	s := a.proj.Summary
	if s.DepletedAge > 0 {
		warnStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
		lines = append(lines, "", warnStyle.Render(
			fmt.Sprintf("⚠ Pots run dry at age %d · unfunded %s in today's money",
				s.DepletedAge, cli.FormatGBP(s.TotalShortfall))))
	}

	title := fmt.Sprintf("Income coverage · target %s/yr today's money", cli.FormatGBP(a.prof.Drawdown.TargetIncome))
	return components.ContentCard(title, strings.Join(lines, "\n"), cw)
}

// renderDrawdownSchedule renders the year-by-year withdrawal table,
// windowed by drawdownScroll. The t key flips between nominal pounds
// and today's money.
func (a App) renderDrawdownSchedule(cw, tableH int) string {
	t := theme.Active
	years := a.proj.Retirement

	visible := tableH - scheduleChrome
	if visible < 3 {
		visible = 3
	}

	start := a.drawdownScroll
	if start > len(years)-visible {
		start = len(years) - visible
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(years) {
		end = len(years)
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	potStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	shortStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	zeroStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	compact := a.isCompactLayout()

	var b strings.Builder
	if compact {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%4s %10s %10s %10s %10s %11s",
			"Age", "Target", "Income", "Tax", "Short", "Pot")))
	} else {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%4s %10s %10s %10s %10s %10s %10s %10s %10s %11s",
			"Age", "Target", "LISA", "ISA", "SIPP", "Wkpl", "State", "Income", "Short", "Pot")))
	}
	b.WriteString("\n")

	for i := start; i < end; i++ {
		y := years[i]

		target := y.Target
		wd := y.Withdrawals
		state := y.StatePension
		income := y.AfterTax
		tax := y.IncomeTax
		short := y.Shortfall
		pot := y.Balances.Total()
		if a.drawdownToday {
			target = y.Today(y.Target)
			wd = y.TodayWithdrawals()
			state = y.Today(y.StatePension)
			income = y.Today(y.AfterTax)
			tax = y.Today(y.IncomeTax)
			short = y.Today(y.Shortfall)
			pot = y.TodayBalances().Total()
		}

		shortCell := zeroStyle.Render(fmt.Sprintf("%10s", "–"))
		if short > 0.005 {
			shortCell = shortStyle.Render(fmt.Sprintf("%10s", cli.FormatGBP(short)))
		}

		if compact {
			b.WriteString(rowStyle.Render(fmt.Sprintf("%4d %10s %10s %10s ",
				y.Age, cli.FormatGBP(target), cli.FormatGBP(income), cli.FormatGBP(tax))))
			b.WriteString(shortCell)
		} else {
			b.WriteString(rowStyle.Render(fmt.Sprintf("%4d %10s %10s %10s %10s %10s %10s %10s ",
				y.Age, cli.FormatGBP(target),
				cli.FormatGBP(wd[model.BonusSavings]), cli.FormatGBP(wd[model.StandardSavings]),
				cli.FormatGBP(wd[model.PersonalPension]), cli.FormatGBP(wd[model.EmployerPension]),
				cli.FormatGBP(state), cli.FormatGBP(income))))
			b.WriteString(shortCell)
		}
		b.WriteString(potStyle.Render(fmt.Sprintf("%12s", cli.FormatGBP(pot))))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	money := "nominal"
	if a.drawdownToday {
		money = "today's money"
	}
	title := fmt.Sprintf("Withdrawals · %s · %d–%d of %d  [t]", money, start+1, end, len(years))
	if len(years) > visible {
		title += "  (j/k to scroll)"
	}
	return components.ContentCard(title, b.String(), cw)
}
