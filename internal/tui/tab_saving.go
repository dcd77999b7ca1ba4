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

// scheduleChrome is the card overhead around schedule rows: two border
// lines, the title line, and the column header.
const scheduleChrome = 4

func (a App) renderSavingTab(cw, contentH int) string {
	if len(a.proj.Contributions) == 0 {
		return components.ContentCard("Saving phase", "Already retired: no contribution years to show.", cw)
	}

	alloc := a.renderAllocationCard(cw)

	tableH := contentH - lipgloss.Height(alloc)
	schedule := a.renderSavingSchedule(cw, tableH)

	return alloc + "\n" + schedule
}

// renderAllocationCard breaks down where this year's money goes.
func (a App) renderAllocationCard(cw int) string {
	t := theme.Active
	y := a.proj.Contributions[0]

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	bonusStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %s\n",
		valueStyle.Render(cli.FormatGBP(y.Salary)+" salary →"),
		valueStyle.Bold(true).Render(cli.FormatGBP(y.TakeHome)+" take-home"),
		noteStyle.Render(fmt.Sprintf("(tax %s, NI %s)",
			cli.FormatGBP(y.IncomeTax), cli.FormatGBP(y.NationalInsurance))))
	b.WriteString("\n")

	header := labelStyle.Render(fmt.Sprintf("%-11s%10s%12s", "", "you pay", "invested"))
	b.WriteString(header + "\n")

	for _, k := range model.Kinds() {
		net := y.Net[k]
		invested := y.Gross[k] + y.Employer[k]

		var note string
		switch k {
		case model.BonusSavings:
			if uplift := y.Gross[k] - y.Net[k]; uplift > 0 {
				note = fmt.Sprintf("+%s bonus", cli.FormatGBP(uplift))
			}
		case model.PersonalPension:
			if relief := y.Gross[k] - y.Net[k]; relief > 0 {
				note = fmt.Sprintf("+%s relief", cli.FormatGBP(relief))
			}
		case model.EmployerPension:
			if y.Employer[k] > 0 {
				note = fmt.Sprintf("+%s employer", cli.FormatGBP(y.Employer[k]))
			}
		}

		accStyle := lipgloss.NewStyle().Foreground(accountColor(k)).Background(t.Surface)
		fmt.Fprintf(&b, "%s%s%s",
			accStyle.Render(fmt.Sprintf("%-11s", k.Label())),
			valueStyle.Render(fmt.Sprintf("%10s", cli.FormatGBP(net))),
			valueStyle.Render(fmt.Sprintf("%12s", cli.FormatGBP(invested))))
		if note != "" {
			b.WriteString(bonusStyle.Render("  " + note))
		}
		b.WriteString("\n")
	}

	if limits, err := a.engine.Tables().LimitsFor(a.prof.Year); err == nil && limits.PensionAnnualAllowance > 0 {
		inv := y.Invested()
		pensionGross := inv[model.PersonalPension] + inv[model.EmployerPension]
		fmt.Fprintf(&b, "%s%s  %s\n",
			labelStyle.Render(fmt.Sprintf("%-11s", "Allowance")),
			components.ProgressBar(pensionGross/limits.PensionAnnualAllowance, 20),
			noteStyle.Render(fmt.Sprintf("(%s of %s pension allowance)",
				cli.FormatGBP(pensionGross), cli.FormatGBP(limits.PensionAnnualAllowance))))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%s%s%s",
		labelStyle.Render("Refund "),
		valueStyle.Render(cli.FormatGBP(y.Refund)),
		labelStyle.Render("  ·  Net cost "),
		valueStyle.Bold(true).Render(cli.FormatGBP(y.NetCost)))
	fmt.Fprintf(&b, "%s%s",
		labelStyle.Render("  ·  Total invested "),
		bonusStyle.Bold(true).Render(cli.FormatGBP(y.Invested().Total())))

	title := fmt.Sprintf("This year (age %d, %s)", y.Age, cli.FormatTaxYear(a.prof.Year))
	return components.ContentCard(title, b.String(), cw)
}

// renderSavingSchedule renders the year-by-year contribution table,
// windowed by savingScroll to fit in tableH lines.
func (a App) renderSavingSchedule(cw, tableH int) string {
	t := theme.Active
	years := a.proj.Contributions

	visible := tableH - scheduleChrome
	if visible < 3 {
		visible = 3
	}

	start := a.savingScroll
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

	compact := a.isCompactLayout()

	var b strings.Builder
	if compact {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%4s %10s %10s %10s %10s %10s %11s",
			"Age", "Take-home", "LISA", "ISA", "SIPP", "Wkpl", "Pot")))
	} else {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%4s %10s %10s %10s %10s %10s %10s %10s %10s %11s",
			"Age", "Salary", "Take-home", "LISA", "ISA", "SIPP", "Wkpl", "Refund", "Invested", "Pot")))
	}
	b.WriteString("\n")

	for i := start; i < end; i++ {
		y := years[i]
		inv := func(k model.AccountKind) string {
			return cli.FormatGBP(y.Gross[k] + y.Employer[k])
		}
		if compact {
			b.WriteString(rowStyle.Render(fmt.Sprintf("%4d %10s %10s %10s %10s %10s ",
				y.Age, cli.FormatGBP(y.TakeHome),
				inv(model.BonusSavings), inv(model.StandardSavings),
				inv(model.PersonalPension), inv(model.EmployerPension))))
		} else {
			b.WriteString(rowStyle.Render(fmt.Sprintf("%4d %10s %10s %10s %10s %10s %10s %10s %10s ",
				y.Age, cli.FormatGBP(y.Salary), cli.FormatGBP(y.TakeHome),
				inv(model.BonusSavings), inv(model.StandardSavings),
				inv(model.PersonalPension), inv(model.EmployerPension),
				cli.FormatGBP(y.Refund), cli.FormatGBP(y.Invested().Total()))))
		}
		b.WriteString(potStyle.Render(fmt.Sprintf("%11s", cli.FormatGBP(y.Balances.Total()))))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	title := fmt.Sprintf("Yearly schedule · %d–%d of %d", start+1, end, len(years))
	if len(years) > visible {
		title += "  (j/k to scroll)"
	}
	return components.ContentCard(title, b.String(), cw)
}
