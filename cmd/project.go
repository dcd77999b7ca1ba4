package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/planwise/planwise/internal/cli"
	"github.com/planwise/planwise/internal/engine"
	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/profile"
)

var (
	flagRetirementOnly   bool
	flagAccumulationOnly bool
)

var projectCmd = &cobra.Command{
	Use:   "project [plan-file]",
	Short: "Project a plan year by year",
	Long:  "Run the full projection for a plan: saving-phase allocation and growth, then retirement drawdown.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProject,
}

func init() {
	projectCmd.Flags().BoolVar(&flagRetirementOnly, "retirement-only", false, "Show only the drawdown years")
	projectCmd.Flags().BoolVar(&flagAccumulationOnly, "accumulation-only", false, "Show only the saving years")
	rootCmd.AddCommand(projectCmd)
}

func runProject(_ *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}

	var p model.Profile
	if len(args) > 0 {
		p, err = profile.Load(args[0], tables)
		if err != nil {
			return err
		}
		applyOverrides(&p)
	} else {
		p, err = resolveProfile(tables)
		if err != nil {
			return err
		}
	}

	eng := engine.New(tables)
	proj, err := eng.Project(p)
	if err != nil {
		return err
	}

	printProjection(proj)
	return nil
}

func printProjection(proj *engine.Projection) {
	p := proj.Profile
	s := proj.Summary

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PLANWISE  %s  %s", p.Name, cli.FormatTaxYear(p.Year))))
	fmt.Println()

	region := "rest of UK"
	if p.Scotland {
		region = "Scotland"
	}
	fmt.Printf("  Salary %s  ·  %s  ·  age %d, retiring at %d, plan to %d\n",
		cli.FormatGBP(p.Salary), region, p.Age, p.RetirementAge, p.Drawdown.EndAge)
	fmt.Printf("  Target retirement income %s/yr in today's money\n",
		cli.FormatGBP(p.Drawdown.TargetIncome))
	fmt.Println()

	if !flagRetirementOnly {
		printSavingYears(proj)
	}
	if !flagAccumulationOnly {
		printRetirementYears(proj)
	}

	printSummary(s)
	printWarnings(proj)
}

func printSavingYears(proj *engine.Projection) {
	if len(proj.Contributions) == 0 {
		return
	}

	rows := make([][]string, 0, len(proj.Contributions))
	for _, y := range proj.Contributions {
		inv := func(k model.AccountKind) string {
			return cli.FormatGBP(y.Gross[k] + y.Employer[k])
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", y.Age),
			cli.FormatGBP(y.Salary),
			cli.FormatGBP(y.TakeHome),
			inv(model.BonusSavings),
			inv(model.StandardSavings),
			inv(model.PersonalPension),
			inv(model.EmployerPension),
			cli.FormatGBP(y.Refund),
			cli.FormatGBP(y.Balances.Total()),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Saving years",
		Headers: []string{"Age", "Salary", "Take-home", "LISA", "ISA", "SIPP", "Wkpl", "Refund", "Pot"},
		Rows:    rows,
	}))
	fmt.Println()
}

func printRetirementYears(proj *engine.Projection) {
	if len(proj.Retirement) == 0 {
		return
	}

	shortStyle := lipgloss.NewStyle().Foreground(cli.ColorRed)

	rows := make([][]string, 0, len(proj.Retirement))
	for _, y := range proj.Retirement {
		short := "–"
		if y.Shortfall > 0.005 {
			short = shortStyle.Render(cli.FormatGBP(y.Shortfall))
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", y.Age),
			cli.FormatGBP(y.Target),
			cli.FormatGBP(y.Withdrawals[model.BonusSavings]),
			cli.FormatGBP(y.Withdrawals[model.StandardSavings]),
			cli.FormatGBP(y.Withdrawals[model.PersonalPension]),
			cli.FormatGBP(y.Withdrawals[model.EmployerPension]),
			cli.FormatGBP(y.StatePension),
			cli.FormatGBP(y.AfterTax),
			short,
			cli.FormatGBP(y.Balances.Total()),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Retirement years (nominal)",
		Headers: []string{"Age", "Target", "LISA", "ISA", "SIPP", "Wkpl", "State", "Income", "Short", "Pot"},
		Rows:    rows,
	}))
	fmt.Println()
}

func printSummary(s engine.Summary) {
	green := lipgloss.NewStyle().Foreground(cli.ColorGreen).Bold(true)
	blue := lipgloss.NewStyle().Foreground(cli.ColorBlue)
	accent := lipgloss.NewStyle().Foreground(cli.ColorAccent).Bold(true)
	muted := lipgloss.NewStyle().Foreground(cli.ColorTextMuted)

	fmt.Printf("  %s %s %s\n",
		muted.Render("Pot at retirement"),
		green.Render(cli.FormatGBP(s.RetirementTotal)),
		muted.Render(fmt.Sprintf("(age %d)", s.RetirementAge)))
	fmt.Printf("  %s %s %s\n",
		muted.Render("Paid in         "),
		blue.Render(cli.FormatGBP(s.NetContribution)),
		muted.Render(fmt.Sprintf("(%s gross)", cli.FormatGBP(s.GrossContribution))))
	fmt.Printf("  %s %s %s\n",
		muted.Render("Tax refunds     "),
		blue.Render(cli.FormatGBP(s.TotalRefund)),
		muted.Render("(relief beyond source)"))
	fmt.Printf("  %s %s\n",
		muted.Render("Growth multiple "),
		accent.Render(cli.FormatMultiple(s.GrowthMultiple)))
	fmt.Println()
}

// printWarnings reports shortfall and depletion to stderr so piped
// table output stays clean.
func printWarnings(proj *engine.Projection) {
	s := proj.Summary
	if s.TotalShortfall <= 0 && s.DepletedAge == 0 {
		return
	}

	red := lipgloss.NewStyle().Foreground(cli.ColorRed).Bold(true)

	var shortYears int
	for _, y := range proj.Retirement {
		if y.Shortfall > 0.005 {
			shortYears++
		}
	}

	if s.DepletedAge > 0 {
		fmt.Fprintln(os.Stderr, red.Render(fmt.Sprintf("  Warning: pots run dry at age %d", s.DepletedAge)))
	}
	if shortYears > 0 {
		fmt.Fprintln(os.Stderr, red.Render(fmt.Sprintf(
			"  Warning: income shortfall in %d year(s), %s total in today's money",
			shortYears, cli.FormatGBP(s.TotalShortfall))))
	}
	fmt.Fprintln(os.Stderr)
}
