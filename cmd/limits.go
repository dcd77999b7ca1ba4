package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planwise/planwise/internal/cli"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Account limits and state pension for a tax year",
	RunE:  runLimits,
}

func init() {
	rootCmd.AddCommand(limitsCmd)
}

func runLimits(_ *cobra.Command, _ []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	year := yearArg(tables)

	limits, err := tables.LimitsFor(year)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LIMITS  %s", cli.FormatTaxYear(year))))
	fmt.Println()

	rows := [][]string{
		{"LISA allowance", cli.FormatGBP(limits.BonusAccountLimit) + "/yr"},
		{"LISA pays in until age", fmt.Sprintf("%d", limits.BonusCutoffAge)},
		{"LISA unlocks at age", fmt.Sprintf("%d", limits.BonusUnlockAge)},
		{"---"},
		{"ISA allowance", cli.FormatGBP(limits.StandardSavingsLimit) + "/yr"},
		{"---"},
		{"Pension annual allowance", cli.FormatGBP(limits.PensionAnnualAllowance) + "/yr"},
		{"Pension unlocks at age", fmt.Sprintf("%d", limits.PensionUnlockAge)},
		{"---"},
		{"Qualifying earnings band", fmt.Sprintf("%s – %s",
			cli.FormatGBP(limits.QualifyingLower), cli.FormatGBP(limits.QualifyingUpper))},
	}

	if sp, err := tables.StatePensionFor(year); err == nil {
		rows = append(rows,
			[]string{"---"},
			[]string{"State pension", cli.FormatGBP(sp.PerYear) + "/yr"},
			[]string{"State pension age", fmt.Sprintf("%d", sp.Age)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Limit", "Value"},
		Rows:    rows,
	}))

	fmt.Println()
	fmt.Printf("  Table years available: %v\n", tables.Years())
	fmt.Println()

	return nil
}
