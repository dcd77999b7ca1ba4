package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planwise/planwise/internal/cli"
	"github.com/planwise/planwise/internal/tax"
)

var niCmd = &cobra.Command{
	Use:   "ni <income>",
	Short: "National Insurance breakdown by band",
	Args:  cobra.ExactArgs(1),
	RunE:  runNI,
}

func init() {
	rootCmd.AddCommand(niCmd)
}

func runNI(_ *cobra.Command, args []string) error {
	income, err := parseMoneyArg(args[0])
	if err != nil {
		return err
	}

	tables, err := loadTables()
	if err != nil {
		return err
	}
	year := yearArg(tables)

	table, err := tables.NITable(tax.DefaultNICategory, year)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("NATIONAL INSURANCE  %s  class 1 employee", cli.FormatTaxYear(year))))
	fmt.Println()

	slices := table.Breakdown(income)
	rows := make([][]string, 0, len(slices)+2)
	var total float64
	for _, s := range slices {
		total += s.Due
		rows = append(rows, []string{
			bandLabel(s), cli.FormatPercent(s.Rate), cli.FormatGBP(s.Amount), cli.FormatGBP(s.Due),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", "", cli.FormatGBP(income), cli.FormatGBP(total)})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Band", "Rate", "Earned", "Due"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
