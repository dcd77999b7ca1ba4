package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planwise/planwise/internal/cli"
	"github.com/planwise/planwise/internal/tax"
)

var flagGrossPension float64

var grossCmd = &cobra.Command{
	Use:   "gross <take-home>",
	Short: "Find the salary behind a take-home figure",
	Long:  "Search for the gross salary whose after-tax, after-NI value matches the given annual take-home pay.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGross,
}

func init() {
	grossCmd.Flags().Float64Var(&flagGrossPension, "state-pension", 0,
		"Annual state pension already received; reduces the personal allowance")
	rootCmd.AddCommand(grossCmd)
}

func runGross(_ *cobra.Command, args []string) error {
	takeHome, err := parseMoneyArg(args[0])
	if err != nil {
		return err
	}

	tables, err := loadTables()
	if err != nil {
		return err
	}
	year := yearArg(tables)
	region := regionArg()

	gross, err := tables.GrossFromTakeHome(takeHome, region, year, flagGrossPension)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Take-home %s/yr needs a gross salary of %s (%s)\n",
		cli.FormatGBP(takeHome), cli.FormatGBP(gross), cli.FormatTaxYear(year))

	if flagGrossPension > 0 {
		fmt.Printf("  Personal allowance reduced by %s of state pension\n", cli.FormatGBP(flagGrossPension))
	} else {
		incomeTax, err := tables.IncomeTax(gross, region, year)
		if err != nil {
			return err
		}
		ni, err := tables.NationalInsurance(gross, tax.DefaultNICategory, year)
		if err != nil {
			return err
		}
		fmt.Printf("  Breakdown: tax %s + NI %s = %s deducted\n",
			cli.FormatGBP(incomeTax), cli.FormatGBP(ni), cli.FormatGBP(incomeTax+ni))
	}
	fmt.Println()

	return nil
}
