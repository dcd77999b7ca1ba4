package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planwise/planwise/internal/cli"
	"github.com/planwise/planwise/internal/tax"
)

var taxCmd = &cobra.Command{
	Use:   "tax <income>",
	Short: "Income tax breakdown by band",
	Args:  cobra.ExactArgs(1),
	RunE:  runTax,
}

func init() {
	rootCmd.AddCommand(taxCmd)
}

// parseMoneyArg accepts "60000", "60,000" or "£60000".
func parseMoneyArg(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "£")
	raw = strings.ReplaceAll(raw, ",", "")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	return f, nil
}

func bandLabel(s tax.BandSlice) string {
	if math.IsInf(s.To, 1) {
		return fmt.Sprintf("%s+", cli.FormatGBP(s.From))
	}
	return fmt.Sprintf("%s – %s", cli.FormatGBP(s.From), cli.FormatGBP(s.To))
}

func runTax(_ *cobra.Command, args []string) error {
	income, err := parseMoneyArg(args[0])
	if err != nil {
		return err
	}

	tables, err := loadTables()
	if err != nil {
		return err
	}
	year := yearArg(tables)
	region := regionArg()

	table, err := tables.TaxTable(region, year)
	if err != nil {
		return err
	}

	regionName := "rest of UK"
	if region == tax.RegionScotland {
		regionName = "Scotland"
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("INCOME TAX  %s  %s", cli.FormatTaxYear(year), regionName)))
	fmt.Println()

	slices := table.Breakdown(income)
	rows := make([][]string, 0, len(slices)+2)
	rows = append(rows, []string{
		"Personal allowance", cli.FormatPercent(0), cli.FormatGBP(math.Min(income, table.Allowance)), cli.FormatGBP(0),
	})
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
		Headers: []string{"Band", "Rate", "Taxed", "Due"},
		Rows:    rows,
	}))

	takeHome, err := tables.TakeHome(income, region, year)
	if err != nil {
		return err
	}
	ni, err := tables.NationalInsurance(income, tax.DefaultNICategory, year)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  On %s: tax %s, NI %s, take-home %s (%s/month)\n",
		cli.FormatGBP(income), cli.FormatGBP(total), cli.FormatGBP(ni),
		cli.FormatGBP(takeHome), cli.FormatGBP(takeHome/12))
	fmt.Println()

	return nil
}
