package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planwise/planwise/internal/cli"
	"github.com/planwise/planwise/internal/engine"
	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/store"
	"github.com/planwise/planwise/internal/tax"
)

var (
	flagSweepGrowth string
	flagSweepSalary string
	flagSweepRetire string
)

var compareCmd = &cobra.Command{
	Use:   "compare [profile...]",
	Short: "Compare saved profiles or parameter sweeps",
	Long: `Project several plans side by side.

With profile names, each named profile from the store is projected.
With no arguments, every saved profile is compared. A sweep flag
instead varies one assumption of the current plan:

  planwise compare --growth 0.03,0.05,0.07
  planwise compare --salary 40000,60000,80000
  planwise compare --retire 60,65,67`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&flagSweepGrowth, "growth", "", "Comma-separated growth rates to sweep")
	compareCmd.Flags().StringVar(&flagSweepSalary, "salary", "", "Comma-separated salaries to sweep")
	compareCmd.Flags().StringVar(&flagSweepRetire, "retire", "", "Comma-separated retirement ages to sweep")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, args []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}

	scenarios, err := buildScenarios(tables, args)
	if err != nil {
		return err
	}
	if len(scenarios) < 2 {
		return fmt.Errorf("nothing to compare: need at least two scenarios, have %d", len(scenarios))
	}

	eng := engine.New(tables)

	progressFn := func(done, total int) {
		if total < 10 {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Projecting %s", cli.RenderProgressBar(done, total, 24))
		if done == total {
			fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 50))
		}
	}

	results := eng.RunScenarios(scenarios, progressFn)
	printComparison(results)
	return nil
}

// buildScenarios assembles the scenario list from a sweep flag, named
// profiles, or the whole store, in that priority order.
func buildScenarios(tables *tax.Tables, args []string) ([]engine.Scenario, error) {
	sweeps := 0
	for _, f := range []string{flagSweepGrowth, flagSweepSalary, flagSweepRetire} {
		if f != "" {
			sweeps++
		}
	}
	if sweeps > 1 {
		return nil, fmt.Errorf("pick one of --growth, --salary, --retire")
	}

	if sweeps == 1 {
		base, err := resolveProfile(tables)
		if err != nil {
			return nil, err
		}
		return sweepScenarios(base)
	}

	st, err := store.Open(store.DefaultPath(), tables)
	if err != nil {
		return nil, fmt.Errorf("opening profile store: %w", err)
	}
	defer st.Close()

	if len(args) == 0 {
		entries, err := st.List()
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			args = append(args, e.Name)
		}
	}

	scenarios := make([]engine.Scenario, 0, len(args))
	for _, name := range args {
		p, err := st.Load(name)
		if err != nil {
			return nil, err
		}
		applyOverrides(&p)
		scenarios = append(scenarios, engine.Scenario{Name: name, Profile: p})
	}
	return scenarios, nil
}

func sweepScenarios(base model.Profile) ([]engine.Scenario, error) {
	switch {
	case flagSweepGrowth != "":
		rates, err := parseFloatList(flagSweepGrowth)
		if err != nil {
			return nil, fmt.Errorf("--growth: %w", err)
		}
		scenarios := make([]engine.Scenario, 0, len(rates))
		for _, r := range rates {
			p := base
			for k := range p.Returns.Growth {
				p.Returns.Growth[k] = r
			}
			for k := range p.Returns.Drawdown {
				p.Returns.Drawdown[k] = r
			}
			scenarios = append(scenarios, engine.Scenario{
				Name:    "growth " + cli.FormatPercent(r),
				Profile: p,
			})
		}
		return scenarios, nil

	case flagSweepSalary != "":
		salaries, err := parseFloatList(flagSweepSalary)
		if err != nil {
			return nil, fmt.Errorf("--salary: %w", err)
		}
		scenarios := make([]engine.Scenario, 0, len(salaries))
		for _, s := range salaries {
			p := base
			p.Salary = s
			scenarios = append(scenarios, engine.Scenario{
				Name:    "salary " + cli.FormatGBP(s),
				Profile: p,
			})
		}
		return scenarios, nil

	default:
		ages, err := parseIntList(flagSweepRetire)
		if err != nil {
			return nil, fmt.Errorf("--retire: %w", err)
		}
		scenarios := make([]engine.Scenario, 0, len(ages))
		for _, age := range ages {
			p := base
			p.RetirementAge = age
			scenarios = append(scenarios, engine.Scenario{
				Name:    fmt.Sprintf("retire at %d", age),
				Profile: p,
			})
		}
		return scenarios, nil
	}
}

func parseFloatList(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q", part)
		}
		out = append(out, f)
	}
	return out, nil
}

func parseIntList(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid value %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func printComparison(results []engine.Result) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("COMPARE  %d scenarios", len(results))))
	fmt.Println()

	// Baseline for deltas is the first scenario that projected cleanly.
	var baseline float64
	haveBaseline := false
	for _, r := range results {
		if r.Err == nil {
			baseline = r.Projection.Summary.RetirementTotal
			haveBaseline = true
			break
		}
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			rows = append(rows, []string{r.Name, "error: " + r.Err.Error(), "", "", "", ""})
			continue
		}
		s := r.Projection.Summary

		dry := "–"
		if s.DepletedAge > 0 {
			dry = fmt.Sprintf("%d", s.DepletedAge)
		}
		delta := ""
		if haveBaseline {
			delta = cli.FormatDelta(s.RetirementTotal, baseline)
		}
		rows = append(rows, []string{
			r.Name,
			cli.FormatGBP(s.RetirementTotal),
			delta,
			cli.FormatGBP(s.NetContribution),
			cli.FormatMultiple(s.GrowthMultiple),
			cli.FormatGBP(s.TotalShortfall),
			dry,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Scenario", "Pot at ret.", "vs first", "Paid in", "Multiple", "Shortfall", "Dry age"},
		Rows:    rows,
	}))

	// Pot-size bars, largest scenario at full width.
	var maxPot float64
	for _, r := range results {
		if r.Err == nil && r.Projection.Summary.RetirementTotal > maxPot {
			maxPot = r.Projection.Summary.RetirementTotal
		}
	}
	if maxPot > 0 {
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			fmt.Println(cli.RenderHorizontalBar(r.Name, r.Projection.Summary.RetirementTotal, maxPot, 30))
		}
	}
	fmt.Println()
}
